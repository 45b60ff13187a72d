package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/logsage/backend/internal/logger"
	"github.com/logsage/backend/internal/models"
	"github.com/logsage/backend/internal/services"
	"gorm.io/gorm"
)

type AnalysisController struct {
	db      *gorm.DB
	service *services.AnalysisService
}

func NewAnalysisController(db *gorm.DB, service *services.AnalysisService) *AnalysisController {
	return &AnalysisController{db: db, service: service}
}

type AnalyzeRequest struct {
	RawLog             string         `json:"rawLog" binding:"required"`
	LogType            models.LogType `json:"logType"`
	Sanitize           *bool          `json:"sanitize"`
	GenerateActionList *bool          `json:"generateActionList"`
	Depth              models.Depth   `json:"depth"`
	Tried              string         `json:"tried"`
	SaveAsReport       bool           `json:"saveAsReport"`
}

// ReportSummary is the history list shape: enough to render a row without
// shipping the full log bodies.
type ReportSummary struct {
	ID            uint                 `json:"id"`
	Title         string               `json:"title"`
	LogType       models.LogType       `json:"logType"`
	ErrorCategory models.ErrorCategory `json:"errorCategory"`
	TLDR          string               `json:"tldr"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// Analyze handles one submission. Absent options fall back to the caller's
// stored preferences; the action-list flag defaults to on.
func (ctrl *AnalysisController) Analyze(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ctrl.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Pre-fill from preferences; everything passed explicitly wins.
	sanitize := user.DefaultSanitize
	if req.Sanitize != nil {
		sanitize = *req.Sanitize
	}
	generateActionList := true
	if req.GenerateActionList != nil {
		generateActionList = *req.GenerateActionList
	}
	logType := req.LogType
	if logType == "" {
		logType = user.DefaultLogType
	}
	depth := req.Depth
	if depth == "" {
		depth = user.DefaultDepth
	}

	report, err := ctrl.service.AnalyzeLog(services.AnalyzeRequest{
		UserID:             user.ID,
		RawLog:             req.RawLog,
		LogType:            logType,
		Sanitize:           sanitize,
		GenerateActionList: generateActionList,
		Depth:              depth,
		Tried:              req.Tried,
	})
	if err != nil {
		ctrl.renderAnalysisError(c, user.ID, err)
		return
	}

	usage, err := ctrl.service.GetDailyUsage(user.ID)
	if err != nil {
		logger.WithError(err, "analysis_controller").Error("Failed to read usage after analysis")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze log"})
		return
	}

	if req.SaveAsReport {
		c.Header("Location", fmt.Sprintf("/api/v1/reports/%d", report.ID))
	}
	c.JSON(http.StatusOK, gin.H{
		"report": report,
		"usage":  usage,
	})
}

func (ctrl *AnalysisController) renderAnalysisError(c *gin.Context, userID uint, err error) {
	var vErr *services.ValidationError
	var qErr *services.QuotaExceededError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	case errors.As(err, &qErr):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": fmt.Sprintf("Daily analysis limit reached (%d per day)", qErr.Limit),
			"limit": qErr.Limit,
		})
	default:
		logger.WithError(err, "analysis_controller").Error("Analysis failed", map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze log"})
	}
}

// GetDailyUsage returns the caller's quota state for today.
func (ctrl *AnalysisController) GetDailyUsage(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	usage, err := ctrl.service.GetDailyUsage(userID.(uint))
	if err != nil {
		logger.WithError(err, "analysis_controller").Error("Failed to read daily usage")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch usage"})
		return
	}

	c.JSON(http.StatusOK, usage)
}

// GetReport returns one full report. Reports belonging to other users are
// reported as not found.
func (ctrl *AnalysisController) GetReport(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	report, err := ctrl.service.GetReport(uint(id), userID.(uint))
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		logger.WithError(err, "analysis_controller").Error("Failed to fetch report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// validHistoryCategory accepts a known tag or ALL in any case; blank means
// no filter.
func validHistoryCategory(category string) bool {
	norm := strings.ToUpper(strings.TrimSpace(category))
	return norm == "" || norm == "ALL" || models.ErrorCategory(norm).Valid()
}

// GetHistory lists the caller's report summaries newest first, optionally
// filtered by free-text query (q) and category.
func (ctrl *AnalysisController) GetHistory(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := c.Query("q")
	category := c.Query("category")
	if !validHistoryCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category. Must be one of: NPE, BEAN, PORT, SQL, CONFIG, ALL"})
		return
	}

	reports, err := ctrl.service.GetHistory(userID.(uint), query, category)
	if err != nil {
		logger.WithError(err, "analysis_controller").Error("Failed to fetch history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	summaries := make([]ReportSummary, 0, len(reports))
	for _, r := range reports {
		summaries = append(summaries, ReportSummary{
			ID:            r.ID,
			Title:         r.Title,
			LogType:       r.LogType,
			ErrorCategory: r.ErrorCategory,
			TLDR:          r.TLDR,
			CreatedAt:     r.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"reports": summaries})
}

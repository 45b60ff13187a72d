package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/logsage/backend/internal/logger"
	"github.com/logsage/backend/internal/models"
	"gorm.io/gorm"
)

const (
	// MaxLogLength is the hard ceiling on a raw submission, in characters.
	MaxLogLength = 8000

	// DefaultDailyLimit is the per-user analysis quota per calendar day.
	DefaultDailyLimit = 20
)

// AnalysisService runs the submission pipeline: length check, quota check,
// sanitization, fingerprinting, cache lookup, classification, and the
// transactional persist of report + cache entry + usage count.
type AnalysisService struct {
	db         *gorm.DB
	engine     *AnalysisEngine
	dailyLimit int
}

func NewAnalysisService(db *gorm.DB, engine *AnalysisEngine, dailyLimit int) *AnalysisService {
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyLimit
	}
	return &AnalysisService{db: db, engine: engine, dailyLimit: dailyLimit}
}

// AnalyzeRequest carries one submission through the pipeline.
type AnalyzeRequest struct {
	UserID             uint
	RawLog             string
	LogType            models.LogType
	Sanitize           bool
	GenerateActionList bool
	Depth              models.Depth
	Tried              string
}

// DailyUsageInfo reports a user's quota state for today.
type DailyUsageInfo struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

func usageInfo(used, limit int) DailyUsageInfo {
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	return DailyUsageInfo{Used: used, Limit: limit, Remaining: remaining}
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// GetDailyUsage returns the caller's quota state for the current server-local
// calendar day.
func (s *AnalysisService) GetDailyUsage(userID uint) (DailyUsageInfo, error) {
	var usage models.DailyUsage
	err := s.db.Where("user_id = ? AND date = ?", userID, today()).First(&usage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usageInfo(0, s.dailyLimit), nil
		}
		return DailyUsageInfo{}, fmt.Errorf("failed to read daily usage: %w", err)
	}
	return usageInfo(usage.Count, s.dailyLimit), nil
}

// AnalyzeLog runs one submission end to end and returns the resulting report.
// Identical non-personalized submissions resolve to the cached report; cache
// hits do not count against the daily quota. For fresh analyses the report
// row, the cache entry (skipped when a tried note personalizes the result),
// and the usage increment commit in a single transaction.
func (s *AnalysisService) AnalyzeLog(req AnalyzeRequest) (*models.AnalysisReport, error) {
	if utf8.RuneCountInString(req.RawLog) > MaxLogLength {
		return nil, &ValidationError{Message: fmt.Sprintf("log exceeds the %d character limit", MaxLogLength)}
	}
	if !req.LogType.Valid() {
		return nil, &ValidationError{Message: "logType must be JAVA or SPRING"}
	}
	if !req.Depth.Valid() {
		return nil, &ValidationError{Message: "depth must be FAST or DEEP"}
	}

	usage, err := s.GetDailyUsage(req.UserID)
	if err != nil {
		return nil, err
	}
	if usage.Remaining <= 0 {
		return nil, &QuotaExceededError{Limit: s.dailyLimit}
	}

	sanitized := req.RawLog
	if req.Sanitize {
		sanitized = SanitizeLog(req.RawLog)
	}

	opts := models.AnalysisOptions{
		Sanitize:           req.Sanitize,
		GenerateActionList: req.GenerateActionList,
		Depth:              req.Depth,
	}
	optionsJSON := "{}"
	if raw, err := json.Marshal(opts); err == nil {
		optionsJSON = string(raw)
	}

	// A tried note personalizes the output, so such submissions never touch
	// the cache in either direction.
	tried := strings.TrimSpace(req.Tried)
	fingerprint := Fingerprint(sanitized, req.LogType, optionsJSON)

	if tried == "" {
		var entry models.AnalysisCache
		err := s.db.Where("user_id = ? AND fingerprint = ?", req.UserID, fingerprint).First(&entry).Error
		switch {
		case err == nil:
			var cached models.AnalysisReport
			if err := s.db.Where("id = ? AND user_id = ?", entry.ReportID, req.UserID).First(&cached).Error; err != nil {
				return nil, fmt.Errorf("cached report %d missing: %w", entry.ReportID, err)
			}
			logger.WithUser(req.UserID).Debug("Returning cached analysis", map[string]interface{}{
				"report_id":   cached.ID,
				"fingerprint": fingerprint,
			})
			return &cached, nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("failed to check analysis cache: %w", err)
		}
	}

	result := s.engine.Analyze(sanitized, req.LogType, req.GenerateActionList, req.Depth, tried)

	report := models.AnalysisReport{
		UserID:            req.UserID,
		LogType:           req.LogType,
		RawLog:            req.RawLog,
		SanitizedLog:      sanitized,
		Title:             GenerateTitle(req.RawLog, req.LogType),
		TLDR:              result.TLDR,
		TopCauses:         result.TopCauses,
		VerificationSteps: result.VerificationSteps,
		SuggestedFixes:    result.SuggestedFixes,
		NeedMoreInfo:      result.NeedMoreInfo,
		Options:           opts,
		ErrorCategory:     DeriveErrorCategory(sanitized),
	}
	if tried != "" {
		report.Tried = &tried
	}

	// Report, cache entry, and usage count commit together or not at all.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}

		if tried == "" {
			entry := models.AnalysisCache{
				UserID:      req.UserID,
				Fingerprint: fingerprint,
				ReportID:    report.ID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("cache entry already exists for fingerprint %s: %w", fingerprint, err)
				}
				return fmt.Errorf("failed to record cache entry: %w", err)
			}
		}

		return incrementDailyUsage(tx, req.UserID)
	})
	if err != nil {
		return nil, err
	}

	logger.WithUser(req.UserID).Info("Analysis completed", map[string]interface{}{
		"report_id": report.ID,
		"category":  report.ErrorCategory,
		"cached":    false,
	})
	return &report, nil
}

func incrementDailyUsage(tx *gorm.DB, userID uint) error {
	date := today()
	var usage models.DailyUsage
	err := tx.Where("user_id = ? AND date = ?", userID, date).First(&usage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		usage = models.DailyUsage{UserID: userID, Date: date, Count: 1}
		if err := tx.Create(&usage).Error; err != nil {
			return fmt.Errorf("failed to create daily usage: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read daily usage: %w", err)
	}
	if err := tx.Model(&usage).Update("count", gorm.Expr("count + ?", 1)).Error; err != nil {
		return fmt.Errorf("failed to increment daily usage: %w", err)
	}
	return nil
}

// GetReport fetches one report scoped to its owner. A report that exists but
// belongs to another user is reported as not found.
func (s *AnalysisService) GetReport(reportID, userID uint) (*models.AnalysisReport, error) {
	var report models.AnalysisReport
	err := s.db.Where("id = ? AND user_id = ?", reportID, userID).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	return &report, nil
}

// GetHistory lists the caller's reports newest first. A non-blank query
// matches case-insensitively against title or sanitized log; a category other
// than ALL filters on the exact tag. Both may combine.
func (s *AnalysisService) GetHistory(userID uint, query, category string) ([]models.AnalysisReport, error) {
	q := s.db.Where("user_id = ?", userID)

	category = strings.TrimSpace(category)
	if category != "" && !strings.EqualFold(category, "ALL") {
		q = q.Where("error_category = ?", strings.ToUpper(category))
	}

	if search := strings.TrimSpace(query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(sanitized_log) LIKE ?", pattern, pattern)
	}

	var reports []models.AnalysisReport
	if err := q.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return reports, nil
}

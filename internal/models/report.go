package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// ErrorCategory is the closed classification tag assigned to a report at
// write time, used for history filtering.
type ErrorCategory string

const (
	CategoryNPE    ErrorCategory = "NPE"
	CategoryBean   ErrorCategory = "BEAN"
	CategoryPort   ErrorCategory = "PORT"
	CategorySQL    ErrorCategory = "SQL"
	CategoryConfig ErrorCategory = "CONFIG"
)

func (c ErrorCategory) Valid() bool {
	switch c {
	case CategoryNPE, CategoryBean, CategoryPort, CategorySQL, CategoryConfig:
		return true
	}
	return false
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
)

// Cause is one ranked entry of an analysis result.
type Cause struct {
	Cause      string  `json:"cause"`
	Confidence float64 `json:"confidence"`
	Evidence   string  `json:"evidence"`
}

// VerificationStep is one suggested diagnostic action.
type VerificationStep struct {
	Step    string `json:"step"`
	Why     string `json:"why"`
	Command string `json:"command"`
}

// SuggestedFix is one remediation suggestion with its risk level.
type SuggestedFix struct {
	Fix  string    `json:"fix"`
	Risk RiskLevel `json:"risk"`
}

// AnalysisOptions is the option set a report was produced with. Its JSON
// rendering (fixed struct-field order) is part of the cache fingerprint.
type AnalysisOptions struct {
	Sanitize           bool  `json:"sanitize"`
	GenerateActionList bool  `json:"generateActionList"`
	Depth              Depth `json:"depth"`
}

type (
	CauseList []Cause
	StepList  []VerificationStep
	FixList   []SuggestedFix
)

// The list types store as jsonb. A row whose stored JSON no longer decodes
// reads back as an absent list instead of failing the whole request.

func (l CauseList) Value() (driver.Value, error) { return jsonValue(l == nil, l) }
func (l *CauseList) Scan(src any) error          { return jsonScan(l, src) }

func (l StepList) Value() (driver.Value, error) { return jsonValue(l == nil, l) }
func (l *StepList) Scan(src any) error          { return jsonScan(l, src) }

func (l FixList) Value() (driver.Value, error) { return jsonValue(l == nil, l) }
func (l *FixList) Scan(src any) error          { return jsonScan(l, src) }

func (o AnalysisOptions) Value() (driver.Value, error) { return jsonValue(false, o) }
func (o *AnalysisOptions) Scan(src any) error          { return jsonScan(o, src) }

func jsonValue(isNil bool, v any) (driver.Value, error) {
	if isNil {
		return nil, nil
	}
	return json.Marshal(v)
}

func jsonScan(dest any, src any) error {
	var raw []byte
	switch s := src.(type) {
	case []byte:
		raw = s
	case string:
		raw = []byte(s)
	default:
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	// Malformed rows are treated as absent, not as errors.
	_ = json.Unmarshal(raw, dest)
	return nil
}

// AnalysisReport is one completed analysis. Rows are append-only and owned
// exclusively by the creating user; every read must be scoped by user_id.
type AnalysisReport struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	UserID            uint            `json:"userId" gorm:"not null;index"`
	LogType           LogType         `json:"logType" gorm:"not null"`
	RawLog            string          `json:"rawLog" gorm:"type:text"`
	SanitizedLog      string          `json:"sanitizedLog" gorm:"type:text"`
	Title             string          `json:"title"`
	TLDR              string          `json:"tldr" gorm:"type:text"`
	TopCauses         CauseList       `json:"topCauses,omitempty" gorm:"type:jsonb"`
	VerificationSteps StepList        `json:"verificationSteps,omitempty" gorm:"type:jsonb"`
	SuggestedFixes    FixList         `json:"suggestedFixes,omitempty" gorm:"type:jsonb"`
	NeedMoreInfo      string          `json:"needMoreInfo" gorm:"type:text"`
	Options           AnalysisOptions `json:"options" gorm:"type:jsonb"`
	Tried             *string         `json:"tried,omitempty" gorm:"type:text"`
	ErrorCategory     ErrorCategory   `json:"errorCategory" gorm:"not null;index"`
	CreatedAt         time.Time       `json:"createdAt"`
}

func (AnalysisReport) TableName() string {
	return "analysis_reports"
}

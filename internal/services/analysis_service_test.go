package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/logsage/backend/internal/models"
)

// Validation happens before any store access, so these run without a DB.

func TestAnalyzeLogRejectsOverlongInput(t *testing.T) {
	service := NewAnalysisService(nil, NewAnalysisEngine(), DefaultDailyLimit)

	_, err := service.AnalyzeLog(AnalyzeRequest{
		UserID:  1,
		RawLog:  strings.Repeat("x", MaxLogLength+1),
		LogType: models.LogTypeJava,
		Depth:   models.DepthFast,
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if !strings.Contains(vErr.Message, "8000") {
		t.Errorf("Expected the limit in the message, got %q", vErr.Message)
	}
}

func TestAnalyzeLogAcceptsExactLimitLengthCheck(t *testing.T) {
	service := NewAnalysisService(nil, NewAnalysisEngine(), DefaultDailyLimit)

	// Exactly 8000 characters passes the length gate, so the pipeline
	// reaches the quota check and panics on the nil store. An early
	// ValidationError return instead would mean the gate rejected a
	// legal input.
	defer func() {
		if recover() == nil {
			t.Errorf("A log of exactly %d characters must pass the length gate", MaxLogLength)
		}
	}()
	_, _ = service.AnalyzeLog(AnalyzeRequest{
		UserID:  1,
		RawLog:  strings.Repeat("x", MaxLogLength),
		LogType: models.LogTypeJava,
		Depth:   models.DepthFast,
	})
}

func TestAnalyzeLogRejectsUnknownEnums(t *testing.T) {
	service := NewAnalysisService(nil, NewAnalysisEngine(), DefaultDailyLimit)

	_, err := service.AnalyzeLog(AnalyzeRequest{
		UserID:  1,
		RawLog:  "NullPointerException",
		LogType: models.LogType("PERL"),
		Depth:   models.DepthFast,
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("Expected ValidationError for unknown log type, got %v", err)
	}

	_, err = service.AnalyzeLog(AnalyzeRequest{
		UserID:  1,
		RawLog:  "NullPointerException",
		LogType: models.LogTypeJava,
		Depth:   models.Depth("MEDIUM"),
	})
	if !errors.As(err, &vErr) {
		t.Errorf("Expected ValidationError for unknown depth, got %v", err)
	}
}

func TestUsageInfoArithmetic(t *testing.T) {
	tests := []struct {
		used      int
		limit     int
		remaining int
	}{
		{0, 20, 20},
		{5, 20, 15},
		{20, 20, 0},
		{25, 20, 0},
	}

	for _, test := range tests {
		info := usageInfo(test.used, test.limit)
		if info.Used != test.used || info.Limit != test.limit || info.Remaining != test.remaining {
			t.Errorf("usageInfo(%d, %d) = %+v, want remaining %d", test.used, test.limit, info, test.remaining)
		}
	}
}

func TestQuotaExceededErrorCarriesLimit(t *testing.T) {
	err := &QuotaExceededError{Limit: 20}
	if !strings.Contains(err.Error(), "20") {
		t.Errorf("Expected the ceiling in the message, got %q", err.Error())
	}
}

func TestNewAnalysisServiceDefaultsLimit(t *testing.T) {
	service := NewAnalysisService(nil, NewAnalysisEngine(), 0)
	if service.dailyLimit != DefaultDailyLimit {
		t.Errorf("Expected default limit %d, got %d", DefaultDailyLimit, service.dailyLimit)
	}
}

package services

import (
	"strings"
	"testing"

	"github.com/logsage/backend/internal/models"
)

func TestAnalyzeNullPointerLog(t *testing.T) {
	engine := NewAnalysisEngine()
	result := engine.Analyze("NullPointerException at com.foo.Bar", models.LogTypeJava, true, models.DepthFast, "")

	if !strings.Contains(strings.ToLower(result.TLDR), "null") {
		t.Errorf("Expected TLDR to mention null, got %q", result.TLDR)
	}
	if len(result.TopCauses) != 3 {
		t.Fatalf("Expected 3 causes, got %d", len(result.TopCauses))
	}
	if result.TopCauses[0].Confidence != 0.85 {
		t.Errorf("Expected top cause confidence 0.85, got %v", result.TopCauses[0].Confidence)
	}
	for _, cause := range result.TopCauses {
		if cause.Confidence <= 0 || cause.Confidence > 1 {
			t.Errorf("Confidence out of (0,1]: %v", cause.Confidence)
		}
	}
	if len(result.VerificationSteps) != 3 {
		t.Errorf("Expected 3 verification steps, got %d", len(result.VerificationSteps))
	}
	if len(result.SuggestedFixes) != 2 {
		t.Errorf("Expected 2 fixes for FAST depth, got %d", len(result.SuggestedFixes))
	}
}

func TestAnalyzeSignaturePriority(t *testing.T) {
	engine := NewAnalysisEngine()

	// NullPointerException wins even when a later signature also appears.
	result := engine.Analyze("NullPointerException then SQLException", models.LogTypeJava, false, models.DepthFast, "")
	if !strings.Contains(strings.ToLower(result.TLDR), "null") {
		t.Errorf("Expected null-pointer summary to take priority, got %q", result.TLDR)
	}

	result = engine.Analyze("BeanCreationException during context refresh", models.LogTypeSpring, false, models.DepthFast, "")
	if !strings.Contains(result.TLDR, "bean") {
		t.Errorf("Expected bean summary, got %q", result.TLDR)
	}
	if result.TopCauses[0].Confidence != 0.80 {
		t.Errorf("Expected bean top confidence 0.80, got %v", result.TopCauses[0].Confidence)
	}
}

func TestAnalyzeFallbackSummaryMentionsLogType(t *testing.T) {
	engine := NewAnalysisEngine()
	result := engine.Analyze("nothing recognizable here", models.LogTypeSpring, false, models.DepthFast, "")

	if !strings.Contains(result.TLDR, "SPRING") {
		t.Errorf("Expected fallback summary to carry the log type, got %q", result.TLDR)
	}
	if result.TopCauses[0].Confidence != 0.70 {
		t.Errorf("Expected generic top confidence 0.70, got %v", result.TopCauses[0].Confidence)
	}
}

func TestAnalyzeStepsOmittedWhenNotRequested(t *testing.T) {
	engine := NewAnalysisEngine()
	result := engine.Analyze("NullPointerException", models.LogTypeJava, false, models.DepthFast, "")

	if result.VerificationSteps != nil {
		t.Errorf("Expected no verification steps, got %d", len(result.VerificationSteps))
	}
}

func TestAnalyzeDeepDepthAppendsReviewFix(t *testing.T) {
	engine := NewAnalysisEngine()

	fast := engine.Analyze("NullPointerException", models.LogTypeJava, false, models.DepthFast, "")
	deep := engine.Analyze("NullPointerException", models.LogTypeJava, false, models.DepthDeep, "")

	if len(deep.SuggestedFixes) != len(fast.SuggestedFixes)+1 {
		t.Errorf("Expected DEEP to add one fix: fast=%d deep=%d", len(fast.SuggestedFixes), len(deep.SuggestedFixes))
	}
	last := deep.SuggestedFixes[len(deep.SuggestedFixes)-1]
	if !strings.Contains(last.Fix, "review") {
		t.Errorf("Expected the extra fix to be the review entry, got %q", last.Fix)
	}
}

func TestAnalyzeNeedMoreInfoThreshold(t *testing.T) {
	engine := NewAnalysisEngine()

	short := engine.Analyze("short log", models.LogTypeJava, false, models.DepthFast, "")
	long := engine.Analyze(strings.Repeat("x", 150), models.LogTypeJava, false, models.DepthFast, "")

	if short.NeedMoreInfo == long.NeedMoreInfo {
		t.Error("Expected different follow-up messages for short and long logs")
	}
	if !strings.Contains(short.NeedMoreInfo, "little context") {
		t.Errorf("Expected short-log message, got %q", short.NeedMoreInfo)
	}
}

func TestAnalyzeTriedSuppressesMatchingItems(t *testing.T) {
	engine := NewAnalysisEngine()

	// "breakpoint" is a suppression keyword shared with the variables step.
	result := engine.Analyze("NullPointerException", models.LogTypeJava, true, models.DepthFast, "already set a breakpoint")

	if len(result.VerificationSteps) != 2 {
		t.Fatalf("Expected the breakpoint step suppressed, got %d steps", len(result.VerificationSteps))
	}
	for _, step := range result.VerificationSteps {
		if strings.Contains(strings.ToLower(step.Command), "breakpoint") {
			t.Errorf("Breakpoint step survived suppression: %q", step.Step)
		}
	}
}

func TestAnalyzeTriedSubstringSuppression(t *testing.T) {
	engine := NewAnalysisEngine()

	// "Optional" shares a contiguous run of 5+ characters with the first
	// NPE fix but contains no listed keyword usable against fix two.
	result := engine.Analyze("NullPointerException", models.LogTypeJava, false, models.DepthFast, "wrapped it in Optional already")

	for _, fix := range result.SuggestedFixes {
		if strings.Contains(fix.Fix, "Optional") {
			t.Errorf("Fix sharing a long substring with the tried note survived: %q", fix.Fix)
		}
	}
}

func TestAnalyzeTriedSafetyValve(t *testing.T) {
	engine := NewAnalysisEngine()

	// A note matching every step (via the stack/breakpoint/reproduce
	// keywords) must leave the list untouched rather than empty.
	tried := "checked the stack, set a breakpoint, tried to reproduce"
	result := engine.Analyze("NullPointerException", models.LogTypeJava, true, models.DepthFast, tried)

	if len(result.VerificationSteps) != 3 {
		t.Errorf("Safety valve failed: expected all 3 steps back, got %d", len(result.VerificationSteps))
	}
}

func TestGenerateTitle(t *testing.T) {
	tests := []struct {
		rawLog   string
		logType  models.LogType
		expected string
	}{
		{"java.lang.NullPointerException: null", models.LogTypeJava, "NullPointerException analysis"},
		{"org.springframework.beans.factory.BeanCreationException", models.LogTypeSpring, "Spring BeanCreationException analysis"},
		{"java.sql.SQLException: bad grammar", models.LogTypeJava, "SQLException analysis"},
		{"java.lang.OutOfMemoryError: heap space", models.LogTypeJava, "OutOfMemoryError analysis"},
		{"", models.LogTypeJava, "JAVA log analysis"},
		{"   ", models.LogTypeSpring, "SPRING log analysis"},
		{"some generic\n\terror   text", models.LogTypeJava, "some generic error text"},
	}

	for _, test := range tests {
		if got := GenerateTitle(test.rawLog, test.logType); got != test.expected {
			t.Errorf("For %q expected title %q, got %q", test.rawLog, test.expected, got)
		}
	}
}

func TestGenerateTitleTruncatesLongLogs(t *testing.T) {
	raw := strings.Repeat("a", 80)
	title := GenerateTitle(raw, models.LogTypeJava)
	if len(title) != 50 {
		t.Errorf("Expected 50-character title, got %d: %q", len(title), title)
	}
}

func TestDeriveErrorCategory(t *testing.T) {
	tests := []struct {
		log      string
		expected models.ErrorCategory
	}{
		{"java.lang.NullPointerException", models.CategoryNPE},
		{"NoSuchBeanDefinitionException: no qualifying bean", models.CategoryBean},
		{"required a bean of type 'com.foo.Service'", models.CategoryBean},
		{"BeanCreationException: error creating bean", models.CategoryBean},
		{"java.net.BindException: Address already in use", models.CategoryPort},
		{"Web server failed to start. Port 8080 was already in use.", models.CategoryPort},
		{"java.sql.SQLException: connection refused", models.CategorySQL},
		{"bad SQL grammar via jdbc template", models.CategorySQL},
		{"Could not resolve placeholder 'foo' in application.properties", models.CategoryConfig},
		{"something entirely unrecognizable", models.CategoryConfig},
		{"", models.CategoryConfig},
	}

	for _, test := range tests {
		if got := DeriveErrorCategory(test.log); got != test.expected {
			t.Errorf("For %q expected category %s, got %s", test.log, test.expected, got)
		}
	}
}

func TestDeriveErrorCategoryPriority(t *testing.T) {
	// NPE outranks SQL when both signatures appear.
	log := "NullPointerException caused by SQLException"
	if got := DeriveErrorCategory(log); got != models.CategoryNPE {
		t.Errorf("Expected NPE to win the priority match, got %s", got)
	}
}

package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/logsage/backend/internal/models"
)

// AnalysisEngine produces structured analyses by matching a log against a
// fixed priority list of exception signatures. It is deterministic and cannot
// fail; content only selects which of the fixed tables is used.
type AnalysisEngine struct{}

func NewAnalysisEngine() *AnalysisEngine {
	return &AnalysisEngine{}
}

// AnalysisResult is the classifier output before persistence.
type AnalysisResult struct {
	TLDR              string
	TopCauses         models.CauseList
	VerificationSteps models.StepList
	SuggestedFixes    models.FixList
	NeedMoreInfo      string
}

type signature int

// Signature priority order. The first match wins.
const (
	sigNone signature = iota
	sigNullPointer
	sigBeanCreation
	sigSQL
	sigOutOfMemory
)

func detectSignature(log string) signature {
	switch {
	case strings.Contains(log, "NullPointerException"):
		return sigNullPointer
	case strings.Contains(log, "BeanCreationException"):
		return sigBeanCreation
	case strings.Contains(log, "SQLException"):
		return sigSQL
	case strings.Contains(log, "OutOfMemoryError"):
		return sigOutOfMemory
	}
	return sigNone
}

// Analyze classifies a sanitized log. Verification steps are produced only
// when generateActionList is set; DEEP depth appends an extra review fix.
// A non-blank tried note suppresses steps and fixes the user already tried,
// subject to a never-return-an-empty-list safety valve.
func (e *AnalysisEngine) Analyze(sanitizedLog string, logType models.LogType, generateActionList bool, depth models.Depth, tried string) AnalysisResult {
	sig := detectSignature(sanitizedLog)

	result := AnalysisResult{
		TLDR:           e.generateTLDR(sig, logType),
		TopCauses:      e.generateTopCauses(sig),
		SuggestedFixes: e.generateSuggestedFixes(sig, depth),
		NeedMoreInfo:   e.generateNeedMoreInfo(sanitizedLog),
	}
	if generateActionList {
		result.VerificationSteps = e.generateVerificationSteps()
	}

	if strings.TrimSpace(tried) != "" {
		result.VerificationSteps = suppressSteps(result.VerificationSteps, tried)
		result.SuggestedFixes = suppressFixes(result.SuggestedFixes, tried)
	}

	return result
}

func (e *AnalysisEngine) generateTLDR(sig signature, logType models.LogType) string {
	switch sig {
	case sigNullPointer:
		return "Detected a NullPointerException, usually a runtime failure caused by accessing an object that is null or was never initialized."
	case sigBeanCreation:
		return "Spring bean creation failed, most likely a dependency injection or configuration problem."
	case sigSQL:
		return "Database connectivity or SQL execution error; check the database configuration and the SQL statements involved."
	case sigOutOfMemory:
		return "Out of memory; inspect memory usage or increase the heap size."
	}
	return fmt.Sprintf("Detected a %s related error; the log needs further analysis.", logType)
}

func (e *AnalysisEngine) generateTopCauses(sig signature) models.CauseList {
	switch sig {
	case sigNullPointer:
		return models.CauseList{
			{Cause: "Object not initialized", Confidence: 0.85, Evidence: "The log contains a NullPointerException, which usually means a null object was dereferenced"},
			{Cause: "Method returned null", Confidence: 0.75, Evidence: "A method likely returned null and the caller never checked for it"},
			{Cause: "Collection or array is empty", Confidence: 0.65, Evidence: "An element of an empty collection or array may have been accessed"},
		}
	case sigBeanCreation:
		return models.CauseList{
			{Cause: "Circular dependency", Confidence: 0.80, Evidence: "Spring beans appear to depend on each other in a cycle"},
			{Cause: "Missing required dependency", Confidence: 0.75, Evidence: "A dependency the bean constructor or field requires is not available"},
			{Cause: "Configuration error", Confidence: 0.70, Evidence: "A @Component or @Service annotation may be missing, or the package scan path is wrong"},
		}
	}
	return models.CauseList{
		{Cause: "Configuration problem", Confidence: 0.70, Evidence: "Check that the relevant configuration files are correct"},
		{Cause: "Resource exhaustion", Confidence: 0.60, Evidence: "Memory, connection pools, or similar resources may be running out"},
		{Cause: "Incompatible versions", Confidence: 0.55, Evidence: "Check that dependency versions are compatible with each other"},
	}
}

func (e *AnalysisEngine) generateVerificationSteps() models.StepList {
	return models.StepList{
		{Step: "Inspect the exception stack", Why: "Pinpoints the failing method and line number", Command: "Read the full stack trace in the log"},
		{Step: "Inspect the variables involved", Why: "Confirms whether they were initialized correctly", Command: "Add logging or a breakpoint at the failing line"},
		{Step: "Reproduce the problem", Why: "Confirms the failure is deterministic", Command: "Re-run the operation with the same input"},
	}
}

func (e *AnalysisEngine) generateSuggestedFixes(sig signature, depth models.Depth) models.FixList {
	var fixes models.FixList
	switch sig {
	case sigNullPointer:
		fixes = models.FixList{
			{Fix: "Add a null check: guard with Optional or if (obj != null)", Risk: models.RiskLow},
			{Fix: "Enforce non-null values with @NonNull or a validator", Risk: models.RiskLow},
		}
	case sigBeanCreation:
		fixes = models.FixList{
			{Fix: "Break the circular dependency with @Lazy", Risk: models.RiskMedium},
			{Fix: "Check the @ComponentScan configuration so the bean is picked up", Risk: models.RiskLow},
		}
	default:
		fixes = models.FixList{
			{Fix: "Check the configuration files and related dependencies", Risk: models.RiskLow},
		}
	}

	if depth == models.DepthDeep {
		fixes = append(fixes, models.SuggestedFix{
			Fix:  "Run a deep code review covering design patterns and architecture",
			Risk: models.RiskMedium,
		})
	}
	return fixes
}

func (e *AnalysisEngine) generateNeedMoreInfo(sanitizedLog string) string {
	if len([]rune(sanitizedLog)) < 100 {
		return "The log carries little context. Provide the full exception stack, the relevant configuration, and the action that triggered it."
	}
	return "If the problem persists, provide the system environment, the relevant code snippets, and the complete error log."
}

// triedKeywords pairs English terms with their Chinese counterparts so a
// tried note in either language suppresses the matching suggestion.
var triedKeywords = []string{
	"stack", "堆栈",
	"breakpoint", "断点",
	"restart", "重启",
	"reproduce", "重现",
	"null", "空值",
	"config", "配置",
	"review", "审查",
	"log", "日志",
	"scan", "扫描",
	"lazy", "延迟",
}

// matchesTried reports whether an item's text overlaps a tried note: either
// both sides contain the same known keyword, or they share a contiguous
// case-insensitive run of at least 5 characters.
func matchesTried(itemText, tried string) bool {
	item := strings.ToLower(itemText)
	note := strings.ToLower(tried)

	for _, kw := range triedKeywords {
		if strings.Contains(item, kw) && strings.Contains(note, kw) {
			return true
		}
	}

	runes := []rune(note)
	for i := 0; i+5 <= len(runes); i++ {
		window := string(runes[i : i+5])
		if strings.TrimSpace(window) == "" {
			continue
		}
		if strings.Contains(item, window) {
			return true
		}
	}
	return false
}

func suppressSteps(steps models.StepList, tried string) models.StepList {
	if len(steps) == 0 {
		return steps
	}
	var kept models.StepList
	for _, s := range steps {
		if !matchesTried(s.Step+" "+s.Why+" "+s.Command, tried) {
			kept = append(kept, s)
		}
	}
	// Safety valve: never hand back an empty actionable list.
	if len(kept) == 0 {
		return steps
	}
	return kept
}

func suppressFixes(fixes models.FixList, tried string) models.FixList {
	if len(fixes) == 0 {
		return fixes
	}
	var kept models.FixList
	for _, f := range fixes {
		if !matchesTried(f.Fix, tried) {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return fixes
	}
	return kept
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// GenerateTitle derives a report title from the raw log, falling back to the
// first 50 characters when no known signature matches.
func GenerateTitle(rawLog string, logType models.LogType) string {
	if strings.TrimSpace(rawLog) == "" {
		return fmt.Sprintf("%s log analysis", logType)
	}
	lower := strings.ToLower(rawLog)
	switch {
	case strings.Contains(lower, "nullpointerexception"):
		return "NullPointerException analysis"
	case strings.Contains(lower, "beancreationexception"):
		return "Spring BeanCreationException analysis"
	case strings.Contains(lower, "sqlexception"):
		return "SQLException analysis"
	case strings.Contains(lower, "outofmemoryerror"):
		return "OutOfMemoryError analysis"
	}
	runes := []rune(rawLog)
	if len(runes) > 50 {
		runes = runes[:50]
	}
	title := strings.TrimSpace(string(runes))
	return whitespaceRun.ReplaceAllString(title, " ")
}

// DeriveErrorCategory assigns the history-filter tag for a sanitized log by
// fixed-priority keyword match, defaulting to CONFIG.
func DeriveErrorCategory(sanitizedLog string) models.ErrorCategory {
	lower := strings.ToLower(sanitizedLog)
	switch {
	case strings.Contains(lower, "nullpointerexception"):
		return models.CategoryNPE
	case strings.Contains(lower, "nosuchbeandefinitionexception"),
		strings.Contains(lower, "required a bean"),
		strings.Contains(lower, "beancreationexception"):
		return models.CategoryBean
	case strings.Contains(lower, "bindexception"),
		strings.Contains(lower, "address already in use"),
		strings.Contains(lower, "port 8080"):
		return models.CategoryPort
	case strings.Contains(lower, "sqlexception"),
		strings.Contains(lower, "sqlsyntaxerrorexception"),
		strings.Contains(lower, "jdbc"):
		return models.CategorySQL
	}
	return models.CategoryConfig
}

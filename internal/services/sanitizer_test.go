package services

import (
	"strings"
	"testing"
)

func TestSanitizeLogRedactions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "ipv4 address",
			input:    "connection refused from 192.168.1.100 during startup",
			expected: "connection refused from [IP] during startup",
		},
		{
			name:     "email address",
			input:    "user admin@example.com failed login",
			expected: "user [EMAIL] failed login",
		},
		{
			name:     "password pair",
			input:    "jdbc url with password=s3cr3t! appended",
			expected: "jdbc url with password=[HIDDEN] appended",
		},
		{
			name:     "password pair with whitespace",
			input:    "password  =  hunter2 in config",
			expected: "password=[HIDDEN] in config",
		},
		{
			name:     "pwd pair",
			input:    "pwd=abc123 trailing",
			expected: "pwd=[HIDDEN] trailing",
		},
		{
			name:     "no sensitive content",
			input:    "NullPointerException at com.foo.Bar",
			expected: "NullPointerException at com.foo.Bar",
		},
		{
			name:     "multiple redactions",
			input:    "10.0.0.1 bob@corp.io password=x",
			expected: "[IP] [EMAIL] password=[HIDDEN]",
		},
	}

	for _, test := range tests {
		result := SanitizeLog(test.input)
		if result != test.expected {
			t.Errorf("%s: expected %q, got %q", test.name, test.expected, result)
		}
	}
}

func TestSanitizeLogIdempotent(t *testing.T) {
	inputs := []string{
		"error at 192.168.0.1 reported by ops@example.com password=abc",
		"pwd = topsecret",
		"plain log line with nothing to redact",
		"",
	}

	for _, input := range inputs {
		once := SanitizeLog(input)
		twice := SanitizeLog(once)
		if once != twice {
			t.Errorf("sanitize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestSanitizeLogKeepsSurroundingText(t *testing.T) {
	input := "before 1.2.3.4 after"
	result := SanitizeLog(input)
	if !strings.HasPrefix(result, "before ") || !strings.HasSuffix(result, " after") {
		t.Errorf("surrounding text was modified: %q", result)
	}
}

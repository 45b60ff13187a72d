package controllers

import "testing"

func TestValidHistoryCategory(t *testing.T) {
	tests := []struct {
		category string
		valid    bool
	}{
		{"", true},
		{"ALL", true},
		{"all", true},
		{"All", true},
		{"NPE", true},
		{"npe", true},
		{"bean", true},
		{"PORT", true},
		{"sql", true},
		{"CONFIG", true},
		{" config ", true},
		{"MISC", false},
		{"npe,bean", false},
	}

	for _, test := range tests {
		if got := validHistoryCategory(test.category); got != test.valid {
			t.Errorf("validHistoryCategory(%q) = %v, want %v", test.category, got, test.valid)
		}
	}
}

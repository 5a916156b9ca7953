package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReport_Counts(t *testing.T) {
	var r Report
	r.DroppedRow(2)
	r.UnknownValue(3, "Operating Mode", "C4FM")
	r.UnparseableFrequency(3, "Step", "fast")

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 1, r.Count(SeverityInfo))
	assert.Equal(t, 2, r.Count(SeverityWarning))
	assert.Equal(t, 1, r.CountRule(RuleUnknownValue))
	assert.Equal(t, 1, r.CountRule(RuleMissingReceiveFrequency))
}

func TestReport_NilIsSafe(t *testing.T) {
	var r *Report
	r.DroppedRow(1)
	r.UnknownValue(1, "Skip", "x")

	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, r.Count(SeverityWarning))
	assert.Equal(t, 0, r.CountRule(RuleUnknownValue))
}

func TestIssue_Error(t *testing.T) {
	issue := &Issue{
		Severity:  SeverityWarning,
		RowNumber: 7,
		Column:    "Tone Mode",
		Value:     "Split",
		Message:   "value is not recognized and was left empty",
	}
	assert.Equal(t,
		"[WARNING] Row 7, Column 'Tone Mode': value is not recognized and was left empty (value: 'Split')",
		issue.Error())

	bare := &Issue{Severity: SeverityInfo, RowNumber: 1, Message: "note"}
	assert.Equal(t, "[INFO] Row 1: note", bare.Error())
}

func TestFormatIssues(t *testing.T) {
	var r Report
	r.UnknownValue(4, "Skip", "Maybe")

	text := FormatIssues(r.Issues)
	assert.Contains(t, text, "1 issue(s):")
	assert.Contains(t, text, "Column 'Skip'")

	assert.Equal(t, "No issues.\n", FormatIssues(nil))
}

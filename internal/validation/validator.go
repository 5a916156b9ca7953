// =============================================================================
// RT Systems to CHIRP Converter - Degradation Report
// =============================================================================
//
// The conversion never fails on bad cell content. Instead of aborting, the
// transformer substitutes a fallback value (empty string, 0.0) or drops the
// row. This module records each of those substitutions so they can be logged
// and reported after the run.
//
// ISSUE RULES:
//   - missing_receive_frequency : row dropped, its Location still consumed
//   - unknown_value             : enumerated value not in its table -> ""
//   - unparseable_frequency     : Offset / Step could not be parsed -> 0.0
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"
)

// =============================================================================
// ISSUE TYPES
// =============================================================================

// Severity of an issue. Nothing here is fatal.
type Severity string

const (
	// SeverityInfo marks expected behavior worth counting, such as dropped
	// placeholder rows.
	SeverityInfo Severity = "info"

	// SeverityWarning marks a value that was replaced by a fallback.
	SeverityWarning Severity = "warning"
)

// Rule identifiers.
const (
	RuleMissingReceiveFrequency = "missing_receive_frequency"
	RuleUnknownValue            = "unknown_value"
	RuleUnparseableFrequency    = "unparseable_frequency"
)

// Issue is a single recorded degradation.
type Issue struct {
	Severity Severity

	// RowNumber is the 1-based data row in the source file.
	RowNumber int

	// Column is the source column the value came from.
	Column string

	// Value is the raw source value.
	Value string

	// Rule is one of the Rule* identifiers.
	Rule string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (i *Issue) Error() string {
	if i.Column == "" {
		return fmt.Sprintf("[%s] Row %d: %s",
			strings.ToUpper(string(i.Severity)), i.RowNumber, i.Message)
	}
	return fmt.Sprintf("[%s] Row %d, Column '%s': %s (value: '%s')",
		strings.ToUpper(string(i.Severity)),
		i.RowNumber,
		i.Column,
		i.Message,
		i.Value,
	)
}

// =============================================================================
// REPORT
// =============================================================================

// Report collects issues for one conversion run. The zero value is ready to
// use; a nil *Report discards everything.
type Report struct {
	Issues []*Issue
}

// Add appends an issue.
func (r *Report) Add(issue *Issue) {
	if r == nil || issue == nil {
		return
	}
	r.Issues = append(r.Issues, issue)
}

// DroppedRow records a row skipped for lack of a receive frequency.
func (r *Report) DroppedRow(row int) {
	r.Add(&Issue{
		Severity:  SeverityInfo,
		RowNumber: row,
		Column:    "Receive Frequency",
		Rule:      RuleMissingReceiveFrequency,
		Message:   "row has no receive frequency and was skipped",
	})
}

// UnknownValue records an enumerated value that mapped to "".
func (r *Report) UnknownValue(row int, column, value string) {
	r.Add(&Issue{
		Severity:  SeverityWarning,
		RowNumber: row,
		Column:    column,
		Value:     value,
		Rule:      RuleUnknownValue,
		Message:   "value is not recognized and was left empty",
	})
}

// UnparseableFrequency records a frequency that was zeroed.
func (r *Report) UnparseableFrequency(row int, column, value string) {
	r.Add(&Issue{
		Severity:  SeverityWarning,
		RowNumber: row,
		Column:    column,
		Value:     value,
		Rule:      RuleUnparseableFrequency,
		Message:   "frequency could not be parsed and was written as 0.0",
	})
}

// Count returns the number of issues with the given severity.
func (r *Report) Count(sev Severity) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			n++
		}
	}
	return n
}

// CountRule returns the number of issues raised by rule.
func (r *Report) CountRule(rule string) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, issue := range r.Issues {
		if issue.Rule == rule {
			n++
		}
	}
	return n
}

// Len returns the total number of issues.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Issues)
}

// =============================================================================
// OUTPUT
// =============================================================================

// FormatIssues renders issues one per line, grouped under a count header.
func FormatIssues(issues []*Issue) string {
	if len(issues) == 0 {
		return "No issues.\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d issue(s):\n", len(issues))
	for _, issue := range issues {
		sb.WriteString("  ")
		sb.WriteString(issue.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

package schema

// SourceColumn is the closed set of RT Systems columns the transformer knows
// how to handle. Anything else parses to ColumnUnknown.
type SourceColumn int

const (
	ColumnUnknown SourceColumn = iota
	ColumnName
	ColumnReceiveFrequency
	ColumnOffsetFrequency
	ColumnOffsetDirection
	ColumnToneMode
	ColumnOperatingMode
	ColumnCTCSS
	ColumnDCS
	ColumnStep
	ColumnSkip
	ColumnTXPower
	ColumnComment
)

var sourceColumnNames = [...]string{
	ColumnUnknown:          "",
	ColumnName:             "Name",
	ColumnReceiveFrequency: "Receive Frequency",
	ColumnOffsetFrequency:  "Offset Frequency",
	ColumnOffsetDirection:  "Offset Direction",
	ColumnToneMode:         "Tone Mode",
	ColumnOperatingMode:    "Operating Mode",
	ColumnCTCSS:            "CTCSS",
	ColumnDCS:              "DCS",
	ColumnStep:             "Step",
	ColumnSkip:             "Skip",
	ColumnTXPower:          "TX Power",
	ColumnComment:          "Comment",
}

var sourceColumnsByName = func() map[string]SourceColumn {
	m := make(map[string]SourceColumn, len(sourceColumnNames))
	for i, name := range sourceColumnNames {
		if name != "" {
			m[name] = SourceColumn(i)
		}
	}
	return m
}()

// ParseSourceColumn resolves an export header. Matching is exact, as in the
// exporter's own output.
func ParseSourceColumn(header string) SourceColumn {
	if c, ok := sourceColumnsByName[header]; ok {
		return c
	}
	return ColumnUnknown
}

// String returns the RT Systems header for c.
func (c SourceColumn) String() string {
	if c < 0 || int(c) >= len(sourceColumnNames) {
		return ""
	}
	return sourceColumnNames[c]
}

package diag

// Severity orders diagnostics; Bag.Sort puts higher ones first and
// HasErrors counts SevError only.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]struct{ upper, lower string }{
	SevInfo:    {"INFO", "info"},
	SevWarning: {"WARNING", "warning"},
	SevError:   {"ERROR", "error"},
}

// Valid reports whether s is a declared severity. Severities read back
// from the disk cache are checked with it.
func (s Severity) Valid() bool {
	return int(s) < len(severityNames)
}

// String is the label of the pretty and JSON formats.
func (s Severity) String() string {
	if !s.Valid() {
		return "UNKNOWN"
	}
	return severityNames[s].upper
}

// Label is the lower-case form of golden output; unknown values read as info.
func (s Severity) Label() string {
	if !s.Valid() {
		return severityNames[SevInfo].lower
	}
	return severityNames[s].lower
}

package diag

// Severity orders diagnostics from informational to malformed source.
type Severity uint8

const (
	SevInfo    Severity = iota
	SevWarning          // the tree is still well formed
	SevError            // malformed source
)

var severityNames = [...]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prints paths under the working directory relative to it
	// and every other path as given.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Context is the number of source lines shown above the reported one.
	Context  int8
	PathMode PathMode
	BaseDir  string // for PathModeRelative, "" is the working directory
	Width    uint8  // максимальная ширина строки, 0 - не ограничено
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	BaseDir          string
	Max              int // обрезка вывода, не Bag
}

// TreeOpts configures FormatTree.
type TreeOpts struct {
	Color bool
	// Trivia lists the trivia of every token below it.
	Trivia bool
	// Structure expands directives and skipped text into their own trees.
	// It implies Trivia.
	Structure bool
	// Width caps the quoted token text, in terminal cells; 0 means 32.
	Width int
}

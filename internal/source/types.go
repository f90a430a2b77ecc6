package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHasBOM marks content starting with a UTF-8 byte order mark. The mark
	// is kept; the lexer reads it as whitespace.
	FileHasBOM
	// FileHasCRLF marks content with at least one "\r\n" line break.
	FileHasCRLF
)

// File captures metadata and content for a single source file. Content is
// kept byte for byte so that a tree built from it prints it back exactly.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the offset of the last byte of every line break.
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

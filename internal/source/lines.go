package source

import (
	"bytes"
	"path/filepath"
	"sort"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// buildLineIndex records where every line break ends. "\r\n" counts once, at
// its '\n'; a lone '\r' is a break of its own.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		switch {
		case b == '\n':
			out = append(out, uint32(i))
		case b == '\r' && (i+1 == len(content) || content[i+1] != '\n'):
			out = append(out, uint32(i))
		}
	}
	return out
}

func contentFlags(content []byte) FileFlags {
	var flags FileFlags
	if bytes.HasPrefix(content, bom) {
		flags |= FileHasBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		flags |= FileHasCRLF
	}
	return flags
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// number of breaks that end before off
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	var start uint32
	if line > 0 {
		start = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - start + 1}
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

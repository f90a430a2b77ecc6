package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var snippetSeeds = []string{
	"",
	"a;",
	"let x = call(a, b) + 1;\n",
	"{ nested(); { deeper(1, 2); } }\n",
	"f(x",
	"((((",
	"a + \"open\n",
	"// note\n/* block */ b;\n",
	"#define A\n#if A\nshown;\n#elif B\nother;\n#else\nhidden;\n#endif\n",
	"#if X\nskip me\n#endif\n",
	"#undef A\n#region r\nx;\n#endregion\n",
	"#if (A && !B) || C\nyes;\n#endif\n",
	"x = 12 + 1.5 - \"s\";\n",
	"a = b = c ? d : e;\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range snippetSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.vd файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".vd" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

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

// languageSeeds покрывают каждую конструкцию грамматики хотя бы раз.
var languageSeeds = []string{
	"",
	"let x = 1;",
	"let mut n: Int = 2; n += 3; n *= 4;",
	`let s: String = "a" + "b"; print(s);`,
	"let f: Float = 1.5 / 0.0;",
	"let a: Foo? = null;",
	"fn sq(x: Int): Int { return x * x; } print(sq(3));",
	"fn half(x: Float) = x / 2.0;",
	"fn hi() { print(1); }",
	"let inc = a -> a + 1; print(inc(1)); print(inc(2.0));",
	"let f = x -> { let y = x; return y; };",
	"let g: (Int) -> Int = x -> x;",
	"fn apply(g: (Int) -> Int, v: Int): Int { return g(v); }",
	"for (let i in 1..10) { if (i == 3) break; print(i); }",
	"let mut i = 0; while (i < 3) i += 1;",
	"let mut j = 3; until (j == 0) j -= 1;",
	"loop { break; }",
	"print(if (true) then 1 else 2);",
	"if (1 < 2 and not false or true) print(1); else print(2);",
	"print(typeof 1); print(clock());",
	"let a = 1; let b = 2; a = b = 3;",
	"/* block */ // line\nprint(-(1 - 2));",
	"let x = x;",
	"fn f(a: Int) {} f(1, 2);",
	"break;",
	"return 1;",
	"let = ;",
	"let x = 1 # 2;",
	`let s = "unterminated`,
	"fn f( { ) }",
	"((((((((((1))))))))));",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.zr файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".zr" {
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

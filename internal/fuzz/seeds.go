package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

var inlineSeeds = []string{
	"",
	"@closed\nclass Shape { class Circle : Shape { } }\n",
	"fn f(s: Shape) { switch s { case Circle c: break; default: break; } }\n",
	"fn f(o: Option<int>) -> int { return o switch { Some(var v) => v, None => 0, _ => 1 }; }\n",
	"fn f(s: Shape?) -> bool { return s is Circle { radius: > 1 } or null; }\n",
	"@closed interface I { }\n",
	"class A : B<C<D>> { x: int?; }\n",
	"fn f(x: T) { switch (x) { case (A a, _) when a: break; } }\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".ec" {
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

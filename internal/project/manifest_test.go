package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"enumclass/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), Template)
	src := filepath.Join(root, "a", "b", "shapes.ec")
	writeFile(t, src, "")

	got, err := FindManifest(src)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.EvalSymlinks(filepath.Join(root, ManifestName))
	if g, _ := filepath.EvalSymlinks(got); g != want {
		t.Fatalf("FindManifest = %s, want %s", got, want)
	}
}

func TestFindManifestMissing(t *testing.T) {
	if _, err := FindManifest(t.TempDir()); !errors.Is(err, ErrNoManifest) {
		// a manifest in some parent of the temp dir would be unusual
		t.Skipf("manifest above temp dir: %v", err)
	}
}

func TestLoadTemplateMatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, Template)
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	d := Default()
	if m.Analysis != d.Analysis || m.Output != d.Output {
		t.Fatalf("template = %+v %+v, defaults = %+v %+v", m.Analysis, m.Output, d.Analysis, d.Output)
	}
	if !m.Defined("output", "format") || m.Defined("output", "nope") {
		t.Fatal("Defined mismatch")
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[output]\nformat = \"json\"\n")
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Output.Format != "json" || m.Output.PathMode != "relative" || !m.Analysis.WildcardCoversNull {
		t.Fatalf("manifest = %+v", m)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"syntax.toml":  "[analysis\n",
		"unknown.toml": "[analysis]\ncolour = 1\n",
	} {
		path := filepath.Join(dir, name)
		writeFile(t, path, content)
		if _, err := Load(path); !errors.Is(err, ErrInvalidManifest) {
			t.Fatalf("%s: err = %v", name, err)
		}
	}
}

func TestOverrides(t *testing.T) {
	m := &Manifest{Severity: map[string]string{
		"EC2003": "error",
		"ec2004": "off",
		"EC9999": "error",
		"EC2001": "loud",
	}}
	got, problems := m.Overrides()
	if got[diag.CovUnreachablePattern] != (Override{Severity: diag.SevError}) {
		t.Fatalf("EC2003 = %+v", got[diag.CovUnreachablePattern])
	}
	if !got[diag.CovNoCaseImplements].Off {
		t.Fatalf("EC2004 = %+v", got[diag.CovNoCaseImplements])
	}
	if len(got) != 2 || len(problems) != 2 {
		t.Fatalf("overrides = %v, problems = %v", got, problems)
	}
	if problems[0].Code != diag.ProjManifestInvalid || problems[1].Code != diag.ProjUnknownCode {
		t.Fatalf("problems = %+v", problems)
	}
}

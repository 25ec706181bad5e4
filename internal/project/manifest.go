package project

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"enumclass/internal/diag"
)

// ErrInvalidManifest wraps TOML decoding failures.
var ErrInvalidManifest = errors.New("invalid " + ManifestName)

// Manifest is the decoded enumclass.toml. Fields left out of the file keep
// their defaults; Defined tells which ones were written.
type Manifest struct {
	Path     string            `toml:"-"`
	Analysis Analysis          `toml:"analysis"`
	Severity map[string]string `toml:"severity"`
	Output   Output            `toml:"output"`

	meta toml.MetaData
}

type Analysis struct {
	WildcardCoversNull bool `toml:"wildcard_covers_null"`
	MaxDiagnostics     int  `toml:"max_diagnostics"`
	Jobs               int  `toml:"jobs"`
}

type Output struct {
	Format   string `toml:"format"`
	PathMode string `toml:"path_mode"`
	Cache    bool   `toml:"cache"`
}

// Default is the configuration used without a manifest.
func Default() *Manifest {
	return &Manifest{
		Analysis: Analysis{WildcardCoversNull: true, MaxDiagnostics: 200},
		Output:   Output{Format: "pretty", PathMode: "relative"},
	}
}

// Load decodes the manifest at path over the defaults.
func Load(path string) (*Manifest, error) {
	m := Default()
	meta, err := toml.DecodeFile(path, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrInvalidManifest, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalidManifest, strings.Join(keys, ", "))
	}
	m.Path = path
	m.meta = meta
	return m, nil
}

// Defined reports whether key (e.g. "output", "format") was written in the
// file.
func (m *Manifest) Defined(key ...string) bool {
	return m != nil && m.meta.IsDefined(key...)
}

// Override replaces the severity of one diagnostic code, or drops it.
type Override struct {
	Off      bool
	Severity diag.Severity
}

// Problem is a manifest entry that could not be applied.
type Problem struct {
	Code diag.Code
	Msg  string
}

// Overrides parses the [severity] table. Entries with unknown codes or
// severities are returned as problems and skipped.
func (m *Manifest) Overrides() (map[diag.Code]Override, []Problem) {
	if m == nil || len(m.Severity) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(m.Severity))
	for k := range m.Severity {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make(map[diag.Code]Override, len(keys))
	var problems []Problem
	for _, k := range keys {
		code, ok := diag.ParseCode(k)
		if !ok {
			problems = append(problems, Problem{Code: diag.ProjUnknownCode, Msg: fmt.Sprintf("[severity] %s: unknown diagnostic code", k)})
			continue
		}
		v := m.Severity[k]
		if strings.EqualFold(strings.TrimSpace(v), "off") {
			out[code] = Override{Off: true}
			continue
		}
		sev, err := diag.ParseSeverity(v)
		if err != nil {
			problems = append(problems, Problem{Code: diag.ProjManifestInvalid, Msg: fmt.Sprintf("[severity] %s: %v", k, err)})
			continue
		}
		out[code] = Override{Severity: sev}
	}
	return out, problems
}

// Template is written by `enumclass init`.
const Template = `# enumclass configuration
[analysis]
wildcard_covers_null = true
max_diagnostics = 200
jobs = 0

[severity]
# EC2003 = "error"

[output]
format = "pretty"
path_mode = "relative"
cache = false
`

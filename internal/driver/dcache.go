package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"enumclass/internal/ast"
	"enumclass/internal/diag"
	"enumclass/internal/project"
	"enumclass/internal/sema"
	"enumclass/internal/source"
)

// Bump when DiskPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-file check results keyed by content hash and
// options. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached file result. Spans are stored without their
// FileID, which differs between runs.
type DiskPayload struct {
	Schema      uint16
	Diagnostics []cachedDiag
	Closed      []cachedClosed
	Analyses    []cachedAnalysis
}

type cachedRange struct {
	Start, End uint32
}

type cachedNote struct {
	At  cachedRange
	Msg string
}

type cachedEdit struct {
	At      cachedRange
	NewText string
	OldText string
}

type cachedFix struct {
	ID        string
	Title     string
	Preferred bool
	Edits     []cachedEdit
}

type cachedDiag struct {
	Severity uint8
	Code     uint16
	Message  string
	At       cachedRange
	Notes    []cachedNote
	Fixes    []cachedFix
}

type cachedCase struct {
	Name string
	At   cachedRange
}

type cachedClosed struct {
	Name  string
	At    cachedRange
	Cases []cachedCase
}

type cachedAnalysis struct {
	Kind       uint8
	At         cachedRange
	SumType    string
	Exhaustive bool
	Missing    []string
	Findings   int
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put writes payload atomically.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the payload for key. A missing entry or one written by another
// schema version is a miss, not an error.
func (c *DiskCache) Get(key project.Digest) (*DiskPayload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()
	var out DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return &out, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}

func toRange(sp source.Span) cachedRange { return cachedRange{Start: sp.Start, End: sp.End} }

func (r cachedRange) span(id source.FileID) source.Span {
	return source.Span{File: id, Start: r.Start, End: r.End}
}

// encodePayload flattens the per-file results. Every span of a file result
// lies in that file.
func encodePayload(fr *FileResult) *DiskPayload {
	p := &DiskPayload{Schema: diskCacheSchemaVersion}
	for _, d := range fr.Bag.Items() {
		cd := cachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			At:       toRange(d.Primary),
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{At: toRange(n.Span), Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			cf := cachedFix{ID: f.ID, Title: f.Title, Preferred: f.IsPreferred}
			for _, e := range f.Edits {
				cf.Edits = append(cf.Edits, cachedEdit{At: toRange(e.Span), NewText: e.NewText, OldText: e.OldText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		p.Diagnostics = append(p.Diagnostics, cd)
	}
	for _, ct := range fr.Closed {
		cc := cachedClosed{Name: ct.Name, At: toRange(ct.Span)}
		for _, c := range ct.Cases {
			cc.Cases = append(cc.Cases, cachedCase{Name: c.Name, At: toRange(c.Span)})
		}
		p.Closed = append(p.Closed, cc)
	}
	for _, a := range fr.Analyses {
		p.Analyses = append(p.Analyses, cachedAnalysis{
			Kind:       uint8(a.Kind),
			At:         toRange(a.Span),
			SumType:    a.SumType,
			Exhaustive: a.Exhaustive,
			Missing:    a.Missing,
			Findings:   a.Findings,
		})
	}
	return p
}

// decodePayload restores a file result for file id.
func decodePayload(p *DiskPayload, id source.FileID, maxDiagnostics int) (*diag.Bag, []sema.ClosedType, []sema.Analysis) {
	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range p.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  cd.At.span(id),
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: n.At.span(id), Msg: n.Msg})
		}
		for _, cf := range cd.Fixes {
			f := diag.Fix{ID: cf.ID, Title: cf.Title, IsPreferred: cf.Preferred}
			for _, e := range cf.Edits {
				f.Edits = append(f.Edits, diag.FixEdit{Span: e.At.span(id), NewText: e.NewText, OldText: e.OldText})
			}
			d.Fixes = append(d.Fixes, f)
		}
		bag.Add(d)
	}
	closed := make([]sema.ClosedType, 0, len(p.Closed))
	for _, cc := range p.Closed {
		ct := sema.ClosedType{Name: cc.Name, Span: cc.At.span(id)}
		for _, c := range cc.Cases {
			ct.Cases = append(ct.Cases, sema.Case{Name: c.Name, Span: c.At.span(id)})
		}
		closed = append(closed, ct)
	}
	analyses := make([]sema.Analysis, 0, len(p.Analyses))
	for _, ca := range p.Analyses {
		analyses = append(analyses, sema.Analysis{
			Kind:       ast.ConstructKind(ca.Kind),
			Span:       ca.At.span(id),
			SumType:    ca.SumType,
			Exhaustive: ca.Exhaustive,
			Missing:    ca.Missing,
			Findings:   ca.Findings,
		})
	}
	return bag, closed, analyses
}

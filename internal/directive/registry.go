package directive

import (
	"strings"
	"sync"

	"enumclass/internal/lexer"
	"enumclass/internal/source"
	"enumclass/internal/token"
)

// Registry collects directive scenarios from source files.
type Registry struct {
	mu          sync.Mutex
	scenarios   []Scenario
	byNamespace map[string][]int
	files       map[source.FileID]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		byNamespace: make(map[string][]int),
		files:       make(map[source.FileID]struct{}),
	}
}

// Add registers a scenario.
func (r *Registry) Add(scenario *Scenario) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := len(r.scenarios)
	r.scenarios = append(r.scenarios, *scenario)
	r.byNamespace[scenario.Namespace] = append(r.byNamespace[scenario.Namespace], idx)
	r.files[scenario.File] = struct{}{}
}

func (r *Registry) All() []Scenario {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Scenario(nil), r.scenarios...)
}

// FilterByNamespace returns scenarios matching any of the given namespaces.
// If namespaces is empty, returns all scenarios.
func (r *Registry) FilterByNamespace(namespaces []string) []Scenario {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(namespaces) == 0 {
		return append([]Scenario(nil), r.scenarios...)
	}
	var result []Scenario
	for _, ns := range namespaces {
		for _, idx := range r.byNamespace[ns] {
			result = append(result, r.scenarios[idx])
		}
	}
	return result
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scenarios)
}

// Covers reports whether file was collected. Every diagnostic in a covered
// file has to be expected by some directive.
func (r *Registry) Covers(file source.FileID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.files[file]
	return ok
}

// CollectFromFile lexes file and registers every `// ns: args` comment.
func (r *Registry) CollectFromFile(fs *source.FileSet, id source.FileID, sourceFile string) {
	file := fs.Get(id)
	if file == nil {
		return
	}
	r.mu.Lock()
	r.files[id] = struct{}{}
	r.mu.Unlock()

	namespaceIndex := make(map[string]int)
	for _, tok := range lexer.All(file, lexer.Options{KeepTrivia: true}) {
		for _, tr := range tok.Leading {
			if tr.Kind != token.TriviaLineComment {
				continue
			}
			ns, codes, ok := parseComment(tr.Text)
			if !ok {
				continue
			}
			start, _ := fs.Resolve(tr.Span)
			r.Add(&Scenario{
				Namespace:  ns,
				Index:      namespaceIndex[ns],
				SourceFile: sourceFile,
				File:       id,
				Line:       start.Line,
				Codes:      codes,
				Span:       tr.Span,
			})
			namespaceIndex[ns]++
		}
	}
}

// parseComment splits "// expect: EC2002, EC2003".
func parseComment(text string) (string, []string, bool) {
	body := strings.TrimSpace(strings.TrimPrefix(text, "//"))
	ns, args, ok := strings.Cut(body, ":")
	if !ok || ns != NamespaceExpect {
		return "", nil, false
	}
	codes := strings.FieldsFunc(args, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(codes) == 0 {
		return "", nil, false
	}
	return ns, codes, true
}

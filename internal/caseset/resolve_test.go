package caseset

import (
	"slices"
	"strings"
	"sync"
	"testing"
)

// fakeHierarchy models types as strings; "Option<int>" is an instantiation
// of the family "Option".
type fakeHierarchy struct {
	closed  map[string]bool
	members map[string][]string
	bases   map[string]string
}

func (h fakeHierarchy) Family(t string) string {
	if i := strings.IndexByte(t, '<'); i >= 0 {
		return t[:i]
	}
	return t
}

func (h fakeHierarchy) IsClosed(t string) bool { return h.closed[h.Family(t)] }
func (h fakeHierarchy) Members(t string) []string { return h.members[h.Family(t)] }
func (h fakeHierarchy) DirectBase(t string) (string, bool) {
	b, ok := h.bases[h.Family(t)]
	return b, ok
}

func (h fakeHierarchy) TypeArgs(t string) []string {
	i := strings.IndexByte(t, '<')
	if i < 0 || strings.HasSuffix(t, "<T>") {
		return nil
	}
	return strings.Split(t[i+1:len(t)-1], ",")
}

func (h fakeHierarchy) Instantiate(c string, args []string) (string, bool) {
	return h.Family(c) + "<" + strings.Join(args, ",") + ">", true
}

func shapes() fakeHierarchy {
	return fakeHierarchy{
		closed: map[string]bool{"Shape": true, "Polygon": true},
		members: map[string][]string{
			"Shape":   {"Circle", "Polygon", "Helper", "Rectangle", "Stray"},
			"Polygon": {"Triangle", "Square"},
		},
		bases: map[string]string{
			"Circle":    "Shape",
			"Polygon":   "Shape",
			"Rectangle": "Shape",
			"Triangle":  "Polygon",
			"Square":    "Polygon",
			"Stray":     "Other",
		},
	}
}

func TestResolveFlattensNestedHierarchies(t *testing.T) {
	got := Resolve(Build("Shape", shapes()))
	want := []string{"Circle", "Triangle", "Square", "Rectangle"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildKeepsNestedDescriptor(t *testing.T) {
	d := Build("Shape", shapes())
	if len(d.Cases) != 3 {
		t.Fatalf("direct cases = %d, want 3", len(d.Cases))
	}
	poly := d.Cases[1]
	if poly.IsLeaf() || poly.Nested.Type != "Polygon" || len(poly.Nested.Cases) != 2 {
		t.Fatalf("unexpected nested descriptor: %+v", poly)
	}
}

func TestResolveDeduplicates(t *testing.T) {
	d := &Descriptor[string]{Type: "A", Cases: []Case[string]{
		{Type: "X"},
		{Type: "B", Nested: &Descriptor[string]{Type: "B", Cases: []Case[string]{{Type: "X"}, {Type: "Y"}}}},
	}}
	if got := Resolve(d); !slices.Equal(got, []string{"X", "Y"}) {
		t.Fatalf("got %v", got)
	}
}

func TestResolveEmpty(t *testing.T) {
	h := fakeHierarchy{closed: map[string]bool{"Empty": true}}
	if got := Resolve(Build("Empty", h)); len(got) != 0 {
		t.Fatalf("got %v, want no cases", got)
	}
	if got := Resolve[string](nil); got != nil {
		t.Fatalf("nil descriptor resolved to %v", got)
	}
}

func TestBuildIgnoresCycles(t *testing.T) {
	h := fakeHierarchy{
		closed:  map[string]bool{"A": true, "B": true},
		members: map[string][]string{"A": {"B"}, "B": {"A", "Leaf"}},
		bases:   map[string]string{"B": "A", "A": "B", "Leaf": "B"},
	}
	if got := Resolve(Build("A", h)); !slices.Equal(got, []string{"Leaf"}) {
		t.Fatalf("got %v", got)
	}
}

func optionHierarchy() fakeHierarchy {
	return fakeHierarchy{
		closed:  map[string]bool{"Option": true},
		members: map[string][]string{"Option": {"Some", "None"}},
		bases:   map[string]string{"Some": "Option<T>", "None": "Option<T>"},
	}
}

func TestCacheSpecializesGenericFamilies(t *testing.T) {
	h := optionHierarchy()
	cache := NewCache[string]()
	if got := cache.Cases("Option<int>", h, h); !slices.Equal(got, []string{"Some<int>", "None<int>"}) {
		t.Fatalf("closed instantiation: got %v", got)
	}
	if got := cache.Cases("Option<T>", h, h); !slices.Equal(got, []string{"Some", "None"}) {
		t.Fatalf("unbound family: got %v", got)
	}
	if got := cache.Cases("Option<string>", h, h); !slices.Equal(got, []string{"Some<string>", "None<string>"}) {
		t.Fatalf("second instantiation: got %v", got)
	}
}

func TestCacheConcurrentUse(t *testing.T) {
	h := shapes()
	cache := NewCache[string]()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := cache.Cases("Shape", h, nil); len(got) != 4 {
				t.Errorf("got %v", got)
			}
		}()
	}
	wg.Wait()
}

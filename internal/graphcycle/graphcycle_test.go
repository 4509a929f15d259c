package graphcycle

import (
	"errors"
	"slices"
	"testing"
)

func chain(graph map[string]string) Config[string] {
	starts := make([]string, 0, len(graph))
	for k := range graph {
		starts = append(starts, k)
	}
	slices.Sort(starts)
	return Config[string]{
		Starts: starts,
		Exists: func(k string) bool {
			_, ok := graph[k]
			return ok
		},
		Next: func(k string) []string {
			if parent := graph[k]; parent != "" {
				return []string{parent}
			}
			return nil
		},
	}
}

func TestCollectCycle(t *testing.T) {
	errs := Collect(chain(map[string]string{
		"a": "b",
		"b": "c",
		"c": "a",
	}))
	if len(errs) != 1 {
		t.Fatalf("Collect() = %v, want one cycle", errs)
	}
	var cycle CycleError[string]
	if !errors.As(errs[0], &cycle) {
		t.Fatalf("Collect() error = %T, want CycleError[string]", errs[0])
	}
	if want := []string{"a", "b", "c", "a"}; !slices.Equal(cycle.Path, want) {
		t.Fatalf("cycle path = %v, want %v", cycle.Path, want)
	}
	if got := cycle.Error(); got != "cycle detected: a -> b -> c -> a" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestCollectSelfLoop(t *testing.T) {
	errs := Collect(chain(map[string]string{"a": "a"}))
	if len(errs) != 1 {
		t.Fatalf("Collect() = %v, want one cycle", errs)
	}
	var cycle CycleError[string]
	if !errors.As(errs[0], &cycle) || cycle.Key != "a" {
		t.Fatalf("Collect() error = %v, want cycle at a", errs[0])
	}
}

func TestCollectMissing(t *testing.T) {
	errs := Collect(chain(map[string]string{
		"a": "ghost",
		"b": "a",
		"c": "phantom",
	}))
	if len(errs) != 2 {
		t.Fatalf("Collect() = %v, want two missing errors", errs)
	}
	var missing MissingError[string]
	if !errors.As(errs[0], &missing) {
		t.Fatalf("Collect() error = %T, want MissingError[string]", errs[0])
	}
	if missing.From != "a" || missing.Key != "ghost" {
		t.Fatalf("missing = %+v, want from=a key=ghost", missing)
	}
}

func TestCollectAcyclic(t *testing.T) {
	errs := Collect(chain(map[string]string{
		"base":    "",
		"derived": "base",
		"leaf":    "derived",
	}))
	if len(errs) != 0 {
		t.Fatalf("Collect() = %v, want no errors", errs)
	}
}

func TestCollectNilNext(t *testing.T) {
	errs := Collect(Config[int]{Starts: []int{1}})
	if len(errs) != 1 {
		t.Fatalf("Collect() = %v, want one error", errs)
	}
}

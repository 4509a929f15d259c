package graphcycle

import (
	"fmt"
	"strings"
)

type visitState uint8

const (
	stateVisiting visitState = iota + 1
	stateDone
)

// CycleError reports one cycle. Path lists the nodes in edge order, starting
// and ending at Key.
type CycleError[K comparable] struct {
	Key  K
	Path []K
}

// Error returns the error string.
func (e CycleError[K]) Error() string {
	parts := make([]string, len(e.Path))
	for i, k := range e.Path {
		parts[i] = fmt.Sprint(k)
	}
	return "cycle detected: " + strings.Join(parts, " -> ")
}

// MissingError reports an edge from From to a node that does not exist.
type MissingError[K comparable] struct {
	From K
	Key  K
}

// Error returns the error string.
func (e MissingError[K]) Error() string {
	return fmt.Sprintf("missing node %v referenced from %v", e.Key, e.From)
}

// Config configures cycle detection over a directed graph.
type Config[K comparable] struct {
	// Exists reports whether a node is defined. Nil treats every node as defined.
	Exists func(K) bool
	// Next returns the outgoing edges of a defined node.
	Next func(K) []K
	// Starts lists the nodes to walk from, in reporting order.
	Starts []K
}

// Collect walks every start node and returns one error per distinct cycle and
// per missing edge, in discovery order. Nodes on a reported cycle are not
// reported again from later starts.
func Collect[K comparable](cfg Config[K]) []error {
	if cfg.Next == nil {
		return []error{fmt.Errorf("cycle detect: next function is nil")}
	}
	states := make(map[K]visitState, len(cfg.Starts))
	var (
		errs  []error
		stack []K
	)

	exists := func(k K) bool {
		if cfg.Exists == nil {
			return true
		}
		return cfg.Exists(k)
	}

	var visit func(key K)
	visit = func(key K) {
		switch states[key] {
		case stateVisiting:
			path := []K{key}
			for i := len(stack) - 1; i >= 0; i-- {
				path = append(path, stack[i])
				if stack[i] == key {
					break
				}
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			errs = append(errs, CycleError[K]{Key: key, Path: path})
			return
		case stateDone:
			return
		}

		states[key] = stateVisiting
		stack = append(stack, key)
		for _, next := range cfg.Next(key) {
			if !exists(next) {
				errs = append(errs, MissingError[K]{From: key, Key: next})
				continue
			}
			visit(next)
		}
		stack = stack[:len(stack)-1]
		states[key] = stateDone
	}

	for _, start := range cfg.Starts {
		if !exists(start) {
			continue
		}
		visit(start)
	}
	return errs
}

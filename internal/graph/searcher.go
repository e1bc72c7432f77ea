package graph

import (
	"fmt"
	"sync"

	"github.com/dominikbraun/graph"
)

// Query defaults and limits
const (
	DefaultDepth = 1
	MaxDepth     = 10
)

// Searcher answers reachability questions over built graph data.
type Searcher interface {
	// Callers returns the IDs of nodes that call target, up to depth
	// hops away.
	Callers(target string, depth int) ([]string, error)

	// Callees returns the IDs of nodes that target calls, up to depth
	// hops away.
	Callees(target string, depth int) ([]string, error)

	// Subtypes returns the IDs of nodes that inherit from target,
	// directly or transitively.
	Subtypes(target string) ([]string, error)
}

type searcher struct {
	mu       sync.RWMutex
	graph    graph.Graph[string, *Node]
	callers  map[string][]string
	callees  map[string][]string
	subtypes map[string][]string
	nodes    map[string]*Node
}

// NewSearcher builds an in-memory queryable graph from graph data.
func NewSearcher(data *GraphData) (Searcher, error) {
	s := &searcher{
		callers:  make(map[string][]string),
		callees:  make(map[string][]string),
		subtypes: make(map[string][]string),
		nodes:    make(map[string]*Node),
	}

	s.graph = graph.New(func(n *Node) string { return n.ID }, graph.Directed())

	for i := range data.Nodes {
		node := &data.Nodes[i]
		if _, exists := s.nodes[node.ID]; exists {
			continue
		}
		if err := s.graph.AddVertex(node); err != nil {
			return nil, fmt.Errorf("failed to add node %s: %w", node.ID, err)
		}
		s.nodes[node.ID] = node
	}

	for _, edge := range data.Edges {
		// Edges may reference symbols outside the analyzed set, so
		// missing-vertex errors are expected here.
		_ = s.graph.AddEdge(edge.From, edge.To)

		switch edge.Type {
		case EdgeCalls:
			s.callees[edge.From] = append(s.callees[edge.From], edge.To)
			s.callers[edge.To] = append(s.callers[edge.To], edge.From)
		case EdgeInherits:
			s.subtypes[edge.To] = append(s.subtypes[edge.To], edge.From)
		}
	}

	return s, nil
}

func (s *searcher) Callers(target string, depth int) ([]string, error) {
	return s.traverse(target, depth, s.callers)
}

func (s *searcher) Callees(target string, depth int) ([]string, error) {
	return s.traverse(target, depth, s.callees)
}

func (s *searcher) Subtypes(target string) ([]string, error) {
	return s.traverse(target, MaxDepth, s.subtypes)
}

// traverse walks the given adjacency index breadth-first up to depth
// hops, deduplicating revisited nodes.
func (s *searcher) traverse(target string, depth int, index map[string][]string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if depth <= 0 {
		depth = DefaultDepth
	}
	if depth > MaxDepth {
		depth = MaxDepth
	}

	visited := map[string]bool{target: true}
	results := []string{}
	frontier := []string{target}

	for level := 0; level < depth && len(frontier) > 0; level++ {
		var next []string
		for _, id := range frontier {
			for _, neighbor := range index[id] {
				if visited[neighbor] {
					continue
				}
				visited[neighbor] = true
				results = append(results, neighbor)
				next = append(next, neighbor)
			}
		}
		frontier = next
	}

	return results, nil
}

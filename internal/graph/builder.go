// Package graph assembles per-file parse results into a project-wide
// symbol graph with call and inheritance edges.
package graph

import (
	"github.com/symscope/symscope/internal/model"
)

// NodeKind classifies a graph node.
type NodeKind string

const (
	NodeClass     NodeKind = "class"
	NodeInterface NodeKind = "interface"
	NodeTrait     NodeKind = "trait"
	NodeEnum      NodeKind = "enum"
	NodeFunction  NodeKind = "function"
	NodeMethod    NodeKind = "method"
)

// EdgeType classifies a graph edge.
type EdgeType string

const (
	EdgeCalls    EdgeType = "calls"
	EdgeInherits EdgeType = "inherits"
)

// Node is one symbol in the project graph. The ID is the symbol's
// qualified name prefixed with its namespace when one is declared.
type Node struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Kind      NodeKind `json:"kind"`
	FilePath  string   `json:"file_path"`
	StartLine int      `json:"start_line"`
	Score     float64  `json:"score,omitempty"`
}

// Edge is a directed relationship between two nodes. To may reference a
// symbol outside the analyzed set (an external library call).
type Edge struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Type EdgeType `json:"type"`
}

// GraphData is the serializable form of the project graph.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Build assembles graph data from a batch of parse results. Failed
// files contribute whatever symbols they still carry.
func Build(results []*model.ParseResult) *GraphData {
	data := &GraphData{
		Nodes: []Node{},
		Edges: []Edge{},
	}

	for _, result := range results {
		for _, sym := range result.Symbols {
			node := Node{
				ID:        qualifyID(result, sym.QualifiedName),
				Name:      sym.Name,
				Kind:      NodeKind(sym.Kind),
				FilePath:  result.FilePath,
				StartLine: sym.StartLine,
			}
			if sym.Score != nil {
				node.Score = *sym.Score
			}
			data.Nodes = append(data.Nodes, node)
		}

		for _, call := range result.Calls {
			if call.Caller == "" {
				continue
			}
			data.Edges = append(data.Edges, Edge{
				From: qualifyID(result, call.Caller),
				To:   qualifyID(result, call.Callee),
				Type: EdgeCalls,
			})
		}

		for _, inh := range result.Inheritances {
			data.Edges = append(data.Edges, Edge{
				From: qualifyID(result, inh.Child),
				To:   qualifyID(result, inh.Parent),
				Type: EdgeInherits,
			})
		}
	}

	return data
}

func qualifyID(result *model.ParseResult, name string) string {
	if result.Namespace == "" {
		return name
	}
	return result.Namespace + "." + name
}

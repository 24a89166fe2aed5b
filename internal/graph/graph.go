// Package graph defines the declarative node-graph document that drives
// generation. Graphs are authored in an external visual editor and arrive
// here as JSON; this package parses, validates and compiles them into a
// form the engine can interpret.
package graph

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Structural errors surfaced by Validate. The engine downgrades these to a
// fallback generation rather than failing the request.
var (
	ErrNoStartNode       = errors.New("no start node found in graph")
	ErrMultipleStartNode = errors.New("graph has more than one start node")
	ErrDanglingEdge      = errors.New("edge references a node not present in the graph")
)

// Kind identifies a node's behavior. The set is closed; unknown kinds are
// carried through and skipped by the interpreter.
type Kind string

const (
	KindStart        Kind = "start"
	KindOutput       Kind = "output"
	KindSubgraph     Kind = "subgraph"
	KindRoom         Kind = "room"
	KindRoomChain    Kind = "room_chain"
	KindBranch       Kind = "branch"
	KindMerge        Kind = "merge"
	KindSpawnPoint   Kind = "spawn_point"
	KindLootDrop     Kind = "loot_drop"
	KindEncounter    Kind = "encounter"
	KindProp         Kind = "prop"
	KindRandomSelect Kind = "random_select"
	KindSequence     Kind = "sequence"
	KindCondition    Kind = "condition"
	KindLoop         Kind = "loop"
	KindDistribution Kind = "distribution"
	KindCurve        Kind = "curve"
	KindTable        Kind = "table"
)

// Generator is a complete generator definition: the graph plus the
// constraint and parameter declarations the editor attaches to it.
type Generator struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Type         string        `json:"type"`
	Graph        Graph         `json:"graph"`
	Constraints  []Constraint  `json:"constraints,omitempty"`
	Parameters   []Parameter   `json:"parameters,omitempty"`
	OutputSchema *OutputSchema `json:"outputSchema,omitempty"`
}

// Graph is the node/edge document. Immutable during execution.
type Graph struct {
	Nodes  []Node  `json:"nodes"`
	Edges  []Edge  `json:"edges"`
	Groups []Group `json:"groups,omitempty"`
}

// Node is a single graph node. Config holds the typed per-kind payload
// produced by Compile; it is nil until the graph has been compiled.
type Node struct {
	ID       string   `json:"id"`
	Kind     Kind     `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
	Inputs   []Port   `json:"inputs,omitempty"`
	Outputs  []Port   `json:"outputs,omitempty"`

	Config any `json:"-"`
}

// Position is the node's location on the editor canvas. It has no effect on
// generation; it is preserved so documents round-trip.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData carries the node label plus free-form per-node configuration.
// On the wire the extra keys are flattened into the same JSON object as the
// label, matching the editor's document format.
type NodeData struct {
	Label string
	Extra map[string]json.RawMessage
}

// UnmarshalJSON splits the flattened object into the label and the
// remaining free-form keys.
func (d *NodeData) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if label, ok := raw["label"]; ok {
		if err := json.Unmarshal(label, &d.Label); err != nil {
			return fmt.Errorf("node label: %w", err)
		}
		delete(raw, "label")
	}
	d.Extra = raw
	return nil
}

// MarshalJSON re-flattens the label and extra keys into one object.
func (d NodeData) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.Extra)+1)
	for k, v := range d.Extra {
		out[k] = v
	}
	label, err := json.Marshal(d.Label)
	if err != nil {
		return nil, err
	}
	out["label"] = label
	return json.Marshal(out)
}

// Port is a data-typed connection point on a node.
type Port struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	DataType string `json:"data_type"`
	Label    string `json:"label,omitempty"`
}

// Edge is a directed connection between two node ports.
type Edge struct {
	ID       string        `json:"id"`
	Source   PortRef       `json:"source"`
	Target   PortRef       `json:"target"`
	Metadata *EdgeMetadata `json:"metadata,omitempty"`
}

// PortRef addresses one port on one node.
type PortRef struct {
	NodeID string `json:"nodeId"`
	PortID string `json:"portId"`
}

// EdgeMetadata holds editor-only edge decoration.
type EdgeMetadata struct {
	Label    string `json:"label,omitempty"`
	Animated bool   `json:"animated,omitempty"`
}

// Group is an editor-side visual grouping of nodes.
type Group struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	NodeIDs []string `json:"node_ids"`
	Color   string   `json:"color,omitempty"`
}

// Constraint declares a quality check evaluated against generated layouts.
type Constraint struct {
	ID           string                     `json:"id"`
	Type         string                     `json:"type"`
	Parameters   map[string]json.RawMessage `json:"parameters,omitempty"`
	ErrorMessage string                     `json:"error_message"`
	Severity     string                     `json:"severity"`
}

// Parameter declares a tunable exposed by the generator.
type Parameter struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Default     json.RawMessage `json:"default"`
	Min         *float64        `json:"min,omitempty"`
	Max         *float64        `json:"max,omitempty"`
	Options     []string        `json:"options,omitempty"`
	Description string          `json:"description,omitempty"`
}

// OutputSchema describes the shape of the generated output.
type OutputSchema struct {
	Type   string            `json:"type"`
	Fields map[string]string `json:"fields"`
}

// NodeByID returns the node with the given id, or nil.
func (g *Graph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// StartNode returns the unique start node, or an error when the graph has
// none or more than one.
func (g *Graph) StartNode() (*Node, error) {
	var start *Node
	for i := range g.Nodes {
		if g.Nodes[i].Kind == KindStart {
			if start != nil {
				return nil, ErrMultipleStartNode
			}
			start = &g.Nodes[i]
		}
	}
	if start == nil {
		return nil, ErrNoStartNode
	}
	return start, nil
}

// OutgoingEdges returns the edges whose source is the given node, in the
// order they appear in the edge list.
func (g *Graph) OutgoingEdges(nodeID string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Source.NodeID == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// Validate checks the graph's structural invariants: exactly one start node
// and edge endpoints that resolve to existing nodes.
func (g *Graph) Validate() error {
	if _, err := g.StartNode(); err != nil {
		return err
	}
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = true
	}
	for _, e := range g.Edges {
		if !ids[e.Source.NodeID] {
			return fmt.Errorf("%w: edge %s source %s", ErrDanglingEdge, e.ID, e.Source.NodeID)
		}
		if !ids[e.Target.NodeID] {
			return fmt.Errorf("%w: edge %s target %s", ErrDanglingEdge, e.ID, e.Target.NodeID)
		}
	}
	return nil
}

// ParseGenerator decodes, validates and compiles a generator document.
func ParseGenerator(data []byte) (*Generator, error) {
	var gen Generator
	if err := json.Unmarshal(data, &gen); err != nil {
		return nil, fmt.Errorf("parse generator: %w", err)
	}
	if err := gen.Graph.Validate(); err != nil {
		return nil, err
	}
	if err := gen.Graph.Compile(); err != nil {
		return nil, err
	}
	return &gen, nil
}

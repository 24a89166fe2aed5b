package graph

import (
	"encoding/json"
	"errors"
	"testing"
)

const simpleDoc = `{
  "id": "test",
  "name": "Test Generator",
  "type": "dungeon",
  "graph": {
    "nodes": [
      {
        "id": "start",
        "type": "start",
        "position": {"x": 0, "y": 0},
        "data": {"label": "Start"},
        "outputs": [{"id": "out", "type": "output", "data_type": "flow"}]
      },
      {
        "id": "room1",
        "type": "room",
        "position": {"x": 200, "y": 0},
        "data": {"label": "Room", "minWidth": 6, "maxWidth": 9, "roomType": "treasure"},
        "inputs": [{"id": "in", "type": "input", "data_type": "flow"}],
        "outputs": [{"id": "out", "type": "output", "data_type": "flow"}]
      },
      {
        "id": "output",
        "type": "output",
        "position": {"x": 400, "y": 0},
        "data": {"label": "Output"},
        "inputs": [{"id": "in", "type": "input", "data_type": "flow"}]
      }
    ],
    "edges": [
      {"id": "e1", "source": {"nodeId": "start", "portId": "out"}, "target": {"nodeId": "room1", "portId": "in"}},
      {"id": "e2", "source": {"nodeId": "room1", "portId": "out"}, "target": {"nodeId": "output", "portId": "in"}}
    ]
  }
}`

func TestParseGenerator(t *testing.T) {
	gen, err := ParseGenerator([]byte(simpleDoc))
	if err != nil {
		t.Fatalf("ParseGenerator failed: %v", err)
	}

	if gen.ID != "test" || gen.Name != "Test Generator" {
		t.Errorf("header mismatch: %q %q", gen.ID, gen.Name)
	}
	if len(gen.Graph.Nodes) != 3 || len(gen.Graph.Edges) != 2 {
		t.Fatalf("expected 3 nodes / 2 edges, got %d / %d", len(gen.Graph.Nodes), len(gen.Graph.Edges))
	}

	room := gen.Graph.NodeByID("room1")
	if room == nil {
		t.Fatal("room1 not found")
	}
	params, ok := room.Config.(*RoomParams)
	if !ok {
		t.Fatalf("room1 config has type %T", room.Config)
	}
	if params.MinWidth != 6 || params.MaxWidth != 9 {
		t.Errorf("width bounds = [%v,%v], want [6,9]", params.MinWidth, params.MaxWidth)
	}
	// Unset fields keep their defaults
	if params.MinHeight != 5 || params.MaxHeight != 10 {
		t.Errorf("height bounds = [%v,%v], want defaults [5,10]", params.MinHeight, params.MaxHeight)
	}
	if params.RoomType != "treasure" {
		t.Errorf("roomType = %q, want treasure", params.RoomType)
	}
}

func TestValidateNoStartNode(t *testing.T) {
	g := Graph{Nodes: []Node{{ID: "a", Kind: KindRoom}}}
	if err := g.Validate(); !errors.Is(err, ErrNoStartNode) {
		t.Errorf("Validate() = %v, want ErrNoStartNode", err)
	}
}

func TestValidateMultipleStartNodes(t *testing.T) {
	g := Graph{Nodes: []Node{
		{ID: "a", Kind: KindStart},
		{ID: "b", Kind: KindStart},
	}}
	if err := g.Validate(); !errors.Is(err, ErrMultipleStartNode) {
		t.Errorf("Validate() = %v, want ErrMultipleStartNode", err)
	}
}

func TestValidateDanglingEdge(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "start", Kind: KindStart}},
		Edges: []Edge{{
			ID:     "e1",
			Source: PortRef{NodeID: "start", PortID: "out"},
			Target: PortRef{NodeID: "ghost", PortID: "in"},
		}},
	}
	if err := g.Validate(); !errors.Is(err, ErrDanglingEdge) {
		t.Errorf("Validate() = %v, want ErrDanglingEdge", err)
	}
}

func TestCompileMalformedConfig(t *testing.T) {
	g := Graph{Nodes: []Node{{
		ID:   "loop1",
		Kind: KindLoop,
		Data: NodeData{Extra: map[string]json.RawMessage{
			"iterations": json.RawMessage(`"three"`),
		}},
	}}}
	if err := g.Compile(); err == nil {
		t.Error("Compile should reject a non-numeric iteration count")
	}
}

func TestCompileDefaults(t *testing.T) {
	g := Graph{Nodes: []Node{
		{ID: "chain", Kind: KindRoomChain},
		{ID: "loot", Kind: KindLootDrop},
		{ID: "merge", Kind: KindMerge},
	}}
	if err := g.Compile(); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	chain := g.NodeByID("chain").Config.(*ChainParams)
	if chain.Count != 3 || !chain.Linear {
		t.Errorf("chain defaults = count %d linear %v, want 3 true", chain.Count, chain.Linear)
	}
	loot := g.NodeByID("loot").Config.(*LootParams)
	if loot.ItemCount != 1 {
		t.Errorf("loot default itemCount = %d, want 1", loot.ItemCount)
	}
	if g.NodeByID("merge").Config != nil {
		t.Error("merge nodes carry no config")
	}
}

func TestOutgoingEdgesOrder(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a", Kind: KindStart}, {ID: "b"}, {ID: "c"}},
		Edges: []Edge{
			{ID: "e1", Source: PortRef{NodeID: "a"}, Target: PortRef{NodeID: "b"}},
			{ID: "e2", Source: PortRef{NodeID: "b"}, Target: PortRef{NodeID: "c"}},
			{ID: "e3", Source: PortRef{NodeID: "a"}, Target: PortRef{NodeID: "c"}},
		},
	}
	out := g.OutgoingEdges("a")
	if len(out) != 2 || out[0].ID != "e1" || out[1].ID != "e3" {
		t.Errorf("OutgoingEdges(a) = %v", out)
	}
}

func TestNodeDataRoundTrip(t *testing.T) {
	in := []byte(`{"label":"Room","count":4,"linear":false}`)
	var d NodeData
	if err := json.Unmarshal(in, &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Label != "Room" || len(d.Extra) != 2 {
		t.Fatalf("parsed %q with %d extra keys", d.Label, len(d.Extra))
	}

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back NodeData
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	if back.Label != "Room" || string(back.Extra["count"]) != "4" {
		t.Errorf("round trip lost data: %+v", back)
	}
}

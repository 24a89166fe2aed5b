package graph

import (
	"encoding/json"
	"fmt"
)

// Typed node payloads. Each carries only the fields its kind needs; values
// are decoded from the node's free-form data once, at compile time, so
// malformed configuration surfaces before execution instead of being
// silently defaulted on every visit.

// RoomParams configures a single room node and the room portion of a chain.
type RoomParams struct {
	MinWidth  float64  `json:"minWidth"`
	MaxWidth  float64  `json:"maxWidth"`
	MinHeight float64  `json:"minHeight"`
	MaxHeight float64  `json:"maxHeight"`
	RoomType  string   `json:"roomType"`
	Shape     string   `json:"shape"`
	Tags      []string `json:"tags"`
}

// DefaultRoomParams returns the room bounds and type used when a node
// leaves them unset.
func DefaultRoomParams() RoomParams {
	return RoomParams{
		MinWidth:  5,
		MaxWidth:  10,
		MinHeight: 5,
		MaxHeight: 10,
		RoomType:  "default",
	}
}

// ChainParams configures a room_chain node.
type ChainParams struct {
	RoomParams
	Count  int  `json:"count"`
	Linear bool `json:"linear"`
}

// SpawnParams configures a spawn_point node.
type SpawnParams struct {
	SpawnType string `json:"spawnType"`
}

// EncounterParams configures an encounter node.
type EncounterParams struct {
	EnemyCount int `json:"enemyCount"`
}

// LootParams configures a loot_drop node.
type LootParams struct {
	ItemCount int `json:"itemCount"`
}

// LoopParams configures a loop node.
type LoopParams struct {
	Iterations int `json:"iterations"`
}

// Compile decodes every node's free-form data into its typed payload.
// Nodes of kinds with no payload (start, merge, ...) are left with a nil
// Config and the interpreter treats them as pass-through.
func (g *Graph) Compile() error {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		cfg, err := compileNode(n)
		if err != nil {
			return fmt.Errorf("node %s (%s): %w", n.ID, n.Kind, err)
		}
		n.Config = cfg
	}
	return nil
}

func compileNode(n *Node) (any, error) {
	switch n.Kind {
	case KindRoom:
		params := DefaultRoomParams()
		if err := decodeExtra(n.Data.Extra, &params); err != nil {
			return nil, err
		}
		return &params, nil
	case KindRoomChain:
		params := ChainParams{RoomParams: DefaultRoomParams(), Count: 3, Linear: true}
		if err := decodeExtra(n.Data.Extra, &params); err != nil {
			return nil, err
		}
		return &params, nil
	case KindSpawnPoint:
		params := SpawnParams{SpawnType: "enemy"}
		if err := decodeExtra(n.Data.Extra, &params); err != nil {
			return nil, err
		}
		return &params, nil
	case KindEncounter:
		params := EncounterParams{EnemyCount: 2}
		if err := decodeExtra(n.Data.Extra, &params); err != nil {
			return nil, err
		}
		return &params, nil
	case KindLootDrop:
		params := LootParams{ItemCount: 1}
		if err := decodeExtra(n.Data.Extra, &params); err != nil {
			return nil, err
		}
		return &params, nil
	case KindLoop:
		params := LoopParams{Iterations: 3}
		if err := decodeExtra(n.Data.Extra, &params); err != nil {
			return nil, err
		}
		return &params, nil
	default:
		return nil, nil
	}
}

// decodeExtra overlays the keys present in extra onto v, which arrives
// pre-populated with defaults. Only keys v declares are considered; the
// editor stores unrelated presentation keys alongside node config.
func decodeExtra(extra map[string]json.RawMessage, v any) error {
	if len(extra) == 0 {
		return nil
	}
	merged, err := json.Marshal(extra)
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, v)
}

// Package engine implements the generation pipeline: the room synthesizer,
// the graph interpreter, the seed-driven fallback generator and the
// request/result boundary that ties them together.
package engine

import (
	"fmt"
	"strings"

	"github.com/HexSleeves/dungeon-forge/internal/layout"
	"github.com/HexSleeves/dungeon-forge/internal/rng"
)

// entityPadding keeps placed entities off room walls.
const entityPadding = 1.5

// RoomShape is the closed set of room silhouettes. Shape currently only
// tags room metadata; the generated bounds stay rectangular.
type RoomShape int

const (
	Rectangular RoomShape = iota
	LShaped
	Circular
	Irregular
)

// ParseShape maps a free-form shape string to a RoomShape, defaulting to
// Rectangular for anything unrecognized.
func ParseShape(s string) RoomShape {
	switch strings.ToLower(s) {
	case "l-shaped", "lshaped":
		return LShaped
	case "circular", "circle":
		return Circular
	case "irregular":
		return Irregular
	default:
		return Rectangular
	}
}

// String returns the shape tag recorded in room metadata.
func (s RoomShape) String() string {
	switch s {
	case LShaped:
		return "LShaped"
	case Circular:
		return "Circular"
	case Irregular:
		return "Irregular"
	default:
		return "Rectangular"
	}
}

// RoomConfig bounds the dimensions and tags of synthesized rooms.
type RoomConfig struct {
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	MaxHeight float64
	Shape     RoomShape
	RoomType  string
	Tags      []string
}

// DefaultRoomConfig returns the bounds used when a node supplies none.
func DefaultRoomConfig() RoomConfig {
	return RoomConfig{
		MinWidth:  5,
		MaxWidth:  10,
		MinHeight: 5,
		MaxHeight: 10,
		Shape:     Rectangular,
		RoomType:  "default",
	}
}

// GenerateRoom synthesizes one room with its corner at basePosition and
// dimensions drawn from the config bounds.
func GenerateRoom(stream *rng.Stream, config RoomConfig, basePosition layout.Point, roomID string) layout.Room {
	width := stream.Float(config.MinWidth, config.MaxWidth)
	height := stream.Float(config.MinHeight, config.MaxHeight)

	metadata := map[string]any{"shape": config.Shape.String()}
	if len(config.Tags) > 0 {
		metadata["tags"] = config.Tags
	}

	return layout.Room{
		ID:   roomID,
		Type: config.RoomType,
		Bounds: layout.Rect{
			X:      basePosition.X,
			Y:      basePosition.Y,
			Width:  width,
			Height: height,
		},
		Entities: []layout.PlacedEntity{},
		Metadata: metadata,
	}
}

// GenerateChain synthesizes count rooms laid out one after another. Linear
// chains always advance rightward; otherwise each step moves right 70% of
// the time, down the rest, with a small positional jitter.
func GenerateChain(stream *rng.Stream, count int, config RoomConfig, startPosition layout.Point, baseID string, linear bool) []layout.Room {
	rooms := make([]layout.Room, 0, count)
	pos := startPosition

	for i := 0; i < count; i++ {
		roomID := fmt.Sprintf("%s_%d", baseID, i)
		room := GenerateRoom(stream, config, pos, roomID)

		if linear || stream.Bool(0.7) {
			pos.X += room.Bounds.Width + stream.Float(3, 8)
		} else {
			pos.Y += room.Bounds.Height + stream.Float(3, 8)
		}
		if !linear {
			pos.X += stream.Float(-2, 2)
			pos.Y += stream.Float(-2, 2)
		}

		rooms = append(rooms, room)
	}

	return rooms
}

// DoorPosition returns a point on the room edge facing the given direction.
// The coordinate along the edge is drawn from its middle 50% so doors never
// land on corners.
func DoorPosition(room *layout.Room, direction layout.Direction, stream *rng.Stream) layout.Point {
	b := room.Bounds
	switch direction {
	case layout.Right:
		return layout.Point{
			X: b.X + b.Width,
			Y: b.Y + stream.Float(b.Height*0.25, b.Height*0.75),
		}
	case layout.Left:
		return layout.Point{
			X: b.X,
			Y: b.Y + stream.Float(b.Height*0.25, b.Height*0.75),
		}
	case layout.Down:
		return layout.Point{
			X: b.X + stream.Float(b.Width*0.25, b.Width*0.75),
			Y: b.Y + b.Height,
		}
	default: // Up
		return layout.Point{
			X: b.X + stream.Float(b.Width*0.25, b.Width*0.75),
			Y: b.Y,
		}
	}
}

// AddEntities places between minCount and maxCount entities of the given
// type at random interior points, inset from the walls. The room is mutated
// in place; the caller must own it exclusively.
func AddEntities(stream *rng.Stream, room *layout.Room, entityType string, minCount, maxCount int) {
	count := stream.IntBetween(minCount, maxCount)
	b := room.Bounds

	for i := 0; i < count; i++ {
		room.Entities = append(room.Entities, layout.PlacedEntity{
			ID:   fmt.Sprintf("%s_%s_entity_%d", room.ID, entityType, i),
			Type: entityType,
			Position: layout.Point{
				X: b.X + stream.Float(entityPadding, b.Width-entityPadding),
				Y: b.Y + stream.Float(entityPadding, b.Height-entityPadding),
			},
		})
	}
}

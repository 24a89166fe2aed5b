package engine

import (
	"fmt"

	"github.com/HexSleeves/dungeon-forge/internal/layout"
	"github.com/HexSleeves/dungeon-forge/internal/rng"
)

// fallbackRoomTypes are the interior room types the fallback generator
// draws from. The first room is always "start" and the last always "boss".
var fallbackRoomTypes = []string{"default", "treasure", "boss", "shop"}

// GenerateFallback is the non-graph generator: a purely seed-driven layout
// of 4-8 rooms placed in a rough grid walk. It is used when a request
// carries no graph, and as the recovery path when graph interpretation
// fails.
func GenerateFallback(stream *rng.Stream) *layout.Layout {
	roomCount := stream.IntBetween(4, 8)
	rooms := make([]layout.Room, 0, roomCount)
	connections := make([]layout.Connection, 0, roomCount-1)
	spawnPoints := []layout.SpawnPoint{}

	x, y := 0.0, 0.0

	for i := 0; i < roomCount; i++ {
		var roomType string
		switch {
		case i == 0:
			roomType = "start"
		case i == roomCount-1:
			roomType = "boss"
		default:
			roomType = fallbackRoomTypes[stream.Intn(len(fallbackRoomTypes))]
		}

		width := stream.Float(5, 10)
		height := stream.Float(5, 10)

		rooms = append(rooms, layout.Room{
			ID:       fmt.Sprintf("room_%d", i),
			Type:     roomType,
			Bounds:   layout.Rect{X: x, Y: y, Width: width, Height: height},
			Entities: []layout.PlacedEntity{},
		})

		// Interior rooms get enemy spawns clustered near their center
		if i > 0 && roomType != "boss" {
			spawnCount := stream.IntBetween(1, 3)
			for j := 0; j < spawnCount; j++ {
				spawnPoints = append(spawnPoints, layout.SpawnPoint{
					ID:   fmt.Sprintf("spawn_%d_%d", i, j),
					Type: "enemy",
					Position: layout.Point{
						X: x + width/2 + stream.Float(-2, 2),
						Y: y + height/2 + stream.Float(-2, 2),
					},
					RoomID: fmt.Sprintf("room_%d", i),
				})
			}
		}

		// Doors are fixed at edge midpoints on this path, unlike the
		// randomized graph-driven door placement
		if i > 0 {
			prev := rooms[i-1].Bounds
			connections = append(connections, layout.Connection{
				FromRoomID: fmt.Sprintf("room_%d", i-1),
				ToRoomID:   fmt.Sprintf("room_%d", i),
				FromDoor:   layout.Point{X: prev.X + prev.Width, Y: prev.Y + prev.Height/2},
				ToDoor:     layout.Point{X: x, Y: y + height/2},
			})
		}

		if stream.Bool(0.5) {
			x += width + 5 + stream.Float(0, 10)
		} else {
			y += height + 5 + stream.Float(0, 10)
			if stream.Bool(0.5) {
				x += stream.Float(-5, 5)
			}
		}
	}

	return &layout.Layout{
		Rooms:       rooms,
		Connections: connections,
		SpawnPoints: spawnPoints,
		PlayerStart: rooms[0].Bounds.Center(),
		Exits:       []layout.Point{rooms[len(rooms)-1].Bounds.Center()},
	}
}

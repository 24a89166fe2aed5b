package engine

import (
	"reflect"
	"testing"

	"github.com/HexSleeves/dungeon-forge/internal/rng"
)

func TestFallbackLayoutShape(t *testing.T) {
	for seed := uint64(0); seed < 25; seed++ {
		result := GenerateFallback(rng.New(seed))

		if len(result.Rooms) < 4 || len(result.Rooms) > 8 {
			t.Fatalf("seed %d: room count %d outside [4,8]", seed, len(result.Rooms))
		}
		if result.Rooms[0].Type != "start" {
			t.Errorf("seed %d: first room type %q, want start", seed, result.Rooms[0].Type)
		}
		if result.Rooms[len(result.Rooms)-1].Type != "boss" {
			t.Errorf("seed %d: last room type %q, want boss", seed, result.Rooms[len(result.Rooms)-1].Type)
		}
		if len(result.Connections) != len(result.Rooms)-1 {
			t.Errorf("seed %d: %d connections for %d rooms", seed, len(result.Connections), len(result.Rooms))
		}
		if result.PlayerStart != result.Rooms[0].Bounds.Center() {
			t.Errorf("seed %d: player start not at first room center", seed)
		}
		if len(result.Exits) != 1 {
			t.Errorf("seed %d: exit count %d, want 1", seed, len(result.Exits))
		}
	}
}

func TestFallbackDeterminism(t *testing.T) {
	r1 := GenerateFallback(rng.New(12345))
	r2 := GenerateFallback(rng.New(12345))
	if !reflect.DeepEqual(r1, r2) {
		t.Error("same seed produced different fallback layouts")
	}

	r3 := GenerateFallback(rng.New(54321))
	if reflect.DeepEqual(r1, r3) {
		t.Error("different seeds produced identical fallback layouts")
	}
}

func TestFallbackConnectionIntegrity(t *testing.T) {
	result := GenerateFallback(rng.New(42))

	ids := make(map[string]bool)
	for _, room := range result.Rooms {
		ids[room.ID] = true
	}
	for _, conn := range result.Connections {
		if !ids[conn.FromRoomID] || !ids[conn.ToRoomID] {
			t.Errorf("connection references unknown room: %+v", conn)
		}
	}
}

func TestFallbackSpawnPlacement(t *testing.T) {
	result := GenerateFallback(rng.New(7))

	for _, sp := range result.SpawnPoints {
		if sp.Type != "enemy" {
			t.Errorf("fallback spawn type %q, want enemy", sp.Type)
		}
		room := result.RoomByID(sp.RoomID)
		if room == nil {
			t.Fatalf("spawn references unknown room %q", sp.RoomID)
		}
		if room.Type == "start" || room.Type == "boss" {
			t.Errorf("spawn placed in %s room", room.Type)
		}
	}

	// Dimensions stay inside the fallback's [5,10) draw
	for _, room := range result.Rooms {
		if room.Bounds.Width < 5 || room.Bounds.Width >= 10 ||
			room.Bounds.Height < 5 || room.Bounds.Height >= 10 {
			t.Errorf("room dimensions outside [5,10): %+v", room.Bounds)
		}
	}
}

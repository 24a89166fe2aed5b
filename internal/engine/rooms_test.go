package engine

import (
	"testing"

	"github.com/HexSleeves/dungeon-forge/internal/layout"
	"github.com/HexSleeves/dungeon-forge/internal/rng"
)

func TestGenerateRoomBounds(t *testing.T) {
	stream := rng.New(12345)
	config := DefaultRoomConfig()

	for i := 0; i < 100; i++ {
		room := GenerateRoom(stream, config, layout.Point{X: 10, Y: 20}, "room_0")

		if room.Bounds.Width <= 0 || room.Bounds.Height <= 0 {
			t.Fatalf("room %d has non-positive dimensions: %+v", i, room.Bounds)
		}
		if room.Bounds.Width < config.MinWidth || room.Bounds.Width > config.MaxWidth {
			t.Errorf("width %v outside [%v,%v]", room.Bounds.Width, config.MinWidth, config.MaxWidth)
		}
		if room.Bounds.Height < config.MinHeight || room.Bounds.Height > config.MaxHeight {
			t.Errorf("height %v outside [%v,%v]", room.Bounds.Height, config.MinHeight, config.MaxHeight)
		}
		if room.Bounds.X != 10 || room.Bounds.Y != 20 {
			t.Errorf("room corner moved from base position: %+v", room.Bounds)
		}
	}
}

func TestGenerateRoomMetadata(t *testing.T) {
	stream := rng.New(1)
	config := DefaultRoomConfig()
	config.Shape = Circular
	config.Tags = []string{"dark", "wet"}

	room := GenerateRoom(stream, config, layout.Point{}, "room_0")

	if room.Metadata["shape"] != "Circular" {
		t.Errorf("shape metadata = %v, want Circular", room.Metadata["shape"])
	}
	tags, ok := room.Metadata["tags"].([]string)
	if !ok || len(tags) != 2 {
		t.Errorf("tags metadata = %v", room.Metadata["tags"])
	}
}

func TestParseShape(t *testing.T) {
	cases := map[string]RoomShape{
		"l-shaped":  LShaped,
		"LShaped":   LShaped,
		"circular":  Circular,
		"Circle":    Circular,
		"irregular": Irregular,
		"":          Rectangular,
		"hexagonal": Rectangular,
	}
	for in, want := range cases {
		if got := ParseShape(in); got != want {
			t.Errorf("ParseShape(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGenerateChainCount(t *testing.T) {
	stream := rng.New(42)
	rooms := GenerateChain(stream, 5, DefaultRoomConfig(), layout.Point{}, "chain_0", true)

	if len(rooms) != 5 {
		t.Fatalf("chain produced %d rooms, want 5", len(rooms))
	}
	for i, room := range rooms {
		want := "chain_0_" + string(rune('0'+i))
		if room.ID != want {
			t.Errorf("room %d id = %q, want %q", i, room.ID, want)
		}
	}
}

func TestGenerateChainLinearAdvancesRight(t *testing.T) {
	stream := rng.New(7)
	rooms := GenerateChain(stream, 4, DefaultRoomConfig(), layout.Point{}, "c", true)

	for i := 1; i < len(rooms); i++ {
		prev, cur := rooms[i-1].Bounds, rooms[i].Bounds
		if cur.X <= prev.X {
			t.Errorf("linear chain did not advance rightward at %d: %v -> %v", i, prev.X, cur.X)
		}
		if cur.Y != prev.Y {
			t.Errorf("linear chain moved vertically at %d: %v -> %v", i, prev.Y, cur.Y)
		}
	}
}

func TestDoorPositionOnEdge(t *testing.T) {
	stream := rng.New(99)
	room := layout.Room{Bounds: layout.Rect{X: 10, Y: 20, Width: 8, Height: 4}}

	for i := 0; i < 50; i++ {
		right := DoorPosition(&room, layout.Right, stream)
		if right.X != 18 {
			t.Fatalf("right door off edge: %+v", right)
		}
		if right.Y < 20+4*0.25 || right.Y > 20+4*0.75 {
			t.Errorf("right door outside middle 50%% of edge: %+v", right)
		}

		up := DoorPosition(&room, layout.Up, stream)
		if up.Y != 20 {
			t.Fatalf("up door off edge: %+v", up)
		}
		if up.X < 10+8*0.25 || up.X > 10+8*0.75 {
			t.Errorf("up door outside middle 50%% of edge: %+v", up)
		}
	}
}

func TestAddEntitiesContainment(t *testing.T) {
	stream := rng.New(555)
	room := layout.Room{
		ID:     "room_0",
		Bounds: layout.Rect{X: 5, Y: 5, Width: 10, Height: 10},
	}

	AddEntities(stream, &room, "enemy", 3, 6)

	if len(room.Entities) < 3 || len(room.Entities) > 6 {
		t.Fatalf("entity count %d outside [3,6]", len(room.Entities))
	}
	for _, e := range room.Entities {
		if e.Type != "enemy" {
			t.Errorf("entity type = %q", e.Type)
		}
		b := room.Bounds
		if e.Position.X < b.X+entityPadding || e.Position.X > b.X+b.Width-entityPadding ||
			e.Position.Y < b.Y+entityPadding || e.Position.Y > b.Y+b.Height-entityPadding {
			t.Errorf("entity outside inset bounds: %+v", e.Position)
		}
	}
}

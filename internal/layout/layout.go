// Package layout defines the generated dungeon data model: rooms,
// connections, spawn points and the final layout handed back to callers.
// Geometry is in abstract world units, not tiles.
package layout

// Point is a position in world space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the geometric center of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains returns true if the given point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Direction is one of the four axis-aligned facings the cursor can take.
type Direction int

const (
	Right Direction = iota
	Left
	Up
	Down
)

// Opposite returns the facing 180 degrees from this one.
func (d Direction) Opposite() Direction {
	switch d {
	case Right:
		return Left
	case Left:
		return Right
	case Up:
		return Down
	default:
		return Up
	}
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Room is a single generated room. The type tag is a free string; "start"
// and "boss" have reserved meanings for the first and last rooms.
type Room struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Bounds   Rect           `json:"bounds"`
	Tiles    [][]int        `json:"tiles,omitempty"`
	Entities []PlacedEntity `json:"entities"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// PlacedEntity is an entity positioned inside a room.
type PlacedEntity struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Position Point          `json:"position"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Connection links two rooms with a door point on each boundary.
type Connection struct {
	FromRoomID string `json:"fromRoomId"`
	ToRoomID   string `json:"toRoomId"`
	FromDoor   Point  `json:"fromDoor"`
	ToDoor     Point  `json:"toDoor"`
}

// SpawnPoint marks a position inside a room where something appears at play
// time, tagged with a free-form type such as "enemy" or "loot".
type SpawnPoint struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Position Point  `json:"position"`
	RoomID   string `json:"roomId"`
}

// Layout is the final generation output. It is fully owned by the caller
// once returned; the engine keeps no reference to it.
type Layout struct {
	Rooms       []Room       `json:"rooms"`
	Connections []Connection `json:"connections"`
	SpawnPoints []SpawnPoint `json:"spawnPoints"`
	PlayerStart Point        `json:"playerStart"`
	Exits       []Point      `json:"exits"`
}

// RoomByID returns the room with the given id, or nil if absent.
func (l *Layout) RoomByID(id string) *Room {
	for i := range l.Rooms {
		if l.Rooms[i].ID == id {
			return &l.Rooms[i]
		}
	}
	return nil
}

// Bounds returns the smallest rectangle covering every room, or a zero rect
// when the layout has no rooms.
func (l *Layout) Bounds() Rect {
	if len(l.Rooms) == 0 {
		return Rect{}
	}
	b := l.Rooms[0].Bounds
	minX, minY := b.X, b.Y
	maxX, maxY := b.X+b.Width, b.Y+b.Height
	for _, room := range l.Rooms[1:] {
		r := room.Bounds
		if r.X < minX {
			minX = r.X
		}
		if r.Y < minY {
			minY = r.Y
		}
		if r.X+r.Width > maxX {
			maxX = r.X + r.Width
		}
		if r.Y+r.Height > maxY {
			maxY = r.Y + r.Height
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

package engine

import (
	"errors"
	"fmt"

	"github.com/HexSleeves/dungeon-forge/internal/graph"
	"github.com/HexSleeves/dungeon-forge/internal/layout"
	"github.com/HexSleeves/dungeon-forge/internal/rng"
)

// maxNodeExecutions bounds graph traversal so cyclic graphs without a
// terminating edge fail instead of hanging.
const maxNodeExecutions = 1000

// Interpreter errors. These are structural failures; the engine responds by
// falling back to the procedural generator.
var (
	ErrExecutionLimit = errors.New("maximum node executions exceeded (possible infinite loop)")
	ErrNodeNotFound   = errors.New("node not found")
)

// execContext is the mutable state threaded through one traversal: the
// accumulated layout pieces plus the placement cursor. One context exists
// per Execute call and is never shared.
type execContext struct {
	rooms       []layout.Room
	connections []layout.Connection
	spawnPoints []layout.SpawnPoint
	cursor      layout.Point
	direction   layout.Direction

	nodeExecutions int
	variables      map[string]any
}

func newExecContext() *execContext {
	return &execContext{
		direction: layout.Right,
		variables: make(map[string]any),
	}
}

// Interpreter walks a node graph and synthesizes a layout from it.
type Interpreter struct {
	stream *rng.Stream
	params map[string]any
}

// NewInterpreter creates an interpreter over a seeded stream. params holds
// request-level overrides such as minRoomSize/maxRoomSize.
func NewInterpreter(stream *rng.Stream, params map[string]any) *Interpreter {
	return &Interpreter{stream: stream, params: params}
}

// Execute interprets the generator's graph from its start node and returns
// the resulting layout along with the number of node executions performed.
func (in *Interpreter) Execute(gen *graph.Generator) (*layout.Layout, int, error) {
	g := &gen.Graph
	ctx := newExecContext()

	start, err := g.StartNode()
	if err != nil {
		return nil, 0, err
	}

	if err := in.executeNode(start.ID, g, ctx); err != nil {
		return nil, ctx.nodeExecutions, err
	}

	playerStart := layout.Point{}
	var exits []layout.Point
	if len(ctx.rooms) > 0 {
		playerStart = ctx.rooms[0].Bounds.Center()
		exits = []layout.Point{ctx.rooms[len(ctx.rooms)-1].Bounds.Center()}
	}

	return &layout.Layout{
		Rooms:       ctx.rooms,
		Connections: ctx.connections,
		SpawnPoints: ctx.spawnPoints,
		PlayerStart: playerStart,
		Exits:       exits,
	}, ctx.nodeExecutions, nil
}

// executeNode runs one node and, unless the kind manages its own
// continuation, recurses into every outgoing edge in edge order.
func (in *Interpreter) executeNode(nodeID string, g *graph.Graph, ctx *execContext) error {
	node := g.NodeByID(nodeID)
	if node == nil {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}

	ctx.nodeExecutions++
	if ctx.nodeExecutions > maxNodeExecutions {
		return ErrExecutionLimit
	}

	switch node.Kind {
	case graph.KindStart:
		// proceed to connected nodes
	case graph.KindOutput:
		// this traversal branch is done
		return nil
	case graph.KindRoom:
		in.executeRoom(node, ctx)
	case graph.KindRoomChain:
		in.executeRoomChain(node, ctx)
	case graph.KindBranch:
		// branch drives its own continuation
		return in.executeBranch(node, g, ctx)
	case graph.KindMerge:
		// paths rejoin here, nothing to do
	case graph.KindSpawnPoint:
		in.executeSpawnPoint(node, ctx)
	case graph.KindEncounter:
		in.executeEncounter(node, ctx)
	case graph.KindLootDrop:
		in.executeLootDrop(node, ctx)
	case graph.KindRandomSelect:
		return in.executeRandomSelect(node, g, ctx)
	case graph.KindSequence:
		return in.executeSequence(node, g, ctx)
	case graph.KindLoop:
		return in.executeLoop(node, g, ctx)
	default:
		// unrecognized kinds fall through to their outgoing edges
	}

	for _, edge := range g.OutgoingEdges(nodeID) {
		if err := in.executeNode(edge.Target.NodeID, g, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) executeRoom(node *graph.Node, ctx *execContext) {
	config := in.roomConfig(node.Config)
	roomID := fmt.Sprintf("room_%d", len(ctx.rooms))

	room := GenerateRoom(in.stream, config, ctx.cursor, roomID)

	if len(ctx.rooms) > 0 {
		prev := &ctx.rooms[len(ctx.rooms)-1]
		ctx.connections = append(ctx.connections, layout.Connection{
			FromRoomID: prev.ID,
			ToRoomID:   room.ID,
			FromDoor:   DoorPosition(prev, ctx.direction, in.stream),
			ToDoor:     DoorPosition(&room, ctx.direction.Opposite(), in.stream),
		})
	}

	in.advanceCursor(ctx, room.Bounds)
	ctx.rooms = append(ctx.rooms, room)
}

func (in *Interpreter) executeRoomChain(node *graph.Node, ctx *execContext) {
	count, linear := 3, true
	var config RoomConfig
	if params, ok := node.Config.(*graph.ChainParams); ok {
		count, linear = params.Count, params.Linear
		config = in.roomConfigFromParams(params.RoomParams)
	} else {
		config = in.roomConfigFromParams(graph.DefaultRoomParams())
	}

	baseID := fmt.Sprintf("chain_%d", len(ctx.rooms))
	chain := GenerateChain(in.stream, count, config, ctx.cursor, baseID, linear)
	if len(chain) == 0 {
		return
	}

	// Attach the chain to whatever came before it
	if len(ctx.rooms) > 0 {
		prev := &ctx.rooms[len(ctx.rooms)-1]
		ctx.connections = append(ctx.connections, layout.Connection{
			FromRoomID: prev.ID,
			ToRoomID:   chain[0].ID,
			FromDoor:   DoorPosition(prev, ctx.direction, in.stream),
			ToDoor:     DoorPosition(&chain[0], ctx.direction.Opposite(), in.stream),
		})
	}

	// Link adjacent rooms within the chain
	for i := 0; i < len(chain)-1; i++ {
		ctx.connections = append(ctx.connections, layout.Connection{
			FromRoomID: chain[i].ID,
			ToRoomID:   chain[i+1].ID,
			FromDoor:   DoorPosition(&chain[i], ctx.direction, in.stream),
			ToDoor:     DoorPosition(&chain[i+1], ctx.direction.Opposite(), in.stream),
		})
	}

	in.advanceCursor(ctx, chain[len(chain)-1].Bounds)
	ctx.rooms = append(ctx.rooms, chain...)
}

// advanceCursor moves the placement cursor past the given room bounds in
// the current travel direction, leaving a random gap.
func (in *Interpreter) advanceCursor(ctx *execContext, b layout.Rect) {
	spacing := in.stream.Float(3, 8)
	switch ctx.direction {
	case layout.Right:
		ctx.cursor.X = b.X + b.Width + spacing
	case layout.Left:
		ctx.cursor.X = b.X - spacing
	case layout.Down:
		ctx.cursor.Y = b.Y + b.Height + spacing
	case layout.Up:
		ctx.cursor.Y = b.Y - spacing
	}
}

func (in *Interpreter) executeBranch(node *graph.Node, g *graph.Graph, ctx *execContext) error {
	edges := g.OutgoingEdges(node.ID)
	originalPos := ctx.cursor
	originalDir := ctx.direction

	for i, edge := range edges {
		switch i % 4 {
		case 0:
			ctx.direction = layout.Right
		case 1:
			ctx.direction = layout.Down
		case 2:
			ctx.direction = layout.Left
		default:
			ctx.direction = layout.Up
		}
		ctx.cursor = originalPos

		// Fan branches out perpendicular to their travel direction
		offset := float64(i) * 15
		switch ctx.direction {
		case layout.Right, layout.Left:
			ctx.cursor.Y += offset
		case layout.Up, layout.Down:
			ctx.cursor.X += offset
		}

		if err := in.executeNode(edge.Target.NodeID, g, ctx); err != nil {
			return err
		}
	}

	ctx.direction = originalDir
	return nil
}

func (in *Interpreter) executeSpawnPoint(node *graph.Node, ctx *execContext) {
	spawnType := "enemy"
	if params, ok := node.Config.(*graph.SpawnParams); ok && params.SpawnType != "" {
		spawnType = params.SpawnType
	}

	if len(ctx.rooms) == 0 {
		return
	}
	room := &ctx.rooms[len(ctx.rooms)-1]
	b := room.Bounds

	ctx.spawnPoints = append(ctx.spawnPoints, layout.SpawnPoint{
		ID:   fmt.Sprintf("spawn_%d", len(ctx.spawnPoints)),
		Type: spawnType,
		Position: layout.Point{
			X: b.X + in.stream.Float(1, b.Width-1),
			Y: b.Y + in.stream.Float(1, b.Height-1),
		},
		RoomID: room.ID,
	})
}

func (in *Interpreter) executeEncounter(node *graph.Node, ctx *execContext) {
	enemyCount := 2
	if params, ok := node.Config.(*graph.EncounterParams); ok {
		enemyCount = params.EnemyCount
	}
	if len(ctx.rooms) == 0 {
		return
	}
	AddEntities(in.stream, &ctx.rooms[len(ctx.rooms)-1], "enemy", enemyCount, enemyCount+2)
}

func (in *Interpreter) executeLootDrop(node *graph.Node, ctx *execContext) {
	itemCount := 1
	if params, ok := node.Config.(*graph.LootParams); ok {
		itemCount = params.ItemCount
	}
	if len(ctx.rooms) == 0 {
		return
	}
	AddEntities(in.stream, &ctx.rooms[len(ctx.rooms)-1], "loot", itemCount, itemCount+1)
}

func (in *Interpreter) executeRandomSelect(node *graph.Node, g *graph.Graph, ctx *execContext) error {
	edges := g.OutgoingEdges(node.ID)
	if len(edges) == 0 {
		return nil
	}
	selected := in.stream.Intn(len(edges))
	return in.executeNode(edges[selected].Target.NodeID, g, ctx)
}

func (in *Interpreter) executeSequence(node *graph.Node, g *graph.Graph, ctx *execContext) error {
	for _, edge := range g.OutgoingEdges(node.ID) {
		if err := in.executeNode(edge.Target.NodeID, g, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) executeLoop(node *graph.Node, g *graph.Graph, ctx *execContext) error {
	iterations := 3
	if params, ok := node.Config.(*graph.LoopParams); ok {
		iterations = params.Iterations
	}

	edges := g.OutgoingEdges(node.ID)
	for i := 0; i < iterations; i++ {
		for _, edge := range edges {
			// Self-edges would recurse forever
			if edge.Target.NodeID == node.ID {
				continue
			}
			if err := in.executeNode(edge.Target.NodeID, g, ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// roomConfig converts a compiled node payload into a synthesizer config,
// applying request-level size overrides.
func (in *Interpreter) roomConfig(nodeConfig any) RoomConfig {
	if params, ok := nodeConfig.(*graph.RoomParams); ok {
		return in.roomConfigFromParams(*params)
	}
	return in.roomConfigFromParams(graph.DefaultRoomParams())
}

func (in *Interpreter) roomConfigFromParams(params graph.RoomParams) RoomConfig {
	config := RoomConfig{
		MinWidth:  params.MinWidth,
		MaxWidth:  params.MaxWidth,
		MinHeight: params.MinHeight,
		MaxHeight: params.MaxHeight,
		Shape:     ParseShape(params.Shape),
		RoomType:  params.RoomType,
		Tags:      params.Tags,
	}

	// Request parameters override node config symmetrically on both axes
	if v, ok := in.paramFloat("minRoomSize"); ok {
		config.MinWidth = v
		config.MinHeight = v
	}
	if v, ok := in.paramFloat("maxRoomSize"); ok {
		config.MaxWidth = v
		config.MaxHeight = v
	}

	return config
}

func (in *Interpreter) paramFloat(name string) (float64, bool) {
	raw, ok := in.params[name]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

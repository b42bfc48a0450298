package levels

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TileKind is the semantic layer a tile belongs to.
type TileKind string

const (
	KindBackground TileKind = "background"
	KindPlatforms  TileKind = "platforms"
	KindBarrier    TileKind = "barrier"
	KindPhasable   TileKind = "phasable"
	KindMisc       TileKind = "misc"
	KindLadders    TileKind = "ladders"
	KindItems      TileKind = "items"
	KindCoins      TileKind = "coins"
	KindStars      TileKind = "stars"
	KindKey        TileKind = "key"
	KindLock       TileKind = "lock"
	KindSpikes     TileKind = "spikes"
	KindBombs      TileKind = "bombs"
	KindLava       TileKind = "lava"
	KindExit       TileKind = "exit"
	KindPrize      TileKind = "prize"
)

var knownKinds = map[TileKind]bool{
	KindBackground: true, KindPlatforms: true, KindBarrier: true, KindPhasable: true,
	KindMisc: true, KindLadders: true, KindItems: true, KindCoins: true, KindStars: true,
	KindKey: true, KindLock: true, KindSpikes: true, KindBombs: true, KindLava: true,
	KindExit: true, KindPrize: true,
}

// Paired reports whether tiles of this kind carry a key/lock pair id.
func (k TileKind) Paired() bool {
	return k == KindKey || k == KindLock
}

const (
	EntityPlayer         = "player"
	EntityMovingPlatform = "moving_platform"
	EntityMovingSpikes   = "moving_spikes"
)

const (
	legendEmpty = "empty"
	legendSpawn = "spawn"
)

// DefaultLegend maps the row characters used by the embedded levels. A level
// may override or extend it with its own legend.
var DefaultLegend = map[string]string{
	".": legendEmpty,
	" ": legendEmpty,
	"@": legendSpawn,
	"#": string(KindPlatforms),
	"=": string(KindBarrier),
	"b": string(KindBackground),
	"~": string(KindPhasable),
	"m": string(KindMisc),
	"H": string(KindLadders),
	"I": string(KindItems),
	"o": string(KindCoins),
	"*": string(KindStars),
	"^": string(KindSpikes),
	"B": string(KindBombs),
	"L": string(KindLava),
	"E": string(KindExit),
	"P": string(KindPrize),
	"1": "key:1", "2": "key:2", "3": "key:3", "4": "key:4",
	"a": "lock:1", "c": "lock:2", "d": "lock:3", "e": "lock:4",
}

var (
	ErrRaggedRows       = errors.New("levels: rows have different lengths")
	ErrUnknownTileKind  = errors.New("levels: unknown tile kind")
	ErrNoSpawn          = errors.New("levels: no player spawn")
	ErrNoGoal           = errors.New("levels: no exit or prize")
	ErrLayerSize        = errors.New("levels: layer size does not match level size")
	ErrUnknownEntity    = errors.New("levels: unknown entity type")
	ErrUnmatchedKeyLock = errors.New("levels: key without matching lock")
)

type Level struct {
	Name     string `json:"name"`
	TileSize int    `json:"tile_size,omitempty"`
	// Decorative levels back the menus and need no spawn or goal.
	Decorative bool              `json:"decorative,omitempty"`
	Rows       []string          `json:"rows,omitempty"`
	Legend     map[string]string `json:"legend,omitempty"`
	Width      int               `json:"width,omitempty"`
	Height     int               `json:"height,omitempty"`
	Layers     []Layer           `json:"layers,omitempty"`
	Entities   []Entity          `json:"entities,omitempty"`
}

// Layer is a width*height grid of one tile kind, row-major, top row first.
// Non-zero cells are filled.
type Layer struct {
	Name  string   `json:"name,omitempty"`
	Kind  TileKind `json:"kind"`
	Pair  int      `json:"pair,omitempty"`
	Tiles []int    `json:"tiles"`
}

// Entity is a placed object. X and Y are in tiles, measured to the tile's
// top-left corner.
type Entity struct {
	Type  string         `json:"type"`
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// Cell is one filled tile of a layer.
type Cell struct {
	Col int
	Row int
}

// ParseTileRef splits a legend value such as "lock:2" into kind and pair.
func ParseTileRef(ref string) (TileKind, int, error) {
	name, pairText, hasPair := strings.Cut(ref, ":")
	kind := TileKind(strings.TrimSpace(name))
	if !knownKinds[kind] {
		return "", 0, fmt.Errorf("%w: %q", ErrUnknownTileKind, ref)
	}
	pair := 0
	if hasPair {
		p, err := strconv.Atoi(strings.TrimSpace(pairText))
		if err != nil || p < 1 {
			return "", 0, fmt.Errorf("%w: bad pair in %q", ErrUnknownTileKind, ref)
		}
		pair = p
	}
	if kind.Paired() && pair == 0 {
		pair = 1
	}
	return kind, pair, nil
}

// Expand converts Rows into Layers, filling Width and Height. It is idempotent.
func (l *Level) Expand() error {
	if l.TileSize <= 0 {
		l.TileSize = 64
	}
	if len(l.Rows) == 0 {
		return nil
	}

	// Cells are runes so legends may use any character.
	grid := make([][]rune, len(l.Rows))
	for i, row := range l.Rows {
		grid[i] = []rune(row)
	}
	width := len(grid[0])
	for i, row := range grid {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedRows, i, len(row), width)
		}
	}
	l.Width = width
	l.Height = len(l.Rows)

	legend := make(map[string]string, len(DefaultLegend)+len(l.Legend))
	for k, v := range DefaultLegend {
		legend[k] = v
	}
	for k, v := range l.Legend {
		legend[k] = v
	}

	type layerKey struct {
		kind TileKind
		pair int
	}
	byKey := map[layerKey]*Layer{}
	for i := range l.Layers {
		layer := &l.Layers[i]
		byKey[layerKey{layer.Kind, layer.Pair}] = layer
	}

	hasPlayer := false
	for _, ent := range l.Entities {
		if ent.Type == EntityPlayer {
			hasPlayer = true
		}
	}

	var keys []layerKey
	for row, line := range grid {
		for col, ch := range line {
			ref, ok := legend[string(ch)]
			if !ok {
				return fmt.Errorf("%w: no legend entry for %q at row %d col %d", ErrUnknownTileKind, ch, row, col)
			}
			switch ref {
			case legendEmpty:
				continue
			case legendSpawn:
				if !hasPlayer {
					l.Entities = append(l.Entities, Entity{Type: EntityPlayer, X: float64(col), Y: float64(row)})
					hasPlayer = true
				}
				continue
			}
			kind, pair, err := ParseTileRef(ref)
			if err != nil {
				return fmt.Errorf("row %d col %d: %w", row, col, err)
			}
			k := layerKey{kind, pair}
			layer := byKey[k]
			if layer == nil {
				keys = append(keys, k)
				layer = &Layer{Name: layerName(kind, pair), Kind: kind, Pair: pair, Tiles: make([]int, width*l.Height)}
				byKey[k] = layer
			}
			if len(layer.Tiles) != width*l.Height {
				return fmt.Errorf("%w: %s", ErrLayerSize, layer.Name)
			}
			layer.Tiles[row*width+col] = 1
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].kind != keys[j].kind {
			return keys[i].kind < keys[j].kind
		}
		return keys[i].pair < keys[j].pair
	})
	for _, k := range keys {
		l.Layers = append(l.Layers, *byKey[k])
	}
	l.Rows = nil
	return nil
}

func layerName(kind TileKind, pair int) string {
	if kind.Paired() {
		return fmt.Sprintf("%s%d", kind, pair)
	}
	return string(kind)
}

// Validate checks the expanded level.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("levels: %q: empty grid", l.Name)
	}
	keys := map[int]bool{}
	locks := map[int]bool{}
	goal := false
	for _, layer := range l.Layers {
		if !knownKinds[layer.Kind] {
			return fmt.Errorf("%w: %q", ErrUnknownTileKind, layer.Kind)
		}
		if len(layer.Tiles) != l.Width*l.Height {
			return fmt.Errorf("%w: %s has %d tiles, want %d", ErrLayerSize, layer.Name, len(layer.Tiles), l.Width*l.Height)
		}
		if len(layer.Cells(l.Width)) == 0 {
			continue
		}
		switch layer.Kind {
		case KindExit, KindPrize:
			goal = true
		case KindKey:
			keys[layer.Pair] = true
		case KindLock:
			locks[layer.Pair] = true
		}
	}
	for pair := range keys {
		if !locks[pair] {
			return fmt.Errorf("%w: pair %d", ErrUnmatchedKeyLock, pair)
		}
	}

	spawn := false
	for _, ent := range l.Entities {
		switch ent.Type {
		case EntityPlayer:
			spawn = true
		case EntityMovingPlatform, EntityMovingSpikes:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownEntity, ent.Type)
		}
	}

	if l.Decorative {
		return nil
	}
	if !spawn {
		return fmt.Errorf("levels: %q: %w", l.Name, ErrNoSpawn)
	}
	if !goal {
		return fmt.Errorf("levels: %q: %w", l.Name, ErrNoGoal)
	}
	return nil
}

// Cells lists the filled tiles of the layer.
func (ly Layer) Cells(width int) []Cell {
	if width <= 0 {
		return nil
	}
	var out []Cell
	for i, v := range ly.Tiles {
		if v == 0 {
			continue
		}
		out = append(out, Cell{Col: i % width, Row: i / width})
	}
	return out
}

// LayersOf returns every layer of the given kind.
func (l *Level) LayersOf(kind TileKind) []Layer {
	var out []Layer
	for _, layer := range l.Layers {
		if layer.Kind == kind {
			out = append(out, layer)
		}
	}
	return out
}

// Count reports how many tiles of kind the level holds.
func (l *Level) Count(kind TileKind) int {
	n := 0
	for _, layer := range l.LayersOf(kind) {
		n += len(layer.Cells(l.Width))
	}
	return n
}

// Spawn returns the player spawn in tiles.
func (l *Level) Spawn() (float64, float64, bool) {
	for _, ent := range l.Entities {
		if ent.Type == EntityPlayer {
			return ent.X, ent.Y, true
		}
	}
	return 0, 0, false
}

// PixelSize returns the level extent in world pixels.
func (l *Level) PixelSize() (float64, float64) {
	return float64(l.Width * l.TileSize), float64(l.Height * l.TileSize)
}

// Float reads a numeric prop. JSON numbers decode as float64.
func (e Entity) Float(name string) (float64, bool) {
	switch v := e.Props[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

func (e Entity) FloatOr(name string, fallback float64) float64 {
	if v, ok := e.Float(name); ok {
		return v
	}
	return fallback
}

func (e Entity) Text(name string) string {
	if s, ok := e.Props[name].(string); ok {
		return s
	}
	return ""
}

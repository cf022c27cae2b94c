package request

import (
	"errors"

	"github.com/katalvlaran/ductnet/network"
	"github.com/katalvlaran/ductnet/sweep"
)

// Sentinel errors.
var (
	// ErrInvalidRequest indicates a request that fails validation.
	ErrInvalidRequest = errors.New("request: invalid request")

	// ErrUnsupportedFormat indicates a file extension with no decoder.
	ErrUnsupportedFormat = errors.New("request: unsupported file format")

	// ErrUnknownCell indicates a source or terminal cell that is not traversable.
	ErrUnknownCell = errors.New("request: cell is not a node")

	// ErrUnknownRegion indicates a region id that no cell carries.
	ErrUnknownRegion = errors.New("request: unknown region")
)

// Grid modes.
const (
	ModePlan   = "plan"
	ModeVolume = "volume"
)

// Request is one routing job.
type Request struct {
	Name          string  `toml:"name" yaml:"name"`
	Mode          string  `toml:"mode" yaml:"mode" validate:"oneof=plan volume"`
	Velocity      float64 `toml:"velocity" yaml:"velocity" validate:"gt=0"`
	Elevation     float64 `toml:"elevation" yaml:"elevation" validate:"gte=0"`
	Workers       int     `toml:"workers" yaml:"workers" validate:"gte=0"`
	TimeBudget    string  `toml:"time_budget" yaml:"time_budget"`
	MaxExpansions int     `toml:"max_expansions" yaml:"max_expansions" validate:"gte=0"`

	Grid    Grid         `toml:"grid" yaml:"grid"`
	Regions []Region     `toml:"regions" yaml:"regions" validate:"dive"`
	Zones   []Zone       `toml:"zones" yaml:"zones" validate:"dive"`
	Route   Route        `toml:"route" yaml:"route"`
	Sweep   sweep.Bounds `toml:"sweep" yaml:"sweep"`
}

// Grid describes the cell layout. Plan mode reads Rows; volume mode reads Levels.
type Grid struct {
	CellWidth float64  `toml:"cell_width" yaml:"cell_width" validate:"gt=0"`
	CellDepth float64  `toml:"cell_depth" yaml:"cell_depth" validate:"gt=0"`
	Height    float64  `toml:"height" yaml:"height" validate:"gte=0"`
	Block     string   `toml:"block" yaml:"block" validate:"required"`
	Void      string   `toml:"void" yaml:"void" validate:"required,nefield=Block"`
	Rows      []string `toml:"rows" yaml:"rows"`
	Levels    []Level  `toml:"levels" yaml:"levels" validate:"dive"`
}

// Level is one storey of a volume grid.
type Level struct {
	Bottom float64  `toml:"bottom" yaml:"bottom"`
	Top    float64  `toml:"top" yaml:"top" validate:"gtfield=Bottom"`
	Rows   []string `toml:"rows" yaml:"rows" validate:"min=1"`
}

// Region sets the ventilation of the cells carrying its id.
type Region struct {
	ID         string  `toml:"id" yaml:"id" validate:"required"`
	ChangeRate float64 `toml:"change_rate" yaml:"change_rate" validate:"gte=0"`
	Zone       string  `toml:"zone" yaml:"zone"`
	Flow       float64 `toml:"flow" yaml:"flow" validate:"gte=0"`
}

// Zone groups regions under one target velocity.
type Zone struct {
	ID       string  `toml:"id" yaml:"id" validate:"required"`
	Velocity float64 `toml:"velocity" yaml:"velocity" validate:"gt=0"`
}

// Cell addresses a grid cell. Level is ignored in plan mode.
type Cell struct {
	Level int `toml:"level" yaml:"level" validate:"gte=0"`
	Row   int `toml:"row" yaml:"row" validate:"gte=0"`
	Col   int `toml:"col" yaml:"col" validate:"gte=0"`
}

// Route names the source and the terminals. TerminalRegions adds one
// terminal per listed region at its first cell.
type Route struct {
	Source          Cell     `toml:"source" yaml:"source"`
	Terminals       []Cell   `toml:"terminals" yaml:"terminals" validate:"dive"`
	TerminalRegions []string `toml:"terminal_regions" yaml:"terminal_regions"`
}

// Default returns a request with a plan grid of unit cells, the default
// velocity and a small weight grid.
func Default() Request {
	return Request{
		Mode:     ModePlan,
		Velocity: network.DefaultVelocity,
		Grid: Grid{
			CellWidth: 1,
			CellDepth: 1,
			Height:    1,
			Block:     "#",
			Void:      ".",
		},
		Sweep: sweep.Bounds{
			Nearest: sweep.Range{Min: 0, Step: 1, Max: 2},
			Average: sweep.Range{Min: 0, Step: 0.5, Max: 1},
			Fermat:  sweep.Range{Min: 0, Step: 1, Max: 2},
		},
	}
}

package request

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is the shared validator instance for request types.
var validate = validator.New()

// Environment overrides applied after the file is decoded.
const (
	EnvWorkers       = "DUCTNET_WORKERS"
	EnvTimeBudget    = "DUCTNET_TIME_BUDGET"
	EnvVelocity      = "DUCTNET_VELOCITY"
	EnvMaxExpansions = "DUCTNET_MAX_EXPANSIONS"
)

// Load reads, overrides and validates the request at path.
func Load(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}

	return Parse(data, filepath.Ext(path))
}

// Parse decodes data in the format named by ext (".toml", ".yaml" or ".yml"),
// applies environment overrides and validates the result.
func Parse(data []byte, ext string) (*Request, error) {
	req := Default()
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.Decode(string(data), &req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, fmt.Errorf("%w: unknown keys %v", ErrInvalidRequest, keys)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	applyEnv(&req)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return &req, nil
}

// applyEnv overrides fields from DUCTNET_* variables. Unparseable values are
// ignored.
func applyEnv(req *Request) {
	if v := os.Getenv(EnvWorkers); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			req.Workers = i
		}
	}
	if v := os.Getenv(EnvTimeBudget); v != "" {
		if _, err := time.ParseDuration(v); err == nil {
			req.TimeBudget = v
		}
	}
	if v := os.Getenv(EnvVelocity); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			req.Velocity = f
		}
	}
	if v := os.Getenv(EnvMaxExpansions); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			req.MaxExpansions = i
		}
	}
}

// Validate runs the struct-tag rules and the checks that span fields.
func (r *Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	switch r.Mode {
	case ModePlan:
		if len(r.Grid.Rows) == 0 {
			return fmt.Errorf("%w: plan mode needs grid.rows", ErrInvalidRequest)
		}
	case ModeVolume:
		if len(r.Grid.Levels) == 0 {
			return fmt.Errorf("%w: volume mode needs grid.levels", ErrInvalidRequest)
		}
	}
	if len(r.Route.Terminals) == 0 && len(r.Route.TerminalRegions) == 0 {
		return fmt.Errorf("%w: route needs terminals or terminal_regions", ErrInvalidRequest)
	}
	if _, err := r.Budget(); err != nil {
		return err
	}
	if _, err := r.Sweep.Combinations(); err != nil {
		return fmt.Errorf("%w: sweep: %w", ErrInvalidRequest, err)
	}

	return nil
}

// Budget parses TimeBudget. An empty string means no budget.
func (r *Request) Budget() (time.Duration, error) {
	if r.TimeBudget == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.TimeBudget)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: time_budget %q", ErrInvalidRequest, r.TimeBudget)
	}

	return d, nil
}

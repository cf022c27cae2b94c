// Package request loads routing requests from TOML or YAML files and turns
// them into the inputs of a sweep: the spatial graph, the source and terminal
// node ids, the weight bounds and the sizing options.
//
// Loading follows file → environment → validation:
//
//  1. Defaults from Default().
//  2. The file, decoded by extension (.toml, .yaml, .yml).
//  3. DUCTNET_WORKERS, DUCTNET_TIME_BUDGET, DUCTNET_VELOCITY and
//     DUCTNET_MAX_EXPANSIONS override the file when set and parseable.
//  4. Struct-tag validation, then semantic checks (grid present for the
//     mode, terminals named, time budget parseable).
//
// Errors wrap ErrInvalidRequest, ErrUnsupportedFormat, ErrUnknownCell or
// ErrUnknownRegion; grid problems surface as spatial.ErrGridConstruction.
package request

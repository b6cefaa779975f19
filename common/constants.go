package common

const (
	SrcFileExtension    = ".golf"
	TargetFileExtension = ".lua"
	ProjectFileName     = "golf-mod.toml"
	GolfVersion         = "0.1.0"
)

// DefaultReservedPrefix is prepended to source identifiers that collide with a
// Lua reserved word.
const DefaultReservedPrefix = "_"

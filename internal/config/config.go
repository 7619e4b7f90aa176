// Package config loads settings for the rankincohen command from defaults,
// an optional YAML file and RANKINCOHEN_* environment variables.
package config

// Config holds all command configuration.
type Config struct {
	Bracket BracketConfig `mapstructure:"bracket" validate:"required"`
	Output  OutputConfig  `mapstructure:"output" validate:"required"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
}

// BracketConfig selects the forms, weights and order of the bracket.
// F and G are generator names (E2, E4, E6) or gosymbol JSON trees.
// Weights and order are not range-checked here; the bracket itself
// rejects negative values.
type BracketConfig struct {
	F string `mapstructure:"f" validate:"required"`
	G string `mapstructure:"g" validate:"required"`
	K int    `mapstructure:"k"`
	L int    `mapstructure:"l"`
	N int    `mapstructure:"n"`
}

// OutputConfig controls how the result is written to stdout.
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"required,oneof=text latex json"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

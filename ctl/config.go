package ctl

import (
	"github.com/jt05610/petrisym/symbolic"
	"go.uber.org/zap"
)

// Config controls how an Evaluator computes sets of markings.
type Config struct {
	// Canonicity is the level every intermediate set is built with.
	Canonicity symbolic.Canonicity
	// Saturated runs the least fixpoints of EF and EU and the greatest
	// fixpoint of AG under increasing capacity bounds, each round starting
	// from the result of the previous one.
	Saturated bool
	// Simplify runs Set.Simplified on every fixpoint iterate.
	Simplify bool
	Logger   *zap.Logger
}

// DefaultConfig is semi-canonical and saturated, without logging.
func DefaultConfig() Config {
	return Config{
		Canonicity: symbolic.Semi,
		Saturated:  true,
		Logger:     zap.NewNop(),
	}
}

type Option func(*Config)

func WithCanonicity(c symbolic.Canonicity) Option {
	return func(cfg *Config) {
		cfg.Canonicity = c
	}
}

func WithSaturation(saturated bool) Option {
	return func(cfg *Config) {
		cfg.Saturated = saturated
	}
}

func WithSimplify(simplify bool) Option {
	return func(cfg *Config) {
		cfg.Simplify = simplify
	}
}

// WithLogger sets the logger; a nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *Config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		cfg.Logger = logger
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option {
	return func(cfg *Config) {
		*cfg = c
		if cfg.Logger == nil {
			cfg.Logger = zap.NewNop()
		}
	}
}

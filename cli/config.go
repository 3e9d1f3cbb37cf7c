package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"q.log/tabsimplex/simplex"
)

// Config is the resolved setting of a solve.
type Config struct {
	Format        string
	Rule          simplex.Rule
	MaxIterations int
	PhaseOne      bool
	Trace         bool
	CrossCheck    bool
	FloatView     bool
}

func loadConfig(v *viper.Viper) (Config, error) {
	rule, err := simplex.ParseRule(v.GetString("rule"))
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Format:        v.GetString("format"),
		Rule:          rule,
		MaxIterations: v.GetInt("max-iterations"),
		PhaseOne:      v.GetBool("phase-one"),
		Trace:         v.GetBool("trace"),
		CrossCheck:    v.GetBool("cross-check"),
		FloatView:     v.GetBool("float-view"),
	}
	if cfg.MaxIterations < 0 {
		return Config{}, errors.Errorf("max-iterations must not be negative, got %d", cfg.MaxIterations)
	}
	return cfg, nil
}

// options turns the configuration into solver options.
func (c Config) options() []simplex.Option {
	return []simplex.Option{
		simplex.WithRule(c.Rule),
		simplex.WithMaxIterations(c.MaxIterations),
		simplex.WithPhaseOne(c.PhaseOne),
	}
}

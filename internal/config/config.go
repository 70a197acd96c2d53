package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/limaJavier/fairtable/pkg/mip"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	envPrefix = "FAIRTABLE"
)

type Config struct {
	Env string

	Log     LogConfig
	Solver  SolverConfig
	Model   ModelConfig
	Metrics MetricsConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// SolverConfig selects the MIP backend and how it is run
type SolverConfig struct {
	Backend         string
	TimeLimit       time.Duration // Duration string ("90s", "5m") or bare number of seconds; zero means no limit
	Paths           map[string]string
	ExhaustiveLimit int
}

type ModelConfig struct {
	Denominator string
}

// MetricsConfig controls where the run's metrics are dumped; an empty textfile disables the dump
type MetricsConfig struct {
	Textfile string
}

var solverBackends = []string{"cbc", "highs", "scip"}

// Load reads defaults, then the optional config file, then .env and FAIRTABLE_* environment variables (e.g. FAIRTABLE_SOLVER_BACKEND)
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %v: %w", path, err)
		}
	}

	cfg := &Config{
		Env: v.GetString("env"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Solver: SolverConfig{
			Backend:         strings.ToLower(v.GetString("solver.backend")),
			Paths:           make(map[string]string, len(solverBackends)),
			ExhaustiveLimit: v.GetInt("solver.exhaustive_limit"),
		},
		Model: ModelConfig{
			Denominator: strings.ToLower(v.GetString("model.denominator")),
		},
		Metrics: MetricsConfig{
			Textfile: v.GetString("metrics.textfile"),
		},
	}
	for _, backend := range solverBackends {
		if executable := v.GetString("solver.paths." + backend); executable != "" {
			cfg.Solver.Paths[backend] = executable
		}
	}

	timeLimit, err := parseTimeLimit(v.GetString("solver.time_limit"))
	if err != nil {
		return nil, err
	}
	cfg.Solver.TimeLimit = timeLimit

	if err := cfg.Solver.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the solver settings; callers overriding them after Load should call it again
func (solver SolverConfig) Validate() error {
	if solver.TimeLimit < 0 {
		return fmt.Errorf("solver.time_limit must not be negative: %v", solver.TimeLimit)
	}
	// Backends take whole seconds
	if solver.TimeLimit > 0 && solver.TimeLimit < time.Second {
		return fmt.Errorf("solver.time_limit must be zero or at least 1s: got %v", solver.TimeLimit)
	}
	if solver.ExhaustiveLimit > mip.MaxExhaustiveLimit {
		return fmt.Errorf("solver.exhaustive_limit must not exceed %v: got %v", mip.MaxExhaustiveLimit, solver.ExhaustiveLimit)
	}
	return nil
}

// A bare number is read as seconds, anything else as a Go duration
func parseTimeLimit(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if seconds, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(seconds * float64(time.Second)), nil
	}
	timeLimit, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("solver.time_limit %q is neither a duration nor a number of seconds: %w", raw, err)
	}
	return timeLimit, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("solver.backend", "cbc")
	v.SetDefault("solver.time_limit", "0s")
	for _, backend := range solverBackends {
		v.SetDefault("solver.paths."+backend, "")
	}
	v.SetDefault("solver.exhaustive_limit", 22)

	v.SetDefault("model.denominator", "weekday")

	v.SetDefault("metrics.textfile", "")
}

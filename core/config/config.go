package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrParsingConfig = errors.New("failed to parse config from environment")
	ErrReadingFile   = errors.New("failed to read config file")
	ErrDecodingFile  = errors.New("failed to decode config file")
)

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> any
)

func loadDotenv() {
	dotenvOnce.Do(func() {
		// Missing .env is fine; real deployments set the environment directly.
		_ = godotenv.Load()
	})
}

// Load fills cfg from the environment. Each type is parsed once per process and
// the cached value is copied into cfg on subsequent calls.
func Load[T any](cfg *T) error {
	loadDotenv()

	t := reflect.TypeOf(*cfg)
	if v, ok := cache.Load(t); ok {
		*cfg = v.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	cache.Store(t, *cfg)
	return nil
}

// MustLoad is Load that panics. Use it only during startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Parse reads cfg from an explicit environment map, bypassing the cache and the
// process environment.
func Parse[T any](cfg *T, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// LoadFile decodes a YAML file into out. A missing file is not an error when
// optional is true: out is left untouched.
func LoadFile(path string, out any, optional bool) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Join(ErrReadingFile, fmt.Errorf("%s: %w", path, err))
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.Join(ErrDecodingFile, fmt.Errorf("%s: %w", path, err))
	}
	return nil
}

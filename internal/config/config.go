// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package config reads the YAML configuration of the reliability command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/junkawahara/reliability-tdzdd/reliability"
)

// Config mirrors the flags of the command line. Relative paths are relative
// to the directory of the configuration file.
type Config struct {
	Graph               string `yaml:"graph" validate:"required"`
	Adjacency           bool   `yaml:"adjacency"`
	Terminals           string `yaml:"terminals"`
	EdgeProbabilities   string `yaml:"edge_probabilities"`
	VertexProbabilities string `yaml:"vertex_probabilities"`
	AllRel              bool   `yaml:"allrel"`
	Vertex              bool   `yaml:"vertex"`
	Verify              bool   `yaml:"verify"`
	Count               bool   `yaml:"count"`
	Solutions           int    `yaml:"solutions" validate:"gte=0"`
	Dot                 bool   `yaml:"dot"`
	DumpGraph           bool   `yaml:"dump_graph"`
	Quiet               bool   `yaml:"quiet"`
	MetricsFile         string `yaml:"metrics_file"`
	LogLevel            string `yaml:"log_level" validate:"oneof=debug info warn error"`
	Nodesize            int    `yaml:"nodesize" validate:"gte=0"`
	Cachesize           int    `yaml:"cachesize" validate:"gte=0"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// applyDefaults fills the fields left empty.
func (cfg *Config) applyDefaults() {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// resolve makes the input paths relative to dir.
func (cfg *Config) resolve(dir string) {
	for _, p := range []*string{&cfg.Graph, &cfg.Terminals, &cfg.EdgeProbabilities, &cfg.VertexProbabilities, &cfg.MetricsFile} {
		if *p != "" && *p != "-" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// Input returns the description of the network to load.
func (cfg *Config) Input() reliability.Input {
	return reliability.Input{
		GraphFile:      cfg.Graph,
		Adjacency:      cfg.Adjacency,
		TerminalFile:   cfg.Terminals,
		EdgeProbFile:   cfg.EdgeProbabilities,
		VertexProbFile: cfg.VertexProbabilities,
		AllTerminals:   cfg.AllRel,
	}
}

// Options returns the options of the computation.
func (cfg *Config) Options(logger *slog.Logger) []reliability.Option {
	opts := []reliability.Option{
		reliability.WithLogger(logger),
		reliability.WithNodesize(cfg.Nodesize),
		reliability.WithCachesize(cfg.Cachesize),
	}
	if !cfg.Vertex {
		opts = append(opts, reliability.WithEdgeOnly())
	}
	if cfg.Verify {
		opts = append(opts, reliability.WithVerify())
	}
	return opts
}

// Level returns the logging level of the configuration.
func (cfg *Config) Level() slog.Level {
	switch cfg.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// ValidationError lists all the problems found in a configuration.
type ValidationError struct {
	Problems []string
	causes   []error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation errors:\n  - %s", strings.Join(e.Problems, "\n  - "))
}

func (e *ValidationError) Unwrap() []error { return e.causes }

// Validate checks the field constraints and the compatibility of the options.
// The error is a *reliability.ConfigurationError wrapping a *ValidationError.
func Validate(cfg *Config) error {
	verr := &ValidationError{}
	if err := validate.Struct(cfg); err != nil {
		var fields validator.ValidationErrors
		if !errors.As(err, &fields) {
			return err
		}
		for _, f := range fields {
			verr.Problems = append(verr.Problems, fmt.Sprintf("%s: failed on %q", strings.ToLower(f.Field()), f.Tag()))
		}
	}
	if cfg.AllRel && cfg.Vertex {
		verr.Problems = append(verr.Problems, "allrel is not compatible with vertex")
		verr.causes = append(verr.causes, reliability.ErrIncompatibleOptions)
	}
	if cfg.Verify && !cfg.Vertex {
		verr.Problems = append(verr.Problems, "verify requires vertex")
	}
	if len(verr.Problems) > 0 {
		return &reliability.ConfigurationError{Op: "config", Err: verr}
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdpreview/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string        // MDPREVIEW_CONFIG: config file name or path
	Parser      string        // MDPREVIEW_PARSER: builtin, github, or a binary map name
	GitHubToken string        // MDPREVIEW_GITHUB_TOKEN: GitHub API token
	OutputDir   string        // MDPREVIEW_OUTPUT_DIR: default output directory
	Timeout     time.Duration // MDPREVIEW_TIMEOUT: conversion timeout
	Workers     int           // MDPREVIEW_WORKERS: parallel workers
}

// knownEnvVars lists valid MDPREVIEW_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDPREVIEW_CONFIG":       true,
	"MDPREVIEW_PARSER":       true,
	"MDPREVIEW_GITHUB_TOKEN": true,
	"MDPREVIEW_OUTPUT_DIR":   true,
	"MDPREVIEW_TIMEOUT":      true,
	"MDPREVIEW_WORKERS":      true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid durations and worker counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("MDPREVIEW_CONFIG"),
		Parser:      os.Getenv("MDPREVIEW_PARSER"),
		GitHubToken: os.Getenv("MDPREVIEW_GITHUB_TOKEN"),
		OutputDir:   os.Getenv("MDPREVIEW_OUTPUT_DIR"),
	}

	if timeout := os.Getenv("MDPREVIEW_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MDPREVIEW_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDPREVIEW_* variables.
// Helps catch typos like MDPREVIEW_GITHUB_TOKN.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDPREVIEW_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Values only replace empty settings; the parser also replaces the builtin
// default, since a config file cannot be told apart from one that omits it.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Parser != "" && (cfg.Parser == "" || cfg.Parser == config.ParserBuiltIn) {
		cfg.Parser = env.Parser
	}
	if env.GitHubToken != "" && cfg.GitHubOAuthToken == "" {
		cfg.GitHubOAuthToken = env.GitHubToken
	}
	if env.OutputDir != "" && cfg.OutputDir == "" {
		cfg.OutputDir = env.OutputDir
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for leaddesk.
//
// TOML, JSON and YAML files are supported, with defaults, environment
// variable overrides and validation. Files are read through an afero.Fs so
// the whole loader can run against an in-memory filesystem.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (LEADDESK_*)
//   - ~/.leaddesk/config.toml
//   - ~/.leaddesk/config.json
//   - ~/.leaddesk/config.yaml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := leads.NewClient(&remote.Config{
//	    BaseURL: cfg.Service.BaseURL,
//	    Timeout: cfg.Timeout(),
//	})
package config

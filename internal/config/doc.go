// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as
// the file format.
//
// Configuration is read from catalogctl.toml in the repository root (or from
// an explicit --config path), layered over built-in defaults. Every knob the
// pipeline needs (script roots, dialect extension lists, catalog markers,
// category rules, documentation directories, stamp and tracker settings) is
// carried here and passed into the core packages explicitly, so none of them
// depends on a real repository layout.
//
// Loaded settings are validated against a CUE schema (config_schema.cue) to
// catch type errors and out-of-range values with clear messages.
package config

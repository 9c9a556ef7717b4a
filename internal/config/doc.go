// SPDX-License-Identifier: MPL-2.0

// Package config loads the tool configuration from a platform-specific
// TOML config file, with environment variable overrides. Every setting
// has a built-in default, so running without any config file works.
package config

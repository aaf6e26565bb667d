// Package config loads, validates, and normalizes fabline configuration.
//
// Configuration lives in a TOML file (default ~/.config/fabline/config.toml,
// or ./fabline.toml for project-local setups). Load applies defaults first,
// then decodes the file over them, expands ~ path references, and validates
// the result so the rest of the system can trust every field.
package config

// Package cli defines the Cobra command tree for the cardkit CLI. Each file
// registers one top-level command with the root command. Commands delegate
// to internal packages for parsing, validation and registry access and only
// handle flag parsing and output formatting.
package cli

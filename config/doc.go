// Package config loads attestation service settings from the environment
// and network overrides from YAML.
package config

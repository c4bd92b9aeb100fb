// Package config loads service configuration from environment variables
// (SHELF_ prefix) and an optional config.yaml, and owns the centralized
// filesystem paths for catalog input, export output and logs.
package config

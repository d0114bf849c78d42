// Package config loads, merges, and validates the application configuration.
//
// Configuration is assembled from three sources — environment variables,
// command-line flags, and an optional JSON file — merged in that order with
// mergo (first non-zero value wins). GetClientConfig and GetServerConfig
// expose role-specific views of the merged [StructuredConfig].
package config

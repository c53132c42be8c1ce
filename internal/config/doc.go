// Package config loads the javelin CLI configuration from a YAML file,
// JAVELIN_* environment variables and command flags, in increasing priority.
package config

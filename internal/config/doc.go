// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// Without a file, FromEnv reads the DB_* variables directly.
package config

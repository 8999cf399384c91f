// Package config loads fissure configuration files.
//
// Config files are CUE, validated against an embedded closed schema
// (schema.cue). Unknown fields, a non-positive bound or an unknown policy
// are rejected with the source position of the offending value.
// Command-line flags override file values via Apply.
package config

// Package config provides configuration loading, merging, and validation
// facilities for the client.
//
// Configuration is assembled from multiple sources; for every field the
// first source providing a non-zero value wins:
//  1. Command-line flags
//  2. Environment variables
//  3. JSON config file
//
// The main entry point is [GetClientConfig].
package config

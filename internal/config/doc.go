// Package config loads, normalizes, and validates rdfmap configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// RDFMAP_SERVER_URL and RDFMAP_API_TOKEN. The Config type centralizes every
// knob the CLI needs: the remote server endpoint, mapping-generation defaults,
// conversion defaults, and the local data/log directories.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, a canonical server URL, and clear validation errors.
package config

// Package config manages user-level settings stored at ~/.cardkit/config.yaml
// and CARDKIT_* environment variables: the schema versions assumed and
// supported when parsing, strict mode, types disabled for parse sessions,
// and logging.
package config

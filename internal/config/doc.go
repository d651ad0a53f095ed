// Package config manages user-level settings stored at ~/.animkit/config.yaml
// and the per-project animkit.json that tells the installer where things go.
package config

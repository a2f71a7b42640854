// Package config provides user configuration management for Vibe-Tagger.
//
// This package manages a YAML-based configuration file holding the model
// identifier, log level, and defaults for the serve and discover commands.
// The configuration follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/vibetagger/config.yaml or $HOME/.config/vibetagger/config.yaml
//   - macOS: $HOME/.config/vibetagger/config.yaml
//   - Windows: %LOCALAPPDATA%\vibetagger\config.yaml
//
// # Security
//
// IMPORTANT: This package NEVER stores the Gemini API key. It is read from
// VIBETAGGER_API_KEY (falling back to API_KEY), optionally populated from a
// .env file by LoadDotEnv.
//
// # Usage Example
//
//	if err := config.LoadDotEnv(); err != nil {
//	    return err
//	}
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//
//	cfg.Server.Port = 9000
//	if err := cfg.Save(""); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// Save is protected by a mutex and writes atomically (temp file + rename).
package config

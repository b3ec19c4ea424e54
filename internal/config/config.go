// Package config resolves user settings from the environment.
package config

import (
	"errors"
	iofs "io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvEditor  = "QUIRE_EDITOR"
	EnvAuthor  = "QUIRE_AUTHOR"
	EnvLogFile = "QUIRE_LOG_FILE"
)

// DefaultEditor is used when neither QUIRE_EDITOR nor EDITOR is set.
const DefaultEditor = "nvim"

// Config holds settings that flags may override.
type Config struct {
	Editor  string
	Author  string
	LogFile string
}

// Load reads an optional dotenv file into the process environment, then
// resolves the configuration from it. Variables already set win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return Config{}, err
		}
	}
	return FromEnv(os.Getenv), nil
}

// FromEnv resolves the configuration through getenv.
func FromEnv(getenv func(string) string) Config {
	return Config{
		Editor:  firstSet(getenv, EnvEditor, "EDITOR", DefaultEditor),
		Author:  firstSet(getenv, EnvAuthor, "USER", "USERNAME", ""),
		LogFile: getenv(EnvLogFile),
	}
}

// firstSet returns the first non-empty variable among keys; the last
// argument is the fallback value.
func firstSet(getenv func(string) string, args ...string) string {
	keys, fallback := args[:len(args)-1], args[len(args)-1]
	for _, k := range keys {
		if v := getenv(k); v != "" {
			return v
		}
	}
	return fallback
}

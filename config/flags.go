package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags command-line options of the bootstrap command.
type Flags struct {
	ConfigPath string
	EnvPath    string
	LogLevel   string
	Setup      bool
}

// ParseFlags parses command-line arguments (without the program name).
func ParseFlags(args []string) (Flags, error) {
	fs := flag.NewFlagSet("atd", flag.ContinueOnError)

	var f Flags
	fs.StringVar(&f.ConfigPath, "config", "config.yaml", "path to the settings document (yaml or json)")
	fs.StringVar(&f.EnvPath, "env", "", "dotenv file with credentials referenced as ${VAR}")
	fs.StringVar(&f.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&f.Setup, "setup", false, "run the configuration wizard before starting")

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}

	switch strings.ToLower(f.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return Flags{}, fmt.Errorf("invalid --log-level provided, --log-level=%s", f.LogLevel)
	}
	if f.ConfigPath == "" {
		return Flags{}, fmt.Errorf("--config must not be empty")
	}

	return f, nil
}

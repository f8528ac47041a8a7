package config

import (
	"os"
	"regexp"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnv replaces ${VAR} references with environment values.
// Unset variables expand to the empty string. Bare $VAR is left alone so
// credentials containing '$' survive.
func ExpandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(ref []byte) []byte {
		name := envRef.FindSubmatch(ref)[1]
		return []byte(os.Getenv(string(name)))
	})
}

// LoadEnvFile loads variables from a dotenv file without overriding ones
// already set. When required is false a missing file is not an error.
func LoadEnvFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrapf(err, "env file %s", path)
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "failed to load env file %s", path)
	}

	return nil
}

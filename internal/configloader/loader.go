// Package configloader reads client configuration from an .smcrc file and
// the SMC_* environment, mirroring the lookup order of the SMC tooling:
// explicit file, then default file, then environment overrides.
package configloader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/smc-go/smc/pkg/smc"
)

// DefaultFileName is the configuration file looked up in the home
// directory when no explicit path is given.
const DefaultFileName = ".smcrc"

// configKeys are the recognized configuration keys; each is also bound to
// an SMC_* environment variable (e.g. SMC_URL, SMC_API_KEY).
var configKeys = []string{
	"url",
	"api_key",
	"api_version",
	"domain",
	"timeout",
	"retry_max",
	"retry_wait_min",
	"retry_wait_max",
	"skip_tls_verify",
	"user_agent",
	"debug",
}

// DefaultPath returns the default .smcrc location in the user's home
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}

	return filepath.Join(home, DefaultFileName), nil
}

// Load reads configuration from the given .smcrc file (YAML) and the
// environment. With an empty path the default location is used and may be
// absent; an explicit path must exist. Environment variables override file
// values. Duration keys accept Go duration strings ("45s") or bare
// numbers, which are read as seconds.
func Load(path string) (*smc.Config, error) {
	loader := viper.New()
	loader.SetConfigType("yaml")
	loader.SetEnvPrefix("SMC")

	for _, key := range configKeys {
		if err := loader.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding environment for %s: %w", key, err)
		}
	}

	explicit := path != ""

	if !explicit {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}

		path = defaultPath
	}

	loader.SetConfigFile(path)

	if err := loader.ReadInConfig(); err != nil {
		// The default file is optional; environment-only configuration
		// is valid.
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	config := &smc.Config{}

	if err := loader.Unmarshal(config, viper.DecodeHook(durationHook())); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return config, nil
}

// durationHook decodes the duration keys (timeout, retry_wait_min,
// retry_wait_max). Bare numbers mean seconds, matching how the original
// .smcrc files were written; strings take Go duration syntax ("45s").
func durationHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch value := data.(type) {
		case int:
			return time.Duration(value) * time.Second, nil
		case int64:
			return time.Duration(value) * time.Second, nil
		case float64:
			return time.Duration(value * float64(time.Second)), nil
		case string:
			if seconds, err := strconv.Atoi(value); err == nil {
				return time.Duration(seconds) * time.Second, nil
			}

			return time.ParseDuration(value)
		}

		return data, nil
	}
}

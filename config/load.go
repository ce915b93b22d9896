package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rocketgeek/akismetclient-go/errors"
	"github.com/rocketgeek/akismetclient-go/protocol"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "AKISMET_"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("endpoint_template", validateEndpointTemplate)
	return v
}

// The placeholder must be followed by a dot so it can be stripped for key
// verification.
func validateEndpointTemplate(fl validator.FieldLevel) bool {
	return strings.Contains(fl.Field().String(), protocol.KeyPlaceholder+".")
}

// Validate checks the configuration for values the client cannot work with
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.NewConfigError(err.Error())
	}
	return nil
}

// Load reads a YAML configuration file on top of the defaults, applies
// AKISMET_* environment overrides and validates the result. An empty path
// skips the file.
func Load(path string) (*Config, error) {
	cfg := NewConfig("")

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file %s: %v", path, err))
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file %s: %v", path, err))
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	str("SITE_URL", &c.SiteURL)
	str("API_KEY", &c.APIKey)
	str("ENDPOINT", &c.Endpoint)
	str("SETTINGS_PATH", &c.SettingsPath)
	str("SEAL_KEY", &c.SealKey)
	str("TRACE_PATH", &c.TracePath)

	for name, dst := range map[string]*bool{
		"TEST_MODE":   &c.TestMode,
		"FAIL_CLOSED": &c.FailClosed,
	} {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.NewConfigError(fmt.Sprintf("invalid %s%s: %v", EnvPrefix, name, err))
		}
		*dst = b
	}

	if v, ok := lookup(EnvPrefix + "PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.NewConfigError(fmt.Sprintf("invalid %sPORT: %v", EnvPrefix, err))
		}
		c.Port = port
	}
	return nil
}

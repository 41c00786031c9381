// Package cfgloader loads and validates application configuration at
// startup. Configuration lives in per-environment YAML files; defaults and
// validation rules come from struct tags.
package cfgloader

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"
)

// MustLoad reads ./config/${ENVIRONMENT}.yaml into T and exits the process
// on any problem: missing file, malformed YAML or failed validation.
//
// Fields map through `yaml` tags. The `default` tag fills values the file
// leaves out, applied before validation. Validation rules use the
// go-playground/validator tag syntax. Environment variable references in
// the file (${VAR}) are expanded before unmarshaling; a .env file is loaded
// first when present.
//
// Example:
//
//	type Config struct {
//	    Host     string `yaml:"host" validate:"required"`
//	    Port     int    `yaml:"port" default:"8080"`
//	    Password string `yaml:"password" mask:"true"`
//	}
//
// The loaded config is logged with `mask:"true"` fields redacted, unless
// WithSilent is given.
func MustLoad[T any](opts ...Option) T {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	var config T
	ensureNotPointer(config)

	_ = godotenv.Load()

	env := environment()

	data := readConfigFile(fmt.Sprintf("./config/%s.yaml", env))
	data = []byte(os.ExpandEnv(string(data)))

	unmarshalConfig(data, &config, env)
	setDefaults(&config)
	validateConfig(&config, env)

	if !options.Silent {
		printConfig(&config)
	}

	return config
}

func ensureNotPointer(config any) {
	if reflect.ValueOf(config).Kind() == reflect.Ptr {
		fatal("arg config must not be a pointer")
	}
}

func environment() string {
	env := os.Getenv("ENVIRONMENT")
	if !slices.Contains([]string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}, env) {
		fatal("ENVIRONMENT env variable is not set or invalid. Choices are: production, staging, dev, local, test")
	}
	return env
}

func readConfigFile(path string) []byte {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		fatal(fmt.Sprintf(
			"config file not found in the path %s - Make sure that the yaml file exists for each environment",
			path,
		))
	}
	if err != nil {
		fatal(fmt.Sprintf("failed to read config file %s: %v", path, err))
	}
	return data
}

func unmarshalConfig(data []byte, config any, env string) {
	if err := yaml.Unmarshal(data, config); err != nil {
		fatal(fmt.Sprintf("failed to unmarshal %s config file: %v", env, err))
	}
}

func setDefaults(config any) {
	if err := defaults.Set(config); err != nil {
		fatal(fmt.Sprintf("failed to set default values for config: %s", err))
	}
}

func validateConfig(config any, env string) {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(config)

	failedFields := make([]string, 0)
	if errs, ok := err.(validator.ValidationErrors); ok { //nolint:errorlint // validator returns this concrete type
		for _, fieldErr := range errs {
			rule := fieldErr.Tag()
			if fieldErr.Param() != "" {
				rule += "=" + fieldErr.Param()
			}
			failedFields = append(failedFields, fmt.Sprintf("%s: %s", fieldErr.Namespace(), rule))
		}
	}

	if len(failedFields) > 0 {
		fatal(fmt.Sprintf("invalid fields in %s config -> %s", env, strings.Join(failedFields, ",  ")))
	}
}

func fatal(msg string) {
	slog.Error("[cfgloader]: " + msg)
	os.Exit(1)
}

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"zhlaw/internal"
)

type Config struct {
	InputPath string
	InputURLs []string
	OutputDir string

	FetchTimeoutMs    int
	FetchRateLimitRPS int

	// OutputProfile picks the record schema; the Output*Override fields, when
	// set, win over whatever profile is in use.
	OutputProfile               internal.Profile
	OutputCantonOverride        *string
	OutputLanguageOverride      *string
	StripParentheticalsOverride *bool

	LogLevel string
	LogJSON  bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		InputPath: getEnv("INPUT_PATH", filepath.Join(cwd, "zurich_laws_input.json")),
		InputURLs: getEnvList("INPUT_URLS"),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		FetchTimeoutMs:    getEnvInt("FETCH_TIMEOUT_MS", 30000),
		FetchRateLimitRPS: getEnvInt("FETCH_RATE_LIMIT_RPS", 2),

		OutputProfile:               ParseProfile(getEnv("OUTPUT_PROFILE", string(internal.ProfileFile))),
		OutputCantonOverride:        lookupEnv("OUTPUT_CANTON"),
		OutputLanguageOverride:      lookupEnv("OUTPUT_LANGUAGE"),
		StripParentheticalsOverride: lookupEnvBool("STRIP_PARENTHETICALS"),

		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogJSON:  getEnvBool("LOG_JSON", false),
	}

	return cfg, nil
}

// OutputOptions returns the record schema configured for this run.
func (c Config) OutputOptions() internal.OutputOptions {
	return c.OptionsFor(c.OutputProfile)
}

// OptionsFor returns the schema of profile p with the configured overrides
// applied on top.
func (c Config) OptionsFor(p internal.Profile) internal.OutputOptions {
	opts := internal.OptionsForProfile(ParseProfile(string(p)))
	if c.OutputCantonOverride != nil {
		opts.Canton = *c.OutputCantonOverride
	}
	if c.OutputLanguageOverride != nil {
		opts.Language = *c.OutputLanguageOverride
	}
	if c.StripParentheticalsOverride != nil {
		opts.StripParentheticals = *c.StripParentheticalsOverride
	}
	return opts
}

func ParseProfile(value string) internal.Profile {
	return internal.Profile(strings.ToLower(strings.TrimSpace(value)))
}

func lookupEnv(key string) *string {
	if value, ok := os.LookupEnv(key); ok {
		return &value
	}
	return nil
}

// lookupEnvBool is nil when key is unset or not a recognised boolean.
func lookupEnvBool(key string) *bool {
	if _, ok := os.LookupEnv(key); !ok {
		return nil
	}
	on, off := getEnvBool(key, true), getEnvBool(key, false)
	if on != off {
		return nil
	}
	return &on
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvList(key string) []string {
	value := getEnv(key, "")
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}

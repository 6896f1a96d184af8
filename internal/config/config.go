package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// devFallbackSecret signs tokens when no secret is configured outside of
// production. Production refuses to start without an explicit secret.
const devFallbackSecret = "dev-only-insecure-secret"

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Environment string
	Server      struct {
		Addr string
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret     string
		TokenTTLHours int
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("MESTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", "development")
	v.SetDefault("server.addr", "0.0.0.0:3000")
	v.SetDefault("database.path", "data/mesto.db")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttlhours", 24*7)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// ResolveSecret returns the token signing secret for this deployment. The
// development fallback is never used when Environment is "production".
func (c Config) ResolveSecret() (string, error) {
	secret := strings.TrimSpace(c.Auth.JWTSecret)
	if c.Environment == "production" {
		if secret == "" {
			return "", fmt.Errorf("auth jwt secret is required in production")
		}
		return secret, nil
	}
	if secret == "" {
		return devFallbackSecret, nil
	}
	return secret, nil
}

func loadDotEnv() {
	file, err := os.Open(".env")
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		partsIndex := strings.Index(line, "=")
		if partsIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:partsIndex])
		value := strings.TrimSpace(line[partsIndex+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}

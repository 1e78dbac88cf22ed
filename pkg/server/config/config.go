/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/dirs"
	"github.com/raynetcare/raynetcare/pkg/server/crypt"
	"github.com/raynetcare/raynetcare/pkg/server/log"
)

const (
	// AppEnvProduction represents an app environment for production.
	AppEnvProduction string = "PRODUCTION"
	// AppEnvTest represents an app environment for automated tests.
	AppEnvTest string = "TEST"
	// DefaultDBDir is the default directory name for raynetcare server data
	DefaultDBDir = "raynetcare"
	// DefaultDBFilename is the default database filename
	DefaultDBFilename = "server.db"
	// CSRFKeyLength is the length in bytes of the key signing anti-forgery tokens
	CSRFKeyLength = 32
)

var (
	// DefaultDBPath is the default path to the database file
	DefaultDBPath = filepath.Join(dirs.DataHome, DefaultDBDir, DefaultDBFilename)
)

var (
	// ErrDBMissingPath is an error for an incomplete configuration missing the database path
	ErrDBMissingPath = errors.New("DB Path is empty")
	// ErrWebURLInvalid is an error for an incomplete configuration with invalid web url
	ErrWebURLInvalid = errors.New("Invalid WebURL")
	// ErrPortInvalid is an error for an incomplete configuration with invalid port
	ErrPortInvalid = errors.New("Invalid Port")
	// ErrLogLevelInvalid is an error for an unknown log level
	ErrLogLevelInvalid = errors.New("Invalid LOG_LEVEL")
	// ErrCSRFKeyInvalid is an error for a CSRF key shorter than CSRFKeyLength
	ErrCSRFKeyInvalid = errors.New("CSRF_KEY must be at least 32 characters")
	// ErrCSRFKeyMissing is an error for serving in production without a CSRF key
	ErrCSRFKeyMissing = errors.New("CSRF_KEY is required in production")
)

// getOrEnv returns value if non-empty, otherwise the first non-empty env var
// among envKeys, otherwise default
func getOrEnv(value, defaultVal string, envKeys ...string) string {
	if value != "" {
		return value
	}
	for _, key := range envKeys {
		if env := os.Getenv(key); env != "" {
			return env
		}
	}
	return defaultVal
}

// LoadEnvFile reads environment variables from the given file if it exists.
// Variables already set in the environment take precedence.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return errors.Wrapf(err, "checking env file %s", path)
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "loading env file %s", path)
	}

	return nil
}

// Config is an application configuration
type Config struct {
	AppEnv   string
	WebURL   string
	Port     string
	DBPath   string
	LogLevel string
	CSRFKey  []byte
}

// Params are the configuration parameters for creating a new Config
type Params struct {
	AppEnv   string
	Port     string
	WebURL   string
	DBPath   string
	LogLevel string
	CSRFKey  string
}

// New constructs and returns a new validated config.
// Empty string params will fall back to environment variables and defaults.
func New(p Params) (Config, error) {
	c := Config{
		AppEnv:   getOrEnv(p.AppEnv, AppEnvProduction, "APP_ENV"),
		Port:     getOrEnv(p.Port, "3001", "PORT"),
		WebURL:   getOrEnv(p.WebURL, "http://localhost:3001", "WebURL"),
		DBPath:   getOrEnv(p.DBPath, DefaultDBPath, "DATABASE_URL", "DBPath"),
		LogLevel: getOrEnv(p.LogLevel, log.LevelInfo, "LOG_LEVEL"),
	}

	key, err := getCSRFKey(getOrEnv(p.CSRFKey, "", "CSRF_KEY"), c.IsProd())
	if err != nil {
		return Config{}, err
	}
	c.CSRFKey = key

	if err := validate(c); err != nil {
		return Config{}, err
	}

	return c, nil
}

// getCSRFKey returns the key signing anti-forgery tokens. Outside production
// a random key is generated when none is given, so issued tokens do not
// survive a restart. In production a missing key is left empty and reported
// by ValidateServe.
func getCSRFKey(raw string, isProd bool) ([]byte, error) {
	if raw == "" {
		if isProd {
			return nil, nil
		}

		key, err := crypt.GetRandomBytes(CSRFKeyLength)
		if err != nil {
			return nil, errors.Wrap(err, "generating csrf key")
		}

		return key, nil
	}

	if len(raw) < CSRFKeyLength {
		return nil, ErrCSRFKeyInvalid
	}

	return []byte(raw[:CSRFKeyLength]), nil
}

// IsProd checks if the app environment is configured to be production.
func (c Config) IsProd() bool {
	return c.AppEnv == AppEnvProduction
}

// IsTest checks if the app environment is configured for automated tests.
func (c Config) IsTest() bool {
	return c.AppEnv == AppEnvTest
}

// IsHTTPS reports whether the server is served over https
func (c Config) IsHTTPS() bool {
	u, err := url.Parse(c.WebURL)
	if err != nil {
		return false
	}

	return u.Scheme == "https"
}

// ValidateServe checks the settings needed only to serve HTTP. Admin commands
// do not need them.
func (c Config) ValidateServe() error {
	if len(c.CSRFKey) == 0 {
		return ErrCSRFKeyMissing
	}

	return nil
}

func validate(c Config) error {
	if _, err := url.ParseRequestURI(c.WebURL); err != nil {
		return errors.Wrapf(ErrWebURLInvalid, "'%s'", c.WebURL)
	}
	if c.Port == "" {
		return ErrPortInvalid
	}

	if c.DBPath == "" {
		return ErrDBMissingPath
	}

	if !log.IsValidLevel(c.LogLevel) {
		return errors.Wrapf(ErrLogLevelInvalid, "'%s'", c.LogLevel)
	}

	return nil
}

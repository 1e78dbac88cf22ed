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

// Package config reads and writes the client configuration file
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/cli/consts"
	"github.com/raynetcare/raynetcare/pkg/cli/context"
	"gopkg.in/yaml.v2"
)

const (
	// DefaultSyncTimeout bounds a single push request
	DefaultSyncTimeout = 30 * time.Second
	// DefaultProbeTimeout bounds a single connectivity probe
	DefaultProbeTimeout = 3 * time.Second
)

// Config holds raynetcare configuration
type Config struct {
	Editor       string        `yaml:"editor"`
	APIEndpoint  string        `yaml:"apiEndpoint"`
	SyncTimeout  time.Duration `yaml:"syncTimeout"`
	ProbeTimeout time.Duration `yaml:"probeTimeout"`
}

// GetPath returns the path to the config file
func GetPath(ctx context.RaynetCtx) string {
	return filepath.Join(ctx.Paths.Config, consts.DirName, consts.ConfigFilename)
}

// applyDefaults fills in zero durations left out of older config files
func applyDefaults(cf *Config) {
	if cf.SyncTimeout <= 0 {
		cf.SyncTimeout = DefaultSyncTimeout
	}
	if cf.ProbeTimeout <= 0 {
		cf.ProbeTimeout = DefaultProbeTimeout
	}
}

// Read reads the config file
func Read(ctx context.RaynetCtx) (Config, error) {
	var ret Config

	configPath := GetPath(ctx)
	b, err := os.ReadFile(configPath)
	if err != nil {
		return ret, errors.Wrap(err, "reading config file")
	}

	err = yaml.Unmarshal(b, &ret)
	if err != nil {
		return ret, errors.Wrap(err, "unmarshalling config")
	}

	applyDefaults(&ret)

	return ret, nil
}

// Write writes the config to the config file
func Write(ctx context.RaynetCtx, cf Config) error {
	path := GetPath(ctx)

	b, err := yaml.Marshal(cf)
	if err != nil {
		return errors.Wrap(err, "marshalling config into YAML")
	}

	err = os.WriteFile(path, b, 0644)
	if err != nil {
		return errors.Wrap(err, "writing the config file")
	}

	return nil
}

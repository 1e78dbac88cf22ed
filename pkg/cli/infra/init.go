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

// Package infra provides operations and definitions for the
// local infrastructure of the raynetcare client
package infra

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/cli/client"
	"github.com/raynetcare/raynetcare/pkg/cli/config"
	"github.com/raynetcare/raynetcare/pkg/cli/consts"
	"github.com/raynetcare/raynetcare/pkg/cli/context"
	"github.com/raynetcare/raynetcare/pkg/cli/database"
	"github.com/raynetcare/raynetcare/pkg/cli/log"
	"github.com/raynetcare/raynetcare/pkg/cli/utils"
	"github.com/raynetcare/raynetcare/pkg/clock"
	"github.com/raynetcare/raynetcare/pkg/dirs"
	"github.com/spf13/cobra"
)

const (
	// DefaultAPIEndpoint is the default API endpoint used when none is configured
	DefaultAPIEndpoint = "http://localhost:3001"
)

// RunEFunc is a function type of raynetcare commands
type RunEFunc func(*cobra.Command, []string) error

func getDBPath(paths context.Paths, customPath string) string {
	if customPath != "" {
		return customPath
	}

	return filepath.Join(paths.Data, consts.DirName, consts.DBFileName)
}

// newBaseCtx creates a minimal context with paths and database connection.
// It is enriched with config values by setupCtx once files exist.
func newBaseCtx(versionTag, customDBPath string) (context.RaynetCtx, error) {
	paths := context.Paths{
		Home:   dirs.Home,
		Config: dirs.ConfigHome,
		Data:   dirs.DataHome,
		Cache:  dirs.CacheHome,
	}

	// The data dir must exist before sqlite can create the file
	if err := context.InitDirs(paths); err != nil {
		return context.RaynetCtx{}, errors.Wrap(err, "creating the raynetcare dirs")
	}

	db, err := database.Open(getDBPath(paths, customDBPath))
	if err != nil {
		return context.RaynetCtx{}, errors.Wrap(err, "connecting to db")
	}

	ctx := context.RaynetCtx{
		Paths:   paths,
		Version: versionTag,
		DB:      db,
	}

	return ctx, nil
}

// Init initializes the raynetcare environment and returns a new context.
// A non-empty apiEndpoint overrides the configured one for this run and
// seeds the config file when it is first created.
func Init(versionTag, apiEndpoint, dbPath string) (*context.RaynetCtx, error) {
	ctx, err := newBaseCtx(versionTag, dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "initializing a context")
	}

	if err := initConfigFile(ctx, apiEndpoint); err != nil {
		return nil, errors.Wrap(err, "generating the config file")
	}

	if err := database.InitSchema(ctx.DB); err != nil {
		return nil, errors.Wrap(err, "initializing database")
	}
	if err := InitSystem(ctx); err != nil {
		return nil, errors.Wrap(err, "initializing system data")
	}

	ctx, err = setupCtx(ctx, apiEndpoint)
	if err != nil {
		return nil, errors.Wrap(err, "setting up the context")
	}

	log.Debug("context: %+v\n", context.Redact(ctx))

	return &ctx, nil
}

// setupCtx enriches the base context with values from the config file and
// the database.
func setupCtx(ctx context.RaynetCtx, apiEndpoint string) (context.RaynetCtx, error) {
	store := ctx.Store()

	sessionKey, _, err := store.Get(consts.SessionKey)
	if err != nil {
		return ctx, errors.Wrap(err, "finding session key")
	}

	var sessionKeyExpiry int64
	expiryStr, ok, err := store.Get(consts.SessionKeyExpiry)
	if err != nil {
		return ctx, errors.Wrap(err, "finding session key expiry")
	}
	if ok {
		sessionKeyExpiry, err = strconv.ParseInt(expiryStr, 10, 64)
		if err != nil {
			return ctx, errors.Wrapf(err, "parsing session key expiry %s", expiryStr)
		}
	}

	cf, err := config.Read(ctx)
	if err != nil {
		return ctx, errors.Wrap(err, "reading config")
	}

	endpoint := cf.APIEndpoint
	if apiEndpoint != "" {
		endpoint = apiEndpoint
	}

	ret := context.RaynetCtx{
		Paths:            ctx.Paths,
		Version:          ctx.Version,
		DB:               ctx.DB,
		SessionKey:       sessionKey,
		SessionKeyExpiry: sessionKeyExpiry,
		APIEndpoint:      endpoint,
		Editor:           cf.Editor,
		Clock:            clock.New(),
		HTTPClient:       client.NewHTTPClient(),
		SyncTimeout:      cf.SyncTimeout,
		ProbeTimeout:     cf.ProbeTimeout,
	}

	return ret, nil
}

func initSystemKV(db *database.DB, key string, val string) error {
	var count int
	if err := db.QueryRow("SELECT count(*) FROM system WHERE key = ?", key).Scan(&count); err != nil {
		return errors.Wrapf(err, "counting %s", key)
	}

	if count > 0 {
		return nil
	}

	if _, err := db.Exec("INSERT INTO system (key, value) VALUES (?, ?)", key, val); err != nil {
		return errors.Wrapf(err, "inserting %s %s", key, val)
	}

	return nil
}

// InitSystem inserts system data if missing
func InitSystem(ctx context.RaynetCtx) error {
	log.Debug("initializing the system\n")

	tx, err := ctx.DB.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning a transaction")
	}

	if err := initSystemKV(tx, consts.LastSyncAt, "0"); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "initializing system config for %s", consts.LastSyncAt)
	}
	if err := initSystemKV(tx, consts.ForceOfflineKey, "0"); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "initializing system config for %s", consts.ForceOfflineKey)
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing transaction")
	}

	return nil
}

// getEditorCommand returns the system's editor command with appropriate flags,
// if necessary, to make the command wait until editor is close to exit.
func getEditorCommand() string {
	editor := os.Getenv("EDITOR")

	switch editor {
	case "subl":
		return "subl -n -w"
	case "code":
		return "code -n -w"
	case "vim", "nano", "emacs", "nvim":
		return editor
	default:
		return "vi"
	}
}

// initConfigFile populates a new config file if it does not exist yet
func initConfigFile(ctx context.RaynetCtx, apiEndpoint string) error {
	path := config.GetPath(ctx)
	ok, err := utils.FileExists(path)
	if err != nil {
		return errors.Wrap(err, "checking if config exists")
	}
	if ok {
		return nil
	}

	endpoint := apiEndpoint
	if endpoint == "" {
		endpoint = DefaultAPIEndpoint
	}

	cf := config.Config{
		Editor:       getEditorCommand(),
		APIEndpoint:  endpoint,
		SyncTimeout:  config.DefaultSyncTimeout,
		ProbeTimeout: config.DefaultProbeTimeout,
	}

	if err := config.Write(ctx, cf); err != nil {
		return errors.Wrap(err, "writing config")
	}

	return nil
}

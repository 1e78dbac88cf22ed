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

package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/clock"
	"github.com/raynetcare/raynetcare/pkg/server/app"
	"github.com/raynetcare/raynetcare/pkg/server/config"
	"github.com/raynetcare/raynetcare/pkg/server/database"
	"gorm.io/gorm"
)

const dbPathUsage = "Database path or postgres DSN (env: DATABASE_URL or DBPath, default: $XDG_DATA_HOME/raynetcare/server.db)"

func initDB(dbPath, logLevel string) (*gorm.DB, error) {
	db, err := database.Open(dbPath, logLevel)
	if err != nil {
		return nil, err
	}

	if err := database.InitSchema(db); err != nil {
		database.Close(db)
		return nil, errors.Wrap(err, "initializing schema")
	}

	return db, nil
}

func initApp(cfg config.Config) (app.App, error) {
	db, err := initDB(cfg.DBPath, cfg.LogLevel)
	if err != nil {
		return app.App{}, err
	}

	return app.App{
		DB:     db,
		Clock:  clock.New(),
		AppEnv: cfg.AppEnv,
		WebURL: cfg.WebURL,
		Port:   cfg.Port,
		DBPath: cfg.DBPath,
	}, nil
}

// printFlags prints flags with -- prefix for consistency with CLI
func printFlags(fs *flag.FlagSet) {
	fs.VisitAll(func(f *flag.Flag) {
		fmt.Printf("  --%s", f.Name)

		name, usage := flag.UnquoteUsage(f)
		if name != "" {
			fmt.Printf(" %s", name)
		}
		fmt.Println()

		if usage != "" {
			fmt.Printf("    \t%s", usage)
			if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
				fmt.Printf(" (default: %s)", f.DefValue)
			}
			fmt.Println()
		}
	})
}

// setupFlagSet creates a FlagSet with standard usage format
func setupFlagSet(name, usageCmd string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Printf(`Usage:
  %s [flags]

Flags:
`, usageCmd)
		printFlags(fs)
	}
	return fs
}

// requireString validates that a required string flag is not empty
func requireString(fs *flag.FlagSet, value, fieldName string) {
	if value == "" {
		fmt.Printf("Error: %s is required\n", fieldName)
		fs.Usage()
		os.Exit(1)
	}
}

// requirePositive validates that a required id flag was given
func requirePositive(fs *flag.FlagSet, value int, fieldName string) {
	if value <= 0 {
		fmt.Printf("Error: %s is required\n", fieldName)
		fs.Usage()
		os.Exit(1)
	}
}

// fail prints the error and exits
func fail(format string, a ...interface{}) {
	fmt.Printf("Error: "+format+"\n", a...)
	os.Exit(1)
}

// setupAppWithDB creates config, initializes app, and returns cleanup function
func setupAppWithDB(fs *flag.FlagSet, dbPath string) (*app.App, func()) {
	cfg, err := config.New(config.Params{
		DBPath: dbPath,
	})
	if err != nil {
		fmt.Printf("Error: %s\n\n", err)
		fs.Usage()
		os.Exit(1)
	}

	a, err := initApp(cfg)
	if err != nil {
		fail("%s", err)
	}

	cleanup := func() {
		database.Close(a.DB)
	}

	return &a, cleanup
}

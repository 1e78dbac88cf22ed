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
	"fmt"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/server/app"
	"github.com/raynetcare/raynetcare/pkg/server/buildinfo"
	"github.com/raynetcare/raynetcare/pkg/server/config"
	"github.com/raynetcare/raynetcare/pkg/server/controllers"
	"github.com/raynetcare/raynetcare/pkg/server/database"
	"github.com/raynetcare/raynetcare/pkg/server/log"
	mw "github.com/raynetcare/raynetcare/pkg/server/middleware"
	"github.com/robfig/cron"
)

const sessionSweepSchedule = "@hourly"

// sweepSessions deletes the sessions past their expiry
func sweepSessions(a *app.App) {
	n, err := a.DeleteExpiredSessions()
	if err != nil {
		log.ErrorWrap(err, "deleting expired sessions")
		return
	}

	log.WithFields(log.Fields{
		"count": n,
	}).Debug("swept expired sessions")
}

func startCron(a *app.App) (*cron.Cron, error) {
	c := cron.New()
	if err := c.AddFunc(sessionSweepSchedule, func() { sweepSessions(a) }); err != nil {
		return nil, errors.Wrap(err, "scheduling session sweep")
	}
	c.Start()

	return c, nil
}

func startCmd(args []string) {
	fs := setupFlagSet("start", "raynetcare-server start")

	appEnv := fs.String("appEnv", "", "Application environment (env: APP_ENV, default: PRODUCTION)")
	port := fs.String("port", "", "Server port (env: PORT, default: 3001)")
	webURL := fs.String("webUrl", "", "Full URL to server without trailing slash (env: WebURL, default: http://localhost:3001)")
	dbPath := fs.String("dbPath", "", dbPathUsage)
	logLevel := fs.String("logLevel", "", "Log level: debug, info, warn, or error (env: LOG_LEVEL, default: info)")
	envFile := fs.String("envFile", ".env", "Path to a file of environment variables loaded before reading the config")

	fs.Parse(args)

	if err := config.LoadEnvFile(*envFile); err != nil {
		fail("%s", err)
	}

	cfg, err := config.New(config.Params{
		AppEnv:   *appEnv,
		Port:     *port,
		WebURL:   *webURL,
		DBPath:   *dbPath,
		LogLevel: *logLevel,
	})
	if err == nil {
		err = cfg.ValidateServe()
	}
	if err != nil {
		fmt.Printf("Error: %s\n\n", err)
		fs.Usage()
		os.Exit(1)
	}

	log.SetLevel(cfg.LogLevel)

	a, err := initApp(cfg)
	if err != nil {
		fail("%s", err)
	}
	defer database.Close(a.DB)

	c, err := startCron(&a)
	if err != nil {
		fail("%s", err)
	}
	defer c.Stop()

	secure := cfg.IsProd() && cfg.IsHTTPS()
	ctl := controllers.New(&a, secure)
	rc := controllers.RouteConfig{
		APIRoutes:   controllers.NewAPIRoutes(&a, ctl),
		SyncRoutes:  controllers.NewSyncRoutes(&a, ctl),
		Controllers: ctl,
		CSRF: mw.CSRFParams{
			Key:    cfg.CSRFKey,
			Secure: secure,
		},
	}

	r, err := controllers.NewRouter(&a, rc)
	if err != nil {
		panic(errors.Wrap(err, "initializing router"))
	}

	log.WithFields(log.Fields{
		"version": buildinfo.Version,
		"port":    cfg.Port,
		"env":     cfg.AppEnv,
	}).Info("raynetcare server starting")

	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.ErrorWrap(err, "server failed")
		os.Exit(1)
	}
}

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

package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/server/app"
	mw "github.com/raynetcare/raynetcare/pkg/server/middleware"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.HandlerFunc
	RateLimit bool
}

// RouteConfig is the configuration for routes
type RouteConfig struct {
	Controllers *Controllers
	APIRoutes   []Route
	SyncRoutes  []Route
	CSRF        mw.CSRFParams
}

// NewAPIRoutes returns the JSON API routes, served under /api/v1
func NewAPIRoutes(a *app.App, c *Controllers) []Route {
	return []Route{
		{"POST", "/signin", c.Users.Signin, true},
		{"POST", "/signout", c.Users.Signout, true},
		{"GET", "/me", mw.Auth(a, c.Users.Me), true},
		{"GET", "/service-users", mw.Auth(a, c.ServiceUsers.Index), true},
		{"GET", "/service-users/{id}", mw.Auth(a, c.ServiceUsers.Show), true},
		{"GET", "/notes", mw.Auth(a, c.Notes.Index), true},
		{"GET", "/notes/{id}", mw.Auth(a, c.Notes.Show), true},
	}
}

// NewSyncRoutes returns the routes used by offline clients, served under
// /sync behind the anti-forgery check
func NewSyncRoutes(a *app.App, c *Controllers) []Route {
	return []Route{
		{"GET", "/csrf/", c.Sync.CSRFToken, true},
		{"POST", "/push-notes/", mw.Auth(a, c.Sync.PushNotes), false},
	}
}

func registerRoutes(router *mux.Router, wrapper mw.Middleware, app *app.App, routes []Route) {
	for _, route := range routes {
		wrappedHandler := wrapper(route.Handler, app, route.RateLimit)

		router.
			Handle(route.Pattern, wrappedHandler).
			Methods(route.Method)
	}
}

// NewRouter creates and returns a new router
func NewRouter(app *app.App, rc RouteConfig) (http.Handler, error) {
	if err := app.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the app parameters")
	}
	if len(rc.CSRF.Key) == 0 {
		return nil, errors.New("no CSRF key was provided")
	}

	router := mux.NewRouter().StrictSlash(true)

	router.Handle("/health", mw.APIMw(rc.Controllers.Health.Index, app, true)).Methods("GET")

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	registerRoutes(apiRouter, mw.APIMw, app, rc.APIRoutes)

	syncRouter := router.PathPrefix("/sync").Subrouter()
	syncRouter.Use(mw.CSRF(rc.CSRF))
	registerRoutes(syncRouter, mw.APIMw, app, rc.SyncRoutes)

	router.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nDisallow: /"))
	})

	// catch-all
	router.NotFoundHandler = http.HandlerFunc(mw.NotFound)

	return mw.Global(router), nil
}

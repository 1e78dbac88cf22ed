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
	"strconv"

	"github.com/gorilla/mux"
	"github.com/raynetcare/raynetcare/pkg/server/app"
	"github.com/raynetcare/raynetcare/pkg/server/context"
	mw "github.com/raynetcare/raynetcare/pkg/server/middleware"
	"github.com/raynetcare/raynetcare/pkg/server/presenters"
)

// NewServiceUsers creates a new ServiceUsers controller.
func NewServiceUsers(app *app.App) *ServiceUsers {
	return &ServiceUsers{app: app}
}

// ServiceUsers is a controller for the people receiving care.
type ServiceUsers struct {
	app *app.App
}

type serviceUsersQuery struct {
	Q string `schema:"q"`
}

// Index handles GET /api/v1/service-users
func (s *ServiceUsers) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	var q serviceUsersQuery
	if err := parseQuery(r, &q); err != nil {
		handleJSONError(w, err, "parsing query")
		return
	}

	sus, err := s.app.VisibleServiceUsers(*user, q.Q)
	if err != nil {
		handleJSONError(w, err, "finding service users")
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.PresentServiceUsers(sus))
}

// Show handles GET /api/v1/service-users/{id}
func (s *ServiceUsers) Show(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		handleJSONError(w, app.ErrNotFound, "parsing id")
		return
	}

	ok, err := s.app.CanAccessServiceUser(*user, id)
	if err != nil {
		handleJSONError(w, err, "checking access")
		return
	}
	if !ok {
		// hide whether the service user exists
		handleJSONError(w, app.ErrNotFound, "finding service user")
		return
	}

	su, err := s.app.GetServiceUser(id)
	if err != nil {
		handleJSONError(w, err, "finding service user")
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.PresentServiceUser(su))
}

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
	"github.com/raynetcare/raynetcare/pkg/server/operations"
	"github.com/raynetcare/raynetcare/pkg/server/presenters"
)

// NewNotes creates a new Notes controller.
func NewNotes(app *app.App) *Notes {
	return &Notes{app: app}
}

// Notes is a controller for communication notes.
type Notes struct {
	app *app.App
}

// notesQuery is the query string of GET /api/v1/notes
type notesQuery struct {
	ServiceUserID int   `schema:"service_user_id"`
	Concern       *bool `schema:"concern"`
	Limit         int   `schema:"limit"`
}

// Index handles GET /api/v1/notes
func (n *Notes) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	var q notesQuery
	if err := parseQuery(r, &q); err != nil {
		handleJSONError(w, err, "parsing query")
		return
	}

	notes, err := n.app.ListNotes(*user, app.NotesFilter{
		ServiceUserID: q.ServiceUserID,
		Concern:       q.Concern,
		Limit:         q.Limit,
	})
	if err != nil {
		handleJSONError(w, err, "finding notes")
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.PresentNotes(notes))
}

// Show handles GET /api/v1/notes/{id}
func (n *Notes) Show(w http.ResponseWriter, r *http.Request) {
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

	note, ok, err := operations.GetNote(n.app.DB, id, user)
	if err != nil {
		handleJSONError(w, err, "finding note")
		return
	}
	if !ok {
		handleJSONError(w, app.ErrNotFound, "finding note")
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.PresentNote(note))
}

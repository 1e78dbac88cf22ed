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

	"github.com/raynetcare/raynetcare/pkg/server/app"
	"github.com/raynetcare/raynetcare/pkg/server/context"
	"github.com/raynetcare/raynetcare/pkg/server/log"
	mw "github.com/raynetcare/raynetcare/pkg/server/middleware"
)

// NewSync creates a new Sync controller.
func NewSync(app *app.App, secureCookies bool) *Sync {
	return &Sync{
		app:           app,
		secureCookies: secureCookies,
	}
}

// Sync is a controller for clients pushing notes queued offline.
type Sync struct {
	app           *app.App
	secureCookies bool
}

// CSRFTokenResponse is the body of GET /sync/csrf/
type CSRFTokenResponse struct {
	CSRFToken string `json:"csrf_token"`
}

// CSRFToken handles GET /sync/csrf/. It issues the anti-forgery token that
// a client must echo in the X-CSRFToken header when pushing.
func (s *Sync) CSRFToken(w http.ResponseWriter, r *http.Request) {
	token := mw.SetCSRFTokenCookie(w, r, s.secureCookies)

	mw.RespondJSON(w, http.StatusOK, CSRFTokenResponse{CSRFToken: token})
}

// PushNotesPayload is the body of POST /sync/push-notes/
type PushNotesPayload struct {
	Notes []app.PushNote `json:"notes"`
}

// PushNotes handles POST /sync/push-notes/
func (s *Sync) PushNotes(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	var payload PushNotesPayload
	if err := parseJSON(r, &payload); err != nil {
		log.WithFields(log.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		}).Warn("invalid push payload")

		mw.RespondJSON(w, http.StatusBadRequest, app.PushResult{
			Saved:  0,
			Errors: []string{errInvalidJSON.Error()},
		})
		return
	}

	result := s.app.PushNotes(*user, payload.Notes)

	log.WithFields(log.Fields{
		"user_id":  user.ID,
		"received": len(payload.Notes),
		"saved":    result.Saved,
		"errors":   len(result.Errors),
	}).Info("pushed notes")

	mw.RespondJSON(w, http.StatusOK, result)
}

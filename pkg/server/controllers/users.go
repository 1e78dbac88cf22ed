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

	pkgErrors "github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/server/app"
	"github.com/raynetcare/raynetcare/pkg/server/context"
	"github.com/raynetcare/raynetcare/pkg/server/database"
	mw "github.com/raynetcare/raynetcare/pkg/server/middleware"
	"github.com/raynetcare/raynetcare/pkg/server/presenters"
)

// NewUsers creates a new Users controller.
func NewUsers(app *app.App, secureCookies bool) *Users {
	return &Users{
		app:           app,
		secureCookies: secureCookies,
	}
}

// Users is a user controller.
type Users struct {
	app           *app.App
	secureCookies bool
}

// SigninForm is the form data for sign in
type SigninForm struct {
	Username string `schema:"username" json:"username"`
	Password string `schema:"password" json:"password"`
}

// SessionResponse is a response containing a session information
type SessionResponse struct {
	Key       string `json:"key"`
	ExpiresAt int64  `json:"expires_at"`
}

func (u *Users) signin(form SigninForm) (*database.Session, error) {
	if form.Username == "" {
		return nil, app.ErrUsernameRequired
	}
	if form.Password == "" {
		return nil, errPasswordRequired
	}

	user, err := u.app.Authenticate(form.Username, form.Password)
	if err != nil {
		// If the user is not found, treat it as invalid login
		if err == app.ErrNotFound {
			return nil, app.ErrLoginInvalid
		}

		return nil, err
	}

	s, err := u.app.SignIn(user)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Signin handles POST /api/v1/signin
func (u *Users) Signin(w http.ResponseWriter, r *http.Request) {
	var form SigninForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	session, err := u.signin(form)
	if err != nil {
		handleJSONError(w, err, "signing in user")
		return
	}

	setSessionCookie(w, session.Key, session.ExpiresAt, u.secureCookies)
	mw.RespondJSON(w, http.StatusOK, SessionResponse{
		Key:       session.Key,
		ExpiresAt: session.ExpiresAt.Unix(),
	})
}

func (u *Users) signout(r *http.Request) (bool, error) {
	key, err := mw.GetCredential(r)
	if err != nil {
		return false, pkgErrors.Wrap(err, "getting credentials")
	}

	if key == "" {
		return false, nil
	}

	if err = u.app.DeleteSession(key); err != nil {
		return false, pkgErrors.Wrap(err, "deleting session")
	}

	return true, nil
}

// Signout handles POST /api/v1/signout
func (u *Users) Signout(w http.ResponseWriter, r *http.Request) {
	ok, err := u.signout(r)
	if err != nil {
		handleJSONError(w, err, "signing out")
		return
	}

	if ok {
		unsetSessionCookie(w)
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/me
func (u *Users) Me(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.PresentUser(*user))
}

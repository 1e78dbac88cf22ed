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
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/schema"
	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/server/app"
	mw "github.com/raynetcare/raynetcare/pkg/server/middleware"
)

var (
	// errInvalidJSON is an error for a request body that is not valid JSON
	errInvalidJSON = errors.New("Invalid JSON")
	// errInvalidQuery is an error for a query string that cannot be decoded
	errInvalidQuery = errors.New("Invalid query")
	// errPasswordRequired is an error for a sign in without password
	errPasswordRequired = errors.New("password is required")
)

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)

	return d
}

// parseJSON decodes the JSON body of the request into v
func parseJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errInvalidJSON, err.Error())
	}

	return nil
}

// parseForm decodes the url encoded form of the request into v
func parseForm(r *http.Request, v interface{}) error {
	if err := r.ParseForm(); err != nil {
		return errors.Wrap(errInvalidQuery, err.Error())
	}
	if err := queryDecoder.Decode(v, r.PostForm); err != nil {
		return errors.Wrap(errInvalidQuery, err.Error())
	}

	return nil
}

// parseRequestData decodes the request body as JSON or as a form depending on
// its content type
func parseRequestData(r *http.Request, v interface{}) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		return parseForm(r, v)
	}

	return parseJSON(r, v)
}

// parseQuery decodes the query string of the request into v
func parseQuery(r *http.Request, v interface{}) error {
	if err := queryDecoder.Decode(v, r.URL.Query()); err != nil {
		return errors.Wrap(errInvalidQuery, err.Error())
	}

	return nil
}

func getStatusCode(err error) int {
	switch errors.Cause(err) {
	case errInvalidJSON, errInvalidQuery, errPasswordRequired,
		app.ErrUsernameRequired, app.ErrPasswordTooShort, app.ErrFullNameRequired,
		app.ErrNoteTextRequired, app.ErrVisitTypeTooLong, app.ErrClientUIDTooLong:
		return http.StatusBadRequest
	case app.ErrLoginInvalid:
		return http.StatusUnauthorized
	case app.ErrForbiddenServiceUser:
		return http.StatusForbidden
	case app.ErrNotFound:
		return http.StatusNotFound
	case app.ErrDuplicateUsername:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleJSONError responds with the status matching the error
func handleJSONError(w http.ResponseWriter, err error, msg string) {
	statusCode := getStatusCode(err)

	if statusCode < http.StatusInternalServerError {
		// report the sentinel message without the decoding details
		err = errors.Cause(err)
	}

	mw.DoError(w, msg, err, statusCode)
}

func setSessionCookie(w http.ResponseWriter, key string, expires time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     mw.SessionCookieName,
		Value:    key,
		Expires:  expires,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func unsetSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     mw.SessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
	})
}

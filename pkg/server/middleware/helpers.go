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

package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/server/log"
)

// SessionCookieName is the name of the cookie carrying the session key
const SessionCookieName = "id"

// ErrorResponse is the body of an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON responds with the JSON-encoding of the given value
func RespondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.ErrorWrap(err, "encoding response")
	}
}

// RespondError responds with a JSON error body
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	RespondJSON(w, statusCode, ErrorResponse{Error: message})
}

// DoError logs the error and responds with the given status. Server errors
// are reported without details.
func DoError(w http.ResponseWriter, msg string, err error, statusCode int) {
	if statusCode >= http.StatusInternalServerError {
		log.ErrorWrap(err, msg)
		RespondError(w, statusCode, http.StatusText(statusCode))
		return
	}

	log.WithFields(log.Fields{
		"error":  err.Error(),
		"status": statusCode,
	}).Warn(msg)
	RespondError(w, statusCode, err.Error())
}

// RespondUnauthorized responds with 401 for a request without a valid session
func RespondUnauthorized(w http.ResponseWriter) {
	unsetSessionCookie(w)
	w.Header().Add("WWW-Authenticate", `Bearer realm="raynetcare"`)
	RespondError(w, http.StatusUnauthorized, "unauthorized")
}

// NotFound responds with 404 for routes that do not exist
func NotFound(w http.ResponseWriter, r *http.Request) {
	RespondError(w, http.StatusNotFound, "not found")
}

func unsetSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func getSessionKeyFromCookie(r *http.Request) (string, error) {
	c, err := r.Cookie(SessionCookieName)

	if err == http.ErrNoCookie {
		return "", nil
	} else if err != nil {
		return "", errors.Wrap(err, "reading session cookie")
	}

	return c.Value, nil
}

func getSessionKeyFromAuth(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", nil
	}

	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.Errorf("unsupported authorization scheme %q", parts[0])
	}

	return strings.TrimSpace(parts[1]), nil
}

// GetCredential extracts a session key from the request from the request header.
// The Authorization header takes precedence over the session cookie.
func GetCredential(r *http.Request) (string, error) {
	key, err := getSessionKeyFromAuth(r)
	if err != nil {
		return "", errors.Wrap(err, "getting session key from Authorization header")
	}
	if key != "" {
		return key, nil
	}

	key, err = getSessionKeyFromCookie(r)
	if err != nil {
		return "", errors.Wrap(err, "getting session key from cookie")
	}

	return key, nil
}

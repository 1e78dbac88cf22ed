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
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/raynetcare/raynetcare/pkg/server/log"
)

const (
	// CSRFHeaderName is the request header carrying the anti-forgery token
	CSRFHeaderName = "X-CSRFToken"
	// CSRFTokenCookieName is the script readable cookie holding the masked token
	CSRFTokenCookieName = "csrftoken"
	// csrfSecretCookieName is the cookie holding the signed secret
	csrfSecretCookieName = "raynetcare_csrf"
)

// CSRFParams configure the anti-forgery protection
type CSRFParams struct {
	Key []byte
	// Secure marks the secret cookie as https only
	Secure bool
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	reason := csrf.FailureReason(r)

	msg := "CSRF verification failed"
	if reason != nil {
		msg = msg + ": " + reason.Error()
	}

	log.WithFields(log.Fields{
		"path":   r.URL.Path,
		"reason": msg,
	}).Warn("rejected request")

	RespondError(w, http.StatusForbidden, msg)
}

// CSRF protects unsafe requests with a token read from the X-CSRFToken
// header. The token is obtained from the csrftoken cookie set by
// SetCSRFTokenCookie.
func CSRF(p CSRFParams) func(http.Handler) http.Handler {
	protect := csrf.Protect(p.Key,
		csrf.RequestHeader(CSRFHeaderName),
		csrf.CookieName(csrfSecretCookieName),
		csrf.Path("/"),
		csrf.Secure(p.Secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	)

	return func(next http.Handler) http.Handler {
		h := protect(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// TLS terminated in front of the server still reaches us as plain http
			if r.TLS == nil {
				r = csrf.PlaintextHTTPRequest(r)
			}

			h.ServeHTTP(w, r)
		})
	}
}

// SetCSRFTokenCookie issues the masked token of the request in a cookie that
// scripts and clients can read. It returns the token.
func SetCSRFTokenCookie(w http.ResponseWriter, r *http.Request, secure bool) string {
	token := csrf.Token(r)

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFTokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   12 * 60 * 60,
		Secure:   secure,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})

	return token
}

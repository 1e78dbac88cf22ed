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

	"github.com/raynetcare/raynetcare/pkg/server/app"
	"github.com/raynetcare/raynetcare/pkg/server/context"
	"github.com/raynetcare/raynetcare/pkg/server/log"
)

// Auth is an authentication middleware. It responds with 401 unless the
// request carries the key of an unexpired session.
func Auth(a *app.App, next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, err := GetCredential(r)
		if err != nil {
			log.WithFields(log.Fields{
				"error": err.Error(),
			}).Debug("reading credential")
			RespondUnauthorized(w)
			return
		}

		session, user, ok, err := a.GetSessionUser(key)
		if err != nil {
			DoError(w, "authenticating with session", err, http.StatusInternalServerError)
			return
		}
		if !ok {
			RespondUnauthorized(w)
			return
		}

		if err := a.TouchSession(session); err != nil {
			log.ErrorWrap(err, "touching session")
		}

		ctx := context.WithUser(r.Context(), &user)
		ctx = context.WithSession(ctx, &session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

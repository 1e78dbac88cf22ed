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
	"net/http/cookiejar"
	"net/url"
	"testing"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/server/app"
	"github.com/raynetcare/raynetcare/pkg/server/database"
	mw "github.com/raynetcare/raynetcare/pkg/server/middleware"
	"github.com/raynetcare/raynetcare/pkg/server/testutils"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) (*app.App, *gorm.DB) {
	db := testutils.InitMemoryDB(t)

	a := app.NewTest()
	a.DB = db

	return &a, db
}

// newJarClient returns a client that keeps cookies between requests
func newJarClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating cookie jar"))
	}

	return &http.Client{Jar: jar}
}

// primeCSRF fetches the anti-forgery cookies and returns the token to echo
func primeCSRF(t *testing.T, hc *http.Client, serverURL string) string {
	res, err := hc.Get(serverURL + "/sync/csrf/")
	if err != nil {
		t.Fatal(errors.Wrap(err, "requesting csrf token"))
	}
	res.Body.Close()

	u, err := url.Parse(serverURL)
	if err != nil {
		t.Fatal(err)
	}

	c := testutils.GetCookieByName(hc.Jar.Cookies(u), mw.CSRFTokenCookieName)
	if c == nil {
		t.Fatal("csrftoken cookie was not set")
	}

	return c.Value
}

// doJar performs the request with the client, failing the test on error
func doJar(t *testing.T, hc *http.Client, req *http.Request) *http.Response {
	res, err := hc.Do(req)
	if err != nil {
		t.Fatal(errors.Wrap(err, "performing http request"))
	}

	return res
}

func setupStaff(t *testing.T, db *gorm.DB, role string) (database.User, database.Session) {
	user := testutils.SetupUserData(db, "alice", "pass1234", role)
	session := testutils.SetupSession(db, user)

	return user, session
}

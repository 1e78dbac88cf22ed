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

// Package controllers implements the HTTP handlers of the server
package controllers

import (
	"github.com/raynetcare/raynetcare/pkg/server/app"
)

// Controllers is a group of controllers
type Controllers struct {
	Users        *Users
	ServiceUsers *ServiceUsers
	Notes        *Notes
	Sync         *Sync
	Health       *Health
}

// New returns a new group of controllers. secureCookies marks the cookies
// issued by the server as https only.
func New(app *app.App, secureCookies bool) *Controllers {
	c := Controllers{}

	c.Users = NewUsers(app, secureCookies)
	c.ServiceUsers = NewServiceUsers(app)
	c.Notes = NewNotes(app)
	c.Sync = NewSync(app, secureCookies)
	c.Health = NewHealth(app)

	return &c
}

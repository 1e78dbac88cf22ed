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

// Package app implements the business logic of the raynetcare server
package app

import (
	"time"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/clock"
	"gorm.io/gorm"
)

// DefaultSessionTTL is how long a session key stays valid after sign in
const DefaultSessionTTL = 24 * 30 * time.Hour

var (
	// ErrEmptyDB is an error for missing database connection in the app configuration
	ErrEmptyDB = errors.New("No database connection was provided")
	// ErrEmptyClock is an error for missing clock in the app configuration
	ErrEmptyClock = errors.New("No clock was provided")
	// ErrEmptyWebURL is an error for missing WebURL content in the app configuration
	ErrEmptyWebURL = errors.New("No WebURL was provided")
)

// App is an application context
type App struct {
	DB         *gorm.DB
	Clock      clock.Clock
	AppEnv     string
	WebURL     string
	Port       string
	DBPath     string
	SessionTTL time.Duration
}

// Validate validates the app configuration
func (a *App) Validate() error {
	if a.WebURL == "" {
		return ErrEmptyWebURL
	}
	if a.Clock == nil {
		return ErrEmptyClock
	}
	if a.DB == nil {
		return ErrEmptyDB
	}

	return nil
}

func (a *App) sessionTTL() time.Duration {
	if a.SessionTTL <= 0 {
		return DefaultSessionTTL
	}

	return a.SessionTTL
}

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

package app

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is an error for a record that does not exist
	ErrNotFound = errors.New("not found")
	// ErrLoginInvalid is an error for a wrong username or password
	ErrLoginInvalid = errors.New("wrong login")
	// ErrUsernameRequired is an error for a staff member without a username
	ErrUsernameRequired = errors.New("username is required")
	// ErrPasswordTooShort is an error for a password shorter than 8 characters
	ErrPasswordTooShort = errors.New("password should be longer than 8 characters")
	// ErrDuplicateUsername is an error for a username that is already taken
	ErrDuplicateUsername = errors.New("duplicate username")
	// ErrInvalidRole is an error for an unknown staff role
	ErrInvalidRole = errors.New("invalid role")
	// ErrFullNameRequired is an error for a service user without a name
	ErrFullNameRequired = errors.New("full name is required")
	// ErrForbiddenServiceUser is an error for a service user the staff member cannot see
	ErrForbiddenServiceUser = errors.New("forbidden service user")
	// ErrNoteTextRequired is an error for a note without text
	ErrNoteTextRequired = errors.New("note text is required")
	// ErrVisitTypeTooLong is an error for a visit type over the stored length
	ErrVisitTypeTooLong = errors.New("visit type is too long")
	// ErrClientUIDTooLong is an error for a client uid over the stored length
	ErrClientUIDTooLong = errors.New("client uid is too long")
)

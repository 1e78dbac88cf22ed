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

// Package consts provides definitions of constants
package consts

var (
	// DirName is the name of the directory containing raynetcare files
	DirName = "raynetcare"
	// DBFileName is a filename for the local SQLite store
	DBFileName = "raynetcare.db"
	// ConfigFilename is the name of the config file
	ConfigFilename = "raynetcarerc"
	// TmpContentFileBase is the base for the filename for a temporary content
	TmpContentFileBase = "RAYNETCARE_TMPCONTENT"
	// TmpContentFileExt is the extension for the temporary content file
	TmpContentFileExt = "txt"

	// OutboxKey is the storage key holding the JSON array of queued notes
	OutboxKey = "raynetcare_outbox_notes"
	// ForceOfflineKey is the storage key of the forced offline flag
	ForceOfflineKey = "raynetcare_force_offline"
	// SessionKey is the storage key of the session key
	SessionKey = "session_token"
	// SessionKeyExpiry is the storage key of the session key expiry timestamp
	SessionKeyExpiry = "session_token_expiry"
	// LastSyncAt is the storage key of the timestamp of the last successful sync
	LastSyncAt = "last_sync_time"

	// CSRFCookieName is the name of the cookie carrying the anti-forgery token
	CSRFCookieName = "csrftoken"
	// CSRFHeaderName is the request header the server reads the token from
	CSRFHeaderName = "X-CSRFToken"

	// PushNotesPath is the path of the endpoint receiving queued notes
	PushNotesPath = "/sync/push-notes/"
	// CSRFPath is the path of the endpoint issuing the anti-forgery cookie
	CSRFPath = "/sync/csrf/"
	// HealthPath is the path probed to detect connectivity
	HealthPath = "/health"
)

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

package database

import (
	"database/sql"
	_ "embed"

	"github.com/pkg/errors"
)

//go:embed schema.sql
var schemaSQL string

// InitSchema creates the tables of the local store if they do not exist
func InitSchema(db *DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return errors.Wrap(err, "creating system table")
	}

	return nil
}

// Store is a string keyed, string valued store backed by the system table.
// It satisfies outbox.Storage.
type Store struct {
	db *DB
}

// NewStore returns a store reading and writing through the given connection
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Get returns the value stored under the key and whether it was present
func (s *Store) Get(key string) (string, bool, error) {
	var value string

	err := s.db.QueryRow("SELECT value FROM system WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	} else if err != nil {
		return "", false, errors.Wrapf(err, "getting %s", key)
	}

	return value, true, nil
}

// Set replaces the value stored under the key
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO system (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return errors.Wrapf(err, "setting %s", key)
	}

	return nil
}

// Remove deletes the key. Removing an absent key is not an error.
func (s *Store) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM system WHERE key = ?", key); err != nil {
		return errors.Wrapf(err, "removing %s", key)
	}

	return nil
}

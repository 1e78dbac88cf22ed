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
	"testing"

	"github.com/raynetcare/raynetcare/pkg/assert"
)

func TestStoreGetMissing(t *testing.T) {
	db := InitTestMemoryDB(t)
	s := NewStore(db)

	val, ok, err := s.Get("raynetcare_outbox_notes")
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, ok, false, "presence mismatch")
	assert.Equal(t, val, "", "value mismatch")
}

func TestStoreSet(t *testing.T) {
	db := InitTestMemoryDB(t)
	s := NewStore(db)

	if err := s.Set("raynetcare_force_offline", "1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("raynetcare_force_offline", "0"); err != nil {
		t.Fatal(err)
	}

	val, ok, err := s.Get("raynetcare_force_offline")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, ok, true, "presence mismatch")
	assert.Equal(t, val, "0", "value mismatch")

	var count int
	if err := db.QueryRow("SELECT count(*) FROM system WHERE key = ?", "raynetcare_force_offline").Scan(&count); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, count, 1, "row count mismatch")
}

func TestStoreRemove(t *testing.T) {
	db := InitTestMemoryDB(t)
	s := NewStore(db)

	MustExec(t, "preparing outbox", db, "INSERT INTO system (key, value) VALUES (?, ?)", "raynetcare_outbox_notes", "[]")

	if err := s.Remove("raynetcare_outbox_notes"); err != nil {
		t.Fatal(err)
	}
	// absent key
	if err := s.Remove("raynetcare_outbox_notes"); err != nil {
		t.Fatal(err)
	}

	_, ok, err := s.Get("raynetcare_outbox_notes")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, ok, false, "presence mismatch")
}

func TestStorePersistsAcrossConnections(t *testing.T) {
	db, dbPath := InitTestFileDB(t)
	if err := NewStore(db).Set("k", "v"); err != nil {
		t.Fatal(err)
	}

	other, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer other.Close()

	val, ok, err := NewStore(other).Get("k")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, ok, true, "presence mismatch")
	assert.Equal(t, val, "v", "value mismatch")
}

func TestStoreInTransaction(t *testing.T) {
	db := InitTestMemoryDB(t)

	tx, err := db.Begin()
	if err != nil {
		t.Fatal(err)
	}
	if err := NewStore(tx).Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatal(err)
	}

	_, ok, err := NewStore(db).Get("k")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, ok, false, "rolled back value is visible")
}

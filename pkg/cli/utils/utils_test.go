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

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/raynetcare/raynetcare/pkg/assert"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "present")
	if err := os.WriteFile(fpath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	ok, err := FileExists(fpath)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, ok, true, "present file")

	ok, err = FileExists(filepath.Join(dir, "absent"))
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, ok, false, "absent file")
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b")

	if err := EnsureDir(path); err != nil {
		t.Fatal(err)
	}
	// idempotent
	if err := EnsureDir(path); err != nil {
		t.Fatal(err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, fi.IsDir(), true, "not a directory")
}

func TestGenerateUUID(t *testing.T) {
	a, err := GenerateUUID()
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateUUID()
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, len(a), 36, "length mismatch")
	assert.NotEqual(t, a, b, "uuids collided")
}

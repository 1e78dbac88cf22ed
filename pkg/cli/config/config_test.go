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

package config

import (
	"os"
	"testing"
	"time"

	"github.com/raynetcare/raynetcare/pkg/assert"
	"github.com/raynetcare/raynetcare/pkg/cli/context"
)

func TestWriteRead(t *testing.T) {
	ctx := context.InitTestCtx(t)

	cf := Config{
		Editor:       "nano",
		APIEndpoint:  "https://care.example.org",
		SyncTimeout:  10 * time.Second,
		ProbeTimeout: time.Second,
	}
	if err := Write(ctx, cf); err != nil {
		t.Fatal(err)
	}

	got, err := Read(ctx)
	if err != nil {
		t.Fatal(err)
	}

	assert.DeepEqual(t, got, cf, "config mismatch")
}

func TestReadDefaults(t *testing.T) {
	ctx := context.InitTestCtx(t)

	content := "editor: vi\napiEndpoint: http://localhost:3001\n"
	if err := os.WriteFile(GetPath(ctx), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Read(ctx)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, got.Editor, "vi", "editor mismatch")
	assert.Equal(t, got.APIEndpoint, "http://localhost:3001", "endpoint mismatch")
	assert.Equal(t, got.SyncTimeout, DefaultSyncTimeout, "sync timeout mismatch")
	assert.Equal(t, got.ProbeTimeout, DefaultProbeTimeout, "probe timeout mismatch")
}

func TestReadMissing(t *testing.T) {
	ctx := context.InitTestCtx(t)

	_, err := Read(ctx)
	assert.NotEqual(t, err, nil, "should fail when the file is missing")
}

func TestReadMalformed(t *testing.T) {
	ctx := context.InitTestCtx(t)

	if err := os.WriteFile(GetPath(ctx), []byte("editor: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Read(ctx)
	assert.NotEqual(t, err, nil, "should fail on malformed yaml")
}

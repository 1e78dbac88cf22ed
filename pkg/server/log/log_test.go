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

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer

	prev := SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(prev)
		SetLevel(LevelInfo)
	})

	return &buf
}

func TestShouldLog(t *testing.T) {
	defer SetLevel(LevelInfo)

	testCases := []struct {
		currentLevel string
		logLevel     string
		expected     bool
	}{
		{LevelDebug, LevelDebug, true},
		{LevelDebug, LevelError, true},
		{LevelInfo, LevelDebug, false},
		{LevelInfo, LevelInfo, true},
		{LevelInfo, LevelWarn, true},
		{LevelWarn, LevelInfo, false},
		{LevelWarn, LevelWarn, true},
		{LevelError, LevelWarn, false},
		{LevelError, LevelError, true},
	}

	for _, tc := range testCases {
		SetLevel(tc.currentLevel)

		assert.Equal(t, shouldLog(tc.logLevel), tc.expected, tc.currentLevel+" -> "+tc.logLevel)
	}
}

func TestIsValidLevel(t *testing.T) {
	for _, l := range []string{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		assert.Equal(t, IsValidLevel(l), true, l+" should be valid")
	}
	assert.Equal(t, IsValidLevel("verbose"), false, "unknown level should be invalid")
}

func TestWithFields(t *testing.T) {
	buf := captureOutput(t)

	WithFields(Fields{
		"staff_id": 3,
		"saved":    2,
	}).Info("pushed notes")

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, got[fieldKeyLevel], LevelInfo, "level mismatch")
	assert.Equal(t, got[fieldKeyMessage], "pushed notes", "message mismatch")
	assert.Equal(t, got["staff_id"], float64(3), "staff_id mismatch")
	assert.Equal(t, got["saved"], float64(2), "saved mismatch")
}

func TestErrorWrap(t *testing.T) {
	buf := captureOutput(t)

	WithFields(Fields{"path": "/sync/push-notes/"}).ErrorWrap(errors.New("disk full"), "saving note")

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, got[fieldKeyLevel], LevelError, "level mismatch")
	assert.Equal(t, got[fieldKeyMessage], "saving note", "message mismatch")
	assert.Equal(t, got[fieldKeyError], "disk full", "error mismatch")
	assert.Equal(t, got["path"], "/sync/push-notes/", "path mismatch")
}

func TestLevelFiltering(t *testing.T) {
	buf := captureOutput(t)
	SetLevel(LevelWarn)

	Info("hidden")
	Warn("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, len(lines), 1, "line count mismatch")
	assert.Equal(t, strings.Contains(lines[0], "shown"), true, "warn line missing")
}

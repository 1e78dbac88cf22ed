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

package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/assert"
	"github.com/raynetcare/raynetcare/pkg/cli/context"
)

func TestGetTmpContentPath(t *testing.T) {
	t.Run("no collision", func(t *testing.T) {
		ctx := context.InitTestCtx(t)

		res, err := GetTmpContentPath(ctx)
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		expected := filepath.Join(ctx.Paths.Cache, "RAYNETCARE_TMPCONTENT_0.txt")
		assert.Equal(t, res, expected, "filename did not match")
	})

	t.Run("existing sessions", func(t *testing.T) {
		ctx := context.InitTestCtx(t)

		for _, name := range []string{"RAYNETCARE_TMPCONTENT_0.txt", "RAYNETCARE_TMPCONTENT_1.txt"} {
			if _, err := os.Create(filepath.Join(ctx.Paths.Cache, name)); err != nil {
				t.Fatal(errors.Wrap(err, "preparing the conflicting file"))
			}
		}

		res, err := GetTmpContentPath(ctx)
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		expected := filepath.Join(ctx.Paths.Cache, "RAYNETCARE_TMPCONTENT_2.txt")
		assert.Equal(t, res, expected, "filename did not match")
	})
}

func TestGetEditorInput(t *testing.T) {
	ctx := context.InitTestCtx(t)
	// "true" exits immediately without touching the file
	ctx.Editor = "true"

	fpath := filepath.Join(ctx.Paths.Cache, "RAYNETCARE_TMPCONTENT_0.txt")
	if err := os.WriteFile(fpath, []byte("  Ate lunch\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := GetEditorInput(ctx, fpath)
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	assert.Equal(t, got, "Ate lunch", "content mismatch")

	_, err = os.Stat(fpath)
	assert.Equal(t, os.IsNotExist(err), true, "temporary file should be removed")
}

func TestGetEditorInput_NoEditor(t *testing.T) {
	ctx := context.InitTestCtx(t)
	ctx.Editor = ""

	_, err := GetEditorInput(ctx, filepath.Join(ctx.Paths.Cache, "x.txt"))
	assert.NotEqual(t, err, nil, "should fail without an editor")
}

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

package ls

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/cli/consts"
	"github.com/raynetcare/raynetcare/pkg/cli/context"
	"github.com/raynetcare/raynetcare/pkg/cli/infra"
	"github.com/raynetcare/raynetcare/pkg/cli/log"
	"github.com/raynetcare/raynetcare/pkg/cli/outbox"
	"github.com/raynetcare/raynetcare/pkg/cli/output"
	"github.com/spf13/cobra"
)

var example = `
 * List offline notes waiting to be synced
 raynetcare ls

 * Show a single queued note in full
 raynetcare ls 2`

// NewCmd returns a new ls command
func NewCmd(ctx context.RaynetCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls [index]",
		Aliases: []string{"l", "list"},
		Short:   "List offline notes waiting to be synced",
		Example: example,
		Args:    cobra.MaximumNArgs(1),
		RunE:    newRun(ctx),
	}

	return cmd
}

// getLastSyncAt returns the time of the last successful sync, or the zero
// time if there has been none
func getLastSyncAt(ctx context.RaynetCtx) (time.Time, error) {
	val, ok, err := ctx.Store().Get(consts.LastSyncAt)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "querying last sync time")
	}
	if !ok {
		return time.Time{}, nil
	}

	ts, err := strconv.ParseInt(val, 10, 64)
	if err != nil || ts == 0 {
		return time.Time{}, nil
	}

	return time.Unix(ts, 0), nil
}

func newRun(ctx context.RaynetCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		items := outbox.New(ctx.Store()).Read()

		if len(args) == 1 {
			idx, err := strconv.Atoi(args[0])
			if err != nil || idx < 1 || idx > len(items) {
				return errors.Errorf("no queued note at index %s", args[0])
			}

			output.NoteInfo(items[idx-1])
			return nil
		}

		output.OutboxList(items)
		output.OutboxSummary(len(items))

		lastSyncAt, err := getLastSyncAt(ctx)
		if err != nil {
			return err
		}
		if !lastSyncAt.IsZero() {
			log.Plainf("%s\n", log.ColorGray.Sprintf("last synced %s", lastSyncAt.Format("Jan 2, 2006 3:04pm (MST)")))
		}

		return nil
	}
}

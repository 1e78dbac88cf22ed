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

package add

import (
	"strings"

	"github.com/pkg/errors"
	syncCmd "github.com/raynetcare/raynetcare/pkg/cli/cmd/sync"
	"github.com/raynetcare/raynetcare/pkg/cli/context"
	"github.com/raynetcare/raynetcare/pkg/cli/infra"
	"github.com/raynetcare/raynetcare/pkg/cli/log"
	"github.com/raynetcare/raynetcare/pkg/cli/outbox"
	"github.com/raynetcare/raynetcare/pkg/cli/output"
	"github.com/raynetcare/raynetcare/pkg/cli/ui"
	"github.com/raynetcare/raynetcare/pkg/cli/validate"
	"github.com/spf13/cobra"
)

var contentFlag string
var serviceUserFlag int
var visitTypeFlag string
var concernFlag bool
var pushFlag bool

var example = `
 * Open an editor to write the note
 raynetcare add --service-user 7 --visit-type "Home visit"

 * Skip the editor by providing the text directly
 raynetcare add --service-user 7 -c "Ate a full lunch, in good spirits"

 * Flag a concern and push right away if the server is reachable
 raynetcare add --service-user 7 --concern --push -c "Bruise on left arm"

 * Send stdin content to a note
 echo "Declined evening medication" | raynetcare add --service-user 7`

// NewCmd returns a new add command
func NewCmd(ctx context.RaynetCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Queue a new communication note",
		Aliases: []string{"a", "n", "new"},
		Example: example,
		Args:    cobra.NoArgs,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVarP(&contentFlag, "content", "c", "", "The text of the note")
	f.IntVarP(&serviceUserFlag, "service-user", "u", 0, "The id of the service user the note is about")
	f.StringVarP(&visitTypeFlag, "visit-type", "v", "", "The kind of visit, such as \"Home visit\"")
	f.BoolVar(&concernFlag, "concern", false, "Flag the note as raising a concern")
	f.BoolVar(&pushFlag, "push", false, "Sync immediately when the server is reachable")

	return cmd
}

func getContent(ctx context.RaynetCtx) (string, error) {
	if contentFlag != "" {
		return contentFlag, nil
	}

	if ui.IsPiped() {
		c, err := ui.ReadStdInput()
		if err != nil {
			return "", errors.Wrap(err, "Failed to get piped input")
		}
		return c, nil
	}

	fpath, err := ui.GetTmpContentPath(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting temporarily content file path")
	}

	c, err := ui.GetEditorInput(ctx, fpath)
	if err != nil {
		return "", errors.Wrap(err, "Failed to get editor input")
	}

	return c, nil
}

// Queue validates a note and appends it to the outbox
func Queue(ctx context.RaynetCtx, serviceUserID int, visitType, text string, concern bool) (outbox.Note, error) {
	if err := validate.Note(serviceUserID, visitType, text); err != nil {
		return outbox.Note{}, errors.Wrap(err, "invalid note")
	}

	note := outbox.NewNote(
		outbox.UID(ctx.Clock),
		serviceUserID,
		strings.TrimSpace(visitType),
		strings.TrimSpace(text),
		concern,
		ctx.Clock.Now().UnixMilli(),
	)

	if err := outbox.New(ctx.Store()).Append(note); err != nil {
		return outbox.Note{}, errors.Wrap(err, "saving the note to the outbox")
	}

	return note, nil
}

func newRun(ctx context.RaynetCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate.ServiceUserID(serviceUserFlag); err != nil {
			return err
		}

		content, err := getContent(ctx)
		if err != nil {
			return errors.Wrap(err, "getting content")
		}

		note, err := Queue(ctx, serviceUserFlag, visitTypeFlag, content, concernFlag)
		if err != nil {
			return err
		}

		log.Successf("queued note for service user %d\n", note.ServiceUserID)
		output.NoteInfo(note)

		if !pushFlag {
			output.OutboxSummary(outbox.New(ctx.Store()).Count())
			return nil
		}

		result, err := syncCmd.Do(cmd.Context(), ctx)
		if err != nil {
			return errors.Wrap(err, "syncing")
		}
		if result.Kind == outbox.ResultUnreachable {
			log.Info("the note will be pushed on the next sync\n")
		}

		return nil
	}
}

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

package sync

import (
	gocontext "context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/cli/client"
	"github.com/raynetcare/raynetcare/pkg/cli/consts"
	"github.com/raynetcare/raynetcare/pkg/cli/context"
	"github.com/raynetcare/raynetcare/pkg/cli/infra"
	"github.com/raynetcare/raynetcare/pkg/cli/log"
	"github.com/raynetcare/raynetcare/pkg/cli/outbox"
	"github.com/raynetcare/raynetcare/pkg/cli/output"
	"github.com/spf13/cobra"
)

var example = `
  raynetcare sync`

var apiEndpointFlag string

// NewCmd returns a new sync command
func NewCmd(ctx context.RaynetCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sync",
		Aliases: []string{"s"},
		Short:   "Push offline notes to the server",
		Example: example,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVar(&apiEndpointFlag, "apiEndpoint", "", "API endpoint to connect to (defaults to value in config)")

	return cmd
}

// reporter prints sync outcomes on the terminal
type reporter struct {
	outbox *outbox.Outbox
}

func (r reporter) Alert(msg string) {
	log.Alert(msg)
}

func (r reporter) Reload() {
	output.OutboxSummary(r.outbox.Count())
}

// Do pushes the outbox to the server if the client is actually online.
// Being offline is reported the same way as an unreachable server. An empty
// outbox is reported without touching the network.
func Do(c gocontext.Context, ctx context.RaynetCtx) (outbox.Result, error) {
	store := ctx.Store()
	ob := outbox.New(store)
	r := reporter{outbox: ob}

	if ob.Count() == 0 {
		r.Alert(outbox.MsgNothingToSync)
		return outbox.Result{Kind: outbox.ResultNothing}, nil
	}

	probe := client.Probe{
		Endpoint:   ctx.APIEndpoint,
		HTTPClient: ctx.HTTPClient,
		Timeout:    ctx.ProbeTimeout,
	}
	if !outbox.IsActuallyOnline(c, probe, store) {
		r.Alert(outbox.MsgUnreachable)
		return outbox.Result{Kind: outbox.ResultUnreachable}, nil
	}

	if ctx.SyncTimeout > 0 {
		var cancel gocontext.CancelFunc
		c, cancel = gocontext.WithTimeout(c, ctx.SyncTimeout)
		defer cancel()
	}

	cl := client.New(client.Params{
		Endpoint:   ctx.APIEndpoint,
		Version:    ctx.Version,
		SessionKey: ctx.SessionKey,
		HTTPClient: ctx.HTTPClient,
	})

	result := outbox.NewSyncer(ob, cl, r).Sync(c)
	if result.Kind != outbox.ResultSynced {
		return result, nil
	}
	if result.Err != nil {
		return result, result.Err
	}

	lastSyncAt := strconv.FormatInt(ctx.Clock.Now().Unix(), 10)
	if err := store.Set(consts.LastSyncAt, lastSyncAt); err != nil {
		return result, errors.Wrap(err, "updating last sync time")
	}

	return result, nil
}

func newRun(ctx context.RaynetCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if apiEndpointFlag != "" {
			ctx.APIEndpoint = apiEndpointFlag
		}

		result, err := Do(cmd.Context(), ctx)
		if err != nil {
			return errors.Wrap(err, "syncing")
		}

		for _, msg := range result.Errors {
			log.Warnf("%s\n", msg)
		}
		if result.Err != nil {
			log.Debug("sync error: %s\n", result.Err.Error())
		}

		return nil
	}
}

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

package offline

import (
	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/cli/client"
	"github.com/raynetcare/raynetcare/pkg/cli/context"
	"github.com/raynetcare/raynetcare/pkg/cli/infra"
	"github.com/raynetcare/raynetcare/pkg/cli/log"
	"github.com/raynetcare/raynetcare/pkg/cli/outbox"
	"github.com/spf13/cobra"
)

var example = `
 * Work offline even when the network is up
 raynetcare offline on

 * Go back to following the network
 raynetcare offline off

 * Show whether the client is actually online
 raynetcare offline status`

// NewCmd returns a new offline command
func NewCmd(ctx context.RaynetCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "offline [on|off|status]",
		Short:     "Force offline mode or show the connection status",
		Example:   example,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off", "status"},
		RunE:      newRun(ctx),
	}

	return cmd
}

func newRun(ctx context.RaynetCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		store := ctx.Store()

		action := "status"
		if len(args) == 1 {
			action = args[0]
		}

		switch action {
		case "on", "off":
			if err := outbox.SetForcedOffline(store, action == "on"); err != nil {
				return errors.Wrap(err, "saving the offline flag")
			}
			log.Successf("forced offline mode %s\n", action)
		}

		probe := client.Probe{Endpoint: ctx.APIEndpoint, HTTPClient: ctx.HTTPClient, Timeout: ctx.ProbeTimeout}

		if outbox.IsForcedOffline(store) {
			log.Info("forced offline: yes\n")
		} else {
			log.Info("forced offline: no\n")
		}

		if outbox.IsActuallyOnline(cmd.Context(), probe, store) {
			log.Info("status: online\n")
		} else {
			log.Info("status: offline\n")
		}

		return nil
	}
}

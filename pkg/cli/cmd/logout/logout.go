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

package logout

import (
	gocontext "context"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/cli/client"
	"github.com/raynetcare/raynetcare/pkg/cli/consts"
	"github.com/raynetcare/raynetcare/pkg/cli/context"
	"github.com/raynetcare/raynetcare/pkg/cli/database"
	"github.com/raynetcare/raynetcare/pkg/cli/infra"
	"github.com/raynetcare/raynetcare/pkg/cli/log"
	"github.com/raynetcare/raynetcare/pkg/cli/outbox"
	"github.com/raynetcare/raynetcare/pkg/cli/ui"
	"github.com/spf13/cobra"
)

// ErrNotLoggedIn is an error for logging out when not logged in
var ErrNotLoggedIn = errors.New("not logged in")

var example = `
  raynetcare logout`

var apiEndpointFlag string
var yesFlag bool

// NewCmd returns a new logout command
func NewCmd(ctx context.RaynetCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "logout",
		Short:   "Logout from the server",
		Example: example,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVar(&apiEndpointFlag, "apiEndpoint", "", "API endpoint to connect to (defaults to value in config)")
	f.BoolVarP(&yesFlag, "yes", "y", false, "log out without confirming when offline notes are waiting")

	return cmd
}

// Do performs logout. Queued notes stay in the outbox.
func Do(c gocontext.Context, ctx context.RaynetCtx) error {
	tx, err := ctx.DB.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning a transaction")
	}

	store := database.NewStore(tx)

	key, ok, err := store.Get(consts.SessionKey)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "getting session key")
	}
	if !ok {
		tx.Rollback()
		return ErrNotLoggedIn
	}

	cl := client.New(client.Params{
		Endpoint:   ctx.APIEndpoint,
		Version:    ctx.Version,
		SessionKey: key,
		HTTPClient: ctx.HTTPClient,
	})
	if err := cl.Signout(c); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "requesting logout")
	}

	if err := store.Remove(consts.SessionKey); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting session key")
	}
	if err := store.Remove(consts.SessionKeyExpiry); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting session key expiry")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing a transaction")
	}

	return nil
}

func confirm(ctx context.RaynetCtx) (bool, error) {
	count := outbox.New(ctx.Store()).Count()
	if count == 0 || yesFlag {
		return true, nil
	}

	log.Warnf("%d offline note(s) have not been synced yet\n", count)

	return ui.Confirm("log out anyway?", false)
}

func newRun(ctx context.RaynetCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if apiEndpointFlag != "" {
			ctx.APIEndpoint = apiEndpointFlag
		}

		ok, err := confirm(ctx)
		if err != nil {
			return errors.Wrap(err, "confirming")
		}
		if !ok {
			log.Info("aborted\n")
			return nil
		}

		err = Do(cmd.Context(), ctx)
		if err == ErrNotLoggedIn {
			log.Error("not logged in\n")
			return nil
		} else if err != nil {
			return errors.Wrap(err, "logging out")
		}

		log.Success("logged out\n")

		return nil
	}
}

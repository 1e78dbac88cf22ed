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

package login

import (
	gocontext "context"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/cli/client"
	"github.com/raynetcare/raynetcare/pkg/cli/consts"
	"github.com/raynetcare/raynetcare/pkg/cli/context"
	"github.com/raynetcare/raynetcare/pkg/cli/database"
	"github.com/raynetcare/raynetcare/pkg/cli/infra"
	"github.com/raynetcare/raynetcare/pkg/cli/log"
	"github.com/raynetcare/raynetcare/pkg/cli/ui"
	"github.com/spf13/cobra"
)

var example = `
  raynetcare login`

var usernameFlag, passwordFlag, apiEndpointFlag string

// NewCmd returns a new login command
func NewCmd(ctx context.RaynetCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Sign in to the server",
		Example: example,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVarP(&usernameFlag, "username", "u", "", "username")
	f.StringVarP(&passwordFlag, "password", "p", "", "password")
	f.StringVar(&apiEndpointFlag, "apiEndpoint", "", "API endpoint to connect to (defaults to value in config)")

	return cmd
}

// Do signs in and saves the session key in the local database
func Do(c gocontext.Context, ctx context.RaynetCtx, username, password string) error {
	cl := client.New(client.Params{
		Endpoint:   ctx.APIEndpoint,
		Version:    ctx.Version,
		HTTPClient: ctx.HTTPClient,
	})

	signinResp, err := cl.Signin(c, username, password)
	if err != nil {
		return errors.Wrap(err, "requesting session")
	}

	tx, err := ctx.DB.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning a transaction")
	}

	store := database.NewStore(tx)
	if err := store.Set(consts.SessionKey, signinResp.Key); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "saving session key")
	}
	if err := store.Set(consts.SessionKeyExpiry, strconv.FormatInt(signinResp.ExpiresAt, 10)); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "saving session key expiry")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing a transaction")
	}

	return nil
}

func getUsername() (string, error) {
	if usernameFlag != "" {
		return usernameFlag, nil
	}

	var username string
	if err := ui.PromptInput("username", &username); err != nil {
		return "", errors.Wrap(err, "getting username input")
	}

	return username, nil
}

func getPassword() (string, error) {
	if passwordFlag != "" {
		return passwordFlag, nil
	}

	var password string
	if err := ui.PromptPassword("password", &password); err != nil {
		return "", errors.Wrap(err, "getting password input")
	}

	return password, nil
}

// getServerDisplayURL returns the scheme and host of the endpoint
func getServerDisplayURL(apiEndpoint string) string {
	u, err := url.Parse(apiEndpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}

	return u.Scheme + "://" + u.Host
}

func newRun(ctx context.RaynetCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if apiEndpointFlag != "" {
			ctx.APIEndpoint = apiEndpointFlag
		}

		if displayURL := getServerDisplayURL(ctx.APIEndpoint); displayURL != "" {
			log.Infof("signing in to %s\n", displayURL)
		}

		username, err := getUsername()
		if err != nil {
			return err
		}
		if username == "" {
			return errors.New("Empty username")
		}

		password, err := getPassword()
		if err != nil {
			return err
		}
		if password == "" {
			return errors.New("Empty password")
		}

		err = Do(cmd.Context(), ctx, username, password)
		if errors.Cause(err) == client.ErrInvalidLogin {
			log.Error("wrong login\n")
			return nil
		} else if err != nil {
			return errors.Wrap(err, "logging in")
		}

		log.Success("logged in\n")

		return nil
	}
}

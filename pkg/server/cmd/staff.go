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

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/prompt"
	"github.com/raynetcare/raynetcare/pkg/server/app"
	"github.com/raynetcare/raynetcare/pkg/server/database"
	"github.com/raynetcare/raynetcare/pkg/server/log"
)

// confirm prompts for user input to confirm a choice
func confirm(r io.Reader, question string, optimistic bool) (bool, error) {
	message := prompt.FormatQuestion(question, optimistic)
	fmt.Print(message + " ")

	confirmed, err := prompt.ReadYesNo(r, optimistic)
	if err != nil {
		return false, errors.Wrap(err, "reading stdin")
	}

	return confirmed, nil
}

// mustFindStaff finds the staff member or exits
func mustFindStaff(a *app.App, username string) *database.User {
	user, err := a.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			fail("staff member %s not found", username)
		}
		log.ErrorWrap(err, "finding staff member")
		os.Exit(1)
	}

	return user
}

func staffCreateCmd(args []string) {
	fs := setupFlagSet("create", "raynetcare-server staff create")

	username := fs.String("username", "", "Username (required)")
	password := fs.String("password", "", "Password (required)")
	role := fs.String("role", database.RoleStaff, "Role: ADMIN, MANAGER, or STAFF")
	dbPath := fs.String("dbPath", "", dbPathUsage)

	fs.Parse(args)

	requireString(fs, *username, "username")
	requireString(fs, *password, "password")

	a, cleanup := setupAppWithDB(fs, *dbPath)
	defer cleanup()

	user, err := a.CreateStaff(*username, *password, *role)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrDuplicateUsername),
			errors.Is(err, app.ErrInvalidRole),
			errors.Is(err, app.ErrPasswordTooShort):
			fail("%s", err)
		default:
			log.ErrorWrap(err, "creating staff member")
			os.Exit(1)
		}
	}

	fmt.Printf("Staff member created successfully\n")
	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Role: %s\n", user.Role)
}

func staffRemoveCmd(args []string, stdin io.Reader) {
	fs := setupFlagSet("remove", "raynetcare-server staff remove")

	username := fs.String("username", "", "Username (required)")
	dbPath := fs.String("dbPath", "", dbPathUsage)

	fs.Parse(args)

	requireString(fs, *username, "username")

	a, cleanup := setupAppWithDB(fs, *dbPath)
	defer cleanup()

	mustFindStaff(a, *username)

	ok, err := confirm(stdin, fmt.Sprintf("Remove staff member %s?", *username), false)
	if err != nil {
		log.ErrorWrap(err, "getting confirmation")
		os.Exit(1)
	}
	if !ok {
		fmt.Println("Aborted by user")
		return
	}

	if err := a.RemoveUser(*username); err != nil {
		if errors.Is(err, app.ErrUserHasExistingNotes) {
			fail("%s", err)
		}
		log.ErrorWrap(err, "removing staff member")
		os.Exit(1)
	}

	fmt.Printf("Staff member removed successfully\n")
	fmt.Printf("Username: %s\n", *username)
}

func staffResetPasswordCmd(args []string) {
	fs := setupFlagSet("reset-password", "raynetcare-server staff reset-password")

	username := fs.String("username", "", "Username (required)")
	password := fs.String("password", "", "New password (required)")
	dbPath := fs.String("dbPath", "", dbPathUsage)

	fs.Parse(args)

	requireString(fs, *username, "username")
	requireString(fs, *password, "password")

	a, cleanup := setupAppWithDB(fs, *dbPath)
	defer cleanup()

	user := mustFindStaff(a, *username)

	if err := app.UpdateUserPassword(a.DB, user, *password); err != nil {
		if errors.Is(err, app.ErrPasswordTooShort) {
			fail("%s", err)
		}
		log.ErrorWrap(err, "updating password")
		os.Exit(1)
	}

	fmt.Printf("Password reset successfully\n")
	fmt.Printf("Username: %s\n", *username)
}

func staffAssignCmd(args []string) {
	fs := setupFlagSet("assign", "raynetcare-server staff assign")

	username := fs.String("username", "", "Username (required)")
	serviceUserID := fs.Int("serviceUserID", 0, "Service user id (required)")
	remove := fs.Bool("remove", false, "Remove the assignment instead of adding it")
	dbPath := fs.String("dbPath", "", dbPathUsage)

	fs.Parse(args)

	requireString(fs, *username, "username")
	requirePositive(fs, *serviceUserID, "serviceUserID")

	a, cleanup := setupAppWithDB(fs, *dbPath)
	defer cleanup()

	user := mustFindStaff(a, *username)

	if *remove {
		if err := a.UnassignServiceUser(*user, *serviceUserID); err != nil {
			log.ErrorWrap(err, "removing assignment")
			os.Exit(1)
		}

		fmt.Printf("Service user %d unassigned from %s\n", *serviceUserID, *username)
		return
	}

	if err := a.AssignServiceUser(*user, *serviceUserID); err != nil {
		if errors.Is(err, app.ErrNotFound) {
			fail("service user %d not found", *serviceUserID)
		}
		log.ErrorWrap(err, "assigning service user")
		os.Exit(1)
	}

	fmt.Printf("Service user %d assigned to %s\n", *serviceUserID, *username)
}

const staffCommands = `Available commands:
  create: Create a staff member
  remove: Remove a staff member (only if they have not written notes)
  reset-password: Reset a staff member's password
  assign: Assign a service user to a staff member`

func staffCmd(args []string) {
	if len(args) < 1 {
		fmt.Println(`Usage:
  raynetcare-server staff [command]

` + staffCommands)
		os.Exit(1)
	}

	subcommand := args[0]
	subArgs := args[1:]

	switch subcommand {
	case "create":
		staffCreateCmd(subArgs)
	case "remove":
		staffRemoveCmd(subArgs, os.Stdin)
	case "reset-password":
		staffResetPasswordCmd(subArgs)
	case "assign":
		staffAssignCmd(subArgs)
	default:
		fmt.Printf("Unknown subcommand: %s\n\n", subcommand)
		fmt.Println(staffCommands)
		os.Exit(1)
	}
}

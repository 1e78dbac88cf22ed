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
	"os"
	"time"

	"github.com/raynetcare/raynetcare/pkg/server/app"
	"github.com/raynetcare/raynetcare/pkg/server/log"
)

const dateOfBirthLayout = "2006-01-02"

func parseDateOfBirth(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(dateOfBirthLayout, s)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func serviceUserCreateCmd(args []string) {
	fs := setupFlagSet("create", "raynetcare-server service-user create")

	fullName := fs.String("fullName", "", "Full name (required)")
	dateOfBirth := fs.String("dateOfBirth", "", "Date of birth as YYYY-MM-DD")
	address := fs.String("address", "", "Address")
	keyNotes := fs.String("keyNotes", "", "Key notes for visiting staff")
	dbPath := fs.String("dbPath", "", dbPathUsage)

	fs.Parse(args)

	requireString(fs, *fullName, "fullName")

	dob, err := parseDateOfBirth(*dateOfBirth)
	if err != nil {
		fmt.Printf("Error: dateOfBirth must be YYYY-MM-DD\n\n")
		fs.Usage()
		os.Exit(1)
	}

	a, cleanup := setupAppWithDB(fs, *dbPath)
	defer cleanup()

	su, err := a.CreateServiceUser(app.ServiceUserParams{
		FullName:    *fullName,
		DateOfBirth: dob,
		Address:     *address,
		KeyNotes:    *keyNotes,
	})
	if err != nil {
		log.ErrorWrap(err, "creating service user")
		os.Exit(1)
	}

	fmt.Printf("Service user created successfully\n")
	fmt.Printf("ID: %d\n", su.ID)
	fmt.Printf("Full name: %s\n", su.FullName)
}

func serviceUserCmd(args []string) {
	usage := `Usage:
  raynetcare-server service-user [command]

Available commands:
  create: Create a service user`

	if len(args) < 1 {
		fmt.Println(usage)
		os.Exit(1)
	}

	switch args[0] {
	case "create":
		serviceUserCreateCmd(args[1:])
	default:
		fmt.Printf("Unknown subcommand: %s\n\n", args[0])
		fmt.Println(usage)
		os.Exit(1)
	}
}

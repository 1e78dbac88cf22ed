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

// Package output provides functions to print informations on the terminal
// in a consistent manner
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/raynetcare/raynetcare/pkg/cli/log"
	"github.com/raynetcare/raynetcare/pkg/cli/outbox"
)

const timeLayout = "Jan 2, 2006 3:04pm (MST)"

// excerptLength is the number of characters of note text shown in a listing
const excerptLength = 40

func excerpt(text string) string {
	line := strings.SplitN(text, "\n", 2)[0]
	runes := []rune(line)
	if len(runes) > excerptLength {
		return string(runes[:excerptLength]) + "..."
	}
	if line != text {
		return line + "..."
	}

	return line
}

// OutboxSummary prints the number of notes waiting to be synced
func OutboxSummary(count int) {
	if count == 0 {
		log.Info("no offline notes waiting to sync\n")
		return
	}

	log.Infof("%d offline note(s) waiting to sync\n", count)
}

// OutboxList prints one line per queued note, oldest first
func OutboxList(notes []outbox.Note) {
	for i, n := range notes {
		concern := ""
		if n.ConcernFlag {
			concern = log.ColorRed.Sprint(" [concern]")
		}

		log.Plainf("(%d) %s %s %s%s %s\n",
			i+1,
			log.ColorGray.Sprint(n.ClientUID),
			log.ColorYellow.Sprintf("service user %d", n.ServiceUserID),
			visitType(n.VisitType),
			concern,
			log.ColorGray.Sprint(excerpt(n.NoteText)),
		)
	}
}

func visitType(v string) string {
	if v == "" {
		return "-"
	}

	return v
}

// NoteInfo prints the details of a queued note
func NoteInfo(n outbox.Note) {
	log.Infof("client uid: %s\n", n.ClientUID)
	log.Infof("service user: %d\n", n.ServiceUserID)
	log.Infof("visit type: %s\n", visitType(n.VisitType))
	log.Infof("concern: %t\n", n.ConcernFlag)
	log.Infof("created at: %s\n", time.UnixMilli(n.CreatedAt).Format(timeLayout))

	fmt.Fprintf(log.Output, "\n------------------------content------------------------\n")
	fmt.Fprintf(log.Output, "%s", n.NoteText)
	fmt.Fprintf(log.Output, "\n-------------------------------------------------------\n")
}

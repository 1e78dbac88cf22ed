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

package outbox

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/cli/log"
)

// Messages reported to the user at the end of a sync
const (
	MsgNothingToSync = "No offline notes to sync."
	MsgRejected      = "Some notes failed to sync. Please try again."
	MsgUnreachable   = "Could not sync. Are you online?"
	MsgInProgress    = "A sync is already in progress."
	msgSynced        = "Synced %d note(s)."
)

// ResultKind tells which way a sync ended
type ResultKind int

const (
	// ResultNothing means the outbox was empty and no request was made
	ResultNothing ResultKind = iota
	// ResultSynced means the server saved the batch and the outbox was cleared
	ResultSynced
	// ResultRejected means the server reported errors; the outbox is kept
	ResultRejected
	// ResultUnreachable means the request could not be completed; the outbox is kept
	ResultUnreachable
	// ResultInProgress means another sync was running; nothing was sent
	ResultInProgress
)

func (k ResultKind) String() string {
	switch k {
	case ResultNothing:
		return "nothing"
	case ResultSynced:
		return "synced"
	case ResultRejected:
		return "rejected"
	case ResultUnreachable:
		return "unreachable"
	case ResultInProgress:
		return "in progress"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(k))
	}
}

// Result is the outcome of a sync
type Result struct {
	Kind ResultKind
	// Saved is the number of notes the server reported as saved
	Saved int
	// Errors are the per-note errors reported by the server
	Errors []string
	// Err is the transport failure for ResultUnreachable, or a failure to
	// clear the outbox after ResultSynced
	Err error
}

// PushResponse is the server's answer to a batch of notes
type PushResponse struct {
	Saved  int
	Errors []string
}

// Pusher sends a batch of notes to the server in one request
type Pusher interface {
	PushNotes(ctx context.Context, notes []Note) (PushResponse, error)
}

// Reporter carries the user facing side effects of a sync
type Reporter interface {
	// Alert shows a message to the user
	Alert(msg string)
	// Reload refreshes whatever view of the outbox the user is looking at
	Reload()
}

// Syncer drains the outbox into the server
type Syncer struct {
	outbox   *Outbox
	pusher   Pusher
	reporter Reporter

	// inFlight guards against a second sync submitting the same batch
	inFlight sync.Mutex
}

// NewSyncer returns a Syncer
func NewSyncer(o *Outbox, p Pusher, r Reporter) *Syncer {
	return &Syncer{
		outbox:   o,
		pusher:   p,
		reporter: r,
	}
}

// Sync pushes every queued note in one request. The outbox is cleared only
// when the server reports no errors. Failures are reported to the user and
// returned in the Result; Sync itself never fails.
func (s *Syncer) Sync(ctx context.Context) Result {
	if !s.inFlight.TryLock() {
		s.reporter.Alert(MsgInProgress)
		return Result{Kind: ResultInProgress}
	}
	defer s.inFlight.Unlock()

	items := s.outbox.Read()
	if len(items) == 0 {
		s.reporter.Alert(MsgNothingToSync)
		return Result{Kind: ResultNothing}
	}

	log.Debug("pushing %d notes\n", len(items))

	resp, err := s.pusher.PushNotes(ctx, items)
	if err != nil {
		log.Debug("push failed: %s\n", err.Error())
		s.reporter.Alert(MsgUnreachable)
		return Result{Kind: ResultUnreachable, Err: err}
	}

	if len(resp.Errors) > 0 {
		s.reporter.Alert(MsgRejected)
		return Result{Kind: ResultRejected, Saved: resp.Saved, Errors: resp.Errors}
	}

	ret := Result{Kind: ResultSynced, Saved: resp.Saved}
	if err := s.outbox.Clear(); err != nil {
		ret.Err = errors.Wrap(err, "clearing the outbox after a successful sync")
	}

	s.reporter.Alert(fmt.Sprintf(msgSynced, resp.Saved))
	s.reporter.Reload()

	return ret
}

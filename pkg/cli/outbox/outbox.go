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
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/cli/consts"
	"github.com/raynetcare/raynetcare/pkg/cli/log"
)

// Outbox is the ordered queue of notes waiting to be pushed. It is persisted
// as a JSON array under consts.OutboxKey. Insertion order is the
// transmission order.
//
// Every operation is a read-modify-write against the store and assumes a
// single caller at a time.
type Outbox struct {
	store Storage
}

// New returns an outbox persisted in the given store
func New(store Storage) *Outbox {
	return &Outbox{store: store}
}

// Read returns the queued notes. An absent, unreadable or malformed value
// reads as an empty queue.
func (o *Outbox) Read() []Note {
	raw, ok, err := o.store.Get(consts.OutboxKey)
	if err != nil {
		log.Debug("reading outbox: %s\n", err.Error())
		return []Note{}
	}
	if !ok || raw == "" {
		return []Note{}
	}

	var items []Note
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Debug("unmarshalling outbox: %s\n", err.Error())
		return []Note{}
	}
	if items == nil {
		return []Note{}
	}

	return items
}

// Write replaces the queue with the given notes
func (o *Outbox) Write(items []Note) error {
	if items == nil {
		items = []Note{}
	}

	b, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "marshalling notes")
	}

	if err := o.store.Set(consts.OutboxKey, string(b)); err != nil {
		return errors.Wrap(err, "persisting outbox")
	}

	return nil
}

// Append adds the note at the end of the queue
func (o *Outbox) Append(note Note) error {
	items := o.Read()
	items = append(items, note)

	if err := o.Write(items); err != nil {
		return errors.Wrapf(err, "appending note %s", note.ClientUID)
	}

	return nil
}

// Count returns the number of queued notes
func (o *Outbox) Count() int {
	return len(o.Read())
}

// Clear removes the queue from the store altogether
func (o *Outbox) Clear() error {
	if err := o.store.Remove(consts.OutboxKey); err != nil {
		return errors.Wrap(err, "clearing outbox")
	}

	return nil
}

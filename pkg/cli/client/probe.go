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

package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/raynetcare/raynetcare/pkg/cli/consts"
	"github.com/raynetcare/raynetcare/pkg/cli/log"
)

// DefaultProbeTimeout bounds a connectivity probe when none is configured
const DefaultProbeTimeout = 3 * time.Second

// Probe is the connectivity signal of the command line. The network counts
// as up when the server's health endpoint answers with a 2xx status.
// It satisfies outbox.Connectivity.
type Probe struct {
	Endpoint   string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Online probes the server
func (p Probe) Online(ctx context.Context) bool {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	hc := p.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s%s", strings.TrimRight(p.Endpoint, "/"), consts.HealthPath)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		log.Debug("constructing probe request: %s\n", err.Error())
		return false
	}

	res, err := hc.Do(req)
	if err != nil {
		log.Debug("probing %s: %s\n", endpoint, err.Error())
		return false
	}
	defer res.Body.Close()

	return res.StatusCode >= 200 && res.StatusCode < 300
}

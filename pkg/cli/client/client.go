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

// Package client provides interfaces for interacting with the raynetcare
// server and the data structures for responses
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/raynetcare/raynetcare/pkg/cli/consts"
	"github.com/raynetcare/raynetcare/pkg/cli/log"
	"github.com/raynetcare/raynetcare/pkg/cli/outbox"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

var (
	// ErrInvalidLogin is an error for invalid credentials for login
	ErrInvalidLogin = errors.New("wrong credentials")
	// ErrMissingCSRFToken is an error for a server that did not issue an anti-forgery cookie
	ErrMissingCSRFToken = errors.New("server did not issue a csrf token")
	// ErrUnexpectedResponse is an error for a response body of an unknown shape
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// HTTPError represents an HTTP error response from the server
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf(`response %d "%s"`, e.StatusCode, e.Message)
}

const (
	// clientRateLimitPerSecond is the max requests per second the client will make
	clientRateLimitPerSecond = 10
	// clientRateLimitBurst is the burst capacity for rate limiting
	clientRateLimitBurst = 20
)

// rateLimitedTransport wraps an http.RoundTripper with rate limiting
type rateLimitedTransport struct {
	transport http.RoundTripper
	limiter   *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.transport.RoundTrip(req)
}

// NewHTTPClient creates a rate limited HTTP client with a cookie jar. The jar
// keeps the anti-forgery cookies between the priming request and the push.
func NewHTTPClient() *http.Client {
	interval := time.Second / time.Duration(clientRateLimitPerSecond)

	// cookiejar.New only fails for a nil PublicSuffixList implementation
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	return &http.Client{
		Transport: &rateLimitedTransport{
			transport: http.DefaultTransport,
			limiter:   rate.NewLimiter(rate.Every(interval), clientRateLimitBurst),
		},
		Jar: jar,
	}
}

// Params are the parameters for creating a Client
type Params struct {
	// Endpoint is the base URL of the server, without a trailing slash
	Endpoint   string
	Version    string
	SessionKey string
	HTTPClient *http.Client
}

// Client talks to the raynetcare server. It satisfies outbox.Pusher.
type Client struct {
	endpoint   string
	version    string
	sessionKey string
	hc         *http.Client
}

// New returns a new client
func New(p Params) *Client {
	hc := p.HTTPClient
	if hc == nil {
		hc = NewHTTPClient()
	}

	return &Client{
		endpoint:   strings.TrimRight(p.Endpoint, "/"),
		version:    p.Version,
		sessionKey: p.SessionKey,
		hc:         hc,
	}
}

func (c *Client) newReq(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	endpoint := fmt.Sprintf("%s%s", c.endpoint, path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, errors.Wrap(err, "constructing http request")
	}

	req.Header.Set("CLI-Version", c.version)
	if c.sessionKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.sessionKey))
	}

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	log.Debug("HTTP %s %s\n", req.Method, req.URL.Path)

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "making http request")
	}

	log.Debug("HTTP %s\n", res.Status)

	return res, nil
}

// checkRespErr returns an HTTPError if the given response indicates an error
func checkRespErr(res *http.Response, body []byte) error {
	if res.StatusCode < 400 {
		return nil
	}

	return &HTTPError{
		StatusCode: res.StatusCode,
		Message:    strings.TrimRight(string(body), "\n"),
	}
}

// cookieString renders the jar's cookies for the endpoint the way a browser
// exposes them to scripts
func (c *Client) cookieString() string {
	if c.hc.Jar == nil {
		return ""
	}

	u, err := url.Parse(c.endpoint + "/")
	if err != nil {
		return ""
	}

	var parts []string
	for _, ck := range c.hc.Jar.Cookies(u) {
		parts = append(parts, fmt.Sprintf("%s=%s", ck.Name, ck.Value))
	}

	return strings.Join(parts, "; ")
}

// CSRFToken returns the anti-forgery token held in the csrftoken cookie, or
// an empty string if the server has not issued one yet
func (c *Client) CSRFToken() string {
	return outbox.GetCookie(c.cookieString(), consts.CSRFCookieName)
}

// primeCSRF asks the server to issue the anti-forgery cookies
func (c *Client) primeCSRF(ctx context.Context) error {
	req, err := c.newReq(ctx, "GET", consts.CSRFPath, nil)
	if err != nil {
		return err
	}

	res, err := c.do(req)
	if err != nil {
		return errors.Wrap(err, "requesting csrf token")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "reading the response body")
	}
	if err := checkRespErr(res, body); err != nil {
		return errors.Wrap(err, "server responded with an error")
	}

	return nil
}

type pushNotesPayload struct {
	Notes []outbox.Note `json:"notes"`
}

type pushNotesResp struct {
	Saved  *int              `json:"saved"`
	Errors []json.RawMessage `json:"errors"`
}

// errorMessages renders each reported error as text. Strings are unquoted and
// anything else is kept as raw JSON.
func errorMessages(raw []json.RawMessage) []string {
	ret := make([]string, 0, len(raw))

	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			ret = append(ret, s)
			continue
		}

		ret = append(ret, string(r))
	}

	return ret
}

// PushNotes sends the notes to the server in a single request. A response in
// the push shape is returned as is, whatever its status code; anything else
// is an error.
func (c *Client) PushNotes(ctx context.Context, notes []outbox.Note) (outbox.PushResponse, error) {
	var ret outbox.PushResponse

	if c.CSRFToken() == "" {
		if err := c.primeCSRF(ctx); err != nil {
			return ret, errors.Wrap(err, "priming csrf token")
		}
	}
	token := c.CSRFToken()
	if token == "" {
		return ret, ErrMissingCSRFToken
	}

	b, err := json.Marshal(pushNotesPayload{Notes: notes})
	if err != nil {
		return ret, errors.Wrap(err, "marshaling payload")
	}

	req, err := c.newReq(ctx, "POST", consts.PushNotesPath, bytes.NewReader(b))
	if err != nil {
		return ret, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(consts.CSRFHeaderName, token)
	// servers behind https check that the request comes from their own origin
	req.Header.Set("Referer", c.endpoint+"/")

	res, err := c.do(req)
	if err != nil {
		return ret, errors.Wrap(err, "pushing notes")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return ret, errors.Wrap(err, "reading the response body")
	}

	var resp pushNotesResp
	if err := json.Unmarshal(body, &resp); err != nil || resp.Saved == nil {
		if httpErr := checkRespErr(res, body); httpErr != nil {
			return ret, errors.Wrap(httpErr, "server responded with an error")
		}

		return ret, errors.Wrapf(ErrUnexpectedResponse, "status %d", res.StatusCode)
	}

	ret.Saved = *resp.Saved
	ret.Errors = errorMessages(resp.Errors)

	return ret, nil
}

// SigninResponse is a response from the signin endpoint
type SigninResponse struct {
	Key       string `json:"key"`
	ExpiresAt int64  `json:"expires_at"`
}

type signinPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signin requests a session key for the staff member
func (c *Client) Signin(ctx context.Context, username, password string) (SigninResponse, error) {
	var ret SigninResponse

	b, err := json.Marshal(signinPayload{Username: username, Password: password})
	if err != nil {
		return ret, errors.Wrap(err, "marshaling payload")
	}

	req, err := c.newReq(ctx, "POST", "/api/v1/signin", bytes.NewReader(b))
	if err != nil {
		return ret, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.do(req)
	if err != nil {
		return ret, errors.Wrap(err, "requesting session")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return ret, errors.Wrap(err, "reading the response body")
	}

	if res.StatusCode == http.StatusUnauthorized {
		return ret, ErrInvalidLogin
	}
	if err := checkRespErr(res, body); err != nil {
		return ret, errors.Wrap(err, "server responded with an error")
	}

	if err := json.Unmarshal(body, &ret); err != nil {
		return ret, errors.Wrap(err, "unmarshalling the payload")
	}

	return ret, nil
}

// Signout deletes the session on the server
func (c *Client) Signout(ctx context.Context) error {
	req, err := c.newReq(ctx, "POST", "/api/v1/signout", nil)
	if err != nil {
		return err
	}

	res, err := c.do(req)
	if err != nil {
		return errors.Wrap(err, "requesting signout")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "reading the response body")
	}

	if err := checkRespErr(res, body); err != nil {
		return errors.Wrap(err, "server responded with an error")
	}

	return nil
}

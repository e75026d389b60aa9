package pihole

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/aleister1102/piholewatch/internal/errorwrapper"
	"github.com/rs/zerolog"
)

// Client talks to the Pi-hole HTTP API. It holds the session identifier for
// the current check; authentication is the caller's responsibility (see
// Login). All requests carry the fixed per-request timeout configured on the
// underlying http.Client.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	password      string
	loginEndpoint string
	sid           string
	logger        zerolog.Logger
}

// SetSID installs a session identifier (e.g. one loaded from the cache) to
// be sent as the X-FTL-SID header on subsequent requests.
func (c *Client) SetSID(sid string) {
	c.sid = sid
}

// SID returns the session identifier currently in use, if any.
func (c *Client) SID() string {
	return c.sid
}

// Login authenticates against the Pi-hole API and installs the returned
// session identifier on the client.
func (c *Client) Login(ctx context.Context) (Session, error) {
	loginURL := JoinURL(c.baseURL, c.loginEndpoint)

	body, err := json.Marshal(loginRequest{Password: c.password})
	if err != nil {
		return Session{}, errorwrapper.WrapError(err, "failed to encode login request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL, bytes.NewReader(body))
	if err != nil {
		return Session{}, errorwrapper.WrapError(err, "failed to build login request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Session{}, errorwrapper.NewNetworkError(loginURL, "login request failed", err)
	}
	defer resp.Body.Close()

	session, err := parseLoginResponse(resp)
	if err != nil {
		return Session{}, err
	}

	c.sid = session.SID
	c.logger.Debug().Float64("validity", session.Validity).Msg("Authenticated against Pi-hole API")
	return session, nil
}

// parseLoginResponse extracts the session identifier and validity window
// from a login response.
func parseLoginResponse(resp *http.Response) (Session, error) {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Session{}, errorwrapper.NewHTTPErrorWithURL(resp.StatusCode, "login failed", resp.Request.URL.String())
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Session{}, errorwrapper.WrapError(err, "failed to read login response")
	}

	var payload loginResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return Session{}, errorwrapper.WrapError(err, "login response is not valid JSON")
	}

	if payload.Session == nil {
		return Session{}, errorwrapper.NewError("login response does not contain 'session' information")
	}
	if payload.Session.SID == nil || *payload.Session.SID == "" {
		return Session{}, errorwrapper.NewError("login response does not contain a valid 'sid'")
	}
	if payload.Session.Validity == nil {
		return Session{}, errorwrapper.NewError("login response does not contain a valid 'validity' value")
	}

	return Session{SID: *payload.Session.SID, Validity: *payload.Session.Validity}, nil
}

// FetchJSON retrieves a resource endpoint and decodes its body as arbitrary
// JSON. The session identifier must already be set.
func (c *Client) FetchJSON(ctx context.Context, endpoint string) (any, error) {
	resourceURL := JoinURL(c.baseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resourceURL, nil)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to build request for "+endpoint)
	}
	if c.sid != "" {
		req.Header.Set(SIDHeader, c.sid)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errorwrapper.NewNetworkError(resourceURL, "failed to fetch "+endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorwrapper.NewHTTPErrorWithURL(resp.StatusCode, "failed to fetch "+endpoint, resourceURL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read response from "+endpoint)
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errorwrapper.WrapError(err, "response from "+endpoint+" is not valid JSON")
	}

	return payload, nil
}

// JoinURL joins a base URL and an endpoint path, tolerating stray slashes.
func JoinURL(base, endpoint string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

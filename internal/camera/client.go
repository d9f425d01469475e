// Package camera implements the JSON-over-HTTP API client for the device. It
// establishes the token session, queries the on-device recording index,
// streams recording payloads, and exposes the settings surface the control
// commands drive. Everything here is an external collaborator to the
// classification core: raw index entries go out, byte streams come back.
package camera

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"camctl/internal/config"
	"camctl/internal/logging"
	"camctl/internal/services"
)

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to one camera. Obtain a token with Login before calling any
// other method; Logout releases the lease.
type Client struct {
	baseURL  string
	user     string
	password string
	client   HTTPDoer
	logger   *slog.Logger

	token       string
	tokenExpiry time.Time
}

// New constructs a client from connection settings.
func New(cfg config.Camera, logger *slog.Logger) *Client {
	scheme := "http"
	if cfg.UseHTTPS {
		scheme = "https"
	}
	httpClient := &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	return NewWithHTTPClient(fmt.Sprintf("%s://%s", scheme, cfg.Host), cfg.User, cfg.Password, httpClient, logger)
}

// NewWithHTTPClient allows injecting the HTTP backend (used in tests).
func NewWithHTTPClient(baseURL, user, password string, client HTTPDoer, logger *slog.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		user:     user,
		password: password,
		client:   client,
		logger:   logging.WithComponent(logger, "camera"),
	}
}

// command is one request in the device's command envelope.
type command struct {
	Cmd    string `json:"cmd"`
	Action int    `json:"action"`
	Param  any    `json:"param,omitempty"`
}

// response is one reply in the device's response envelope.
type response struct {
	Cmd   string          `json:"cmd"`
	Code  int             `json:"code"`
	Value json.RawMessage `json:"value,omitempty"`
	Error *apiError       `json:"error,omitempty"`
}

type apiError struct {
	RspCode int    `json:"rspCode"`
	Detail  string `json:"detail"`
}

// Login obtains a session token. Calling it twice is harmless; an unexpired
// token is reused.
func (c *Client) Login(ctx context.Context) error {
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return nil
	}
	param := map[string]any{
		"User": map[string]string{"userName": c.user, "password": c.password},
	}
	var value struct {
		Token struct {
			Name      string `json:"name"`
			LeaseTime int    `json:"leaseTime"`
		} `json:"Token"`
	}
	if err := c.call(ctx, "Login", param, &value); err != nil {
		return services.Wrap(services.ErrExternalTool, "camera", "login", "authentication failed", err)
	}
	if value.Token.Name == "" {
		return services.Wrap(services.ErrExternalTool, "camera", "login", "device returned no token", nil)
	}
	c.token = value.Token.Name
	// Renew a little before the lease runs out.
	lease := time.Duration(value.Token.LeaseTime) * time.Second
	if lease <= 0 {
		lease = time.Hour
	}
	c.tokenExpiry = time.Now().Add(lease - 30*time.Second)
	c.logger.Debug("logged in", logging.Duration("lease", lease))
	return nil
}

// Logout releases the session token. Safe to call without a session.
func (c *Client) Logout(ctx context.Context) error {
	if c.token == "" {
		return nil
	}
	err := c.call(ctx, "Logout", nil, nil)
	c.token = ""
	c.tokenExpiry = time.Time{}
	return err
}

// call posts one command and decodes its value into out (which may be nil).
func (c *Client) call(ctx context.Context, cmd string, param, out any) error {
	body, err := json.Marshal([]command{{Cmd: cmd, Action: 0, Param: param}})
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", cmd, err)
	}

	endpoint := c.commandURL(cmd, nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", cmd, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, "camera", cmd, "device did not respond", err)
		}
		return fmt.Errorf("%s: %w", cmd, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %s", cmd, resp.Status)
	}

	var replies []response
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&replies); err != nil {
		return fmt.Errorf("decode %s response: %w", cmd, err)
	}
	if len(replies) == 0 {
		return fmt.Errorf("%s: empty response envelope", cmd)
	}
	reply := replies[0]
	if reply.Code != 0 {
		if reply.Error != nil {
			return fmt.Errorf("%s: device error %d: %s", cmd, reply.Error.RspCode, reply.Error.Detail)
		}
		return fmt.Errorf("%s: device returned code %d", cmd, reply.Code)
	}
	if out != nil {
		if err := json.Unmarshal(reply.Value, out); err != nil {
			return fmt.Errorf("decode %s value: %w", cmd, err)
		}
	}
	return nil
}

func (c *Client) commandURL(cmd string, extra url.Values) string {
	query := url.Values{}
	query.Set("cmd", cmd)
	if c.token != "" {
		query.Set("token", c.token)
	}
	for key, values := range extra {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	return c.baseURL + "/cgi-bin/api.cgi?" + query.Encode()
}

// Session logs in, runs fn, and logs out. Logout uses a fresh short context
// so a canceled operation still releases the token lease.
func Session(ctx context.Context, cfg *config.Config, logger *slog.Logger, fn func(*Client) error) error {
	if err := cfg.RequireCredentials(); err != nil {
		return services.Wrap(services.ErrConfiguration, "camera", "connect", err.Error(), nil)
	}
	client := New(cfg.Camera, logger)
	if err := client.Login(ctx); err != nil {
		return err
	}
	defer func() {
		logoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Logout(logoutCtx); err != nil {
			client.logger.Debug("logout failed", logging.Error(err))
		}
	}()
	return fn(client)
}

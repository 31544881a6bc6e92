package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the body of a successful register or login.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type Social struct {
	Twitter  string `json:"twitter,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

type ProfileOwner struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type Profile struct {
	ID        string       `json:"id"`
	User      ProfileOwner `json:"user"`
	Status    string       `json:"status"`
	Skills    []string     `json:"skills"`
	Bio       string       `json:"bio,omitempty"`
	Website   string       `json:"website,omitempty"`
	Social    Social       `json:"social"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type ProfileInput struct {
	Status   string   `json:"status"`
	Skills   []string `json:"skills"`
	Bio      string   `json:"bio,omitempty"`
	Website  string   `json:"website,omitempty"`
	Twitter  string   `json:"twitter,omitempty"`
	LinkedIn string   `json:"linkedin,omitempty"`
	GitHub   string   `json:"github,omitempty"`
}

// API is a typed client for the DevConnector HTTP API. Every request goes
// through a Transport, so the current credential is attached automatically.
type API struct {
	baseURL *url.URL
	http    *http.Client
}

type APIOption func(*apiOptions)

type apiOptions struct {
	header  string
	base    http.RoundTripper
	timeout time.Duration
}

// WithHeader overrides the credential header name.
func WithHeader(name string) APIOption {
	return func(o *apiOptions) { o.header = name }
}

// WithBaseTransport sets the transport the credential decorator wraps.
func WithBaseTransport(rt http.RoundTripper) APIOption {
	return func(o *apiOptions) { o.base = rt }
}

// WithHTTPTimeout bounds every request made by the API client.
func WithHTTPTimeout(d time.Duration) APIOption {
	return func(o *apiOptions) { o.timeout = d }
}

func NewAPI(baseURL string, tokens TokenSource, opts ...APIOption) (*API, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q: scheme must be http or https", baseURL)
	}

	o := &apiOptions{
		header:  DefaultHeader,
		base:    http.DefaultTransport,
		timeout: defaultHTTPTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &API{
		baseURL: u,
		http: &http.Client{
			Transport: &Transport{Base: o.base, Source: tokens, Header: o.header},
			Timeout:   o.timeout,
		},
	}, nil
}

func (a *API) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	var s Session
	if err := a.do(ctx, http.MethodPost, "/api/auth/register", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (a *API) Login(ctx context.Context, in LoginInput) (*Session, error) {
	var s Session
	if err := a.do(ctx, http.MethodPost, "/api/auth/login", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Me asks the API who the attached credential belongs to.
func (a *API) Me(ctx context.Context) (*User, error) {
	var u User
	if err := a.do(ctx, http.MethodGet, "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *API) ListUsers(ctx context.Context) ([]User, error) {
	var res struct {
		Users []User `json:"users"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/users", nil, &res); err != nil {
		return nil, err
	}
	return res.Users, nil
}

func (a *API) MyProfile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := a.do(ctx, http.MethodGet, "/api/profile/me", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *API) SaveProfile(ctx context.Context, in ProfileInput) (*Profile, error) {
	var p Profile
	if err := a.do(ctx, http.MethodPost, "/api/profile", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

type envelope struct {
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func (a *API) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader = http.NoBody
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL.JoinPath(path).String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		if res.StatusCode >= http.StatusBadRequest {
			return &APIError{StatusCode: res.StatusCode}
		}
		return fmt.Errorf("decode response of %s %s: %w", method, path, err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return &APIError{StatusCode: res.StatusCode, Message: env.Message, Fields: env.Errors}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data of %s %s: %w", method, path, err)
	}
	return nil
}

package client

import "net/http"

// DefaultHeader is the request header the API reads the credential from.
const DefaultHeader = "x-auth-token"

// TokenSource yields the credential to attach to a request, or "" for none.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string {
	return f()
}

// Transport attaches the current credential to every outgoing request. The
// source is consulted on each call, so a login or logout takes effect on the
// next request without touching shared client state.
type Transport struct {
	Base   http.RoundTripper
	Source TokenSource
	Header string
}

var _ http.RoundTripper = (*Transport)(nil)

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	header := t.Header
	if header == "" {
		header = DefaultHeader
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	out := req.Clone(req.Context())
	token := ""
	if t.Source != nil {
		token = t.Source.Token()
	}

	if token != "" {
		out.Header.Set(header, token)
	} else {
		out.Header.Del(header)
	}

	return base.RoundTrip(out)
}

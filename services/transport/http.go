// Package transport implements core.Transport over HTTP.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/services/auth"
)

// responses bigger than this are not read
const maxBodySize = 10 << 20

type Options struct {
	BaseURL string
	Timeout time.Duration
	Tokens  auth.TokenSource // optional
	Client  *http.Client     // optional; http.DefaultTransport with Timeout by default
}

// HTTPTransport sends core.Requests to a JSON REST API.
type HTTPTransport struct {
	baseURL string
	tokens  auth.TokenSource
	client  *http.Client
}

var _ core.Transport = (*HTTPTransport)(nil)

func New(opts Options) *HTTPTransport {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTPTransport{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		tokens:  opts.Tokens,
		client:  client,
	}
}

// NewFromConfig builds an HTTPTransport from conf.API.
func NewFromConfig(conf *core.Config, tokens auth.TokenSource) *HTTPTransport {
	return New(Options{BaseURL: conf.API.BaseURL, Timeout: conf.API.Timeout, Tokens: tokens})
}

// URL resolves endpoint against the base URL. "/cursos" and "cursos" resolve to the same URL.
func (t *HTTPTransport) URL(endpoint string) string {
	return t.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}

func (t *HTTPTransport) Fetch(ctx context.Context, req core.Request, dest interface{}) error {
	var body io.Reader
	if data := req.Body(); len(data) > 0 {
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method(), t.URL(req.Endpoint), body)
	if err != nil {
		return core.NewRequestError(core.KindNetwork, err.Error(), err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if t.tokens != nil {
		token, err := t.tokens.Token(ctx)
		if err != nil {
			return core.NewRequestError(core.KindNetwork, err.Error(), errors.Wrap(err, "getting token"))
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return core.NewRequestError(core.KindNetwork, err.Error(), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return core.NewRequestError(core.KindNetwork, err.Error(), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return core.NewRejectedError(resp.StatusCode, errorMessage(data))
	}
	if len(bytes.TrimSpace(data)) == 0 || dest == nil {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return core.NewRequestError(core.KindParse, err.Error(), err)
	}
	return nil
}

// errorMessage extracts the message of an error response:
// "msg", {"error": "msg"}, {"message": "msg"}, {"error": {"field": "msg"}} or {"field": "msg"}.
// An empty string is returned when there is none.
func errorMessage(data []byte) string {
	var msg string
	if err := json.Unmarshal(data, &msg); err == nil {
		return msg
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return ""
	}
	for _, key := range []string{"error", "message"} {
		switch v := obj[key].(type) {
		case string:
			return v
		case map[string]interface{}:
			return fieldsMessage(v)
		}
	}
	return fieldsMessage(obj)
}

func fieldsMessage(fields map[string]interface{}) string {
	msgs := make([]string, 0, len(fields))
	for field, v := range fields {
		if msg, ok := v.(string); ok {
			msgs = append(msgs, field+": "+msg)
		}
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

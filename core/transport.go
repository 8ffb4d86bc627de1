package core

import (
	"context"
	"net/http"
)

// Request describes a single API call. A nil Config means GET without body.
type Request struct {
	Endpoint string
	Config   *RequestConfig
}

type RequestConfig struct {
	Method string
	Data   []byte // serialized JSON body
}

func (r Request) Method() string {
	if r.Config == nil || r.Config.Method == "" {
		return http.MethodGet
	}
	return r.Config.Method
}

func (r Request) Body() []byte {
	if r.Config == nil {
		return nil
	}
	return r.Config.Data
}

// Transport performs the network call described by req and decodes the JSON
// response into dest. An empty response body leaves dest untouched.
// Non-2xx responses must be reported as failures.
type Transport interface {
	Fetch(ctx context.Context, req Request, dest interface{}) error
}

package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/trezcool/masomo-admin/core"
)

// FakeTransport is a core.Transport answering from canned responses keyed by "METHOD endpoint".
// Every request it gets is recorded, answered or not.
type FakeTransport struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	requests  []core.Request
}

type fakeResponse struct {
	body []byte
	err  error
}

var _ core.Transport = (*FakeTransport)(nil)

func NewFakeTransport() *FakeTransport {
	return &FakeTransport{responses: make(map[string]fakeResponse)}
}

func key(method, endpoint string) string { return method + " " + endpoint }

// Respond makes method+endpoint answer with the JSON encoding of obj (nil means an empty body).
func (ft *FakeTransport) Respond(t *testing.T, method, endpoint string, obj interface{}) {
	var body []byte
	if obj != nil {
		body = MarshalObj(t, obj)
	}
	ft.mu.Lock()
	ft.responses[key(method, endpoint)] = fakeResponse{body: body}
	ft.mu.Unlock()
}

// RespondRaw makes method+endpoint answer with body as is.
func (ft *FakeTransport) RespondRaw(method, endpoint string, body []byte) {
	ft.mu.Lock()
	ft.responses[key(method, endpoint)] = fakeResponse{body: body}
	ft.mu.Unlock()
}

// Fail makes method+endpoint fail with err.
func (ft *FakeTransport) Fail(method, endpoint string, err error) {
	ft.mu.Lock()
	ft.responses[key(method, endpoint)] = fakeResponse{err: err}
	ft.mu.Unlock()
}

func (ft *FakeTransport) Fetch(_ context.Context, req core.Request, dest interface{}) error {
	ft.mu.Lock()
	ft.requests = append(ft.requests, req)
	resp, ok := ft.responses[key(req.Method(), req.Endpoint)]
	ft.mu.Unlock()

	if !ok {
		return core.NewRejectedError(404, fmt.Sprintf("no response for %s %s", req.Method(), req.Endpoint))
	}
	if resp.err != nil {
		return resp.err
	}
	if len(resp.body) == 0 || dest == nil {
		return nil
	}
	if err := json.Unmarshal(resp.body, dest); err != nil {
		return core.NewRequestError(core.KindParse, err.Error(), err)
	}
	return nil
}

// Requests returns the requests received so far.
func (ft *FakeTransport) Requests() []core.Request {
	ft.mu.Lock()
	defer ft.mu.Unlock()

	reqs := make([]core.Request, len(ft.requests))
	copy(reqs, ft.requests)
	return reqs
}

// LastRequest returns the latest request received; it fails the test if there is none.
func (ft *FakeTransport) LastRequest(t *testing.T) core.Request {
	reqs := ft.Requests()
	if len(reqs) == 0 {
		t.Fatalf("LastRequest(): no request received")
	}
	return reqs[len(reqs)-1]
}

// LogEntry is a message received by a RecordingLogger.
type LogEntry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// RecordingLogger is a core.Logger keeping everything it is given.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

var _ core.Logger = (*RecordingLogger)(nil)

func (l *RecordingLogger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg, Args: args})
	l.mu.Unlock()
}

func (l *RecordingLogger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *RecordingLogger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *RecordingLogger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *RecordingLogger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *RecordingLogger) Fatal(msg string, args ...interface{}) { l.log("fatal", msg, args) }

func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]LogEntry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

func MarshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("MarshalObj(): %v", err)
	}
	return data
}

// JSONBytesEqual compares two JSON documents, ignoring formatting and key order.
func JSONBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

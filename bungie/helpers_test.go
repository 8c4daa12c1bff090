package bungie

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://bungie.test/Platform"

var errConnectionRefused = errors.New("connection refused")

// fakeTransport answers requests from a table keyed by the URL below testBaseURL and records
// every URL it was asked for. Unknown URLs fail like a dead connection.
type fakeTransport struct {
	mu        sync.Mutex
	bodies    map[string]string
	failures  map[string]error
	requested []string
	headers   []map[string]string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		bodies:   map[string]string{},
		failures: map[string]error{},
	}
}

func (f *fakeTransport) respond(path, body string) *fakeTransport {
	f.bodies[path] = body
	return f
}

func (f *fakeTransport) fail(path string, err error) *fakeTransport {
	f.failures[path] = err
	return f
}

func (f *fakeTransport) Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(url, testBaseURL)
	f.requested = append(f.requested, path)
	f.headers = append(f.headers, headers)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.failures[path]; ok {
		return nil, err
	}
	if body, ok := f.bodies[path]; ok {
		return []byte(body), nil
	}

	return nil, errConnectionRefused
}

func (f *fakeTransport) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.requested...)
}

// recordingLogger keeps every formatted message by level.
type recordingLogger struct {
	mu    sync.Mutex
	debug []string
	warn  []string
}

func (l *recordingLogger) Debugf(format string, val ...interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = append(l.debug, fmt.Sprintf(format, val...))
	return nil
}

func (l *recordingLogger) Warnf(format string, val ...interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warn = append(l.warn, fmt.Sprintf(format, val...))
	return nil
}

func (l *recordingLogger) warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.warn...)
}

func newTestClient(transport Transport, log Logger) *Client {
	return NewClient(Config{
		APIKey:    "test-api-key",
		BaseURL:   testBaseURL,
		Transport: transport,
		Logger:    log,
	})
}

func readSample(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)

	return string(data)
}

// envelope wraps a Response value in a successful envelope.
func envelope(response string) string {
	return `{"ErrorCode": 1, "ErrorStatus": "Success", "Message": "Ok", "Response": ` + response + `}`
}

// invalidEnvelope is a well formed document the API uses for unknown accounts.
const invalidEnvelope = `{"ErrorCode": 1601, "ErrorStatus": "DestinyAccountNotFound", "Message": "Not found", "Response": null}`

const malformedBody = `{"ErrorCode": 1, "Response": {`

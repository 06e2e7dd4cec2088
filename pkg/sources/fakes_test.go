package sources

import (
	"context"
	"errors"
	"sync"

	"github.com/samvad-hq/randwall/pkg/httpclient"
)

type fakeResponse struct {
	body       []byte
	statusCode int
}

func (f fakeResponse) Body() []byte    { return f.body }
func (f fakeResponse) StatusCode() int { return f.statusCode }

type fakeCall struct {
	url     string
	headers map[string]string
}

// fakeHTTPClient returns canned responses per URL and records every call.
type fakeHTTPClient struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	errs      map[string]error
	calls     []fakeCall
}

func newFakeClient() *fakeHTTPClient {
	return &fakeHTTPClient{
		responses: make(map[string]fakeResponse),
		errs:      make(map[string]error),
	}
}

func (f *fakeHTTPClient) respond(url string, status int, body string) *fakeHTTPClient {
	f.responses[url] = fakeResponse{body: []byte(body), statusCode: status}
	return f
}

func (f *fakeHTTPClient) fail(url string, err error) *fakeHTTPClient {
	f.errs[url] = err
	return f
}

func (f *fakeHTTPClient) Get(_ context.Context, url string, headers map[string]string) (httpclient.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, fakeCall{url: url, headers: headers})
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	resp, ok := f.responses[url]
	if !ok {
		return nil, errors.New("no canned response for " + url)
	}
	return resp, nil
}

func (f *fakeHTTPClient) urls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.url
	}
	return out
}

// mapSettings overrides Defaults with fixed values.
type mapSettings map[string]any

func (m mapSettings) get(key string) any {
	if v, ok := m[key]; ok {
		return v
	}
	return Defaults()[key]
}

func (m mapSettings) GetString(key string) string {
	s, _ := m.get(key).(string)
	return s
}

func (m mapSettings) GetInt(key string) int {
	i, _ := m.get(key).(int)
	return i
}

func (m mapSettings) GetBool(key string) bool {
	b, _ := m.get(key).(bool)
	return b
}

type recordingLogger struct {
	mu     sync.Mutex
	errors []map[string]any
}

func (l *recordingLogger) InfoObj(string, string, interface{})  {}
func (l *recordingLogger) DebugObj(string, string, interface{}) {}
func (l *recordingLogger) WarnObj(string, string, interface{})  {}

func (l *recordingLogger) ErrorObj(_ string, _ string, obj interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := obj.(map[string]any); ok {
		l.errors = append(l.errors, m)
	}
}

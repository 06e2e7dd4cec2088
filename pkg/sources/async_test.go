package sources

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/randwall/internal/domain"
)

type panicAdapter struct{}

func (panicAdapter) Kind() Kind { return "panicky" }

func (panicAdapter) RequestRandomImage(context.Context) (domain.ImageRecord, error) {
	panic("boom")
}

type plainErrAdapter struct{}

func (plainErrAdapter) Kind() Kind { return "plain" }

func (plainErrAdapter) RequestRandomImage(context.Context) (domain.ImageRecord, error) {
	return domain.ImageRecord{}, errors.New("bare failure")
}

// receiveOnce reads the single result and checks the channel closes afterwards.
func receiveOnce(t *testing.T, ch <-chan Result) Result {
	t.Helper()

	var res Result
	select {
	case r, ok := <-ch:
		require.True(t, ok, "channel closed without a result")
		res = r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
	}

	select {
	case _, ok := <-ch:
		require.False(t, ok, "channel delivered a second result")
	case <-time.After(2 * time.Second):
		t.Fatal("channel was not closed")
	}
	return res
}

func TestRequestDeliversExactlyOnce(t *testing.T) {
	cases := []struct {
		name    string
		adapter Adapter
		wantErr bool
	}{
		{
			name:    "success",
			adapter: NewDesktopper(newFakeClient().respond(desktopperSafeURL, 200, `{"response":{"image":{"url":"http://x/y.jpg"}}}`), mapSettings{}, nil),
		},
		{
			name:    "malformed json",
			adapter: NewDesktopper(newFakeClient().respond(desktopperSafeURL, 200, `not json`), mapSettings{}, nil),
			wantErr: true,
		},
		{
			name: "json with trailing data",
			adapter: NewGenericJSON(newFakeClient().respond(genericURL, 200, `{"url":"https://x/a.png"} <html>oops</html>`),
				genericSettings("url", ""), nil),
			wantErr: true,
		},
		{
			name:    "transport error",
			adapter: NewDesktopper(newFakeClient().fail(desktopperSafeURL, errors.New("dial tcp: timeout")), mapSettings{}, nil),
			wantErr: true,
		},
		{
			name:    "non-2xx",
			adapter: NewDesktopper(newFakeClient().respond(desktopperSafeURL, 404, ``), mapSettings{}, nil),
			wantErr: true,
		},
		{
			name:    "empty scrape",
			adapter: NewWallhaven(newFakeClient().respond(wallhavenDefaultURL, 200, `<html></html>`), mapSettings{}, nil),
			wantErr: true,
		},
		{
			name:    "unsplash without trigger",
			adapter: testUnsplash(newFakeClient().respond(unsplashDefaultURL, 200, `{}`), mapSettings{}),
			wantErr: true,
		},
		{
			name: "missing path",
			adapter: NewGenericJSON(newFakeClient().respond(genericURL, 200, `{}`),
				genericSettings("$.url", ""), nil),
			wantErr: true,
		},
		{
			name:    "not implemented",
			adapter: New("flickr", newFakeClient(), mapSettings{}, nil),
			wantErr: true,
		},
		{
			name:    "panic",
			adapter: panicAdapter{},
			wantErr: true,
		},
		{
			name:    "nil adapter",
			adapter: nil,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := receiveOnce(t, Request(context.Background(), tc.adapter))
			if !tc.wantErr {
				require.NoError(t, res.Err)
				assert.NotEmpty(t, res.Image.ImageDownloadURL)
				return
			}

			require.Error(t, res.Err)
			assert.Zero(t, res.Image)
			var srcErr *Error
			assert.ErrorAs(t, res.Err, &srcErr)
		})
	}
}

func TestRequestRecoversPanic(t *testing.T) {
	res := receiveOnce(t, Request(context.Background(), panicAdapter{}))

	var srcErr *Error
	require.ErrorAs(t, res.Err, &srcErr)
	assert.Equal(t, "image source panicked", srcErr.Message)
	assert.Contains(t, res.Err.Error(), "boom")
}

func TestRequestWrapsForeignErrors(t *testing.T) {
	res := receiveOnce(t, Request(context.Background(), plainErrAdapter{}))

	var srcErr *Error
	require.ErrorAs(t, res.Err, &srcErr)
	assert.Equal(t, "image source failed (bare failure)", srcErr.Error())
}

func TestRequestFuncCallsDoneOnce(t *testing.T) {
	client := newFakeClient().respond(desktopperSafeURL, 200, `{"response":{"image":{"url":"http://x/y.jpg"}}}`)

	type outcome struct {
		rec domain.ImageRecord
		err error
	}
	calls := make(chan outcome, 2)
	RequestFunc(context.Background(), NewDesktopper(client, mapSettings{}, nil), func(rec domain.ImageRecord, err error) {
		calls <- outcome{rec: rec, err: err}
	})

	select {
	case got := <-calls:
		require.NoError(t, got.err)
		assert.Equal(t, "http://x/y.jpg", got.rec.ImageDownloadURL)
	case <-time.After(2 * time.Second):
		t.Fatal("done was not called")
	}

	select {
	case <-calls:
		t.Fatal("done called twice")
	case <-time.After(50 * time.Millisecond):
	}
}

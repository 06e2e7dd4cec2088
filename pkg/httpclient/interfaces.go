package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP calls so sources can be tested without a network.
// Get blocks until the response body has been read or the transport fails.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

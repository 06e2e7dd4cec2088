package sources

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/randwall/internal/domain"
)

// Result is the outcome of one RequestRandomImage call: Image is set only when Err is nil.
type Result struct {
	Image domain.ImageRecord
	Err   error
}

// Request runs a.RequestRandomImage on its own goroutine. The returned channel
// receives exactly one Result and is then closed. Panics inside the source are
// recovered and delivered as an *Error.
func Request(ctx context.Context, a Adapter) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		out <- call(ctx, a)
	}()
	return out
}

// RequestFunc runs the request in the background and calls done exactly once with its outcome.
func RequestFunc(ctx context.Context, a Adapter, done func(domain.ImageRecord, error)) {
	go func() {
		res := call(ctx, a)
		if done != nil {
			done(res.Image, res.Err)
		}
	}()
}

func call(ctx context.Context, a Adapter) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: &Error{Message: "image source panicked", Cause: fmt.Errorf("%v", r)}}
		}
	}()

	if a == nil {
		return Result{Err: &Error{Message: "no image source selected"}}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	img, err := a.RequestRandomImage(ctx)
	if err != nil {
		var srcErr *Error
		if !errors.As(err, &srcErr) {
			err = &Error{Message: "image source failed", Cause: err}
		}
		return Result{Err: err}
	}
	return Result{Image: img}
}

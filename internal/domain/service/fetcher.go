package service

import (
	"context"
	"time"
)

// FetchResponse is the raw outcome of a fetch.
type FetchResponse struct {
	StatusCode      int
	ContentEncoding string
	Body            []byte
}

// Fetcher is the network capability used for registry requests.
type Fetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) (*FetchResponse, error)
}

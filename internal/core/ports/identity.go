package ports

import (
	"context"
	"io"
)

// TokenSource yields a bearer access token for outgoing backend calls. A call
// may suspend while a silent refresh is in progress.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) AccessToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// ReceiptUploader sends a receipt file to the media storage service and
// returns the durable URL of the stored asset. Independent of the backend API.
type ReceiptUploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

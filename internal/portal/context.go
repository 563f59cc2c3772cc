package portal

import "context"

type ctxKey struct{}

// WithClient stores the browser's client in the context.
func WithClient(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// ClientFromCtx extracts the browser's client. Returns nil and false if the
// request did not pass the session middleware.
func ClientFromCtx(ctx context.Context) (*Client, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Client)
	return c, ok && c != nil
}

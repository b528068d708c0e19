package ports

import "context"

type freshReadKey struct{}

// WithFreshRead marks reads made with ctx as needing the committed
// document. Caching layers must answer them from the backing store.
func WithFreshRead(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshReadKey{}, true)
}

func FreshRead(ctx context.Context) bool {
	fresh, _ := ctx.Value(freshReadKey{}).(bool)
	return fresh
}

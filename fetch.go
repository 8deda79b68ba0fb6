// FILE: lixenwraith/params/fetch.go
package params

import (
	"context"
	"fmt"
)

// Fetcher retrieves the raw parameters stored under a prefix.
// Retry, timeout and cancellation policies belong to the implementation;
// a schema is only read after Fetch succeeds.
type Fetcher interface {
	Fetch(ctx context.Context, prefix string) ([]Parameter, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, prefix string) ([]Parameter, error)

func (f FetcherFunc) Fetch(ctx context.Context, prefix string) ([]Parameter, error) {
	return f(ctx, prefix)
}

// StaticFetcher serves a fixed parameter list, filtered by prefix.
type StaticFetcher []Parameter

func (s StaticFetcher) Fetch(ctx context.Context, prefix string) ([]Parameter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filtered := FilterPrefix(s, prefix)
	out := make([]Parameter, len(filtered))
	copy(out, filtered)
	return out, nil
}

// ChainFetcher concatenates the results of several fetchers in order.
// Since later parameters win in Read, later fetchers override earlier ones.
type ChainFetcher []Fetcher

func (c ChainFetcher) Fetch(ctx context.Context, prefix string) ([]Parameter, error) {
	var all []Parameter
	for i, f := range c {
		params, err := f.Fetch(ctx, prefix)
		if err != nil {
			return nil, fmt.Errorf("fetcher %d: %w", i, err)
		}
		all = append(all, params...)
	}
	return all, nil
}

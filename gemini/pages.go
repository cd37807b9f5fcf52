package gemini

import (
	"context"
	"errors"
	"fmt"
)

// ErrRepeatedPageToken is returned when the API hands back a page token it
// already gave out, which would otherwise loop forever.
var ErrRepeatedPageToken = errors.New("gemini api repeated a page token")

type fetchPage[T any] func(ctx context.Context, pageToken string) (items []*T, nextPageToken string, err error)

// drainPages follows page tokens until the last page.
func drainPages[T any](ctx context.Context, fetch fetchPage[T]) ([]*T, error) {
	all := []*T{}
	seen := map[string]bool{}
	token := ""
	for {
		items, next, err := fetch(ctx, token)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if next == "" {
			return all, nil
		}
		if seen[next] {
			return nil, fmt.Errorf("%w: %q", ErrRepeatedPageToken, next)
		}
		seen[next] = true
		token = next
	}
}

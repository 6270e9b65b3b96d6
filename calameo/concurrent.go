package calameo

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of in-flight requests of batch helpers.
const DefaultConcurrency = 5

// GetBooksInfos fetches several publications concurrently. Results keep the
// order of bookIDs. The first failure cancels the remaining requests and is
// returned.
func (c *Client) GetBooksInfos(ctx context.Context, bookIDs []string) ([]Publication, error) {
	if len(bookIDs) == 0 {
		return []Publication{}, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultConcurrency)

	// Each goroutine owns one slot, so no locking is needed
	books := make([]Publication, len(bookIDs))
	for i, id := range bookIDs {
		i, id := i, id
		g.Go(func() error {
			book, err := c.GetBookInfos(ctx, id)
			if err != nil {
				c.logger.Warn().
					Err(err).
					Str("book_id", id).
					Msg("Failed to get publication details")
				return err
			}
			books[i] = *book
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return books, nil
}

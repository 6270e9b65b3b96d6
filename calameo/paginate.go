package calameo

import (
	"context"
)

// pageFunc fetches one page of a listing action.
type pageFunc[T any] func(ctx context.Context, opts ListOptions) (*List[T], error)

// fetchAll drives a listing action from start 0 until start reaches the
// total reported by the latest page. At least one request is always issued.
// The first failing page stops pagination and is returned as a
// PaginationError; nothing is retried.
func fetchAll[T any](ctx context.Context, c *Client, action string, page pageFunc[T], collect func([]T)) error {
	start, step := 0, c.pageSize

	for {
		list, err := page(ctx, ListOptions{Start: start, Step: step})
		if err != nil {
			return &PaginationError{Action: action, Start: start, Err: err}
		}

		collect(list.Items)

		c.logger.Debug().
			Str("action", action).
			Int("start", start).
			Int("count", len(list.Items)).
			Int64("total", int64(list.Total)).
			Msg("Retrieved page from Calameo")

		start += step
		if int64(start) >= int64(list.Total) {
			return nil
		}
	}
}

// FetchAllAccountSubscriptions retrieves every subscription of the account.
func (c *Client) FetchAllAccountSubscriptions(ctx context.Context) ([]Subscription, error) {
	subscriptions := []Subscription{}
	err := fetchAll(ctx, c, ActionFetchAccountSubscriptions, c.FetchAccountSubscriptions, func(items []Subscription) {
		subscriptions = append(subscriptions, items...)
	})
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

// FetchAllAccountBooks retrieves every publication of the account, keyed by
// publication ID. A publication seen on several pages keeps its last version.
func (c *Client) FetchAllAccountBooks(ctx context.Context) (map[string]Publication, error) {
	books := make(map[string]Publication)
	err := fetchAll(ctx, c, ActionFetchAccountBooks, c.FetchAccountBooks, func(items []Publication) {
		for _, book := range items {
			books[book.ID] = book
		}
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

// FetchAllSubscriptionBooks retrieves every publication of a subscription,
// keyed by publication ID.
func (c *Client) FetchAllSubscriptionBooks(ctx context.Context, subscriptionID int64) (map[string]Publication, error) {
	page := func(ctx context.Context, opts ListOptions) (*List[Publication], error) {
		return c.FetchSubscriptionBooks(ctx, subscriptionID, opts)
	}

	books := make(map[string]Publication)
	err := fetchAll(ctx, c, ActionFetchSubscriptionBooks, page, func(items []Publication) {
		for _, book := range items {
			books[book.ID] = book
		}
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

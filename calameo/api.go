package calameo

import (
	"context"
)

// TestConnection verifies the credentials by fetching the account.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.GetAccountInfos(ctx)
	return err
}

// GetAccountInfos retrieves information about the account.
func (c *Client) GetAccountInfos(ctx context.Context) (*Account, error) {
	content, err := c.call(ctx, ActionGetAccountInfos, nil)
	if err != nil {
		return nil, err
	}
	return decodeItem[Account](ActionGetAccountInfos, content)
}

// FetchAccountSubscriptions retrieves one page of the account's subscriptions.
func (c *Client) FetchAccountSubscriptions(ctx context.Context, opts ListOptions) (*List[Subscription], error) {
	content, err := c.call(ctx, ActionFetchAccountSubscriptions, opts.apply(Fields{}))
	if err != nil {
		return nil, err
	}
	return decodeList[Subscription](ActionFetchAccountSubscriptions, content)
}

// FetchAccountBooks retrieves one page of the account's publications.
func (c *Client) FetchAccountBooks(ctx context.Context, opts ListOptions) (*List[Publication], error) {
	content, err := c.call(ctx, ActionFetchAccountBooks, opts.apply(Fields{}))
	if err != nil {
		return nil, err
	}
	return decodeList[Publication](ActionFetchAccountBooks, content)
}

// FetchAccountSubscribers retrieves one page of the account's subscribers.
func (c *Client) FetchAccountSubscribers(ctx context.Context, opts ListOptions) (*List[Subscriber], error) {
	content, err := c.call(ctx, ActionFetchAccountSubscribers, opts.apply(Fields{}))
	if err != nil {
		return nil, err
	}
	return decodeList[Subscriber](ActionFetchAccountSubscribers, content)
}

// GetSubscriptionInfos retrieves a subscription.
func (c *Client) GetSubscriptionInfos(ctx context.Context, subscriptionID int64) (*Subscription, error) {
	content, err := c.call(ctx, ActionGetSubscriptionInfos, Fields{"subscription_id": subscriptionID})
	if err != nil {
		return nil, err
	}
	return decodeItem[Subscription](ActionGetSubscriptionInfos, content)
}

// FetchSubscriptionBooks retrieves one page of a subscription's publications.
func (c *Client) FetchSubscriptionBooks(ctx context.Context, subscriptionID int64, opts ListOptions) (*List[Publication], error) {
	fields := opts.apply(Fields{"subscription_id": subscriptionID})
	content, err := c.call(ctx, ActionFetchSubscriptionBooks, fields)
	if err != nil {
		return nil, err
	}
	return decodeList[Publication](ActionFetchSubscriptionBooks, content)
}

// FetchSubscriptionSubscribers retrieves one page of a subscription's subscribers.
func (c *Client) FetchSubscriptionSubscribers(ctx context.Context, subscriptionID int64, opts ListOptions) (*List[Subscriber], error) {
	fields := opts.apply(Fields{"subscription_id": subscriptionID})
	content, err := c.call(ctx, ActionFetchSubscriptionSubscribers, fields)
	if err != nil {
		return nil, err
	}
	return decodeList[Subscriber](ActionFetchSubscriptionSubscribers, content)
}

// GetBookInfos retrieves a publication by its ID.
func (c *Client) GetBookInfos(ctx context.Context, bookID string) (*Publication, error) {
	content, err := c.call(ctx, ActionGetBookInfos, Fields{"book_id": bookID})
	if err != nil {
		return nil, err
	}
	return decodeItem[Publication](ActionGetBookInfos, content)
}

// ActivateBook activates a publication.
func (c *Client) ActivateBook(ctx context.Context, bookID string) error {
	return c.acknowledge(ctx, ActionActivateBook, Fields{"book_id": bookID})
}

// DeactivateBook deactivates a publication.
func (c *Client) DeactivateBook(ctx context.Context, bookID string) error {
	return c.acknowledge(ctx, ActionDeactivateBook, Fields{"book_id": bookID})
}

// DeleteBook deletes a publication.
func (c *Client) DeleteBook(ctx context.Context, bookID string) error {
	return c.acknowledge(ctx, ActionDeleteBook, Fields{"book_id": bookID})
}

// UpdateBook updates a publication's properties. Properties missing from
// fields keep their current value.
func (c *Client) UpdateBook(ctx context.Context, bookID string, fields Fields) (*Publication, error) {
	req := fields.clone()
	req["book_id"] = bookID
	content, err := c.call(ctx, ActionUpdateBook, req)
	if err != nil {
		return nil, err
	}
	return decodeItem[Publication](ActionUpdateBook, content)
}

// FetchBookTocs retrieves a publication's table of contents.
func (c *Client) FetchBookTocs(ctx context.Context, bookID string) ([]TocItem, error) {
	content, err := c.call(ctx, ActionFetchBookTocs, Fields{"book_id": bookID})
	if err != nil {
		return nil, err
	}
	return decodeSequence[TocItem](ActionFetchBookTocs, content)
}

// FetchBookComments retrieves one page of a publication's comments.
func (c *Client) FetchBookComments(ctx context.Context, bookID string, opts ListOptions) (*List[Comment], error) {
	content, err := c.call(ctx, ActionFetchBookComments, opts.apply(Fields{"book_id": bookID}))
	if err != nil {
		return nil, err
	}
	return decodeList[Comment](ActionFetchBookComments, content)
}

// RenewBookPrivateURL renews a publication's private URL and returns the
// updated publication.
func (c *Client) RenewBookPrivateURL(ctx context.Context, bookID string) (*Publication, error) {
	content, err := c.call(ctx, ActionRenewBookPrivateURL, Fields{"book_id": bookID})
	if err != nil {
		return nil, err
	}
	return decodeItem[Publication](ActionRenewBookPrivateURL, content)
}

// Publish uploads a document. fields must carry subscription_id, category,
// format and dialect.
func (c *Client) Publish(ctx context.Context, file *File, fields Fields) (*Publication, error) {
	req := fields.clone()
	req["file"] = file
	content, err := c.call(ctx, ActionPublish, req)
	if err != nil {
		return nil, err
	}
	return decodeItem[Publication](ActionPublish, content)
}

// PublishFromURL publishes a document the API downloads from url.
func (c *Client) PublishFromURL(ctx context.Context, url string, fields Fields) (*Publication, error) {
	req := fields.clone()
	req["url"] = url
	content, err := c.call(ctx, ActionPublishFromURL, req)
	if err != nil {
		return nil, err
	}
	return decodeItem[Publication](ActionPublishFromURL, content)
}

// Revise uploads a new revision of an existing publication.
func (c *Client) Revise(ctx context.Context, bookID string, file *File) (*Publication, error) {
	content, err := c.call(ctx, ActionRevise, Fields{"book_id": bookID, "file": file})
	if err != nil {
		return nil, err
	}
	return decodeItem[Publication](ActionRevise, content)
}

// GetSubscriberInfos retrieves a subscriber by login.
func (c *Client) GetSubscriberInfos(ctx context.Context, subscriptionID int64, login string) (*Subscriber, error) {
	content, err := c.call(ctx, ActionGetSubscriberInfos, Fields{
		"subscription_id": subscriptionID,
		"login":           login,
	})
	if err != nil {
		return nil, err
	}
	return decodeItem[Subscriber](ActionGetSubscriberInfos, content)
}

// AddSubscriber creates a subscriber. Optional fields such as firstname,
// lastname, email and extras are passed through.
func (c *Client) AddSubscriber(ctx context.Context, subscriptionID int64, login, password string, fields Fields) (*Subscriber, error) {
	req := fields.clone()
	req["subscription_id"] = subscriptionID
	req["login"] = login
	req["password"] = password
	content, err := c.call(ctx, ActionAddSubscriber, req)
	if err != nil {
		return nil, err
	}
	return decodeItem[Subscriber](ActionAddSubscriber, content)
}

// DeleteSubscriber removes a subscriber.
func (c *Client) DeleteSubscriber(ctx context.Context, subscriptionID int64, login string) error {
	return c.acknowledge(ctx, ActionDeleteSubscriber, Fields{
		"subscription_id": subscriptionID,
		"login":           login,
	})
}

func (c *Client) acknowledge(ctx context.Context, action string, fields Fields) error {
	content, err := c.call(ctx, action, fields)
	if err != nil {
		return err
	}
	if err := decodeStatus(action, content); err != nil {
		return err
	}
	c.logger.Info().Str("action", action).Msg("Calameo action acknowledged")
	return nil
}

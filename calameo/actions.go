package calameo

import (
	"fmt"
	"sort"
)

// Action names
const (
	ActionGetAccountInfos              = "getAccountInfos"
	ActionFetchAccountSubscriptions    = "fetchAccountSubscriptions"
	ActionFetchAccountBooks            = "fetchAccountBooks"
	ActionFetchAccountSubscribers      = "fetchAccountSubscribers"
	ActionGetSubscriptionInfos         = "getSubscriptionInfos"
	ActionFetchSubscriptionBooks       = "fetchSubscriptionBooks"
	ActionFetchSubscriptionSubscribers = "fetchSubscriptionSubscribers"
	ActionGetBookInfos                 = "getBookInfos"
	ActionActivateBook                 = "activateBook"
	ActionDeactivateBook               = "deactivateBook"
	ActionUpdateBook                   = "updateBook"
	ActionDeleteBook                   = "deleteBook"
	ActionFetchBookTocs                = "fetchBookTocs"
	ActionFetchBookComments            = "fetchBookComments"
	ActionRenewBookPrivateURL          = "renewBookPrivateUrl"
	ActionPublish                      = "publish"
	ActionRevise                       = "revise"
	ActionPublishFromURL               = "publishFromUrl"
	ActionGetSubscriberInfos           = "getSubscriberInfos"
	ActionAddSubscriber                = "addSubscriber"
	ActionDeleteSubscriber             = "deleteSubscriber"
)

// ActionSpec describes one remote action.
type ActionSpec struct {
	Name        string
	Required    []string
	Paginated   bool // accepts order, way, start and step
	Description string
}

var actionTable = map[string]ActionSpec{
	ActionGetAccountInfos: {
		Description: "Information about your account",
	},
	ActionFetchAccountSubscriptions: {
		Paginated:   true,
		Description: "Subscriptions of your account",
	},
	ActionFetchAccountBooks: {
		Paginated:   true,
		Description: "Publications of your account",
	},
	ActionFetchAccountSubscribers: {
		Paginated:   true,
		Description: "Subscribers of your account",
	},
	ActionGetSubscriptionInfos: {
		Required:    []string{"subscription_id"},
		Description: "Information about a subscription",
	},
	ActionFetchSubscriptionBooks: {
		Required:    []string{"subscription_id"},
		Paginated:   true,
		Description: "Publications of a subscription",
	},
	ActionFetchSubscriptionSubscribers: {
		Required:    []string{"subscription_id"},
		Paginated:   true,
		Description: "Subscribers of a subscription",
	},
	ActionGetBookInfos: {
		Required:    []string{"book_id"},
		Description: "Information about a publication",
	},
	ActionActivateBook: {
		Required:    []string{"book_id"},
		Description: "Activate a publication",
	},
	ActionDeactivateBook: {
		Required:    []string{"book_id"},
		Description: "Deactivate a publication",
	},
	ActionUpdateBook: {
		Required:    []string{"book_id"},
		Description: "Update a publication's properties",
	},
	ActionDeleteBook: {
		Required:    []string{"book_id"},
		Description: "Delete a publication",
	},
	ActionFetchBookTocs: {
		Required:    []string{"book_id"},
		Description: "Table of contents of a publication",
	},
	ActionFetchBookComments: {
		Required:    []string{"book_id"},
		Paginated:   true,
		Description: "Comments of a publication",
	},
	ActionRenewBookPrivateURL: {
		Required:    []string{"book_id"},
		Description: "Renew a publication's private URL",
	},
	ActionPublish: {
		Required:    []string{"file", "subscription_id", "category", "format", "dialect"},
		Description: "Publish a document",
	},
	ActionRevise: {
		Required:    []string{"book_id", "file"},
		Description: "Publish a new revision of a document",
	},
	ActionPublishFromURL: {
		Required:    []string{"url", "subscription_id", "category", "format", "dialect"},
		Description: "Publish a document fetched from a URL",
	},
	ActionGetSubscriberInfos: {
		Required:    []string{"subscription_id", "login"},
		Description: "Information about a subscriber",
	},
	ActionAddSubscriber: {
		Required:    []string{"subscription_id", "login", "password"},
		Description: "Add a subscriber to a subscription",
	},
	ActionDeleteSubscriber: {
		Required:    []string{"subscription_id", "login"},
		Description: "Delete a subscriber from a subscription",
	},
}

func init() {
	for name, spec := range actionTable {
		spec.Name = name
		actionTable[name] = spec
	}
}

// LookupAction returns the spec for a known action.
func LookupAction(name string) (ActionSpec, bool) {
	spec, ok := actionTable[name]
	return spec, ok
}

// Actions returns every known action sorted by name.
func Actions() []ActionSpec {
	specs := make([]ActionSpec, 0, len(actionTable))
	for _, spec := range actionTable {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Name < specs[j].Name
	})
	return specs
}

// validate checks that every required field is present and not empty.
func (s ActionSpec) validate(fields Fields) error {
	for _, name := range s.Required {
		v, ok := fields[name]
		if !ok || isEmptyValue(v) {
			return fmt.Errorf("calameo %s: %w: %s", s.Name, ErrMissingField, name)
		}
	}
	return nil
}

func isEmptyValue(v any) bool {
	if file, ok := asFile(v); ok {
		return file == nil || file.Path == ""
	}
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	}
	return false
}

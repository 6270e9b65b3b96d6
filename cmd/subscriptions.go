package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/calameo/filter"
)

var subscriberListFlags listFlags

// subscriptionsCmd groups the subscription commands
var subscriptionsCmd = &cobra.Command{
	Use:     "subscriptions",
	Aliases: []string{"subs"},
	Short:   "Inspect subscriptions",
}

var subscriptionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every subscription of the account",
	Args:  cobra.NoArgs,
	RunE:  runSubscriptionsList,
}

var subscriptionsInfoCmd = &cobra.Command{
	Use:   "info <subscription-id>",
	Short: "Show a subscription",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubscriptionsInfo,
}

var subscriptionsBooksCmd = &cobra.Command{
	Use:   "books <subscription-id>",
	Short: "List every publication of a subscription",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubscriptionsBooks,
}

var subscriptionsSubscribersCmd = &cobra.Command{
	Use:   "subscribers <subscription-id>",
	Short: "List the subscribers of a subscription",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubscriptionsSubscribers,
}

func init() {
	rootCmd.AddCommand(subscriptionsCmd)
	subscriptionsCmd.AddCommand(subscriptionsListCmd, subscriptionsInfoCmd, subscriptionsBooksCmd, subscriptionsSubscribersCmd)

	subscriberListFlags.register(subscriptionsSubscribersCmd)
}

func runSubscriptionsList(cmd *cobra.Command, args []string) error {
	subscriptions, err := client.FetchAllAccountSubscriptions(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get subscriptions: %w", err)
	}

	return render(cmd, subscriptions, func(w io.Writer) {
		printSubscriptions(w, subscriptions)
	})
}

func runSubscriptionsInfo(cmd *cobra.Command, args []string) error {
	id, err := parseSubscriptionID(args[0])
	if err != nil {
		return err
	}

	subscription, err := client.GetSubscriptionInfos(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get subscription: %w", err)
	}

	return render(cmd, subscription, func(w io.Writer) {
		printSubscription(w, *subscription)
	})
}

func runSubscriptionsBooks(cmd *cobra.Command, args []string) error {
	id, err := parseSubscriptionID(args[0])
	if err != nil {
		return err
	}

	books, err := client.FetchAllSubscriptionBooks(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get publications: %w", err)
	}

	sorted := filter.ApplyMap(filter.MatchAll{}, books)
	return render(cmd, sorted, func(w io.Writer) {
		printBooks(w, sorted)
	})
}

func runSubscriptionsSubscribers(cmd *cobra.Command, args []string) error {
	id, err := parseSubscriptionID(args[0])
	if err != nil {
		return err
	}
	opts, err := subscriberListFlags.options()
	if err != nil {
		return err
	}

	list, err := client.FetchSubscriptionSubscribers(cmd.Context(), id, opts)
	if err != nil {
		return fmt.Errorf("failed to get subscribers: %w", err)
	}

	return render(cmd, list, func(w io.Writer) {
		printSubscribers(w, list)
	})
}

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/calameo/calameo"
)

var (
	accountSubscriberFlags listFlags

	subscriberPassword  string
	subscriberFirstName string
	subscriberLastName  string
	subscriberEmail     string
)

// subscribersCmd groups the subscriber commands
var subscribersCmd = &cobra.Command{
	Use:   "subscribers",
	Short: "Manage subscribers",
}

var subscribersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscribers of the account",
	Args:  cobra.NoArgs,
	RunE:  runSubscribersList,
}

var subscribersInfoCmd = &cobra.Command{
	Use:   "info <subscription-id> <login>",
	Short: "Show a subscriber",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubscribersInfo,
}

var subscribersAddCmd = &cobra.Command{
	Use:   "add <subscription-id> <login>",
	Short: "Add a subscriber to a subscription",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubscribersAdd,
}

var subscribersDeleteCmd = &cobra.Command{
	Use:   "delete <subscription-id> <login>",
	Short: "Remove a subscriber from a subscription",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubscribersDelete,
}

func init() {
	rootCmd.AddCommand(subscribersCmd)
	subscribersCmd.AddCommand(subscribersListCmd, subscribersInfoCmd, subscribersAddCmd, subscribersDeleteCmd)

	accountSubscriberFlags.register(subscribersListCmd)

	subscribersAddCmd.Flags().StringVar(&subscriberPassword, "password", "", "subscriber password")
	subscribersAddCmd.Flags().StringVar(&subscriberFirstName, "firstname", "", "first name")
	subscribersAddCmd.Flags().StringVar(&subscriberLastName, "lastname", "", "last name")
	subscribersAddCmd.Flags().StringVar(&subscriberEmail, "email", "", "email address")
	_ = subscribersAddCmd.MarkFlagRequired("password")
}

func runSubscribersList(cmd *cobra.Command, args []string) error {
	opts, err := accountSubscriberFlags.options()
	if err != nil {
		return err
	}

	list, err := client.FetchAccountSubscribers(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to get subscribers: %w", err)
	}

	return render(cmd, list, func(w io.Writer) {
		printSubscribers(w, list)
	})
}

func runSubscribersInfo(cmd *cobra.Command, args []string) error {
	id, err := parseSubscriptionID(args[0])
	if err != nil {
		return err
	}

	subscriber, err := client.GetSubscriberInfos(cmd.Context(), id, args[1])
	if err != nil {
		return err
	}

	return render(cmd, subscriber, func(w io.Writer) {
		printSubscriber(w, *subscriber)
	})
}

func runSubscribersAdd(cmd *cobra.Command, args []string) error {
	id, err := parseSubscriptionID(args[0])
	if err != nil {
		return err
	}

	fields := calameo.Fields{}
	if subscriberFirstName != "" {
		fields["firstname"] = subscriberFirstName
	}
	if subscriberLastName != "" {
		fields["lastname"] = subscriberLastName
	}
	if subscriberEmail != "" {
		fields["email"] = subscriberEmail
	}

	subscriber, err := client.AddSubscriber(cmd.Context(), id, args[1], subscriberPassword, fields)
	if err != nil {
		return err
	}

	return render(cmd, subscriber, func(w io.Writer) {
		fmt.Fprintln(w, "✓ Subscriber added")
		printSubscriber(w, *subscriber)
	})
}

func runSubscribersDelete(cmd *cobra.Command, args []string) error {
	id, err := parseSubscriptionID(args[0])
	if err != nil {
		return err
	}

	if err := client.DeleteSubscriber(cmd.Context(), id, args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %s from subscription %d\n", args[1], id)
	return nil
}

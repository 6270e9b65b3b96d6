package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/calameo/book"
	"github.com/s0up4200/calameo/calameo"
)

const dateFormat = "2006-01-02"

// render prints v as indented JSON or hands the writer to table
func render(cmd *cobra.Command, v any, table func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	table(w)
	return nil
}

func printBooks(w io.Writer, books []calameo.Publication) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No publications found.")
		return
	}

	fmt.Fprintf(w, "\nFound %d publications:\n", len(books))
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, b := range books {
		printBook(w, b)
	}
}

func printBook(w io.Writer, b calameo.Publication) {
	fmt.Fprintf(w, "• %s (%s) [%s]", b.Name, b.ID, b.Status)
	if b.IsPrivate != 0 {
		fmt.Fprint(w, " [PRIVATE]")
	}
	if b.IsPublished == 0 {
		fmt.Fprint(w, " [UNPUBLISHED]")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Category: %s  Format: %s  Pages: %d  Views: %d\n",
		book.Category(b.Category).Label(), book.Format(b.Format).Label(), b.Pages, b.Views)
	if !b.Creation.IsZero() {
		fmt.Fprintf(w, "  Created: %s", b.Creation.Format(dateFormat))
		if !b.Modification.IsZero() {
			fmt.Fprintf(w, " (Modified: %s)", b.Modification.Format(dateFormat))
		}
		fmt.Fprintln(w)
	}
	if b.ViewURL != "" {
		fmt.Fprintf(w, "  URL: %s\n", b.ViewURL)
	}
}

func printSubscriptions(w io.Writer, subscriptions []calameo.Subscription) {
	if len(subscriptions) == 0 {
		fmt.Fprintln(w, "No subscriptions found.")
		return
	}

	fmt.Fprintf(w, "\nFound %d subscriptions:\n", len(subscriptions))
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, s := range subscriptions {
		printSubscription(w, s)
	}
}

func printSubscription(w io.Writer, s calameo.Subscription) {
	fmt.Fprintf(w, "• %s (ID: %d)\n", s.Name, s.ID)
	fmt.Fprintf(w, "  Publications: %d  Subscribers: %d\n", s.Books, s.Subscribers)
	if s.Description != "" {
		fmt.Fprintf(w, "  %s\n", s.Description)
	}
}

func printSubscribers(w io.Writer, list *calameo.List[calameo.Subscriber]) {
	if len(list.Items) == 0 {
		fmt.Fprintln(w, "No subscribers found.")
		return
	}

	fmt.Fprintf(w, "\nShowing %d of %d subscribers:\n", len(list.Items), list.Total)
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, s := range list.Items {
		printSubscriber(w, s)
	}
}

func printSubscriber(w io.Writer, s calameo.Subscriber) {
	fmt.Fprintf(w, "• %s", s.Login)
	if name := strings.TrimSpace(s.FirstName + " " + s.LastName); name != "" {
		fmt.Fprintf(w, " (%s)", name)
	}
	if s.IsActive == 0 {
		fmt.Fprint(w, " [INACTIVE]")
	}
	fmt.Fprintln(w)
	if s.Email != "" {
		fmt.Fprintf(w, "  Email: %s\n", s.Email)
	}
	if !s.LastLogin.IsZero() {
		fmt.Fprintf(w, "  Last login: %s\n", s.LastLogin.Format(dateFormat))
	}
}

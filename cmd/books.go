package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/calameo/calameo"
	"github.com/s0up4200/calameo/filter"
)

var (
	filterExpr     string
	preset         string
	subscriptionID int64
	noConfirm      bool
	setFields      []string

	commentListFlags listFlags
)

// booksCmd groups the publication commands
var booksCmd = &cobra.Command{
	Use:     "books",
	Aliases: []string{"book"},
	Short:   "Inspect and manage publications",
}

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List publications matching the filter criteria",
	Long: `List every publication of the account, or of one subscription, that
matches an optional filter expression or configured preset.

Example:
  calameo books list --filter 'isDone() and daysSince(Modification) > 365'`,
	Args: cobra.NoArgs,
	RunE: runBooksList,
}

var booksInfoCmd = &cobra.Command{
	Use:   "info <book-id>...",
	Short: "Show one or more publications",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBooksInfo,
}

var booksActivateCmd = &cobra.Command{
	Use:   "activate <book-id>",
	Short: "Activate a publication",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBookAction(cmd, args[0], "Activated", client.ActivateBook)
	},
}

var booksDeactivateCmd = &cobra.Command{
	Use:   "deactivate <book-id>",
	Short: "Deactivate a publication",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBookAction(cmd, args[0], "Deactivated", client.DeactivateBook)
	},
}

var booksDeleteCmd = &cobra.Command{
	Use:   "delete <book-id>",
	Short: "Delete a publication",
	Args:  cobra.ExactArgs(1),
	RunE:  runBooksDelete,
}

var booksRenewURLCmd = &cobra.Command{
	Use:   "renew-url <book-id>",
	Short: "Renew the private URL of a publication",
	Args:  cobra.ExactArgs(1),
	RunE:  runBooksRenewURL,
}

var booksUpdateCmd = &cobra.Command{
	Use:   "update <book-id>",
	Short: "Update publication properties",
	Long: `Update properties of a publication. Properties not given keep their
current value. Run "calameo options" for the accepted codes.

Example:
  calameo books update abc123 --set name="Annual report" --set comment=4`,
	Args: cobra.ExactArgs(1),
	RunE: runBooksUpdate,
}

var booksTocCmd = &cobra.Command{
	Use:   "toc <book-id>",
	Short: "Show the table of contents of a publication",
	Args:  cobra.ExactArgs(1),
	RunE:  runBooksToc,
}

var booksCommentsCmd = &cobra.Command{
	Use:   "comments <book-id>",
	Short: "List comments on a publication",
	Args:  cobra.ExactArgs(1),
	RunE:  runBooksComments,
}

func init() {
	rootCmd.AddCommand(booksCmd)
	booksCmd.AddCommand(
		booksListCmd,
		booksInfoCmd,
		booksActivateCmd,
		booksDeactivateCmd,
		booksDeleteCmd,
		booksRenewURLCmd,
		booksUpdateCmd,
		booksTocCmd,
		booksCommentsCmd,
	)

	booksListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	booksListCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	booksListCmd.Flags().Int64Var(&subscriptionID, "subscription", 0, "only list publications of this subscription")

	booksDeleteCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")
	booksUpdateCmd.Flags().StringArrayVar(&setFields, "set", nil, "property to update as key=value (repeatable)")
	commentListFlags.register(booksCommentsCmd)
}

func runBooksList(cmd *cobra.Command, args []string) error {
	expression, err := filter.Resolve(filterExpr, preset, cfg.Filter.Presets)
	if err != nil {
		return err
	}

	var f filter.Filter = filter.MatchAll{}
	if expression != "" {
		compiled, err := filter.CompileFilter(expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		f = compiled
		logger.Info().Str("filter", expression).Msg("Searching publications")
	}

	var books map[string]calameo.Publication
	if subscriptionID > 0 {
		books, err = client.FetchAllSubscriptionBooks(cmd.Context(), subscriptionID)
	} else {
		books, err = client.FetchAllAccountBooks(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to get publications: %w", err)
	}

	matches := filter.ApplyMap(f, books)
	logger.Debug().Int("total", len(books)).Int("matches", len(matches)).Msg("Filtered publications")

	return render(cmd, matches, func(w io.Writer) {
		printBooks(w, matches)
	})
}

func runBooksInfo(cmd *cobra.Command, args []string) error {
	books, err := client.GetBooksInfos(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("failed to get publications: %w", err)
	}

	return render(cmd, books, func(w io.Writer) {
		for _, b := range books {
			printBook(w, b)
		}
	})
}

func runBookAction(cmd *cobra.Command, id, done string, action func(context.Context, string) error) error {
	if err := action(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %s\n", done, id)
	return nil
}

func runBooksDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	if !noConfirm {
		fmt.Fprintf(cmd.OutOrStdout(), "Delete publication %s? This cannot be undone. [y/N]: ", id)
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if strings.ToLower(strings.TrimSpace(response)) != "y" {
			logger.Info().Str("book_id", id).Msg("Deletion cancelled")
			return nil
		}
	}

	return runBookAction(cmd, id, "Deleted", client.DeleteBook)
}

func runBooksRenewURL(cmd *cobra.Command, args []string) error {
	b, err := client.RenewBookPrivateURL(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return render(cmd, b, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Private URL renewed: %s\n", b.ViewURL)
	})
}

func runBooksUpdate(cmd *cobra.Command, args []string) error {
	if len(setFields) == 0 {
		return fmt.Errorf("nothing to update: pass at least one --set key=value")
	}
	fields, err := parseSetFlags(setFields)
	if err != nil {
		return err
	}

	b, err := client.UpdateBook(cmd.Context(), args[0], fields)
	if err != nil {
		return err
	}

	return render(cmd, b, func(w io.Writer) {
		fmt.Fprintln(w, "✓ Publication updated")
		printBook(w, *b)
	})
}

func runBooksToc(cmd *cobra.Command, args []string) error {
	toc, err := client.FetchBookTocs(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return render(cmd, toc, func(w io.Writer) {
		if len(toc) == 0 {
			fmt.Fprintln(w, "No table of contents.")
			return
		}
		for _, item := range toc {
			indent := strings.Repeat("  ", max(int(item.Level)-1, 0))
			fmt.Fprintf(w, "%s• %s (p. %d)\n", indent, item.Name, item.PageNumber)
		}
	})
}

func runBooksComments(cmd *cobra.Command, args []string) error {
	opts, err := commentListFlags.options()
	if err != nil {
		return err
	}

	list, err := client.FetchBookComments(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}

	return render(cmd, list, func(w io.Writer) {
		if len(list.Items) == 0 {
			fmt.Fprintln(w, "No comments.")
			return
		}
		fmt.Fprintf(w, "\nShowing %d of %d comments:\n", len(list.Items), list.Total)
		for _, c := range list.Items {
			fmt.Fprintf(w, "• %s (%s)\n  %s\n", c.PosterName, c.Date.Format(dateFormat), c.Text)
		}
	})
}

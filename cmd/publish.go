package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/calameo/book"
	"github.com/s0up4200/calameo/calameo"
)

var (
	publishURL          string
	publishSubscription int64
	publishCategory     string
	publishFormat       string
	publishDialect      string
	publishName         string
	publishSet          []string
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish [file]",
	Short: "Publish a document",
	Long: `Upload a local document, or let Calaméo fetch one with --url, and
publish it in a subscription.

Example:
  calameo publish report.pdf --subscription 123 --category BUSINESS --format REPORTS --dialect en`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPublish,
}

// reviseCmd represents the revise command
var reviseCmd = &cobra.Command{
	Use:   "revise <book-id> <file>",
	Short: "Upload a new revision of a publication",
	Args:  cobra.ExactArgs(2),
	RunE:  runRevise,
}

func init() {
	rootCmd.AddCommand(publishCmd, reviseCmd)

	publishCmd.Flags().StringVar(&publishURL, "url", "", "publish the document at this URL instead of a local file")
	publishCmd.Flags().Int64Var(&publishSubscription, "subscription", 0, "subscription ID")
	publishCmd.Flags().StringVar(&publishCategory, "category", "", "category code (see calameo options category)")
	publishCmd.Flags().StringVar(&publishFormat, "format", "", "format code (see calameo options format)")
	publishCmd.Flags().StringVar(&publishDialect, "dialect", "", "two letter language code")
	publishCmd.Flags().StringVar(&publishName, "name", "", "publication name")
	publishCmd.Flags().StringArrayVar(&publishSet, "set", nil, "extra property as key=value (repeatable)")

	for _, name := range []string{"subscription", "category", "format", "dialect"} {
		_ = publishCmd.MarkFlagRequired(name)
	}
}

func runPublish(cmd *cobra.Command, args []string) error {
	if (len(args) == 1) == (publishURL != "") {
		return fmt.Errorf("pass either a file or --url")
	}

	fields, err := parseSetFlags(publishSet)
	if err != nil {
		return err
	}
	for name, value := range map[string]string{
		"category": publishCategory,
		"format":   publishFormat,
	} {
		v, _ := book.Lookup(name)
		if err := v.Validate(value); err != nil {
			return err
		}
	}

	fields["subscription_id"] = publishSubscription
	fields["category"] = publishCategory
	fields["format"] = publishFormat
	fields["dialect"] = publishDialect
	if publishName != "" {
		fields["name"] = publishName
	}

	var published *calameo.Publication
	if publishURL != "" {
		logger.Info().Str("url", publishURL).Msg("Publishing from URL")
		published, err = client.PublishFromURL(cmd.Context(), publishURL, fields)
	} else {
		logger.Info().Str("file", args[0]).Msg("Uploading document")
		published, err = client.Publish(cmd.Context(), &calameo.File{Path: args[0]}, fields)
	}
	if err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}

	return render(cmd, published, func(w io.Writer) {
		fmt.Fprintln(w, "✓ Document submitted")
		printBook(w, *published)
	})
}

func runRevise(cmd *cobra.Command, args []string) error {
	logger.Info().Str("book_id", args[0]).Str("file", args[1]).Msg("Uploading revision")

	revised, err := client.Revise(cmd.Context(), args[0], &calameo.File{Path: args[1]})
	if err != nil {
		return fmt.Errorf("failed to revise: %w", err)
	}

	return render(cmd, revised, func(w io.Writer) {
		fmt.Fprintln(w, "✓ Revision submitted")
		printBook(w, *revised)
	})
}

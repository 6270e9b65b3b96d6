package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// accountCmd represents the account command
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show account information",
	Long:  `Test the API credentials and display the account they belong to.`,
	Args:  cobra.NoArgs,
	RunE:  runAccount,
}

func init() {
	rootCmd.AddCommand(accountCmd)
}

func runAccount(cmd *cobra.Command, args []string) error {
	account, err := client.GetAccountInfos(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}

	return render(cmd, account, func(w io.Writer) {
		fmt.Fprintln(w, "✓ Connection successful!")
		fmt.Fprintf(w, "\nAccount %s (ID: %d)\n", account.Name, account.ID)
		if account.City != "" || account.Country != "" {
			fmt.Fprintf(w, "- Location: %s %s\n", account.City, account.Country)
		}
		if account.WebsiteURL != "" {
			fmt.Fprintf(w, "- Website: %s\n", account.WebsiteURL)
		}
		if account.PublicURL != "" {
			fmt.Fprintf(w, "- Public page: %s\n", account.PublicURL)
		}
	})
}

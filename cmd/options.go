package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/calameo/book"
)

// optionsCmd represents the options command
var optionsCmd = &cobra.Command{
	Use:         "options [vocabulary]",
	Short:       "List the accepted publication option codes",
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{skipInit: "true"},
	RunE:        runOptions,
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, args []string) error {
	vocabularies := book.Vocabularies()
	if len(args) == 1 {
		v, ok := book.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown vocabulary %q", args[0])
		}
		vocabularies = []book.Vocabulary{v}
	}

	return render(cmd, vocabularies, func(w io.Writer) {
		for i, v := range vocabularies {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s (field: %s)\n", v.Name, v.Field)
			for _, opt := range v.Options {
				fmt.Fprintf(w, "  %-14s %s\n", opt.Code, opt.Label)
			}
		}
	})
}

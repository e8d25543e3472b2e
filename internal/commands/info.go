package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ngodocs/internal/document"
	"github.com/cleared-dev/ngodocs/internal/numwords"
)

func newKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List document kinds and their fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tTITLE\tREFERENCE\tREQUIRED\tOPTIONAL")
			for _, k := range document.Kinds() {
				var required, optional []string
				for _, f := range document.Fields(k) {
					if f.Required {
						required = append(required, f.Name)
					} else {
						optional = append(optional, f.Name)
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", k, k.Title(), k.Scheme().Pattern(),
					strings.Join(required, ","), strings.Join(optional, ","))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "Formats:")
			for _, act := range document.Actions() {
				if act.Enabled {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-5s %s\n", act.Format, act.Label)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-5s %s, locked: %s\n", act.Format, act.Label, act.Reason)
				}
			}
			return nil
		},
	}
}

func newWordsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "words <amount>",
		Short: "Spell out a rupee amount in Indian numbering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := numwords.ParseToAmount(args[0])
			if err != nil {
				return err
			}
			loc := a.composer().Locale
			fmt.Fprintln(cmd.OutOrStdout(), loc.Currency(amount.Numeral))
			fmt.Fprintln(cmd.OutOrStdout(), loc.AmountInWords(amount.Words))
			return nil
		},
	}
}

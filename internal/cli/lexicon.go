package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/wordgrid/internal/api/response"
)

func newLexiconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Lexicon commands",
	}

	cmd.AddCommand(newLexiconStatusCmd())
	cmd.AddCommand(newLexiconLookupCmd())

	return cmd
}

func newLexiconStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the server's lexicon is loaded",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.LexiconStatus

			if err := client.Get(cmd.Context(), "/api/v1/lexicon", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newLexiconLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <word>",
		Short: "Check a word against the lexicon and dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.WordLookup

			if err := client.Get(cmd.Context(), "/api/v1/lexicon/words/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

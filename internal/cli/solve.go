package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/wordgrid/internal/api/response"
	"github.com/mcoot/wordgrid/internal/dependencies/clock"
	"github.com/mcoot/wordgrid/internal/logging"
	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/services/definition"
	"github.com/mcoot/wordgrid/internal/services/finder"
	"github.com/mcoot/wordgrid/internal/services/lexicon"
	"github.com/mcoot/wordgrid/internal/storage/memory"
)

func newSolveCmd() *cobra.Command {
	var (
		lexiconPath   string
		offline       bool
		definitionURL string
		delay         time.Duration
	)

	cmd := &cobra.Command{
		Use:   "solve <row>...",
		Short: "Find words in a grid without a server",
		Long: `Solve scans a grid given as one argument per row ('.' for empty cells)
against a local wordlist.

Every lexicon word is confirmed with the online dictionary unless --offline
is set, in which case lexicon membership alone is enough.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := logging.NewCLI(cmd.ErrOrStderr(), cfg.Verbose)

			g, err := model.ParseGrid("solve", args)
			if err != nil {
				return fmt.Errorf("parse grid: %w", err)
			}

			clk := clock.New()
			store := memory.New()

			lookup := definition.Permissive()
			if !offline {
				dc := definition.DefaultConfig()
				if definitionURL != "" {
					dc.BaseURL = definitionURL
				}
				dc.Delay = delay
				lookup = definition.Cached(definition.NewClient(dc, clk, logger).LookupFunc(), store, clk, logger)
			}

			lex := lexicon.New(store, lookup, logger)
			if err := lex.LoadFromFile(ctx, lexiconPath); err != nil {
				return fmt.Errorf("load lexicon: %w", err)
			}

			result := finder.NewEngine(lex, clk, logger).Scan(ctx, g)

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(Solution{
				Grid:   response.GridFromModel(g),
				Result: response.ScanResultFromModel(result),
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&lexiconPath, "lexicon", getEnvOrDefault("WORDGRID_LEXICON", "data/words_alpha.txt"), "Wordlist file, one word per line (env: WORDGRID_LEXICON)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Accept lexicon words without a dictionary lookup")
	cmd.Flags().StringVar(&definitionURL, "definition-url", "", "Dictionary API base URL")
	cmd.Flags().DurationVar(&delay, "delay", definition.DefaultConfig().Delay, "Wait before each dictionary request")

	return cmd
}

package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/wordgrid/internal/api/request"
	"github.com/mcoot/wordgrid/internal/api/response"
)

func newGridCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Grid commands",
	}

	cmd.AddCommand(newGridCreateCmd())
	cmd.AddCommand(newGridGetCmd())
	cmd.AddCommand(newGridFillCmd())
	cmd.AddCommand(newGridSetCmd())
	cmd.AddCommand(newGridClearCmd())
	cmd.AddCommand(newGridResizeCmd())
	cmd.AddCommand(newGridDeleteCmd())
	cmd.AddCommand(newGridScanCmd())
	cmd.AddCommand(newGridResultCmd())

	return cmd
}

func gridPath(id string, parts ...string) string {
	path := "/api/v1/grids/" + url.PathEscape(id)
	for _, p := range parts {
		path += "/" + p
	}
	return path
}

// parseDimensions parses a row/col pair, used for both positions and sizes
func parseDimensions(rowArg, colArg string) (int, int, error) {
	row, err := strconv.Atoi(rowArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q: %w", rowArg, err)
	}
	col, err := strconv.Atoi(colArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q: %w", colArg, err)
	}
	return row, col, nil
}

func newGridCreateCmd() *cobra.Command {
	var rows, cols int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.CreateGridRequest{Rows: rows, Cols: cols}
			var result response.Grid

			if err := client.Post(cmd.Context(), "/api/v1/grids", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 0, "Number of rows (server default when unset)")
	cmd.Flags().IntVar(&cols, "cols", 0, "Number of columns (defaults to rows)")

	return cmd
}

func newGridGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Grid

			if err := client.Get(cmd.Context(), gridPath(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGridFillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fill <id> <row>...",
		Short: "Replace a grid's letters, one argument per row ('.' for empty)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.FillRequest{Rows: args[1:]}
			var result response.Grid

			if err := client.Put(cmd.Context(), gridPath(args[0], "letters"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGridSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <row> <col> <value>",
		Short: "Set one cell; non-letters clear it",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := parseDimensions(args[1], args[2])
			if err != nil {
				return err
			}

			req := request.SetCellRequest{Value: args[3]}
			var result response.Cell

			path := gridPath(args[0], "cells", strconv.Itoa(row), strconv.Itoa(col))
			if err := client.Put(cmd.Context(), path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGridClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <id> <row> <col>",
		Short: "Clear one cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := parseDimensions(args[1], args[2])
			if err != nil {
				return err
			}

			path := gridPath(args[0], "cells", strconv.Itoa(row), strconv.Itoa(col))
			if err := client.Delete(cmd.Context(), path); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Cleared (%d,%d)", row, col))
			return nil
		},
	}
}

func newGridResizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resize <id> <rows> <cols>",
		Short: "Resize a grid, keeping letters that still fit",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, cols, err := parseDimensions(args[1], args[2])
			if err != nil {
				return err
			}

			req := request.ResizeRequest{Rows: rows, Cols: cols}
			var result response.Grid

			if err := client.Post(cmd.Context(), gridPath(args[0], "resize"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGridDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), gridPath(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("Deleted grid " + args[0])
			return nil
		},
	}
}

func newGridScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <id>",
		Short: "Scan a grid for words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.ScanResult

			if err := client.Post(cmd.Context(), gridPath(args[0], "scan"), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGridResultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result <id>",
		Short: "Show the last scan of a grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.ScanResult

			if err := client.Get(cmd.Context(), gridPath(args[0], "scan"), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

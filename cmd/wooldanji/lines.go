package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wooldanji/console/domain/line"
)

func linesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lines",
		Short: "Parse and format building line text",
		Long: `Parse and format building line text without touching the database.

Line text is a comma-separated list of tokens. Each token is a single line
number or a range written "a~b" (or "a-b"), with numbers between 1 and 99.`,
	}
	cmd.AddCommand(linesParseCmd())
	cmd.AddCommand(linesFormatCmd())
	return cmd
}

func linesParseCmd() *cobra.Command {
	var merged bool

	cmd := &cobra.Command{
		Use:   "parse TEXT",
		Short: "Parse line text into groups",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			if merged {
				return writeJSON(cmd, map[string]any{"set": nonNilInts(line.ParseSet(text))})
			}

			parsed := line.Parse(text)
			labels := make([]string, len(parsed.Groups))
			for i, g := range parsed.Groups {
				labels[i] = line.Format(g)
			}
			groups := parsed.Groups
			if groups == nil {
				groups = [][]int{}
			}
			rejected := parsed.Rejected
			if rejected == nil {
				rejected = []string{}
			}
			return writeJSON(cmd, map[string]any{
				"groups":   groups,
				"labels":   labels,
				"rejected": rejected,
			})
		},
	}

	cmd.Flags().BoolVar(&merged, "set", false, "Read the text as one merged set, as when replacing a group")

	return cmd
}

func linesFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format N...",
		Short: "Format line numbers for display",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers := make([]int, 0, len(args))
			for _, arg := range args {
				n, err := strconv.Atoi(strings.TrimSpace(arg))
				if err != nil {
					return fmt.Errorf("line %q is not a number", arg)
				}
				numbers = append(numbers, n)
			}
			if !line.Valid(numbers) {
				return fmt.Errorf("line numbers must be between %d and %d", line.MinLine, line.MaxLine)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), line.Format(numbers))
			return err
		},
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}

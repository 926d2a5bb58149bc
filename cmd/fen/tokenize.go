package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fen/internal/diagfmt"
	"fen/internal/driver"
	"fen/internal/project"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.fen",
	Short: "Tokenize a fen source file",
	Long:  `Tokenize breaks a fen source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if maxDiagnostics <= 0 {
		maxDiagnostics = project.DefaultMaxDiagnostics
	}

	fileSet, tokens, bag, err := driver.TokenizeFile(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if bag.Len() > 0 {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, fileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, tokens, fileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "fen",
	Short: "fen language compiler front end",
	Long:  `fen parses, resolves and checks fen modules`,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Версия для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to collect (0 = manifest or default)")

	if err := rootCmd.Execute(); err != nil {
		if err != errCheckFailed {
			rootCmd.PrintErrln("Error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, out *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(out))
}

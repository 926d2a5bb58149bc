package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fen/internal/diagfmt"
	"fen/internal/driver"
	"fen/internal/project"
)

// errCheckFailed — маркер «диагностики уже напечатаны», без текста от cobra.
var errCheckFailed = errors.New("check failed")

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Parse and resolve every fen module under a directory",
	Long: `Check discovers *.fen files, parses them in parallel, builds the module
graph and renames every module, reporting all diagnostics found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("no-cache", false, "disable the module disk cache")
}

// checkOptions собирает опции конвейера из флагов и манифеста.
// Явный флаг --max-diagnostics сильнее fen.toml.
func checkOptions(cmd *cobra.Command, dir string) (driver.Options, error) {
	jobs, _ := cmd.Flags().GetInt("jobs")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	opts := driver.Options{
		Dir:            dir,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		NoCache:        noCache,
	}

	manifest, ok, err := project.LoadFromDir(dir)
	if err != nil {
		return opts, err
	}
	if ok {
		if maxDiagnostics <= 0 {
			opts.MaxDiagnostics = manifest.Check.MaxDiagnostics
		}
		if !manifest.Check.Cache {
			opts.NoCache = true
		}
	}
	return opts, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	format, _ := cmd.Flags().GetString("format")

	opts, err := checkOptions(cmd, dir)
	if err != nil {
		return err
	}
	res, err := driver.Check(cmd.Context(), opts)
	if err != nil {
		return err
	}

	bag := res.Merged()
	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			ShowNotes: true,
		})
	case "json":
		if err := diagfmt.JSON(os.Stdout, bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if res.HasErrors() {
		return errCheckFailed
	}
	if format == "pretty" {
		fmt.Fprintf(os.Stdout, "checked %d files", len(res.Files))
		if res.CacheHits > 0 {
			fmt.Fprintf(os.Stdout, " (%d from cache)", res.CacheHits)
		}
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

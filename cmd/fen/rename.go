package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"fen/internal/diagfmt"
	"fen/internal/driver"
	"fen/internal/names"
)

var renameCmd = &cobra.Command{
	Use:   "rename [dir]",
	Short: "Run the pipeline up to renaming and optionally dump the result",
	Long: `Rename runs the same pipeline as check, always bypassing the disk cache
so that every module's renamed tree is materialized. With --emit each renamed
module is pretty-printed with its unique binder identities.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRename,
}

func init() {
	renameCmd.Flags().Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	renameCmd.Flags().Bool("emit", false, "print each renamed module")
}

func runRename(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	emit, _ := cmd.Flags().GetBool("emit")

	opts, err := checkOptions(cmd, dir)
	if err != nil {
		return err
	}
	// Кэш пропускает неизменённые модули мимо renamer-а; здесь нужны все
	opts.NoCache = true

	res, err := driver.Check(cmd.Context(), opts)
	if err != nil {
		return err
	}

	bag := res.Merged()
	diagfmt.Pretty(os.Stderr, bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowNotes: true,
	})

	if emit {
		mods := make([]string, 0, len(res.Renamed))
		for name := range res.Renamed {
			mods = append(mods, string(name))
		}
		sort.Strings(mods)
		for i, name := range mods {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			diagfmt.RenamedModule(os.Stdout, res.Renamed[names.ModuleName(name)])
		}
	}

	if res.HasErrors() {
		return errCheckFailed
	}
	return nil
}

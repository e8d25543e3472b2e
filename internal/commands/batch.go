package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ngodocs/internal/batch"
	"github.com/cleared-dev/ngodocs/internal/document"
)

func newBatchCommand(a *app) *cobra.Command {
	var outDir string
	var workers int

	cmd := &cobra.Command{
		Use:   "batch <kind> <file.csv|file.xlsx>",
		Short: "Compose one document per spreadsheet row",
		Long: `Compose one document per spreadsheet row.

The first row holds field names (see "ngodocs kinds"). Every row gets its
own reference code. Rows with missing or invalid fields are reported and
skipped. Each run appends to manifest.csv in the output directory and
replaces the documents an earlier run wrote there.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := document.ParseKind(args[0])
			if err != nil {
				return err
			}
			if workers <= 0 {
				workers = a.cfg.Batch.Workers
			}
			return a.runBatch(cmd, k, args[1], outDir, workers)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "out", "output directory")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent rows (default from config)")

	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, k document.Kind, path, outDir string, workers int) error {
	rd, err := batch.DefaultRegistry().ForPath(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := rd.Read(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	a.log.Debug("read rows", "path", path, "rows", len(rows))

	runner := &batch.Runner{
		Composer: a.composer(),
		Gen:      a.gen,
		Workers:  workers,
		Prefill:  a.prefill(k),
		Now:      a.now,
		Log:      a.log,
	}
	results, err := runner.Run(cmd.Context(), k, rows)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, res := range results {
		switch {
		case res.Err != nil:
			fmt.Fprintf(out, "error: %v\n", res.Err)
		case res.Preview.NotReady != nil:
			fmt.Fprintf(out, "line %d: %s\n", res.Row.Line, res.Preview.NotReady)
		}
	}

	sum, err := batch.WriteAll(outDir, results, a.now())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d %s document(s) to %s (%d not ready, %d failed)\n",
		sum.Written, k, outDir, sum.NotReady, sum.Failed)
	return nil
}

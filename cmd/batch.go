package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/fetcher"
	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/research"
)

var (
	batchFile          string
	batchMaxConcurrent int
	batchDelayMillis   int
)

var batchCmd = &cobra.Command{
	Use:   "batch [company names...]",
	Short: "Batch research companies from arguments or a CSV/XLSX file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		inputs, err := loadBatchInputs(args)
		if err != nil {
			return err
		}
		if len(inputs) == 0 {
			return eris.New("batch: no companies to research")
		}

		zap.L().Info("batch: starting",
			zap.Int("companies", len(inputs)),
			zap.Int("max_concurrent", batchMaxConcurrent),
		)

		r := newResearcher()
		results := r.BatchResearch(ctx, inputs, research.BatchOptions{
			MaxConcurrent: batchMaxConcurrent,
			Delay:         time.Duration(batchDelayMillis) * time.Millisecond,
		})

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

// loadBatchInputs reads companies from positional args or --file.
func loadBatchInputs(args []string) ([]model.CompanyInput, error) {
	if batchFile == "" {
		inputs := make([]model.CompanyInput, 0, len(args))
		for _, name := range args {
			inputs = append(inputs, model.CompanyInput{Name: name})
		}
		return inputs, nil
	}

	if strings.HasSuffix(strings.ToLower(batchFile), ".xlsx") {
		return fetcher.ReadXLSX(batchFile)
	}

	f, err := os.Open(batchFile)
	if err != nil {
		return nil, eris.Wrap(err, "batch: open input file")
	}
	defer func() { _ = f.Close() }()

	return fetcher.ReadCSV(f)
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "CSV or XLSX file with name,website columns")
	batchCmd.Flags().IntVar(&batchMaxConcurrent, "max-concurrent", 0, "max companies researched at once (0 = config default)")
	batchCmd.Flags().IntVar(&batchDelayMillis, "delay", 0, "delay between chunks in milliseconds (0 = config default)")
	rootCmd.AddCommand(batchCmd)
}

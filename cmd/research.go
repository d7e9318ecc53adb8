package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/prospect-cli/internal/model"
)

var researchWebsite string

var researchCmd = &cobra.Command{
	Use:   "research <company name>",
	Short: "Research and qualify a single company",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		for _, a := range args[1:] {
			name += " " + a
		}

		r := newResearcher()
		result, err := r.Research(cmd.Context(), model.CompanyInput{
			Name:    name,
			Website: researchWebsite,
		})
		if err != nil {
			return eris.Wrap(err, "research")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	researchCmd.Flags().StringVar(&researchWebsite, "website", "", "known website URL (skips resolution)")
	rootCmd.AddCommand(researchCmd)
}

package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/outreach"
	"github.com/sells-group/prospect-cli/pkg/anthropic"
)

var (
	outreachWebsite string
	outreachSend    bool
)

var outreachCmd = &cobra.Command{
	Use:   "outreach <company name>",
	Short: "Research a company and compose a personalized outreach email",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if cfg.Anthropic.Key == "" {
			return eris.New("outreach: anthropic.key is required")
		}

		name := args[0]
		for _, a := range args[1:] {
			name += " " + a
		}

		r := newResearcher()
		result, err := r.Research(ctx, model.CompanyInput{Name: name, Website: outreachWebsite})
		if err != nil {
			return eris.Wrap(err, "outreach: research")
		}

		contact, ok := bestContact(result.Contacts)
		if !ok {
			return eris.New("outreach: no outreach-ready contact found; manual research required")
		}

		writer := outreach.NewCopywriter(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model)
		draft, err := writer.Compose(ctx, result, contact)
		if err != nil {
			return eris.Wrap(err, "outreach: compose")
		}

		if outreachSend {
			if cfg.Mail.From == "" {
				return eris.New("outreach: mail.from is required to send")
			}
			mailer, err := outreach.NewSESMailer(ctx, cfg.Mail.Region, cfg.Mail.From)
			if err != nil {
				return err
			}
			if err := mailer.Send(ctx, contact.Email, draft.Subject, draft.Body); err != nil {
				return err
			}
			zap.L().Info("outreach: sent",
				zap.String("company", name),
				zap.String("to", contact.Email),
			)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"contact": contact,
			"email":   draft,
			"sent":    outreachSend,
		})
	},
}

// bestContact picks the highest-quality contact that is cleared for outreach.
// The list is already sorted descending by quality score.
func bestContact(contacts []model.Contact) (model.Contact, bool) {
	for _, c := range contacts {
		if c.RecommendedForOutreach {
			return c, true
		}
	}
	return model.Contact{}, false
}

func init() {
	outreachCmd.Flags().StringVar(&outreachWebsite, "website", "", "known website URL (skips resolution)")
	outreachCmd.Flags().BoolVar(&outreachSend, "send", false, "send the email via SES after composing")
	rootCmd.AddCommand(outreachCmd)
}

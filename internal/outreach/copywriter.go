// Package outreach turns research results into personalized email copy and
// sends it through an injected mail transport.
package outreach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/pkg/anthropic"
)

const copySystemPrompt = `You write short, personalized B2B cold outreach emails. Respond with a valid JSON object: {"subject": "<subject line>", "body": "<email body>"}. Keep the body under 120 words, reference the prospect's actual business, and end with a single low-friction question.`

const copyUserPrompt = `Company: %s
Website: %s
Qualification: %s (score %d/120)
Platform category: %s
Strengths: %s
Email hooks: %s
Recipient: %s (%s)

Write the outreach email.`

// EmailCopy is the fixed response contract of the copywriter.
type EmailCopy struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Copywriter generates outreach copy from research results via the LLM.
type Copywriter struct {
	client anthropic.Client
	model  string
}

// NewCopywriter creates a Copywriter using the given model.
func NewCopywriter(client anthropic.Client, model string) *Copywriter {
	return &Copywriter{client: client, model: model}
}

// Compose writes email copy for the given contact. The contact should be one
// of the result's recommended contacts; placeholders are rejected.
func (c *Copywriter) Compose(ctx context.Context, result *model.ResearchResult, contact model.Contact) (*EmailCopy, error) {
	if contact.IsPlaceholder() {
		return nil, eris.New("copywriter: cannot compose for a placeholder contact")
	}

	prompt := fmt.Sprintf(copyUserPrompt,
		result.Company.Name,
		result.Company.Website,
		result.Recommendation,
		result.Scoring.TotalScore,
		result.Company.Analysis.Platform.Type,
		strings.Join(result.Insights.Strengths, "; "),
		strings.Join(result.Insights.EmailHooks, "; "),
		contact.Name,
		contact.Title,
	)

	resp, err := c.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     c.model,
		MaxTokens: 1024,
		System:    copySystemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "copywriter: create message")
	}

	var draft EmailCopy
	if err := json.Unmarshal([]byte(anthropic.CleanJSON(anthropic.Text(resp))), &draft); err != nil {
		return nil, eris.Wrap(err, "copywriter: parse response json")
	}
	if draft.Subject == "" || draft.Body == "" {
		return nil, eris.New("copywriter: incomplete email copy")
	}

	return &draft, nil
}

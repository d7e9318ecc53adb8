// Package assist interprets natural-language commands into structured
// research actions via the LLM, under a fixed JSON contract.
package assist

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/pkg/anthropic"
)

const interpretSystemPrompt = `Interpret sales-prospecting commands into exactly one action. Valid actions: research_company, batch_research, show_result, compose_email, unknown. Respond with a valid JSON object: {"action": "<action>", "company": "<company name or empty>", "count": <number or 0>}`

// Action is a structured command produced by the interpreter.
type Action struct {
	Action  string `json:"action"`
	Company string `json:"company,omitempty"`
	Count   int    `json:"count,omitempty"`
}

var validActions = map[string]bool{
	"research_company": true,
	"batch_research":   true,
	"show_result":      true,
	"compose_email":    true,
	"unknown":          true,
}

// Interpreter translates free-text commands into Actions.
type Interpreter struct {
	client anthropic.Client
	model  string
}

// NewInterpreter creates an Interpreter using the given model.
func NewInterpreter(client anthropic.Client, model string) *Interpreter {
	return &Interpreter{client: client, model: model}
}

// Interpret parses a user command. Unparseable or out-of-contract responses
// degrade to the "unknown" action rather than erroring.
func (i *Interpreter) Interpret(ctx context.Context, command string) (Action, error) {
	if strings.TrimSpace(command) == "" {
		return Action{Action: "unknown"}, nil
	}

	resp, err := i.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     i.model,
		MaxTokens: 256,
		System:    interpretSystemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: command},
		},
	})
	if err != nil {
		return Action{}, eris.Wrap(err, "interpret: create message")
	}

	var action Action
	if err := json.Unmarshal([]byte(anthropic.CleanJSON(anthropic.Text(resp))), &action); err != nil {
		return Action{Action: "unknown"}, nil
	}

	action.Action = strings.ToLower(strings.TrimSpace(action.Action))
	if !validActions[action.Action] {
		action.Action = "unknown"
	}

	return action, nil
}

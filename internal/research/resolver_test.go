package research

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/prospect-cli/internal/scrape"
)

func newTestResolver() *Resolver {
	return NewResolver(scrape.NewClient("test-agent"), time.Second)
}

func TestResolve_AliasTable(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Bubble", "https://bubble.io"},
		{"Bubble Inc.", "https://bubble.io"},
		{"monday.com", "https://monday.com"},
		{"Monday.com Ltd", "https://monday.com"},
		{"Webflow", "https://webflow.com"},
		{"NOTION", "https://notion.so"},
		{"Glide", "https://glideapps.com"},
	}

	r := newTestResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Alias hits never touch the network.
			assert.Equal(t, tt.want, r.Resolve(context.Background(), tt.name))
		})
	}
}

func TestResolve_EmptyTokenFailsCleanly(t *testing.T) {
	r := newTestResolver()
	// Nothing left after normalization, so no domains can be guessed.
	assert.Equal(t, "", r.Resolve(context.Background(), "!!! ???"))
}

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Acme Corp", "acmecorp"},
		{"Acme, Inc.", "acmeinc"},
		{"ACME-42", "acme42"},
		{"  spaced  out  ", "spacedout"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeToken(tt.input))
		})
	}
}

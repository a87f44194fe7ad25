package categorization

import (
	"context"
	"strings"
)

// UncategorizedLabel marks rows no rule matched.
const UncategorizedLabel = "Uncategorized"

// Categorizer assigns a category to one record description.
type Categorizer interface {
	Categorize(ctx context.Context, description string) (string, error)
}

type rule struct {
	category string
	keywords []string
}

// KeywordCategorizer maps descriptions to categories by keyword match.
// First matching rule wins.
type KeywordCategorizer struct {
	rules []rule
}

var _ Categorizer = (*KeywordCategorizer)(nil)

// NewKeywordCategorizer returns the default rule set.
func NewKeywordCategorizer() *KeywordCategorizer {
	return &KeywordCategorizer{rules: []rule{
		{category: "Infrastructure", keywords: []string{"server", "database", "network", "timeout", "disk", "cpu", "memory", "dns"}},
		{category: "Access Management", keywords: []string{"login", "password", "access", "permission", "locked", "credential", "mfa"}},
		{category: "Application", keywords: []string{"application", "bug", "crash", "error", "exception", "ui", "page"}},
		{category: "Billing", keywords: []string{"invoice", "payment", "billing", "charge", "refund", "po "}},
		{category: "Integration", keywords: []string{"api", "webhook", "sftp", "feed", "sync", "interface"}},
	}}
}

func (k *KeywordCategorizer) Categorize(ctx context.Context, description string) (string, error) {
	lower := strings.ToLower(description)
	for _, r := range k.rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category, nil
			}
		}
	}
	return UncategorizedLabel, nil
}

package mockserver

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// IntentRule tags a message with Name when any keyword appears in it.
type IntentRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Reply    string   `yaml:"reply"`
}

// Fallback is used when no rule matches.
type Fallback struct {
	Name  string `yaml:"name"`
	Reply string `yaml:"reply"`
}

// Pricing holds the quote settings.
type Pricing struct {
	Currency         string `yaml:"currency"`
	DefaultSeries    string `yaml:"default_series"`
	MissingSizeReply string `yaml:"missing_size_reply"`
	QuoteReply       string `yaml:"quote_reply"`
}

// Series is a frame series with its base price per square metre.
type Series struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	PricePerSqm float64 `yaml:"price_per_sqm"`
}

// Rules is the whole rules document.
type Rules struct {
	Intents  []IntentRule `yaml:"intents"`
	Fallback Fallback     `yaml:"fallback"`
	Pricing  Pricing      `yaml:"pricing"`
	Series   []Series     `yaml:"series"`
}

// Match is one tagged intent with the keywords that triggered it.
type Match struct {
	Intent string
	Hits   []string
}

// DefaultRules returns the embedded rule set.
func DefaultRules() (Rules, error) {
	return ParseRules(defaultRules)
}

// LoadRules reads rules from path, or the embedded set when path is empty.
func LoadRules(path string) (Rules, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultRules()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes and validates a YAML rules document.
func ParseRules(data []byte) (Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

// Validate checks that the rules can answer every request.
func (r Rules) Validate() error {
	if r.Fallback.Name == "" {
		return fmt.Errorf("rules: fallback.name is required")
	}
	for i, rule := range r.Intents {
		if rule.Name == "" {
			return fmt.Errorf("rules: intents[%d] has no name", i)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("rules: intent %q has no keywords", rule.Name)
		}
	}
	if len(r.Series) == 0 {
		return fmt.Errorf("rules: at least one series is required")
	}
	for _, s := range r.Series {
		if s.PricePerSqm <= 0 {
			return fmt.Errorf("rules: series %q needs a positive price_per_sqm", s.ID)
		}
	}
	if _, ok := r.FindSeries(r.Pricing.DefaultSeries); !ok {
		return fmt.Errorf("rules: default_series %q is not defined", r.Pricing.DefaultSeries)
	}
	return nil
}

// Tag returns every intent whose keywords occur in message, in rule order.
// Matching is case-insensitive substring search.
func (r Rules) Tag(message string) []Match {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return nil
	}
	var matches []Match
	for _, rule := range r.Intents {
		var hits []string
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				hits = append(hits, kw)
			}
		}
		if len(hits) > 0 {
			matches = append(matches, Match{Intent: rule.Name, Hits: hits})
		}
	}
	return matches
}

// Reply returns the canned reply for intent.
func (r Rules) Reply(intent string) string {
	for _, rule := range r.Intents {
		if rule.Name == intent {
			return rule.Reply
		}
	}
	return r.Fallback.Reply
}

// FindSeries looks a series up by id.
func (r Rules) FindSeries(id string) (Series, bool) {
	for _, s := range r.Series {
		if s.ID == id {
			return s, true
		}
	}
	return Series{}, false
}

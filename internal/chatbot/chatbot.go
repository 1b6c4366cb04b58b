package chatbot

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

var ErrEmptyMessage = errors.New("message is required")

const (
	condHasResume = "has_resume"
	condNoResume  = "no_resume"
)

type Action struct {
	Type   string `yaml:"type" json:"type"`
	Target string `yaml:"target" json:"target"`
	Label  string `yaml:"label" json:"label"`
}

type Reply struct {
	Text        string   `yaml:"text" json:"response"`
	Suggestions []string `yaml:"suggestions" json:"suggestions"`
	Actions     []Action `yaml:"actions" json:"actions,omitempty"`
}

type Rule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	When     string   `yaml:"when"`
	Response Reply    `yaml:"response"`
}

// Context is what a rule may look at besides the message itself.
type Context struct {
	FirstName string
	HasResume bool
}

type Bot struct {
	rules    []Rule
	fallback Reply
}

type ruleFile struct {
	Rules    []Rule `yaml:"rules"`
	Fallback Reply  `yaml:"fallback"`
}

// New builds a bot from the embedded rule set.
func New() (*Bot, error) {
	return Parse(defaultRules)
}

// Parse builds a bot from a YAML rule document.
func Parse(doc []byte) (*Bot, error) {
	var f ruleFile
	if err := yaml.Unmarshal(doc, &f); err != nil {
		return nil, fmt.Errorf("failed to parse chatbot rules: %w", err)
	}
	if strings.TrimSpace(f.Fallback.Text) == "" {
		return nil, errors.New("chatbot rules: fallback text is required")
	}
	for i := range f.Rules {
		r := &f.Rules[i]
		if len(r.Keywords) == 0 {
			return nil, fmt.Errorf("chatbot rule %q has no keywords", r.Name)
		}
		switch r.When {
		case "", condHasResume, condNoResume:
		default:
			return nil, fmt.Errorf("chatbot rule %q: unknown condition %q", r.Name, r.When)
		}
		for j, kw := range r.Keywords {
			r.Keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}
	return &Bot{rules: f.Rules, fallback: f.Fallback}, nil
}

// Respond answers a message with the first matching rule, or the fallback.
func (b *Bot) Respond(message string, c Context) (Reply, error) {
	if strings.TrimSpace(message) == "" {
		return Reply{}, ErrEmptyMessage
	}

	words := tokenize(message)
	for _, r := range b.rules {
		if !r.holds(c) || !r.mentioned(words) {
			continue
		}
		return render(r.Response, c), nil
	}
	return render(b.fallback, c), nil
}

func (r Rule) holds(c Context) bool {
	switch r.When {
	case condHasResume:
		return c.HasResume
	case condNoResume:
		return !c.HasResume
	default:
		return true
	}
}

func (r Rule) mentioned(words map[string]struct{}) bool {
	for _, kw := range r.Keywords {
		if _, ok := words[kw]; ok {
			return true
		}
	}
	return false
}

func tokenize(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		out[w] = struct{}{}
	}
	return out
}

func render(r Reply, c Context) Reply {
	name := strings.TrimSpace(c.FirstName)
	if name == "" {
		name = "there"
	}
	out := Reply{
		Text:        strings.ReplaceAll(r.Text, "{{first_name}}", name),
		Suggestions: append([]string{}, r.Suggestions...),
		Actions:     append([]Action{}, r.Actions...),
	}
	return out
}

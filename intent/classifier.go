package intent

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/room4-2/frontdesk/domain"
)

type compiledRule struct {
	tag      domain.IntentTag
	keywords *regexp.Regexp
	patterns []*regexp.Regexp
	requires *regexp.Regexp
}

// Classifier splits utterances into sub-queries and tags each with an intent.
// It is total: text that matches no rule is general-knowledge.
type Classifier struct {
	rules []compiledRule
}

// NewClassifier compiles an ordered rule table.
func NewClassifier(rules []Rule) (*Classifier, error) {
	c := &Classifier{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		cr := compiledRule{tag: r.Tag}
		if len(r.Keywords) > 0 {
			cr.keywords = phraseRegexp(r.Keywords)
		}
		if len(r.Requires) > 0 {
			cr.requires = phraseRegexp(r.Requires)
		}
		for _, p := range r.Patterns {
			re, err := regexp.Compile(`(?i)` + p)
			if err != nil {
				return nil, fmt.Errorf("rule %s: invalid pattern %q: %w", r.Tag, p, err)
			}
			cr.patterns = append(cr.patterns, re)
		}
		c.rules = append(c.rules, cr)
	}
	return c, nil
}

// Default returns a classifier over DefaultRules.
func Default() *Classifier {
	c, err := NewClassifier(DefaultRules())
	if err != nil {
		panic(err)
	}
	return c
}

// Classify splits the utterance and resolves every sub-query in ordinal order.
func (c *Classifier) Classify(u domain.Utterance) []domain.ClassifiedQuery {
	parts := Split(u.Text)
	out := make([]domain.ClassifiedQuery, 0, len(parts))
	for i, p := range parts {
		out = append(out, domain.ClassifiedQuery{
			SubQuery: domain.SubQuery{Ordinal: i + 1, Text: p},
			Intent:   c.Resolve(p),
		})
	}
	return out
}

// ClassifyText is Classify for a bare string.
func (c *Classifier) ClassifyText(text string) []domain.ClassifiedQuery {
	return c.Classify(domain.Utterance{Text: text, CapturedAt: time.Now()})
}

// Resolve tags a single sub-query using the first matching rule.
func (c *Classifier) Resolve(text string) domain.Intent {
	text = normalize(text)
	tag := domain.IntentGeneralKnowledge
	for _, r := range c.rules {
		if r.match(text) {
			tag = r.tag
			break
		}
	}
	return domain.Intent{Tag: tag, Slots: extractSlots(tag, text)}
}

func (r compiledRule) match(text string) bool {
	hit := r.keywords != nil && r.keywords.MatchString(text)
	if !hit {
		for _, p := range r.patterns {
			if patternHit(p, text) {
				hit = true
				break
			}
		}
	}
	if !hit {
		return false
	}
	return r.requires == nil || r.requires.MatchString(text)
}

func patternHit(p *regexp.Regexp, text string) bool {
	for _, m := range p.FindAllStringSubmatch(text, -1) {
		if len(m) < 2 || !notAName[strings.ToLower(m[1])] {
			return true
		}
	}
	return false
}

func phraseRegexp(phrases []string) *regexp.Regexp {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(p), ` `, `\s+`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

var spaceRun = regexp.MustCompile(`\s+`)

func normalize(text string) string {
	text = strings.NewReplacer("’", "'", "‘", "'").Replace(text)
	return strings.TrimSpace(spaceRun.ReplaceAllString(text, " "))
}

// notAName holds words that can follow a "meet"/"looking for" verb without
// being a person.
var notAName = map[string]bool{
	"the": true, "a": true, "an": true, "my": true, "your": true, "our": true,
	"his": true, "her": true, "their": true, "some": true, "someone": true,
	"somebody": true, "anyone": true, "anybody": true, "you": true, "me": true,
	"him": true, "them": true, "it": true, "this": true, "that": true,
	"there": true, "here": true, "where": true, "what": true, "how": true,
	"us": true, "again": true, "later": true, "soon": true, "around": true,
	"if": true, "whether": true, "to": true, "in": true, "on": true, "at": true,
}

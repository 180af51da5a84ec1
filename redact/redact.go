package redact

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/sonnes/logboard/core"
)

// Config controls which rules the Redactor applies.
type Config struct {
	Secrets    bool
	PII        bool
	ExtraRules []Rule
	Allowlist  []string // regex patterns to skip
}

// ParseKinds builds a Config from rule kind names ("secrets", "pii").
func ParseKinds(kinds []string) (Config, error) {
	var cfg Config
	for _, k := range kinds {
		switch k {
		case "secrets":
			cfg.Secrets = true
		case "pii":
			cfg.PII = true
		default:
			return Config{}, fmt.Errorf("unknown redaction rule %q", k)
		}
	}
	return cfg, nil
}

// Enabled reports whether the config selects any rule.
func (c Config) Enabled() bool {
	return c.Secrets || c.PII || len(c.ExtraRules) > 0
}

// Redactor masks sensitive values in every log source of a snapshot.
type Redactor struct {
	rules     []Rule
	allowlist []*regexp.Regexp
}

// New creates a Redactor from the given config.
func New(cfg Config) *Redactor {
	var rules []Rule
	if cfg.Secrets {
		rules = append(rules, SecretRules()...)
	}
	if cfg.PII {
		rules = append(rules, PIIRules()...)
	}
	rules = append(rules, cfg.ExtraRules...)

	allowlist := make([]*regexp.Regexp, 0, len(cfg.Allowlist))
	for _, pattern := range cfg.Allowlist {
		if re, err := regexp.Compile(pattern); err == nil {
			allowlist = append(allowlist, re)
		}
	}

	return &Redactor{rules: rules, allowlist: allowlist}
}

// Transform returns a copy of s with every match replaced. s is not modified.
func (r *Redactor) Transform(s *core.Snapshot) (*core.Snapshot, error) {
	if len(r.rules) == 0 {
		return s, nil
	}
	return s.Map(func(src core.Source) core.Source {
		src.Content = r.redactString(src.Content)
		return src
	}), nil
}

// redactString applies all rules to s. Overlapping matches resolve to
// earliest start, then longest. Allowlisted values are skipped.
func (r *Redactor) redactString(s string) string {
	if len(s) == 0 {
		return s
	}

	type replacement struct {
		start int
		end   int
		text  string
	}

	var reps []replacement
	for _, rule := range r.rules {
		for _, m := range rule.Detect(s) {
			if r.isAllowed(m.Value) {
				continue
			}
			reps = append(reps, replacement{
				start: m.Start,
				end:   m.End,
				text:  rule.Replacement(m),
			})
		}
	}

	if len(reps) == 0 {
		return s
	}

	// Sort by start position, then longest match first for ties.
	sort.Slice(reps, func(i, j int) bool {
		if reps[i].start != reps[j].start {
			return reps[i].start < reps[j].start
		}
		return reps[i].end > reps[j].end
	})

	// Apply non-overlapping replacements.
	var result []byte
	pos := 0
	for _, rep := range reps {
		if rep.start < pos {
			continue // overlaps with a previous replacement
		}
		result = append(result, s[pos:rep.start]...)
		result = append(result, rep.text...)
		pos = rep.end
	}
	result = append(result, s[pos:]...)
	return string(result)
}

func (r *Redactor) isAllowed(value string) bool {
	for _, re := range r.allowlist {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

var _ core.Transformer = (*Redactor)(nil)

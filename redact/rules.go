// Package redact masks secrets and personal data in log snapshots. Chatbot
// logs carry raw guest queries and upstream credentials, so a snapshot can be
// passed through a Redactor before it leaves the host.
package redact

import (
	"fmt"
	"regexp"
)

// Rule kinds.
const (
	KindSecret = "secret"
	KindPII    = "pii"
)

// Rule detects sensitive data in a string and provides a replacement.
type Rule interface {
	Name() string
	Kind() string
	Detect(s string) []Match
	Replacement(m Match) string
}

// Match represents a detected occurrence within a string.
type Match struct {
	Start int
	End   int
	Value string
}

type regexRule struct {
	name    string
	kind    string
	pattern *regexp.Regexp
	// valid, when set, rejects candidate matches.
	valid func(string) bool
}

func (r *regexRule) Name() string { return r.name }
func (r *regexRule) Kind() string { return r.kind }

func (r *regexRule) Detect(s string) []Match {
	locs := r.pattern.FindAllStringIndex(s, -1)
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		v := s[loc[0]:loc[1]]
		if r.valid != nil && !r.valid(v) {
			continue
		}
		matches = append(matches, Match{Start: loc[0], End: loc[1], Value: v})
	}
	return matches
}

func (r *regexRule) Replacement(_ Match) string {
	return fmt.Sprintf("[REDACTED:%s]", r.name)
}

// SecretRules returns the built-in secret detection rules.
func SecretRules() []Rule {
	return []Rule{
		&regexRule{
			name:    "aws_key",
			kind:    KindSecret,
			pattern: regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		},
		&regexRule{
			name:    "api_key",
			kind:    KindSecret,
			pattern: regexp.MustCompile(`(?:sk-[a-zA-Z0-9]{32,}|hf_[a-zA-Z0-9]{30,}|ghp_[a-zA-Z0-9]{36,}|gho_[a-zA-Z0-9]{36,}|glpat-[a-zA-Z0-9\-]{20,})`),
		},
		&regexRule{
			name:    "private_key",
			kind:    KindSecret,
			pattern: regexp.MustCompile(`-----BEGIN [A-Z ]+PRIVATE KEY-----`),
		},
		&regexRule{
			name:    "connection_string",
			kind:    KindSecret,
			pattern: regexp.MustCompile(`(?:postgres|postgresql|mongodb|mysql|redis)://[^\s"'` + "`" + `]+`),
		},
		&regexRule{
			name:    "jwt",
			kind:    KindSecret,
			pattern: regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_.+/=]+`),
		},
	}
}

// PIIRules returns the built-in PII detection rules.
func PIIRules() []Rule {
	return []Rule{
		&regexRule{
			name:    "email",
			kind:    KindPII,
			pattern: regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
		},
		&regexRule{
			name:    "card_number",
			kind:    KindPII,
			pattern: regexp.MustCompile(`\b\d(?:[ \-]?\d){12,18}\b`),
			valid:   luhn,
		},
		&regexRule{
			name:    "ipv4",
			kind:    KindPII,
			pattern: regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`),
		},
		&regexRule{
			name:    "phone",
			kind:    KindPII,
			pattern: regexp.MustCompile(`(?:\+\d{1,3}[\s\-]?)?\(?\d{3}\)?[\s\-]?\d{3}[\s\-]?\d{4}`),
		},
	}
}

// luhn reports whether the digits in s pass the Luhn checksum. Separators
// are ignored.
func luhn(s string) bool {
	sum, n := 0, 0
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if c < '0' || c > '9' {
			continue
		}
		d := int(c - '0')
		if n%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		n++
	}
	return n >= 13 && sum%10 == 0
}

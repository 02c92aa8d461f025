// Package glossary protects fixed game terminology around an external
// translation step and manages glossary records.
package glossary

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"locmate/internal/domain"
)

// Applied is the outcome of protecting a text: the placeholdered text plus
// the placeholder -> restore-value mapping for the round trip.
type Applied struct {
	Text         string            `json:"text"`
	Replacements map[string]string `json:"replacements"`
}

// Protector replaces glossary terms with placeholder tokens before an
// external translate call and substitutes the canonical target back
// afterwards. It holds no state of its own; the mapping is transient.
//
// If the function placed between Apply and Restore preserves every
// placeholder substring verbatim, every protected term is restored exactly
// once per original occurrence. A mutated or dropped placeholder is reported
// by Restore, not an error.
type Protector struct {
	// Opaque switches the token format from sequential [[GLn]] to a random
	// short tag, which cannot collide with literal bracket syntax in the
	// source text.
	Opaque bool
}

// Apply protects every matching entry of the given glossaries in order.
// Glossaries are expected global-first; within a glossary, entries apply in
// stored order. Matching proceeds over the progressively-placeholdered text,
// so an already-protected span cannot be re-matched by a later, overlapping
// entry. A term with no match in the text is simply left untouched.
func (p *Protector) Apply(text string, glossaries []*domain.Glossary) Applied {
	out := Applied{Text: text, Replacements: map[string]string{}}
	n := 0
	for _, g := range glossaries {
		for i := range g.Entries {
			e := &g.Entries[i]
			if e.Source == "" {
				continue
			}
			re, err := entryPattern(e)
			if err != nil {
				continue
			}
			out.Text = re.ReplaceAllStringFunc(out.Text, func(matched string) string {
				token := p.token(n)
				n++
				if e.Target == "" {
					// Protect but do not translate: restore the occurrence
					// as it appeared.
					out.Replacements[token] = matched
				} else {
					out.Replacements[token] = e.Target
				}
				return token
			})
		}
	}
	return out
}

// Restore replaces every placeholder occurrence with its mapped value and
// returns the placeholders that no longer occur in the text. Missing
// placeholders are skipped, not errors; callers decide whether to log them.
func (p *Protector) Restore(text string, replacements map[string]string) (string, []string) {
	var missing []string
	for token, value := range replacements {
		if !strings.Contains(text, token) {
			missing = append(missing, token)
			continue
		}
		text = strings.ReplaceAll(text, token, value)
	}
	sort.Strings(missing)
	return text, missing
}

func (p *Protector) token(n int) string {
	if p.Opaque {
		var b [4]byte
		_, _ = rand.Read(b[:])
		return fmt.Sprintf("[[GL-%s]]", hex.EncodeToString(b[:]))
	}
	return fmt.Sprintf("[[GL%d]]", n)
}

func entryPattern(e *domain.GlossaryEntry) (*regexp.Regexp, error) {
	pattern := regexp.QuoteMeta(e.Source)
	if e.WholeWord {
		pattern = `\b` + pattern + `\b`
	}
	if !e.CaseSensitive {
		pattern = `(?i)` + pattern
	}
	return regexp.Compile(pattern)
}

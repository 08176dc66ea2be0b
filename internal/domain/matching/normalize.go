package matching

import (
	"strings"
	"unicode"
)

type Normalizer struct {
	units      map[string]struct{}
	categories map[string]map[string]struct{}
}

func NewNormalizer(v *Vocabulary) *Normalizer {
	n := &Normalizer{
		units:      make(map[string]struct{}),
		categories: make(map[string]map[string]struct{}),
	}
	if v == nil {
		return n
	}
	for _, u := range v.Units {
		n.units[strings.ToLower(strings.TrimSpace(u))] = struct{}{}
	}
	for category, words := range v.Categories {
		key := n.Text(category)
		set := make(map[string]struct{}, len(words)+1)
		for _, w := range strings.Fields(key) {
			set[w] = struct{}{}
		}
		for _, w := range words {
			for _, tok := range strings.Fields(n.Text(w)) {
				set[tok] = struct{}{}
			}
		}
		n.categories[key] = set
	}
	return n
}

// Text case-folds s, strips punctuation and drops quantity and unit tokens
// such as "12", "12oz" or "gal".
func (n *Normalizer) Text(s string) string {
	tokens := strings.Fields(stripPunctuation(strings.ToLower(s)))
	kept := tokens[:0]
	for _, tok := range tokens {
		if n.isQuantity(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// Clean case-folds and strips punctuation but keeps every token. Used where
// numbers carry meaning, e.g. store names in fingerprints.
func Clean(s string) string {
	return strings.Join(strings.Fields(stripPunctuation(strings.ToLower(s))), " ")
}

// CategoryMatch reports whether a normalized line item mentions the
// category name or one of its keywords.
func (n *Normalizer) CategoryMatch(normalizedItem, category string) bool {
	if category == "" || normalizedItem == "" {
		return false
	}
	key := n.Text(category)
	keywords, ok := n.categories[key]
	if !ok {
		keywords = make(map[string]struct{})
		for _, w := range strings.Fields(key) {
			keywords[w] = struct{}{}
		}
	}
	for _, tok := range strings.Fields(normalizedItem) {
		if _, hit := keywords[tok]; hit {
			return true
		}
	}
	return false
}

func (n *Normalizer) isQuantity(tok string) bool {
	if _, ok := n.units[tok]; ok {
		return true
	}
	i := 0
	for i < len(tok) && (tok[i] == '.' || (tok[i] >= '0' && tok[i] <= '9')) {
		i++
	}
	if i == 0 {
		return false
	}
	if i == len(tok) {
		return true
	}
	_, ok := n.units[tok[i:]]
	return ok
}

func stripPunctuation(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' && i > 0 && i < len(runes)-1 && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

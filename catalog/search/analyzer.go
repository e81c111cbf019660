package search

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// French and Arabic stop words dropped from query tokens
var stopWords = map[string]bool{
	"a": true, "au": true, "aux": true, "avec": true, "ce": true, "d": true,
	"dans": true, "de": true, "des": true, "du": true, "en": true, "et": true,
	"l": true, "la": true, "le": true, "les": true, "ou": true, "par": true,
	"pour": true, "sur": true, "un": true, "une": true, "chez": true,
	// Arabic
	"في": true, "من": true, "مع": true, "على": true, "الى": true, "إلى": true,
}

// foldPool avoids rebuilding the NFD → strip(Mn) → NFC chain per call.
// transform.Chain is stateful and must not be shared across goroutines.
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		)
	},
}

// rangeDirective matches the explicit "min 80m2" / "max 2.5M" tokens that the
// extractor turns into facets. They are not text tokens.
var rangeDirective = regexp.MustCompile(`(?i)\b(?:min|max|minimum|maximum)\s*[:=]?\s*\d+(?:[ .,\x{00a0}\x{202f}]\d{3})*(?:[.,]\d+)?\s*(?:millions?|m2|m²|m)?(?:$|[^\pL\pN])`)

// Normalize lower-cases text, strips combining diacritics, collapses
// whitespace and trims. It is only meant for comparisons, never for display.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	if isASCIIAndLower(text) {
		return strings.Join(strings.Fields(text), " ")
	}

	t := foldPool.Get().(transform.Transformer)
	defer func() {
		t.Reset()
		foldPool.Put(t)
	}()

	out, _, err := transform.String(t, strings.ToLower(text))
	if err != nil {
		out = strings.ToLower(text)
	}
	return strings.Join(strings.Fields(out), " ")
}

// Tokenize splits text into tokens with Unicode support
func Tokenize(text string) []string {
	if len(text) == 0 {
		return nil
	}

	estimatedTokens := len(text) / 5
	if estimatedTokens < 8 {
		estimatedTokens = 8
	}
	tokens := make([]string, 0, estimatedTokens)

	var buf strings.Builder
	buf.Grow(32)

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			buf.WriteRune(r)
		} else if buf.Len() > 0 {
			tokens = append(tokens, buf.String())
			buf.Reset()
		}
	}

	if buf.Len() > 0 {
		tokens = append(tokens, buf.String())
	}

	return tokens
}

// StripRangeDirectives removes min/max price and area directives from q.
func StripRangeDirectives(q string) string {
	return rangeDirective.ReplaceAllString(q, " ")
}

// QueryTokens returns the normalized tokens a listing must all contain.
func QueryTokens(q string) []string {
	tokens := Tokenize(Normalize(StripRangeDirectives(q)))
	result := tokens[:0]
	for _, token := range tokens {
		if stopWords[token] {
			continue
		}
		result = append(result, token)
	}
	return result
}

// IsStopWord checks if a normalized word is a stop word
func IsStopWord(word string) bool {
	return stopWords[word]
}

// Flatten normalizes text and replaces every non letter/number run with a
// single space, so that phrase containment can be checked on token boundaries.
func Flatten(text string) string {
	return strings.Join(Tokenize(Normalize(text)), " ")
}

// ContainsPhrase reports whether phrase occurs in text on token boundaries.
// Both arguments are flattened first.
func ContainsPhrase(text, phrase string) bool {
	p := Flatten(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(" "+Flatten(text)+" ", " "+p+" ")
}

// isASCIIAndLower reports whether s contains only ASCII bytes and no A..Z.
func isASCIIAndLower(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= 0x80 {
			return false
		}
		if b >= 'A' && b <= 'Z' {
			return false
		}
	}
	return true
}

// Package extract derives facets implied by the free-text query.
//
// Extraction is an ordered list of rules applied left to right. A rule only
// ever writes a facet when it matches; it never clears one.
package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Kush-Singh-26/immo/catalog/location"
	"github.com/Kush-Singh-26/immo/catalog/models"
	"github.com/Kush-Singh-26/immo/catalog/pricerange"
	"github.com/Kush-Singh-26/immo/catalog/search"
	"github.com/Kush-Singh-26/immo/catalog/vocab"
)

var (
	roomToken = regexp.MustCompile(`(?:^|[^\pL\pN])(studio|t1\s*bis|[ft]([1-6])\+?)(?:$|[^\pL\pN+])`)

	// min/max directive: keyword, number, optional unit
	rangeToken = regexp.MustCompile(`\b(min|max)(?:imum)?\s*[:=]?\s*(\d+(?:[ .,\x{00a0}\x{202f}]\d{3})*(?:[.,]\d+)?)\s*(m2|m²|millions?|m)?(?:$|[^\pL\pN])`)
)

// Rule pairs a matcher with the effect applied for each of its matches.
// Both see the normalized query text.
type Rule struct {
	Name   string
	Match  func(text string) [][]string
	Effect func(f models.FilterState, match []string) models.FilterState
}

// Extractor applies its rules to query text.
type Extractor struct {
	rules []Rule
}

// New builds the default rule cascade: amenities, room, area, price, then
// location (a commune mention first, a district alias otherwise).
// idx may be nil.
func New(cat *location.Catalog, idx *location.AliasIndex) *Extractor {
	if cat == nil {
		cat = location.DefaultCatalog()
	}
	var rules []Rule
	rules = append(rules, amenityRules()...)
	rules = append(rules,
		regexRule("room", roomToken, func(f models.FilterState, m []string) models.FilterState {
			return f.WithRoom(roomCode(m[1], m[2]))
		}),
		rangeRule("area", true, applyArea),
		rangeRule("price", false, applyPrice),
		locationRule(cat, idx),
	)
	return &Extractor{rules: rules}
}

// NewWithRules builds an extractor from an explicit rule list.
func NewWithRules(rules ...Rule) *Extractor {
	return &Extractor{rules: append([]Rule(nil), rules...)}
}

// Rules returns the rule names in application order.
func (e *Extractor) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// Extract returns state updated with every facet implied by text.
func (e *Extractor) Extract(state models.FilterState, text string) models.FilterState {
	normalized := search.Normalize(text)
	if normalized == "" {
		return state
	}
	out := state
	for _, r := range e.rules {
		for _, m := range r.Match(normalized) {
			out = r.Effect(out, m)
		}
	}
	return out
}

// Fired returns the names of the rules matching text, in order.
func (e *Extractor) Fired(text string) []string {
	normalized := search.Normalize(text)
	var names []string
	for _, r := range e.rules {
		if normalized != "" && len(r.Match(normalized)) > 0 {
			names = append(names, r.Name)
		}
	}
	return names
}

func regexRule(name string, re *regexp.Regexp, effect func(models.FilterState, []string) models.FilterState) Rule {
	return Rule{
		Name:   name,
		Match:  func(text string) [][]string { return re.FindAllStringSubmatch(text, -1) },
		Effect: effect,
	}
}

// rangeRule matches min/max directives; area directives carry a square
// metre unit, every other directive is a price.
func rangeRule(name string, area bool, effect func(models.FilterState, []string) models.FilterState) Rule {
	return Rule{
		Name: name,
		Match: func(text string) [][]string {
			var out [][]string
			for _, m := range rangeToken.FindAllStringSubmatch(text, -1) {
				if isAreaUnit(m[3]) == area {
					out = append(out, m)
				}
			}
			return out
		},
		Effect: effect,
	}
}

func isAreaUnit(unit string) bool {
	return unit == "m2" || unit == "m²"
}

// amenityRules builds one rule per amenity matching any of its terms on
// token boundaries.
func amenityRules() []Rule {
	rules := make([]Rule, 0, len(vocab.Amenities))
	for _, a := range vocab.Amenities {
		alts := make([]string, 0, len(a.Terms))
		for _, term := range a.Terms {
			if n := search.Normalize(term); n != "" {
				alts = append(alts, regexp.QuoteMeta(n))
			}
		}
		re := regexp.MustCompile(`(?:^|[^\pL\pN])(?:` + strings.Join(alts, "|") + `)(?:$|[^\pL\pN])`)
		key := a.Key
		rules = append(rules, Rule{
			Name: "amenity:" + key,
			Match: func(text string) [][]string {
				if re.MatchString(text) {
					return [][]string{{key}}
				}
				return nil
			},
			Effect: func(f models.FilterState, _ []string) models.FilterState {
				return f.WithAmenity(key)
			},
		})
	}
	return rules
}

func roomCode(token, digit string) string {
	if token == "studio" || strings.HasSuffix(token, "bis") {
		return "Studio"
	}
	if digit == "6" {
		return "F6+"
	}
	return "F" + digit
}

func applyArea(f models.FilterState, m []string) models.FilterState {
	v, ok := pricerange.ParsePrice(m[2])
	if !ok {
		return f
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if m[1] == "min" {
		return f.WithAreaMin(s)
	}
	return f.WithAreaMax(s)
}

func applyPrice(f models.FilterState, m []string) models.FilterState {
	raw := m[2]
	if m[3] != "" {
		raw += " M"
	}
	v, ok := pricerange.ParsePrice(raw)
	if !ok {
		return f
	}
	s := strconv.FormatFloat(math.Round(v), 'f', -1, 64)
	if m[1] == "min" {
		return f.WithPriceMin(s)
	}
	return f.WithPriceMax(s)
}

func locationRule(cat *location.Catalog, idx *location.AliasIndex) Rule {
	return Rule{
		Name: "location",
		Match: func(text string) [][]string {
			if commune, ok := cat.MentionedCommune(text); ok {
				return [][]string{{commune}}
			}
			if idx != nil {
				if e, ok := idx.Match(text); ok {
					return [][]string{{e.Commune}}
				}
			}
			return nil
		},
		Effect: func(f models.FilterState, m []string) models.FilterState {
			return f.WithCommune(m[0])
		},
	}
}

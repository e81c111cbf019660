package suggest

import (
	"strings"
	"unicode"

	"github.com/Kush-Singh-26/immo/catalog/models"
	"github.com/Kush-Singh-26/immo/catalog/search"
)

// Highlight splits label into blocks, marking the parts matched by the
// fields of query in order. Matching is accent and case insensitive; block
// texts are slices of the original label.
func Highlight(label, query string) []models.TextBlock {
	folded, origin := fold(label)
	fields := strings.Fields(search.Normalize(query))

	var blocks []models.TextBlock
	pos := 0
	for _, field := range fields {
		i := strings.Index(folded[pos:], field)
		if i < 0 {
			break
		}
		start, end := pos+i, pos+i+len(field)
		if origin[start] > origin[pos] {
			blocks = append(blocks, models.TextBlock{Text: label[origin[pos]:origin[start]]})
		}
		if origin[end] > origin[start] {
			blocks = append(blocks, models.TextBlock{Text: label[origin[start]:origin[end]], Highlight: true})
		}
		pos = end
	}

	if len(blocks) == 0 {
		return []models.TextBlock{{Text: label}}
	}
	if rest := origin[pos]; rest < len(label) {
		blocks = append(blocks, models.TextBlock{Text: label[rest:]})
	}
	return blocks
}

// fold normalizes label rune by rune. origin maps every byte offset of the
// folded string (and its end) back to a byte offset of label.
func fold(label string) (string, []int) {
	var b strings.Builder
	origin := make([]int, 0, len(label)+1)
	for i, r := range label {
		var n string
		if unicode.IsSpace(r) {
			n = " "
		} else {
			n = search.Normalize(string(r))
		}
		for k := 0; k < len(n); k++ {
			origin = append(origin, i)
		}
		b.WriteString(n)
	}
	origin = append(origin, len(label))
	return b.String(), origin
}

package records

import (
	"encoding/json"
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/OPSE-Developers/OPSE-Records-Plugin/models"
)

// cardMarker opens every result card on a directory page.
const cardMarker = `<section class="card `

var (
	// nameRegexp captures the card title: Latin letters (accented included),
	// digits, underscores, spaces and commas.
	nameRegexp = regexp.MustCompile(`class=lnk>([a-zA-ZÀ-ÿ0-9_ ,]+)</a></h2>`)
	// dataRegexp captures the HTML-escaped JSON carried by the card button.
	dataRegexp = regexp.MustCompile(`<button type=button data-info="(\{[^<>]*\})"`)
)

// Card is the structured content of one result card.
type Card struct {
	FullName string
	Data     models.CandidateData
}

// SplitCards cuts a directory page into per-candidate fragments, dropping
// the page chrome before the first card.
func SplitCards(page string) []string {
	parts := strings.Split(page, cardMarker)
	return parts[1:]
}

// ParseCard extracts the displayed name and data blob of one fragment.
// ok is false when either is missing or the blob is not a JSON object.
func ParseCard(fragment string) (card Card, ok bool) {
	m := nameRegexp.FindStringSubmatch(fragment)
	if len(m) < 2 {
		return Card{}, false
	}
	card.FullName = titleName(m[1])

	m = dataRegexp.FindStringSubmatch(fragment)
	if len(m) < 2 {
		return Card{}, false
	}
	if err := json.Unmarshal([]byte(html.UnescapeString(m[1])), &card.Data); err != nil {
		return Card{}, false
	}

	return card, true
}

// titleName title-cases a card name. Underscores separate words as
// spaces do.
func titleName(name string) string {
	caser := cases.Title(language.French)
	words := strings.Split(name, "_")
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, "_")
}

// MatchesName reports whether fullName belongs to the searched person.
// Outside strict mode every name matches; in strict mode the name must
// equal "first last" or "last first", ignoring case.
func MatchesName(fullName, firstName, lastName string, strict bool) bool {
	if !strict {
		return true
	}
	return strings.EqualFold(fullName, firstName+" "+lastName) ||
		strings.EqualFold(fullName, lastName+" "+firstName)
}

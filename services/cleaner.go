package services

import (
	"strings"
	"unicode"

	"github.com/OPSE-Developers/OPSE-Records-Plugin/models"
	"github.com/OPSE-Developers/OPSE-Records-Plugin/utils"
)

// Cleaner tidies search results gathered over several directory runs.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean normalises names and drops results already seen, keeping the
// first occurrence and the input order.
func (c *Cleaner) Clean(raw []*models.SearchResult) []*models.SearchResult {
	seen := utils.NewKeySet()
	result := make([]*models.SearchResult, 0, len(raw))

	for _, r := range raw {
		if r == nil {
			continue
		}
		r.FullName = normaliseText(r.FullName)

		key := resultKey(r)
		if !seen.Add(key) {
			c.logger.Debug("[cleaner] Duplicate result skipped: %s", key)
			continue
		}

		result = append(result, r)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d results (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// resultKey identifies a person at a place with a number.
func resultKey(r *models.SearchResult) string {
	return strings.Join([]string{
		strings.ToLower(r.FullName),
		models.StringValue(r.PhoneNumber.Number),
		strings.ToLower(normaliseText(models.StringValue(r.Address.Street))),
		models.IntString(r.Address.Number),
		strings.ToLower(models.StringValue(r.Address.City)),
	}, "|")
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

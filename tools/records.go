package tools

import (
	"context"
	"strings"

	"github.com/OPSE-Developers/OPSE-Records-Plugin/models"
	"github.com/OPSE-Developers/OPSE-Records-Plugin/utils"
)

// Searcher runs one directory search.
type Searcher interface {
	Search(ctx context.Context, q models.SearchQuery, strict bool) []*models.SearchResult
}

// Deduplicator removes repeated results gathered across several searches.
type Deduplicator interface {
	Clean(results []*models.SearchResult) []*models.SearchResult
}

// RecordsTool looks a person up in public French phone records.
type RecordsTool struct {
	searcher   Searcher
	dedupe     Deduplicator
	logger     *utils.Logger
	strict     bool
	accumulate bool
}

// RecordsOptions configures a RecordsTool.
//
// Accumulate keeps the results of every known address; when false only
// the last address searched contributes, which matches the historical
// behaviour of the tool.
type RecordsOptions struct {
	Strict     bool
	Accumulate bool
}

// NewRecordsTool creates a RecordsTool. dedupe may be nil.
func NewRecordsTool(searcher Searcher, dedupe Deduplicator, logger *utils.Logger, opts RecordsOptions) *RecordsTool {
	return &RecordsTool{
		searcher:   searcher,
		dedupe:     dedupe,
		logger:     logger,
		strict:     opts.Strict,
		accumulate: opts.Accumulate,
	}
}

func (t *RecordsTool) Name() string     { return "records" }
func (t *RecordsTool) Active() bool     { return true }
func (t *RecordsTool) Deprecated() bool { return false }

func (t *RecordsTool) InputDataTypes() map[DataTypeInput]bool {
	return map[DataTypeInput]bool{
		InputFirstName: true,
		InputLastName:  true,
		InputAddress:   false,
	}
}

func (t *RecordsTool) OutputDataTypes() []DataTypeOutput {
	return []DataTypeOutput{OutputAddress, OutputPhoneNumber}
}

// Execute searches the directory once per known city, or once without a
// location when the profile has no address, and emits one clone of base
// per result carrying just the found address and phone number.
func (t *RecordsTool) Execute(ctx context.Context, base *models.Profile, emit EmitFunc) {
	t.Emit(base, t.Collect(ctx, base), emit)
}

// Emit sends one clone of base per result to emit.
func (t *RecordsTool) Emit(base *models.Profile, results []*models.SearchResult, emit EmitFunc) {
	if len(results) == 0 {
		t.logger.Debug("No result found in public phone records.")
		return
	}

	t.logger.Debug("Found %d results in public phone records.", len(results))
	for _, r := range results {
		profile := base.Clone()
		profile.SetPhoneNumbers([]models.PhoneNumberRecord{r.PhoneNumber})
		profile.SetAddresses([]models.AddressRecord{r.Address})
		emit(profile)
	}
}

// Collect runs the searches Execute would run and returns their results.
func (t *RecordsTool) Collect(ctx context.Context, base *models.Profile) []*models.SearchResult {
	query := models.SearchQuery{FirstName: base.FirstName, LastName: base.LastName}

	if len(base.Addresses) == 0 {
		return t.searcher.Search(ctx, query, t.strict)
	}

	var results []*models.SearchResult
	labels := utils.NewKeySet()
	for _, addr := range base.Addresses {
		query.LocationLabel = models.StringValue(addr.City)

		if t.accumulate {
			if !labels.Add(strings.ToLower(query.LocationLabel)) {
				continue
			}
			results = append(results, t.searcher.Search(ctx, query, t.strict)...)
		} else {
			results = t.searcher.Search(ctx, query, t.strict)
		}
	}

	if t.accumulate && t.dedupe != nil {
		results = t.dedupe.Clean(results)
	}
	return results
}

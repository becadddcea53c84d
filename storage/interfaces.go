package storage

import "github.com/OPSE-Developers/OPSE-Records-Plugin/models"

// ResultWriter is the interface any storage backend must satisfy.
type ResultWriter interface {
	WriteResults(results []*models.SearchResult) error
	Close() error
}

var (
	_ ResultWriter = (*CSVWriter)(nil)
	_ ResultWriter = (*PostgresWriter)(nil)
)

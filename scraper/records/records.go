// Package records searches the 118000.fr public phone directory for a
// person and turns each result card into an address and a phone number.
package records

import (
	"context"
	"fmt"
	"net/http"

	"github.com/OPSE-Developers/OPSE-Records-Plugin/config"
	"github.com/OPSE-Developers/OPSE-Records-Plugin/models"
	"github.com/OPSE-Developers/OPSE-Records-Plugin/utils"
)

// DefaultPageSize is the number of cards on a full directory page.
const DefaultPageSize = 25

// Scraper runs paginated directory searches.
type Scraper struct {
	fetcher    PageFetcher
	phones     *PhoneNormalizer
	logger     *utils.Logger
	retry      *utils.RetryConfig
	endpoint   string
	dataSource string
	pageSize   int
}

// New creates a Scraper. Non-200 pages are retried once, with no delay.
func New(cfg *config.Config, fetcher PageFetcher, logger *utils.Logger) *Scraper {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Scraper{
		fetcher: fetcher,
		phones:  NewPhoneNormalizer(logger),
		logger:  logger,
		retry: &utils.RetryConfig{
			MaxAttempts: 2,
			Logger:      logger,
		},
		endpoint:   cfg.SearchURL,
		dataSource: cfg.DataSource,
		pageSize:   pageSize,
	}
}

// Search walks the directory pages for q and returns the accepted
// candidates in page order. A page with fewer cards than the page size is
// the last one. Failures stop the walk and keep what was already
// collected; they are logged, never returned.
func (s *Scraper) Search(ctx context.Context, q models.SearchQuery, strict bool) []*models.SearchResult {
	var results []*models.SearchResult

	for page := 1; ; page++ {
		pageURL, err := BuildSearchURL(s.endpoint, q, page)
		if err != nil {
			s.logger.Error("[records] %v", err)
			break
		}

		body, err := s.fetchPage(ctx, pageURL, page)
		if err != nil {
			break
		}

		cards := SplitCards(body)
		for _, fragment := range cards {
			if result, ok := s.buildResult(fragment, q, strict); ok {
				results = append(results, result)
			}
		}

		if len(cards) != s.pageSize {
			break
		}
	}

	return results
}

func (s *Scraper) buildResult(fragment string, q models.SearchQuery, strict bool) (*models.SearchResult, bool) {
	card, ok := ParseCard(fragment)
	if !ok {
		return nil, false
	}
	if !MatchesName(card.FullName, q.FirstName, q.LastName, strict) {
		return nil, false
	}

	return &models.SearchResult{
		FullName:    card.FullName,
		Address:     BuildAddress(card.Data, s.dataSource),
		PhoneNumber: s.phones.Normalize(card.Data.PhoneCandidate(), s.dataSource),
	}, true
}

// fetchPage requests one page. Bad statuses get the retry budget;
// transport errors end the search at once.
func (s *Scraper) fetchPage(ctx context.Context, pageURL string, page int) (string, error) {
	var body string

	err := s.retry.Do(fmt.Sprintf("records-page-%d", page), func() error {
		p, err := s.fetcher.FetchPage(ctx, pageURL)
		if err != nil {
			return utils.Permanent(err)
		}
		s.logger.Debug("Record request %s ended with a %d status code.", pageURL, p.StatusCode)
		if p.StatusCode != http.StatusOK {
			return fmt.Errorf("%w %d", ErrBadStatus, p.StatusCode)
		}
		body = p.Body
		return nil
	})

	if err != nil {
		if utils.IsPermanent(err) {
			s.logger.Error("[records] Request n°%d failed: %v", page, err)
		} else {
			s.logger.Debug("[records] Giving up on page %d: %v", page, err)
		}
		return "", err
	}
	return body, nil
}

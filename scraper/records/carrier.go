package records

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	carrierNumberParam = "tx_arcepbasetechnique_basetechnique[search][numeros]"
	carrierMarker      = "a été attribué à"
)

// CarrierLookup asks the ARCEP numbering base which operator a number
// block was assigned to.
type CarrierLookup struct {
	fetcher  PageFetcher
	endpoint string
}

// NewCarrierLookup creates a CarrierLookup using fetcher for transport.
func NewCarrierLookup(fetcher PageFetcher, endpoint string) *CarrierLookup {
	return &CarrierLookup{fetcher: fetcher, endpoint: endpoint}
}

// Lookup returns the operator name for number, or "" when the page names none.
func (c *CarrierLookup) Lookup(ctx context.Context, number string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse carrier endpoint: %w", err)
	}
	params := u.Query()
	params.Set(carrierNumberParam, strings.Join(strings.Fields(number), ""))
	u.RawQuery = params.Encode()

	page, err := c.fetcher.FetchPage(ctx, u.String())
	if err != nil {
		return "", fmt.Errorf("carrier lookup: %w", err)
	}
	if page.StatusCode != 200 {
		return "", fmt.Errorf("carrier lookup: %w %d", ErrBadStatus, page.StatusCode)
	}

	return parseCarrier(page.Body)
}

func parseCarrier(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse carrier page: %w", err)
	}

	carrier := ""
	doc.Find("span.red").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !strings.Contains(sel.Parent().Text(), carrierMarker) {
			return true
		}
		carrier = strings.TrimSpace(sel.Text())
		return carrier == ""
	})
	return carrier, nil
}

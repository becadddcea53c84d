package models

import (
	"encoding/json"
	"strconv"
)

// SearchQuery is the immutable input of one directory search run.
type SearchQuery struct {
	FirstName     string
	LastName      string
	LocationLabel string
}

// CandidateData is the JSON blob embedded in each result card.
// The website controls the schema, so every field is optional.
type CandidateData struct {
	Address  *string `json:"address"`
	CP       *string `json:"cp"`
	City     *string `json:"city"`
	Tel      *string `json:"tel"`
	MainLine *string `json:"mainLine"`
}

// UnmarshalJSON accepts strings and numbers for every field and treats
// null, empty and any other JSON type as absent.
func (d *CandidateData) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d.Address = optionalString(raw["address"])
	d.CP = optionalString(raw["cp"])
	d.City = optionalString(raw["city"])
	d.Tel = optionalString(raw["tel"])
	d.MainLine = optionalString(raw["mainLine"])
	return nil
}

// PhoneCandidate returns tel, falling back to mainLine.
func (d *CandidateData) PhoneCandidate() *string {
	if d.Tel != nil {
		return d.Tel
	}
	return d.MainLine
}

func optionalString(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil
		}
		return &s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		v := n.String()
		return &v
	}
	return nil
}

// AddressRecord is a postal address produced from one result card.
// Number and Street are set together, or not at all.
type AddressRecord struct {
	Number     *int
	Street     *string
	StateCode  *string
	City       *string
	Country    string
	DataSource string
}

// PhoneNumberRecord is a validated phone number with numbering-plan metadata.
// A record with only DataSource set is the placeholder for a missing or
// unusable number.
type PhoneNumberRecord struct {
	Number      *string
	Country     *string
	CountryCode *string
	Location    *string
	Carrier     *string
	DataSource  string
}

// IsPlaceholder reports whether the record carries no phone number.
func (p PhoneNumberRecord) IsPlaceholder() bool {
	return p.Number == nil
}

// SearchResult is one accepted candidate from the directory.
type SearchResult struct {
	FullName    string
	Address     AddressRecord
	PhoneNumber PhoneNumberRecord
}

// StringValue dereferences an optional string, returning "" when absent.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IntString formats an optional int, returning "" when absent.
func IntString(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

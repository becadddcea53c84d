package records

import (
	"strconv"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/OPSE-Developers/OPSE-Records-Plugin/models"
	"github.com/OPSE-Developers/OPSE-Records-Plugin/utils"
)

const (
	defaultRegion = "FR"
	lookupLang    = "fr"
)

// PhoneOutcome classifies a raw phone string against the numbering plan.
type PhoneOutcome int

const (
	PhoneValid PhoneOutcome = iota
	PhoneParseFailure
	PhoneInvalid
)

func (o PhoneOutcome) String() string {
	switch o {
	case PhoneValid:
		return "valid"
	case PhoneParseFailure:
		return "parse-failure"
	case PhoneInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// PhoneParse is the result of Classify. Number is set only for PhoneValid.
type PhoneParse struct {
	Outcome PhoneOutcome
	Number  *phonenumbers.PhoneNumber
	Err     error
}

// PhoneNormalizer validates French directory numbers and enriches them
// with country, location and carrier labels.
type PhoneNormalizer struct {
	logger *utils.Logger
	region string
	lang   string
}

// NewPhoneNormalizer creates a normalizer parsing in the French numbering
// context with French-language labels.
func NewPhoneNormalizer(logger *utils.Logger) *PhoneNormalizer {
	return &PhoneNormalizer{logger: logger, region: defaultRegion, lang: lookupLang}
}

// Classify parses raw under the default region and checks validity.
func (p *PhoneNormalizer) Classify(raw string) PhoneParse {
	num, err := phonenumbers.Parse(raw, p.region)
	if err != nil {
		return PhoneParse{Outcome: PhoneParseFailure, Err: err}
	}
	if !phonenumbers.IsValidNumber(num) {
		return PhoneParse{Outcome: PhoneInvalid}
	}
	return PhoneParse{Outcome: PhoneValid, Number: num}
}

// Normalize returns the enriched record for raw, or the placeholder when
// raw is absent, unparseable or invalid. Only parse failures are logged.
func (p *PhoneNormalizer) Normalize(raw *string, dataSource string) models.PhoneNumberRecord {
	placeholder := models.PhoneNumberRecord{DataSource: dataSource}
	if raw == nil {
		return placeholder
	}

	parsed := p.Classify(*raw)
	switch parsed.Outcome {
	case PhoneParseFailure:
		p.logger.Error("Phone number parsing failed: %v", parsed.Err)
		return placeholder
	case PhoneInvalid:
		return placeholder
	}

	num := parsed.Number
	country := p.countryName(num)
	location := p.description(num, country)
	carrier, _ := phonenumbers.GetCarrierForNumber(num, p.lang)

	return models.PhoneNumberRecord{
		Number:      nonEmpty(strconv.FormatUint(num.GetNationalNumber(), 10)),
		Country:     nonEmpty(country),
		CountryCode: nonEmpty(strconv.Itoa(int(num.GetCountryCode()))),
		Location:    nonEmpty(location),
		Carrier:     nonEmpty(carrier),
		DataSource:  dataSource,
	}
}

func (p *PhoneNormalizer) countryName(num *phonenumbers.PhoneNumber) string {
	region, err := language.ParseRegion(phonenumbers.GetRegionCodeForNumber(num))
	if err != nil {
		return ""
	}
	return display.Regions(language.Make(p.lang)).Name(region)
}

// description prefers the area label and falls back to the country name
// for numbers without geographic data, such as mobiles.
func (p *PhoneNormalizer) description(num *phonenumbers.PhoneNumber, country string) string {
	if desc, err := phonenumbers.GetGeocodingForNumber(num, p.lang); err == nil && desc != "" {
		return desc
	}
	return country
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

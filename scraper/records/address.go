package records

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/OPSE-Developers/OPSE-Records-Plugin/models"
)

const addressCountry = "France"

var digitsRegexp = regexp.MustCompile(`\d+`)

// BuildAddress turns the card data into an AddressRecord.
// The house number is only split from the street when the free-text
// address holds exactly one digit run.
func BuildAddress(data models.CandidateData, dataSource string) models.AddressRecord {
	addr := models.AddressRecord{
		StateCode:  data.CP,
		City:       data.City,
		Country:    addressCountry,
		DataSource: dataSource,
	}

	if data.Address != nil {
		addr.Number, addr.Street = splitStreet(*data.Address)
	}

	return addr
}

func splitStreet(text string) (*int, *string) {
	runs := digitsRegexp.FindAllString(text, -1)
	if len(runs) != 1 {
		return nil, nil
	}

	n, err := strconv.Atoi(runs[0])
	if err != nil {
		return nil, nil
	}

	street := strings.TrimSpace(strings.Replace(text, strconv.Itoa(n), "", 1))
	return &n, &street
}

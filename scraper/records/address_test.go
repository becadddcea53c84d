package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OPSE-Developers/OPSE-Records-Plugin/models"
)

const testSource = "https://www.118000.fr"

func strPtr(s string) *string { return &s }

func TestBuildAddress_SingleNumber(t *testing.T) {
	tests := []struct {
		address    string
		wantNumber int
		wantStreet string
	}{
		{"12 Rue de la Paix", 12, "Rue de la Paix"},
		{"  3 bis avenue Foch ", 3, "bis avenue Foch"},
		{"Rue du 8 Mai", 8, "Rue du  Mai"},
		{"Chemin des Vignes 140", 140, "Chemin des Vignes"},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			addr := BuildAddress(models.CandidateData{Address: strPtr(tt.address)}, testSource)

			require.NotNil(t, addr.Number)
			require.NotNil(t, addr.Street)
			assert.Equal(t, tt.wantNumber, *addr.Number)
			assert.Equal(t, tt.wantStreet, *addr.Street)
		})
	}
}

func TestBuildAddress_AmbiguousOrMissingNumber(t *testing.T) {
	for _, address := range []string{"Rue Sans Nom", "12 Rue 8", "Bât 2, 14 rue Victor Hugo", ""} {
		t.Run(address, func(t *testing.T) {
			addr := BuildAddress(models.CandidateData{Address: strPtr(address)}, testSource)
			assert.Nil(t, addr.Number)
			assert.Nil(t, addr.Street)
		})
	}
}

func TestBuildAddress_CopiesLocality(t *testing.T) {
	addr := BuildAddress(models.CandidateData{CP: strPtr("69001"), City: strPtr("Lyon")}, testSource)

	assert.Nil(t, addr.Number)
	assert.Nil(t, addr.Street)
	assert.Equal(t, "69001", models.StringValue(addr.StateCode))
	assert.Equal(t, "Lyon", models.StringValue(addr.City))
	assert.Equal(t, "France", addr.Country)
	assert.Equal(t, testSource, addr.DataSource)
}

func TestBuildAddress_AllAbsent(t *testing.T) {
	addr := BuildAddress(models.CandidateData{}, testSource)

	assert.Nil(t, addr.StateCode)
	assert.Nil(t, addr.City)
	assert.Equal(t, "France", addr.Country)
}

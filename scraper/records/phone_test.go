package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OPSE-Developers/OPSE-Records-Plugin/models"
)

func TestClassify(t *testing.T) {
	p := NewPhoneNormalizer(quietLogger())

	tests := []struct {
		raw  string
		want PhoneOutcome
	}{
		{"0123456789", PhoneValid},
		{"01 23 45 67 89", PhoneValid},
		{"+33 6 12 34 56 78", PhoneValid},
		{"0123", PhoneInvalid},
		{"not a number", PhoneParseFailure},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := p.Classify(tt.raw)
			assert.Equal(t, tt.want, got.Outcome, got.Outcome.String())
			if tt.want == PhoneValid {
				assert.NotNil(t, got.Number)
			} else {
				assert.Nil(t, got.Number)
			}
		})
	}
}

func TestNormalize_ValidFixedLine(t *testing.T) {
	p := NewPhoneNormalizer(quietLogger())

	rec := p.Normalize(strPtr("0123456789"), testSource)

	require.False(t, rec.IsPlaceholder())
	assert.Equal(t, "123456789", models.StringValue(rec.Number))
	assert.Equal(t, "33", models.StringValue(rec.CountryCode))
	assert.Equal(t, "France", models.StringValue(rec.Country))
	assert.NotNil(t, rec.Location)
	assert.Equal(t, testSource, rec.DataSource)
}

func TestNormalize_ValidMobile(t *testing.T) {
	p := NewPhoneNormalizer(quietLogger())

	rec := p.Normalize(strPtr("06 12 34 56 78"), testSource)

	require.False(t, rec.IsPlaceholder())
	assert.Equal(t, "612345678", models.StringValue(rec.Number))
	assert.Equal(t, "33", models.StringValue(rec.CountryCode))
}

func TestNormalize_Placeholders(t *testing.T) {
	p := NewPhoneNormalizer(quietLogger())

	tests := []struct {
		name string
		raw  *string
	}{
		{"absent", nil},
		{"unparseable", strPtr("not a number")},
		{"invalid", strPtr("0123")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := p.Normalize(tt.raw, testSource)
			assert.Equal(t, models.PhoneNumberRecord{DataSource: testSource}, rec)
			assert.True(t, rec.IsPlaceholder())
		})
	}
}

func TestNormalize_Logging(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantErrors int
	}{
		{"valid number is silent", "01 23 45 67 89", 0},
		{"invalid number is silent", "0123", 0},
		{"parse failure logs once", "abc", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, out, errOut := capturedLogger()
			raw := tt.raw

			NewPhoneNormalizer(logger).Normalize(&raw, testSource)

			assert.Equal(t, tt.wantErrors, countLines(errOut, "Phone number parsing failed"))
			assert.Equal(t, tt.wantErrors, countLines(errOut, "ERROR"))
			assert.Empty(t, out.String())
		})
	}
}

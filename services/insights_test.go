package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/OPSE-Developers/OPSE-Records-Plugin/models"
	"github.com/OPSE-Developers/OPSE-Records-Plugin/utils"
)

func sampleResults() []*models.SearchResult {
	orange := result("Dupont Jean", "612345678", "Rue de la Paix", "Paris")
	orange.PhoneNumber.Carrier = strPtr("Orange")
	return []*models.SearchResult{
		orange,
		result("Dupont Jean", "123456789", "", "Paris"),
		result("Dupont Jeanne", "", "Avenue Foch", "Lyon"),
		result("Dupont J", "", "", ""),
	}
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleResults())
	if r.TotalResults != 4 {
		t.Errorf("TotalResults: got %d, want 4", r.TotalResults)
	}
	if r.WithPhoneNumber != 2 {
		t.Errorf("WithPhoneNumber: got %d, want 2", r.WithPhoneNumber)
	}
	if r.WithHouseNumber != 2 {
		t.Errorf("WithHouseNumber: got %d, want 2", r.WithHouseNumber)
	}
}

func TestInsightCityGrouping(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleResults())
	if r.ResultsByCity["Paris"] != 2 {
		t.Errorf("Paris count: got %d, want 2", r.ResultsByCity["Paris"])
	}
	if r.ResultsByCity["Lyon"] != 1 {
		t.Errorf("Lyon count: got %d, want 1", r.ResultsByCity["Lyon"])
	}
	if len(r.ResultsByCity) != 2 {
		t.Errorf("expected results without a city to be left out, got %v", r.ResultsByCity)
	}
}

func TestInsightCarrierGrouping(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleResults())
	if r.ResultsByCarrier["Orange"] != 1 {
		t.Errorf("Orange count: got %d, want 1", r.ResultsByCarrier["Orange"])
	}
	if r.ResultsByCarrier[unknownCarrier] != 1 {
		t.Errorf("unknown carrier count: got %d, want 1", r.ResultsByCarrier[unknownCarrier])
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(nil)
	if r.TotalResults != 0 {
		t.Errorf("expected 0 total results for empty input")
	}
}

func TestInsightPrint(t *testing.T) {
	var buf bytes.Buffer
	svc := NewInsightService(utils.NewLogger())
	svc.out = &buf

	svc.Print(svc.Generate(sampleResults()))

	out := buf.String()
	for _, want := range []string{"Results found", "Paris", "Orange"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q", want)
		}
	}
}

package services

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/OPSE-Developers/OPSE-Records-Plugin/models"
	"github.com/OPSE-Developers/OPSE-Records-Plugin/utils"
)

const unknownCarrier = "inconnu"

type InsightService struct {
	logger *utils.Logger
	out    io.Writer
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger, out: os.Stdout}
}

func (s *InsightService) Generate(results []*models.SearchResult) *models.RecordReport {
	report := &models.RecordReport{
		ResultsByCity:    make(map[string]int),
		ResultsByCarrier: make(map[string]int),
	}

	for _, r := range results {
		report.TotalResults++

		if r.Address.Number != nil {
			report.WithHouseNumber++
		}
		if city := models.StringValue(r.Address.City); city != "" {
			report.ResultsByCity[city]++
		}

		if r.PhoneNumber.IsPlaceholder() {
			continue
		}
		report.WithPhoneNumber++

		carrier := models.StringValue(r.PhoneNumber.Carrier)
		if carrier == "" {
			carrier = unknownCarrier
		}
		report.ResultsByCarrier[carrier]++
	}

	return report
}

func (s *InsightService) Print(r *models.RecordReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)
	w := s.out

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  PUBLIC PHONE RECORDS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Results found        : \033[1m%d\033[0m\n", r.TotalResults)
	fmt.Fprintf(w, "  With a phone number  : \033[1m%d\033[0m\n", r.WithPhoneNumber)
	fmt.Fprintf(w, "  With a house number  : \033[1m%d\033[0m\n", r.WithHouseNumber)
	fmt.Fprintln(w)

	printCounts(w, "Results by City", r.ResultsByCity, thin)
	printCounts(w, "Results by Carrier", r.ResultsByCarrier, thin)

	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)
}

func printCounts(w io.Writer, title string, counts map[string]int, thin string) {
	fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n", title)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(counts) == 0 {
		fmt.Fprintf(w, "  No data\n\n")
		return
	}

	type keyCount struct {
		key   string
		count int
	}
	var rows []keyCount
	for k, n := range counts {
		rows = append(rows, keyCount{k, n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].key < rows[j].key
	})
	for _, kc := range rows {
		bar := strings.Repeat("█", kc.count)
		fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(kc.key, 28), bar, kc.count)
	}
	fmt.Fprintln(w)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

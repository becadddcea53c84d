package models

// RecordReport holds summary figures over a set of search results.
type RecordReport struct {
	TotalResults     int
	WithPhoneNumber  int
	WithHouseNumber  int
	ResultsByCity    map[string]int
	ResultsByCarrier map[string]int
}

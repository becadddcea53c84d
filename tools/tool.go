// Package tools holds the enrichment tools offered to the profile
// aggregation pipeline, with the metadata it uses to schedule them.
package tools

import (
	"context"

	"github.com/OPSE-Developers/OPSE-Records-Plugin/models"
)

// DataTypeInput names a profile field a tool can consume.
type DataTypeInput string

const (
	InputFirstName DataTypeInput = "firstname"
	InputLastName  DataTypeInput = "lastname"
	InputAddress   DataTypeInput = "address"
)

// DataTypeOutput names a profile field a tool can produce.
type DataTypeOutput string

const (
	OutputAddress     DataTypeOutput = "address"
	OutputPhoneNumber DataTypeOutput = "phone_number"
)

// EmitFunc receives each new profile a tool produces.
type EmitFunc func(*models.Profile)

// Tool is one enrichment step. InputDataTypes maps each consumed field to
// whether it is required.
type Tool interface {
	Name() string
	Active() bool
	Deprecated() bool
	InputDataTypes() map[DataTypeInput]bool
	OutputDataTypes() []DataTypeOutput
	Execute(ctx context.Context, base *models.Profile, emit EmitFunc)
}

// CanRun reports whether base holds every field t requires.
func CanRun(t Tool, base *models.Profile) bool {
	if !t.Active() || t.Deprecated() {
		return false
	}
	for input, required := range t.InputDataTypes() {
		if required && !hasInput(base, input) {
			return false
		}
	}
	return true
}

func hasInput(p *models.Profile, input DataTypeInput) bool {
	switch input {
	case InputFirstName:
		return p.FirstName != ""
	case InputLastName:
		return p.LastName != ""
	case InputAddress:
		return len(p.Addresses) > 0
	default:
		return false
	}
}

package models

// Profile is the person record exchanged with the aggregation pipeline.
type Profile struct {
	FirstName    string
	LastName     string
	Addresses    []AddressRecord
	PhoneNumbers []PhoneNumberRecord
}

// Clone returns an independent copy of the profile.
func (p *Profile) Clone() *Profile {
	c := &Profile{
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
	if p.Addresses != nil {
		c.Addresses = append([]AddressRecord(nil), p.Addresses...)
	}
	if p.PhoneNumbers != nil {
		c.PhoneNumbers = append([]PhoneNumberRecord(nil), p.PhoneNumbers...)
	}
	return c
}

// SetAddresses replaces the known addresses.
func (p *Profile) SetAddresses(addresses []AddressRecord) {
	p.Addresses = addresses
}

// SetPhoneNumbers replaces the known phone numbers.
func (p *Profile) SetPhoneNumbers(numbers []PhoneNumberRecord) {
	p.PhoneNumbers = numbers
}

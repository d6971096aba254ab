package model

// Party is one side of a sales contract. Parties are embedded in contract
// records and have no identity beyond their fields.
type Party struct {
	FirstName  string
	LastName   string
	Street     string
	PostalCity string
	Phone      string
	Email      string
	IDNumber   string
}

// FullName joins first and last name for display and file naming.
func (p Party) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

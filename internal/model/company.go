package model

// Company is the shop's own letterhead data, printed on every document and
// used to prefill one party of a contract.
type Company struct {
	Name       string
	Street     string
	PostalCity string
	City       string
	Website    string
	Phone      string
	Email      string
}

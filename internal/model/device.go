package model

// Device describes the used device a contract is about.
type Device struct {
	Manufacturer string
	Model        string
	SerialNumber string
	Features     string
	Condition    string
	Accessories  string
}

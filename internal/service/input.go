package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/handyzentrum/shopdocs/internal/model"
)

// PartyInput is the raw form data for one contract party.
type PartyInput struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Street     string `json:"street"`
	PostalCity string `json:"postal_city"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	IDNumber   string `json:"id_number"`
}

func (p PartyInput) toParty() model.Party {
	return model.Party{
		FirstName:  strings.TrimSpace(p.FirstName),
		LastName:   strings.TrimSpace(p.LastName),
		Street:     strings.TrimSpace(p.Street),
		PostalCity: strings.TrimSpace(p.PostalCity),
		Phone:      strings.TrimSpace(p.Phone),
		Email:      strings.TrimSpace(p.Email),
		IDNumber:   strings.TrimSpace(p.IDNumber),
	}
}

// DeviceInput is the raw form data for the device block.
type DeviceInput struct {
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
	Features     string `json:"features"`
	Condition    string `json:"condition"`
	Accessories  string `json:"accessories"`
}

func (d DeviceInput) toDevice() model.Device {
	return model.Device{
		Manufacturer: strings.TrimSpace(d.Manufacturer),
		Model:        strings.TrimSpace(d.Model),
		SerialNumber: strings.TrimSpace(d.SerialNumber),
		Features:     strings.TrimSpace(d.Features),
		Condition:    strings.TrimSpace(d.Condition),
		Accessories:  strings.TrimSpace(d.Accessories),
	}
}

// parsePrice accepts German decimal commas alongside dots and rejects
// anything that is not a non-negative amount.
func parsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: price is required", ErrInvalidInput)
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price %q is not a number", ErrInvalidInput, raw)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return price, nil
}

// parseDateOrDefault applies the default-to-today policy only to an
// explicitly empty input. A malformed date is an error, never defaulted.
func parseDateOrDefault(raw string, today time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		y, m, d := today.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, raw)
	}
	return parsed, nil
}

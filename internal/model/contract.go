package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceInfo carries the purchase price, its spelled-out German form and the
// delivery date. It is derived at submission time and never stored on its own.
type PriceInfo struct {
	Price        decimal.Decimal
	PriceInWords string
	DeliveryDate time.Time
}

// Contract is a finalized sales contract. It is created atomically at
// generate time and immutable afterwards.
type Contract struct {
	Code      string
	Seller    Party
	Buyer     Party
	Device    Device
	Terms     string
	Price     PriceInfo
	CreatedAt time.Time
}

// ContractRecord is one row of the contracts register table.
type ContractRecord struct {
	ID              int64 `gorm:"primaryKey;autoIncrement"`
	ContractCode    string
	SellerFirstName string
	SellerLastName  string
	SellerStreet    string
	SellerPostal    string
	SellerPhone     string
	SellerEmail     string
	SellerIDNumber  string
	BuyerFirstName  string
	BuyerLastName   string
	BuyerStreet     string
	BuyerPostal     string
	BuyerPhone      string
	BuyerEmail      string
	BuyerIDNumber   string
	Manufacturer    string
	DeviceModel     string
	SerialNumber    string
	Features        string
	Condition       string
	Accessories     string
	Price           string
	PriceInWords    string
	DeliveryDate    string
	Terms           string
	CreatedAt       string
}

func (ContractRecord) TableName() string {
	return "contracts"
}

// NewContractRecord flattens a contract into its register row shape.
func NewContractRecord(c Contract) ContractRecord {
	return ContractRecord{
		ContractCode:    c.Code,
		SellerFirstName: c.Seller.FirstName,
		SellerLastName:  c.Seller.LastName,
		SellerStreet:    c.Seller.Street,
		SellerPostal:    c.Seller.PostalCity,
		SellerPhone:     c.Seller.Phone,
		SellerEmail:     c.Seller.Email,
		SellerIDNumber:  c.Seller.IDNumber,
		BuyerFirstName:  c.Buyer.FirstName,
		BuyerLastName:   c.Buyer.LastName,
		BuyerStreet:     c.Buyer.Street,
		BuyerPostal:     c.Buyer.PostalCity,
		BuyerPhone:      c.Buyer.Phone,
		BuyerEmail:      c.Buyer.Email,
		BuyerIDNumber:   c.Buyer.IDNumber,
		Manufacturer:    c.Device.Manufacturer,
		DeviceModel:     c.Device.Model,
		SerialNumber:    c.Device.SerialNumber,
		Features:        c.Device.Features,
		Condition:       c.Device.Condition,
		Accessories:     c.Device.Accessories,
		Price:           c.Price.Price.StringFixed(2),
		PriceInWords:    c.Price.PriceInWords,
		DeliveryDate:    c.Price.DeliveryDate.Format("2006-01-02"),
		Terms:           c.Terms,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
	}
}

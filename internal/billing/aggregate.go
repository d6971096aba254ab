// Package billing computes the per-tax-rate totals of a receipt.
package billing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/handyzentrum/shopdocs/internal/model"
)

// TaxBucket accumulates the netto and tax sums of all items sharing one VAT
// rate. Amounts stay unrounded; rendering rounds to two digits.
type TaxBucket struct {
	Rate  int
	Netto decimal.Decimal
	Tax   decimal.Decimal
}

// Brutto is the tax-inclusive sum of the bucket.
func (b TaxBucket) Brutto() decimal.Decimal {
	return b.Netto.Add(b.Tax)
}

// AggregateResult holds the non-empty tax buckets in ascending rate order and
// the tax-inclusive grand total. The bucket order is part of the rendering
// contract: the 0% row always precedes the 19% row.
type AggregateResult struct {
	Buckets    []TaxBucket
	GrandTotal decimal.Decimal
}

// Bucket returns the bucket for the given rate, if present.
func (r AggregateResult) Bucket(rate int) (TaxBucket, bool) {
	for _, b := range r.Buckets {
		if b.Rate == rate {
			return b, true
		}
	}
	return TaxBucket{}, false
}

// Aggregate sums the line items of a receipt into tax buckets and a grand
// total. An empty item list yields no buckets and a zero total; rejecting
// empty receipts is the caller's concern.
func Aggregate(items []model.LineItem) AggregateResult {
	buckets := make(map[int]*TaxBucket)
	grandTotal := decimal.Zero

	for _, item := range items {
		netto := item.Netto()
		rate := item.TaxRate()
		tax := netto.Mul(decimal.NewFromInt(int64(rate))).Div(decimal.NewFromInt(100))
		grandTotal = grandTotal.Add(netto).Add(tax)

		bucket, ok := buckets[rate]
		if !ok {
			bucket = &TaxBucket{Rate: rate}
			buckets[rate] = bucket
		}
		bucket.Netto = bucket.Netto.Add(netto)
		bucket.Tax = bucket.Tax.Add(tax)
	}

	result := AggregateResult{GrandTotal: grandTotal}
	for _, bucket := range buckets {
		result.Buckets = append(result.Buckets, *bucket)
	}
	sort.Slice(result.Buckets, func(i, j int) bool {
		return result.Buckets[i].Rate < result.Buckets[j].Rate
	})
	return result
}

package service

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReceiptInput() CreateReceiptInput {
	return CreateReceiptInput{
		CustomerName: "Anna Mueller",
		Items: []LineItemInput{
			{Description: "Case", Quantity: 1, UnitPrice: "10.00", TaxIncluded: false},
			{Description: "Cable", Quantity: 2, UnitPrice: "5.00", TaxIncluded: true},
		},
	}
}

func TestCreateReceiptHappyPath(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.receipts.Create(context.Background(), validReceiptInput())
	require.NoError(t, err)

	assert.Regexp(t, `^RG20240110-[1-9]\d{2}$`, result.Number)
	assert.Equal(t, "21.90", result.GrandTotal)

	require.Len(t, result.Totals, 2)
	assert.Equal(t, TaxTotal{Rate: 0, Netto: "10.00", Tax: "0.00", Brutto: "10.00"}, result.Totals[0])
	assert.Equal(t, TaxTotal{Rate: 19, Netto: "10.00", Tax: "1.90", Brutto: "11.90"}, result.Totals[1])

	content, err := os.ReadFile(result.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(content[:4]))
	assert.Contains(t, result.FilePath, "receipt_Anna Mueller_"+result.Number+".pdf")
}

func TestCreateReceiptRejectsEmptyItemList(t *testing.T) {
	env := newTestEnv(t)

	input := validReceiptInput()
	input.Items = nil

	_, err := env.receipts.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Rejected before any side effect: no receipt file, no counter state.
	assert.NoDirExists(t, env.dataDir)
	assert.NoFileExists(t, env.counterPath)
}

func TestCreateReceiptValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := map[string]func(*CreateReceiptInput){
		"missing customer":   func(in *CreateReceiptInput) { in.CustomerName = "  " },
		"zero quantity":      func(in *CreateReceiptInput) { in.Items[0].Quantity = 0 },
		"negative quantity":  func(in *CreateReceiptInput) { in.Items[1].Quantity = -2 },
		"malformed price":    func(in *CreateReceiptInput) { in.Items[0].UnitPrice = "zehn" },
		"negative price":     func(in *CreateReceiptInput) { in.Items[0].UnitPrice = "-5.00" },
		"blank description":  func(in *CreateReceiptInput) { in.Items[0].Description = " " },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			input := validReceiptInput()
			mutate(&input)

			_, err := env.receipts.Create(ctx, input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateReceiptAcceptsGermanDecimalComma(t *testing.T) {
	env := newTestEnv(t)

	input := validReceiptInput()
	input.Items[0].UnitPrice = "9,99"

	result, err := env.receipts.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "21.89", result.GrandTotal)
}

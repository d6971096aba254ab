// Package pdf lays out sales contracts and receipts as PDF documents.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/handyzentrum/shopdocs/internal/billing"
	"github.com/handyzentrum/shopdocs/internal/model"
)

// ErrMissingPriceWords is returned when a contract reaches the renderer
// without its spelled-out price. Computing the words is the orchestration
// layer's job, never the renderer's.
var ErrMissingPriceWords = errors.New("price info has no spelled-out form")

const fontName = "Helvetica"

// Generator renders contract and receipt documents. Output is deterministic
// for identical input except for the date stamp, which comes from the
// injectable clock.
type Generator struct {
	company model.Company
	now     func() time.Time
}

func NewGenerator(company model.Company) *Generator {
	return &Generator{company: company, now: time.Now}
}

// WithClock replaces the wall clock used for the document date stamps.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// RenderContract builds the Kaufvertrag PDF. Every field of the data model
// is emitted even when empty; the layout never drops a row.
func (g *Generator) RenderContract(contract model.Contract) ([]byte, error) {
	if contract.Price.PriceInWords == "" {
		return nil, ErrMissingPriceWords
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 15, 15)
	doc.SetCatalogSort(true)
	doc.SetCreationDate(g.now())
	doc.SetModificationDate(g.now())
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont(fontName, "B", 14)
	doc.CellFormat(0, 10, tr("Kaufvertrag über ein gebrauchtes Gerät"), "", 1, "C", false, 0, "")
	doc.SetFont(fontName, "I", 10)
	doc.CellFormat(0, 5, tr("über ein gebrauchtes Mobiltelefon"), "", 1, "C", false, 0, "")
	doc.Ln(8)

	g.companyBlock(doc, tr)

	doc.SetFont(fontName, "B", 12)
	doc.CellFormat(0, 10, tr(fmt.Sprintf("Vertragsnummer: %s", contract.Code)), "", 1, "L", false, 0, "")
	doc.Ln(3)

	g.partiesSection(doc, tr, contract.Seller, contract.Buyer)
	g.devicePriceSection(doc, tr, contract.Device, contract.Price)
	g.termsSection(doc, tr, contract.Terms)
	g.contractFooter(doc, tr)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderReceipt builds the Rechnung PDF, including the item table and the
// tax breakdown in the bucket order the aggregate carries (0% before 19%).
func (g *Generator) RenderReceipt(receipt model.Receipt, aggregate billing.AggregateResult) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 15, 15)
	doc.SetCatalogSort(true)
	doc.SetCreationDate(g.now())
	doc.SetModificationDate(g.now())
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont(fontName, "B", 12)
	doc.CellFormat(0, 10, tr(g.company.Name), "", 1, "L", false, 0, "")
	doc.SetFont(fontName, "", 10)
	doc.CellFormat(0, 5, tr(fmt.Sprintf("%s, %s", g.company.Street, g.company.PostalCity)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, tr(g.company.Website), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, tr(g.company.Email), "", 1, "L", false, 0, "")
	doc.Ln(8)

	doc.CellFormat(0, 5, tr(fmt.Sprintf("Kunde: %s", receipt.CustomerName)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, tr(fmt.Sprintf("Erstellungsdatum: %s, %s", g.company.City, g.now().Format("02.01.2006"))), "", 1, "R", false, 0, "")
	doc.Ln(8)

	doc.SetFont(fontName, "B", 12)
	doc.CellFormat(0, 10, tr(fmt.Sprintf("Rechnung: %s", receipt.Number)), "", 1, "L", false, 0, "")
	doc.Ln(3)

	itemWidths := []float64{80, 20, 30, 20, 30}
	drawRow(doc, tr, []string{"Beschreibung", "Menge", "Einzelpreis", "USt", "Gesamtpreis"}, itemWidths, true)
	for _, item := range receipt.Items {
		lineTotal := item.Netto().Mul(decimal.NewFromInt(int64(100 + item.TaxRate()))).Div(decimal.NewFromInt(100))
		drawRow(doc, tr, []string{
			item.Description,
			fmt.Sprintf("%d", item.Quantity),
			euros(item.UnitPrice),
			fmt.Sprintf("%d%%", item.TaxRate()),
			euros(lineTotal),
		}, itemWidths, false)
	}

	doc.Ln(8)
	doc.SetFont(fontName, "", 11)
	doc.CellFormat(0, 10, tr(fmt.Sprintf("Gesamt: %s", euros(aggregate.GrandTotal))), "", 1, "L", false, 0, "")
	doc.Ln(3)

	taxWidths := []float64{40, 40, 40, 40}
	drawRow(doc, tr, []string{"USt", "Netto", "Steuerbetrag", "Brutto"}, taxWidths, true)
	for _, bucket := range aggregate.Buckets {
		drawRow(doc, tr, []string{
			fmt.Sprintf("%d%% USt", bucket.Rate),
			euros(bucket.Netto),
			euros(bucket.Tax),
			euros(bucket.Brutto()),
		}, taxWidths, false)
	}

	doc.Ln(8)
	doc.SetFont(fontName, "", 10)
	doc.CellFormat(0, 5, tr(`Hinweis: Bei Angabe "0%" unterliegt der Artikel als Gebrauchtwarenkauf`), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, tr("der Differenzbesteuerung nach §25a UStG."), "", 1, "L", false, 0, "")
	doc.Ln(8)
	doc.CellFormat(0, 5, tr("Mit freundlichen Grüßen"), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, tr(fmt.Sprintf("Ihr %s-Team", g.company.Name)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) companyBlock(doc *gofpdf.Fpdf, tr func(string) string) {
	doc.SetFont(fontName, "", 10)
	for _, line := range []string{
		g.company.Name,
		g.company.Street,
		g.company.PostalCity,
		g.company.Phone,
		g.company.Website,
		g.company.Email,
	} {
		doc.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
	doc.Ln(8)
}

func (g *Generator) partiesSection(doc *gofpdf.Fpdf, tr func(string) string, seller, buyer model.Party) {
	sectionTitle(doc, tr, "Verkäufer und Käufer")

	doc.SetFont(fontName, "B", 10)
	doc.CellFormat(80, 6, tr("Verkäufer"), "", 0, "L", false, 0, "")
	doc.CellFormat(80, 6, tr("Käufer"), "", 1, "L", false, 0, "")

	doc.SetFont(fontName, "", 10)
	rows := []struct {
		label         string
		seller, buyer string
	}{
		{"Vorname", seller.FirstName, buyer.FirstName},
		{"Nachname", seller.LastName, buyer.LastName},
		{"Straße", seller.Street, buyer.Street},
		{"PLZ / Ort", seller.PostalCity, buyer.PostalCity},
		{"Telefon", seller.Phone, buyer.Phone},
		{"E-Mail", seller.Email, buyer.Email},
		{"Ausweis-Nr", seller.IDNumber, buyer.IDNumber},
	}
	for _, row := range rows {
		doc.CellFormat(80, 6, tr(fmt.Sprintf("%s: %s", row.label, row.seller)), "", 0, "L", false, 0, "")
		doc.CellFormat(80, 6, tr(fmt.Sprintf("%s: %s", row.label, row.buyer)), "", 1, "L", false, 0, "")
	}
	doc.Ln(5)
}

func (g *Generator) devicePriceSection(doc *gofpdf.Fpdf, tr func(string) string, device model.Device, price model.PriceInfo) {
	sectionTitle(doc, tr, "Gegenstand / Gerät und Kaufpreis")

	doc.SetFont(fontName, "B", 10)
	doc.CellFormat(80, 6, tr("Gegenstand / Gerät"), "", 0, "L", false, 0, "")
	doc.CellFormat(80, 6, tr("Kaufpreis"), "", 1, "L", false, 0, "")

	doc.SetFont(fontName, "", 10)
	left := []struct{ label, value string }{
		{"Hersteller", device.Manufacturer},
		{"Modell", device.Model},
		{"Seriennummer", device.SerialNumber},
		{"Besonderheiten", device.Features},
		{"Zustand", device.Condition},
		{"Sonstiges/Zubehör", device.Accessories},
	}
	right := []string{
		fmt.Sprintf("Kaufpreis in EUR: %s EUR", price.Price.StringFixed(2)),
		fmt.Sprintf("In Worten: %s", price.PriceInWords),
		fmt.Sprintf("Lieferdatum: %s", price.DeliveryDate.Format("02.01.2006")),
	}
	for i, row := range left {
		doc.CellFormat(80, 6, tr(fmt.Sprintf("%s: %s", row.label, row.value)), "", 0, "L", false, 0, "")
		priceCell := ""
		if i < len(right) {
			priceCell = right[i]
		}
		doc.CellFormat(80, 6, tr(priceCell), "", 1, "L", false, 0, "")
	}
	doc.Ln(5)
}

func (g *Generator) termsSection(doc *gofpdf.Fpdf, tr func(string) string, terms string) {
	sectionTitle(doc, tr, "Vereinbarungen")
	doc.SetFont(fontName, "", 10)
	doc.MultiCell(0, 6, tr(terms), "", "L", false)
	doc.Ln(5)
}

func (g *Generator) contractFooter(doc *gofpdf.Fpdf, tr func(string) string) {
	doc.SetY(-40)
	doc.SetFont(fontName, "", 10)
	doc.CellFormat(0, 5, tr(fmt.Sprintf("Datum: %s, %s", g.company.City, g.now().Format("02.01.2006"))), "", 1, "L", false, 0, "")
	doc.Ln(5)
	doc.CellFormat(90, 5, tr("Unterschrift Verkäufer: _________________________"), "", 0, "L", false, 0, "")
	doc.CellFormat(90, 5, tr("Unterschrift Käufer: _________________________"), "", 1, "R", false, 0, "")
}

func sectionTitle(doc *gofpdf.Fpdf, tr func(string) string, title string) {
	doc.SetFont(fontName, "B", 12)
	doc.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
	doc.Ln(2)
}

func drawRow(doc *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	doc.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		doc.CellFormat(widths[i], 8, tr(col), "1", 0, align, false, 0, "")
	}
	doc.Ln(-1)
}

func euros(value decimal.Decimal) string {
	return value.StringFixed(2) + " EUR"
}

package pricing

import (
	"strings"

	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/ajjawam/ajjawam-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// The engine is pure: every derived field is a function of its inputs and is
// recomputed identically wherever it is displayed (bill entry, invoice print,
// reports, Excel export). Nothing here touches storage.

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// GSTRates is the fixed set of permitted GST percentages
var GSTRates = []int64{0, 5, 12, 18, 28}

// IsValidGSTRate reports whether pct is one of the permitted GST rates
func IsValidGSTRate(pct decimal.Decimal) bool {
	for _, r := range GSTRates {
		if pct.Equal(decimal.NewFromInt(r)) {
			return true
		}
	}
	return false
}

// RoundMoney rounds to 2 decimal places, half away from zero. All stored and
// displayed monetary values pass through this.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineDiscount is the result of applying a discount to a unit price
type LineDiscount struct {
	DiscountAmount     decimal.Decimal
	PriceAfterDiscount decimal.Decimal
}

// ComputeLineDiscount applies a percentage or flat discount to a unit price
// before tax. The discounted price is clamped at zero: a flat discount larger
// than the price yields a free item, not a negative one.
func ComputeLineDiscount(priceBeforeTax decimal.Decimal, method enum.DiscountMethod, value decimal.Decimal) (LineDiscount, error) {
	if priceBeforeTax.IsNegative() {
		return LineDiscount{}, apperror.NewBadRequestError("Price cannot be negative")
	}
	if value.IsNegative() {
		return LineDiscount{}, apperror.NewBadRequestError("Discount value cannot be negative")
	}

	var amount decimal.Decimal
	switch method {
	case enum.DiscountMethodPercentage:
		amount = priceBeforeTax.Mul(value).Div(hundred)
	case enum.DiscountMethodFlat:
		amount = value
	default:
		return LineDiscount{}, apperror.NewBadRequestError("Unknown discount method: " + string(method))
	}

	after := priceBeforeTax.Sub(amount)
	if after.IsNegative() {
		amount = priceBeforeTax
		after = decimal.Zero
	}

	return LineDiscount{DiscountAmount: amount, PriceAfterDiscount: after}, nil
}

// ComputeFinalPrice returns the tax-inclusive unit price
func ComputeFinalPrice(priceAfterDiscount, gstPercentage decimal.Decimal) decimal.Decimal {
	return priceAfterDiscount.Mul(hundred.Add(gstPercentage)).Div(hundred)
}

// GSTSplit holds the CGST/SGST/IGST components of a tax amount
type GSTSplit struct {
	CGST decimal.Decimal
	SGST decimal.Decimal
	IGST decimal.Decimal
}

// Total returns cgst + sgst + igst
func (s GSTSplit) Total() decimal.Decimal {
	return s.CGST.Add(s.SGST).Add(s.IGST)
}

// Add returns the component-wise sum of two splits
func (s GSTSplit) Add(o GSTSplit) GSTSplit {
	return GSTSplit{
		CGST: s.CGST.Add(o.CGST),
		SGST: s.SGST.Add(o.SGST),
		IGST: s.IGST.Add(o.IGST),
	}
}

// SameState reports whether seller and counterparty are registered in the same
// state for GST purposes
func SameState(sellerState, counterpartyState string) bool {
	return strings.EqualFold(strings.TrimSpace(sellerState), strings.TrimSpace(counterpartyState))
}

// GSTTypeFor returns the invoice GST labeling for a seller/counterparty pair
func GSTTypeFor(sellerState, counterpartyState string) enum.GSTType {
	if SameState(sellerState, counterpartyState) {
		return enum.GSTTypeCGSTSGST
	}
	return enum.GSTTypeIGST
}

// ComputeGSTSplit splits the tax on an ex-GST amount. Intra-state the tax is
// halved into CGST and SGST; inter-state it is charged entirely as IGST.
// The components always sum to amountExGST * gstPercentage / 100 exactly.
func ComputeGSTSplit(amountExGST, gstPercentage decimal.Decimal, sellerState, counterpartyState string) GSTSplit {
	tax := amountExGST.Mul(gstPercentage).Div(hundred)
	if SameState(sellerState, counterpartyState) {
		half := tax.Div(two)
		return GSTSplit{CGST: half, SGST: half}
	}
	return GSTSplit{IGST: tax}
}

// ComputePrintPrice applies psychological rounding to a tax-inclusive selling
// price for retail tags: the result always ends in 49 or 99, never a round
// hundred. Non-positive prices yield 0.
func ComputePrintPrice(sellingPrice decimal.Decimal) int64 {
	if sellingPrice.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	price := sellingPrice.Round(0).IntPart()
	if price <= 0 {
		return 0
	}
	lastTwo := price % 100
	switch {
	case lastTwo == 0:
		return price - 1
	case lastTwo <= 50:
		return price - lastTwo + 49
	default:
		return price - lastTwo + 99
	}
}

// LineInput is one raw bill or purchase line before derivation
type LineInput struct {
	Quantity       int
	PriceBeforeTax decimal.Decimal
	DiscountMethod enum.DiscountMethod
	DiscountValue  decimal.Decimal
	GSTPercentage  decimal.Decimal
}

// LineResult carries every derived field for a line. Monetary unit values are
// rounded to 2dp; the GST split is kept exact and rounded only at display.
type LineResult struct {
	DiscountAmount     decimal.Decimal
	PriceAfterDiscount decimal.Decimal
	FinalPrice         decimal.Decimal
	LineTotal          decimal.Decimal
	TaxableAmount      decimal.Decimal
	GSTAmount          decimal.Decimal
	Split              GSTSplit
}

// ComputeLine derives all fields for a single line. billDiscountPct is an
// additional bill-level percentage discount applied per line before GST
// (zero when the bill discount is flat or absent).
func ComputeLine(in LineInput, billDiscountPct decimal.Decimal, sellerState, counterpartyState string) (LineResult, error) {
	if in.Quantity <= 0 {
		return LineResult{}, apperror.NewBadRequestError("Quantity must be positive")
	}
	if !IsValidGSTRate(in.GSTPercentage) {
		return LineResult{}, apperror.NewBadRequestError("GST rate must be one of 0, 5, 12, 18, 28")
	}
	if billDiscountPct.IsNegative() {
		return LineResult{}, apperror.NewBadRequestError("Discount value cannot be negative")
	}

	ld, err := ComputeLineDiscount(in.PriceBeforeTax, in.DiscountMethod, in.DiscountValue)
	if err != nil {
		return LineResult{}, err
	}

	after := ld.PriceAfterDiscount
	if billDiscountPct.IsPositive() {
		after = after.Mul(hundred.Sub(billDiscountPct)).Div(hundred)
	}
	after = RoundMoney(after)

	final := RoundMoney(ComputeFinalPrice(after, in.GSTPercentage))
	qty := decimal.NewFromInt(int64(in.Quantity))
	taxable := after.Mul(qty)

	return LineResult{
		DiscountAmount:     RoundMoney(ld.DiscountAmount),
		PriceAfterDiscount: after,
		FinalPrice:         final,
		LineTotal:          RoundMoney(final.Mul(qty)),
		TaxableAmount:      taxable,
		GSTAmount:          taxable.Mul(in.GSTPercentage).Div(hundred),
		Split:              ComputeGSTSplit(taxable, in.GSTPercentage, sellerState, counterpartyState),
	}, nil
}

// BillTotals is the invoice footer
type BillTotals struct {
	SubTotal   decimal.Decimal
	TotalGST   decimal.Decimal
	GrandTotal decimal.Decimal
	Split      GSTSplit
}

// ComputeBillTotals derives the footer for a set of lines. A percentage
// bill-level discount is pushed down into every line before GST; a flat
// bill-level discount and redeemed coins are subtracted once from the grand
// total. The grand total is clamped at zero.
func ComputeBillTotals(lines []LineInput, billDiscountMethod enum.DiscountMethod, billDiscountValue decimal.Decimal, usedCoins int64, sellerState, counterpartyState string) (BillTotals, []LineResult, error) {
	if billDiscountValue.IsNegative() {
		return BillTotals{}, nil, apperror.NewBadRequestError("Discount value cannot be negative")
	}
	if usedCoins < 0 {
		return BillTotals{}, nil, apperror.NewBadRequestError("Used coins cannot be negative")
	}

	billPct := decimal.Zero
	if billDiscountMethod == enum.DiscountMethodPercentage {
		billPct = billDiscountValue
	}

	results := make([]LineResult, 0, len(lines))
	totals := BillTotals{SubTotal: decimal.Zero, TotalGST: decimal.Zero, GrandTotal: decimal.Zero}
	for _, in := range lines {
		res, err := ComputeLine(in, billPct, sellerState, counterpartyState)
		if err != nil {
			return BillTotals{}, nil, err
		}
		results = append(results, res)
		totals.SubTotal = totals.SubTotal.Add(res.TaxableAmount)
		totals.TotalGST = totals.TotalGST.Add(res.GSTAmount)
		totals.GrandTotal = totals.GrandTotal.Add(res.LineTotal)
		totals.Split = totals.Split.Add(res.Split)
	}

	if billDiscountMethod == enum.DiscountMethodFlat {
		totals.GrandTotal = totals.GrandTotal.Sub(billDiscountValue)
	}
	if usedCoins > 0 {
		totals.GrandTotal = totals.GrandTotal.Sub(decimal.NewFromInt(usedCoins))
	}
	if totals.GrandTotal.IsNegative() {
		totals.GrandTotal = decimal.Zero
	}

	totals.SubTotal = RoundMoney(totals.SubTotal)
	totals.TotalGST = RoundMoney(totals.TotalGST)
	totals.GrandTotal = RoundMoney(totals.GrandTotal)
	return totals, results, nil
}

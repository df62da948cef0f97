package pricing

import (
	"testing"

	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestComputeLineDiscount_Percentage(t *testing.T) {
	ld, err := ComputeLineDiscount(d("1000"), enum.DiscountMethodPercentage, d("10"))
	require.NoError(t, err)
	assert.True(t, ld.DiscountAmount.Equal(d("100")), "discount = %s", ld.DiscountAmount)
	assert.True(t, ld.PriceAfterDiscount.Equal(d("900")), "after = %s", ld.PriceAfterDiscount)
}

func TestComputeLineDiscount_Flat(t *testing.T) {
	ld, err := ComputeLineDiscount(d("500"), enum.DiscountMethodFlat, d("50"))
	require.NoError(t, err)
	assert.True(t, ld.DiscountAmount.Equal(d("50")))
	assert.True(t, ld.PriceAfterDiscount.Equal(d("450")))
}

func TestComputeLineDiscount_FlatClampedAtZero(t *testing.T) {
	ld, err := ComputeLineDiscount(d("30"), enum.DiscountMethodFlat, d("100"))
	require.NoError(t, err)
	assert.True(t, ld.PriceAfterDiscount.IsZero(), "price must not go negative")
	assert.True(t, ld.DiscountAmount.Equal(d("30")))
}

func TestComputeLineDiscount_RejectsNegatives(t *testing.T) {
	_, err := ComputeLineDiscount(d("-1"), enum.DiscountMethodFlat, d("0"))
	assert.Error(t, err)

	_, err = ComputeLineDiscount(d("100"), enum.DiscountMethodPercentage, d("-5"))
	assert.Error(t, err)

	_, err = ComputeLineDiscount(d("100"), enum.DiscountMethod("bogus"), d("5"))
	assert.Error(t, err)
}

func TestComputeFinalPrice(t *testing.T) {
	final := ComputeFinalPrice(d("900"), d("18"))
	assert.True(t, final.Equal(d("1062")), "final = %s", final)
}

func TestComputeFinalPrice_IsPure(t *testing.T) {
	a := ComputeFinalPrice(d("123.45"), d("12"))
	b := ComputeFinalPrice(d("123.45"), d("12"))
	assert.True(t, a.Equal(b))
}

func TestComputeGSTSplit_IntraState(t *testing.T) {
	split := ComputeGSTSplit(d("900"), d("18"), "Tamil Nadu", "Tamil Nadu")
	assert.True(t, split.CGST.Equal(d("81")))
	assert.True(t, split.SGST.Equal(d("81")))
	assert.True(t, split.IGST.IsZero())
}

func TestComputeGSTSplit_InterState(t *testing.T) {
	split := ComputeGSTSplit(d("900"), d("18"), "Tamil Nadu", "Kerala")
	assert.True(t, split.CGST.IsZero())
	assert.True(t, split.SGST.IsZero())
	assert.True(t, split.IGST.Equal(d("162")))
}

func TestComputeGSTSplit_Conservation(t *testing.T) {
	amounts := []string{"0", "0.01", "99.99", "1234.56", "100000"}
	rates := []string{"0", "5", "12", "18", "28"}
	for _, a := range amounts {
		for _, r := range rates {
			expected := d(a).Mul(d(r)).Div(d("100"))

			intra := ComputeGSTSplit(d(a), d(r), "KA", "KA")
			assert.True(t, intra.Total().Equal(expected), "intra %s@%s: %s", a, r, intra.Total())
			assert.True(t, intra.IGST.IsZero())

			inter := ComputeGSTSplit(d(a), d(r), "KA", "MH")
			assert.True(t, inter.Total().Equal(expected), "inter %s@%s: %s", a, r, inter.Total())
			assert.True(t, inter.CGST.IsZero())
		}
	}
}

func TestGSTTypeFor(t *testing.T) {
	assert.Equal(t, enum.GSTTypeCGSTSGST, GSTTypeFor("Tamil Nadu", "tamil nadu"))
	assert.Equal(t, enum.GSTTypeIGST, GSTTypeFor("Tamil Nadu", "Kerala"))
}

func TestComputePrintPrice(t *testing.T) {
	tests := []struct {
		price    string
		expected int64
	}{
		{"1199", 1199}, // lastTwo 99 stays
		{"1200", 1199}, // round hundred drops to 99
		{"1249", 1249},
		{"1250", 1249}, // lastTwo 50 -> 49
		{"1251", 1299}, // lastTwo 51 -> 99
		{"1050", 1049},
		{"101", 149},
		{"49", 49},
		{"100", 99},
		{"1", 49},
		{"0", 0},  // guard: non-positive never becomes -1
		{"-5", 0}, // guard
		{"1199.60", 1199}, // rounds to 1200 first, then 1199
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ComputePrintPrice(d(tt.price)), "price %s", tt.price)
	}
}

func TestComputePrintPrice_AlwaysEnds49Or99(t *testing.T) {
	for p := int64(1); p <= 5000; p++ {
		got := ComputePrintPrice(decimal.NewFromInt(p))
		mod := got % 100
		assert.Truef(t, mod == 49 || mod == 99, "price %d -> %d (mod %d)", p, got, mod)
	}
}

func TestComputeLine_DiscountedTaxedLine(t *testing.T) {
	// priceBeforeTax=1000, 10% discount, 18% GST, qty 3
	res, err := ComputeLine(LineInput{
		Quantity:       3,
		PriceBeforeTax: d("1000"),
		DiscountMethod: enum.DiscountMethodPercentage,
		DiscountValue:  d("10"),
		GSTPercentage:  d("18"),
	}, decimal.Zero, "TN", "TN")
	require.NoError(t, err)

	assert.True(t, res.DiscountAmount.Equal(d("100")))
	assert.True(t, res.PriceAfterDiscount.Equal(d("900")))
	assert.True(t, res.FinalPrice.Equal(d("1062")), "final = %s", res.FinalPrice)
	assert.True(t, res.LineTotal.Equal(d("3186")), "total = %s", res.LineTotal)
}

func TestComputeLine_InvalidGSTRate(t *testing.T) {
	_, err := ComputeLine(LineInput{
		Quantity:       1,
		PriceBeforeTax: d("100"),
		DiscountMethod: enum.DiscountMethodFlat,
		DiscountValue:  d("0"),
		GSTPercentage:  d("15"),
	}, decimal.Zero, "TN", "TN")
	assert.Error(t, err)
}

func TestComputeLine_ZeroQuantity(t *testing.T) {
	_, err := ComputeLine(LineInput{
		Quantity:       0,
		PriceBeforeTax: d("100"),
		DiscountMethod: enum.DiscountMethodFlat,
		DiscountValue:  d("0"),
		GSTPercentage:  d("5"),
	}, decimal.Zero, "TN", "TN")
	assert.Error(t, err)
}

func TestComputeBillTotals_NoDiscount(t *testing.T) {
	lines := []LineInput{
		{Quantity: 3, PriceBeforeTax: d("1000"), DiscountMethod: enum.DiscountMethodPercentage, DiscountValue: d("10"), GSTPercentage: d("18")},
		{Quantity: 2, PriceBeforeTax: d("200"), DiscountMethod: enum.DiscountMethodFlat, DiscountValue: d("0"), GSTPercentage: d("5")},
	}
	totals, results, err := ComputeBillTotals(lines, "", decimal.Zero, 0, "TN", "TN")
	require.NoError(t, err)
	require.Len(t, results, 2)

	// 900*3 + 200*2 = 3100
	assert.True(t, totals.SubTotal.Equal(d("3100")), "subTotal = %s", totals.SubTotal)
	// 486 + 20 = 506
	assert.True(t, totals.TotalGST.Equal(d("506")), "gst = %s", totals.TotalGST)
	// 3186 + 420 = 3606
	assert.True(t, totals.GrandTotal.Equal(d("3606")), "grand = %s", totals.GrandTotal)
	assert.True(t, totals.Split.Total().Equal(totals.TotalGST))
}

func TestComputeBillTotals_FlatBillDiscountAndCoins(t *testing.T) {
	lines := []LineInput{
		{Quantity: 1, PriceBeforeTax: d("1000"), DiscountMethod: enum.DiscountMethodFlat, DiscountValue: d("0"), GSTPercentage: d("0")},
	}
	totals, _, err := ComputeBillTotals(lines, enum.DiscountMethodFlat, d("100"), 50, "TN", "TN")
	require.NoError(t, err)
	// 1000 - 100 flat - 50 coins
	assert.True(t, totals.GrandTotal.Equal(d("850")), "grand = %s", totals.GrandTotal)
	// flat bill discount does not touch per-line figures
	assert.True(t, totals.SubTotal.Equal(d("1000")))
}

func TestComputeBillTotals_PercentageBillDiscountAppliedPerLine(t *testing.T) {
	lines := []LineInput{
		{Quantity: 2, PriceBeforeTax: d("500"), DiscountMethod: enum.DiscountMethodFlat, DiscountValue: d("0"), GSTPercentage: d("18")},
	}
	totals, results, err := ComputeBillTotals(lines, enum.DiscountMethodPercentage, d("10"), 0, "TN", "TN")
	require.NoError(t, err)
	// 500 * 0.9 = 450 per unit before GST
	assert.True(t, results[0].PriceAfterDiscount.Equal(d("450")))
	assert.True(t, totals.SubTotal.Equal(d("900")))
	// GST on the discounted base: 900 * 18% = 162
	assert.True(t, totals.TotalGST.Equal(d("162")), "gst = %s", totals.TotalGST)
	assert.True(t, totals.GrandTotal.Equal(d("1062")))
}

func TestComputeBillTotals_GrandTotalClampedAtZero(t *testing.T) {
	lines := []LineInput{
		{Quantity: 1, PriceBeforeTax: d("10"), DiscountMethod: enum.DiscountMethodFlat, DiscountValue: d("0"), GSTPercentage: d("0")},
	}
	totals, _, err := ComputeBillTotals(lines, enum.DiscountMethodFlat, d("100"), 0, "TN", "TN")
	require.NoError(t, err)
	assert.True(t, totals.GrandTotal.IsZero())
}

func TestRoundMoney_HalfAwayFromZero(t *testing.T) {
	assert.True(t, RoundMoney(d("1.005")).Equal(d("1.01")))
	assert.True(t, RoundMoney(d("-1.005")).Equal(d("-1.01")))
	assert.True(t, RoundMoney(d("2.344")).Equal(d("2.34")))
	assert.True(t, RoundMoney(d("2.345")).Equal(d("2.35")))
}

package enum

// DiscountMethod represents how a discount value is interpreted
type DiscountMethod string

const (
	// DiscountMethodPercentage treats the value as a percentage of the price
	DiscountMethodPercentage DiscountMethod = "percentage"
	// DiscountMethodFlat treats the value as an absolute amount per unit price
	DiscountMethodFlat DiscountMethod = "flat"
)

// IsValid checks if the method is a known DiscountMethod
func (m DiscountMethod) IsValid() bool {
	return m == DiscountMethodPercentage || m == DiscountMethodFlat
}

func (m DiscountMethod) String() string {
	return string(m)
}

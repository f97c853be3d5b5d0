package cart

import "math"

// OrderType selects how an order is fulfilled; it drives the delivery fee.
type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDineIn   OrderType = "dine_in"
)

// QuoteOptions carries the checkout selections pricing depends on. TaxRate
// is jurisdiction-dependent configuration, not a constant; PromoDiscount is
// the flat amount the current promo policy grants for PromoCode.
type QuoteOptions struct {
	OrderType     OrderType
	DeliveryFee   float64
	PromoCode     string
	PromoDiscount float64
	TaxRate       float64
}

// Totals is the derived pricing consumed by checkout. Values are kept
// unrounded; apply Round2 only at the response boundary so rounding drift
// never accumulates across lines.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Discount    float64 `json:"discount"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

// Quote derives checkout totals from the cart lines and the order selections.
func Quote(items []LineItem, opts QuoteOptions) Totals {
	var subtotal float64
	for _, line := range items {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}

	var fee float64
	if opts.OrderType == OrderTypeDelivery {
		fee = opts.DeliveryFee
	}

	var discount float64
	if opts.PromoCode != "" && opts.PromoDiscount > 0 {
		discount = -math.Min(opts.PromoDiscount, subtotal+fee)
	}

	tax := (subtotal + fee) * opts.TaxRate

	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Discount:    discount,
		Tax:         tax,
		Total:       subtotal + fee + discount + tax,
	}
}

// Round2 rounds to 2 decimal places for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Rounded returns a presentation copy of the totals.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:    Round2(t.Subtotal),
		DeliveryFee: Round2(t.DeliveryFee),
		Discount:    Round2(t.Discount),
		Tax:         Round2(t.Tax),
		Total:       Round2(t.Total),
	}
}

package domain

import "github.com/shopspring/decimal"

var (
	// FreeShippingThreshold is the subtotal above which shipping is free.
	FreeShippingThreshold = decimal.NewFromInt(100)
	// FlatShippingRate applies to non-empty carts at or under the threshold.
	FlatShippingRate = decimal.NewFromInt(10)
)

// Summary is the order summary shown next to the cart.
type Summary struct {
	Items        int
	Subtotal     decimal.Decimal
	Shipping     decimal.Decimal
	Total        decimal.Decimal
	FreeShipping bool
	// Remaining is the gap between the subtotal and the free shipping threshold.
	Remaining decimal.Decimal
}

func (c Cart) Summary() Summary {
	subtotal := c.TotalPrice()
	s := Summary{
		Items:     c.TotalItems(),
		Subtotal:  subtotal,
		Shipping:  decimal.Zero,
		Remaining: decimal.Zero,
	}
	switch {
	case c.IsEmpty():
	case subtotal.GreaterThan(FreeShippingThreshold):
		s.FreeShipping = true
	default:
		s.Shipping = FlatShippingRate
		s.Remaining = FreeShippingThreshold.Sub(subtotal)
	}
	s.Total = subtotal.Add(s.Shipping)
	return s
}

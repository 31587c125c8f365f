package invoice

import (
	"context"

	"github.com/mkandawire/supplyhub-backend/internal/modules/order"
	"github.com/mkandawire/supplyhub-backend/internal/money"
)

// TaxabilityLookup resolves an item's current taxable flag from the catalog.
// Used only on the legacy path, for order lines written before the taxable
// flag was snapshotted onto them.
type TaxabilityLookup interface {
	IsItemTaxable(ctx context.Context, itemID string) (bool, error)
}

// NormalizeLine converts one raw order line into a canonical taxed invoice
// line. snapshot reports whether the parent order carries a monetary
// snapshot (order.HasMonetarySnapshot); on snapshot orders the line's
// precomputed values are authoritative, on legacy orders price*qty is
// recomputed and taxability falls back to a catalog lookup. Lookup failures
// and missing items default to non-taxable.
func NormalizeLine(ctx context.Context, l *order.OrderLine, snapshot bool, ratePercent float64, lookup TaxabilityLookup) Line {
	price := l.UnitPrice()
	qty := l.EffectiveQty()

	subtotal := money.Round2(price * qty)
	if l.LineSubtotal != nil {
		subtotal = *l.LineSubtotal
	}

	taxable := false
	switch {
	case l.Taxable != nil:
		taxable = *l.Taxable
	case !snapshot && l.ItemID != "" && lookup != nil:
		if t, err := lookup.IsItemTaxable(ctx, l.ItemID); err == nil {
			taxable = t
		}
	}

	var tax float64
	if taxable {
		tax = money.Round2(subtotal * ratePercent / 100)
	}
	if l.LineTax != nil {
		tax = *l.LineTax
	}

	return Line{
		ItemID:       l.ItemID,
		ItemName:     l.ItemName,
		Unit:         l.Unit,
		Quantity:     qty,
		Price:        price,
		LineSubtotal: subtotal,
		Taxable:      taxable,
		LineTax:      tax,
	}
}

// NormalizeLines runs NormalizeLine over every order line, returning the
// canonical lines plus the accumulated subtotal and tax, each rounded at the
// total boundary.
func NormalizeLines(ctx context.Context, o *order.Order, ratePercent float64, lookup TaxabilityLookup) ([]Line, float64, float64) {
	snapshot := o.HasMonetarySnapshot()
	lines := make([]Line, 0, len(o.Lines))
	var subtotal, tax float64
	for i := range o.Lines {
		line := NormalizeLine(ctx, &o.Lines[i], snapshot, ratePercent, lookup)
		lines = append(lines, line)
		subtotal += line.LineSubtotal
		tax += line.LineTax
	}
	return lines, money.Round2(subtotal), money.Round2(tax)
}

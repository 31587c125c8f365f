package invoice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkandawire/supplyhub-backend/internal/modules/order"
)

type fakeTaxability struct {
	taxable map[string]bool
	err     error
	calls   int
}

func (f *fakeTaxability) IsItemTaxable(_ context.Context, itemID string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.taxable[itemID], nil
}

func ptrF(v float64) *float64 { return &v }
func ptrB(v bool) *bool       { return &v }

func TestNormalizeLineLegacyRecomputes(t *testing.T) {
	l := &order.OrderLine{ItemID: "item-1", ItemName: "Flour", Quantity: 3, Price: 4.5}
	lookup := &fakeTaxability{taxable: map[string]bool{"item-1": true}}

	got := NormalizeLine(context.Background(), l, false, 13, lookup)

	assert.Equal(t, 13.5, got.LineSubtotal)
	assert.True(t, got.Taxable, "legacy path consults the catalog")
	assert.Equal(t, 1.76, got.LineTax) // round2(13.5 * 0.13)
	assert.Equal(t, 1, lookup.calls)
}

func TestNormalizeLinePrefersVendorPrice(t *testing.T) {
	l := &order.OrderLine{ItemName: "Oil", Quantity: 2, Price: 9.99, VendorPrice: ptrF(8.5)}

	got := NormalizeLine(context.Background(), l, false, 0, nil)

	assert.Equal(t, 8.5, got.Price)
	assert.Equal(t, 17.0, got.LineSubtotal)
}

func TestNormalizeLineDefaultsQuantityToOne(t *testing.T) {
	l := &order.OrderLine{ItemName: "Salt", Price: 2.5}

	got := NormalizeLine(context.Background(), l, false, 0, nil)

	assert.Equal(t, 1.0, got.Quantity)
	assert.Equal(t, 2.5, got.LineSubtotal)
}

func TestNormalizeLineSnapshotValuesAuthoritative(t *testing.T) {
	l := &order.OrderLine{
		ItemID:       "item-9",
		ItemName:     "Cheese",
		Quantity:     2,
		Price:        10,
		Taxable:      ptrB(true),
		LineSubtotal: ptrF(19.5), // snapshot disagrees with price*qty on purpose
		LineTax:      ptrF(2.54),
	}
	lookup := &fakeTaxability{}

	got := NormalizeLine(context.Background(), l, true, 13, lookup)

	assert.Equal(t, 19.5, got.LineSubtotal)
	assert.Equal(t, 2.54, got.LineTax)
	assert.Equal(t, 0, lookup.calls, "snapshot path never hits the catalog")
}

func TestNormalizeLineExplicitFlagSkipsLookup(t *testing.T) {
	l := &order.OrderLine{ItemID: "item-2", ItemName: "Bread", Quantity: 1, Price: 5, Taxable: ptrB(false)}
	lookup := &fakeTaxability{taxable: map[string]bool{"item-2": true}}

	got := NormalizeLine(context.Background(), l, false, 13, lookup)

	assert.False(t, got.Taxable)
	assert.Equal(t, 0.0, got.LineTax)
	assert.Equal(t, 0, lookup.calls)
}

func TestNormalizeLineLookupFailureDefaultsNonTaxable(t *testing.T) {
	l := &order.OrderLine{ItemID: "gone", ItemName: "Ghost", Quantity: 1, Price: 5}
	lookup := &fakeTaxability{err: errors.New("no such item")}

	got := NormalizeLine(context.Background(), l, false, 13, lookup)

	assert.False(t, got.Taxable)
	assert.Equal(t, 0.0, got.LineTax)
}

func TestNormalizeLinesAccumulatesTotals(t *testing.T) {
	o := &order.Order{
		Lines: []order.OrderLine{
			{ItemName: "A", Quantity: 2, Price: 10, Taxable: ptrB(true)},
			{ItemName: "B", Quantity: 1, Price: 5, Taxable: ptrB(false)},
		},
	}

	lines, subtotal, tax := NormalizeLines(context.Background(), o, 13, nil)

	require.Len(t, lines, 2)
	assert.Equal(t, 25.0, subtotal)
	assert.Equal(t, 2.6, tax)
	assert.Equal(t, 20.0, lines[0].LineSubtotal)
	assert.Equal(t, 2.6, lines[0].LineTax)
	assert.Equal(t, 5.0, lines[1].LineSubtotal)
	assert.Equal(t, 0.0, lines[1].LineTax)
}

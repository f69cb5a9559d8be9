package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusWireValues(t *testing.T) {
	cases := []struct {
		status OrderStatus
		wire   int
	}{
		{OrderStatusOrdered, 0},
		{OrderStatusDelivered, 1},
		{OrderStatusCancelled, 2},
		{OrderStatusReturned, 3},
		{OrderStatusPreparing, 4},
		{OrderStatusDelivering, 5},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.wire, tc.status.WireValue())
		})
	}
	assert.Equal(t, 0, OrderStatus("bogus").WireValue())
}

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus("Preparing")
	require.True(t, ok)
	assert.Equal(t, OrderStatusPreparing, status)

	_, ok = ParseOrderStatus("preparing")
	assert.False(t, ok)
}

func TestOrderStatusLabel(t *testing.T) {
	assert.Equal(t, "قيد التحضير", OrderStatusPreparing.Label())
	assert.Equal(t, "مرتجع", OrderStatusReturned.Label())
	assert.Equal(t, "Lost", OrderStatus("Lost").Label())
}

func TestCanTransitionExhaustive(t *testing.T) {
	path := []OrderStatus{OrderStatusOrdered, OrderStatusPreparing, OrderStatusDelivering, OrderStatusDelivered}
	pos := func(s OrderStatus) int {
		for i, p := range path {
			if p == s {
				return i
			}
		}
		return -1
	}

	for _, current := range AllOrderStatuses {
		for _, requested := range AllOrderStatuses {
			var want bool
			switch {
			case current.Terminal():
				want = false
			case requested == OrderStatusCancelled || requested == OrderStatusReturned:
				want = current == OrderStatusOrdered
			default:
				want = pos(requested) > pos(current)
			}
			assert.Equalf(t, want, CanTransition(current, requested), "%s -> %s", current, requested)
		}
	}
}

func TestCanTransitionTerminalAndUnknown(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned} {
		assert.True(t, s.Terminal())
		assert.Empty(t, NextStatuses(s))
	}
	assert.False(t, CanTransition("Lost", OrderStatusPreparing))
	assert.False(t, CanTransition(OrderStatusOrdered, "Lost"))
	assert.False(t, CanTransition(OrderStatusPreparing, OrderStatusPreparing))
}

func TestNextStatuses(t *testing.T) {
	assert.Equal(t, []OrderStatus{
		OrderStatusPreparing,
		OrderStatusDelivering,
		OrderStatusDelivered,
		OrderStatusCancelled,
		OrderStatusReturned,
	}, NextStatuses(OrderStatusOrdered))
	assert.Equal(t, []OrderStatus{OrderStatusDelivered}, NextStatuses(OrderStatusDelivering))
}

func TestMedicineMatches(t *testing.T) {
	m := Medicine{EnglishName: "Panadol Extra", ArabicName: "بنادول"}
	assert.True(t, m.Matches(""))
	assert.True(t, m.Matches("panadol"))
	assert.True(t, m.Matches("EXTRA"))
	assert.True(t, m.Matches("بنا"))
	assert.False(t, m.Matches("aspirin"))
	assert.False(t, Medicine{}.Matches("x"))
}

func TestDrugCategoryLabel(t *testing.T) {
	assert.Equal(t, "دواء", DrugCategoryMedicine.Label())
	assert.Equal(t, "مستحضرات تجميل", DrugCategoryCosmetics.Label())
	assert.Equal(t, "غير محدد", DrugCategory(7).Label())
}

func TestFindOrder(t *testing.T) {
	orders := []Order{{ID: 1}, {ID: 2, PharmacyName: "Nile"}}
	found, ok := FindOrder(orders, 2)
	require.True(t, ok)
	assert.Equal(t, "Nile", found.PharmacyName)

	found.PharmacyName = "changed"
	assert.Equal(t, "Nile", orders[1].PharmacyName)

	_, ok = FindOrder(orders, 3)
	assert.False(t, ok)
}

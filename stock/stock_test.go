package stock

import (
	"sort"
	"testing"

	"Gin_postgres_redis_equipment_tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func item(id, name string, original int) models.Item {
	return models.Item{ItemID: id, Name: name, OriginalStock: original}
}

func entry(logID int64, itemID string, qty int, returned bool) models.CheckoutEntry {
	return models.CheckoutEntry{LogID: logID, ItemID: itemID, Quantity: qty, Returned: returned}
}

func TestComputeNoEntries(t *testing.T) {
	snap := Compute([]models.Item{item("A", "drill", 10)}, nil)

	st, ok := snap.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, 0, st.CheckedOut)
	assert.Equal(t, 10, st.Remaining)
	assert.Equal(t, 10, st.Available)
	assert.Empty(t, snap.Warnings)
}

func TestComputeSumsOpenEntriesAcrossGroups(t *testing.T) {
	items := []models.Item{item("A", "drill", 10)}
	entries := []models.CheckoutEntry{
		{LogID: 1, ItemID: "A", Quantity: 3, Destination: "site-x", Borrower: "bob"},
		{LogID: 2, ItemID: "A", Quantity: 2, Destination: "site-y", Borrower: "ann"},
	}

	snap := Compute(items, entries)
	st, _ := snap.Lookup("A")
	assert.Equal(t, 5, st.CheckedOut)
	assert.Equal(t, 5, st.Remaining)
}

func TestComputeIgnoresReturnedEntries(t *testing.T) {
	items := []models.Item{item("A", "drill", 10)}
	entries := []models.CheckoutEntry{
		entry(1, "A", 3, false),
		entry(2, "A", 4, true),
	}

	snap := Compute(items, entries)
	st, _ := snap.Lookup("A")
	assert.Equal(t, 3, st.CheckedOut)
	assert.Equal(t, 7, st.Remaining)
}

func TestComputeOrphanEntryWarnsWithoutFailing(t *testing.T) {
	items := []models.Item{item("A", "drill", 10)}
	entries := []models.CheckoutEntry{
		entry(1, "A", 3, false),
		entry(2, "ghost", 5, false),
	}

	snap := Compute(items, entries)
	st, _ := snap.Lookup("A")
	assert.Equal(t, 3, st.CheckedOut)
	require.Len(t, snap.Warnings, 1)
	assert.Contains(t, snap.Warnings[0], `"ghost"`)
}

func TestComputeNegativeRemainingSurfacedAvailableClamped(t *testing.T) {
	items := []models.Item{item("A", "drill", 2)}
	entries := []models.CheckoutEntry{entry(1, "A", 5, false)}

	snap := Compute(items, entries)
	st, _ := snap.Lookup("A")
	assert.Equal(t, -3, st.Remaining)
	assert.Equal(t, 0, st.Available)
	assert.Equal(t, 0, snap.Remaining("A"))
}

func TestRemainingUnknownItemIsZero(t *testing.T) {
	snap := Compute(nil, nil)
	assert.Equal(t, 0, snap.Remaining("missing"))
}

func TestCheckoutThenRecompute(t *testing.T) {
	items := []models.Item{item("A", "drill", 10)}
	snap := Compute(items, nil)
	r := snap.Remaining("A")

	q := 3
	entries := []models.CheckoutEntry{entry(1, "A", q, false)}
	after := Compute(items, entries)
	assert.Equal(t, r-q, after.Remaining("A"))
}

func TestComputeOrderIndependent(t *testing.T) {
	ids := []string{"A", "B", "C"}

	rapid.Check(t, func(t *rapid.T) {
		items := []models.Item{
			item("A", "drill", rapid.IntRange(0, 20).Draw(t, "stockA")),
			item("B", "saw", rapid.IntRange(0, 20).Draw(t, "stockB")),
			item("C", "ladder", rapid.IntRange(0, 20).Draw(t, "stockC")),
		}

		n := rapid.IntRange(0, 12).Draw(t, "entries")
		entries := make([]models.CheckoutEntry, n)
		for i := range entries {
			entries[i] = entry(
				int64(i+1),
				rapid.SampledFrom(append(ids, "ghost")).Draw(t, "itemID"),
				rapid.IntRange(0, 10).Draw(t, "qty"),
				rapid.Bool().Draw(t, "returned"),
			)
		}

		reversed := make([]models.CheckoutEntry, n)
		for i, e := range entries {
			reversed[n-1-i] = e
		}

		a := Compute(items, entries)
		b := Compute(items, reversed)

		assert.Equal(t, a.Items, b.Items)

		wa, wb := append([]string(nil), a.Warnings...), append([]string(nil), b.Warnings...)
		sort.Strings(wa)
		sort.Strings(wb)
		assert.Equal(t, wa, wb)
	})
}

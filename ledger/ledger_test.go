package ledger

import (
	"testing"

	"Gin_postgres_redis_equipment_tracker/models"
	"Gin_postgres_redis_equipment_tracker/stock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func openEntry(qty int) models.CheckoutEntry {
	return models.CheckoutEntry{
		LogID:       1,
		ItemID:      "A",
		ItemName:    "drill",
		Quantity:    qty,
		Destination: "X",
		Borrower:    "Bob",
	}
}

func TestValidateReturnAcceptsFullReturn(t *testing.T) {
	assert.NoError(t, ValidateReturn(openEntry(3), Return{ReturnQty: 3}))
}

func TestValidateReturnRejectsSecondAttempt(t *testing.T) {
	e := openEntry(3)
	e, _ = ApplyReturn(e, Return{ReturnQty: 3})
	require.True(t, e.Returned)

	assert.ErrorIs(t, ValidateReturn(e, Return{ReturnQty: 3}), ErrAlreadyReturned)
}

func TestValidateReturnQuantityBounds(t *testing.T) {
	cases := []struct {
		name string
		ret  Return
		want error
	}{
		{"negative return", Return{ReturnQty: -1}, ErrInvalidQuantity},
		{"return above quantity", Return{ReturnQty: 4}, ErrInvalidQuantity},
		{"negative damaged", Return{ReturnQty: 3, DamagedQty: -1}, ErrInvalidQuantity},
		{"damaged above unaccounted", Return{ReturnQty: 2, DamagedQty: 2}, ErrInvalidQuantity},
		{"partial without write-off", Return{ReturnQty: 2}, ErrPartialReturn},
		{"nothing back without write-off", Return{}, ErrPartialReturn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateReturn(openEntry(3), tc.ret), tc.want)
		})
	}
}

func TestPartialReturnWithWriteOffRecordsShortfall(t *testing.T) {
	r := Return{ReturnQty: 1, WriteOff: true}
	require.NoError(t, ValidateReturn(openEntry(3), r))

	e, wd := ApplyReturn(openEntry(3), r)
	assert.True(t, e.Returned)
	assert.Equal(t, 1, e.ReturnedQuantity)
	assert.Equal(t, "written off 2", e.Note)
	assert.Nil(t, wd)
}

func TestDamageProducesWriteDown(t *testing.T) {
	r := Return{ReturnQty: 2, DamagedQty: 1}
	require.NoError(t, ValidateReturn(openEntry(3), r))

	e, wd := ApplyReturn(openEntry(3), r)
	assert.True(t, e.Returned)
	assert.Equal(t, 2, e.ReturnedQuantity)
	require.NotNil(t, wd)
	assert.Equal(t, "A", wd.ItemID)
	assert.Equal(t, 1, wd.Quantity)
	assert.Empty(t, e.Note)
}

func TestBulkReturnIsFullQuantityNoDamage(t *testing.T) {
	e := openEntry(4)
	r := BulkReturn(e)
	require.NoError(t, ValidateReturn(e, r))

	e, wd := ApplyReturn(e, r)
	assert.Equal(t, 4, e.ReturnedQuantity)
	assert.Nil(t, wd)
}

// Full cycle from the ledger's point of view: item A owns 10, 3 go out to
// site X for Bob, the return brings 3 back with 1 damaged. Stock drops to
// 9 and nothing remains checked out.
func TestCheckoutReturnDamageCycle(t *testing.T) {
	items := []models.Item{{ItemID: "A", Name: "drill", OriginalStock: 10}}
	entries := []models.CheckoutEntry{openEntry(3)}

	snap := stock.Compute(items, entries)
	assert.Equal(t, 7, snap.Remaining("A"))

	ret := Return{ReturnQty: 3, DamagedQty: 1}
	require.NoError(t, ValidateReturn(entries[0], ret))
	updated, wd := ApplyReturn(entries[0], ret)
	require.NotNil(t, wd)

	// The repo applies the write-down floored at zero.
	items[0].OriginalStock = max(0, items[0].OriginalStock-wd.Quantity)
	entries[0] = updated

	assert.Equal(t, 9, items[0].OriginalStock)
	assert.True(t, entries[0].Returned)
	assert.Equal(t, 3, entries[0].ReturnedQuantity)

	after := stock.Compute(items, entries)
	st, _ := after.Lookup("A")
	assert.Equal(t, 0, st.CheckedOut)
	assert.Equal(t, 9, st.Remaining)
}

func TestValidateReturnProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		qty := rapid.IntRange(1, 20).Draw(t, "qty")
		ret := Return{
			ReturnQty:  rapid.IntRange(-2, 22).Draw(t, "returnQty"),
			DamagedQty: rapid.IntRange(-2, 22).Draw(t, "damagedQty"),
			WriteOff:   rapid.Bool().Draw(t, "writeOff"),
		}

		err := ValidateReturn(openEntry(qty), ret)
		valid := ret.ReturnQty >= 0 && ret.ReturnQty <= qty &&
			ret.DamagedQty >= 0 && ret.DamagedQty <= qty-ret.ReturnQty &&
			(ret.ReturnQty+ret.DamagedQty == qty || ret.WriteOff)

		if valid {
			require.NoError(t, err)
			e, wd := ApplyReturn(openEntry(qty), ret)
			require.True(t, e.Returned)
			require.Equal(t, ret.ReturnQty, e.ReturnedQuantity)
			if ret.DamagedQty > 0 {
				require.NotNil(t, wd)
				require.Equal(t, ret.DamagedQty, wd.Quantity)
			} else {
				require.Nil(t, wd)
			}
		} else {
			require.Error(t, err)
		}
	})
}

package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadItemsKeepsOpaqueIDs(t *testing.T) {
	csv := "item_id,name,detail,original_stock\n007,drill,cordless,5\n"
	items, err := LoadItems(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "007", items[0].ItemID)
	assert.Equal(t, 5, items[0].OriginalStock)
}

func TestLoadItemsCoercesGarbageStockToZero(t *testing.T) {
	csv := "item_id,name,detail,original_stock\nA,drill,,many\nB,saw,,\n"
	items, err := LoadItems(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].OriginalStock)
	assert.Equal(t, 0, items[1].OriginalStock)
}

func TestLoadItemsSkipsBlankNameRows(t *testing.T) {
	csv := "item_id,name,detail,original_stock\nA,drill,,3\nB,,,4\n"
	items, err := LoadItems(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].ItemID)
}

func TestLoadItemsRejectsMissingRequiredColumn(t *testing.T) {
	csv := "name,detail\ndrill,cordless\n"
	_, err := LoadItems(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item_id")
}

func TestLoadCheckoutLogParsesReturnedCaseInsensitively(t *testing.T) {
	csv := "log_id,item_id,item_name,quantity,destination,borrower,start_date,end_date,returned,returned_quantity\n" +
		"1,A,drill,3,X,Bob,2025-04-01,2025-04-03,true,3\n" +
		"2,A,drill,2,Y,Ann,2025-04-02,2025-04-05,FALSE,0\n" +
		"3,A,drill,1,Y,Ann,2025-04-02,2025-04-05,,0\n"
	entries, err := LoadCheckoutLog(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Returned)
	assert.False(t, entries[1].Returned)
	assert.False(t, entries[2].Returned)
	assert.Equal(t, int64(2), entries[1].LogID)
	assert.Equal(t, "2025-04-02", entries[1].StartDate.String())
}

func TestLoadCheckoutLogCoercesBadDate(t *testing.T) {
	csv := "log_id,item_id,item_name,quantity,destination,borrower,start_date,end_date,returned,returned_quantity\n" +
		"1,A,drill,3,X,Bob,sometime,2025-04-03,FALSE,0\n"
	entries, err := LoadCheckoutLog(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].StartDate.IsZero())
}

// models/models.go
package models

import "time"

const ItemTable = "eq_items"
const CheckoutTable = "eq_checkout_log"
const ListTable = "eq_list"
const FavoriteTable = "eq_favorites"

// Item is one catalog row. ItemID is an opaque token, not a number:
// ids like "007" must survive round-trips unchanged. Several items may
// share a Name and differ only in Detail (variants of the same thing).
type Item struct {
	ItemID        string    `gorm:"primaryKey;size:64" json:"itemId"`
	Name          string    `gorm:"size:200;not null;index" json:"name"`
	Detail        string    `gorm:"size:255" json:"detail"`
	OriginalStock int       `gorm:"not null;default:0" json:"originalStock"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CheckoutEntry is one ledger row: a quantity of one item leaving for a
// destination/borrower over a date range. ItemName is a snapshot taken at
// checkout time and is never re-resolved, so history stays accurate if an
// item is later renamed. Returned flips false->true exactly once.
type CheckoutEntry struct {
	LogID            int64     `gorm:"primaryKey;autoIncrement" json:"logId"`
	ItemID           string    `gorm:"size:64;not null;index" json:"itemId"`
	ItemName         string    `gorm:"size:200;not null" json:"itemName"`
	Quantity         int       `gorm:"not null" json:"quantity"`
	Destination      string    `gorm:"size:200;not null" json:"destination"`
	Borrower         string    `gorm:"size:200;not null" json:"borrower"`
	StartDate        Date      `gorm:"type:date" json:"startDate"`
	EndDate          Date      `gorm:"type:date" json:"endDate"`
	Returned         bool      `gorm:"not null;default:false" json:"returned"`
	ReturnedQuantity int       `gorm:"not null;default:0" json:"returnedQuantity"`
	Note             string    `gorm:"size:255" json:"note,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ListEntry is a reference row feeding the checkout form: known
// destinations and borrowers. Either column may be blank on a given row.
type ListEntry struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	Destination string `gorm:"size:200" json:"destination,omitempty"`
	Borrower    string `gorm:"size:200" json:"borrower,omitempty"`
}

// Favorite is one line of a favorite bundle. A bundle is identified by
// (Destination, Memo) and owns every row sharing that pair.
type Favorite struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Destination string    `gorm:"size:200;not null;index" json:"destination"`
	ItemID      string    `gorm:"size:64;not null" json:"itemId"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Memo        string    `gorm:"size:200;not null" json:"memo"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Item) TableName() string          { return ItemTable }
func (CheckoutEntry) TableName() string { return CheckoutTable }
func (ListEntry) TableName() string     { return ListTable }
func (Favorite) TableName() string      { return FavoriteTable }

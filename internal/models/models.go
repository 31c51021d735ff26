package models

import (
	"github.com/shopspring/decimal"
)

type Privilege string

const (
	PrivilegeStandard Privilege = "standard"
	PrivilegeAdmin    Privilege = "admin"
)

func (p Privilege) IsAdmin() bool {
	return p == PrivilegeAdmin
}

type Account struct {
	ID              int64     `db:"id" json:"id"`
	Username        string    `db:"username" json:"username"`
	PasswordHash    string    `db:"password_hash" json:"-"`
	Privilege       Privilege `db:"privilege" json:"privilege"`
	Company         string    `db:"company" json:"company"`
	ShippingAddress string    `db:"shipping_address" json:"shipping_address"`
	ContactInfo     string    `db:"contact_info" json:"contact_info"`
}

type Part struct {
	ID    int64           `db:"id" json:"id"`
	Name  string          `db:"name" json:"name"`
	Size  string          `db:"size" json:"size"`
	Price decimal.Decimal `db:"price" json:"price"`
}

type Order struct {
	ID        int64           `db:"id" json:"id"`
	AccountID int64           `db:"account_id" json:"account_id"`
	PartID    *int64          `db:"part_id" json:"part_id,omitempty"`
	Quantity  int             `db:"quantity" json:"quantity"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Status    Status          `db:"status" json:"status"`
	Date      Date            `db:"order_date" json:"date"`
}

// HasPart reports whether the order references a part.
func (o Order) HasPart() bool {
	return o.PartID != nil
}

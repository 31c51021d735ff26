package models

import "strings"

// OrderSortField is a column the admin order list can be sorted by.
type OrderSortField string

const (
	SortByDate      OrderSortField = "date"
	SortByPrice     OrderSortField = "price"
	SortByQuantity  OrderSortField = "quantity"
	SortByStatus    OrderSortField = "status"
	SortByAccountID OrderSortField = "accountId"
)

var sortAliases = map[string]OrderSortField{
	"date":           SortByDate,
	"order_date":     SortByDate,
	"price":          SortByPrice,
	"order_price":    SortByPrice,
	"quantity":       SortByQuantity,
	"order_quantity": SortByQuantity,
	"status":         SortByStatus,
	"order_status":   SortByStatus,
	"accountid":      SortByAccountID,
	"account_id":     SortByAccountID,
}

// ParseOrderSortField accepts the short names and the legacy column names
// (Order_Date, Account_ID, ...). Anything else sorts by date.
func ParseOrderSortField(s string) OrderSortField {
	if f, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f
	}
	return SortByDate
}

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// ParseSortDirection returns Ascending only for "asc".
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), string(Ascending)) {
		return Ascending
	}
	return Descending
}

// OrderListOptions drives the admin order list. An empty Status means no
// filter.
type OrderListOptions struct {
	SortBy    OrderSortField
	Direction SortDirection
	Status    Status
}

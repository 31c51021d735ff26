package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/service"
)

// Form field names shared with the templates.
const (
	fieldUsername        = "Account_Username"
	fieldPassword        = "Account_Password"
	fieldPrivilege       = "Account_Privilege"
	fieldCompany         = "Account_Company"
	fieldShippingAddress = "Account_Shipping_Address"
	fieldContactInfo     = "Account_Contact_Info"
	fieldPartID          = "Part_ID"
	fieldQuantity        = "Order_Quantity"
	fieldOrderPrice      = "Order_Price"
	fieldStatus          = "Order_Status"
	fieldDate            = "Order_Date"
	fieldPartName        = "Part_Name"
	fieldPartSize        = "Part_Size"
	fieldPartPrice       = "Part_Price"
)

// formValue reports the trimmed value of key and whether the form carried it.
func formValue(r *http.Request, key string) (string, bool) {
	if _, ok := r.PostForm[key]; !ok {
		return "", false
	}
	return strings.TrimSpace(r.PostForm.Get(key)), true
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	return d, err == nil
}

// parsePartID returns nil for an empty or non-numeric value.
func parsePartID(s string) *int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// newOrderForm reads the create-order form. Missing or unparsable quantity
// becomes 1 and price 0.
func newOrderForm(r *http.Request, accountID int64) service.NewOrder {
	in := service.NewOrder{
		AccountID: accountID,
		Quantity:  1,
		Price:     decimal.Zero,
	}
	if v, ok := formValue(r, fieldQuantity); ok {
		if n, ok := parseInt(v); ok {
			in.Quantity = n
		}
	}
	if v, ok := formValue(r, fieldOrderPrice); ok {
		if d, ok := parseDecimal(v); ok {
			in.Price = d
		}
	}
	if v, ok := formValue(r, fieldPartID); ok {
		in.PartID = parsePartID(v)
	}
	in.Status, _ = formValue(r, fieldStatus)
	in.Date, _ = formValue(r, fieldDate)
	return in
}

// orderUpdateForm reads an edit-order form. Unparsable numbers are ignored.
// A submitted but empty part field clears the part.
func orderUpdateForm(r *http.Request, withDate bool) service.OrderUpdate {
	var upd service.OrderUpdate
	if v, ok := formValue(r, fieldPartID); ok {
		if v == "" {
			upd.ClearPart = true
		} else {
			upd.PartID = parsePartID(v)
		}
	}
	if v, ok := formValue(r, fieldQuantity); ok {
		if n, ok := parseInt(v); ok {
			upd.Quantity = &n
		}
	}
	if v, ok := formValue(r, fieldOrderPrice); ok {
		if d, ok := parseDecimal(v); ok {
			upd.Price = &d
		}
	}
	if v, ok := formValue(r, fieldStatus); ok && v != "" {
		upd.Status = &v
	}
	if withDate {
		if v, ok := formValue(r, fieldDate); ok {
			upd.Date = &v
		}
	}
	return upd
}

func registrationForm(r *http.Request) service.Registration {
	reg := service.Registration{}
	reg.Username, _ = formValue(r, fieldUsername)
	reg.Password, _ = formValue(r, fieldPassword)
	reg.Privilege, _ = formValue(r, fieldPrivilege)
	reg.Company, _ = formValue(r, fieldCompany)
	reg.ShippingAddress, _ = formValue(r, fieldShippingAddress)
	reg.ContactInfo, _ = formValue(r, fieldContactInfo)
	return reg
}

// partUpdateForm reads an edit-part form. An unparsable price is ignored.
func partUpdateForm(r *http.Request) service.PartUpdate {
	var upd service.PartUpdate
	if v, ok := formValue(r, fieldPartName); ok {
		upd.Name = &v
	}
	if v, ok := formValue(r, fieldPartSize); ok {
		upd.Size = &v
	}
	if v, ok := formValue(r, fieldPartPrice); ok {
		if d, ok := parseDecimal(v); ok {
			upd.Price = &d
		}
	}
	return upd
}

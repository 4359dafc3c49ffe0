// Package form holds the product editor state: raw field values as typed by the
// user, per-field errors, and the validation that turns them into a
// domain.ProductInput.
package form

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tokobarang/inventory-dashboard/internal/core/domain"
)

// Field keys, matching the JSON names of domain.ProductInput.
const (
	FieldName      = "nama_produk"
	FieldUnitPrice = "harga_satuan"
	FieldQuantity  = "quantity"
)

var (
	errRequiredName    = domain.ValidationError{Field: FieldName, Code: domain.CodeRequiredField, Message: "Product name is required"}
	errInvalidPrice    = domain.ValidationError{Field: FieldUnitPrice, Code: domain.CodeInvalidNumber, Message: "Please enter a valid price"}
	errInvalidQuantity = domain.ValidationError{Field: FieldQuantity, Code: domain.CodeInvalidNumber, Message: "Please enter a valid quantity"}
)

var fieldErrors = map[string]domain.ValidationError{
	FieldName:      errRequiredName,
	FieldUnitPrice: errInvalidPrice,
	FieldQuantity:  errInvalidQuantity,
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ProductForm is the state of the add/edit product editor.
type ProductForm struct {
	Name      string
	UnitPrice string
	Quantity  string

	errors map[string]domain.ValidationError
}

// NewProductForm returns an empty form with no errors.
func NewProductForm() *ProductForm {
	return &ProductForm{errors: map[string]domain.ValidationError{}}
}

// EditProductForm returns a form pre-populated with p's current values.
func EditProductForm(p domain.Product) *ProductForm {
	f := NewProductForm()
	f.Name = p.NamaProduk
	f.UnitPrice = strconv.FormatFloat(p.HargaSatuan, 'f', -1, 64)
	f.Quantity = strconv.Itoa(p.Quantity)
	return f
}

// Set updates a field and clears its error, independent of re-validation.
// Unknown fields are ignored and reported as false.
func (f *ProductForm) Set(field, value string) bool {
	switch field {
	case FieldName:
		f.Name = value
	case FieldUnitPrice:
		f.UnitPrice = value
	case FieldQuantity:
		f.Quantity = value
	default:
		return false
	}
	delete(f.errors, field)
	return true
}

// Reset clears all fields and errors.
func (f *ProductForm) Reset() {
	f.Name, f.UnitPrice, f.Quantity = "", "", ""
	f.errors = map[string]domain.ValidationError{}
}

// Validate evaluates every rule. When all pass it returns the normalized input
// and true; otherwise the per-field errors are recorded on the form.
func (f *ProductForm) Validate() (domain.ProductInput, bool) {
	errs := map[string]domain.ValidationError{}

	in := domain.ProductInput{NamaProduk: strings.TrimSpace(f.Name)}

	price, err := parsePrice(f.UnitPrice)
	if err != nil {
		errs[FieldUnitPrice] = errInvalidPrice
	}
	in.HargaSatuan = price

	qty, err := strconv.Atoi(strings.TrimSpace(f.Quantity))
	if err != nil {
		errs[FieldQuantity] = errInvalidQuantity
	}
	in.Quantity = qty

	if err := validate.Struct(in); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return domain.ProductInput{}, false
		}
		for _, fe := range ve {
			if _, seen := errs[fe.Field()]; seen {
				continue
			}
			if vErr, ok := fieldErrors[fe.Field()]; ok {
				errs[fe.Field()] = vErr
			}
		}
	}

	f.errors = errs
	if len(errs) > 0 {
		return domain.ProductInput{}, false
	}
	return in, true
}

// Errors returns a copy of the current per-field errors.
func (f *ProductForm) Errors() map[string]domain.ValidationError {
	out := make(map[string]domain.ValidationError, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Error returns the message for field, or "" when the field is valid.
func (f *ProductForm) Error(field string) string {
	return f.errors[field].Message
}

// HasErrors reports whether any field currently carries an error.
func (f *ProductForm) HasErrors() bool {
	return len(f.errors) > 0
}

func parsePrice(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

// Package view builds the product table shown on the dashboard. It is pure:
// given products and the viewer's role it produces rows, and it routes edit and
// delete actions to caller-supplied callbacks.
package view

import (
	"github.com/tokobarang/inventory-dashboard/internal/core/domain"
	"github.com/tokobarang/inventory-dashboard/internal/pkg/currency"
)

// DeleteConfirmation is the question asked before a product is deleted.
const DeleteConfirmation = "Are you sure you want to delete this product?"

// BadgeVariant selects the styling of a stock-status badge.
type BadgeVariant string

const (
	BadgeDestructive BadgeVariant = "destructive"
	BadgeSecondary   BadgeVariant = "secondary"
	BadgeDefault     BadgeVariant = "default"
)

// Badge is a rendered stock status.
type Badge struct {
	Label   string
	Variant BadgeVariant
}

// Actions are the admin-only row controls.
type Actions struct {
	EditID   int64
	DeleteID int64
}

// Row is one rendered product.
type Row struct {
	ID         int64
	Name       string
	Price      string
	Quantity   int
	Status     Badge
	TotalValue string
	Actions    *Actions // nil unless the viewer is an admin
}

// EmptyState is shown instead of the table when there are no products.
type EmptyState struct {
	Title   string
	Message string
}

// Confirmer asks a blocking yes/no question.
type Confirmer func(question string) bool

// ProductTable renders products for one viewer.
type ProductTable struct {
	products []domain.Product
	isAdmin  bool
	onEdit   func(domain.Product)
	onDelete func(id int64)
	confirm  Confirmer
}

// NewProductTable returns a table over products. onEdit, onDelete and confirm
// may be nil for read-only rendering.
func NewProductTable(products []domain.Product, isAdmin bool, onEdit func(domain.Product), onDelete func(int64), confirm Confirmer) *ProductTable {
	return &ProductTable{
		products: products,
		isAdmin:  isAdmin,
		onEdit:   onEdit,
		onDelete: onDelete,
		confirm:  confirm,
	}
}

// ShowActions reports whether the actions column is rendered.
func (t *ProductTable) ShowActions() bool { return t.isAdmin }

// Rows returns one row per product, in input order.
func (t *ProductTable) Rows() []Row {
	rows := make([]Row, 0, len(t.products))
	for _, p := range t.products {
		row := Row{
			ID:         p.ID,
			Name:       p.NamaProduk,
			Price:      currency.Format(p.HargaSatuan),
			Quantity:   p.Quantity,
			Status:     BadgeFor(p.StockStatus()),
			TotalValue: currency.Format(p.TotalValue()),
		}
		if t.isAdmin {
			row.Actions = &Actions{EditID: p.ID, DeleteID: p.ID}
		}
		rows = append(rows, row)
	}
	return rows
}

// Empty returns the empty state, or nil when there is something to show.
func (t *ProductTable) Empty() *EmptyState {
	if len(t.products) > 0 {
		return nil
	}
	msg := "No products are currently available."
	if t.isAdmin {
		msg = "Start by adding your first product."
	}
	return &EmptyState{Title: "No products found", Message: msg}
}

// Edit hands the full product with id to the edit callback. It reports whether
// the callback ran.
func (t *ProductTable) Edit(id int64) bool {
	if !t.isAdmin || t.onEdit == nil {
		return false
	}
	p, ok := t.find(id)
	if !ok {
		return false
	}
	t.onEdit(p)
	return true
}

// Delete asks for confirmation and, only on an affirmative answer, hands id to
// the delete callback. It reports whether the callback ran.
func (t *ProductTable) Delete(id int64) bool {
	if !t.isAdmin || t.onDelete == nil {
		return false
	}
	if t.confirm == nil || !t.confirm(DeleteConfirmation) {
		return false
	}
	t.onDelete(id)
	return true
}

func (t *ProductTable) find(id int64) (domain.Product, bool) {
	for _, p := range t.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// BadgeFor maps a stock status to its badge.
func BadgeFor(s domain.StockStatus) Badge {
	switch s {
	case domain.StockOut:
		return Badge{Label: string(s), Variant: BadgeDestructive}
	case domain.StockLow:
		return Badge{Label: string(s), Variant: BadgeSecondary}
	default:
		return Badge{Label: string(s), Variant: BadgeDefault}
	}
}

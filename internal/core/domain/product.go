package domain

// LowStockThreshold is the quantity at which a product stops being "Low Stock".
const LowStockThreshold = 10

// StockStatus is the categorical label derived from a product's quantity.
type StockStatus string

const (
	StockOut StockStatus = "Out of Stock"
	StockLow StockStatus = "Low Stock"
	StockIn  StockStatus = "In Stock"
)

// Product is a record of the remote /products collection.
type Product struct {
	ID          int64   `json:"id" bson:"_id"`
	NamaProduk  string  `json:"nama_produk" bson:"nama_produk"`
	HargaSatuan float64 `json:"harga_satuan" bson:"harga_satuan"`
	Quantity    int     `json:"quantity" bson:"quantity"`
}

// ProductInput is the body sent on create and update.
type ProductInput struct {
	NamaProduk  string  `json:"nama_produk" validate:"required"`
	HargaSatuan float64 `json:"harga_satuan" validate:"gt=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
}

// StockStatus derives the stock label from the quantity.
func (p Product) StockStatus() StockStatus {
	return StockStatusOf(p.Quantity)
}

// TotalValue is unit price times quantity.
func (p Product) TotalValue() float64 {
	return p.HargaSatuan * float64(p.Quantity)
}

// Input returns the writable fields of p.
func (p Product) Input() ProductInput {
	return ProductInput{NamaProduk: p.NamaProduk, HargaSatuan: p.HargaSatuan, Quantity: p.Quantity}
}

// StockStatusOf maps a quantity to its stock label. Negative quantities never reach here
// through the form, but are treated as out of stock.
func StockStatusOf(quantity int) StockStatus {
	switch {
	case quantity <= 0:
		return StockOut
	case quantity < LowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}

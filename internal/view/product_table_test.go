package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokobarang/inventory-dashboard/internal/core/domain"
)

var sample = []domain.Product{
	{ID: 1, NamaProduk: "Beras", HargaSatuan: 15000, Quantity: 0},
	{ID: 2, NamaProduk: "Gula", HargaSatuan: 14000, Quantity: 5},
	{ID: 3, NamaProduk: "Kopi", HargaSatuan: 25000, Quantity: 10},
}

func TestRows_ComputedColumns(t *testing.T) {
	rows := NewProductTable(sample, false, nil, nil, nil).Rows()
	require.Len(t, rows, 3)

	assert.Equal(t, Row{ID: 1, Name: "Beras", Price: "Rp15.000", Quantity: 0, Status: Badge{"Out of Stock", BadgeDestructive}, TotalValue: "Rp0"}, rows[0])
	assert.Equal(t, Badge{"Low Stock", BadgeSecondary}, rows[1].Status)
	assert.Equal(t, "Rp70.000", rows[1].TotalValue)
	assert.Equal(t, Badge{"In Stock", BadgeDefault}, rows[2].Status)
	assert.Equal(t, "Rp250.000", rows[2].TotalValue)
}

func TestNonAdmin_NeverExposesActions(t *testing.T) {
	edited, deleted := false, false
	table := NewProductTable(sample, false,
		func(domain.Product) { edited = true },
		func(int64) { deleted = true },
		func(string) bool { return true },
	)

	assert.False(t, table.ShowActions())
	for _, r := range table.Rows() {
		assert.Nil(t, r.Actions)
	}
	assert.False(t, table.Edit(1))
	assert.False(t, table.Delete(1))
	assert.False(t, edited)
	assert.False(t, deleted)
}

func TestAdmin_EditPassesFullProduct(t *testing.T) {
	var got domain.Product
	table := NewProductTable(sample, true, func(p domain.Product) { got = p }, nil, nil)

	assert.True(t, table.ShowActions())
	assert.Equal(t, &Actions{EditID: 2, DeleteID: 2}, table.Rows()[1].Actions)
	require.True(t, table.Edit(2))
	assert.Equal(t, sample[1], got)
	assert.False(t, table.Edit(42), "unknown id")
}

func TestAdmin_DeleteRequiresConfirmation(t *testing.T) {
	var asked string
	var deleted []int64
	answer := false
	table := NewProductTable(sample, true, nil,
		func(id int64) { deleted = append(deleted, id) },
		func(q string) bool {
			asked = q
			return answer
		},
	)

	assert.False(t, table.Delete(3))
	assert.Equal(t, DeleteConfirmation, asked)
	assert.Empty(t, deleted)

	answer = true
	assert.True(t, table.Delete(3))
	assert.Equal(t, []int64{3}, deleted)
}

func TestEmptyState_DependsOnRole(t *testing.T) {
	assert.Nil(t, NewProductTable(sample, true, nil, nil, nil).Empty())

	admin := NewProductTable(nil, true, nil, nil, nil).Empty()
	require.NotNil(t, admin)
	assert.Equal(t, "No products found", admin.Title)
	assert.Equal(t, "Start by adding your first product.", admin.Message)

	user := NewProductTable([]domain.Product{}, false, nil, nil, nil).Empty()
	assert.Equal(t, "No products are currently available.", user.Message)
	assert.Empty(t, NewProductTable(nil, false, nil, nil, nil).Rows())
}

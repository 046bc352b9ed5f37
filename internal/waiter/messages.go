package waiter

import (
	"github.com/andreasstove999/table-ordering/internal/catalog"
	"github.com/andreasstove999/table-ordering/internal/order"
)

// errMsg reports a failed call started by a key that set busy. The model
// keeps its state, releases busy and updates the status line. Background
// loads report failures on their own message instead.
type errMsg struct {
	op  string
	err error
}

type orderOpenedMsg struct{ order *order.Order }

type categoriesMsg struct {
	categories []catalog.Category
	err        error
}

// productsMsg carries the sequence number of the fetch that produced it so
// results of a superseded selection can be dropped.
type productsMsg struct {
	seq      int
	products []catalog.Product
	err      error
}

type itemAddedMsg struct{ item lineItem }

type itemRemovedMsg struct{ itemID string }

type orderRemovedMsg struct{ order *order.Order }

type orderSentMsg struct{ order *order.Order }

type ordersMsg struct{ orders []order.Order }

type detailMsg struct {
	orderID string
	items   []order.ItemDetail
}

type orderConcludedMsg struct{ order *order.Order }

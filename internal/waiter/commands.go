package waiter

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andreasstove999/table-ordering/internal/catalog"
)

func (m Model) openOrderCmd(table int) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		o, err := api.OpenOrder(ctx, table, "")
		if err != nil {
			return errMsg{op: "open table", err: err}
		}
		return orderOpenedMsg{order: o}
	}
}

func (m Model) loadCategoriesCmd() tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		cats, err := api.Categories(ctx)
		if err != nil {
			return categoriesMsg{err: err}
		}
		return categoriesMsg{categories: cats}
	}
}

// loadProducts cancels the previous product fetch and starts a new one for
// the selected category.
func (m Model) loadProducts() (Model, tea.Cmd) {
	if m.cancelProducts != nil {
		m.cancelProducts()
		m.cancelProducts = nil
	}
	if len(m.categories) == 0 {
		return m, nil
	}

	m.productSeq++
	seq := m.productSeq
	categoryID := m.categories[m.catIdx].ID

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	m.cancelProducts = cancel

	api := m.api
	return m, func() tea.Msg {
		defer cancel()
		products, err := api.Products(ctx, categoryID)
		return productsMsg{seq: seq, products: products, err: err}
	}
}

func (m Model) addItemCmd(orderID string, p catalog.Product, amount int) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		it, err := api.AddItem(ctx, orderID, p.ID, amount)
		if err != nil {
			return errMsg{op: "add item", err: err}
		}
		return itemAddedMsg{item: lineItem{
			ID:        it.ID,
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Amount:    amount,
		}}
	}
}

func (m Model) removeItemCmd(itemID string) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if _, err := api.RemoveItem(ctx, itemID); err != nil {
			return errMsg{op: "remove item", err: err}
		}
		return itemRemovedMsg{itemID: itemID}
	}
}

func (m Model) removeOrderCmd(orderID string) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		o, err := api.RemoveOrder(ctx, orderID)
		if err != nil {
			return errMsg{op: "close table", err: err}
		}
		return orderRemovedMsg{order: o}
	}
}

func (m Model) sendOrderCmd(orderID string) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		o, err := api.SendOrder(ctx, orderID)
		if err != nil {
			return errMsg{op: "send order", err: err}
		}
		return orderSentMsg{order: o}
	}
}

func (m Model) listOrdersCmd() tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		orders, err := api.ListOrders(ctx)
		if err != nil {
			return errMsg{op: "list orders", err: err}
		}
		return ordersMsg{orders: orders}
	}
}

func (m Model) detailCmd(orderID string) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		items, err := api.DetailOrder(ctx, orderID)
		if err != nil {
			return errMsg{op: "order detail", err: err}
		}
		return detailMsg{orderID: orderID, items: items}
	}
}

func (m Model) concludeCmd(orderID string) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		o, err := api.ConcludeOrder(ctx, orderID)
		if err != nil {
			return errMsg{op: "conclude order", err: err}
		}
		return orderConcludedMsg{order: o}
	}
}

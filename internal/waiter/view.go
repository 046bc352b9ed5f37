package waiter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func (m Model) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "table-ordering waiter")
	fmt.Fprintln(b, "")

	switch m.screen {
	case ScreenDashboard:
		m.viewDashboard(b)
	case ScreenOrder:
		m.viewOrder(b)
	case ScreenFinish:
		m.viewFinish(b)
	case ScreenActive:
		m.viewActive(b)
	}

	fmt.Fprintln(b, "")
	fmt.Fprintf(b, "Status: %s\n", m.status)
	return b.String()
}

func (m Model) viewDashboard(b *strings.Builder) {
	fmt.Fprintln(b, "New order")
	fmt.Fprintf(b, "Table number: %s_\n", m.tableInput)
	fmt.Fprintln(b, "\nControls: digits type the table, enter to open, l active orders, q to quit")
}

func (m Model) viewOrder(b *strings.Builder) {
	if m.order == nil {
		return
	}
	fmt.Fprintf(b, "Table %d\n\n", m.order.Table)

	fmt.Fprint(b, "Category: ")
	if len(m.categories) == 0 {
		fmt.Fprintln(b, "-")
	} else {
		fmt.Fprintf(b, "< %s > (%d/%d)\n", m.categories[m.catIdx].Name, m.catIdx+1, len(m.categories))
	}

	fmt.Fprintln(b, "Products:")
	for i, p := range m.products {
		marker := " "
		if i == m.prodIdx {
			marker = ">"
		}
		fmt.Fprintf(b, " %s %s  %s\n", marker, p.Name, p.Price.StringFixed(2))
	}
	fmt.Fprintf(b, "Quantity: %d\n\n", m.amount)

	fmt.Fprintln(b, "Items:")
	if len(m.items) == 0 {
		fmt.Fprintln(b, "  (none)")
	}
	for i, it := range m.items {
		marker := " "
		if i == m.itemIdx {
			marker = "*"
		}
		fmt.Fprintf(b, " %s %dx %s\n", marker, it.Amount, it.Name)
	}

	controls := "left/right category, up/down product, +/- quantity, a add"
	if len(m.items) > 0 {
		controls += ", tab select item, x remove item"
	}
	if m.CanClose() {
		controls += ", esc close table"
	}
	if m.CanAdvance() {
		controls += ", n advance"
	}
	fmt.Fprintf(b, "\nControls: %s\n", controls)
}

func (m Model) viewFinish(b *strings.Builder) {
	if m.order == nil {
		return
	}
	fmt.Fprintf(b, "Send order for table %d?\n\n", m.order.Table)
	for _, it := range m.items {
		fmt.Fprintf(b, "  %dx %s\n", it.Amount, it.Name)
	}
	fmt.Fprintf(b, "\nTotal: %s\n", m.total().StringFixed(2))
	fmt.Fprintln(b, "\nControls: enter to send, esc to go back")
}

func (m Model) viewActive(b *strings.Builder) {
	fmt.Fprintln(b, "Active orders")
	if len(m.active) == 0 {
		fmt.Fprintln(b, "  (none)")
	}
	for i, o := range m.active {
		marker := " "
		if i == m.activeIdx {
			marker = ">"
		}
		name := ""
		if o.Name != "" {
			name = " (" + o.Name + ")"
		}
		fmt.Fprintf(b, " %s Table %d%s  %s\n", marker, o.Table, name, o.CreatedAt.Local().Format("15:04"))
	}

	if m.detailFor != "" {
		fmt.Fprintln(b, "\nDetail:")
		total := decimal.Zero
		for _, it := range m.detail {
			line := it.Product.Price.Mul(decimal.NewFromInt(int64(it.Amount)))
			total = total.Add(line)
			fmt.Fprintf(b, "  %dx %s  %s\n", it.Amount, it.Product.Name, line.StringFixed(2))
		}
		fmt.Fprintf(b, "  Total: %s\n", total.StringFixed(2))
	}
	fmt.Fprintln(b, "\nControls: up/down select, enter detail, c conclude, r refresh, esc back")
}

func (m Model) total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range m.items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Amount))))
	}
	return total
}

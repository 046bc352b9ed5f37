package waiter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/table-ordering/internal/catalog"
	"github.com/andreasstove999/table-ordering/internal/client"
	"github.com/andreasstove999/table-ordering/internal/order"
)

type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenOrder
	ScreenFinish
	ScreenActive
)

func (s Screen) String() string {
	switch s {
	case ScreenDashboard:
		return "dashboard"
	case ScreenOrder:
		return "order"
	case ScreenFinish:
		return "finish"
	case ScreenActive:
		return "active"
	default:
		return "unknown"
	}
}

// lineItem is an item the server has confirmed for the current order.
type lineItem struct {
	ID        string
	ProductID string
	Name      string
	Price     decimal.Decimal
	Amount    int
}

type Options struct {
	Timeout   time.Duration
	MaxTable  int
	MaxAmount int
	Logger    *log.Logger
}

// Model is the waiter terminal UI. It is a bubbletea model; every API call
// runs as a tea.Cmd and reports back through a message.
type Model struct {
	api       API
	timeout   time.Duration
	maxTable  int
	maxAmount int
	logger    *log.Logger

	screen Screen
	status string
	busy   bool

	tableInput string

	order      *order.Order
	categories []catalog.Category
	catIdx     int
	products   []catalog.Product
	prodIdx    int
	amount     int
	items      []lineItem
	itemIdx    int

	productSeq     int
	cancelProducts context.CancelFunc

	active    []order.Order
	activeIdx int
	detailFor string
	detail    []order.ItemDetail
}

func New(api API, opts Options) Model {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxTable <= 0 {
		opts.MaxTable = order.DefaultLimits.MaxTable
	}
	if opts.MaxAmount <= 0 {
		opts.MaxAmount = order.DefaultLimits.MaxAmount
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return Model{
		api:       api,
		timeout:   opts.Timeout,
		maxTable:  opts.MaxTable,
		maxAmount: opts.MaxAmount,
		logger:    opts.Logger,
		screen:    ScreenDashboard,
		status:    "Ready",
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Screen() Screen { return m.screen }

func (m Model) Status() string { return m.status }

// CanClose reports whether the current order may be deleted.
func (m Model) CanClose() bool { return m.screen == ScreenOrder && len(m.items) == 0 }

// CanAdvance reports whether the current order may move to the finish screen.
func (m Model) CanAdvance() bool { return m.screen == ScreenOrder && len(m.items) > 0 }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.stopProducts()
			return m, tea.Quit
		}
		switch m.screen {
		case ScreenDashboard:
			return m.updateDashboard(msg)
		case ScreenOrder:
			return m.updateOrder(msg)
		case ScreenFinish:
			return m.updateFinish(msg)
		case ScreenActive:
			return m.updateActive(msg)
		}

	case errMsg:
		m.busy = false
		m.fail(msg.op, msg.err)

	case orderOpenedMsg:
		m.busy = false
		m.order = msg.order
		m.tableInput = ""
		m.categories, m.products, m.items = nil, nil, nil
		m.catIdx, m.prodIdx, m.itemIdx = 0, 0, 0
		m.amount = 1
		m.screen = ScreenOrder
		m.status = fmt.Sprintf("Table %d opened", msg.order.Table)
		return m, m.loadCategoriesCmd()

	case categoriesMsg:
		if m.order == nil {
			return m, nil
		}
		if msg.err != nil {
			m.fail("load categories", msg.err)
			return m, nil
		}
		m.categories = msg.categories
		m.catIdx = 0
		if len(m.categories) == 0 {
			m.status = "No categories registered"
			return m, nil
		}
		return m.loadProducts()

	case productsMsg:
		if msg.seq != m.productSeq {
			return m, nil
		}
		m.cancelProducts = nil
		if msg.err != nil {
			m.fail("load products", msg.err)
			return m, nil
		}
		m.products = msg.products
		m.prodIdx = 0

	case itemAddedMsg:
		m.busy = false
		m.items = append(m.items, msg.item)
		m.status = fmt.Sprintf("Added %dx %s", msg.item.Amount, msg.item.Name)

	case itemRemovedMsg:
		m.busy = false
		for i, it := range m.items {
			if it.ID == msg.itemID {
				m.items = append(m.items[:i:i], m.items[i+1:]...)
				break
			}
		}
		if m.itemIdx >= len(m.items) && m.itemIdx > 0 {
			m.itemIdx = len(m.items) - 1
		}
		m.status = "Item removed"

	case orderRemovedMsg:
		m.busy = false
		m.resetOrder()
		m.screen = ScreenDashboard
		m.status = fmt.Sprintf("Table %d closed", msg.order.Table)

	case orderSentMsg:
		m.busy = false
		m.logger.Printf("order %s sent (table %d)", msg.order.ID, msg.order.Table)
		m.resetOrder()
		m.screen = ScreenDashboard
		m.status = fmt.Sprintf("Order for table %d sent", msg.order.Table)

	case ordersMsg:
		m.busy = false
		m.active = msg.orders
		if m.activeIdx >= len(m.active) {
			m.activeIdx = max(len(m.active)-1, 0)
		}
		m.status = fmt.Sprintf("%d active orders", len(m.active))

	case detailMsg:
		m.busy = false
		m.detailFor = msg.orderID
		m.detail = msg.items

	case orderConcludedMsg:
		// busy stays set until the refreshed list arrives
		m.logger.Printf("order %s concluded (table %d)", msg.order.ID, msg.order.Table)
		if m.detailFor == msg.order.ID {
			m.detailFor, m.detail = "", nil
		}
		m.status = fmt.Sprintf("Table %d concluded", msg.order.Table)
		return m, m.listOrdersCmd()
	}
	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case key == "q":
		return m, tea.Quit
	case key == "l":
		m.screen = ScreenActive
		m.detailFor, m.detail = "", nil
		m.busy = true
		m.status = "Loading orders..."
		return m, m.listOrdersCmd()
	case key == "backspace":
		if n := len(m.tableInput); n > 0 {
			m.tableInput = m.tableInput[:n-1]
		}
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		if len(m.tableInput) < len(strconv.Itoa(m.maxTable)) {
			m.tableInput += key
		}
	case key == "enter":
		if m.tableInput == "" || m.busy {
			return m, nil
		}
		table, _ := strconv.Atoi(m.tableInput)
		if table < 1 || table > m.maxTable {
			m.status = fmt.Sprintf("Table must be between 1 and %d", m.maxTable)
			return m, nil
		}
		m.busy = true
		m.status = "Opening table..."
		return m, m.openOrderCmd(table)
	}
	return m, nil
}

func (m Model) updateOrder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left":
		if m.catIdx > 0 {
			m.catIdx--
			return m.loadProducts()
		}
	case "right":
		if m.catIdx < len(m.categories)-1 {
			m.catIdx++
			return m.loadProducts()
		}
	case "up":
		if m.prodIdx > 0 {
			m.prodIdx--
		}
	case "down":
		if m.prodIdx < len(m.products)-1 {
			m.prodIdx++
		}
	case "+", "=":
		if m.amount < m.maxAmount {
			m.amount++
		}
	case "-":
		if m.amount > 1 {
			m.amount--
		}
	case "tab":
		if len(m.items) > 0 {
			m.itemIdx = (m.itemIdx + 1) % len(m.items)
		}
	case "a":
		if m.busy || len(m.products) == 0 {
			return m, nil
		}
		m.busy = true
		return m, m.addItemCmd(m.order.ID, m.products[m.prodIdx], m.amount)
	case "x":
		if m.busy || len(m.items) == 0 {
			return m, nil
		}
		m.busy = true
		return m, m.removeItemCmd(m.items[m.itemIdx].ID)
	case "esc":
		if m.busy {
			return m, nil
		}
		if !m.CanClose() {
			m.status = "Remove all items before closing the table"
			return m, nil
		}
		m.busy = true
		return m, m.removeOrderCmd(m.order.ID)
	case "n":
		if !m.CanAdvance() {
			m.status = "Add at least one item first"
			return m, nil
		}
		m.screen = ScreenFinish
	}
	return m, nil
}

func (m Model) updateFinish(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = ScreenOrder
	case "enter":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "Sending order..."
		return m, m.sendOrderCmd(m.order.ID)
	}
	return m, nil
}

func (m Model) updateActive(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = ScreenDashboard
		m.detailFor, m.detail = "", nil
	case "up":
		if m.activeIdx > 0 {
			m.activeIdx--
		}
	case "down":
		if m.activeIdx < len(m.active)-1 {
			m.activeIdx++
		}
	case "r":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.listOrdersCmd()
	case "enter":
		if m.busy || len(m.active) == 0 {
			return m, nil
		}
		m.busy = true
		return m, m.detailCmd(m.active[m.activeIdx].ID)
	case "c":
		if m.busy || len(m.active) == 0 {
			return m, nil
		}
		m.busy = true
		return m, m.concludeCmd(m.active[m.activeIdx].ID)
	}
	return m, nil
}

func (m *Model) fail(op string, err error) {
	m.logger.Printf("%s: %v", op, err)
	if errors.Is(err, client.ErrUnauthorized) {
		m.status = fmt.Sprintf("%s failed: session expired, log in again", op)
		return
	}
	m.status = fmt.Sprintf("%s failed: %v", op, err)
}

func (m *Model) stopProducts() {
	if m.cancelProducts != nil {
		m.cancelProducts()
		m.cancelProducts = nil
	}
}

func (m *Model) resetOrder() {
	m.stopProducts()
	m.productSeq++
	m.order = nil
	m.categories, m.products, m.items = nil, nil, nil
	m.catIdx, m.prodIdx, m.itemIdx = 0, 0, 0
	m.amount = 1
}

package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/komoralink/komora/dto"
)

// Key identifies a cart line. Lines always point at a variant.
type Key struct {
	ProductID string
	VariantID string
}

type Item struct {
	ProductID  string
	VariantID  string
	Name       string
	UnitPrice  decimal.Decimal
	Quantity   int
	Currency   string
	Stock      int // 0 when unknown
	BusinessID string
	ImageURL   string
}

func (it Item) Key() Key {
	return Key{ProductID: it.ProductID, VariantID: it.VariantID}
}

func (it Item) Subtotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// ItemFromVariant builds the cart line for one unit of v.
func ItemFromVariant(p dto.Product, v dto.Variant) Item {
	name := p.Name
	if v.Name != "" && v.Name != p.Name {
		name = p.Name + " - " + v.Name
	}
	return Item{
		ProductID:  p.ID,
		VariantID:  v.ID,
		Name:       name,
		UnitPrice:  v.Price,
		Quantity:   1,
		Currency:   v.Currency,
		Stock:      v.StockQuantity,
		BusinessID: p.BusinessID,
		ImageURL:   v.ImageURL,
	}
}

type removedLine struct {
	item  Item
	index int
}

// Cart holds one line per (product, variant) in insertion order. It is safe for concurrent use.
type Cart struct {
	mu    sync.RWMutex
	lines []Item
	undo  *removedLine
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) find(k Key) int {
	for i, l := range c.lines {
		if l.Key() == k {
			return i
		}
	}
	return -1
}

func (c *Cart) add(item Item, qty int) {
	if i := c.find(item.Key()); i >= 0 {
		c.lines[i].Quantity += qty
		return
	}
	item.Quantity = qty
	if item.Currency == "" {
		item.Currency = dto.DefaultCurrency
	}
	c.lines = append(c.lines, item)
}

func (c *Cart) remove(k Key) (Item, int, bool) {
	i := c.find(k)
	if i < 0 {
		return Item{}, -1, false
	}
	removed := c.lines[i]
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return removed, i, true
}

// Add increments the line of item by qty, creating it when missing. qty <= 0 is ignored.
func (c *Cart) Add(item Item, qty int) {
	if qty <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.undo = nil
	c.add(item, qty)
}

// Toggle removes the line of item when present, otherwise adds one unit. Toggling again right
// after a removal puts the removed line back as it was. It reports whether the line is now present.
func (c *Cart) Toggle(item Item) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if removed, at, ok := c.remove(item.Key()); ok {
		c.undo = &removedLine{item: removed, index: at}
		return false
	}

	if u := c.undo; u != nil && u.item.Key() == item.Key() {
		c.undo = nil
		at := min(u.index, len(c.lines))
		c.lines = append(c.lines[:at], append([]Item{u.item}, c.lines[at:]...)...)
		return true
	}

	c.undo = nil
	c.add(item, 1)
	return true
}

// UpdateQuantity sets the quantity of a line. qty <= 0 removes it.
func (c *Cart) UpdateQuantity(productID, variantID string, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.undo = nil

	k := Key{ProductID: productID, VariantID: variantID}
	if qty <= 0 {
		c.remove(k)
		return
	}
	if i := c.find(k); i >= 0 {
		c.lines[i].Quantity = qty
	}
}

func (c *Cart) Remove(productID, variantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.undo = nil
	c.remove(Key{ProductID: productID, VariantID: variantID})
}

func (c *Cart) Contains(productID, variantID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.find(Key{ProductID: productID, VariantID: variantID}) >= 0
}

func (c *Cart) Get(productID, variantID string) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.find(Key{ProductID: productID, VariantID: variantID}); i >= 0 {
		return c.lines[i], true
	}
	return Item{}, false
}

// TotalItems is the sum of quantities.
func (c *Cart) TotalItems() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice is the sum of unit price times quantity. Lines are assumed to share one currency.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Currency is the working currency of the totals, the one of the first line.
func (c *Cart) Currency() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.lines) == 0 {
		return dto.DefaultCurrency
	}
	return c.lines[0].Currency
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Item(nil), c.lines...)
}

func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return c.Len() == 0
}

// OverStock lists the lines asking for more than their known stock.
func (c *Cart) OverStock() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Item
	for _, l := range c.lines {
		if l.Stock > 0 && l.Quantity > l.Stock {
			out = append(out, l)
		}
	}
	return out
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.undo = nil
}

// Reset empties the cart on logout.
func (c *Cart) Reset() {
	c.Clear()
}

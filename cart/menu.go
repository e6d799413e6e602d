package cart

import (
	"github.com/komoralink/komora/dto"
)

// MenuLines expands a menu bought qty times into one line per constituent variant.
func MenuLines(menu dto.Menu, qty int) []Item {
	lines := make([]Item, 0, len(menu.Items))
	for _, mi := range menu.Items {
		lines = append(lines, Item{
			ProductID:  mi.ProductID,
			VariantID:  mi.VariantID,
			Name:       mi.ProductName,
			UnitPrice:  mi.UnitPrice,
			Quantity:   qty * mi.Quantity,
			Currency:   mi.Currency,
			Stock:      mi.Stock,
			BusinessID: menu.BusinessID,
		})
	}
	return lines
}

// AddMenu adds qty menus, that is qty times each constituent quantity.
func (c *Cart) AddMenu(menu dto.Menu, qty int) {
	if qty <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.undo = nil
	for _, l := range MenuLines(menu, qty) {
		if l.Quantity > 0 {
			c.add(l, l.Quantity)
		}
	}
}

// RemoveMenu removes every line keyed like a constituent of menu.
func (c *Cart) RemoveMenu(menu dto.Menu) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.undo = nil
	for _, l := range MenuLines(menu, 1) {
		c.remove(l.Key())
	}
}

// HasMenu reports whether every constituent of menu has a line.
func (c *Cart) HasMenu(menu dto.Menu) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hasMenu(menu)
}

func (c *Cart) hasMenu(menu dto.Menu) bool {
	if len(menu.Items) == 0 {
		return false
	}
	for _, l := range MenuLines(menu, 1) {
		if c.find(l.Key()) < 0 {
			return false
		}
	}
	return true
}

// ToggleMenu removes the menu when all its lines are present, otherwise adds qty menus.
// It reports whether the menu is now in the cart.
func (c *Cart) ToggleMenu(menu dto.Menu, qty int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.undo = nil

	if c.hasMenu(menu) {
		for _, l := range MenuLines(menu, 1) {
			c.remove(l.Key())
		}
		return false
	}
	if qty <= 0 {
		return false
	}
	for _, l := range MenuLines(menu, qty) {
		if l.Quantity > 0 {
			c.add(l, l.Quantity)
		}
	}
	return c.hasMenu(menu)
}

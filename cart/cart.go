// Package cart holds the in-memory line-item aggregate for the
// current visit. The cart is independent of the session: an anonymous
// visitor can fill one. It is never persisted; a restart starts empty.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/PedroLucas003/virada-brewery-store/models"
)

// EventKind distinguishes the notifications the presentation layer
// may want to surface differently.
type EventKind string

const (
	EventItemAdded         EventKind = "item_added"
	EventQuantityIncreased EventKind = "quantity_increased"
	EventQuantityUpdated   EventKind = "quantity_updated"
	EventItemRemoved       EventKind = "item_removed"
	EventCleared           EventKind = "cleared"
)

// Event describes one completed cart mutation.
type Event struct {
	Kind EventKind
	Item *models.CartItem
}

// Store owns the cart collection. All mutations go through its
// methods; after every one of them each product id appears at most
// once and every quantity is at least 1.
type Store struct {
	mu    sync.Mutex
	items []models.CartItem
	subs  []func(Event)
}

func NewStore() *Store {
	return &Store{}
}

// Subscribe registers a change listener. Listeners are called after
// the mutation has completed, outside the store's lock.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	subs := make([]func(Event), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// AddItem puts one unit of the product in the cart. If the product is
// already present its quantity grows by exactly 1; otherwise a new
// line with quantity 1 is appended, preserving insertion order.
func (s *Store) AddItem(p models.Product) {
	s.mu.Lock()
	var ev Event
	if idx := s.indexOf(p.ID); idx >= 0 {
		s.items[idx].Quantity++
		item := s.items[idx]
		ev = Event{Kind: EventQuantityIncreased, Item: &item}
	} else {
		item := models.CartItem{
			ProductID:      p.ID,
			Name:           p.Name,
			UnitPrice:      p.UnitPrice,
			Quantity:       1,
			Image:          p.Image,
			AlcoholContent: p.AlcoholContent,
		}
		s.items = append(s.items, item)
		ev = Event{Kind: EventItemAdded, Item: &item}
	}
	s.mu.Unlock()

	s.notify(ev)
}

// RemoveItem deletes the line with the given product id. No-op when
// the id is absent.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	idx := s.indexOf(productID)
	var removed models.CartItem
	if idx >= 0 {
		removed = s.items[idx]
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	}
	s.mu.Unlock()

	if idx >= 0 {
		s.notify(Event{Kind: EventItemRemoved, Item: &removed})
	}
}

// UpdateQuantity sets the line's quantity to an absolute value. A
// value of zero or below removes the line entirely. No-op when the id
// is absent.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}

	s.mu.Lock()
	idx := s.indexOf(productID)
	var updated models.CartItem
	if idx >= 0 {
		s.items[idx].Quantity = quantity
		updated = s.items[idx]
	}
	s.mu.Unlock()

	if idx >= 0 {
		s.notify(Event{Kind: EventQuantityUpdated, Item: &updated})
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.notify(Event{Kind: EventCleared})
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// TotalItems is the sum of all quantities, recomputed on every call.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity over all lines,
// recomputed on every call.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(productID string) int {
	for i, item := range s.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

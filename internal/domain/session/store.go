// Package session implements the session-scoped state model: the
// authentication flag, the current user, the shopping cart, and the
// wishlist, together with their derived aggregates.
//
// A Store is owned by exactly one caller at a time and performs no internal
// locking; the session manager serializes concurrent HTTP access outside
// this package. Every operation is a total function over well-formed input:
// removals of absent items are no-ops, never errors.
package session

import (
	"github.com/shopspring/decimal"

	"github.com/wearwow/storefront/internal/domain/catalog"
)

// User is the authenticated customer's profile.
type User struct {
	ID     string
	Name   string
	Email  string
	Phone  string
	Avatar string
}

// CartLine is one distinct purchasable configuration in the cart: a product
// in a chosen size and color, with a quantity. Lines are uniquely keyed by
// (product ID, size, color); adding the same configuration again merges into
// the existing line instead of appending a duplicate. The store never
// mutates the product it references.
type CartLine struct {
	Product  catalog.Product
	Quantity int
	Size     string
	Color    string
}

// Store holds all state scoped to one shopping session. The zero value is
// not usable; construct with New.
type Store struct {
	authenticated bool
	user          *User

	// cart preserves insertion order for display.
	cart []CartLine

	// wishlist preserves insertion order; wishlistIdx provides O(1)
	// membership keyed by product ID. The two always agree.
	wishlist    []catalog.Product
	wishlistIdx map[string]struct{}
}

// New creates an empty Store: unauthenticated, no user, empty cart and
// wishlist.
func New() *Store {
	return &Store{
		wishlistIdx: make(map[string]struct{}),
	}
}

// Reset returns the store to its initial empty state. Used when a session
// is evicted; distinct from Logout, which keeps the collections.
func (s *Store) Reset() {
	*s = Store{wishlistIdx: make(map[string]struct{})}
}

// Authenticated reports whether the session has logged in.
func (s *Store) Authenticated() bool { return s.authenticated }

// SetAuthenticated sets the authentication flag directly.
func (s *Store) SetAuthenticated(v bool) { s.authenticated = v }

// User returns the current user, or nil when logged out.
func (s *Store) User() *User { return s.user }

// SetUser sets the current user directly. Pass nil to clear.
func (s *Store) SetUser(u *User) { s.user = u }

// Login records the user and marks the session authenticated.
func (s *Store) Login(u User) {
	s.user = &u
	s.authenticated = true
}

// Logout clears the authentication flag and the user. The cart and wishlist
// deliberately survive a logout, matching the storefront's behaviour.
func (s *Store) Logout() {
	s.authenticated = false
	s.user = nil
}

// AddToCart adds one unit of the product in the given size and color. When
// a line with the same (product ID, size, color) already exists its quantity
// is incremented; otherwise a new line is appended after all existing lines.
// The caller is responsible for supplying a size and color the product
// actually offers; the store trusts its input.
func (s *Store) AddToCart(p catalog.Product, size, color string) {
	for i := range s.cart {
		l := &s.cart[i]
		if l.Product.ID == p.ID && l.Size == size && l.Color == color {
			l.Quantity++
			return
		}
	}
	s.cart = append(s.cart, CartLine{Product: p, Quantity: 1, Size: size, Color: color})
}

// RemoveFromCart removes every line for the given product, across all size
// and color variants. No-op when the product is not in the cart.
func (s *Store) RemoveFromCart(productID string) {
	kept := s.cart[:0]
	for _, l := range s.cart {
		if l.Product.ID != productID {
			kept = append(kept, l)
		}
	}
	s.cart = kept
}

// UpdateCartQuantity sets the quantity on every line for the given product.
// A quantity of zero or less removes the product entirely, across all
// variants. No-op when the product is not in the cart.
func (s *Store) UpdateCartQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(productID)
		return
	}
	for i := range s.cart {
		if s.cart[i].Product.ID == productID {
			s.cart[i].Quantity = quantity
		}
	}
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	s.cart = nil
}

// Cart returns a snapshot of the cart lines in insertion order.
func (s *Store) Cart() []CartLine {
	out := make([]CartLine, len(s.cart))
	copy(out, s.cart)
	return out
}

// CartTotal is the sum over all lines of price times quantity, recomputed
// from the current cart contents on every call.
func (s *Store) CartTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.cart {
		total = total.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// CartCount is the sum of quantities across all lines.
func (s *Store) CartCount() int {
	n := 0
	for _, l := range s.cart {
		n += l.Quantity
	}
	return n
}

// AddToWishlist inserts the product into the wishlist. Idempotent: adding a
// product already present leaves the wishlist unchanged.
func (s *Store) AddToWishlist(p catalog.Product) {
	if _, ok := s.wishlistIdx[p.ID]; ok {
		return
	}
	s.wishlist = append(s.wishlist, p)
	s.wishlistIdx[p.ID] = struct{}{}
}

// RemoveFromWishlist removes the product. No-op when absent.
func (s *Store) RemoveFromWishlist(productID string) {
	if _, ok := s.wishlistIdx[productID]; !ok {
		return
	}
	delete(s.wishlistIdx, productID)
	kept := s.wishlist[:0]
	for _, p := range s.wishlist {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	s.wishlist = kept
}

// IsInWishlist reports whether the product is wishlisted.
func (s *Store) IsInWishlist(productID string) bool {
	_, ok := s.wishlistIdx[productID]
	return ok
}

// Wishlist returns a snapshot of wishlisted products in insertion order.
func (s *Store) Wishlist() []catalog.Product {
	out := make([]catalog.Product, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

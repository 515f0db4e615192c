package session

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wearwow/storefront/internal/domain/catalog"
)

func newTestProduct(id, name, price string) catalog.Product {
	return catalog.Product{
		ID:     id,
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Sizes:  []string{"S", "M", "L"},
		Colors: []string{"#000000", "#FFFFFF"},
	}
}

func TestAddToCart_MergesSameVariant(t *testing.T) {
	s := New()
	p := newTestProduct("p1", "Dress", "49.99")

	s.AddToCart(p, "M", "#000000")
	s.AddToCart(p, "M", "#000000")

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, "M", cart[0].Size)
}

func TestAddToCart_DistinctVariantsStayDistinct(t *testing.T) {
	s := New()
	p := newTestProduct("p1", "Dress", "49.99")

	s.AddToCart(p, "M", "#000000")
	s.AddToCart(p, "L", "#000000")

	cart := s.Cart()
	require.Len(t, cart, 2)
	assert.Equal(t, "M", cart[0].Size)
	assert.Equal(t, "L", cart[1].Size)
}

func TestAddToCart_PreservesInsertionOrder(t *testing.T) {
	s := New()
	p1 := newTestProduct("p1", "Dress", "49.99")
	p2 := newTestProduct("p2", "Jacket", "89.99")
	p3 := newTestProduct("p3", "Sneakers", "129.99")

	s.AddToCart(p1, "M", "#000000")
	s.AddToCart(p2, "S", "#FFFFFF")
	s.AddToCart(p3, "L", "#000000")
	// Merging into p1 must not move it.
	s.AddToCart(p1, "M", "#000000")

	cart := s.Cart()
	require.Len(t, cart, 3)
	assert.Equal(t, "p1", cart[0].Product.ID)
	assert.Equal(t, "p2", cart[1].Product.ID)
	assert.Equal(t, "p3", cart[2].Product.ID)
}

func TestRemoveFromCart_RemovesEveryVariant(t *testing.T) {
	s := New()
	p := newTestProduct("p1", "Dress", "49.99")
	other := newTestProduct("p2", "Jacket", "89.99")

	s.AddToCart(p, "M", "#000000")
	s.AddToCart(p, "L", "#FFFFFF")
	s.AddToCart(other, "S", "#000000")

	s.RemoveFromCart("p1")

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, "p2", cart[0].Product.ID)
}

func TestRemoveFromCart_AbsentIsNoop(t *testing.T) {
	s := New()
	s.AddToCart(newTestProduct("p1", "Dress", "49.99"), "M", "#000000")

	s.RemoveFromCart("nope")

	assert.Len(t, s.Cart(), 1)
}

func TestUpdateCartQuantity_SetsAllVariants(t *testing.T) {
	s := New()
	p := newTestProduct("p1", "Dress", "49.99")

	s.AddToCart(p, "M", "#000000")
	s.AddToCart(p, "L", "#000000")
	s.UpdateCartQuantity("p1", 5)

	for _, l := range s.Cart() {
		assert.Equal(t, 5, l.Quantity)
	}
}

func TestUpdateCartQuantity_ZeroRemoves(t *testing.T) {
	s := New()
	s.AddToCart(newTestProduct("p1", "Dress", "49.99"), "M", "#000000")

	s.UpdateCartQuantity("p1", 0)

	assert.Empty(t, s.Cart())
	assert.Equal(t, 0, s.CartCount())
	assert.True(t, s.CartTotal().IsZero())
}

func TestUpdateCartQuantity_NegativeRemoves(t *testing.T) {
	s := New()
	s.AddToCart(newTestProduct("p1", "Dress", "49.99"), "M", "#000000")

	s.UpdateCartQuantity("p1", -3)

	assert.Empty(t, s.Cart())
}

func TestClearCart(t *testing.T) {
	s := New()
	s.AddToCart(newTestProduct("p1", "Dress", "49.99"), "M", "#000000")
	s.AddToCart(newTestProduct("p2", "Jacket", "89.99"), "S", "#FFFFFF")

	s.ClearCart()

	assert.Empty(t, s.Cart())
}

func TestCartTotalAndCount(t *testing.T) {
	s := New()
	p1 := newTestProduct("p1", "Dress", "49.99")
	p2 := newTestProduct("p2", "Jacket", "89.99")

	s.AddToCart(p1, "M", "#000000")
	s.AddToCart(p1, "M", "#000000")
	s.AddToCart(p2, "S", "#FFFFFF")

	assert.True(t, decimal.RequireFromString("189.97").Equal(s.CartTotal()),
		"got %s", s.CartTotal())
	assert.Equal(t, 3, s.CartCount())
}

func TestWishlist_AddIsIdempotent(t *testing.T) {
	s := New()
	p := newTestProduct("p1", "Dress", "49.99")

	s.AddToWishlist(p)
	s.AddToWishlist(p)

	assert.Len(t, s.Wishlist(), 1)
	assert.True(t, s.IsInWishlist("p1"))
}

func TestWishlist_RemoveAbsentIsNoop(t *testing.T) {
	s := New()
	s.RemoveFromWishlist("nope")
	assert.Empty(t, s.Wishlist())
}

func TestWishlist_RoundTrip(t *testing.T) {
	s := New()
	p3 := newTestProduct("p3", "Sneakers", "129.99")

	s.AddToWishlist(p3)
	require.True(t, s.IsInWishlist("p3"))

	s.RemoveFromWishlist("p3")
	assert.False(t, s.IsInWishlist("p3"))
	assert.Empty(t, s.Wishlist())
}

func TestWishlist_PreservesInsertionOrder(t *testing.T) {
	s := New()
	s.AddToWishlist(newTestProduct("p2", "Jacket", "89.99"))
	s.AddToWishlist(newTestProduct("p1", "Dress", "49.99"))
	s.AddToWishlist(newTestProduct("p3", "Sneakers", "129.99"))

	wl := s.Wishlist()
	require.Len(t, wl, 3)
	assert.Equal(t, "p2", wl[0].ID)
	assert.Equal(t, "p1", wl[1].ID)
	assert.Equal(t, "p3", wl[2].ID)
}

func TestLogout_KeepsCartAndWishlist(t *testing.T) {
	s := New()
	u := User{ID: "u1", Name: "Alex"}
	p := newTestProduct("p1", "Dress", "49.99")

	s.Login(u)
	require.True(t, s.Authenticated())
	require.NotNil(t, s.User())

	s.AddToCart(p, "M", "#000000")
	s.AddToWishlist(p)

	s.Logout()

	assert.False(t, s.Authenticated())
	assert.Nil(t, s.User())
	assert.Len(t, s.Cart(), 1)
	assert.True(t, s.IsInWishlist("p1"))
}

func TestReset_ClearsEverything(t *testing.T) {
	s := New()
	s.Login(User{ID: "u1"})
	s.AddToCart(newTestProduct("p1", "Dress", "49.99"), "M", "#000000")
	s.AddToWishlist(newTestProduct("p2", "Jacket", "89.99"))

	s.Reset()

	assert.False(t, s.Authenticated())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Cart())
	assert.Empty(t, s.Wishlist())
	assert.False(t, s.IsInWishlist("p2"))
}

// TestDerivedAggregates_RandomOps drives the store through random operation
// sequences and recomputes the aggregates from the cart snapshot after each
// step. The derived values must never drift from the snapshot.
func TestDerivedAggregates_RandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	products := make([]catalog.Product, 6)
	for i := range products {
		products[i] = newTestProduct(
			fmt.Sprintf("p%d", i+1),
			fmt.Sprintf("Product %d", i+1),
			fmt.Sprintf("%d.99", 10*(i+1)),
		)
	}

	s := New()
	for step := 0; step < 2000; step++ {
		p := products[rng.Intn(len(products))]
		switch rng.Intn(5) {
		case 0, 1: // bias toward adding
			s.AddToCart(p, p.Sizes[rng.Intn(len(p.Sizes))], p.Colors[rng.Intn(len(p.Colors))])
		case 2:
			s.UpdateCartQuantity(p.ID, rng.Intn(6)-1)
		case 3:
			s.RemoveFromCart(p.ID)
		case 4:
			if rng.Intn(20) == 0 {
				s.ClearCart()
			}
		}

		wantTotal := decimal.Zero
		wantCount := 0
		seen := make(map[string]struct{})
		for _, l := range s.Cart() {
			require.Positive(t, l.Quantity, "step %d: non-positive quantity", step)
			key := l.Product.ID + "|" + l.Size + "|" + l.Color
			_, dup := seen[key]
			require.False(t, dup, "step %d: duplicate identity key %s", step, key)
			seen[key] = struct{}{}
			wantTotal = wantTotal.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
			wantCount += l.Quantity
		}
		require.True(t, wantTotal.Equal(s.CartTotal()), "step %d: total drifted", step)
		require.Equal(t, wantCount, s.CartCount(), "step %d: count drifted", step)
	}
}

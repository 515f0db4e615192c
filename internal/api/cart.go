package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/wearwow/storefront/internal/domain/catalog"
	"github.com/wearwow/storefront/internal/domain/session"
)

type cartLineDTO struct {
	Product  productDTO `json:"product"`
	Quantity int        `json:"quantity"`
	Size     string     `json:"size"`
	Color    string     `json:"color"`
}

type cartDTO struct {
	Items []cartLineDTO `json:"items"`
	Total float64       `json:"total"`
	Count int           `json:"count"`
}

func toCartDTO(s *session.Store) cartDTO {
	lines := s.Cart()
	items := make([]cartLineDTO, len(lines))
	for i, l := range lines {
		items[i] = cartLineDTO{
			Product:  toProductDTO(l.Product),
			Quantity: l.Quantity,
			Size:     l.Size,
			Color:    l.Color,
		}
	}
	return cartDTO{
		Items: items,
		Total: s.CartTotal().InexactFloat64(),
		Count: s.CartCount(),
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *session.Store) {
		writeJSON(r.Context(), w, http.StatusOK, toCartDTO(s))
	})
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// addCartItem adds one unit of a product variant to the cart. The catalog
// is the authority here: unknown products and variants the product does not
// offer are rejected before they reach the store.
func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.catalog.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, "product not found")
			return
		}
		writeError(ctx, w, http.StatusInternalServerError, "get product")
		return
	}
	if !p.HasSize(req.Size) {
		writeError(ctx, w, http.StatusBadRequest, "size not offered for this product")
		return
	}
	if !p.HasColor(req.Color) {
		writeError(ctx, w, http.StatusBadRequest, "color not offered for this product")
		return
	}

	h.withSession(w, r, func(s *session.Store) {
		s.AddToCart(*p, req.Size, req.Color)
		writeJSON(ctx, w, http.StatusOK, toCartDTO(s))
	})
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// updateCartItem sets the quantity on every variant of the product in the
// cart. A quantity of zero or less removes the product, matching the
// storefront's behaviour.
func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["productId"]

	var req updateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.withSession(w, r, func(s *session.Store) {
		s.UpdateCartQuantity(id, req.Quantity)
		writeJSON(ctx, w, http.StatusOK, toCartDTO(s))
	})
}

// removeCartItem removes every size and color variant of the product.
func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["productId"]
	h.withSession(w, r, func(s *session.Store) {
		s.RemoveFromCart(id)
		writeJSON(r.Context(), w, http.StatusOK, toCartDTO(s))
	})
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *session.Store) {
		s.ClearCart()
		writeJSON(r.Context(), w, http.StatusOK, toCartDTO(s))
	})
}

type wishlistDTO struct {
	Items []productDTO `json:"items"`
}

func toWishlistDTO(s *session.Store) wishlistDTO {
	return wishlistDTO{Items: toProductDTOs(s.Wishlist())}
}

func (h *Handler) getWishlist(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *session.Store) {
		writeJSON(r.Context(), w, http.StatusOK, toWishlistDTO(s))
	})
}

type addWishlistItemRequest struct {
	ProductID string `json:"productId"`
}

func (h *Handler) addWishlistItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addWishlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.catalog.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, "product not found")
			return
		}
		writeError(ctx, w, http.StatusInternalServerError, "get product")
		return
	}

	h.withSession(w, r, func(s *session.Store) {
		s.AddToWishlist(*p)
		writeJSON(ctx, w, http.StatusOK, toWishlistDTO(s))
	})
}

func (h *Handler) removeWishlistItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["productId"]
	h.withSession(w, r, func(s *session.Store) {
		s.RemoveFromWishlist(id)
		writeJSON(r.Context(), w, http.StatusOK, toWishlistDTO(s))
	})
}

// Package api exposes the storefront over HTTP for the mobile SPA. Handlers
// translate requests into session store operations and catalog queries; all
// state lives behind the injected repositories and session manager.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-faster/sdk/zctx"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/wearwow/storefront/internal/domain/catalog"
	"github.com/wearwow/storefront/internal/domain/notification"
	"github.com/wearwow/storefront/internal/domain/order"
	"github.com/wearwow/storefront/internal/domain/session"
	"github.com/wearwow/storefront/internal/storage/memory"
)

// SessionCookie is the cookie carrying the shopper's session ID.
const SessionCookie = "wearwow_session"

// Config holds non-dependency settings for the Handler.
type Config struct {
	// LoginDelay simulates the network latency of a real auth backend.
	LoginDelay time.Duration
	// SessionTTL is forwarded to the session cookie's Max-Age.
	SessionTTL time.Duration
}

// SessionManager hands out session stores keyed by opaque IDs. Implemented
// by memory.SessionManager.
type SessionManager interface {
	Create() string
	Exists(id string) bool
	Do(id string, fn func(*session.Store)) error
}

var _ SessionManager = (*memory.SessionManager)(nil)

// Handler owns the HTTP routes. Construct with NewHandler and mount the
// result of Router.
type Handler struct {
	cfg           Config
	catalog       catalog.Repository
	orders        order.Repository
	notifications notification.Repository
	sessions      SessionManager
	rotator       *catalog.Rotator
	demoUser      session.User
}

// NewHandler constructs a Handler with its domain dependencies.
func NewHandler(
	cfg Config,
	catalogRepo catalog.Repository,
	orderRepo order.Repository,
	notificationRepo notification.Repository,
	sessions SessionManager,
	rotator *catalog.Rotator,
	demoUser session.User,
) *Handler {
	return &Handler{
		cfg:           cfg,
		catalog:       catalogRepo,
		orders:        orderRepo,
		notifications: notificationRepo,
		sessions:      sessions,
		rotator:       rotator,
		demoUser:      demoUser,
	}
}

// Router builds the /api route tree.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{productId}", h.getProduct).Methods(http.MethodGet)
	api.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet)
	api.HandleFunc("/banners", h.listBanners).Methods(http.MethodGet)

	api.HandleFunc("/cart", h.getCart).Methods(http.MethodGet)
	api.HandleFunc("/cart", h.clearCart).Methods(http.MethodDelete)
	api.HandleFunc("/cart/items", h.addCartItem).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{productId}", h.updateCartItem).Methods(http.MethodPatch)
	api.HandleFunc("/cart/items/{productId}", h.removeCartItem).Methods(http.MethodDelete)

	api.HandleFunc("/wishlist", h.getWishlist).Methods(http.MethodGet)
	api.HandleFunc("/wishlist", h.addWishlistItem).Methods(http.MethodPost)
	api.HandleFunc("/wishlist/{productId}", h.removeWishlistItem).Methods(http.MethodDelete)

	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", h.logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", h.me).Methods(http.MethodGet)

	api.HandleFunc("/orders", h.listOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/{orderId}", h.getOrder).Methods(http.MethodGet)
	api.HandleFunc("/notifications", h.listNotifications).Methods(http.MethodGet)

	return r
}

// errorResponse is the JSON error body shared by every endpoint.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zctx.From(ctx).Error("encode response", zap.Error(err))
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	writeJSON(ctx, w, status, errorResponse{Code: status, Message: msg})
}

// issueSession allocates a fresh session and hands its ID to the client.
func (h *Handler) issueSession(w http.ResponseWriter) string {
	id := h.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// ensureSession resolves the request's session, issuing a fresh one when the
// request carries none or an expired one.
func (h *Handler) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && h.sessions.Exists(c.Value) {
		return c.Value
	}
	return h.issueSession(w)
}

// withSession runs fn against the request's session store.
func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, fn func(s *session.Store)) {
	id := h.ensureSession(w, r)
	if err := h.sessions.Do(id, fn); err != nil {
		// The session can be evicted between ensure and Do under load;
		// that race is benign, so retry once with a fresh session. The
		// replacement cookie must reach the client or the state written
		// by fn would be stranded on a session the client never learns.
		id = h.issueSession(w)
		if err := h.sessions.Do(id, fn); err != nil {
			writeError(r.Context(), w, http.StatusInternalServerError, "session unavailable")
		}
	}
}

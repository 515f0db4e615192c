package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wearwow/storefront/internal/domain/session"
)

type userDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}

type authStateDTO struct {
	Authenticated bool     `json:"authenticated"`
	User          *userDTO `json:"user"`
}

func toAuthStateDTO(s *session.Store) authStateDTO {
	out := authStateDTO{Authenticated: s.Authenticated()}
	if u := s.User(); u != nil {
		d := userDTO(*u)
		out.User = &d
	}
	return out
}

type loginRequest struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	// Password and OTP are accepted and ignored: this is a demo storefront
	// with no credential verification.
	Password string `json:"password,omitempty"`
	OTP      string `json:"otp,omitempty"`
}

// login marks the session authenticated as the demo user. The configured
// delay imitates the latency of a real auth backend, as the SPA's loading
// states expect; it is cut short if the client goes away.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if h.cfg.LoginDelay > 0 {
		t := time.NewTimer(h.cfg.LoginDelay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return
		}
	}

	h.withSession(w, r, func(s *session.Store) {
		s.Login(h.demoUser)
		writeJSON(ctx, w, http.StatusOK, toAuthStateDTO(s))
	})
}

// logout clears the authentication flag and the user. Cart and wishlist
// survive, matching the storefront's behaviour.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *session.Store) {
		s.Logout()
		writeJSON(r.Context(), w, http.StatusOK, toAuthStateDTO(s))
	})
}

// me reports the session's current authentication state.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *session.Store) {
		writeJSON(r.Context(), w, http.StatusOK, toAuthStateDTO(s))
	})
}

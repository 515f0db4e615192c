package api

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/wearwow/storefront/internal/domain/notification"
	"github.com/wearwow/storefront/internal/domain/order"
)

type orderItemDTO struct {
	Product  productDTO `json:"product"`
	Quantity int        `json:"quantity"`
}

type orderDTO struct {
	ID     string         `json:"id"`
	Date   string         `json:"date"`
	Status string         `json:"status"`
	Total  float64        `json:"total"`
	Items  []orderItemDTO `json:"items"`
}

func toOrderDTO(o order.Order) orderDTO {
	items := make([]orderItemDTO, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemDTO{Product: toProductDTO(it.Product), Quantity: it.Quantity}
	}
	return orderDTO{
		ID:     o.ID,
		Date:   o.Date.Format("2006-01-02"),
		Status: string(o.Status),
		Total:  o.Total.InexactFloat64(),
		Items:  items,
	}
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orders, err := h.orders.List(ctx)
	if err != nil {
		writeError(ctx, w, http.StatusInternalServerError, "list orders")
		return
	}
	out := make([]orderDTO, len(orders))
	for i, o := range orders {
		out[i] = toOrderDTO(o)
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["orderId"]

	o, err := h.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, "order not found")
			return
		}
		writeError(ctx, w, http.StatusInternalServerError, "get order")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toOrderDTO(*o))
}

type notificationDTO struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Read    bool   `json:"read"`
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ns, err := h.notifications.List(ctx)
	if err != nil {
		writeError(ctx, w, http.StatusInternalServerError, "list notifications")
		return
	}
	out := make([]notificationDTO, len(ns))
	for i, n := range ns {
		out[i] = notificationDTO{
			ID:      n.ID,
			Title:   n.Title,
			Message: n.Message,
			Time:    n.Age,
			Read:    n.Read,
		}
	}
	writeJSON(ctx, w, http.StatusOK, struct {
		Notifications []notificationDTO `json:"notifications"`
		UnreadCount   int               `json:"unreadCount"`
	}{Notifications: out, UnreadCount: notification.UnreadCount(ns)})
}

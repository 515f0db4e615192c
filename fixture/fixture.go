// Package fixture holds the embedded storefront dataset: the product
// catalog, categories, banners, past orders, notifications, and the demo
// user. The data is parsed once at startup and treated as immutable from
// then on.
package fixture

import (
	_ "embed"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/wearwow/storefront/internal/domain/catalog"
	"github.com/wearwow/storefront/internal/domain/notification"
	"github.com/wearwow/storefront/internal/domain/order"
	"github.com/wearwow/storefront/internal/domain/session"
)

//go:embed data/products.json
var productsJSON []byte

//go:embed data/categories.json
var categoriesJSON []byte

//go:embed data/banners.json
var bannersJSON []byte

//go:embed data/orders.json
var ordersJSON []byte

//go:embed data/notifications.json
var notificationsJSON []byte

//go:embed data/user.json
var userJSON []byte

// Fixture is the fully parsed dataset.
type Fixture struct {
	Products      []catalog.Product
	Categories    []catalog.Category
	Banners       []catalog.Banner
	Orders        []order.Order
	Notifications []notification.Notification
	User          session.User
}

type productJSON struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Image         string          `json:"image"`
	Category      string          `json:"category"`
	Subcategory   string          `json:"subcategory"`
	Colors        []string        `json:"colors"`
	Sizes         []string        `json:"sizes"`
	Rating        decimal.Decimal `json:"rating"`
	Reviews       int             `json:"reviews"`
	IsNew         bool            `json:"isNew"`
	IsTrending    bool            `json:"isTrending"`
	Description   string          `json:"description"`
}

type categoryJSON struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Icon          string   `json:"icon"`
	Image         string   `json:"image"`
	Subcategories []string `json:"subcategories"`
}

type bannerJSON struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image"`
	Gradient string `json:"gradient"`
	CTA      string `json:"cta"`
}

type orderJSON struct {
	ID     string          `json:"id"`
	Date   string          `json:"date"`
	Status string          `json:"status"`
	Total  decimal.Decimal `json:"total"`
	Items  []struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
}

type notificationJSON struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Read    bool   `json:"read"`
}

type userJSONRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}

// Load parses the embedded dataset. Order items are resolved against the
// product catalog; an order referencing an unknown product is a broken
// fixture and fails the load.
func Load() (*Fixture, error) {
	var f Fixture

	var products []productJSON
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, errors.Wrap(err, "parse products")
	}
	byID := make(map[string]catalog.Product, len(products))
	f.Products = make([]catalog.Product, len(products))
	for i, p := range products {
		f.Products[i] = catalog.Product{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price,
			OriginalPrice: p.OriginalPrice,
			Image:         p.Image,
			Category:      p.Category,
			Subcategory:   p.Subcategory,
			Colors:        p.Colors,
			Sizes:         p.Sizes,
			Rating:        p.Rating,
			Reviews:       p.Reviews,
			IsNew:         p.IsNew,
			IsTrending:    p.IsTrending,
			Description:   p.Description,
		}
		byID[p.ID] = f.Products[i]
	}

	var categories []categoryJSON
	if err := json.Unmarshal(categoriesJSON, &categories); err != nil {
		return nil, errors.Wrap(err, "parse categories")
	}
	f.Categories = make([]catalog.Category, len(categories))
	for i, c := range categories {
		f.Categories[i] = catalog.Category(c)
	}

	var banners []bannerJSON
	if err := json.Unmarshal(bannersJSON, &banners); err != nil {
		return nil, errors.Wrap(err, "parse banners")
	}
	f.Banners = make([]catalog.Banner, len(banners))
	for i, b := range banners {
		f.Banners[i] = catalog.Banner(b)
	}

	var orders []orderJSON
	if err := json.Unmarshal(ordersJSON, &orders); err != nil {
		return nil, errors.Wrap(err, "parse orders")
	}
	f.Orders = make([]order.Order, len(orders))
	for i, o := range orders {
		date, err := time.Parse("2006-01-02", o.Date)
		if err != nil {
			return nil, errors.Wrapf(err, "order %s: parse date", o.ID)
		}
		st := order.Status(o.Status)
		if !st.Valid() {
			return nil, errors.Errorf("order %s: unknown status %q", o.ID, o.Status)
		}
		items := make([]order.Item, len(o.Items))
		for j, it := range o.Items {
			p, ok := byID[it.ProductID]
			if !ok {
				return nil, errors.Errorf("order %s: unknown product %q", o.ID, it.ProductID)
			}
			items[j] = order.Item{Product: p, Quantity: it.Quantity}
		}
		f.Orders[i] = order.Order{
			ID:     o.ID,
			Date:   date,
			Status: st,
			Total:  o.Total,
			Items:  items,
		}
	}

	var notifications []notificationJSON
	if err := json.Unmarshal(notificationsJSON, &notifications); err != nil {
		return nil, errors.Wrap(err, "parse notifications")
	}
	f.Notifications = make([]notification.Notification, len(notifications))
	for i, n := range notifications {
		f.Notifications[i] = notification.Notification{
			ID:      n.ID,
			Title:   n.Title,
			Message: n.Message,
			Age:     n.Time,
			Read:    n.Read,
		}
	}

	var u userJSONRecord
	if err := json.Unmarshal(userJSON, &u); err != nil {
		return nil, errors.Wrap(err, "parse user")
	}
	f.User = session.User(u)

	return &f, nil
}

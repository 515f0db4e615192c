package api

import (
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/wearwow/storefront/internal/domain/catalog"
)

// productDTO mirrors the SPA's Product shape.
type productDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory,omitempty"`
	Colors        []string `json:"colors"`
	Sizes         []string `json:"sizes"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	IsNew         bool     `json:"isNew,omitempty"`
	IsTrending    bool     `json:"isTrending,omitempty"`
	Description   string   `json:"description"`
}

func toProductDTO(p catalog.Product) productDTO {
	return productDTO{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price.InexactFloat64(),
		OriginalPrice: p.OriginalPrice.InexactFloat64(),
		Image:         p.Image,
		Category:      p.Category,
		Subcategory:   p.Subcategory,
		Colors:        p.Colors,
		Sizes:         p.Sizes,
		Rating:        p.Rating.InexactFloat64(),
		Reviews:       p.Reviews,
		IsNew:         p.IsNew,
		IsTrending:    p.IsTrending,
		Description:   p.Description,
	}
}

func toProductDTOs(ps []catalog.Product) []productDTO {
	out := make([]productDTO, len(ps))
	for i, p := range ps {
		out[i] = toProductDTO(p)
	}
	return out
}

// parseFilter builds a catalog.Filter from query parameters, falling back
// to the defaults for anything absent.
func parseFilter(r *http.Request) (catalog.Filter, error) {
	f := catalog.DefaultFilter()
	q := r.URL.Query()

	f.CategoryID = q.Get("category")

	if v := q.Get("price_min"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, errors.Wrap(err, "price_min")
		}
		f.PriceMin = d
	}
	if v := q.Get("price_max"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, errors.Wrap(err, "price_max")
		}
		f.PriceMax = d
	}
	if v := q.Get("sizes"); v != "" {
		f.Sizes = strings.Split(v, ",")
	}
	if v := q.Get("colors"); v != "" {
		f.Colors = strings.Split(v, ",")
	}
	if v := q.Get("sort"); v != "" {
		k := catalog.SortKey(v)
		if !k.Valid() {
			return f, errors.Errorf("unknown sort key %q", v)
		}
		f.SortBy = k
	}
	return f, nil
}

// listProducts serves the catalog, filtered and sorted. The optional feed
// parameter selects the home screen feeds instead of the filter engine.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.catalog.List(ctx)
	if err != nil {
		writeError(ctx, w, http.StatusInternalServerError, "list products")
		return
	}

	switch feed := r.URL.Query().Get("feed"); feed {
	case "":
	case "featured":
		writeJSON(ctx, w, http.StatusOK, toProductDTOs(catalog.Featured(products)))
		return
	case "sale":
		writeJSON(ctx, w, http.StatusOK, toProductDTOs(catalog.OnSale(products)))
		return
	case "new":
		writeJSON(ctx, w, http.StatusOK, toProductDTOs(catalog.NewArrivals(products)))
		return
	default:
		writeError(ctx, w, http.StatusBadRequest, "unknown feed")
		return
	}

	f, err := parseFilter(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(ctx, w, http.StatusOK, struct {
		Products      []productDTO `json:"products"`
		ActiveFilters int          `json:"activeFilters"`
	}{
		Products:      toProductDTOs(catalog.Query(products, f)),
		ActiveFilters: f.ActiveCount(),
	})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["productId"]

	p, err := h.catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, "product not found")
			return
		}
		writeError(ctx, w, http.StatusInternalServerError, "get product")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toProductDTO(*p))
}

type categoryDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Icon          string   `json:"icon"`
	Image         string   `json:"image"`
	Subcategories []string `json:"subcategories"`
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		writeError(ctx, w, http.StatusInternalServerError, "list categories")
		return
	}
	out := make([]categoryDTO, len(categories))
	for i, c := range categories {
		out[i] = categoryDTO(c)
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

type bannerDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image"`
	Gradient string `json:"gradient"`
	CTA      string `json:"cta"`
}

// listBanners serves the carousel slides plus the index currently active
// under the fixed rotation interval.
func (h *Handler) listBanners(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	banners, err := h.catalog.Banners(ctx)
	if err != nil {
		writeError(ctx, w, http.StatusInternalServerError, "list banners")
		return
	}
	out := make([]bannerDTO, len(banners))
	for i, b := range banners {
		out[i] = bannerDTO(b)
	}
	writeJSON(ctx, w, http.StatusOK, struct {
		Banners     []bannerDTO `json:"banners"`
		ActiveIndex int         `json:"activeIndex"`
	}{Banners: out, ActiveIndex: h.rotator.ActiveIndex()})
}

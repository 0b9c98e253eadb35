package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"streamvault/models"
	"streamvault/services/catalog"
)

// CatalogHandler proxies browse, search and trailer lookups to the catalog
// client. It owns no state; the stores never call through it.
type CatalogHandler struct {
	Client *catalog.Client
}

func NewCatalogHandler(client *catalog.Client) *CatalogHandler {
	return &CatalogHandler{Client: client}
}

// Home returns the browse shelves.
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Client.HomeRows(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

// Search searches movies, series, or both.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	var (
		items []models.CatalogItem
		err   error
	)
	switch models.MediaKind(r.URL.Query().Get("kind")) {
	case models.MediaKindMovie:
		items, err = h.Client.SearchMovies(r.Context(), query, page)
	case models.MediaKindSeries:
		items, err = h.Client.SearchSeries(r.Context(), query, page)
	default:
		var series []models.CatalogItem
		items, err = h.Client.SearchMovies(r.Context(), query, page)
		if err == nil {
			series, err = h.Client.SearchSeries(r.Context(), query, page)
			items = append(items, series...)
		}
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if items == nil {
		items = []models.CatalogItem{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// Trailers returns an item's videos plus the picked best trailer and its
// embed URL, so the frontend does not reimplement the selection.
func (h *CatalogHandler) Trailers(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid catalog item id", http.StatusBadRequest)
		return
	}
	kind := models.MediaKind(r.URL.Query().Get("kind"))
	if !kind.Valid() {
		kind = models.MediaKindMovie
	}

	trailers, err := h.Client.ItemTrailers(r.Context(), id, kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	resp := struct {
		Trailers []models.Trailer `json:"trailers"`
		Best     *models.Trailer  `json:"best,omitempty"`
		EmbedURL string           `json:"embedUrl,omitempty"`
	}{Trailers: trailers}
	if trailers == nil {
		resp.Trailers = []models.Trailer{}
	}

	if best, ok := catalog.BestTrailer(trailers); ok {
		resp.Best = &best
		if best.Site == "YouTube" {
			resp.EmbedURL = catalog.YouTubeEmbedURL(best.Key)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *CatalogHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

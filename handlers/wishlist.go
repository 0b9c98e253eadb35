package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"streamvault/models"
	"streamvault/services/wishlist"
)

type wishlistService interface {
	Add(item models.CatalogItem) bool
	Remove(id int64) bool
	Contains(id int64) bool
	All() []models.WishlistEntry
	ByKind(kind models.MediaKind) []models.WishlistEntry
	Clear() error
	Count() int
}

var _ wishlistService = (*wishlist.Service)(nil)

// WishlistHandler exposes the wishlist over HTTP.
type WishlistHandler struct {
	Service  wishlistService
	Language string
}

func NewWishlistHandler(service wishlistService, language string) *WishlistHandler {
	return &WishlistHandler{Service: service, Language: language}
}

// List returns the wishlist, optionally filtered by kind and re-sorted.
// Sorting is a presentation concern layered on the stored order.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	var entries []models.WishlistEntry
	switch kind := models.MediaKind(r.URL.Query().Get("kind")); {
	case kind.Valid():
		entries = h.Service.ByKind(kind)
	default:
		entries = h.Service.All()
	}

	switch strings.ToLower(r.URL.Query().Get("sort")) {
	case "added":
		entries = wishlist.SortedByAddedAt(entries)
	case "rating":
		entries = wishlist.SortedByRating(entries)
	case "title":
		entries = wishlist.SortedByTitle(entries, h.Language)
	}

	if entries == nil {
		entries = []models.WishlistEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// Add snapshots a catalog item into the wishlist. The response reports
// whether anything was added; re-adding a present item is not an error.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var item models.CatalogItem
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if item.ID == 0 {
		http.Error(w, "catalog item id is required", http.StatusBadRequest)
		return
	}

	added := h.Service.Add(item)

	w.Header().Set("Content-Type", "application/json")
	if added {
		w.WriteHeader(http.StatusCreated)
	}
	json.NewEncoder(w).Encode(map[string]bool{"added": added})
}

// Remove deletes an entry; removing an absent id answers 404.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid catalog item id", http.StatusBadRequest)
		return
	}

	if !h.Service.Remove(id) {
		http.Error(w, "not in wishlist", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Contains reports membership for one catalog item id.
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid catalog item id", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"inWishlist": h.Service.Contains(id)})
}

// Clear empties the whole wishlist.
func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Clear(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CountHandler returns the current wishlist size.
func (h *WishlistHandler) CountHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"count": h.Service.Count()})
}

func (h *WishlistHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

package api

import (
	"net/http"

	"streamvault/handlers"

	"github.com/gorilla/mux"
)

// handleOptions handles OPTIONS requests for CORS preflight
func handleOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Register mounts API endpoints onto the provided router.
func Register(
	r *mux.Router,
	authHandler *handlers.AuthHandler,
	wishlistHandler *handlers.WishlistHandler,
	catalogHandler *handlers.CatalogHandler,
	settingsHandler *handlers.SettingsHandler,
) {
	api := r.PathPrefix("/api").Subrouter()

	// Settings routes
	api.HandleFunc("/settings", settingsHandler.GetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", settingsHandler.UpdateSettings).Methods(http.MethodPut)
	api.HandleFunc("/settings", settingsHandler.Options).Methods(http.MethodOptions)

	// Auth routes
	api.HandleFunc("/auth/signup", authHandler.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/signup", authHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/auth/signin", authHandler.SignIn).Methods(http.MethodPost)
	api.HandleFunc("/auth/signin", authHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/auth/signout", authHandler.SignOut).Methods(http.MethodPost)
	api.HandleFunc("/auth/signout", authHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)
	api.HandleFunc("/auth/me", authHandler.UpdateProfile).Methods(http.MethodPatch)
	api.HandleFunc("/auth/me", authHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/auth/profile", authHandler.UpdateProfile).Methods(http.MethodPut)
	api.HandleFunc("/auth/profile", authHandler.Options).Methods(http.MethodOptions)

	// Wishlist routes
	api.HandleFunc("/wishlist", wishlistHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/wishlist", wishlistHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/wishlist", wishlistHandler.Clear).Methods(http.MethodDelete)
	api.HandleFunc("/wishlist", wishlistHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/wishlist/count", wishlistHandler.CountHandler).Methods(http.MethodGet)
	api.HandleFunc("/wishlist/count", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/wishlist/{id}", wishlistHandler.Contains).Methods(http.MethodGet)
	api.HandleFunc("/wishlist/{id}", wishlistHandler.Remove).Methods(http.MethodDelete)
	api.HandleFunc("/wishlist/{id}", wishlistHandler.Options).Methods(http.MethodOptions)

	// Catalog routes
	api.HandleFunc("/catalog/home", catalogHandler.Home).Methods(http.MethodGet)
	api.HandleFunc("/catalog/home", catalogHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/catalog/search", catalogHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/catalog/search", catalogHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/catalog/trailers", catalogHandler.Trailers).Methods(http.MethodGet)
	api.HandleFunc("/catalog/trailers", catalogHandler.Options).Methods(http.MethodOptions)
}

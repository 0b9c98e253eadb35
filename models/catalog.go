package models

// MediaKind discriminates movie and series catalog entries. The kind is
// stamped at ingestion time by the catalog client; nothing downstream
// guesses it from the shape of the record.
type MediaKind string

const (
	MediaKindMovie  MediaKind = "movie"
	MediaKindSeries MediaKind = "series"
)

// Valid reports whether the kind is one of the known discriminants.
func (k MediaKind) Valid() bool {
	return k == MediaKindMovie || k == MediaKindSeries
}

// CatalogItem is an externally sourced movie or series metadata record.
// It is immutable from this backend's point of view; stores that keep
// catalog data hold snapshot copies, never live references.
type CatalogItem struct {
	ID          int64     `json:"id"`
	Kind        MediaKind `json:"kind"`
	Title       string    `json:"title"`
	Overview    string    `json:"overview,omitempty"`
	PosterURL   string    `json:"posterUrl,omitempty"`
	BackdropURL string    `json:"backdropUrl,omitempty"`
	ReleaseDate string    `json:"releaseDate,omitempty"` // YYYY-MM-DD, may be empty
	Rating      float64   `json:"rating"`
	Votes       int       `json:"votes,omitempty"`
	Popularity  float64   `json:"popularity,omitempty"`
	GenreIDs    []int64   `json:"genreIds,omitempty"`
	Language    string    `json:"language,omitempty"`
}

// Trailer describes a promotional video attached to a catalog item.
type Trailer struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"` // YouTube | Vimeo
	Type     string `json:"type"` // Trailer | Teaser | Clip | ...
	Official bool   `json:"official"`
}

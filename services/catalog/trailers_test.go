package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"streamvault/models"
)

func TestBestTrailerPrefersOfficialYouTubeTrailer(t *testing.T) {
	trailers := []models.Trailer{
		{ID: "1", Key: "teaser", Site: "YouTube", Type: "Teaser", Official: true},
		{ID: "2", Key: "fan", Site: "YouTube", Type: "Trailer", Official: false},
		{ID: "3", Key: "official", Site: "YouTube", Type: "Trailer", Official: true},
	}

	best, ok := BestTrailer(trailers)
	require.True(t, ok)
	require.Equal(t, "official", best.Key)
}

func TestBestTrailerFallsBackToAnyYouTubeTrailer(t *testing.T) {
	trailers := []models.Trailer{
		{ID: "1", Key: "vimeo", Site: "Vimeo", Type: "Trailer", Official: true},
		{ID: "2", Key: "fan", Site: "YouTube", Type: "Trailer", Official: false},
	}

	best, ok := BestTrailer(trailers)
	require.True(t, ok)
	require.Equal(t, "fan", best.Key)
}

func TestBestTrailerFallsBackToFirstVideo(t *testing.T) {
	trailers := []models.Trailer{
		{ID: "1", Key: "clip", Site: "YouTube", Type: "Clip"},
		{ID: "2", Key: "featurette", Site: "YouTube", Type: "Featurette"},
	}

	best, ok := BestTrailer(trailers)
	require.True(t, ok)
	require.Equal(t, "clip", best.Key)
}

func TestBestTrailerEmptyList(t *testing.T) {
	_, ok := BestTrailer(nil)
	require.False(t, ok)
}

func TestYouTubeURLs(t *testing.T) {
	require.Equal(t,
		"https://www.youtube.com/embed/abc123?autoplay=1&controls=1&rel=0&showinfo=0&modestbranding=1",
		YouTubeEmbedURL("abc123"))

	require.Equal(t, "https://img.youtube.com/vi/abc123/hqdefault.jpg", YouTubeThumbnailURL("abc123", "hq"))
	require.Equal(t, "https://img.youtube.com/vi/abc123/default.jpg", YouTubeThumbnailURL("abc123", "default"))
	require.Equal(t, "https://img.youtube.com/vi/abc123/maxresdefault.jpg", YouTubeThumbnailURL("abc123", "maxres"))
	require.Equal(t, "https://img.youtube.com/vi/abc123/hqdefault.jpg", YouTubeThumbnailURL("abc123", "weird"))
}

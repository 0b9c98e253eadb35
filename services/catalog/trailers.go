package catalog

import "streamvault/models"

// BestTrailer picks the most watchable video from a trailer list:
// official YouTube trailers first, then any YouTube trailer, then whatever
// is left. Reports false when the list is empty.
func BestTrailer(trailers []models.Trailer) (models.Trailer, bool) {
	if len(trailers) == 0 {
		return models.Trailer{}, false
	}

	for _, t := range trailers {
		if t.Official && t.Site == "YouTube" && t.Type == "Trailer" {
			return t, true
		}
	}
	for _, t := range trailers {
		if t.Site == "YouTube" && t.Type == "Trailer" {
			return t, true
		}
	}
	return trailers[0], true
}

// YouTubeEmbedURL builds the autoplay embed URL for a YouTube video key.
func YouTubeEmbedURL(key string) string {
	return "https://www.youtube.com/embed/" + key + "?autoplay=1&controls=1&rel=0&showinfo=0&modestbranding=1"
}

// YouTubeThumbnailURL builds a thumbnail URL for a YouTube video key.
// Quality is one of "default", "hq", "maxres"; anything else maps to "hq".
func YouTubeThumbnailURL(key, quality string) string {
	name := "hqdefault"
	switch quality {
	case "default":
		name = "default"
	case "maxres":
		name = "maxresdefault"
	}
	return "https://img.youtube.com/vi/" + key + "/" + name + ".jpg"
}

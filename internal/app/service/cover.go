package service

import (
	"path"
	"strings"
)

var stillImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// SelectCoverPhoto chooses the association's representative image. Only
// newly uploaded URLs are considered: the first still image wins, then the
// first new URL of any type. With no new URLs the existing cover stands;
// a cover is never cleared.
func SelectCoverPhoto(existing string, newURLs []string) string {
	if len(newURLs) == 0 {
		return existing
	}
	for _, u := range newURLs {
		if isStillImage(u) {
			return u
		}
	}
	return newURLs[0]
}

func isStillImage(rawURL string) bool {
	u := rawURL
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	return stillImageExts[strings.ToLower(path.Ext(u))]
}

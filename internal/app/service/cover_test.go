package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectCoverPhoto(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		newURLs  []string
		want     string
	}{
		{
			name:     "No new media keeps existing",
			existing: "https://cdn.example.com/old.jpg",
			newURLs:  nil,
			want:     "https://cdn.example.com/old.jpg",
		},
		{
			name:     "First still image wins over earlier video",
			existing: "",
			newURLs:  []string{"https://cdn.example.com/a.mp4", "https://cdn.example.com/b.jpg"},
			want:     "https://cdn.example.com/b.jpg",
		},
		{
			name:     "All videos fall back to first new",
			existing: "",
			newURLs:  []string{"https://cdn.example.com/a.mp4", "https://cdn.example.com/b.mov"},
			want:     "https://cdn.example.com/a.mp4",
		},
		{
			name:     "New still image replaces existing video cover",
			existing: "https://cdn.example.com/old.mp4",
			newURLs:  []string{"https://cdn.example.com/new.png"},
			want:     "https://cdn.example.com/new.png",
		},
		{
			name:     "Query string does not hide the extension",
			existing: "",
			newURLs:  []string{"https://cdn.example.com/x.webp?sig=abc"},
			want:     "https://cdn.example.com/x.webp?sig=abc",
		},
		{
			name:     "Extension match is case-insensitive",
			existing: "",
			newURLs:  []string{"https://cdn.example.com/UP.JPG"},
			want:     "https://cdn.example.com/UP.JPG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectCoverPhoto(tt.existing, tt.newURLs)
			assert.Equal(t, tt.want, got)
		})
	}
}

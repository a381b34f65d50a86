package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
)

var videoExtensions = map[string]struct{}{
	".mp4": {}, ".webm": {}, ".mov": {},
}

// VideoHandler lists the video files available in the media directory.
type VideoHandler struct {
	mediaDir string
}

func NewVideoHandler(mediaDir string) *VideoHandler {
	return &VideoHandler{mediaDir: mediaDir}
}

type videosResponse struct {
	Videos []string `json:"videos"`
}

// List returns the names of video files in the media directory. A missing
// directory is an empty list, not an error.
func (h *VideoHandler) List(c echo.Context) error {
	entries, err := os.ReadDir(h.mediaDir)
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON(http.StatusOK, videosResponse{Videos: []string{}})
		}
		return err
	}

	videos := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := videoExtensions[strings.ToLower(filepath.Ext(entry.Name()))]; ok {
			videos = append(videos, entry.Name())
		}
	}
	sort.Strings(videos)

	return c.JSON(http.StatusOK, videosResponse{Videos: videos})
}

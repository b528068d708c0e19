package storage

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// photoKey names an upload by a fresh uuid and keeps a sane extension of
// the client filename, so user input never reaches the storage path.
func photoKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	return "photos/" + uuid.NewString() + ext
}

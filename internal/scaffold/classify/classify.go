// Package classify decides whether a template file is eligible for content rewriting.
package classify

import (
	"path/filepath"
	"strings"
)

var binaryExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".bmp": {}, ".ico": {}, ".webp": {},
	".jar": {}, ".aar": {}, ".so": {}, ".a": {}, ".dylib": {}, ".dll": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".rar": {},
	".mp3": {}, ".mp4": {}, ".avi": {}, ".mov": {},
	".pdf": {}, ".doc": {}, ".docx": {},
	".keystore": {},
}

// IsTextFile reports false only when the extension, compared case-insensitively, is a known binary format.
// Content is never inspected, so unlisted binary formats are treated as text.
func IsTextFile(path string) bool {
	extension := strings.ToLower(filepath.Ext(path))
	_, binary := binaryExtensions[extension]
	return !binary
}

// BinaryExtensions returns the deny-list in lowercase.
func BinaryExtensions() []string {
	extensions := make([]string, 0, len(binaryExtensions))
	for extension := range binaryExtensions {
		extensions = append(extensions, extension)
	}
	return extensions
}

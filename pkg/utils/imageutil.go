package utils

import (
	"mime"
	"path/filepath"
	"strings"
)

// DefaultAllowedExtensions are the upload extensions accepted by the converter.
var DefaultAllowedExtensions = []string{"png", "jpg", "jpeg"}

// Extension returns the lower-cased extension of filename without the dot.
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// IsJPEGFilename reports whether filename ends in .jpg or .jpeg, ignoring case.
func IsJPEGFilename(filename string) bool {
	switch Extension(filename) {
	case "jpg", "jpeg":
		return true
	}
	return false
}

// IsAllowedExtension checks filename against a list of extensions.
func IsAllowedExtension(filename string, allowed []string) bool {
	ext := Extension(filename)
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimPrefix(a, "."), ext) {
			return true
		}
	}
	return false
}

// NormalizeExtensions lower-cases and strips dots, dropping blanks.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

// AttachmentDisposition builds a Content-Disposition header value for a download.
func AttachmentDisposition(filename string) string {
	name := filepath.Base(filename)
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "attachment"
}

package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	unsafeFolderChars = regexp.MustCompile(`[^a-zA-Z0-9 _-]`)
	whitespace        = regexp.MustCompile(`\s+`)
)

// SubjectFolder turns a subject into a directory name, falling back to "General".
func SubjectFolder(subject string) string {
	folder := strings.TrimSpace(unsafeFolderChars.ReplaceAllString(subject, ""))
	if folder == "" {
		return "General"
	}
	return folder
}

// UploadFileName prefixes the client filename with a millisecond timestamp and
// replaces whitespace runs with underscores.
func UploadFileName(original string, at time.Time) string {
	name := whitespace.ReplaceAllString(strings.TrimSpace(original), "_")
	return strconv.FormatInt(at.UnixMilli(), 10) + "-" + name
}

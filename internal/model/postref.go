package model

import (
	"regexp"
	"strings"
)

var postURLPattern = regexp.MustCompile(`(?:reddit\.com/r/[^/]+/comments/|reddit\.com/comments/|reddit\.com/gallery/|reddit\.com/r/[^/]+/s/|redd\.it/|i\.redd\.it/)([a-zA-Z0-9]+)`)

var bareIDPattern = regexp.MustCompile(`^(?:t3_)?[a-zA-Z0-9]+$`)

// ExtractPostID pulls the base-36 post id out of a post URL.
func ExtractPostID(url string) (string, bool) {
	m := postURLPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ResolvePostRef accepts a bare id, a t3_ fullname, or a post URL and returns the bare id.
func ResolvePostRef(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if bareIDPattern.MatchString(ref) {
		return strings.TrimPrefix(ref, "t3_"), true
	}
	return ExtractPostID(ref)
}

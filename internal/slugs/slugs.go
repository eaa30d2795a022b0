// Package slugs builds document permalinks from site-relative paths, using
// gosimple/slug for each path component.
package slugs

import (
	"path"
	"strings"

	goslug "github.com/gosimple/slug"
)

// ComponentSlug slugifies a single path component.
func ComponentSlug(s string) string {
	slugged := goslug.Make(s)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(s, " ", "-"))
	}
	return slugged
}

// Permalink converts a site-relative markdown path into the URL path its
// rendered page is served at:
//
//	"posts/Hello World.md" -> "/posts/hello-world/"
//	"about/index.md"       -> "/about/"
//	"index.md"             -> "/"
func Permalink(relPath string) string {
	p := strings.TrimSuffix(path.Clean(strings.ReplaceAll(relPath, "\\", "/")), ".md")
	p = strings.TrimPrefix(p, "./")

	parts := strings.Split(p, "/")
	if parts[len(parts)-1] == "index" {
		parts = parts[:len(parts)-1]
	}

	var out []string
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		out = append(out, ComponentSlug(part))
	}
	if len(out) == 0 {
		return "/"
	}
	return "/" + strings.Join(out, "/") + "/"
}

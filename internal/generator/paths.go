package generator

import (
	"path"
	"path/filepath"
	"strings"
)

// routeForDocument maps a content-root-relative markdown path to the clean
// URL the processed document will be served from. Index documents collapse
// onto their directory route.
func routeForDocument(relPath, indexFile string) string {
	clean := strings.Trim(path.Clean(strings.TrimSpace(filepath.ToSlash(relPath))), "/")
	if clean == "" || clean == "." {
		return "/"
	}

	if path.Base(clean) == indexFile {
		dir := path.Dir(clean)
		if dir == "." {
			return "/"
		}
		return "/" + dir + "/"
	}

	clean = strings.TrimSuffix(clean, path.Ext(clean))
	return "/" + clean + "/"
}

// Package resolve maps code block file paths onto the local filesystem.
package resolve

import "path/filepath"

// Path resolves a fence header path against a project root. Absolute paths
// are cleaned and returned as-is; relative ones are joined to the root. An
// empty root leaves relative paths untouched. The function is pure: it
// never consults the filesystem.
func Path(header, root string) string {
	if header == "" {
		return ""
	}
	if filepath.IsAbs(header) {
		return filepath.Clean(header)
	}
	if root == "" {
		return filepath.Clean(header)
	}
	return filepath.Join(root, header)
}

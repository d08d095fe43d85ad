package texture

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// extPriority ranks image formats when several files share a stem.
// Formats that keep an alpha channel losslessly win.
var extPriority = map[string]int{
	".png":  3,
	".tga":  3,
	".webp": 2,
	".gif":  2,
	".tif":  1,
	".tiff": 1,
	".bmp":  1,
	".jpg":  0,
	".jpeg": 0,
}

// Index maps lowercase texture stems to filesystem paths.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans dir and its subdirectories for decodable images.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		rank, ok := extPriority[ext]
		if !ok {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists || rank > extPriority[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a texture name, or ("", false).
// Directory prefixes and extensions in name are ignored.
func (idx *Index) ResolvePath(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Stems returns every indexed stem in sorted order.
func (idx *Index) Stems() []string {
	out := make([]string, 0, len(idx.entries))
	for s := range idx.entries {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Package modules resolves `use` paths to source files under a root
// directory. Transitive loading and cross-unit visibility are the
// driver's concern; the checker only needs to know which files a module
// path names.
package modules

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/lunarlang/lunar/internal/config"
)

// Loader maps module paths to candidate source files.
type Loader struct {
	Root string
}

// NewLoader creates a loader rooted at the given source directory.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Resolve returns the source files a module path names, sorted. A path
// a::b matches both root/a/b.lun and every source file under root/a/b/.
func (l *Loader) Resolve(path []string) ([]string, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("modules: empty module path")
	}
	rel := filepath.Join(path...)

	var files []string
	seen := make(map[string]bool)
	for _, ext := range config.SourceFileExtensions {
		pats := []string{
			filepath.Join(l.Root, rel+ext),
			filepath.Join(l.Root, rel, "**", "*"+ext),
		}
		for _, pat := range pats {
			matches, err := doublestar.FilepathGlob(pat)
			if err != nil {
				return nil, fmt.Errorf("modules: resolving %s: %w", strings.Join(path, "::"), err)
			}
			for _, m := range matches {
				if !seen[m] {
					seen[m] = true
					files = append(files, m)
				}
			}
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("modules: no source files for %s under %s", strings.Join(path, "::"), l.Root)
	}
	sort.Strings(files)
	return files, nil
}

// ModuleName derives the module name of a source file: its base name
// without the source extension.
func (l *Loader) ModuleName(file string) string {
	return config.TrimSourceExt(filepath.Base(file))
}

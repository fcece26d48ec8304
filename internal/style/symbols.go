// Package style implements the rule passes evaluated against the structural
// model recovered from Java sources.
package style

import (
	"github.com/webcat-tools/precheck/internal/source"
)

// Index indexes all class declarations across the files of a run so passes
// that need cross-file facts (override enforcement) can resolve ancestors.
// Ancestors are resolved only within the scanned set; classes from outside
// the run are not resolvable and matching rules silently skip them.
type Index struct {
	Classes map[string]*source.ClassDecl
	Files   map[string]*source.SourceFile
}

// BuildIndex constructs an Index from all loaded source files.
// When two files declare the same class name the first occurrence wins.
func BuildIndex(files []*source.SourceFile) *Index {
	idx := &Index{
		Classes: make(map[string]*source.ClassDecl),
		Files:   make(map[string]*source.SourceFile, len(files)),
	}
	for _, f := range files {
		idx.Files[f.Path] = f
		for i := range f.Classes {
			c := &f.Classes[i]
			if _, ok := idx.Classes[c.Name]; !ok {
				idx.Classes[c.Name] = c
			}
		}
	}
	return idx
}

// LookupClass returns the class declaration for a name, or nil when the
// class was not part of the scanned set.
func (idx *Index) LookupClass(name string) *source.ClassDecl {
	return idx.Classes[name]
}

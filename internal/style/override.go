package style

import (
	"fmt"

	"github.com/webcat-tools/precheck/internal/report"
	"github.com/webcat-tools/precheck/internal/rules"
	"github.com/webcat-tools/precheck/internal/source"
)

// CheckOverride flags methods that redeclare a signature (name plus
// parameter count) from a class in the extends chain without carrying an
// @Override annotation. Ancestors are resolved only within the files scanned
// in the same run; an extends target outside the run is silently skipped.
func CheckOverride(f *source.SourceFile, idx *Index, cfg *rules.Config) []report.Violation {
	if !cfg.Style.RequireOverride {
		return nil
	}

	var violations []report.Violation

	for ci := range f.Classes {
		cls := &f.Classes[ci]
		if cls.Extends == "" {
			continue
		}

		ancestors := ancestorSignatures(idx, cls)
		if len(ancestors) == 0 {
			continue
		}

		for mi := range cls.Methods {
			m := &cls.Methods[mi]
			// Private methods never override and static methods hide rather
			// than override; @Override on either would not compile.
			if m.IsConstructor || m.Modifiers.Has(source.ModPrivate) || m.Modifiers.Has(source.ModStatic) {
				continue
			}
			sig := signature{name: m.Name, params: m.ParamCount}
			if ancestors[sig] && !m.HasAnnotation("Override") {
				violations = append(violations, report.NewError(
					"MissingOverride", f.Path, m.Line,
					fmt.Sprintf("%s.%s() overrides an inherited method but lacks @Override", cls.Name, m.Name),
				))
			}
		}
	}

	return violations
}

type signature struct {
	name   string
	params int
}

// ancestorSignatures collects the overridable (non-private, non-constructor)
// method signatures declared in the extends chain, guarding against cycles.
func ancestorSignatures(idx *Index, cls *source.ClassDecl) map[signature]bool {
	sigs := map[signature]bool{}
	seen := map[string]bool{cls.Name: true}

	name := cls.Extends
	for name != "" && !seen[name] {
		seen[name] = true
		ancestor := idx.LookupClass(name)
		if ancestor == nil {
			break
		}
		for mi := range ancestor.Methods {
			m := &ancestor.Methods[mi]
			if m.IsConstructor || m.Modifiers.Has(source.ModPrivate) {
				continue
			}
			sigs[signature{name: m.Name, params: m.ParamCount}] = true
		}
		name = ancestor.Extends
	}

	return sigs
}

// Package checker orchestrates scanning, extraction and rule evaluation for
// a set of Java source files, producing a consolidated run report.
package checker

import (
	"slices"

	"github.com/webcat-tools/precheck/internal/logging"
	"github.com/webcat-tools/precheck/internal/report"
	"github.com/webcat-tools/precheck/internal/rules"
	"github.com/webcat-tools/precheck/internal/source"
	"github.com/webcat-tools/precheck/internal/style"
)

// PassFunc is a rule pass that inspects one file's structural model and
// returns any violations. Passes must be total over a well-formed model:
// a malformed element degrades to not-applicable, never to a panic.
type PassFunc func(*source.SourceFile, *style.Index, *rules.Config) []report.Violation

// CheckOptions controls which passes to run.
type CheckOptions struct {
	PassFilter []string // If non-empty, only run the named passes.
}

// passEntry binds a named pass to its declaration order for output ties.
type passEntry struct {
	Name string
	Fn   PassFunc
}

// Checker evaluates the configured rules against Java source files.
type Checker struct {
	cfg    rules.Config
	passes []passEntry
}

// New creates a Checker for the given resolved rule configuration with all
// available passes registered in declaration order.
func New(cfg rules.Config) *Checker {
	c := &Checker{cfg: cfg}
	registerPasses(c)
	return c
}

// RegisterPass adds a rule pass to the checker. It is typically called from
// registerPasses during initialization.
func (c *Checker) RegisterPass(name string, fn PassFunc) {
	c.passes = append(c.passes, passEntry{Name: name, Fn: fn})
}

// CheckFiles scans, extracts and evaluates every path. A file that cannot be
// read or decoded produces an UnreadableFile violation and the run continues
// with the remaining files.
func (c *Checker) CheckFiles(paths []string, opts CheckOptions) *report.Run {
	r := report.NewRun(c.cfg.Name)
	log := logging.AppLogger()

	scanOpts := source.ScanOptions{TabWidth: c.cfg.Style.Indentation.TabWidth}

	var files []*source.SourceFile
	for _, path := range paths {
		f, err := source.LoadFile(path, scanOpts)
		if err != nil {
			log.WithField("file", path).WithError(err).Warn("skipping unreadable file")
			r.Add(report.NewError("UnreadableFile", path, 0, err.Error()))
			continue
		}
		files = append(files, f)
	}
	r.Summary.FileCount = len(files)

	c.evaluate(r, files, opts)
	return r
}

// CheckContent evaluates a single in-memory buffer, used for stdin mode.
func (c *Checker) CheckContent(name, content string, opts CheckOptions) *report.Run {
	r := report.NewRun(c.cfg.Name)

	scanOpts := source.ScanOptions{TabWidth: c.cfg.Style.Indentation.TabWidth}
	f, err := source.LoadContent(name, content, scanOpts)
	if err != nil {
		r.Add(report.NewError("UnreadableFile", name, 0, err.Error()))
		r.Sort()
		return r
	}
	r.Summary.FileCount = 1

	c.evaluate(r, []*source.SourceFile{f}, opts)
	return r
}

// evaluate builds the cross-file index, runs the passes over each file and
// sorts the collected violations into their deterministic output order.
func (c *Checker) evaluate(r *report.Run, files []*source.SourceFile, opts CheckOptions) {
	log := logging.AppLogger()
	idx := style.BuildIndex(files)

	for _, f := range files {
		if f.Truncated {
			r.Add(report.NewWarning("StructuralWarning", f.Path, len(f.Lines),
				"unbalanced braces; declarations closed at end of file"))
		}

		for pi, p := range c.passes {
			if !passMatchesFilter(p.Name, opts.PassFilter) {
				continue
			}
			violations := p.Fn(f, idx, &c.cfg)
			for _, v := range violations {
				v.RuleIndex = pi
				r.Add(v)
			}
			if len(violations) > 0 {
				log.WithField("file", f.Path).WithField("pass", p.Name).
					Debugf("%d violations", len(violations))
			}
		}
	}

	r.Sort()
}

// passMatchesFilter returns true if the pass name is in the filter, or if
// the filter is empty (meaning run all passes).
func passMatchesFilter(name string, filter []string) bool {
	return len(filter) == 0 || slices.Contains(filter, name)
}

// registerPasses wires up all available rule passes. Declaration order here
// fixes the tie-break order of violations on the same file and line.
func registerPasses(c *Checker) {
	c.RegisterPass("indentation", style.CheckIndentation)
	c.RegisterPass("linelength", style.CheckLineLength)
	c.RegisterPass("javadoc", style.CheckJavadoc)
	c.RegisterPass("structure", style.CheckStructure)
	c.RegisterPass("methods", style.CheckMethods)
	c.RegisterPass("override", style.CheckOverride)
	c.RegisterPass("testing", style.CheckTesting)
}

// Command precheck runs pre-submission checks over a Java source tree:
// style and testing rules against the configured profile, plus rendering of
// externally produced JUnit and JaCoCo coverage reports.
//
// Usage:
//
//	precheck [flags] [project-root]
//
// With no project root, a single Java buffer is read from stdin.
//
// Exit codes:
//
//	0  All checks passed (warnings may be present unless -strict)
//	1  One or more violations, or a coverage gate failed
//	2  Input or configuration error (missing path, bad profile, unreadable report)
package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/webcat-tools/precheck/internal/checker"
	"github.com/webcat-tools/precheck/internal/logging"
	"github.com/webcat-tools/precheck/internal/report"
	"github.com/webcat-tools/precheck/internal/results"
	"github.com/webcat-tools/precheck/internal/rules"
)

const version = "0.3.0"

func main() {
	// Env defaults may live in a .env next to the invocation; absence is fine.
	_ = godotenv.Load()
	logging.SetLevel(envOr("PRECHECK_LOG_LEVEL", "info"))

	os.Exit(run(os.Args[1:], os.Stdin))
}

func run(args []string, stdin io.Reader) int {
	fs := flag.NewFlagSet("precheck", flag.ContinueOnError)

	profileFlag := fs.String("profile", envOr("PRECHECK_PROFILE", "cs2114"), "Named rule profile")
	profileFile := fs.String("profile-file", "", "Path to a custom rule profile JSON file")
	formatFlag := fs.String("format", "text", "Output format: text or json")
	quiet := fs.Bool("quiet", false, "Suppress output (exit code only)")
	strict := fs.Bool("strict", false, "Treat warnings as errors")
	passesFlag := fs.String("rules", "", "Comma-separated pass names to run (e.g. javadoc,override)")
	showVersion := fs.Bool("version", false, "Print version and exit")

	maxLineLength := fs.Int("max-line-length", 0, "Override max_line_length (-1 disables)")
	noJavadoc := fs.Bool("no-javadoc", false, "Disable Javadoc checks")
	noAuthor := fs.Bool("no-author", false, "Disable @author check")
	noVersion := fs.Bool("no-version", false, "Disable @version check")
	allowGlobals := fs.Bool("allow-globals", false, "Allow static fields")
	allowEmpty := fs.Bool("allow-empty", false, "Allow empty methods")
	allowUnused := fs.Bool("allow-unused", false, "Allow unused private methods")
	noOverride := fs.Bool("no-override", false, "Disable @Override enforcement")
	noAnnotations := fs.Bool("no-annotations", false, "Disable @Test checks")
	noDelta := fs.Bool("no-delta", false, "Disable assertEquals delta checks")
	noMethodCov := fs.Bool("no-method-cov", false, "Disable full method coverage gate")
	noBranchCov := fs.Bool("no-branch-cov", false, "Disable full branch coverage gate")

	junitReport := fs.String("junit-report", "", "Comma-separated JUnit XML report paths or URLs to render")
	coverageReport := fs.String("coverage-report", "", "JaCoCo XML report path or URL to render and gate on")
	reportWait := fs.Duration("report-wait", 0, "How long to wait for a local report file to appear")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if *showVersion {
		fmt.Printf("precheck %s\n", version)
		return 0
	}

	if *formatFlag != "text" && *formatFlag != "json" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q (use text or json)\n", *formatFlag)
		return 2
	}

	// --- Resolve the rule configuration ---
	cfg, err := loadConfig(*profileFlag, *profileFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	root := fs.Arg(0)
	if root != "" {
		cfg, err = rules.ApplyProperties(cfg, filepath.Join(root, rules.PropertiesFile))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
	}

	overrides := rules.Overrides{
		NoJavadoc:     *noJavadoc,
		NoAuthor:      *noAuthor,
		NoVersion:     *noVersion,
		AllowGlobals:  *allowGlobals,
		AllowEmpty:    *allowEmpty,
		AllowUnused:   *allowUnused,
		NoOverride:    *noOverride,
		NoAnnotations: *noAnnotations,
		NoDelta:       *noDelta,
		NoMethodCov:   *noMethodCov,
		NoBranchCov:   *noBranchCov,
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "max-line-length" {
			overrides.MaxLineLength = maxLineLength
		}
	})
	cfg = overrides.Apply(cfg)

	opts := checker.CheckOptions{PassFilter: splitList(*passesFlag)}
	c := checker.New(cfg)

	// --- Run the style and testing checks ---
	var r *report.Run
	if root == "" {
		content, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: reading stdin: %v\n", err)
			return 2
		}
		r = c.CheckContent("<stdin>", string(content), opts)
	} else {
		sources, err := collectSources(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
		r = c.CheckFiles(sources, opts)
	}

	if !*quiet {
		if err := printRun(r, *formatFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
	}

	exitCode := 0
	if r.HasErrors() || (*strict && r.HasWarnings()) {
		exitCode = 1
	}

	// --- Render external reports and apply coverage gates ---
	if *junitReport != "" {
		code := renderJUnit(splitList(*junitReport), *reportWait, *quiet)
		exitCode = max(exitCode, code)
	}
	if *coverageReport != "" {
		code := renderCoverage(*coverageReport, cfg.Testing, *reportWait, *quiet)
		exitCode = max(exitCode, code)
	}

	return exitCode
}

// loadConfig resolves the rule profile from a file or an embedded name.
func loadConfig(profile, profileFile string) (rules.Config, error) {
	if profileFile != "" {
		return rules.LoadProfileFile(profileFile)
	}
	return rules.LoadProfile(profile)
}

// collectSources returns the ordered list of .java files under root/src.
func collectSources(root string) ([]string, error) {
	src := filepath.Join(root, "src")
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("expected directory %q", src)
	}

	var paths []string
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".java") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %q: %w", src, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// renderJUnit loads, builds and prints the test result tree.
// Returns 2 when a report cannot be loaded or parsed, 1 when tests failed.
func renderJUnit(paths []string, wait time.Duration, quiet bool) int {
	docs := map[string][]byte{}
	for _, p := range paths {
		if wait > 0 && !strings.HasPrefix(p, "http") {
			if err := results.WaitForFile(p, wait); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 2
			}
		}
		data, err := results.Load(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
		docs[p] = data
	}

	tree, err := results.BuildTestTree(docs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if !quiet {
		fmt.Println("Test results:")
		fmt.Print(results.RenderTree(tree))
	}
	if tree.Status == results.StatusFail {
		return 1
	}
	return 0
}

// renderCoverage loads the JaCoCo report, prints the coverage tree and the
// gap tree, and applies the configured coverage gates.
func renderCoverage(path string, t rules.Testing, wait time.Duration, quiet bool) int {
	if wait > 0 && !strings.HasPrefix(path, "http") {
		if err := results.WaitForFile(path, wait); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
	}
	data, err := results.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	exitCode := 0
	for _, gate := range []struct {
		counter  string
		enforced bool
	}{
		{results.CounterMethod, t.RequireFullMethodCoverage},
		{results.CounterBranch, t.RequireFullBranchCoverage},
	} {
		tree, err := results.BuildCoverageTree(path, data, gate.counter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}

		if !quiet {
			fmt.Printf("Coverage (%s):\n", gate.counter)
			fmt.Print(results.RenderTree(tree))
		}

		if tree.Percent() < t.CoverageThreshold {
			if !quiet {
				if gap := results.GapTree(tree); gap != nil {
					fmt.Printf("Coverage gaps (%s):\n", gate.counter)
					fmt.Print(results.RenderTree(gap))
				}
			}
			if gate.enforced {
				fmt.Fprintf(os.Stderr, "%s coverage %.1f%% below threshold %.1f%%\n",
					gate.counter, tree.Percent(), t.CoverageThreshold)
				exitCode = max(exitCode, 1)
			}
		}
	}

	return exitCode
}

// printRun outputs the run report in the specified format.
func printRun(r *report.Run, format string) error {
	switch format {
	case "json":
		data, err := report.FormatJSON(r)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "text":
		fmt.Print(report.FormatText(r))
	}
	return nil
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

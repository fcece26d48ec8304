// Package rules loads and merges rule profiles: named JSON bundles of
// enabled/disabled checks and their parameters, validated against an
// embedded JSON Schema and optionally overridden by a project-level
// properties file and command-line flags.
package rules

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/magiconair/properties"
)

//go:embed profiles
var profileFS embed.FS

// PropertiesFile is the project-level override file read from the project root.
const PropertiesFile = "precheck.properties"

// Indentation holds the whitespace parameters of the indentation rule.
type Indentation struct {
	UseSpaces       bool `json:"use_spaces"`
	SpacesPerIndent int  `json:"spaces_per_indent"`
	TabWidth        int  `json:"tab_width"`
}

// Style bundles the coding-style rules.
type Style struct {
	Indentation           Indentation `json:"indentation"`
	MaxLineLength         int         `json:"max_line_length"`
	JavadocRequired       bool        `json:"javadoc_required"`
	JavadocRequireAuthor  bool        `json:"javadoc_require_author"`
	JavadocRequireVersion bool        `json:"javadoc_require_version"`
	JavadocRequireParams  bool        `json:"javadoc_require_params"`
	JavadocRequireReturn  bool        `json:"javadoc_require_return"`
	OnePublicClassPerFile bool        `json:"one_public_class_per_file"`
	DisallowGlobalVars    bool        `json:"disallow_global_variables"`
	NoEmptyMethods        bool        `json:"no_empty_methods"`
	NoUnusedMethods       bool        `json:"no_unused_methods"`
	RequireOverride       bool        `json:"require_override"`
}

// Testing bundles the test-convention and coverage rules.
type Testing struct {
	AnnotationRequired        bool    `json:"annotation_required"`
	TestMethodsPrefix         string  `json:"test_methods_prefix"`
	RequireAssertEqualsDelta  bool    `json:"require_assert_equals_delta"`
	RequireFullMethodCoverage bool    `json:"require_full_method_coverage"`
	RequireFullBranchCoverage bool    `json:"require_full_branch_coverage"`
	CoverageThreshold         float64 `json:"coverage_threshold"`
}

// Config is a fully resolved rule configuration. It is read-only input to
// the evaluator: never mutated during a scan, safe to share across files.
type Config struct {
	Name    string  `json:"name"`
	Style   Style   `json:"style"`
	Testing Testing `json:"testing"`
}

// Default returns the documented defaults. Profiles are unmarshalled over
// this value, so a key missing from a profile keeps its documented default
// rather than silently disabling the rule.
func Default() Config {
	return Config{
		Name: "default",
		Style: Style{
			Indentation: Indentation{
				UseSpaces:       true,
				SpacesPerIndent: 4,
				TabWidth:        8,
			},
			MaxLineLength:         80,
			JavadocRequired:       true,
			JavadocRequireAuthor:  true,
			JavadocRequireVersion: true,
			JavadocRequireParams:  true,
			JavadocRequireReturn:  true,
			OnePublicClassPerFile: true,
			DisallowGlobalVars:    true,
			NoEmptyMethods:        true,
			NoUnusedMethods:       true,
			RequireOverride:       true,
		},
		Testing: Testing{
			AnnotationRequired:        true,
			TestMethodsPrefix:         "test",
			RequireAssertEqualsDelta:  true,
			RequireFullMethodCoverage: true,
			RequireFullBranchCoverage: true,
			CoverageThreshold:         100,
		},
	}
}

// LineLengthEnabled reports whether the max-line-length rule applies.
// A bound of exactly -1 disables the rule entirely.
func (s Style) LineLengthEnabled() bool {
	return s.MaxLineLength != -1
}

// LoadProfile loads a named embedded profile, validates it against the
// schema and merges it over the documented defaults.
func LoadProfile(name string) (Config, error) {
	data, err := profileFS.ReadFile(fmt.Sprintf("profiles/%s.rules.json", name))
	if err != nil {
		return Config{}, fmt.Errorf("unknown rule profile %q", name)
	}
	return parseProfile(data)
}

// LoadProfileFile loads a profile from an arbitrary path, for projects that
// ship their own rule bundle.
func LoadProfileFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read rule profile: %w", err)
	}
	return parseProfile(data)
}

func parseProfile(data []byte) (Config, error) {
	if errs := validateProfile(data); len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid rule profile: %s", errs[0].String())
	}
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse rule profile: %w", err)
	}
	return cfg, nil
}

// ApplyProperties merges overrides from a precheck.properties file into the
// config. A missing file is not an error; the config is returned unchanged.
func ApplyProperties(cfg Config, path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}

	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return cfg, fmt.Errorf("failed to load %s: %w", path, err)
	}

	cfg.Style.MaxLineLength = p.GetInt("style.max_line_length", cfg.Style.MaxLineLength)
	cfg.Style.Indentation.UseSpaces = p.GetBool("style.indentation.use_spaces", cfg.Style.Indentation.UseSpaces)
	cfg.Style.Indentation.SpacesPerIndent = p.GetInt("style.indentation.spaces_per_indent", cfg.Style.Indentation.SpacesPerIndent)
	cfg.Style.Indentation.TabWidth = p.GetInt("style.indentation.tab_width", cfg.Style.Indentation.TabWidth)
	cfg.Style.JavadocRequired = p.GetBool("style.javadoc_required", cfg.Style.JavadocRequired)
	cfg.Style.JavadocRequireAuthor = p.GetBool("style.javadoc_require_author", cfg.Style.JavadocRequireAuthor)
	cfg.Style.JavadocRequireVersion = p.GetBool("style.javadoc_require_version", cfg.Style.JavadocRequireVersion)
	cfg.Style.JavadocRequireParams = p.GetBool("style.javadoc_require_params", cfg.Style.JavadocRequireParams)
	cfg.Style.JavadocRequireReturn = p.GetBool("style.javadoc_require_return", cfg.Style.JavadocRequireReturn)
	cfg.Style.OnePublicClassPerFile = p.GetBool("style.one_public_class_per_file", cfg.Style.OnePublicClassPerFile)
	cfg.Style.DisallowGlobalVars = p.GetBool("style.disallow_global_variables", cfg.Style.DisallowGlobalVars)
	cfg.Style.NoEmptyMethods = p.GetBool("style.no_empty_methods", cfg.Style.NoEmptyMethods)
	cfg.Style.NoUnusedMethods = p.GetBool("style.no_unused_methods", cfg.Style.NoUnusedMethods)
	cfg.Style.RequireOverride = p.GetBool("style.require_override", cfg.Style.RequireOverride)

	cfg.Testing.AnnotationRequired = p.GetBool("testing.annotation_required", cfg.Testing.AnnotationRequired)
	cfg.Testing.TestMethodsPrefix = p.GetString("testing.test_methods_prefix", cfg.Testing.TestMethodsPrefix)
	cfg.Testing.RequireAssertEqualsDelta = p.GetBool("testing.require_assert_equals_delta", cfg.Testing.RequireAssertEqualsDelta)
	cfg.Testing.RequireFullMethodCoverage = p.GetBool("testing.require_full_method_coverage", cfg.Testing.RequireFullMethodCoverage)
	cfg.Testing.RequireFullBranchCoverage = p.GetBool("testing.require_full_branch_coverage", cfg.Testing.RequireFullBranchCoverage)
	cfg.Testing.CoverageThreshold = p.GetFloat64("testing.coverage_threshold", cfg.Testing.CoverageThreshold)

	return cfg, nil
}

// Overrides carries command-line flag overrides. Nil or false fields leave
// the profile value untouched.
type Overrides struct {
	MaxLineLength *int
	NoJavadoc     bool
	NoAuthor      bool
	NoVersion     bool
	AllowGlobals  bool
	AllowEmpty    bool
	AllowUnused   bool
	NoOverride    bool
	NoAnnotations bool
	NoDelta       bool
	NoMethodCov   bool
	NoBranchCov   bool
}

// Apply merges the overrides into the config and returns the result.
func (o Overrides) Apply(cfg Config) Config {
	if o.MaxLineLength != nil {
		cfg.Style.MaxLineLength = *o.MaxLineLength
	}
	if o.NoJavadoc {
		cfg.Style.JavadocRequired = false
	}
	if o.NoAuthor {
		cfg.Style.JavadocRequireAuthor = false
	}
	if o.NoVersion {
		cfg.Style.JavadocRequireVersion = false
	}
	if o.AllowGlobals {
		cfg.Style.DisallowGlobalVars = false
	}
	if o.AllowEmpty {
		cfg.Style.NoEmptyMethods = false
	}
	if o.AllowUnused {
		cfg.Style.NoUnusedMethods = false
	}
	if o.NoOverride {
		cfg.Style.RequireOverride = false
	}
	if o.NoAnnotations {
		cfg.Testing.AnnotationRequired = false
	}
	if o.NoDelta {
		cfg.Testing.RequireAssertEqualsDelta = false
	}
	if o.NoMethodCov {
		cfg.Testing.RequireFullMethodCoverage = false
	}
	if o.NoBranchCov {
		cfg.Testing.RequireFullBranchCoverage = false
	}
	return cfg
}

package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProfileCS2114(t *testing.T) {
	cfg, err := LoadProfile("cs2114")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}

	if cfg.Name != "cs2114" {
		t.Errorf("Name = %q, want cs2114", cfg.Name)
	}
	if cfg.Style.MaxLineLength != 80 {
		t.Errorf("MaxLineLength = %d, want 80", cfg.Style.MaxLineLength)
	}
	if !cfg.Style.JavadocRequired {
		t.Error("cs2114 requires Javadoc")
	}
	if cfg.Testing.TestMethodsPrefix != "test" {
		t.Errorf("TestMethodsPrefix = %q, want test", cfg.Testing.TestMethodsPrefix)
	}
}

func TestLoadProfileUnknown(t *testing.T) {
	if _, err := LoadProfile("no-such-profile"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestLoadProfileFileMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.rules.json")
	// Only max_line_length is given; every other key keeps its documented
	// default rather than silently disabling a rule.
	content := `{"style": {"max_line_length": 120}, "testing": {}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadProfileFile(path)
	if err != nil {
		t.Fatalf("LoadProfileFile: %v", err)
	}
	if cfg.Style.MaxLineLength != 120 {
		t.Errorf("MaxLineLength = %d, want 120", cfg.Style.MaxLineLength)
	}
	if !cfg.Style.JavadocRequired {
		t.Error("missing key must keep documented default (enabled)")
	}
	if cfg.Testing.TestMethodsPrefix != "test" {
		t.Errorf("TestMethodsPrefix = %q, want default", cfg.Testing.TestMethodsPrefix)
	}
}

func TestLoadProfileFileRejectsBadSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.rules.json")
	if err := os.WriteFile(path, []byte(`{"style": {"max_line_length": "eighty"}, "testing": {}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadProfileFile(path); err == nil {
		t.Error("expected schema validation error")
	}
}

func TestLoadProfileFileRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "typo.rules.json")
	if err := os.WriteFile(path, []byte(`{"style": {"max_line_len": 90}, "testing": {}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadProfileFile(path); err == nil {
		t.Error("a misspelled rule key must be rejected, not silently ignored")
	}
}

func TestLineLengthEnabled(t *testing.T) {
	s := Style{MaxLineLength: 80}
	if !s.LineLengthEnabled() {
		t.Error("80 must enable the rule")
	}
	s.MaxLineLength = -1
	if s.LineLengthEnabled() {
		t.Error("-1 must disable the rule entirely")
	}
}

func TestApplyProperties(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PropertiesFile)
	content := "style.max_line_length=100\nstyle.require_override=false\ntesting.test_methods_prefix=should\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ApplyProperties(Default(), path)
	if err != nil {
		t.Fatalf("ApplyProperties: %v", err)
	}
	if cfg.Style.MaxLineLength != 100 {
		t.Errorf("MaxLineLength = %d, want 100", cfg.Style.MaxLineLength)
	}
	if cfg.Style.RequireOverride {
		t.Error("require_override not overridden")
	}
	if cfg.Testing.TestMethodsPrefix != "should" {
		t.Errorf("TestMethodsPrefix = %q, want should", cfg.Testing.TestMethodsPrefix)
	}
}

func TestApplyPropertiesMissingFile(t *testing.T) {
	cfg, err := ApplyProperties(Default(), filepath.Join(t.TempDir(), PropertiesFile))
	if err != nil {
		t.Fatalf("missing properties file must not error: %v", err)
	}
	if cfg.Style.MaxLineLength != Default().Style.MaxLineLength {
		t.Error("config changed without a properties file")
	}
}

func TestOverridesApply(t *testing.T) {
	ml := -1
	o := Overrides{
		MaxLineLength: &ml,
		NoJavadoc:     true,
		AllowGlobals:  true,
		NoDelta:       true,
	}

	cfg := o.Apply(Default())
	if cfg.Style.MaxLineLength != -1 {
		t.Errorf("MaxLineLength = %d, want -1", cfg.Style.MaxLineLength)
	}
	if cfg.Style.JavadocRequired {
		t.Error("NoJavadoc not applied")
	}
	if cfg.Style.DisallowGlobalVars {
		t.Error("AllowGlobals not applied")
	}
	if cfg.Testing.RequireAssertEqualsDelta {
		t.Error("NoDelta not applied")
	}
	// Untouched settings keep their profile values.
	if !cfg.Style.RequireOverride {
		t.Error("unrelated setting changed")
	}
}

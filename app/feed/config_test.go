package feed

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func ptr[T any](v T) *T {
	return &v
}

func TestDefaultFeed(t *testing.T) {
	f := DefaultFeed()

	if f.UpdatedAt != Now() {
		t.Errorf("Expected default updated_at to be now, got %q", f.UpdatedAt)
	}
	if f.Categories == nil || len(f.Categories) != 0 {
		t.Errorf("Expected empty categories, got %v", f.Categories)
	}
	if f.Items == nil || len(f.Items) != 0 {
		t.Errorf("Expected empty items, got %v", f.Items)
	}
	if f.UseCDATA {
		t.Error("Expected CDATA to be disabled by default")
	}
}

func TestAssembleLayers(t *testing.T) {
	external := Overrides{
		Title:      ptr("External Title"),
		AuthorName: ptr("Site Owner"),
		Copyright:  ptr("(c) External"),
		Categories: ptr([]string{"a", "b"}),
	}
	overrides := Overrides{
		Title:      ptr("Caller Title"),
		SiteURL:    ptr("http://x/"),
		Categories: ptr([]string{"c"}),
		UseCDATA:   ptr(true),
	}

	f := Assemble(nil, external, overrides)

	if f.Title != "Caller Title" {
		t.Errorf("Expected caller title to win, got '%s'", f.Title)
	}
	if f.AuthorName != "Site Owner" {
		t.Errorf("Expected external author to survive, got '%s'", f.AuthorName)
	}
	if f.Copyright != "(c) External" {
		t.Errorf("Expected external copyright, got '%s'", f.Copyright)
	}
	if f.SiteURL != "http://x/" {
		t.Errorf("Expected site URL from overrides, got '%s'", f.SiteURL)
	}
	if len(f.Categories) != 1 || f.Categories[0] != "c" {
		t.Errorf("Expected categories replaced wholesale with [c], got %v", f.Categories)
	}
	if !f.UseCDATA {
		t.Error("Expected CDATA enabled by overrides")
	}
	if f.UpdatedAt != Now() {
		t.Errorf("Expected library default updated_at, got %q", f.UpdatedAt)
	}
}

func TestAssembleDoesNotMutateDefaults(t *testing.T) {
	defaults := DefaultFeed()
	defaults.Title = "Defaults"
	defaults.Categories = []string{"base"}

	f := Assemble(defaults, Overrides{}, Overrides{Title: ptr("Mine")})
	f.Categories[0] = "changed"
	f.AddItem(&Item{URL: "a", Title: "A", UpdatedAt: Now()})

	if defaults.Title != "Defaults" {
		t.Errorf("Expected defaults title untouched, got '%s'", defaults.Title)
	}
	if defaults.Categories[0] != "base" {
		t.Errorf("Expected defaults categories untouched, got %v", defaults.Categories)
	}
	if len(defaults.Items) != 0 {
		t.Errorf("Expected defaults items untouched, got %d items", len(defaults.Items))
	}
}

func TestAssembleEmptyOverrideClearsField(t *testing.T) {
	external := Overrides{Description: ptr("from config")}
	overrides := Overrides{Description: ptr("")}

	f := Assemble(nil, external, overrides)
	if f.Description != "" {
		t.Errorf("Expected explicit empty override to replace description, got '%s'", f.Description)
	}
}

func TestAddItemChaining(t *testing.T) {
	f := DefaultFeed()
	f.AddItem(&Item{URL: "1"}).AddItem(&Item{URL: "2"}).AddItem(&Item{URL: "3"})

	if len(f.Items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(f.Items))
	}
	for i, want := range []string{"1", "2", "3"} {
		if f.Items[i].URL != want {
			t.Errorf("Expected item %d to be '%s', got '%s'", i, want, f.Items[i].URL)
		}
	}
}

func TestOverridesYAMLIgnoresUnknownKeys(t *testing.T) {
	doc := `
title: "Blog"
site_url: "http://example.com/"
favourite_colour: "blue"
use_cdata: true
categories: [go, feeds]
items:
  - url: "post/1"
    title: "First"
    updated_at: 100
    link_alt: "p/1"
    bogus: "dropped"
`
	var o Overrides
	if err := yaml.Unmarshal([]byte(doc), &o); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	f := Assemble(nil, Overrides{}, o)

	if f.Title != "Blog" || f.SiteURL != "http://example.com/" {
		t.Errorf("Unexpected title/site: '%s' '%s'", f.Title, f.SiteURL)
	}
	if !f.UseCDATA {
		t.Error("Expected use_cdata to be decoded")
	}
	if len(f.Categories) != 2 {
		t.Errorf("Expected 2 categories, got %v", f.Categories)
	}
	if len(f.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(f.Items))
	}
	if f.Items[0].LinkAlt != "p/1" {
		t.Errorf("Expected link_alt 'p/1', got '%s'", f.Items[0].LinkAlt)
	}
	if sec, ok := NewNormalizer().Normalize(f.Items[0].UpdatedAt); !ok || sec != 100 {
		t.Errorf("Expected item date 100, got %d (ok=%v)", sec, ok)
	}
}

func TestOverridesYAMLRejectsScalarItems(t *testing.T) {
	var o Overrides
	err := yaml.Unmarshal([]byte(`items: "not a list"`), &o)
	if err == nil {
		t.Fatal("Expected error for scalar items")
	}
	if !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Expected InvalidShape, got: %v", err)
	}
}

func TestOverridesYAMLRejectsScalarItemEntry(t *testing.T) {
	var o Overrides
	err := yaml.Unmarshal([]byte("items:\n  - \"just a string\"\n"), &o)
	if err == nil {
		t.Fatal("Expected error for scalar item entry")
	}
	if !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Expected InvalidShape, got: %v", err)
	}
}

func TestOverridesYAMLNullDateClearsDefault(t *testing.T) {
	var o Overrides
	if err := yaml.Unmarshal([]byte("title: T\nsite_url: http://x/\nupdated_at: ~\n"), &o); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if o.UpdatedAt == nil || !o.UpdatedAt.IsZero() {
		t.Fatalf("Expected an explicit absent date, got %v", o.UpdatedAt)
	}

	f := Assemble(nil, Overrides{}, o)
	if !f.UpdatedAt.IsZero() {
		t.Errorf("Expected null updated_at to replace the default, got %v", f.UpdatedAt)
	}

	_, err := NewValidator(nil).Validate(f)
	assertValidationError(t, err, InvalidDate, "updatedAt", -1)
}

func TestOverridesYAMLOmittedDateKeepsDefault(t *testing.T) {
	var o Overrides
	if err := yaml.Unmarshal([]byte("title: T\n"), &o); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if o.UpdatedAt != nil {
		t.Errorf("Expected updated_at to stay unset, got %v", o.UpdatedAt)
	}
	if f := Assemble(nil, Overrides{}, o); f.UpdatedAt != Now() {
		t.Errorf("Expected default updated_at, got %v", f.UpdatedAt)
	}
}

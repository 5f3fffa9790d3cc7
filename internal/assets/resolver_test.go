package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_Fallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, filepath.Join("styles", "default.css"), "span.custom { }\n")
	writeAsset(t, dir, filepath.Join("templates", "default", "header.html"), "custom header")
	writeAsset(t, dir, filepath.Join("templates", "default", "footer.html"), "custom footer")

	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("custom style wins", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("default")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if !strings.Contains(got, "span.custom") {
			t.Errorf("LoadStyle() = %q, want custom content", got)
		}
	})

	t.Run("missing custom style falls back", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("plain")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if !strings.Contains(got, "span.var") {
			t.Errorf("LoadStyle() = %q, want embedded plain style", got)
		}
	})

	t.Run("custom template set wins", func(t *testing.T) {
		t.Parallel()

		ts, err := resolver.LoadTemplateSet("default")
		if err != nil {
			t.Fatalf("LoadTemplateSet() error = %v", err)
		}
		if ts.Header != "custom header" {
			t.Errorf("Header = %q, want %q", ts.Header, "custom header")
		}
		if ts.Meta != "" {
			t.Errorf("Meta = %q, want empty (sets are not merged)", ts.Meta)
		}
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadStyle("nonexistent-xyz")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})
}

func TestAssetResolver_NoFallbackOnIncompleteSet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, filepath.Join("templates", "default", "footer.html"), "only footer")

	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	_, err = resolver.LoadTemplateSet("default")
	if !errors.Is(err, ErrIncompleteTemplateSet) {
		t.Errorf("LoadTemplateSet() error = %v, want ErrIncompleteTemplateSet", err)
	}
}

func TestAssetResolver_NoFallbackOnReadError(t *testing.T) {
	t.Parallel()

	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	dir := t.TempDir()
	writeAsset(t, dir, filepath.Join("styles", "locked.css"), "x")
	if err := os.Chmod(filepath.Join(dir, "styles", "locked.css"), 0o000); err != nil {
		t.Fatalf("setup: %v", err)
	}

	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	_, err = resolver.LoadStyle("locked")
	if !errors.Is(err, ErrAssetRead) {
		t.Errorf("LoadStyle() error = %v, want ErrAssetRead", err)
	}
}

func TestAssetResolver_AvailableStyles(t *testing.T) {
	t.Parallel()

	resolver, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	if got := resolver.AvailableStyles(); len(got) == 0 {
		t.Error("AvailableStyles() is empty")
	}
}

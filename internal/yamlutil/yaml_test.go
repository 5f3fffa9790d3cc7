package yamlutil_test

// Notes:
// - TestInputSizeLimit mutates the package-level MaxInputSize, so it does not
//   run in parallel.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-doc2xhtml/internal/yamlutil"
)

type sampleConfig struct {
	Style  string            `yaml:"style"`
	Enable bool              `yaml:"enable"`
	Kinds  map[string]string `yaml:"kinds"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict_Input - Input validation
// ---------------------------------------------------------------------------

func TestUnmarshalStrict_Input(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{"valid", []byte("style: manual\nenable: true"), &sampleConfig{}, nil},
		{"nil data", nil, &sampleConfig{}, yamlutil.ErrNilData},
		{"empty data", []byte{}, &sampleConfig{}, yamlutil.ErrNilData},
		{"nil destination", []byte("style: x"), nil, yamlutil.ErrNilDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("syntax error has prefix", func(t *testing.T) {
		t.Parallel()

		err := yamlutil.UnmarshalStrict([]byte("style: [unclosed"), &sampleConfig{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.HasPrefix(err.Error(), "yamlutil:") {
			t.Errorf("error = %q, want prefix %q", err, "yamlutil:")
		}
	})
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Unknown fields are rejected
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("known fields", func(t *testing.T) {
		t.Parallel()

		var cfg sampleConfig
		data := []byte("style: manual\nkinds:\n  UM: User's Manual\n  REF: Reference\n")
		if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Style != "manual" {
			t.Errorf("Style = %q, want %q", cfg.Style, "manual")
		}
		if cfg.Kinds["REF"] != "Reference" {
			t.Errorf("Kinds[REF] = %q, want %q", cfg.Kinds["REF"], "Reference")
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		err := yamlutil.UnmarshalStrict([]byte("style: x\nbogus: y"), &sampleConfig{})
		if err == nil {
			t.Fatal("expected error for unknown field, got nil")
		}
		if !strings.HasPrefix(err.Error(), "yamlutil:") {
			t.Errorf("error = %q, want prefix %q", err, "yamlutil:")
		}
	})
}

// ---------------------------------------------------------------------------
// TestDecodeReader / TestDecodeFile - Streaming decode
// ---------------------------------------------------------------------------

func TestDecodeReader(t *testing.T) {
	t.Parallel()

	var cfg sampleConfig
	if err := yamlutil.DecodeReader(strings.NewReader("enable: true\n"), &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Enable {
		t.Error("Enable = false, want true")
	}

	err := yamlutil.DecodeReader(strings.NewReader(""), &cfg)
	if !errors.Is(err, yamlutil.ErrNilData) {
		t.Errorf("DecodeReader(empty) error = %v, want %v", err, yamlutil.ErrNilData)
	}
}

func TestDecodeFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("style: faq\n"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	var cfg sampleConfig
	if err := yamlutil.DecodeFile(path, &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Style != "faq" {
		t.Errorf("Style = %q, want %q", cfg.Style, "faq")
	}

	err := yamlutil.DecodeFile(filepath.Join(dir, "missing.yaml"), &cfg)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("DecodeFile(missing) error = %v, want os.ErrNotExist", err)
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - MaxInputSize enforcement
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	t.Run("at limit succeeds", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		data := make([]byte, 100)
		copy(data, "style: x")
		if err := yamlutil.UnmarshalStrict(data, &sampleConfig{}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("over limit fails with sizes", func(t *testing.T) {
		yamlutil.MaxInputSize = 50
		err := yamlutil.UnmarshalStrict(make([]byte, 100), &sampleConfig{})
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Fatalf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
		if !strings.Contains(err.Error(), "100 bytes") || !strings.Contains(err.Error(), "max 50") {
			t.Errorf("error = %q, want sizes in message", err)
		}
	})

	t.Run("reader is truncated past limit", func(t *testing.T) {
		yamlutil.MaxInputSize = 10
		err := yamlutil.DecodeReader(strings.NewReader(strings.Repeat("#", 1000)), &sampleConfig{})
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
	})
}

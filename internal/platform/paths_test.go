package platform

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "a/b", false},
		{"absolute", "/tmp/x", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"nul byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil {
				var pathErr *PathError
				if !errors.As(err, &pathErr) {
					t.Errorf("error should be *PathError, got %T", err)
				}
			}
		})
	}
}

func TestDisplayPath(t *testing.T) {
	if got := DisplayPath("left", ""); got != "left" {
		t.Errorf("DisplayPath(left, \"\") = %q", got)
	}
	if got := DisplayPath("left", "."); got != "left" {
		t.Errorf("DisplayPath(left, .) = %q", got)
	}
	want := filepath.Join("left", "sub", "f.txt")
	if got := DisplayPath("left", filepath.Join("sub", "f.txt")); got != want {
		t.Errorf("DisplayPath() = %q, want %q", got, want)
	}
}

func TestNormalizePath(t *testing.T) {
	if got := NormalizePath("a//b/../c"); got != filepath.Clean("a/c") {
		t.Errorf("NormalizePath() = %q", got)
	}
}

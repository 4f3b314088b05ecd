package biz

import (
	"reflect"
	"testing"
)

func TestValidateUploadSize(t *testing.T) {
	maxBytes := int64(8 << 20)

	tests := []struct {
		name    string
		decoded int64
		wantErr bool
	}{
		{"empty payload", 0, false},
		{"small payload", 1024, false},
		{"exactly at limit", maxBytes, false},
		{"one byte over", maxBytes + 1, true},
		{"far over", 64 << 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUploadSize(tt.decoded, maxBytes)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUploadSize(%d, %d) error = %v, wantErr %v",
					tt.decoded, maxBytes, err, tt.wantErr)
			}
			if err != nil && !IsFileTooLarge(err) {
				t.Errorf("expected FileTooLargeError, got %T", err)
			}
		})
	}
}

func TestDeriveMediaType(t *testing.T) {
	tests := []struct {
		contentType string
		want        MediaType
	}{
		{"image/jpeg", MediaTypeImage},
		{"image/png", MediaTypeImage},
		{"image/svg+xml", MediaTypeImage},
		{"video/mp4", MediaTypeVideo},
		{"video/webm", MediaTypeVideo},
		{"application/pdf", MediaTypeDocument},
		{"text/plain", MediaTypeDocument},
		{"audio/mpeg", MediaTypeDocument},
		{"", MediaTypeDocument},
	}

	for _, tt := range tests {
		if got := DeriveMediaType(tt.contentType); got != tt.want {
			t.Errorf("DeriveMediaType(%q) = %s, want %s", tt.contentType, got, tt.want)
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil input", nil, []string{}},
		{"deduplicates preserving order", []string{"b", "a", "b", "a"}, []string{"b", "a"}},
		{"trims whitespace", []string{" einsatz ", "einsatz"}, []string{"einsatz"}},
		{"drops empty", []string{"", "  ", "x"}, []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeTags(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalizeTags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bericht.pdf", "bericht.pdf"},
		{"mein foto.jpg", "mein_foto.jpg"},
		{"a/b\\c.png", "a_b_c.png"},
		{"frag?ment#1%.txt", "frag_ment_1_.txt"},
		{"", "file"},
		{"   ", "file"},
	}

	for _, tt := range tests {
		if got := sanitizeFileName(tt.in); got != tt.want {
			t.Errorf("sanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package data

import (
	"reflect"
	"testing"
	"time"

	"github.com/casemedia/casemedia-backend/internal/media/biz"
)

func TestMediaRecordMappingRoundTrip(t *testing.T) {
	uploadedAt := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	record := &biz.MediaRecord{
		ID:           "550e8400-e29b-41d4-a716-446655440000",
		OriginalName: "einsatzbericht.pdf",
		FileName:     "1710498600000-einsatzbericht.pdf",
		FilePath:     "einsaetze/1710498600000-einsatzbericht.pdf",
		FileSize:     204800,
		MimeType:     "application/pdf",
		MediaType:    biz.MediaTypeDocument,
		Directory:    "einsaetze",
		Tags:         []string{"bericht", "2024"},
		IsPublic:     true,
		Description:  "Abschlussbericht",
		UploadedBy:   "660e8400-e29b-41d4-a716-446655440001",
		UploadedAt:   uploadedAt,
		UpdatedAt:    uploadedAt,
	}

	po, err := toPO(record)
	if err != nil {
		t.Fatalf("toPO failed: %v", err)
	}

	if po.Tags != `["bericht","2024"]` {
		t.Errorf("unexpected tags jsonb: %s", po.Tags)
	}
	if po.MediaType != "document" {
		t.Errorf("unexpected media_type: %s", po.MediaType)
	}

	back, err := toDomain(po)
	if err != nil {
		t.Fatalf("toDomain failed: %v", err)
	}

	if !reflect.DeepEqual(record, back) {
		t.Errorf("round trip mismatch:\n in: %+v\nout: %+v", record, back)
	}
}

func TestMarshalTagsNilBecomesEmptyArray(t *testing.T) {
	got, err := marshalTags(nil)
	if err != nil {
		t.Fatalf("marshalTags failed: %v", err)
	}
	if got != "[]" {
		t.Errorf("expected empty jsonb array, got %s", got)
	}
}

func TestToDomainToleratesEmptyTagsColumn(t *testing.T) {
	po := &MediaRecordPO{
		ID:        "id-1",
		MediaType: "image",
		Tags:      "",
	}

	record, err := toDomain(po)
	if err != nil {
		t.Fatalf("toDomain failed: %v", err)
	}
	if record.Tags == nil || len(record.Tags) != 0 {
		t.Errorf("expected empty tags slice, got %v", record.Tags)
	}
}

func TestToDomainRejectsMalformedTags(t *testing.T) {
	po := &MediaRecordPO{ID: "id-1", Tags: "{not an array"}

	if _, err := toDomain(po); err == nil {
		t.Error("expected error for malformed tags column")
	}
}

func TestSortColumnWhitelist(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"file_size", "file_size"},
		{"original_name", "original_name"},
		{"uploaded_at", "uploaded_at"},
		{"", "uploaded_at"},
		{"evil; DROP TABLE media_records", "uploaded_at"},
	}

	for _, tt := range tests {
		if got := sortColumn(tt.in); got != tt.want {
			t.Errorf("sortColumn(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

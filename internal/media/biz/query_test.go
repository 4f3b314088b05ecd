package biz

import (
	"context"
	"reflect"
	"testing"
)

func TestListMediaRequestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        ListMediaRequest
		wantPage  int
		wantLimit int
		wantSort  string
	}{
		{"zero values", ListMediaRequest{}, 1, 20, "uploaded_at"},
		{"negative page", ListMediaRequest{Page: -3, Limit: 10}, 1, 10, "uploaded_at"},
		{"limit over max clamped", ListMediaRequest{Page: 2, Limit: 5000}, 2, 100, "uploaded_at"},
		{"limit at max kept", ListMediaRequest{Page: 1, Limit: 100}, 1, 100, "uploaded_at"},
		{"valid sort kept", ListMediaRequest{Limit: 20, SortBy: "file_size"}, 1, 20, "file_size"},
		{"unknown sort replaced", ListMediaRequest{Limit: 20, SortBy: "id; DROP TABLE"}, 1, 20, "uploaded_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			if tt.in.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", tt.in.Page, tt.wantPage)
			}
			if tt.in.Limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", tt.in.Limit, tt.wantLimit)
			}
			if tt.in.SortBy != tt.wantSort {
				t.Errorf("sort_by = %s, want %s", tt.in.SortBy, tt.wantSort)
			}
		})
	}
}

func TestListDegradesToEmptyOnStoreFailure(t *testing.T) {
	f := newFixture()
	seedRecords(t, f, 2)
	f.repo.failList = true

	list := f.uc.List(context.Background(), &ListMediaRequest{})

	if list == nil {
		t.Fatal("expected non-nil result")
	}
	if len(list.Items) != 0 || list.Total != 0 || list.HasMore {
		t.Errorf("expected empty degraded result, got %+v", list)
	}
}

func TestListReturnsSeededRecords(t *testing.T) {
	f := newFixture()
	seedRecords(t, f, 3)

	list := f.uc.List(context.Background(), &ListMediaRequest{Directory: "einsaetze"})

	if list.Total != 3 || len(list.Items) != 3 {
		t.Errorf("expected 3 records, got total=%d items=%d", list.Total, len(list.Items))
	}
	if list.HasMore {
		t.Error("no more pages expected")
	}
}

func TestDirectoriesFallbackOnFailure(t *testing.T) {
	f := newFixture()
	f.repo.failDirs = true

	dirs := f.uc.Directories(context.Background())
	if !reflect.DeepEqual(dirs, DefaultDirectories) {
		t.Errorf("expected fallback list, got %v", dirs)
	}
}

func TestDirectoriesFallbackOnEmptyStore(t *testing.T) {
	f := newFixture()

	dirs := f.uc.Directories(context.Background())
	if !reflect.DeepEqual(dirs, DefaultDirectories) {
		t.Errorf("expected fallback list for empty store, got %v", dirs)
	}
}

func TestDirectoriesServedFromCache(t *testing.T) {
	f := newFixture()
	f.cache.SetStrings(context.Background(), cacheKeyDirectories, []string{"cached-dir"}, readModelCacheTTL)
	f.repo.failDirs = true // 命中缓存时不应触达仓储

	dirs := f.uc.Directories(context.Background())
	if !reflect.DeepEqual(dirs, []string{"cached-dir"}) {
		t.Errorf("expected cached list, got %v", dirs)
	}
}

func TestDirectoriesPopulatesCache(t *testing.T) {
	f := newFixture()
	seedRecords(t, f, 1) // 目录 einsaetze
	f.cache.Invalidate(context.Background(), cacheKeyDirectories)

	dirs := f.uc.Directories(context.Background())
	if !reflect.DeepEqual(dirs, []string{"einsaetze"}) {
		t.Errorf("expected [einsaetze], got %v", dirs)
	}

	cached, ok := f.cache.GetStrings(context.Background(), cacheKeyDirectories)
	if !ok || !reflect.DeepEqual(cached, []string{"einsaetze"}) {
		t.Errorf("expected cache populated, got %v ok=%v", cached, ok)
	}
}

func TestTagsFallbackToEmptyOnFailure(t *testing.T) {
	f := newFixture()
	f.repo.failTags = true

	tags := f.uc.Tags(context.Background())
	if tags == nil || len(tags) != 0 {
		t.Errorf("expected empty list, got %v", tags)
	}
}

func TestMutationInvalidatesReadModels(t *testing.T) {
	f := newFixture()
	f.cache.SetStrings(context.Background(), cacheKeyDirectories, []string{"stale"}, readModelCacheTTL)
	f.cache.SetStrings(context.Background(), cacheKeyTags, []string{"stale"}, readModelCacheTTL)

	seedRecord(t, f)

	if _, ok := f.cache.GetStrings(context.Background(), cacheKeyDirectories); ok {
		t.Error("directories cache should be invalidated after upload")
	}
	if _, ok := f.cache.GetStrings(context.Background(), cacheKeyTags); ok {
		t.Error("tags cache should be invalidated after upload")
	}
}

package models

import (
	"testing"
	"time"
)

func TestAlbumsByYear(t *testing.T) {
	albums := []*Album{
		{ID: 1, CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, CreatedAt: time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC)},
		{ID: 3, CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	byYear := AlbumsByYear(albums)
	if len(byYear) != 2 {
		t.Fatalf("expected 2 year buckets, got %d", len(byYear))
	}
	if len(byYear[2024]) != 2 {
		t.Errorf("expected 2 albums in 2024, got %d", len(byYear[2024]))
	}
	if len(byYear[2025]) != 1 {
		t.Errorf("expected 1 album in 2025, got %d", len(byYear[2025]))
	}
	if byYear[2024][0].ID != 1 || byYear[2024][1].ID != 2 {
		t.Error("albums within a year should keep input order")
	}
}

func TestAlbumsByYearEmpty(t *testing.T) {
	if byYear := AlbumsByYear(nil); len(byYear) != 0 {
		t.Fatalf("expected empty map, got %d buckets", len(byYear))
	}
}

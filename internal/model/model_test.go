package model

import (
	"testing"
	"time"
)

func TestNewFlyer(t *testing.T) {
	cfg := &FlyerConfig{
		TitleFormat: "Weekly Literary Meeting - Session {session}",
		Description: "Tamil short story analysis and discussion",
	}

	when := time.Date(2024, time.December, 3, 0, 0, 0, 0, time.UTC)
	f := NewFlyer("flyer-2024-12-03.png", "2024", when, DateFromFilename, cfg)

	if f.Title != "Weekly Literary Meeting - Session 2024" {
		t.Errorf("Title = %q", f.Title)
	}
	if f.Date != "December 03, 2024" {
		t.Errorf("Date = %q, want %q", f.Date, "December 03, 2024")
	}
	if f.Description != cfg.Description {
		t.Errorf("Description = %q", f.Description)
	}
	if f.DateSource != DateFromFilename {
		t.Errorf("DateSource = %v", f.DateSource)
	}
}

func TestNewFlyer_NoPlaceholder(t *testing.T) {
	cfg := &FlyerConfig{TitleFormat: "Meeting"}
	f := NewFlyer("a.jpg", "1", time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), DateFromSchedule, cfg)

	if f.Title != "Meeting" {
		t.Errorf("Title = %q, want %q", f.Title, "Meeting")
	}
}

func TestCatalog_PutKeepsYearsSorted(t *testing.T) {
	var c Catalog
	c.Put("2025", []Flyer{{Filename: "a.jpg"}})
	c.Put("2023", []Flyer{{Filename: "b.jpg"}, {Filename: "c.jpg"}})
	c.Put("2024", nil)

	got := c.Years()
	want := []string{"2023", "2024", "2025"}
	if len(got) != len(want) {
		t.Fatalf("Years() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Years()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if c.Total() != 3 {
		t.Errorf("Total() = %d, want 3", c.Total())
	}
}

func TestCatalog_PutReplaces(t *testing.T) {
	var c Catalog
	c.Put("2024", []Flyer{{Filename: "a.jpg"}})
	c.Put("2024", []Flyer{{Filename: "b.jpg"}, {Filename: "c.jpg"}})

	b, ok := c.Bucket("2024")
	if !ok {
		t.Fatal("Bucket(2024) not found")
	}
	if len(b.Flyers) != 2 || b.Flyers[0].Filename != "b.jpg" {
		t.Errorf("Bucket(2024) = %+v", b)
	}
	if len(c.Buckets()) != 1 {
		t.Errorf("len(Buckets()) = %d, want 1", len(c.Buckets()))
	}
}

func TestCatalog_Empty(t *testing.T) {
	var c Catalog
	if !c.Empty() {
		t.Error("zero Catalog should be empty")
	}
	if _, ok := c.Bucket("2024"); ok {
		t.Error("Bucket on empty catalog should report false")
	}
}

func TestDateSource_String(t *testing.T) {
	tests := []struct {
		src  DateSource
		want string
	}{
		{DateFromFilename, "filename"},
		{DateFromSchedule, "schedule"},
		{DateSource(9), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.src.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

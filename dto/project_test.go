package dto

import (
	"testing"

	"main/model"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Empty", "", ""},
		{"ShortStaysWhole", "Fix my roof", "Fix my roof"},
		{"ExactlyFiveWords", "one two three four five", "one two three four five"},
		{"TruncatedWithEllipsis", "one two three four five six", "one two three four five..."},
		{"CollapsesWhitespace", "  spaced   out  title  ", "spaced out title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.in); got != tt.want {
				t.Errorf("Preview(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFeedItems(t *testing.T) {
	views := []model.ProjectView{
		{
			ID:          "a",
			Title:       "Replace the garage roof before first snow falls",
			Description: "Old shingles, full tear-off, haul away the debris please",
		},
		{ID: "b", Title: "Paint the fence", Description: "Two coats"},
	}

	items := FeedItems(views)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].TitlePreview != "Replace the garage roof before..." {
		t.Errorf("long title not previewed: %q", items[0].TitlePreview)
	}
	if items[0].DescriptionPreview != "Old shingles, full tear-off, haul..." {
		t.Errorf("long description not previewed: %q", items[0].DescriptionPreview)
	}
	if items[1].TitlePreview != "Paint the fence" || items[1].DescriptionPreview != "Two coats" {
		t.Errorf("short fields should pass through: %+v", items[1])
	}
	if items[1].ID != "b" {
		t.Errorf("view fields not carried: %+v", items[1])
	}

	if got := FeedItems(nil); len(got) != 0 {
		t.Errorf("expected empty slice for nil views, got %v", got)
	}
}

func TestBidItemsTotal(t *testing.T) {
	items := []model.BidItem{
		{Description: "Shingles", Quantity: 3, PricePerItem: 20},
		{Description: "Labor", Quantity: 2, PricePerItem: 45.5},
		{Description: "Misc", Quantity: 0, PricePerItem: 99},
	}
	if got := BidItemsTotal(items); got != 151 {
		t.Errorf("BidItemsTotal = %v, want 151", got)
	}

	if got := BidItemsTotal(nil); got != 0 {
		t.Errorf("BidItemsTotal(nil) = %v, want 0", got)
	}
}

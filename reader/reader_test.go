package reader

import (
	"reflect"
	"testing"

	"github.com/scipunch/rssreader/fetcher/types"
)

func intPtr(n int) *int { return &n }

func sampleDoc() types.Document {
	return types.Document{
		Channel: types.Fields{
			"title":          "Example Feed",
			"link":           "http://example.com",
			"description":    "Examples",
			"date":           "Mon, 21 Oct 2019 10:00:00 +0000",
			"published":      "Sun, 20 Oct 2019 09:00:00 +0000",
			"language":       "en",
			"tags":           []types.Tag{{Term: "tech"}, {Term: "news"}},
			"managingEditor": "ed@example.com",
			// names the parser never folds into channel fields
			"lastBuildDate": "ignored",
			"pubDate":       "ignored",
		},
		Entries: []types.Fields{
			{"title": "One", "summary": "first"},
			{"title": "Two", "author": "Jane", "published": "Tue, 22 Oct 2019 10:00:00 +0000"},
			{"link": "http://example.com/3", "tags": []types.Tag{{Term: "go"}}},
			{"title": "", "published": "", "link": ""},
		},
	}
}

func TestNormalize_Channel(t *testing.T) {
	channel, _ := Normalize(sampleDoc(), nil)

	want := ChannelInfo{
		Title:          "Example Feed",
		Link:           "http://example.com",
		Description:    "Examples",
		LastBuildDate:  "Mon, 21 Oct 2019 10:00:00 +0000",
		PubDate:        "Sun, 20 Oct 2019 09:00:00 +0000",
		Language:       "en",
		Categories:     []Category{{Term: "tech"}, {Term: "news"}},
		ManagingEditor: "ed@example.com",
	}
	if !reflect.DeepEqual(channel, want) {
		t.Errorf("Unexpected channel:\n got %+v\nwant %+v", channel, want)
	}
}

func TestNormalize_EmptyDocument(t *testing.T) {
	channel, items := Normalize(types.Document{}, nil)

	want := ChannelInfo{Categories: []Category{}}
	if !reflect.DeepEqual(channel, want) {
		t.Errorf("Expected empty channel, got %+v", channel)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("Expected empty non-nil items, got %#v", items)
	}
}

func TestNormalize_ItemDefaults(t *testing.T) {
	_, items := Normalize(sampleDoc(), nil)
	if len(items) != 4 {
		t.Fatalf("Expected 4 items, got %d", len(items))
	}

	tests := []struct {
		name string
		got  Item
		want Item
	}{
		{
			name: "title and summary only",
			got:  items[0],
			want: Item{
				Title:       "One",
				PubDate:     DefaultItemPubDate,
				Link:        DefaultItemLink,
				Category:    []Category{},
				Description: "first",
			},
		},
		{
			name: "author and published present",
			got:  items[1],
			want: Item{
				Title:    "Two",
				Author:   "Jane",
				PubDate:  "Tue, 22 Oct 2019 10:00:00 +0000",
				Link:     DefaultItemLink,
				Category: []Category{},
			},
		},
		{
			name: "missing title",
			got:  items[2],
			want: Item{
				Title:    DefaultItemTitle,
				PubDate:  DefaultItemPubDate,
				Link:     "http://example.com/3",
				Category: []Category{{Term: "go"}},
			},
		},
		{
			name: "explicit empty strings are kept",
			got:  items[3],
			want: Item{Category: []Category{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("\n got %+v\nwant %+v", tt.got, tt.want)
			}
		})
	}
}

func TestNormalize_Limit(t *testing.T) {
	_, all := Normalize(sampleDoc(), nil)

	tests := []struct {
		name  string
		limit *int
		want  int
	}{
		{"absent", nil, 4},
		{"zero", intPtr(0), 0},
		{"negative", intPtr(-2), 0},
		{"one", intPtr(1), 1},
		{"three", intPtr(3), 3},
		{"exact", intPtr(4), 4},
		{"beyond", intPtr(10), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, items := Normalize(sampleDoc(), tt.limit)
			if len(items) != tt.want {
				t.Fatalf("Expected %d items, got %d", tt.want, len(items))
			}
			if !reflect.DeepEqual(items, all[:tt.want]) {
				t.Errorf("Items are not a prefix of the unlimited result")
			}
		})
	}
}

func TestNormalize_WrongValueTypeFallsBack(t *testing.T) {
	doc := types.Document{
		Entries: []types.Fields{{"title": 42, "tags": "not-a-list"}},
	}
	_, items := Normalize(doc, nil)
	if items[0].Title != DefaultItemTitle {
		t.Errorf("Expected default title, got %q", items[0].Title)
	}
	if len(items[0].Category) != 0 {
		t.Errorf("Expected no categories, got %+v", items[0].Category)
	}
}

func TestTerms(t *testing.T) {
	got := Terms([]Category{{Term: "a"}, {Term: "b"}})
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Unexpected terms %v", got)
	}
}

func TestStripHTML(t *testing.T) {
	items := []Item{
		{Description: "<p>Hello &amp; <b>welcome</b></p>"},
		{Description: "plain\ntext"},
		{Description: ""},
	}
	StripHTML(items)

	want := []string{"Hello & welcome", "plain\ntext", ""}
	for i, w := range want {
		if items[i].Description != w {
			t.Errorf("item %d: expected %q, got %q", i, w, items[i].Description)
		}
	}
}

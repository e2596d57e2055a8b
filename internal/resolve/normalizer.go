package resolve

import (
	"strings"
	"time"

	"bookshelf/internal/catalog"
	"bookshelf/internal/platform/aladin"
)

// Draft is the unsaved output of normalizing one raw catalog item: a book
// draft plus the distinct author names attached to it.
type Draft struct {
	Book     catalog.Book
	Category string
	Authors  []string
}

var pubDateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// Normalize converts one raw item into a Draft. It is a pure transformation;
// ok is false when the item is not a book (music, video, other merchandise).
// Missing month and day components of the publication date default to 1; an
// unparsable or missing date falls back to now.
func Normalize(item aladin.Item, now time.Time) (Draft, bool) {
	if !isBookMallType(item.MallType) {
		return Draft{}, false
	}

	isbn13 := item.ISBN13
	if isbn13 == "" && len(item.ISBN) == 13 {
		isbn13 = item.ISBN
	}

	pages := item.ItemPage
	if pages == 0 {
		pages = item.SubInfo.ItemPage
	}

	return Draft{
		Book: catalog.Book{
			Title:       item.Title,
			CoverURL:    item.Cover,
			Publisher:   item.Publisher,
			ISBN13:      isbn13,
			TotalPages:  pages,
			PublishedAt: parsePubDate(item.PubDate, now),
			AvgRating:   item.CustomerReviewRank / 2,
		},
		Category: CategoryName(item.CategoryName, item.MallType),
		Authors:  authorNames(item),
	}, true
}

// isBookMallType accepts the three book sub-catalogs. An absent mall type is
// accepted as well; lookups by ISBN do not always carry one.
func isBookMallType(mallType string) bool {
	switch mallType {
	case "", mallTypeBook, mallTypeForeign, mallTypeEBook:
		return true
	}
	return false
}

func parsePubDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return now
}

// authorNames merges the flat author string with the structured subInfo
// author list, deduplicated by exact name in first-seen order.
func authorNames(item aladin.Item) []string {
	var names []string
	seen := make(map[string]struct{})

	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	split := strings.FieldsFunc(item.Author, func(r rune) bool {
		return r == ',' || r == ';'
	})
	for _, name := range split {
		add(name)
	}
	for _, a := range item.SubInfo.Authors {
		add(a.AuthorName)
	}
	return names
}

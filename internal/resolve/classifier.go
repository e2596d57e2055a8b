package resolve

import (
	"strings"
)

// Mall type codes the external catalog marks book-like items with. Anything
// else (music, DVD, goods) is not a book.
const (
	mallTypeBook    = "BOOK"
	mallTypeForeign = "FOREIGN"
	mallTypeEBook   = "EBOOK"
)

// fallbackCategory is the bucket for items with no category path and no
// recognized mall type.
const fallbackCategory = "General"

var mallTypeCategories = map[string]string{
	mallTypeBook:    "Domestic",
	mallTypeForeign: "Foreign",
	mallTypeEBook:   "eBook",
}

// CategoryName derives a canonical category from a ">"-separated category
// path. The source taxonomy keeps the genre at the path's second level, so
// that segment wins when present; a single-segment path is used as-is. With
// no usable path the name falls back to a fixed mapping keyed by mall type.
// The result is always non-empty.
func CategoryName(path, mallType string) string {
	var segments []string
	for _, seg := range strings.Split(path, ">") {
		if s := strings.TrimSpace(seg); s != "" {
			segments = append(segments, s)
		}
	}

	switch {
	case len(segments) >= 2:
		return segments[1]
	case len(segments) == 1:
		return segments[0]
	}

	if name, ok := mallTypeCategories[mallType]; ok {
		return name
	}
	return fallbackCategory
}

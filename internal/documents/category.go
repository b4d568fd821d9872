package documents

import "errors"

// Category is a kind of document the caller may ask the picker for.
type Category int

const (
	PDF Category = iota
	Image
	Audio
	Video
	Any
)

// ErrNoValidCategories is returned when no recognized category was supplied.
// Its text is sent to the extension as-is.
var ErrNoValidCategories = errors.New("Didn't receive any argument.")

// categoryNames maps wire names to categories. Matching is case-sensitive.
var categoryNames = map[string]Category{
	"pdf":   PDF,
	"image": Image,
	"audio": Audio,
	"video": Video,
	"all":   Any,
}

// ParseCategory returns the category for a wire name
func ParseCategory(name string) (Category, bool) {
	c, ok := categoryNames[name]
	return c, ok
}

// String returns the wire name of the category
func (c Category) String() string {
	switch c {
	case PDF:
		return "pdf"
	case Image:
		return "image"
	case Audio:
		return "audio"
	case Video:
		return "video"
	case Any:
		return "all"
	}
	return "unknown"
}

// UTI returns the uniform type identifier the native picker filters on.
// The values must stay bit-exact; the macOS surface passes them through.
func (c Category) UTI() string {
	switch c {
	case PDF:
		return "com.adobe.pdf"
	case Image:
		return "public.image"
	case Video:
		return "public.movie"
	case Audio:
		return "public.audio"
	}
	return "public.data"
}

// UTIs maps categories to type identifiers, preserving order
func UTIs(cats []Category) []string {
	utis := make([]string, 0, len(cats))
	for _, c := range cats {
		utis = append(utis, c.UTI())
	}
	return utis
}

package catalog

import "strings"

// ImageDelimiter separates image references in the image column.
const ImageDelimiter = "||"

// Images is the parsed image column of one record.
type Images struct {
	// All holds every non-empty reference, in order, rebased when possible.
	All []string `json:"all"`
	// Primary is the first reference if it is displayable, otherwise empty.
	Primary string `json:"primary"`
	// More holds the displayable references after the first.
	More []string `json:"more"`
}

// HasImage reports whether the record has a displayable primary image.
func (im Images) HasImage() bool { return im.Primary != "" }

// ParseImages splits a raw image field. Entries are trimmed and blank entries
// or null markers are dropped. When baseOrigin is non-empty, entries starting
// with "/" are rebased onto it.
func (s *Schema) ParseImages(raw, baseOrigin string) Images {
	im := Images{All: []string{}, More: []string{}}
	for _, part := range strings.Split(raw, ImageDelimiter) {
		ref := strings.TrimSpace(part)
		if ref == "" || s.IsNull(ref) {
			continue
		}
		im.All = append(im.All, resolveImage(ref, baseOrigin))
	}

	for i, ref := range im.All {
		if !isDisplayable(ref) {
			continue
		}
		if i == 0 {
			im.Primary = ref
		} else {
			im.More = append(im.More, ref)
		}
	}
	return im
}

func resolveImage(ref, baseOrigin string) string {
	if baseOrigin == "" || !strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "//") {
		return ref
	}
	return strings.TrimRight(baseOrigin, "/") + ref
}

func isDisplayable(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

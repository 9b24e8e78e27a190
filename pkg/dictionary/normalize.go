package dictionary

import "strings"

const (
	dataPrefix = "data-"
	ariaPrefix = "aria-"
)

// Normalize converts a raw attribute name into its lookup key: ASCII letters
// are lowercased and hyphen and namespace-colon separators are dropped.
//
//	accept-charset, acceptCharset -> acceptcharset
//	xlink:href, xlinkHref         -> xlinkhref
//	onMousedown, onMouseDown      -> onmousedown
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '-' || c == ':':
			continue
		case 'A' <= c && c <= 'Z':
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// IsDataAttribute reports whether name has the custom data attribute shape:
// the `data-` prefix followed by at least one character, no namespace colon,
// and not the XML-reserved `data-xml` prefix.
func IsDataAttribute(name string) bool {
	if len(name) <= len(dataPrefix) || !strings.HasPrefix(name, dataPrefix) {
		return false
	}
	if strings.ContainsRune(name, ':') {
		return false
	}
	rest := name[len(dataPrefix):]
	return len(rest) < 3 || !strings.EqualFold(rest[:3], "xml")
}

// HasDataPrefix reports whether name starts with `data-`, whether or not it
// has the full data attribute shape.
func HasDataPrefix(name string) bool {
	return strings.HasPrefix(name, dataPrefix)
}

// HasARIAPrefix reports whether name claims to be an ARIA attribute.
func HasARIAPrefix(name string) bool {
	return strings.HasPrefix(name, ariaPrefix)
}

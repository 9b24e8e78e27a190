package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/propcheck/pkg/dictionary"
)

// categoryTitles orders the dictionary sections.
var categoryTitles = []struct {
	category dictionary.Category
	title    string
}{
	{dictionary.CategoryHTML, "HTML Attributes"},
	{dictionary.CategoryEvent, "Event Handlers"},
	{dictionary.CategorySVG, "SVG Attributes"},
	{dictionary.CategoryARIA, "ARIA Attributes"},
}

// generateDictionaryDocs writes the attribute dictionary reference page.
func generateDictionaryDocs(outDir string) error {
	log.Printf("Generating dictionary docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "attributes.md"), renderDictionaryPage(dictionary.Default()), 0600); err != nil {
		return fmt.Errorf("failed to generate attributes.md: %w", err)
	}
	log.Printf("  Generated attributes.md")
	return nil
}

func renderDictionaryPage(d *dictionary.Dictionary) []byte {
	w := NewMarkdownWriter()

	w.Frontmatter("Attribute Dictionary", "Attribute names propcheck recognizes")
	w.GeneratedMarker()

	w.Header(1, "Attribute Dictionary")
	w.Paragraph(fmt.Sprintf("Dictionary version %s with %d entries. Names are matched after lowercasing and removing hyphens and colons. The canonical spelling and its aliases are accepted as written; on an element with the `is` attribute, its custom-element spellings such as `class` and `for` are accepted too. `data-*` attributes are always accepted.",
		InlineCode(d.Version()), d.Len()))

	byCategory := make(map[dictionary.Category][]dictionary.Entry)
	for _, e := range d.Entries() {
		byCategory[e.Category()] = append(byCategory[e.Category()], e)
	}

	for _, c := range categoryTitles {
		entries := byCategory[c.category]
		if len(entries) == 0 {
			continue
		}
		w.Header(2, fmt.Sprintf("%s (%d)", c.title, len(entries)))

		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{
				InlineCode(e.Name()),
				codeList(e.Aliases()),
				codeList(e.DOMNames()),
				tagList(e),
			})
		}
		w.Table([]string{"Name", "Aliases", "DOM names", "Allowed on"}, rows)
	}

	return w.Bytes()
}

func codeList(names []string) string {
	if len(names) == 0 {
		return ""
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = InlineCode(n)
	}
	return strings.Join(out, ", ")
}

func tagList(e dictionary.Entry) string {
	if !e.Restricted() {
		return "any"
	}
	tags := e.Tags()
	for i, t := range tags {
		tags[i] = InlineCode("<" + t + ">")
	}
	return strings.Join(tags, ", ")
}

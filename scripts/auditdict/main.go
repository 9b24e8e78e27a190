// Package main compares the embedded attribute dictionary with the attribute
// index of the HTML standard and reports the attributes the dictionary does
// not recognize.
//
// Usage:
//
//	go run ./scripts/auditdict
//	go run ./scripts/auditdict -file=indices.html -out=audit.md
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"github.com/leapstack-labs/propcheck/pkg/dictionary"
)

const indicesURL = "https://html.spec.whatwg.org/multipage/indices.html"

// indexTables are the ids of the attribute tables on the indices page.
var indexTables = map[string]bool{
	"attributes-1":      true,
	"ix-event-handlers": true,
}

var (
	urlFlag  = flag.String("url", indicesURL, "attribute index page to fetch")
	fileFlag = flag.String("file", "", "read the index page from a local file instead of fetching it")
	outFlag  = flag.String("out", "", "write the report to a file instead of stdout")
)

// IndexedAttribute is one row of the attribute index.
type IndexedAttribute struct {
	Name        string
	Elements    string
	Description string // markdown
}

func main() {
	flag.Parse()

	var body []byte
	var err error
	if *fileFlag != "" {
		body, err = os.ReadFile(*fileFlag)
	} else {
		log.Printf("Fetching %s", *urlFlag)
		body, err = fetchURL(*urlFlag)
	}
	if err != nil {
		log.Fatalf("failed to load index page: %v", err)
	}

	attrs, err := parseIndexPage(body)
	if err != nil {
		log.Fatalf("failed to parse index page: %v", err)
	}
	log.Printf("Extracted %d attributes", len(attrs))

	missing := audit(dictionary.Default(), attrs)
	log.Printf("%d attributes not in dictionary %s", len(missing), dictionary.Default().Version())

	report := renderReport(dictionary.Default().Version(), missing)
	if *outFlag == "" {
		_, _ = os.Stdout.Write(report)
		return
	}
	if err := os.WriteFile(*outFlag, report, 0600); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
}

func fetchURL(url string) ([]byte, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "propcheck-auditdict/1.0 (+https://github.com/leapstack-labs/propcheck)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// parseIndexPage extracts the rows of the attribute index tables. An attribute
// listed for several elements appears once, with the element lists joined.
func parseIndexPage(body []byte) ([]IndexedAttribute, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*IndexedAttribute)
	var walk func(*html.Node, bool)
	walk = func(n *html.Node, inTable bool) {
		if n.Type == html.ElementNode {
			if n.Data == "table" {
				inTable = indexTables[attr(n, "id")]
			}
			if inTable && n.Data == "tr" {
				if a, ok := parseRow(n); ok {
					if prev, seen := byName[a.Name]; seen {
						prev.Elements += "; " + a.Elements
					} else {
						byName[a.Name] = &a
					}
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inTable)
		}
	}
	walk(doc, false)

	attrs := make([]IndexedAttribute, 0, len(byName))
	for _, a := range byName {
		attrs = append(attrs, *a)
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
	return attrs, nil
}

// parseRow reads a <tr> whose <th> names the attribute and whose first two
// <td> cells hold the elements and the description.
func parseRow(tr *html.Node) (IndexedAttribute, bool) {
	var th *html.Node
	var tds []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "th":
			th = c
		case "td":
			tds = append(tds, c)
		}
	}
	if th == nil || len(tds) < 2 {
		return IndexedAttribute{}, false
	}

	name := strings.TrimSpace(extractText(th))
	if name == "" || strings.ContainsAny(name, " \n") {
		return IndexedAttribute{}, false
	}

	desc, err := htmltomarkdown.ConvertString(renderChildren(tds[1]))
	if err != nil {
		desc = extractText(tds[1])
	}
	return IndexedAttribute{
		Name:        name,
		Elements:    strings.Join(strings.Fields(extractText(tds[0])), " "),
		Description: strings.Join(strings.Fields(desc), " "),
	}, true
}

// audit returns the indexed attributes the dictionary has no entry for.
// data-* is accepted structurally and never reported.
func audit(d *dictionary.Dictionary, attrs []IndexedAttribute) []IndexedAttribute {
	var missing []IndexedAttribute
	for _, a := range attrs {
		if strings.HasPrefix(a.Name, "data-") {
			continue
		}
		if _, ok := d.LookupName(a.Name); !ok {
			missing = append(missing, a)
		}
	}
	return missing
}

func renderReport(version string, missing []IndexedAttribute) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Dictionary audit\n\nDictionary `%s` is missing %d attributes from the HTML index.\n\n", version, len(missing))
	if len(missing) == 0 {
		return buf.Bytes()
	}
	buf.WriteString("| Attribute | Elements | Description |\n| --- | --- | --- |\n")
	for _, a := range missing {
		fmt.Fprintf(&buf, "| `%s` | %s | %s |\n", a.Name, escapeCell(a.Elements), escapeCell(a.Description))
	}
	return buf.Bytes()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func renderChildren(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

func extractText(n *html.Node) string {
	var buf bytes.Buffer
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

package lint

import (
	"fmt"
	"strings"
)

// DefaultDocsBaseURL is the hosted documentation site.
const DefaultDocsBaseURL = "https://propcheck.leapstack.dev/docs/rules"

// DocsBaseURL prefixes every rule's documentation link. The CLI sets it from
// docs.base_url so links can point at a self-hosted copy.
var DocsBaseURL = DefaultDocsBaseURL

// BuildDocURL returns the documentation link for a rule. The ID is lowercased.
func BuildDocURL(ruleID string) string {
	return fmt.Sprintf("%s/%s", DocsBaseURL, strings.ToLower(ruleID))
}

// SetDocsBaseURL overrides the default documentation base URL.
func SetDocsBaseURL(url string) {
	DocsBaseURL = strings.TrimSuffix(url, "/")
}

// ResetDocsBaseURL resets to the default documentation URL.
func ResetDocsBaseURL() {
	DocsBaseURL = DefaultDocsBaseURL
}

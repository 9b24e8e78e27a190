package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/propcheck/pkg/dictionary"
)

const indexFixture = `<!DOCTYPE html>
<html><body>
<table id="attributes-1">
 <caption>List of attributes</caption>
 <thead><tr><th>Attribute<th>Element(s)<th>Description<th>Value</thead>
 <tbody>
  <tr><th><code>accept-charset</code></th><td><code>form</code></td><td>Character encodings to use for <a href="#form-submission">form submission</a></td><td>Ordered set of tokens</td></tr>
  <tr><th><code>class</code></th><td>HTML elements</td><td>Classes to which the element belongs</td><td>Set of tokens</td></tr>
  <tr><th><code>frobnicate</code></th><td><code>div</code></td><td>Not a real attribute</td><td>Text</td></tr>
  <tr><th><code>frobnicate</code></th><td><code>span</code></td><td>Not a real attribute</td><td>Text</td></tr>
  <tr><th><code>data-*</code></th><td>HTML elements</td><td>Custom data</td><td>Text</td></tr>
 </tbody>
</table>
<table id="ix-event-handlers">
 <tbody>
  <tr><th><code>onclick</code></th><td>HTML elements</td><td><code>click</code> event handler</td><td>Event handler content attribute</td></tr>
 </tbody>
</table>
<table id="unrelated">
 <tbody><tr><th><code>ignored</code></th><td>x</td><td>y</td></tr></tbody>
</table>
</body></html>`

func TestParseIndexPage(t *testing.T) {
	attrs, err := parseIndexPage([]byte(indexFixture))
	require.NoError(t, err)

	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Name
	}
	assert.Equal(t, []string{"accept-charset", "class", "data-*", "frobnicate", "onclick"}, names)

	assert.Equal(t, "div; span", attrs[3].Elements)
	assert.Contains(t, attrs[0].Description, "[form submission](#form-submission)")
}

func TestAudit(t *testing.T) {
	attrs, err := parseIndexPage([]byte(indexFixture))
	require.NoError(t, err)

	missing := audit(dictionary.Default(), attrs)
	require.Len(t, missing, 1)
	assert.Equal(t, "frobnicate", missing[0].Name)

	report := string(renderReport("test", missing))
	assert.Contains(t, report, "missing 1 attributes")
	assert.Contains(t, report, "| `frobnicate` | div; span | Not a real attribute |")
}

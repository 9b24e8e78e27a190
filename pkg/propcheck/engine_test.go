package propcheck_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/propcheck/pkg/dictionary"
	"github.com/leapstack-labs/propcheck/pkg/markup"
	"github.com/leapstack-labs/propcheck/pkg/propcheck"
)

func evaluate(t *testing.T, e *propcheck.Engine, tag, name string, extra ...markup.Attribute) propcheck.Verdict {
	t.Helper()
	attrs := append([]markup.Attribute{markup.Named(name)}, extra...)
	ctx, err := markup.Classify(markup.NewElement(tag, attrs...))
	require.NoError(t, err)
	v, err := e.Evaluate(ctx, markup.Named(name))
	require.NoError(t, err)
	return v
}

func TestEngine_Scenarios(t *testing.T) {
	e := propcheck.New(nil, propcheck.Config{})

	tests := []struct {
		name  string
		tag   string
		attr  string
		extra []markup.Attribute
		want  propcheck.Verdict
	}{
		{
			name: "class on div is renamed",
			tag:  "div",
			attr: "class",
			want: propcheck.UnknownWithSuggestion("className"),
		},
		{
			name: "crossOrigin on div is invalid on tag",
			tag:  "div",
			attr: "crossOrigin",
			want: propcheck.InvalidOnTag("crossOrigin", []string{"script", "img", "video", "audio", "link", "image"}),
		},
		{
			name: "crossOrigin on img is ok",
			tag:  "img",
			attr: "crossOrigin",
			want: propcheck.OK(),
		},
		{
			name: "crossorigin on div prefers rename",
			tag:  "div",
			attr: "crossorigin",
			want: propcheck.UnknownWithSuggestion("crossOrigin"),
		},
		{
			name: "unknown aria attribute",
			tag:  "div",
			attr: "aria-fake",
			want: propcheck.Unknown(),
		},
		{
			name: "known aria attribute",
			tag:  "button",
			attr: "aria-pressed",
			want: propcheck.OK(),
		},
		{
			name:  "class with type marker",
			tag:   "button",
			attr:  "class",
			extra: []markup.Attribute{markup.Named("is")},
			want:  propcheck.OK(),
		},
		{
			name:  "for with type marker",
			tag:   "label",
			attr:  "for",
			extra: []markup.Attribute{markup.Named("is")},
			want:  propcheck.OK(),
		},
		{
			name: "for without type marker",
			tag:  "label",
			attr: "for",
			want: propcheck.UnknownWithSuggestion("htmlFor"),
		},
		{
			name: "prototype member name",
			tag:  "div",
			attr: "hasOwnProperty",
			want: propcheck.Unknown(),
		},
		{
			name: "near miss casing",
			tag:  "div",
			attr: "onMousedown",
			want: propcheck.UnknownWithSuggestion("onMouseDown"),
		},
		{
			name: "html separator style",
			tag:  "form",
			attr: "accept-charset",
			want: propcheck.UnknownWithSuggestion("acceptCharset"),
		},
		{
			name: "namespaced svg name",
			tag:  "use",
			attr: "xlink:href",
			want: propcheck.UnknownWithSuggestion("xlinkHref"),
		},
		{
			name: "svg presentation attribute",
			tag:  "path",
			attr: "strokeLinejoin",
			want: propcheck.OK(),
		},
		{
			name: "alias accepted",
			tag:  "meta",
			attr: "charset",
			want: propcheck.OK(),
		},
		{
			name: "canonical of alias accepted",
			tag:  "meta",
			attr: "charSet",
			want: propcheck.OK(),
		},
		{
			name: "data attribute",
			tag:  "div",
			attr: "data-testid",
			want: propcheck.OK(),
		},
		{
			name: "aria prefix never matches non-aria entries",
			tag:  "div",
			attr: "aria-",
			want: propcheck.Unknown(),
		},
		{
			name: "camel aria suggests the hyphenated name",
			tag:  "div",
			attr: "ariaLabel",
			want: propcheck.UnknownWithSuggestion("aria-label"),
		},
		{
			name: "made up name",
			tag:  "div",
			attr: "notARealProp",
			want: propcheck.Unknown(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluate(t, e, tt.tag, tt.attr, tt.extra...)
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestEngine_InvalidOnTagListsTags(t *testing.T) {
	e := propcheck.New(nil, propcheck.Config{})
	v := evaluate(t, e, "div", "crossOrigin")
	require.Equal(t, propcheck.KindInvalidOnTag, v.Kind)
	assert.NotEmpty(t, v.AllowedTags)
	assert.NotContains(t, v.AllowedTags, "any")
	assert.Equal(t, "audio, image, img, link, script, video", v.AllowedTagList())
}

func TestEngine_IgnoreShortCircuits(t *testing.T) {
	e := propcheck.New(nil, propcheck.Config{Ignore: []string{"class", "crossOrigin", "css", "aria-fake"}})

	for _, name := range []string{"class", "crossOrigin", "css", "aria-fake"} {
		assert.True(t, evaluate(t, e, "div", name).IsOK(), "%q should be ignored", name)
	}
	// Ignore matches literal names only.
	assert.Equal(t, propcheck.KindUnknownWithSuggestion, evaluate(t, e, "div", "Class").Kind)
}

func TestEngine_ComponentsAreNeverValidated(t *testing.T) {
	e := propcheck.New(nil, propcheck.Config{})
	names := []string{"class", "crossOrigin", "aria-fake", "notARealProp", "constructor", "__proto__", "toString"}

	for _, tag := range []string{"Foo", "Foo.Bar", "foo.bar", "my-widget", "svg:rect", "fbt"} {
		el := markup.NewElement(tag)
		for _, n := range names {
			el.Attributes = append(el.Attributes, markup.Named(n))
		}
		ctx, results, err := e.Check(el)
		require.NoError(t, err)
		assert.True(t, ctx.IsComponent, "%q should be a component", tag)
		assert.Empty(t, results, "%q produced diagnostics", tag)
	}

	marked := markup.Element{Component: true, Attributes: []markup.Attribute{markup.Named("class")}}
	_, results, err := e.Check(marked)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEngine_DataAttributesIgnoreDictionary(t *testing.T) {
	// An empty dictionary still accepts data attributes.
	empty, err := dictionary.Build(dictionary.Tables{})
	require.NoError(t, err)
	e := propcheck.New(empty, propcheck.Config{})

	for _, name := range []string{"data-foo", "data-class", "data-crossorigin", "data-aria-fake"} {
		assert.True(t, evaluate(t, e, "div", name).IsOK(), name)
	}
	assert.Equal(t, propcheck.KindUnknown, evaluate(t, e, "div", "className").Kind)
}

func TestEngine_MalformedDataNamesAreNotRenamed(t *testing.T) {
	e := propcheck.New(nil, propcheck.Config{})
	assert.True(t, evaluate(t, e, "div", "data").IsOK(), "the data attribute is still known")
	for _, name := range []string{"data-", "data-xml", "data-xml-class", "data-a:b"} {
		assert.Equal(t, propcheck.Unknown(), evaluate(t, e, "div", name), name)
	}
}

func TestEngine_ARIAClosedSet(t *testing.T) {
	e := propcheck.New(nil, propcheck.Config{})
	for _, entry := range dictionary.Default().Entries() {
		if entry.Category() != dictionary.CategoryARIA {
			continue
		}
		assert.True(t, evaluate(t, e, "div", entry.Name()).IsOK(), entry.Name())
	}
	for _, name := range []string{"aria-fake", "aria-labeled", "aria-role", "aria-foo-bar"} {
		assert.Equal(t, propcheck.Unknown(), evaluate(t, e, "div", name), name)
	}
}

func TestEngine_FixIsIdempotent(t *testing.T) {
	e := propcheck.New(nil, propcheck.Config{})
	tags := []string{"div", "img", "script", "video", "svg", "input", "link"}

	for _, entry := range dictionary.Default().Entries() {
		for _, spelling := range entry.DOMNames() {
			for _, tag := range tags {
				v := evaluate(t, e, tag, spelling)
				if v.Kind != propcheck.KindUnknownWithSuggestion {
					continue
				}
				fixed := evaluate(t, e, tag, v.Canonical)
				assert.Contains(t, []propcheck.Kind{propcheck.KindOK, propcheck.KindInvalidOnTag}, fixed.Kind,
					"%s on <%s> -> %s", spelling, tag, fixed)
			}
		}
	}
}

func TestEngine_RenameBeatsTagRestriction(t *testing.T) {
	e := propcheck.New(nil, propcheck.Config{})
	for _, entry := range dictionary.Default().Entries() {
		if !entry.Restricted() {
			continue
		}
		variants := []string{upper(entry.Name()), lowerFirstHump(entry.Name())}
		for _, raw := range variants {
			if raw == entry.Name() || entry.Accepts(raw) {
				continue
			}
			v := evaluate(t, e, "div", raw)
			assert.Equal(t, propcheck.UnknownWithSuggestion(entry.Name()), v, raw)
		}
	}
}

func TestEngine_CheckReportsEveryProblem(t *testing.T) {
	e := propcheck.New(nil, propcheck.Config{})
	el := markup.NewElement("div",
		markup.Named("class"),
		markup.Spread(),
		markup.Named("id"),
		markup.Named("crossOrigin"),
		markup.Named("aria-fake"),
	)

	_, results, err := e.Check(el)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, propcheck.KindUnknownWithSuggestion, results[0].Verdict.Kind)
	assert.Equal(t, 3, results[1].Index)
	assert.Equal(t, propcheck.KindInvalidOnTag, results[1].Verdict.Kind)
	assert.Equal(t, 4, results[2].Index)
	assert.Equal(t, propcheck.KindUnknown, results[2].Verdict.Kind)
}

func TestEngine_FailsFastOnMalformedInput(t *testing.T) {
	e := propcheck.New(nil, propcheck.Config{})
	ctx := markup.Context{TagName: "div"}

	_, err := e.Evaluate(ctx, markup.Spread())
	assert.ErrorIs(t, err, propcheck.ErrSpreadAttribute)

	_, err = e.Evaluate(ctx, markup.Attribute{})
	assert.ErrorIs(t, err, propcheck.ErrMissingName)

	_, _, err = e.Check(markup.NewElement("div", markup.Named("id"), markup.Named("")))
	assert.ErrorIs(t, err, propcheck.ErrMissingName)

	_, _, err = e.Check(markup.NewElement(""))
	assert.ErrorIs(t, err, markup.ErrMissingTag)
}

func TestEngine_ConcurrentUse(t *testing.T) {
	e := propcheck.New(nil, propcheck.Config{Ignore: []string{"css"}})
	el := markup.NewElement("div", markup.Named("class"), markup.Named("css"), markup.Named("crossOrigin"))

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, results, err := e.Check(el)
				if err != nil {
					errs <- err
					return
				}
				if len(results) != 2 {
					errs <- fmt.Errorf("got %d results", len(results))
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func lowerFirstHump(s string) string {
	b := []byte(s)
	for i := 1; i < len(b); i++ {
		if 'A' <= b[i] && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
			break
		}
	}
	return string(b)
}

package props

import (
	"slices"
	"strings"
	"sync"

	"github.com/leapstack-labs/propcheck/pkg/core"
	"github.com/leapstack-labs/propcheck/pkg/lint"
	"github.com/leapstack-labs/propcheck/pkg/markup"
	"github.com/leapstack-labs/propcheck/pkg/propcheck"
)

func init() {
	lint.Register(NoUnknownProperty)
}

const ruleID = "PR01"

// OptionIgnore lists attribute names that are always accepted.
const OptionIgnore = "ignore"

// NoUnknownProperty reports unknown, miscased, and misplaced attributes on host elements.
var NoUnknownProperty = lint.RuleDef{
	ID:          ruleID,
	Name:        "props.no-unknown-property",
	Group:       "props",
	Description: "Attribute names on host elements must be known, canonically spelled, and allowed on the element.",
	Severity:    core.SeverityError,
	Check:       checkNoUnknownProperty,
	ConfigKeys:  []string{OptionIgnore},
	Rationale: `Host elements silently drop attributes they do not recognize, and the DOM
spelling of many attributes differs from the property name the renderer expects
(class vs className, for vs htmlFor). Some attributes are only meaningful on a
few elements, such as crossOrigin on media and script elements.`,
	BadExample: `<div class="box" crossOrigin="anonymous" aria-fake="x" />`,
	GoodExample: `<div className="box" data-origin="anonymous" />
<img src={src} crossOrigin="anonymous" />`,
	Fix: `Renames are auto-fixable. For attributes that are not allowed on the tag,
move the attribute to a supported element or remove it. Use the ignore option
for attributes a custom renderer understands.`,
}

// engines caches one engine per distinct ignore list.
var engines sync.Map

func engineFor(ignore []string) *propcheck.Engine {
	sorted := slices.Clone(ignore)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	key := strings.Join(sorted, "\x00")
	if e, ok := engines.Load(key); ok {
		return e.(*propcheck.Engine)
	}
	e, _ := engines.LoadOrStore(key, propcheck.New(nil, propcheck.Config{Ignore: sorted}))
	return e.(*propcheck.Engine)
}

func checkNoUnknownProperty(el markup.Element, ctx markup.Context, opts map[string]any) ([]lint.Diagnostic, error) {
	engine := engineFor(lint.GetStringSliceOption(opts, OptionIgnore, nil))

	results, err := engine.CheckClassified(ctx, el)
	if err != nil {
		return nil, err
	}

	// Severity overrides are applied by the analyzer.
	diagnostics := make([]lint.Diagnostic, 0, len(results))
	for _, res := range results {
		diagnostics = append(diagnostics, Emit(ruleID, core.SeverityError, ctx.TagName, res))
	}
	return diagnostics, nil
}

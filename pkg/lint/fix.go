package lint

import (
	"bytes"
	"fmt"
	"sort"
)

// ApplyFixes applies the first fix of every auto-fixable diagnostic to src.
//
// Edits are addressed by byte offset. Identical edits are applied once. Edits
// without offsets, edits whose OldText no longer matches src, and edits that
// overlap an edit already accepted are skipped. Overlapping edits apply on a
// later run over a freshly extracted document. It returns the rewritten source and the number of edits
// applied.
func ApplyFixes(src []byte, diags []Diagnostic) ([]byte, int, error) {
	var edits []TextEdit
	for _, e := range fixEdits(diags) {
		if e.EndPos.Offset > len(src) {
			if e.OldText != "" {
				continue
			}
			return nil, 0, fmt.Errorf("edit %d-%d is outside the %d byte source", e.Pos.Offset, e.EndPos.Offset, len(src))
		}
		if e.OldText != "" && string(src[e.Pos.Offset:e.EndPos.Offset]) != e.OldText {
			continue
		}
		edits = append(edits, e)
	}
	if len(edits) == 0 {
		return src, 0, nil
	}

	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Pos.Offset < edits[j].Pos.Offset
	})

	var out bytes.Buffer
	out.Grow(len(src))
	applied := 0
	cursor := 0
	for _, e := range edits {
		if e.Pos.Offset < cursor {
			continue
		}
		out.Write(src[cursor:e.Pos.Offset])
		out.WriteString(e.NewText)
		cursor = e.EndPos.Offset
		applied++
	}
	out.Write(src[cursor:])
	return out.Bytes(), applied, nil
}

// CountEdits returns the number of distinct edits ApplyFixes would try for
// diags. A run that applies this many edits fixed every diagnostic.
func CountEdits(diags []Diagnostic) int {
	return len(fixEdits(diags))
}

// fixEdits collects the addressable edits of diags with duplicates removed.
func fixEdits(diags []Diagnostic) []TextEdit {
	var edits []TextEdit
	seen := make(map[TextEdit]struct{})
	for _, d := range diags {
		if !d.AutoFixable || len(d.Fixes) == 0 {
			continue
		}
		for _, e := range d.Fixes[0].TextEdits {
			if !e.Span().HasOffsets() {
				continue
			}
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			edits = append(edits, e)
		}
	}
	return edits
}

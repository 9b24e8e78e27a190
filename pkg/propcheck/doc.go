// Package propcheck decides, for each attribute on a host element, whether the
// attribute is recognized, whether it must be renamed to its canonical
// spelling, and whether the canonical attribute is allowed on the element.
//
// The decision for one attribute follows a fixed priority:
//
//  1. names in the ignore list are accepted
//  2. data attributes (`data-*`) are accepted without a dictionary lookup
//  3. the name is normalized and looked up
//  4. an unknown key is reported without suggestion; a known key whose
//     spelling differs from the canonical one is reported with the canonical
//     name, and the tag restriction is not evaluated
//  5. canonical names (or aliases) are checked against the entry's tag list
//
// The Engine holds no mutable state and may be shared across goroutines.
package propcheck

// Package props provides lint rules for attribute names on host elements.
//
// Rules in this package:
//   - PR01: Attribute names must be known, canonically spelled, and allowed on the tag
package props

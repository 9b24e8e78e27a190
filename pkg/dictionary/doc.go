// Package dictionary is the static table of recognized attribute names.
//
// Every entry has a canonical spelling and may carry a tag restriction, a set
// of equally acceptable aliases, historical DOM spellings that must be
// renamed, and spellings accepted only on customized built-in elements.
// Entries are addressed by a normalized key (see Normalize) so that case and
// separator variants of a name find the entry whose spelling they miss.
//
// The built-in table is decoded once from an embedded, versioned YAML document
// when the package initializes. A Dictionary never changes after it is built
// and is safe for concurrent use.
package dictionary

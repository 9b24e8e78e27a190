// Package token defines source positions shared by the host input model and
// lint diagnostics.
//
// Positions are produced by the host parser; the checker never computes them.
package token

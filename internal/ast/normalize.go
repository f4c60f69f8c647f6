package ast

import "golang.org/x/text/unicode/norm"

// NormalizeName canonicalizes an identifier to Unicode NFC so that two
// source occurrences of the same name that differ only in composed vs.
// decomposed form (e.g. precomposed "é" vs. "e" + combining acute) resolve
// to the same declaration. Lexing/parsing live outside this package, so
// callers normalize at the points names actually get compared: a
// VariableDecl or closure parameter's binding name, and an
// UnresolvedDeclRef's target name.
func NormalizeName(s string) string {
	return norm.NFC.String(s)
}

// Package analysis turns journal text into the emotion payload stored on
// entries.
//
// Two analyzers implement the same interface: a Gemini-backed analyzer and an
// offline keyword analyzer that needs no API key. The configured provider
// selects one at startup; callers never branch on availability at call sites.
package analysis

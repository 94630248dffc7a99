// Package gemini wraps the Gemini generateContent REST API for journal
// analysis, weekly summaries, and photo analysis.
//
// All calls request JSON output and parse the model's response into typed
// payloads. The client carries no retry policy; callers decide whether a
// failed analysis blocks the write (it never does — entries persist with an
// empty analysis payload when the API is unavailable).
package gemini

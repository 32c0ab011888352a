// Package docassist provides a documentation assistant built around a
// site crawler. It crawls a documentation site breadth-first with bounded
// depth and concurrency, merges the pages into a JSON store, indexes them
// into SQLite and answers natural language questions over the index.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/, gemini/).
package docassist

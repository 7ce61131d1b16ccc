// Package composer implements the engine of a rich-text message composer.
//
// It owns an in-memory document tree (see package dom) that mirrors a
// constrained subset of HTML, interprets user-level editing commands
// (typing, deletion, formatting, links, lists, quoting, code blocks, undo,
// redo, selection) and, after each command, returns a compact [Update]
// describing the new visible text and the enabled/disabled state of
// toolbar actions.
//
// # Concurrency
//
// A [Model] is not safe for concurrent use. Every public method runs to
// completion before the next may be issued, and must be called from a
// single goroutine at a time, or protected by an external mutex.
// Independent Model instances may be used concurrently.
package composer

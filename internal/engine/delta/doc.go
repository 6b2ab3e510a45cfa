// Package delta implements an operational-transform-style rich text
// encoding: a finite sequence of retain/insert/delete operations, each
// optionally carrying a set of formatting attributes.
//
// A Delta either describes a document's content (a sequence of insert
// ops only) or an edit against one (a mix of retain/insert/delete).
// Deltas compose left-to-right: composing edit B onto content A
// produces the content that results from applying B to A.
package delta

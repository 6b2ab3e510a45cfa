// Package docid mints stable node identifiers and provides the
// syntactic test for whether an id names a block.
package docid

import "github.com/google/uuid"

// blockPrefix marks an id as addressing a block element rather than a
// bare document node (e.g. an embed payload id). IsBlockID is a pure
// string test, deliberately independent of the block registry, so it
// stays cheap to call from hot paths like cursor lookups.
const blockPrefix = "blk_"

// NewBlockID mints a fresh block element id.
func NewBlockID() string {
	return blockPrefix + uuid.NewString()
}

// NewID mints a fresh id for a non-block node.
func NewID() string {
	return uuid.NewString()
}

// IsBlockID reports whether id was minted by NewBlockID.
func IsBlockID(id string) bool {
	return len(id) >= len(blockPrefix) && id[:len(blockPrefix)] == blockPrefix
}

// Package block implements the data model for the star ledger. A block is
// an immutable record that carries an opaque, hex-encoded payload and is
// hash-linked to its predecessor once it has been sealed.
package block

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/starledger/starledger/foundation/registry/signature"
)

// GenesisData is the fixed marker payload carried by the block at height 0.
const GenesisData = "Genesis Block"

// ErrAlreadySealed is returned when Seal is called on a sealed block.
var ErrAlreadySealed = errors.New("block is already sealed")

// =============================================================================

// Header represents the link and ordering information for each block.
type Header struct {
	Height        uint64 `json:"height"`          // Zero based position of the block in the chain.
	TimeStamp     uint64 `json:"timestamp"`       // Time the block was sealed, in unix seconds.
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the chain.
}

// Block represents a sealed unit of the ledger. The Body is an opaque
// payload the ledger never interprets except to decode it losslessly.
type Block struct {
	Hash   string `json:"hash"`
	Header Header `json:"header"`
	Body   string `json:"body"`
}

// New constructs a block carrying the specified payload. The block is not
// part of the chain until it has been sealed.
func New(payload any) (Block, error) {
	body, err := encodeBody(payload)
	if err != nil {
		return Block{}, fmt.Errorf("encode body: %w", err)
	}

	return Block{Body: body}, nil
}

// Seal finalizes the block by setting the link fields and computing the
// hash over the final state. A block can only be sealed once.
func (b *Block) Seal(prevBlockHash string, height uint64, timeStamp uint64) error {
	if b.Hash != "" {
		return ErrAlreadySealed
	}

	b.Header = Header{
		Height:        height,
		TimeStamp:     timeStamp,
		PrevBlockHash: prevBlockHash,
	}
	b.Hash = b.Recompute()

	return nil
}

// Recompute derives the hash for the block from its current header and body
// state, excluding the stored hash itself. The fields are hashed through a
// fixed struct so the serialization order is canonical and the result is
// reproducible for identical field values.
func (b Block) Recompute() string {
	data := struct {
		Header Header `json:"header"`
		Body   string `json:"body"`
	}{
		Header: b.Header,
		Body:   b.Body,
	}

	return signature.Hash(data)
}

// DecodeBody recovers the logical star record from the opaque encoded body.
func (b Block) DecodeBody() (StarRecord, error) {
	data, err := hex.DecodeString(b.Body)
	if err != nil {
		return StarRecord{}, fmt.Errorf("decode body hex: %w", err)
	}

	var record StarRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return StarRecord{}, fmt.Errorf("decode body json: %w", err)
	}

	return record, nil
}

// =============================================================================

// encodeBody produces the reversible hex encoding of the payload that is
// stored inside a block.
func encodeBody(payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(data), nil
}

// Package database maintains the in-memory chain of sealed blocks and
// implements the add-block protocol, whole-chain validation, and the
// lookups the ledger exposes.
package database

import (
	"fmt"
	"sync"
	"time"

	"github.com/starledger/starledger/foundation/registry/block"
	"github.com/starledger/starledger/foundation/registry/signature"
)

// EventHandler defines a function that is called when events occur in the
// processing of blocks.
type EventHandler func(v string, args ...any)

// Database manages the ordered sequence of sealed blocks. The slice is
// indexed by height, so a block's position doubles as its primary key.
type Database struct {
	mu sync.RWMutex

	blocks       []block.Block
	heightByHash map[string]uint64

	evHandler EventHandler
}

// New constructs the database and seals the genesis block before any other
// operation is accepted.
func New(evHandler EventHandler) (*Database, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	db := Database{
		heightByHash: make(map[string]uint64),
		evHandler:    ev,
	}

	genesis, err := block.New(block.GenesisRecord{Data: block.GenesisData})
	if err != nil {
		return nil, fmt.Errorf("construct genesis block: %w", err)
	}

	if err := genesis.Seal(signature.ZeroHash, 0, uint64(time.Now().UTC().Unix())); err != nil {
		return nil, fmt.Errorf("seal genesis block: %w", err)
	}

	db.blocks = append(db.blocks, genesis)
	db.heightByHash[genesis.Hash] = 0

	ev("database: new: genesis block sealed: hash[%s]", genesis.Hash)

	return &db, nil
}

// Height returns the height of the last sealed block, or -1 if the chain
// holds no blocks.
func (db *Database) Height() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.blocks) - 1
}

// LatestBlock returns the current tail of the chain.
func (db *Database) LatestBlock() block.Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.blocks[len(db.blocks)-1]
}

// AppendBlock constructs a block for the specified payload, seals it
// against the current tail, and appends it to the chain. Height
// assignment, sealing, the append, and the follow-up whole-chain
// validation run as one critical section. If validation fails, the append
// is undone and an InvalidChainError is returned.
func (db *Database) AppendBlock(payload any) (block.Block, error) {
	blk, err := block.New(payload)
	if err != nil {
		return block.Block{}, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	tail := db.blocks[len(db.blocks)-1]
	height := uint64(len(db.blocks))

	if err := blk.Seal(tail.Hash, height, uint64(time.Now().UTC().Unix())); err != nil {
		return block.Block{}, err
	}

	db.blocks = append(db.blocks, blk)
	db.heightByHash[blk.Hash] = height

	// The append is not durable until the whole chain re-validates.
	if errs := db.validateChain(); len(errs) > 0 {
		db.blocks = db.blocks[:len(db.blocks)-1]
		delete(db.heightByHash, blk.Hash)

		db.evHandler("database: appendblock: rejected: blk[%d]: %v", height, errs)
		return block.Block{}, &InvalidChainError{Errs: errs}
	}

	db.evHandler("database: appendblock: sealed: blk[%d]: hash[%s]", height, blk.Hash)

	return blk, nil
}

// Validate re-derives and checks every block's hash and link. The returned
// slice holds one diagnostic entry per violation across the whole chain;
// an empty slice means the chain is valid. Validation never mutates the
// chain.
func (db *Database) Validate() []error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.validateChain()
}

// GetBlockByHash returns the block sealed with the specified hash. The
// second return value reports whether the block exists.
func (db *Database) GetBlockByHash(hash string) (block.Block, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	height, exists := db.heightByHash[hash]
	if !exists {
		return block.Block{}, false
	}

	return db.blocks[height], true
}

// GetBlockByHeight returns the block at the specified height. The second
// return value reports whether the block exists.
func (db *Database) GetBlockByHeight(height uint64) (block.Block, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if height >= uint64(len(db.blocks)) {
		return block.Block{}, false
	}

	return db.blocks[height], true
}

// StarsByOwner walks the chain in height order, decodes each body, and
// collects the stars whose decoded owner matches the specified account.
// Bodies without an owner, like the genesis block, are skipped. A body
// that fails to decode is reported through the event handler and does not
// abort the scan.
func (db *Database) StarsByOwner(owner block.AccountID) []block.Star {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var stars []block.Star
	for _, blk := range db.blocks {
		record, err := blk.DecodeBody()
		if err != nil {
			db.evHandler("database: starsbyowner: blk[%d]: ERROR: %s", blk.Header.Height, err)
			continue
		}

		if record.Owner == "" || record.Owner != owner {
			continue
		}

		stars = append(stars, record.Star)
	}

	return stars
}

// =============================================================================

// validateChain performs the full validation pass in height order. It must
// be called with at least the read lock held. The pass never short
// circuits so independent corruptions are all diagnosed in one run.
func (db *Database) validateChain() []error {
	var errs []error

	for height, blk := range db.blocks {
		if recomputed := blk.Recompute(); blk.Hash != recomputed {
			errs = append(errs, &TamperedBlockError{
				Height:     uint64(height),
				StoredHash: blk.Hash,
			})
		}

		if height == 0 {
			continue
		}

		if prevHash := db.blocks[height-1].Hash; blk.Header.PrevBlockHash != prevHash {
			errs = append(errs, &BrokenLinkError{
				Height:       uint64(height),
				ExpectedPrev: prevHash,
				ActualPrev:   blk.Header.PrevBlockHash,
			})
		}
	}

	return errs
}

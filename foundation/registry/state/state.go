// Package state is the core API for the star ledger. It implements the
// ownership verification protocol over the chain database and exposes the
// operations the service layer builds on.
package state

import (
	"github.com/starledger/starledger/foundation/registry/block"
	"github.com/starledger/starledger/foundation/registry/database"
)

// EventHandler defines a function that is called when events occur in the
// processing of the ledger.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to start the ledger.
type Config struct {
	EvHandler EventHandler
}

// State manages the star ledger.
type State struct {
	evHandler EventHandler
	db        *database.Database
}

// New constructs a new ledger state for data management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	db, err := database.New(database.EventHandler(ev))
	if err != nil {
		return nil, err
	}

	state := State{
		evHandler: ev,
		db:        db,
	}

	return &state, nil
}

// Validate runs the whole-chain validation pass and returns the set of
// diagnostic errors found. An empty set means the chain is valid.
func (s *State) Validate() []error {
	return s.db.Validate()
}

// QueryHeight returns the height of the last sealed block.
func (s *State) QueryHeight() int {
	return s.db.Height()
}

// QueryLatestBlock returns the current tail of the chain.
func (s *State) QueryLatestBlock() block.Block {
	return s.db.LatestBlock()
}

// QueryBlockByHash returns the block sealed with the specified hash.
func (s *State) QueryBlockByHash(hash string) (block.Block, bool) {
	return s.db.GetBlockByHash(hash)
}

// QueryBlockByHeight returns the block at the specified height.
func (s *State) QueryBlockByHeight(height uint64) (block.Block, bool) {
	return s.db.GetBlockByHeight(height)
}

// QueryStarsByOwner returns the stars registered by the specified account
// in chain order.
func (s *State) QueryStarsByOwner(owner block.AccountID) []block.Star {
	return s.db.StarsByOwner(owner)
}

package registrygrp

import (
	"github.com/starledger/starledger/foundation/registry/block"
)

// challenge is the response returned for a challenge request.
type challenge struct {
	Address string `json:"address"`
	Message string `json:"message"`
}

// newStar is the request a wallet submits to register a star.
type newStar struct {
	Address   string     `json:"address" validate:"required"`
	Message   string     `json:"message" validate:"required"`
	Signature string     `json:"signature" validate:"required"`
	Star      newStarDoc `json:"star" validate:"required"`
}

// newStarDoc carries the star information inside a submission.
type newStarDoc struct {
	Dec           string `json:"dec" validate:"required"`
	RA            string `json:"ra" validate:"required"`
	Mag           string `json:"mag"`
	Constellation string `json:"constellation"`
	Story         string `json:"story" validate:"required"`
}

// toStar converts the request document into the core star value.
func (doc newStarDoc) toStar() block.Star {
	return block.Star{
		Dec:           doc.Dec,
		RA:            doc.RA,
		Mag:           doc.Mag,
		Constellation: doc.Constellation,
		Story:         doc.Story,
	}
}

// appStar is the view of a star returned by queries.
type appStar struct {
	Dec           string `json:"dec"`
	RA            string `json:"ra"`
	Mag           string `json:"mag,omitempty"`
	Constellation string `json:"constellation,omitempty"`
	Story         string `json:"story"`
}

// toAppStar converts a core star value into the response view.
func toAppStar(star block.Star) appStar {
	return appStar{
		Dec:           star.Dec,
		RA:            star.RA,
		Mag:           star.Mag,
		Constellation: star.Constellation,
		Story:         star.Story,
	}
}

// appBlock is the view of a sealed block returned by the API.
type appBlock struct {
	Hash          string `json:"hash"`
	Height        uint64 `json:"height"`
	TimeStamp     uint64 `json:"timestamp"`
	PrevBlockHash string `json:"prev_block_hash"`
	Body          string `json:"body"`
}

// toAppBlock converts a core block into the response view.
func toAppBlock(blk block.Block) appBlock {
	return appBlock{
		Hash:          blk.Hash,
		Height:        blk.Header.Height,
		TimeStamp:     blk.Header.TimeStamp,
		PrevBlockHash: blk.Header.PrevBlockHash,
		Body:          blk.Body,
	}
}

// validation is the response returned by the chain validation endpoint.
type validation struct {
	Valid  bool     `json:"valid"`
	Height int      `json:"height"`
	Errors []string `json:"errors,omitempty"`
}

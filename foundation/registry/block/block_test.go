package block_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/starledger/starledger/foundation/registry/block"
	"github.com/starledger/starledger/foundation/registry/signature"
)

func Test_SealAndRecompute(t *testing.T) {
	record := block.StarRecord{
		Owner: "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4",
		Star:  block.Star{Dec: "68 52 56.9", RA: "16h 29m 1.0s", Story: "first light"},
	}

	blk, err := block.New(record)
	if err != nil {
		t.Fatalf("Should be able to construct a block: %s", err)
	}

	if blk.Hash != "" {
		t.Fatalf("Should not have a hash before sealing: %s", blk.Hash)
	}

	if err := blk.Seal(signature.ZeroHash, 1, 1693286400); err != nil {
		t.Fatalf("Should be able to seal the block: %s", err)
	}

	if blk.Hash != blk.Recompute() {
		t.Logf("got: %s", blk.Recompute())
		t.Logf("exp: %s", blk.Hash)
		t.Fatalf("Should have a hash that matches the recomputed hash.")
	}

	if blk.Recompute() != blk.Recompute() {
		t.Fatalf("Should recompute the same hash on repeated calls.")
	}

	if err := blk.Seal(signature.ZeroHash, 1, 1693286400); !errors.Is(err, block.ErrAlreadySealed) {
		t.Fatalf("Should not be able to seal a block twice: %v", err)
	}
}

func Test_TamperDetection(t *testing.T) {
	blk, err := block.New(block.StarRecord{
		Owner: "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4",
		Star:  block.Star{Dec: "68 52 56.9", RA: "16h 29m 1.0s", Story: "first light"},
	})
	if err != nil {
		t.Fatalf("Should be able to construct a block: %s", err)
	}
	if err := blk.Seal(signature.ZeroHash, 1, 1693286400); err != nil {
		t.Fatalf("Should be able to seal the block: %s", err)
	}

	sealed := blk.Hash

	// Flip a single byte of the body.
	tampered := blk
	tampered.Body = "00" + tampered.Body[2:]
	if tampered.Recompute() == sealed {
		t.Fatalf("Should compute a different hash after the body is mutated.")
	}

	// Mutate each header field in turn.
	tampered = blk
	tampered.Header.Height++
	if tampered.Recompute() == sealed {
		t.Fatalf("Should compute a different hash after the height is mutated.")
	}

	tampered = blk
	tampered.Header.TimeStamp++
	if tampered.Recompute() == sealed {
		t.Fatalf("Should compute a different hash after the timestamp is mutated.")
	}

	tampered = blk
	tampered.Header.PrevBlockHash = strings.Repeat("ab", 32)
	if tampered.Recompute() == sealed {
		t.Fatalf("Should compute a different hash after the link is mutated.")
	}
}

func Test_BodyCodec(t *testing.T) {
	record := block.StarRecord{
		Owner: "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4",
		Star: block.Star{
			Dec:           "68 52 56.9",
			RA:            "16h 29m 1.0s",
			Mag:           "4.2",
			Constellation: "Her",
			Story:         "a story worth keeping",
		},
	}

	blk, err := block.New(record)
	if err != nil {
		t.Fatalf("Should be able to construct a block: %s", err)
	}

	decoded, err := blk.DecodeBody()
	if err != nil {
		t.Fatalf("Should be able to decode the body: %s", err)
	}

	if decoded != record {
		t.Logf("got: %+v", decoded)
		t.Logf("exp: %+v", record)
		t.Fatalf("Should decode the body back to the original record.")
	}

	blk.Body = "zz" + blk.Body[2:]
	if _, err := blk.DecodeBody(); err == nil {
		t.Fatalf("Should fail to decode a corrupt body.")
	}
}

func Test_GenesisBodyDecode(t *testing.T) {
	blk, err := block.New(block.GenesisRecord{Data: block.GenesisData})
	if err != nil {
		t.Fatalf("Should be able to construct the genesis block: %s", err)
	}

	record, err := blk.DecodeBody()
	if err != nil {
		t.Fatalf("Should be able to decode the genesis body: %s", err)
	}

	if record.Owner != "" {
		t.Fatalf("Should not find an owner inside the genesis body: %s", record.Owner)
	}
}

func Test_AccountID(t *testing.T) {
	if _, err := block.ToAccountID("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"); err != nil {
		t.Fatalf("Should accept a well formed account: %s", err)
	}

	bad := []string{
		"",
		"0x",
		"dd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4x",
		"0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8eb",
		"0xzz6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4",
	}
	for _, a := range bad {
		if _, err := block.ToAccountID(a); err == nil {
			t.Fatalf("Should reject a malformed account: %q", a)
		}
	}
}

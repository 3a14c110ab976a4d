package database_test

import (
	"sync"
	"testing"

	"github.com/starledger/starledger/foundation/registry/block"
	"github.com/starledger/starledger/foundation/registry/database"
	"github.com/starledger/starledger/foundation/registry/signature"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const (
	ownerA = block.AccountID("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
	ownerB = block.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")
	ownerC = block.AccountID("0xFef311483Cc040e1A89fb9bb469eeB8A70935EF8")
)

// =============================================================================

func Test_Genesis(t *testing.T) {
	t.Log("Given the need to validate the genesis block exists after construction.")
	{
		db, err := database.New(nil)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the database: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct the database.", success)

		if h := db.Height(); h != 0 {
			t.Fatalf("\t%s\tShould have height 0 after construction, got %d.", failed, h)
		}
		t.Logf("\t%s\tShould have height 0 after construction.", success)

		genesis, exists := db.GetBlockByHeight(0)
		if !exists {
			t.Fatalf("\t%s\tShould find the genesis block at height 0.", failed)
		}
		t.Logf("\t%s\tShould find the genesis block at height 0.", success)

		if genesis.Header.PrevBlockHash != signature.ZeroHash {
			t.Fatalf("\t%s\tShould have the zero hash sentinel as the genesis link, got %s.", failed, genesis.Header.PrevBlockHash)
		}
		t.Logf("\t%s\tShould have the zero hash sentinel as the genesis link.", success)

		record, err := genesis.DecodeBody()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to decode the genesis body: %v", failed, err)
		}
		if record.Owner != "" {
			t.Fatalf("\t%s\tShould not have an owner in the genesis body.", failed)
		}
		t.Logf("\t%s\tShould carry the fixed marker body with no owner.", success)

		if errs := db.Validate(); len(errs) != 0 {
			t.Fatalf("\t%s\tShould have a valid chain after construction: %v", failed, errs)
		}
		t.Logf("\t%s\tShould have a valid chain after construction.", success)
	}
}

func Test_AppendBlock(t *testing.T) {
	t.Log("Given the need to append blocks through the add-block protocol.")
	{
		db, err := database.New(nil)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the database: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct the database.", success)

		records := []block.StarRecord{
			{Owner: ownerA, Star: block.Star{Dec: "68 52 56.9", RA: "16h 29m 1.0s", Story: "one"}},
			{Owner: ownerA, Star: block.Star{Dec: "17 21 13.1", RA: "03h 47m 24.0s", Story: "two"}},
			{Owner: ownerB, Star: block.Star{Dec: "-16 42 58.0", RA: "06h 45m 8.9s", Story: "three"}},
		}

		for i, record := range records {
			blk, err := db.AppendBlock(record)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to append block %d: %v", failed, i+1, err)
			}

			if blk.Header.Height != uint64(i+1) {
				t.Fatalf("\t%s\tShould have height %d for block %d, got %d.", failed, i+1, i+1, blk.Header.Height)
			}
		}
		t.Logf("\t%s\tShould be able to append blocks with sequential heights.", success)

		if h := db.Height(); h != 3 {
			t.Fatalf("\t%s\tShould have height 3 after the appends, got %d.", failed, h)
		}
		t.Logf("\t%s\tShould have height 3 after the appends.", success)

		for h := uint64(1); h <= 3; h++ {
			blk, exists := db.GetBlockByHeight(h)
			if !exists {
				t.Fatalf("\t%s\tShould find the block at height %d.", failed, h)
			}

			prev, _ := db.GetBlockByHeight(h - 1)
			if blk.Header.PrevBlockHash != prev.Hash {
				t.Fatalf("\t%s\tShould link block %d to its predecessor's hash.", failed, h)
			}
		}
		t.Logf("\t%s\tShould link every block to its predecessor's hash.", success)

		if errs := db.Validate(); len(errs) != 0 {
			t.Fatalf("\t%s\tShould have a valid chain after the appends: %v", failed, errs)
		}
		t.Logf("\t%s\tShould have a valid chain after the appends.", success)
	}
}

func Test_Lookups(t *testing.T) {
	t.Log("Given the need to look up blocks by hash and by height.")
	{
		db, err := database.New(nil)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the database: %v", failed, err)
		}

		blk, err := db.AppendBlock(block.StarRecord{Owner: ownerA, Star: block.Star{Dec: "d", RA: "r", Story: "s"}})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to append a block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to append a block.", success)

		found, exists := db.GetBlockByHash(blk.Hash)
		if !exists || found.Header.Height != blk.Header.Height {
			t.Fatalf("\t%s\tShould find the block by its hash.", failed)
		}
		t.Logf("\t%s\tShould find the block by its hash.", success)

		if _, exists := db.GetBlockByHash("0xdeadbeef"); exists {
			t.Fatalf("\t%s\tShould not find a block for an unknown hash.", failed)
		}
		t.Logf("\t%s\tShould not find a block for an unknown hash.", success)

		if _, exists := db.GetBlockByHeight(99); exists {
			t.Fatalf("\t%s\tShould not find a block for an unknown height.", failed)
		}
		t.Logf("\t%s\tShould not find a block for an unknown height.", success)
	}
}

func Test_StarsByOwner(t *testing.T) {
	t.Log("Given the need to query stars by owner in chain order.")
	{
		db, err := database.New(nil)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the database: %v", failed, err)
		}

		submissions := []block.StarRecord{
			{Owner: ownerA, Star: block.Star{Dec: "d1", RA: "r1", Story: "first"}},
			{Owner: ownerA, Star: block.Star{Dec: "d2", RA: "r2", Story: "second"}},
			{Owner: ownerB, Star: block.Star{Dec: "d3", RA: "r3", Story: "third"}},
		}
		for i, record := range submissions {
			if _, err := db.AppendBlock(record); err != nil {
				t.Fatalf("\t%s\tShould be able to append block %d: %v", failed, i+1, err)
			}
		}
		t.Logf("\t%s\tShould be able to append the submissions.", success)

		stars := db.StarsByOwner(ownerA)
		if len(stars) != 2 {
			t.Fatalf("\t%s\tShould find 2 stars for owner A, got %d.", failed, len(stars))
		}
		if stars[0].Story != "first" || stars[1].Story != "second" {
			t.Fatalf("\t%s\tShould return owner A's stars in submission order: %+v", failed, stars)
		}
		t.Logf("\t%s\tShould return owner A's stars in submission order.", success)

		if stars := db.StarsByOwner(ownerC); len(stars) != 0 {
			t.Fatalf("\t%s\tShould find no stars for an owner that never submitted, got %d.", failed, len(stars))
		}
		t.Logf("\t%s\tShould find no stars for an owner that never submitted.", success)
	}
}

func Test_ConcurrentAppends(t *testing.T) {
	t.Log("Given the need to serialize near-simultaneous submissions.")
	{
		db, err := database.New(nil)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the database: %v", failed, err)
		}

		var wg sync.WaitGroup
		wg.Add(2)
		errs := make(chan error, 2)

		appendStar := func(owner block.AccountID, story string) {
			defer wg.Done()
			if _, err := db.AppendBlock(block.StarRecord{Owner: owner, Star: block.Star{Dec: "d", RA: "r", Story: story}}); err != nil {
				errs <- err
			}
		}

		go appendStar(ownerA, "first writer")
		go appendStar(ownerB, "second writer")
		wg.Wait()
		close(errs)

		for err := range errs {
			t.Fatalf("\t%s\tShould be able to append from both writers: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to append from both writers.", success)

		if h := db.Height(); h != 2 {
			t.Fatalf("\t%s\tShould have height 2 after both appends, got %d.", failed, h)
		}
		t.Logf("\t%s\tShould have height 2 after both appends.", success)

		blk1, _ := db.GetBlockByHeight(1)
		blk2, _ := db.GetBlockByHeight(2)
		if blk2.Header.PrevBlockHash != blk1.Hash {
			t.Fatalf("\t%s\tShould link the second block to the first.", failed)
		}
		t.Logf("\t%s\tShould link the second block to the first.", success)

		if errs := db.Validate(); len(errs) != 0 {
			t.Fatalf("\t%s\tShould have a valid chain after concurrent appends: %v", failed, errs)
		}
		t.Logf("\t%s\tShould have a valid chain after concurrent appends.", success)
	}
}

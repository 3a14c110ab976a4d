package block

// Star represents the star information a wallet owner submits for
// registration. Beyond the coordinates and the story, the ledger treats
// the data as passenger payload.
type Star struct {
	Dec           string `json:"dec"`
	RA            string `json:"ra"`
	Mag           string `json:"mag,omitempty"`
	Constellation string `json:"constellation,omitempty"`
	Story         string `json:"story"`
}

// StarRecord is the logical structure stored inside the body of every
// non-genesis block. Only the owner is semantically required by the ledger
// for querying.
type StarRecord struct {
	Owner AccountID `json:"owner"`
	Star  Star      `json:"star"`
}

// GenesisRecord is the marker payload stored inside the genesis block.
type GenesisRecord struct {
	Data string `json:"data"`
}

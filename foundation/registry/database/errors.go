package database

import (
	"fmt"
	"strings"
)

// TamperedBlockError is a diagnostic entry for a block whose stored hash
// disagrees with its recomputed hash.
type TamperedBlockError struct {
	Height     uint64
	StoredHash string
}

// Error implements the error interface.
func (e *TamperedBlockError) Error() string {
	return fmt.Sprintf("block %d is tampered, stored hash %s does not match content", e.Height, e.StoredHash)
}

// BrokenLinkError is a diagnostic entry for a non-genesis block whose
// previous hash disagrees with its actual predecessor's hash.
type BrokenLinkError struct {
	Height       uint64
	ExpectedPrev string
	ActualPrev   string
}

// Error implements the error interface.
func (e *BrokenLinkError) Error() string {
	return fmt.Sprintf("block %d link is broken, got prev %s, exp %s", e.Height, e.ActualPrev, e.ExpectedPrev)
}

// InvalidChainError reports that the validation pass after an append found
// corruption. The triggering append has been undone.
type InvalidChainError struct {
	Errs []error
}

// Error implements the error interface.
func (e *InvalidChainError) Error() string {
	var sb strings.Builder
	sb.WriteString("chain is invalid")
	for _, err := range e.Errs {
		sb.WriteString(": ")
		sb.WriteString(err.Error())
	}

	return sb.String()
}

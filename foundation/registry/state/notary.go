package state

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/starledger/starledger/foundation/registry/block"
	"github.com/starledger/starledger/foundation/registry/signature"
)

// challengeWindow is the maximum age of a challenge message at
// verification time. This is a business-logic deadline, not an I/O
// timeout.
const challengeWindow = 300 * time.Second

// challengeSuffix marks a challenge message as belonging to the star
// registry.
const challengeSuffix = "starRegistry"

// Set of errors the ownership verification protocol can return. The
// expired and invalid-signature cases carry distinct text so a caller can
// tell whether to re-issue a challenge or re-sign.
var (
	ErrChallengeExpired = errors.New("challenge expired, request a new challenge")
	ErrInvalidSignature = errors.New("signature verification failed")
	ErrMalformedMessage = errors.New("malformed challenge message")
	ErrInvalidAccount   = errors.New("account is not properly formatted")
)

// IssueChallenge returns a signable challenge message binding the
// specified account to the current wall-clock time. Issued challenges are
// not persisted; the message the caller echoes back carries everything the
// protocol needs.
func (s *State) IssueChallenge(accountID block.AccountID) (string, error) {
	if !accountID.IsAccountID() {
		return "", ErrInvalidAccount
	}

	message := fmt.Sprintf("%s:%d:%s", accountID, time.Now().UTC().Unix(), challengeSuffix)

	s.evHandler("state: issuechallenge: account[%s]", accountID)

	return message, nil
}

// SubmitStar verifies the challenge is fresh and the signature was
// produced by the claimed account, then records the star on the chain. On
// success the sealed block is returned.
func (s *State) SubmitStar(accountID block.AccountID, message string, sig string, star block.Star) (block.Block, error) {
	if !accountID.IsAccountID() {
		return block.Block{}, ErrInvalidAccount
	}

	issued, err := challengeTime(message)
	if err != nil {
		return block.Block{}, err
	}

	// Check freshness first. An expired challenge fails before any
	// signature work is attempted.
	elapsed := time.Now().UTC().Unix() - issued
	if elapsed >= int64(challengeWindow.Seconds()) {
		s.evHandler("state: submitstar: account[%s]: challenge expired after %ds", accountID, elapsed)
		return block.Block{}, ErrChallengeExpired
	}

	v, r, sv, err := signature.ToVRSFromHexSignature(sig)
	if err != nil {
		return block.Block{}, fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	if err := signature.VerifySignature(v, r, sv); err != nil {
		return block.Block{}, fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	// Recover the address that signed this exact message and compare it
	// to the claimed account.
	from, err := signature.FromAddress(message, v, r, sv)
	if err != nil {
		return block.Block{}, fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}
	if !strings.EqualFold(from, string(accountID)) {
		s.evHandler("state: submitstar: account[%s]: signed by %s", accountID, from)
		return block.Block{}, ErrInvalidSignature
	}

	blk, err := s.db.AppendBlock(block.StarRecord{Owner: accountID, Star: star})
	if err != nil {
		return block.Block{}, err
	}

	s.evHandler("state: submitstar: account[%s]: blk[%d]: hash[%s]", accountID, blk.Header.Height, blk.Hash)

	return blk, nil
}

// =============================================================================

// challengeTime parses the issue time embedded in the second colon
// delimited field of a challenge message.
func challengeTime(message string) (int64, error) {
	parts := strings.Split(message, ":")
	if len(parts) != 3 || parts[2] != challengeSuffix {
		return 0, ErrMalformedMessage
	}

	issued, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrMalformedMessage, err)
	}

	return issued, nil
}

// Package registrygrp maintains the group of handlers for the star
// registry endpoints.
package registrygrp

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/starledger/starledger/business/web/errs"
	"github.com/starledger/starledger/foundation/events"
	"github.com/starledger/starledger/foundation/registry/block"
	"github.com/starledger/starledger/foundation/registry/database"
	"github.com/starledger/starledger/foundation/registry/state"
	"github.com/starledger/starledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of star registry endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Challenge issues a signable ownership challenge for the specified account.
func (h Handlers) Challenge(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	accountID := block.AccountID(web.Param(r, "account"))

	message, err := h.State.IssueChallenge(accountID)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("issue challenge", "traceid", v.TraceID, "account", accountID)

	resp := challenge{
		Address: string(accountID),
		Message: message,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SubmitStar verifies ownership of the signed challenge and records the
// star on the chain.
func (h Handlers) SubmitStar(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ns newStar
	if err := web.Decode(r, &ns); err != nil {
		return err
	}

	h.Log.Infow("submit star", "traceid", v.TraceID, "account", ns.Address)

	blk, err := h.State.SubmitStar(block.AccountID(ns.Address), ns.Message, ns.Signature, ns.Star.toStar())
	if err != nil {
		var ice *database.InvalidChainError
		switch {
		case errors.As(err, &ice):
			return errs.NewTrusted(err, http.StatusInternalServerError)
		default:
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
	}

	return web.Respond(ctx, w, toAppBlock(blk), http.StatusCreated)
}

// StarsByOwner returns the stars registered by the specified account in
// chain order.
func (h Handlers) StarsByOwner(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountID, err := block.ToAccountID(web.Param(r, "account"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	stars := h.State.QueryStarsByOwner(accountID)

	resp := make([]appStar, len(stars))
	for i, star := range stars {
		resp[i] = toAppStar(star)
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// BlockByHash returns the block sealed with the specified hash.
func (h Handlers) BlockByHash(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	hash := web.Param(r, "hash")

	blk, exists := h.State.QueryBlockByHash(hash)
	if !exists {
		return errs.NewTrusted(errors.New("block not found"), http.StatusNotFound)
	}

	return web.Respond(ctx, w, toAppBlock(blk), http.StatusOK)
}

// BlockByHeight returns the block at the specified height.
func (h Handlers) BlockByHeight(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	height, err := strconv.ParseUint(web.Param(r, "height"), 10, 64)
	if err != nil {
		return errs.NewTrusted(errors.New("invalid block height"), http.StatusBadRequest)
	}

	blk, exists := h.State.QueryBlockByHeight(height)
	if !exists {
		return errs.NewTrusted(errors.New("block not found"), http.StatusNotFound)
	}

	return web.Respond(ctx, w, toAppBlock(blk), http.StatusOK)
}

// ValidateChain runs the whole-chain validation pass and returns the
// diagnostics found.
func (h Handlers) ValidateChain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	verrs := h.State.Validate()

	resp := validation{
		Valid:  len(verrs) == 0,
		Height: h.State.QueryHeight(),
	}
	for _, err := range verrs {
		resp.Errors = append(resp.Errors, err.Error())
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

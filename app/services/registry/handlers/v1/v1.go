// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/starledger/starledger/app/services/registry/handlers/v1/registrygrp"
	"github.com/starledger/starledger/foundation/events"
	"github.com/starledger/starledger/foundation/registry/state"
	"github.com/starledger/starledger/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	rgh := registrygrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/challenge/:account", rgh.Challenge)
	app.Handle(http.MethodPost, version, "/star/submit", rgh.SubmitStar)
	app.Handle(http.MethodGet, version, "/stars/list/:account", rgh.StarsByOwner)
	app.Handle(http.MethodGet, version, "/block/hash/:hash", rgh.BlockByHash)
	app.Handle(http.MethodGet, version, "/block/height/:height", rgh.BlockByHeight)
	app.Handle(http.MethodGet, version, "/chain/validate", rgh.ValidateChain)
	app.Handle(http.MethodGet, version, "/events", rgh.Events)
}

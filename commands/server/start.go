package server

import (
	"github.com/iov-one/timelock/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// DefaultBind is the address tendermint connects to by default.
const DefaultBind = "tcp://localhost:26658"

// AppGenerator builds the application once flags are parsed, so it can
// use the configured home directory and logger.
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// StartCmd serves the application on bind over the ABCI socket protocol
// and blocks until the process receives a termination signal.
func StartCmd(gen AppGenerator, logger log.Logger, home, bind string, debug bool) error {
	app, err := gen(home, logger, debug)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "listen on %s: %s", bind, err)
	}
	srv.SetLogger(logger.With("module", "abci-server"))
	logger.Info("serving timelock", "bind", bind, "home", home)
	if err := srv.Start(); err != nil {
		return errors.Wrapf(errors.ErrInput, "start server: %s", err)
	}

	cmn.TrapSignal(logger, func() {
		if err := srv.Stop(); err != nil {
			logger.Error("stop server", "err", err)
		}
	})
	return nil
}

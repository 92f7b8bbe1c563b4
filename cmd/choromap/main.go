package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/geo-labs/choromap/internal/cliconfig"
	"github.com/geo-labs/choromap/internal/domain"
)

// exitCode maps a command error to the process exit status: usage errors
// exit 2, a cancelled watch exits clean, everything else exits 1.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrUsage):
		return 2
	case errors.Is(err, context.Canceled):
		return 0
	default:
		return 1
	}
}

func main() {
	log := cliconfig.Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("choromap")
		os.Exit(exitCode(err))
	}
}

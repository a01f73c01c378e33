package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/icinga/icinga-restquery/internal"
	"github.com/icinga/icinga-restquery/internal/daemon"
	"github.com/icinga/icinga-restquery/internal/listener"
	"github.com/icinga/icingadb/pkg/logging"
	"go.uber.org/zap"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	flags, conf := daemon.ParseFlagsAndConfig()

	logs, err := logging.NewLogging(
		"icinga-restquery",
		conf.Logging.Level,
		conf.Logging.Output,
		conf.Logging.Options,
		conf.Logging.Interval,
	)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "cannot initialize logging:", err)
		os.Exit(daemon.ExitFailure)
	}

	logger := logs.GetLogger()
	defer func() { _ = logger.Sync() }()

	sets, err := conf.BuildSets(logs.GetChildLogger("filter"))
	if err != nil {
		logger.Fatalw("Cannot build filter sets from config", zap.Error(err))
	}

	if flags.Resource != "" {
		if err := daemon.Query(os.Stdout, sets, flags.Resource, flags.Query); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(daemon.ExitFailure)
		}

		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Infof("Starting Icinga REST Query (%s) with %d resources", internal.Version, len(sets))

	err = listener.NewListener(conf.Listen, sets, logs.GetChildLogger("listener")).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorw("Listener has finished with an error", zap.Error(err))
	} else {
		logger.Info("Listener has finished")
	}
}

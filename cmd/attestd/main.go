package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruteri/brand-attestations/cmd/flags"
	"github.com/ruteri/brand-attestations/common"
	"github.com/ruteri/brand-attestations/httpserver"
	"github.com/ruteri/brand-attestations/metrics"
	"github.com/urfave/cli/v2"
)

func main() {
	serverFlags := append([]cli.Flag{flags.ListenAddrFlag, flags.LogServiceFlagFn("attestd")}, flags.CommonFlags...)

	app := &cli.App{
		Name:  "attestd",
		Usage: "Serve the brand attestation API",
		Flags: append(serverFlags, flags.AttestationFlags...),
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			cfg, err := flags.LoadConfig(cCtx)
			if err != nil {
				logger.Error("Invalid configuration", "err", err)
				return err
			}

			m := metrics.NewMetrics(common.PackageName)

			svc, err := flags.BuildService(cfg, logger, m)
			if err != nil {
				return err
			}

			serverCfg := flags.ConfigureServer(cCtx, logger, cCtx.String(flags.ListenAddrFlag.Name))
			serverCfg.Metrics = m

			handler := httpserver.NewHandler(svc.Client, svc.Registry, svc.Archive, logger)
			server, err := httpserver.New(serverCfg, handler)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

			logger.Info("Server is running, press Ctrl+C to stop")
			<-exit
			logger.Info("Shutdown signal received")

			server.Drain()
			server.Shutdown()
			logger.Info("Server shutdown complete")

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

package flags

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/ruteri/brand-attestations/api"
	logcommon "github.com/ruteri/brand-attestations/common"
	"github.com/ruteri/brand-attestations/config"
	"github.com/urfave/cli/v2"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String("log-service")

	logger := logcommon.SetupLogger(&logcommon.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: logcommon.Version,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

func ConfigureServer(cCtx *cli.Context, logger *slog.Logger, listenAddr string) *api.HTTPServerConfig {
	metricsAddr := cCtx.String("metrics-addr")
	enablePprof := cCtx.Bool("pprof")
	drainDuration := time.Duration(cCtx.Int64("drain-seconds")) * time.Second

	return &api.HTTPServerConfig{
		ListenAddr:               listenAddr,
		MetricsAddr:              metricsAddr,
		Log:                      logger,
		EnablePprof:              enablePprof,
		DrainDuration:            drainDuration,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		// relay round trip plus encoding
		WriteTimeout: cCtx.Duration(RelayTimeoutFlag.Name) + 15*time.Second,
	}
}

// LoadConfig reads ATTEST_* environment variables and lets explicitly set
// flags take precedence over them.
func LoadConfig(cCtx *cli.Context) (*config.Config, error) {
	cfg, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}

	if cCtx.IsSet(ChainFlag.Name) {
		cfg.Chain = cCtx.String(ChainFlag.Name)
	}
	if cCtx.IsSet(RelayURLFlag.Name) {
		cfg.RelayURL = cCtx.String(RelayURLFlag.Name)
	}
	if cCtx.IsSet(RelayCredentialFlag.Name) {
		cfg.RelayCredential = cCtx.String(RelayCredentialFlag.Name)
	}
	if cCtx.IsSet(RelayTimeoutFlag.Name) {
		cfg.RelayTimeout = cCtx.Duration(RelayTimeoutFlag.Name)
	}
	if cCtx.IsSet(AttesterFlag.Name) {
		addr := cCtx.String(AttesterFlag.Name)
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("%w: attester %q is not an address", config.ErrInvalid, addr)
		}
		cfg.Attester = common.HexToAddress(addr)
	}
	if cCtx.IsSet(ChainsFileFlag.Name) {
		cfg.ChainsFile = cCtx.String(ChainsFileFlag.Name)
	}
	if cCtx.IsSet(ArchiveFlag.Name) {
		cfg.Archive = cCtx.StringSlice(ArchiveFlag.Name)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var ChainFlag = &cli.StringFlag{
	Name:  "chain",
	Usage: "network key to attest on (ethereum, sepolia, base, base-sepolia, optimism, arbitrum, localhost); defaults to base-sepolia",
}

var RelayURLFlag = &cli.StringFlag{
	Name:  "relay-url",
	Usage: "base URL of the signing relay",
}

var RelayCredentialFlag = &cli.StringFlag{
	Name:  "relay-credential",
	Usage: "bearer credential for the relay; without it attestations are simulated",
}

var RelayTimeoutFlag = &cli.DurationFlag{
	Name:  "relay-timeout",
	Value: 30 * time.Second,
	Usage: "timeout of a single relay request",
}

var AttesterFlag = &cli.StringFlag{
	Name:  "attester",
	Usage: "attester address reported for simulated attestations",
}

var ChainsFileFlag = &cli.StringFlag{
	Name:  "chains-file",
	Usage: "YAML file with per-network overrides (rpc_url, explorer_url, schemas, ...)",
}

var ArchiveFlag = &cli.StringSliceFlag{
	Name:  "archive",
	Usage: "archive location URI (file:///path, s3://bucket/prefix?region=..., memory://); repeatable",
}

var ServerAddrFlag = &cli.StringFlag{
	Name:  "server",
	Usage: "attestation service base URL; when set, requests go to the service instead of a local client",
}

var ListenAddrFlag = &cli.StringFlag{
	Name:  "listen-addr",
	Value: "127.0.0.1:8080",
	Usage: "address to listen on for API",
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlagFn = func(service string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "log-service",
		Value: service,
		Usage: "add 'service' tag to logs",
	}
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}
var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to wait in drain HTTP request",
}
var MetricsAddrFlag = &cli.StringFlag{
	Name:  "metrics-addr",
	Value: "127.0.0.1:8090",
	Usage: "address to listen on for Prometheus metrics",
}

var LoggingFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
}

var CommonFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	PprofFlag,
	DrainSecondsFlag,
	MetricsAddrFlag,
}

var AttestationFlags = []cli.Flag{
	ChainFlag,
	RelayURLFlag,
	RelayCredentialFlag,
	RelayTimeoutFlag,
	AttesterFlag,
	ChainsFileFlag,
	ArchiveFlag,
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ruteri/brand-attestations/api"
	"github.com/ruteri/brand-attestations/api/clients"
	"github.com/ruteri/brand-attestations/attestation"
	"github.com/ruteri/brand-attestations/chains"
	"github.com/ruteri/brand-attestations/cmd/flags"
	"github.com/ruteri/brand-attestations/encoder"
	"github.com/ruteri/brand-attestations/interfaces"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
)

var flagData = &cli.StringFlag{
	Name:     "data",
	Required: true,
	Usage:    "record fields as JSON, or @file to read them from a file",
}

var flagRecipient = &cli.StringFlag{
	Name:  "recipient",
	Usage: "recipient address; defaults to the zero address",
}

var flagProbeTimeout = &cli.DurationFlag{
	Name:  "timeout",
	Value: 10 * time.Second,
	Usage: "overall probe timeout",
}

func main() {
	globalFlags := append([]cli.Flag{flags.ServerAddrFlag, flags.LogServiceFlagFn("attest")}, flags.LoggingFlags...)

	app := &cli.App{
		Name:  "attest",
		Usage: "Encode brand records and create attestations",
		Flags: append(globalFlags, flags.AttestationFlags...),
		Commands: []*cli.Command{
			{
				Name:   "schemas",
				Usage:  "print schema strings and UIDs of the active network",
				Action: schemasCmd,
			},
			{
				Name:   "chains",
				Usage:  "print the configured networks",
				Action: chainsCmd,
			},
			{
				Name:      "encode",
				Usage:     "encode a record without attesting it",
				ArgsUsage: "<record_type>",
				Flags:     []cli.Flag{flagData},
				Action:    encodeCmd,
			},
			{
				Name:      "create",
				Usage:     "create an attestation, locally or through --server",
				ArgsUsage: "<record_type>",
				Flags:     []cli.Flag{flagData, flagRecipient},
				Action:    createCmd,
			},
			{
				Name:      "get",
				Usage:     "fetch an archived attestation, locally or through --server",
				ArgsUsage: "<uid>",
				Action:    getCmd,
			},
			{
				Name:   "probe",
				Usage:  "check that every network's RPC endpoint serves the expected chain id",
				Flags:  []cli.Flag{flagProbeTimeout},
				Action: probeCmd,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func remote(cCtx *cli.Context) *clients.AttestationClient {
	addr := cCtx.String(flags.ServerAddrFlag.Name)
	if addr == "" {
		return nil
	}
	return &clients.AttestationClient{ServerAddr: addr}
}

func readData(cCtx *cli.Context) (json.RawMessage, error) {
	data := cCtx.String(flagData.Name)
	if len(data) > 0 && data[0] == '@' {
		f, err := os.Open(data[1:])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		return raw, nil
	}
	return json.RawMessage(data), nil
}

func recordTypeArg(cCtx *cli.Context) (interfaces.RecordType, error) {
	if cCtx.NArg() != 1 {
		return "", fmt.Errorf("expected one record type argument, one of %v", interfaces.RecordTypes)
	}
	return interfaces.ParseRecordType(cCtx.Args().First())
}

func schemasCmd(cCtx *cli.Context) error {
	if c := remote(cCtx); c != nil {
		resp, err := c.Schemas(cCtx.Context)
		if err != nil {
			return err
		}
		return printJSON(resp)
	}

	cfg, err := flags.LoadConfig(cCtx)
	if err != nil {
		return err
	}
	registry, err := cfg.BuildRegistry()
	if err != nil {
		return err
	}
	return printJSON(api.NewSchemasResponse(registry.Active()))
}

func chainsCmd(cCtx *cli.Context) error {
	cfg, err := flags.LoadConfig(cCtx)
	if err != nil {
		return err
	}
	registry, err := cfg.BuildRegistry()
	if err != nil {
		return err
	}

	summaries := lo.Map(registry.Keys(), func(key interfaces.ChainKey, _ int) api.ChainSummary {
		chainCfg, _ := registry.Config(key)
		summary := api.NewChainSummary(chainCfg)
		if key == registry.ActiveKey() {
			summary.Mode = modeFor(cfg.RelayCredential)
		}
		return summary
	})
	return printJSON(summaries)
}

func modeFor(credential string) attestation.Mode {
	if credential == "" {
		return attestation.ModeSimulated
	}
	return attestation.ModeRelay
}

func encodeCmd(cCtx *cli.Context) error {
	rt, err := recordTypeArg(cCtx)
	if err != nil {
		return err
	}
	data, err := readData(cCtx)
	if err != nil {
		return err
	}

	rec, err := encoder.DecodeRecord(rt, data)
	if err != nil {
		return err
	}
	payload, err := encoder.Encode(rec)
	if err != nil {
		return err
	}

	return printJSON(struct {
		RecordType interfaces.RecordType `json:"record_type"`
		Schema     string                `json:"schema"`
		Data       string                `json:"data"`
		Digest     common.Hash           `json:"digest"`
	}{rt, interfaces.SchemaDefinitions[rt], payload.String(), payload.Digest()})
}

func createCmd(cCtx *cli.Context) error {
	rt, err := recordTypeArg(cCtx)
	if err != nil {
		return err
	}
	data, err := readData(cCtx)
	if err != nil {
		return err
	}

	var recipient common.Address
	if r := cCtx.String(flagRecipient.Name); r != "" {
		if !common.IsHexAddress(r) {
			return fmt.Errorf("invalid recipient address %q", r)
		}
		recipient = common.HexToAddress(r)
	}

	if c := remote(cCtx); c != nil {
		res, err := c.Create(cCtx.Context, rt, &api.CreateAttestationRequest{Recipient: recipient, Data: data})
		if err != nil {
			return err
		}
		return printResult(res.Success, res)
	}

	logger := flags.SetupLogger(cCtx)
	cfg, err := flags.LoadConfig(cCtx)
	if err != nil {
		return err
	}
	svc, err := flags.BuildService(cfg, logger, nil)
	if err != nil {
		return err
	}

	rec, err := encoder.DecodeRecord(rt, data)
	if err != nil {
		return err
	}
	res, err := svc.Client.Create(cCtx.Context, rec, recipient)
	if err != nil {
		return err
	}
	return printResult(res.Success, res)
}

func printResult(success bool, v any) error {
	if err := printJSON(v); err != nil {
		return err
	}
	if !success {
		return cli.Exit("attestation failed", 1)
	}
	return nil
}

func getCmd(cCtx *cli.Context) error {
	if cCtx.NArg() != 1 {
		return errors.New("expected one attestation uid argument")
	}
	uid := cCtx.Args().First()

	if c := remote(cCtx); c != nil {
		record, err := c.Get(cCtx.Context, uid)
		if err != nil {
			return err
		}
		return printJSON(record)
	}

	cfg, err := flags.LoadConfig(cCtx)
	if err != nil {
		return err
	}
	if len(cfg.Archive) == 0 {
		return errors.New("no archive configured; pass --archive or --server")
	}
	svc, err := flags.BuildService(cfg, flags.SetupLogger(cCtx), nil)
	if err != nil {
		return err
	}
	record, err := svc.Archive.Fetch(cCtx.Context, uid)
	if err != nil {
		return err
	}
	return printJSON(record)
}

func probeCmd(cCtx *cli.Context) error {
	cfg, err := flags.LoadConfig(cCtx)
	if err != nil {
		return err
	}
	registry, err := cfg.BuildRegistry()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cCtx.Context, cCtx.Duration(flagProbeTimeout.Name))
	defer cancel()

	results := chains.ProbeAll(ctx, registry.Configs(), chains.DialEthclient)

	failed := 0
	for _, key := range registry.Keys() {
		if err := results[key]; err != nil {
			failed++
			fmt.Printf("%-14s FAIL %v\n", key, err)
		} else {
			fmt.Printf("%-14s ok\n", key)
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d networks failed", failed, len(results)), 1)
	}
	return nil
}

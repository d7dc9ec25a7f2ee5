// Command aperctl encodes and decodes the demonstration Notification
// message from internal/messages, for exercising and inspecting the
// codec from a terminal. Its command-line surface is grounded on
// synadia-labs-cbor-go's cborgen/main.go (kong.Parse + a run(cli) error
// dispatcher, ctx.FatalIfErrorf at the top).
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/quietbit/aper/aper"
	"github.com/quietbit/aper/internal/batch"
	"github.com/quietbit/aper/internal/config"
	"github.com/quietbit/aper/internal/constraint"
	"github.com/quietbit/aper/internal/messages"
	"github.com/quietbit/aper/internal/observability"
)

// CLI defines aperctl's command-line interface.
type CLI struct {
	Config  string `short:"c" help:"Path to a TOML config file"`
	Verbose bool   `short:"v" help:"Enable debug-level logging"`
	Mode    string `short:"m" help:"encode, decode, or batch" enum:"encode,decode,batch" default:"decode"`
	Input   string `short:"i" help:"Input file, or '-' for stdin" default:"-"`

	Kind  string `help:"Notification kind to encode: ping or report" enum:"ping,report" default:"ping"`
	Value int64  `help:"Ping.Sequence, or the first byte of Report.Items" default:"0"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("aperctl"),
		kong.Description("Encode and decode demonstration APER messages."),
	)
	if err := run(&cli); err != nil {
		ctx.FatalIfErrorf(err)
	}
}

func run(cli *CLI) error {
	cfg := config.Default()
	if cli.Config != "" {
		loaded, err := config.Load(cli.Config)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := observability.InitLogger("aperctl")
	level := cfg.LogLevel
	if cli.Verbose {
		level = "debug"
	}
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	switch cli.Mode {
	case "encode":
		return runEncode(cli, logger)
	case "decode":
		return runDecode(cli, logger)
	case "batch":
		return runBatch(cli, logger)
	default:
		return fmt.Errorf("aperctl: unknown mode %q", cli.Mode)
	}
}

func runEncode(cli *CLI, logger zerolog.Logger) error {
	msg := messages.Notification{}
	switch cli.Kind {
	case "ping":
		msg.Kind = messages.KindPing
		msg.Ping = messages.Ping{Sequence: cli.Value}
	case "report":
		msg.Kind = messages.KindReport
		msg.Report = messages.Report{
			Items: aper.SequenceOf[messages.Octet, *messages.Octet]{
				Items: []messages.Octet{messages.Octet(cli.Value)},
			},
		}
	}

	e := aper.NewEncoder()
	if err := msg.EncodeAPER(e, constraint.Unconstrained); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	out := hex.EncodeToString(e.Bytes())
	logger.Info().Str("kind", cli.Kind).Int("bytes", len(e.Bytes())).Msg("encoded notification")
	fmt.Println(out)
	return nil
}

func runDecode(cli *CLI, logger zerolog.Logger) error {
	data, err := readHexInput(cli.Input)
	if err != nil {
		return err
	}

	var msg messages.Notification
	if err := msg.DecodeAPER(aper.NewDecoder(data), constraint.Unconstrained); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	logKind(logger, msg)
	return nil
}

func runBatch(cli *CLI, logger zerolog.Logger) error {
	r, closeFn, err := openInput(cli.Input)
	if err != nil {
		return err
	}
	defer closeFn()

	msgs, err := batch.ReadAll(r)
	if err != nil {
		return err
	}

	for _, m := range msgs {
		var msg messages.Notification
		if err := msg.DecodeAPER(aper.NewDecoder(m.Data), constraint.Unconstrained); err != nil {
			logger.Error().Err(err).Uint64("line", m.Line).Msg("decode failed")
			continue
		}
		logKind(logger.With().Uint64("line", m.Line).Logger(), msg)
	}
	return nil
}

func logKind(logger zerolog.Logger, msg messages.Notification) {
	if msg.Alert != nil {
		logger.Info().Int64("code", msg.Alert.Code).Msg("decoded alert extension")
		return
	}
	switch msg.Kind {
	case messages.KindPing:
		logger.Info().Int64("sequence", msg.Ping.Sequence).Msg("decoded ping")
	case messages.KindReport:
		logger.Info().Int("items", len(msg.Report.Items.Items)).Bool("note_present", msg.Report.Note.Present).Msg("decoded report")
	}
}

func readHexInput(path string) ([]byte, error) {
	r, closeFn, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return hex.DecodeString(strings.TrimSpace(string(raw)))
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/blogdigest/internal/app"
	"github.com/hyperifyio/blogdigest/internal/content"
	"github.com/hyperifyio/blogdigest/internal/pipeline"
)

// oneShot describes a single request processed from the command line
// instead of serving HTTP.
type oneShot struct {
	enabled   bool
	inputType string
	option    string
	input     string
	language  string
	out       string
}

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Error().Err(err).Msg("run failed")
		stop()
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("blogdigest", flag.ContinueOnError)
	flags := app.BindFlags(fs)
	var once oneShot
	fs.BoolVar(&once.enabled, "once", false, "Process one input and exit instead of serving HTTP")
	fs.StringVar(&once.inputType, "type", string(content.InputText), "Input type for -once: text, link or image")
	fs.StringVar(&once.option, "option", string(content.OptionSummarize), "Processing option for -once")
	fs.StringVar(&once.input, "input", "", "Text, URL or image path for -once; - reads text from stdin")
	fs.StringVar(&once.language, "lang", "", "Target language for the translate option")
	fs.StringVar(&once.out, "out", "", "Write the generated PDF here when -option pdf")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Dotenv files feed the environment layer, so they load before resolving.
	if err := app.LoadEnvFiles(flags.EnvFileList()...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	cfg, err := flags.Resolve(fs)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	if once.enabled {
		return processOnce(ctx, a, once, stdout)
	}
	a.Preflight(ctx)
	return a.Serve(ctx)
}

// processOnce runs one request and prints the JSON result.
func processOnce(ctx context.Context, a *app.App, o oneShot, stdout io.Writer) error {
	req := pipeline.Request{
		InputType:      content.InputType(strings.ToLower(strings.TrimSpace(o.inputType))),
		Option:         content.Option(strings.ToLower(strings.TrimSpace(o.option))),
		TargetLanguage: o.language,
	}
	switch {
	case req.InputType == content.InputImage:
		b, err := os.ReadFile(o.input)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		req.Reference = content.Reference{Data: b, Name: filepath.Base(o.input)}
	case o.input == "-":
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		req.Reference = content.Reference{Value: string(b)}
	default:
		req.Reference = content.Reference{Value: o.input}
	}

	res, err := a.Process(ctx, req)
	if err != nil {
		return err
	}
	if res.PDF != nil && strings.TrimSpace(o.out) != "" {
		data, err := base64.StdEncoding.DecodeString(res.PDF.Base64)
		if err != nil {
			return fmt.Errorf("decode pdf: %w", err)
		}
		if err := os.WriteFile(o.out, data, 0o644); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("path", o.out).Int("bytes", len(data)).Msg("pdf written")
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// exitCode maps failures to process exit codes: 2 for bad input, 1 otherwise.
func exitCode(err error) int {
	switch content.KindOf(err) {
	case content.KindEmptyInput, content.KindUnsupportedCombination, content.KindNoContent:
		return 2
	}
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 1
}

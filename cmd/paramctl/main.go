// FILE: lixenwraith/params/cmd/paramctl/main.go
// paramctl inspects parameter stores against schema declarations.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/lixenwraith/params"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usage = `Usage: paramctl <command> [flags]

Commands:
  fetch   dump the parameters under a prefix
  check   read a prefix against a schema file
  keys    list the keys a schema file reads
  watch   poll a prefix and print every change
`

// exitMissing is returned by check when required fields are absent.
const exitMissing = 1

// options holds the flags shared by every command.
type options struct {
	prefix   string
	file     string
	schema   string
	format   string
	out      string
	logLevel string
	noColor  bool
	interval time.Duration

	ssm params.SSMOptions
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code, err := run(ctx, os.Args[1], os.Args[2:], os.Stdout)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		if code == 0 {
			code = 2
		}
	}
	os.Exit(code)
}

func run(ctx context.Context, command string, args []string, stdout io.Writer) (int, error) {
	opts, err := parseFlags(command, args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0, nil
		}
		return 2, err
	}
	if opts.noColor {
		color.NoColor = true
	}

	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return 2, err
	}
	defer logger.Sync()
	opts.ssm.Logger = logger

	switch command {
	case "fetch":
		return runFetch(ctx, opts, logger, stdout)
	case "check":
		return runCheck(ctx, opts, logger, stdout)
	case "keys":
		return runKeys(opts, stdout)
	case "watch":
		return runWatch(ctx, opts, logger, stdout)
	default:
		return 2, fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}

func parseFlags(command string, args []string) (*options, error) {
	opts := &options{ssm: params.DefaultSSMOptions()}

	fs := pflag.NewFlagSet(command, pflag.ContinueOnError)
	fs.StringVarP(&opts.prefix, "prefix", "p", "/", "key prefix to read")
	fs.StringVarP(&opts.file, "params", "f", "", "read parameters from a TOML, YAML or JSON file instead of SSM")
	fs.StringVarP(&opts.schema, "schema", "s", "", "schema declaration file")
	fs.StringVar(&opts.format, "format", "toml", "output format for fetch: toml, yaml or json")
	fs.StringVarP(&opts.out, "out", "o", "", "write fetched parameters to this file")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	fs.DurationVar(&opts.interval, "interval", params.DefaultPollInterval, "poll interval for watch")

	fs.StringVar(&opts.ssm.Region, "region", os.Getenv("AWS_REGION"), "AWS region")
	fs.StringVar(&opts.ssm.Endpoint, "endpoint", os.Getenv("SSM_ENDPOINT"), "SSM endpoint override")
	fs.BoolVar(&opts.ssm.Recursive, "recursive", opts.ssm.Recursive, "fetch the whole hierarchy below the prefix")
	fs.BoolVar(&opts.ssm.WithDecryption, "decrypt", opts.ssm.WithDecryption, "decrypt SecureString values")
	fs.IntVar(&opts.ssm.MaxAttempts, "max-attempts", 0, "SDK retry attempts (0 keeps the default)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.file == "" {
		if path, ok := params.DiscoverFile(discoveryOptions(), nil); ok {
			opts.file = path
		}
	}
	return opts, nil
}

// discoveryOptions only consults PARAMCTL_PARAMS; a local file is never
// picked up implicitly from the working directory.
func discoveryOptions() params.FileDiscoveryOptions {
	d := params.DefaultDiscoveryOptions("paramctl")
	d.CLIFlag = ""
	d.UseCurrentDir = false
	d.UseXDG = false
	return d
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}

func newFetcher(ctx context.Context, opts *options) (params.Fetcher, error) {
	if opts.file != "" {
		return params.NewFileFetcher(opts.file), nil
	}
	return params.NewSSMFetcher(ctx, opts.ssm)
}

func loadSchema(opts *options) (*params.Schema, error) {
	if opts.schema == "" {
		return nil, errors.New("--schema is required")
	}
	return params.LoadSchemaFile(opts.schema)
}

func runFetch(ctx context.Context, opts *options, logger *zap.Logger, stdout io.Writer) (int, error) {
	fetcher, err := newFetcher(ctx, opts)
	if err != nil {
		return 2, err
	}
	list, err := fetcher.Fetch(ctx, opts.prefix)
	if err != nil {
		return 2, err
	}
	logger.Info("fetched parameters", zap.String("prefix", opts.prefix), zap.Int("count", len(list)))

	if opts.out != "" {
		if err := params.WriteParameters(opts.out, list); err != nil {
			return 2, err
		}
		color.New(color.FgGreen).Fprintf(stdout, "wrote %d parameters to %s\n", len(list), opts.out)
		return 0, nil
	}

	data, err := params.MarshalParameters(list, params.Format(opts.format))
	if err != nil {
		return 2, err
	}
	_, err = stdout.Write(data)
	return 0, err
}

func runCheck(ctx context.Context, opts *options, logger *zap.Logger, stdout io.Writer) (int, error) {
	schema, err := loadSchema(opts)
	if err != nil {
		return 2, err
	}
	fetcher, err := newFetcher(ctx, opts)
	if err != nil {
		return 2, err
	}

	loader, err := params.NewLoader().
		WithFetcher(fetcher).
		WithSchema(schema).
		WithPrefix(opts.prefix).
		WithLogger(logger).
		Build()
	if err != nil {
		return 2, err
	}

	result, err := loader.Load(ctx)
	if err != nil {
		return 2, err
	}
	if result.IsMissingFields() {
		printMissing(stdout, result.MissingFields())
		return exitMissing, nil
	}
	printValues(stdout, loader.Store().Prefix(), result.Values())
	return 0, nil
}

func runKeys(opts *options, stdout io.Writer) (int, error) {
	schema, err := loadSchema(opts)
	if err != nil {
		return 2, err
	}

	key := color.New(color.FgCyan).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	for _, info := range params.Describe(schema, opts.prefix) {
		var flags string
		switch {
		case info.HasDefault:
			flags = fmt.Sprintf("default=%v", info.Default)
		case info.Optional:
			flags = "optional"
		default:
			flags = "required"
		}
		fmt.Fprintf(stdout, "%s\t%s\t%s\n", key(info.Key), info.Kind, dim(flags))
	}
	return 0, nil
}

func runWatch(ctx context.Context, opts *options, logger *zap.Logger, stdout io.Writer) (int, error) {
	schema, err := loadSchema(opts)
	if err != nil {
		return 2, err
	}
	fetcher, err := newFetcher(ctx, opts)
	if err != nil {
		return 2, err
	}
	loader, err := params.NewLoader().
		WithFetcher(fetcher).
		WithSchema(schema).
		WithPrefix(opts.prefix).
		WithLogger(logger).
		Build()
	if err != nil {
		return 2, err
	}

	watchOpts := params.DefaultWatchOptions()
	watchOpts.PollInterval = opts.interval
	for update := range loader.Watch(ctx, watchOpts) {
		fmt.Fprintf(stdout, "--- %s\n", update.At.Format(time.RFC3339))
		var mf *params.MissingFields
		switch {
		case errors.As(update.Err, &mf):
			printMissing(stdout, mf)
		case update.Err != nil:
			color.New(color.FgRed).Fprintf(stdout, "fetch failed: %v\n", update.Err)
		default:
			printValues(stdout, loader.Store().Prefix(), update.Values)
		}
	}
	return 0, nil
}

func printMissing(w io.Writer, mf *params.MissingFields) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(w, "%d required field(s) missing\n", len(mf.Fields))
	for i, field := range mf.Fields {
		fmt.Fprintf(w, "  %s\t%s\n", field, mf.Keys[i])
	}
}

func printValues(w io.Writer, prefix string, values params.Values) {
	flat := values.Flatten(prefix)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	green := color.New(color.FgGreen).SprintFunc()
	for _, k := range keys {
		fmt.Fprintf(w, "%s = %s\n", k, green(fmt.Sprintf("%v", flat[k])))
	}
}

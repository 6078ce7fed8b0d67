package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/scipunch/rssreader/config"
	"github.com/scipunch/rssreader/fetcher"
	"github.com/scipunch/rssreader/filter"
	"github.com/scipunch/rssreader/reader"
	"github.com/scipunch/rssreader/render"
)

// usageError marks problems with the command line itself
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// optionalInt is an integer flag that remembers whether it was set
type optionalInt struct {
	value *int
}

func (o *optionalInt) String() string {
	if o.value == nil {
		return ""
	}
	return strconv.Itoa(*o.value)
}

func (o *optionalInt) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer %q", s)
	}
	o.value = &n
	return nil
}

// stringList collects a repeatable, comma separated flag
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(s string) error {
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*l = append(*l, v)
		}
	}
	return nil
}

type options struct {
	source      string
	cfgPath     string
	json        bool
	limit       optionalInt
	stripHTML   bool
	filters     stringList
	writeConfig bool
	set         map[string]bool // flags given on the command line
}

func main() {
	if os.Getenv("DEBUG") != "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	var uerr usageError
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	case errors.As(err, &uerr):
		fmt.Fprintf(os.Stderr, "rssreader: %s\n", err)
		os.Exit(2)
	default:
		log.Fatalf("rssreader: %s", err)
	}
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("rssreader", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Command-line RSS reader.\n\nUsage: rssreader [flags] <source> [flags]")
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.cfgPath, "config", config.DefaultPath(), "path to a TOML config")
	fs.BoolVar(&opts.json, "json", false, "print result as JSON in stdout")
	fs.Var(&opts.limit, "limit", "limit news topics if this parameter is provided")
	fs.BoolVar(&opts.stripHTML, "strip-html", false, "remove HTML markup from item descriptions")
	fs.Var(&opts.filters, "filter", "name of a configured filter to apply (repeatable)")
	fs.BoolVar(&opts.writeConfig, "write-config", false, "write the effective config to -config and exit")

	// Flags may follow the positional source
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return opts, err
			}
			return opts, usageError{err}
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if len(positional) > 1 {
		return opts, usageError{fmt.Errorf("expected a single source, got %d", len(positional))}
	}
	if len(positional) == 1 {
		opts.source = positional[0]
	}
	return opts, nil
}

func loadConfig(path string) (config.Config, error) {
	conf, err := config.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("config not found, using defaults", "path", path)
		return conf, nil
	}
	if err != nil {
		return conf, fmt.Errorf("failed to read config with %w", err)
	}
	return conf, nil
}

// merge applies command line options on top of the config file
func merge(conf config.Config, opts options) config.Config {
	if opts.source != "" {
		conf.Source = opts.source
	}
	if opts.set["json"] {
		conf.JSON = opts.json
	}
	if opts.set["strip-html"] {
		conf.StripHTML = opts.stripHTML
	}
	if opts.limit.value != nil {
		conf.Limit = opts.limit.value
	}
	if len(opts.filters) > 0 {
		conf.FilterNames = opts.filters
	}
	return conf
}

// newPipeline compiles the configured filters, or returns nil when none are enabled
func newPipeline(conf config.Config) (*filter.FilterPipeline, error) {
	if len(conf.FilterNames) == 0 {
		return nil, nil
	}
	pipeline, err := filter.NewFilterPipeline(conf.Filters)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize filters with %w", err)
	}
	var errs []error
	for _, name := range conf.FilterNames {
		if !pipeline.Has(name) {
			errs = append(errs, fmt.Errorf("unknown filter '%s'", name))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid filters: %w", errors.Join(errs...))
	}
	return pipeline, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	conf, err := loadConfig(opts.cfgPath)
	if err != nil {
		return err
	}
	conf = merge(conf, opts)
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if opts.writeConfig {
		return config.Write(opts.cfgPath, conf)
	}

	if conf.Source == "" {
		return usageError{errors.New("a feed source is required")}
	}

	pipeline, err := newPipeline(conf)
	if err != nil {
		return err
	}

	timeout, err := conf.HTTPTimeout()
	if err != nil {
		return err
	}
	f, location, err := fetcher.GetFetcher(conf.Source, fetcher.Options{
		UserAgent: conf.UserAgent,
		Timeout:   timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize fetcher with %w", err)
	}

	doc, err := f.Fetch(ctx, location)
	if err != nil {
		return err
	}
	slog.Debug("fetched feed", "source", conf.Source, "entries", len(doc.Entries))

	if pipeline != nil {
		doc.Entries = pipeline.Apply(doc.Entries, conf.FilterNames)
		slog.Debug("applied filters", "filters", conf.FilterNames, "entries", len(doc.Entries))
	}

	channel, items := reader.Normalize(doc, conf.Limit)
	if conf.StripHTML {
		reader.StripHTML(items)
	}

	format := render.TextFormat
	if conf.JSON {
		format = render.JSONFormat
	}
	r, err := render.Get(format)
	if err != nil {
		return err
	}
	return r.Render(stdout, channel, items)
}

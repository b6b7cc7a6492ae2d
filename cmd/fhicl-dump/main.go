// Command fhicl-dump reads an FHiCL document, resolves its #include
// directives through a configurable lookup policy, and writes the
// resulting parameter set back out as an indented (optionally
// source-annotated) document or as JSON.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/marcmengel/fhicl-cpp/internal/fcl"
	"github.com/marcmengel/fhicl-cpp/internal/i18n"
	"github.com/marcmengel/fhicl-cpp/pathresolver"
	"github.com/marcmengel/fhicl-cpp/pset"
)

const (
	exitOK             = 0
	exitHelpShown      = 1
	exitProcessing     = 2
	exitConfig         = 3
	exitParse          = 4
	exitUnknown        = 5
	defaultLookupEnv   = "FHICL_FILE_PATH"
	defaultLookupPolicy = int(pathresolver.CodeEnvLookup)
)

func main() {
	setupLogging()
	os.Exit(run())
}

func setupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func run() int {
	cmd, opts := newRootCommand()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("received interrupt, shutting down")
		cancel()
	}()

	err := cmd.ExecuteContext(ctx)
	if opts.helpRequested {
		return exitHelpShown
	}
	if err != nil {
		if !opts.ranRunE {
			// Cobra rejected the command line itself (e.g. a non-numeric
			// -l value) before RunE ever ran, the same stage boost's
			// program_options occupies in the original tool.
			return exitProcessing
		}
		return exitCodeFor(err)
	}
	return exitOK
}

type rootOptions struct {
	configPath     string
	outputPath     string
	annotate       bool
	prefixAnnotate bool
	quiet          bool
	lookupPolicy   int
	lookupPath     string
	watch          bool
	jsonOutput     bool
	lang           string
	helpRequested  bool
	ranRunE        bool
}

func newRootCommand() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{lookupPolicy: defaultLookupPolicy, lookupPath: defaultLookupEnv}

	cmd := &cobra.Command{
		Use:   "fhicl-dump",
		Short: "Parse and re-emit an FHiCL configuration document",
		Long: `fhicl-dump reads an FHiCL document, expands its #include directives
through a configurable path-lookup policy, and writes the resulting
parameter set back out either as an indented document (optionally
annotated with the source file/line of each binding) or as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ranRunE = true
			if err := validateFlags(opts); err != nil {
				return err
			}
			if opts.configPath == "" {
				opts.helpRequested = true
				return cmd.Help()
			}
			return runDump(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "FHiCL document to read")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "write output here instead of stdout")
	cmd.Flags().BoolVarP(&opts.annotate, "annotate", "a", false, "append '# file:line' to each binding")
	cmd.Flags().BoolVar(&opts.prefixAnnotate, "prefix-annotate", false, "precede each binding with its own '# file:line' comment line")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress informational logging")
	cmd.Flags().IntVarP(&opts.lookupPolicy, "lookup-policy", "l", defaultLookupPolicy, "#include lookup policy: 0=identity 1=env-search 2=non-absolute-only 3=search-after-first")
	cmd.Flags().StringVarP(&opts.lookupPath, "lookup-path", "p", defaultLookupEnv, "environment variable holding the #include search path")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "re-run the dump whenever the config file changes")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "emit JSON instead of an indented document")
	cmd.Flags().StringVar(&opts.lang, "lang", "en", "message language for validation diagnostics: en or ja")

	return cmd, opts
}

func runDump(ctx context.Context, opts *rootOptions) error {
	i18n.SetLanguage(opts.lang)
	runID := uuidNew()
	logger := log.With().Str("run_id", runID).Str("config", opts.configPath).Logger()
	if !opts.quiet {
		logger.Info().Msg("starting dump")
	}

	policy, err := pathresolver.New(pathresolver.Code(opts.lookupPolicy), opts.lookupPath)
	if err != nil {
		return &configError{err}
	}

	dumpOnce := func() error {
		ps, err := pset.MakeFromFile(opts.configPath, policy.Resolve)
		if err != nil {
			return err
		}
		out, err := renderOutput(ps, opts)
		if err != nil {
			return err
		}
		if err := writeOutput(opts.outputPath, out); err != nil {
			return &configError{err}
		}
		return nil
	}

	if err := dumpOnce(); err != nil {
		logger.Error().Err(err).Msg("dump failed")
		return err
	}
	if !opts.quiet {
		logger.Info().Msg("dump complete")
	}

	if !opts.watch {
		return nil
	}
	return watchAndRedump(ctx, opts, logger, dumpOnce)
}

func watchAndRedump(ctx context.Context, opts *rootOptions, logger zerolog.Logger, dumpOnce func() error) error {
	w, err := pathresolver.NewWatcher(opts.configPath)
	if err != nil {
		return &configError{err}
	}
	defer w.Close()

	stop := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(stop)
	}()

	w.Run(stop,
		func(file string) {
			logger.Info().Str("file", file).Msg("config changed, re-dumping")
			if err := dumpOnce(); err != nil {
				logger.Error().Err(err).Msg("re-dump failed")
			}
		},
		func(err error) {
			logger.Warn().Err(err).Msg("watch error")
		},
	)
	return nil
}

// validateFlags rejects combinations that would otherwise leave one flag
// silently overriding another: --annotate and --prefix-annotate together,
// or --quiet alongside either, exactly as the original tool's
// process_arguments does.
func validateFlags(opts *rootOptions) error {
	if opts.quiet && (opts.annotate || opts.prefixAnnotate) {
		return &configError{errors.New("cannot specify both --quiet and --annotate/--prefix-annotate")}
	}
	if opts.annotate && opts.prefixAnnotate {
		return &configError{errors.New("cannot specify both --annotate and --prefix-annotate")}
	}
	return nil
}

func renderOutput(ps pset.ParameterSet, opts *rootOptions) ([]byte, error) {
	if opts.jsonOutput {
		return marshalJSON(ps)
	}
	mode := pset.PrintRaw
	switch {
	case opts.prefixAnnotate:
		mode = pset.PrintPrefixAnnotated
	case opts.annotate:
		mode = pset.PrintAnnotated
	}
	return []byte(ps.ToIndentedString(0, mode)), nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	switch {
	case isConfigError(err):
		return exitConfig
	case isParseError(err):
		return exitParse
	default:
		return exitUnknown
	}
}

func isConfigError(err error) bool {
	_, ok := err.(*configError)
	return ok
}

func isParseError(err error) bool {
	switch err.(type) {
	case *pset.ParseError, *fcl.LexError, *fcl.ParseError:
		return true
	default:
		return false
	}
}

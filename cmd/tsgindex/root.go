package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/tsgindex/internal/config"
	"github.com/dusk-indust/tsgindex/internal/export"
	"github.com/dusk-indust/tsgindex/internal/indexer"
	"github.com/dusk-indust/tsgindex/internal/store"
	"github.com/dusk-indust/tsgindex/internal/tsggen"
)

// indexFlags are the command-line overrides for config.Config.
type indexFlags struct {
	configPath      string
	format          string
	output          string
	verbose         bool
	generateTSG     bool
	forceOverwrite  bool
	tsgRoot         string
	exclude         []string
	workers         int
	continueOnError bool
	dbPath          string
	logLevel        string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags indexFlags

	cmd := &cobra.Command{
		Use:   "tsgindex <path>",
		Short: "Build a stack graph from a source tree",
		Long: `tsgindex walks a file or directory, parses every file in a known language
and builds a stack graph of its definitions, imports and references.

Examples:
  tsgindex ./src                         # JSON summary on stdout
  tsgindex ./src --format dot -o g.dot   # DOT graph to a file
  tsgindex ./src --generate-tsg          # also write rule skeletons
  tsgindex ./src --db .tsgindex/graph    # persist to KuzuDB

A bare path naming a subcommand runs that subcommand. To index a directory
called languages (the default --tsg-root), write it as ./languages.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &flags, args[0])
			if err != nil {
				return err
			}
			return runIndex(cmd, cfg, newLogger(stderr, cfg.Level()))
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "config file (default: tsgindex.yml in the working directory)")
	f.StringVarP(&flags.format, "format", "f", "json", "output format: json, dot or mermaid")
	f.StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "log progress")
	f.BoolVar(&flags.generateTSG, "generate-tsg", false, "write rule skeletons for detected languages without curated rules")
	f.BoolVar(&flags.forceOverwrite, "force-overwrite", false, "replace existing rule skeletons")
	f.StringVar(&flags.tsgRoot, "tsg-root", tsggen.DefaultRoot, "directory for generated rule skeletons")
	f.StringSliceVar(&flags.exclude, "exclude", nil, "glob of relative paths to leave out (repeatable)")
	f.IntVarP(&flags.workers, "workers", "j", 1, "files to read and parse in parallel")
	f.BoolVar(&flags.continueOnError, "continue-on-error", false, "record unreadable or unparseable files and keep going")
	f.StringVar(&flags.dbPath, "db", "", "persist the graph to a KuzuDB database at this path")
	f.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(
		newGenerateCmd(stderr),
		newLanguagesCmd(),
		newServeCmd(stderr),
		newQueryCmd(),
	)
	return cmd
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command, flags *indexFlags, path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, err
	}

	cfg.Path = path
	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.Format = flags.format
	}
	if changed("output") {
		cfg.Output = flags.output
	}
	if changed("verbose") {
		cfg.Verbose = flags.verbose
	}
	if changed("generate-tsg") {
		cfg.GenerateTSG = flags.generateTSG
	}
	if changed("force-overwrite") {
		cfg.ForceOverwrite = flags.forceOverwrite
	}
	if changed("tsg-root") {
		cfg.TSGRoot = flags.tsgRoot
	}
	if changed("exclude") {
		cfg.Exclude = flags.exclude
	}
	if changed("workers") {
		cfg.Workers = flags.workers
	}
	if changed("continue-on-error") {
		cfg.ContinueOnError = flags.continueOnError
	}
	if changed("db") {
		cfg.DBPath = flags.dbPath
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	return cfg, cfg.Validate()
}

func runIndex(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	ctx := cmd.Context()

	if _, err := os.Stat(cfg.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", indexer.ErrPathNotFound, cfg.Path)
		}
		return err
	}

	format, ok := export.ParseFormat(cfg.Format)
	if !ok {
		logger.Warn("unknown output format, using json", "format", cfg.Format)
	}

	ix, err := indexer.New(indexer.Options{
		Exclude:         cfg.Exclude,
		Workers:         cfg.Workers,
		ContinueOnError: cfg.ContinueOnError,
	}, logger)
	if err != nil {
		return err
	}

	if cfg.GenerateTSG {
		langs, err := ix.Languages(cfg.Path)
		if err != nil {
			return err
		}
		tsggen.New(cfg.TSGRoot, cfg.ForceOverwrite, logger).GenerateAll(langs)
	}

	res, err := ix.Index(ctx, cfg.Path)
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		err = export.Render(cmd.OutOrStdout(), format, res.Graph)
	} else {
		err = export.Write(cfg.Output, format, res.Graph)
	}
	if err != nil {
		return err
	}

	if cfg.DBPath != "" {
		if err := persist(cmd, cfg.DBPath, res); err != nil {
			return err
		}
		logger.Info("index.persisted", "db", cfg.DBPath)
	}
	return nil
}

func persist(cmd *cobra.Command, dbPath string, res *indexer.Result) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", dbPath, err)
	}
	if err := store.Persist(cmd.Context(), db, res.Graph); err != nil {
		db.Close()
		return err
	}
	return db.Close()
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/CTAG07/Sundew/pkg/pipeline"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// app carries state shared by every command once the config is loaded.
type app struct {
	configPath string
	config     *Config
	logger     *slog.Logger
	stdout     io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(stdout io.Writer) *cobra.Command {
	a := &app{stdout: stdout}

	root := &cobra.Command{
		Use:           "sundew",
		Short:         "Generate text from a second-order Markov chain",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "./sundew.json", "Path to the JSON config file")

	root.AddCommand(
		a.generateCommand(),
		a.ingestCommand(),
		a.statsCommand(),
	)
	return root
}

func (a *app) load() error {
	config, err := LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.config = config
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)}))
	return nil
}

func (a *app) generateCommand() *cobra.Command {
	var (
		maxWords    int
		samples     int
		parallelism int
		seed        uint64
		output      string
		corpus      string
		record      bool
	)

	cmd := &cobra.Command{
		Use:   "generate [input]",
		Short: "Build a chain from the input text and print generated samples",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config
			if len(args) == 1 {
				cfg.InputPath = args[0]
			}
			flags := cmd.Flags()
			if flags.Changed("max-words") {
				cfg.MaxWords = maxWords
			}
			if flags.Changed("samples") {
				cfg.Samples = samples
			}
			if flags.Changed("parallelism") {
				cfg.Parallelism = parallelism
			}
			if flags.Changed("seed") {
				cfg.Seed = &seed
			}
			if flags.Changed("output") {
				cfg.OutputPath = output
			}
			if flags.Changed("corpus") {
				cfg.Corpus = corpus
			}
			if flags.Changed("record") {
				cfg.RecordOutput = record
			}
			return a.runGenerate(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&maxWords, "max-words", 0, "Stop each sample after this many words (0 = until the chain dead-ends)")
	flags.IntVarP(&samples, "samples", "n", 1, "Number of samples to generate (at least 1)")
	flags.IntVar(&parallelism, "parallelism", 4, "Maximum samples generated concurrently")
	flags.Uint64Var(&seed, "seed", 0, "Seed for reproducible output; samples are printed in the same order at any parallelism")
	flags.StringVarP(&output, "output", "o", "", "Also write samples to this file")
	flags.StringVar(&corpus, "corpus", "", "Read training text from this corpus in the database instead of a file")
	flags.BoolVar(&record, "record", false, "Record generated samples in the database")
	return cmd
}

func (a *app) runGenerate(ctx context.Context, cfg *Config) error {
	var (
		source pipeline.Source = pipeline.FileSource{Path: cfg.InputPath}
		sinks                  = pipeline.MultiSink{pipeline.NewWriterSink(a.stdout)}
	)

	if cfg.OutputPath != "" {
		sinks = append(sinks, pipeline.NewFileSink(cfg.OutputPath))
	}

	if cfg.Corpus != "" || cfg.RecordOutput {
		db, store, err := a.openStore()
		if err != nil {
			return err
		}
		defer func() {
			store.Close()
			_ = db.Close()
		}()

		corpusName := cfg.Corpus
		if corpusName != "" {
			source = pipeline.CorpusSource{Store: store, Corpus: corpusName}
		} else {
			corpusName = filepath.Base(cfg.InputPath)
		}
		if cfg.RecordOutput {
			sinks = append(sinks, pipeline.SampleSink{Store: store, Corpus: corpusName})
		}
	}

	p := pipeline.New(source, sinks, pipeline.Options{
		MaxWords:    cfg.MaxWords,
		Parallelism: cfg.Parallelism,
		Seed:        cfg.Seed,
	})
	p.SetLogger(a.logger)

	_, err := p.RunN(ctx, cfg.Samples)
	return err
}

func (a *app) ingestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <corpus> <file>...",
		Short: "Store text files as documents of a named corpus",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, store, err := a.openStore()
			if err != nil {
				return err
			}
			defer func() {
				store.Close()
				_ = db.Close()
			}()

			corpus := args[0]
			for _, path := range args[1:] {
				text, err := pipeline.FileSource{Path: path}.ReadText(ctx)
				if err != nil {
					return err
				}
				if err = store.AddDocument(ctx, corpus, text); err != nil {
					return err
				}
			}
			n, err := store.DocumentCount(ctx, corpus)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.stdout, "corpus %q now holds %d documents\n", corpus, n)
			return err
		},
	}
}

func (a *app) statsCommand() *cobra.Command {
	var corpus string

	cmd := &cobra.Command{
		Use:   "stats [input]",
		Short: "Print statistics for the chain built from the input text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var source pipeline.Source = pipeline.FileSource{Path: a.config.InputPath}
			if len(args) == 1 {
				source = pipeline.FileSource{Path: args[0]}
			}

			if corpus != "" {
				db, store, err := a.openStore()
				if err != nil {
					return err
				}
				defer func() {
					store.Close()
					_ = db.Close()
				}()
				source = pipeline.CorpusSource{Store: store, Corpus: corpus}
			}

			p := pipeline.New(source, nil, pipeline.Options{})
			p.SetLogger(a.logger)
			chain, err := p.Build(ctx)
			if err != nil {
				return err
			}

			stats := chain.Stats()
			lines := []string{
				fmt.Sprintf("keys: %d", stats.Keys),
				fmt.Sprintf("transitions: %d", stats.Transitions),
				fmt.Sprintf("unique_transitions: %d", stats.UniqueTransitions),
				fmt.Sprintf("vocabulary: %d", stats.Vocabulary),
				fmt.Sprintf("max_branching: %d", stats.MaxBranching),
			}
			_, err = fmt.Fprintln(a.stdout, strings.Join(lines, "\n"))
			return err
		},
	}
	cmd.Flags().StringVar(&corpus, "corpus", "", "Read training text from this corpus in the database instead of a file")
	return cmd
}

// openStore opens the configured database and prepares the corpus store.
func (a *app) openStore() (*sql.DB, *pipeline.Store, error) {
	path := a.config.DatabasePath
	if dir := filepath.Dir(strings.SplitN(path, "?", 2)[0]); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := initDB(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err = pipeline.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to setup corpus schema: %w", err)
	}
	store, err := pipeline.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to prepare corpus store: %w", err)
	}
	store.SetLogger(a.logger)
	return db, store, nil
}

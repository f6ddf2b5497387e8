package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"spool/internal/config"
	"spool/internal/dataset"
	"spool/internal/deps"
	"spool/internal/journal"
	"spool/internal/logging"
	"spool/internal/notifications"
	"spool/internal/pipeline"
	"spool/internal/preflight"
	"spool/internal/records"
	"spool/internal/services/gemini"
	"spool/internal/services/ytdlp"
)

func newRunCommand(cctx *commandContext) *cobra.Command {
	var listFlag string
	var analysisFlag string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process the work list end to end",
		Long: "Run resolves every reference on the work list, skips items already in the\n" +
			"dataset, downloads the rest, submits them for analysis, and appends the\n" +
			"validated records. Per-item failures are reported at the end without\n" +
			"stopping the run.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			if list := strings.TrimSpace(listFlag); list != "" {
				expanded, err := config.ExpandPath(list)
				if err != nil {
					return fmt.Errorf("resolve work list path: %w", err)
				}
				cfg.Worklist.Path = expanded
			}
			kind := cfg.Analysis.Kind
			if analysis := strings.TrimSpace(analysisFlag); analysis != "" {
				kind = analysis
			}
			schema, err := records.ForKind(kind)
			if err != nil {
				return err
			}
			return runBatch(cmd, cfg, schema)
		},
	}

	cmd.Flags().StringVarP(&listFlag, "list", "l", "", "Work-list file (overrides worklist.path)")
	cmd.Flags().StringVarP(&analysisFlag, "analysis", "a", "", "Analysis kind: script or segments (overrides analysis.kind)")
	return cmd
}

func runBatch(cmd *cobra.Command, cfg *config.Config, schema records.Schema) error {
	if missing := deps.Missing(preflight.CheckTools(cfg)); len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s (run 'spool doctor')", strings.Join(missing, ", "))
	}

	runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	datasetPath, err := cfg.DatasetPath(schema.Name)
	if err != nil {
		return err
	}
	store, err := dataset.Open(datasetPath, schema)
	if err != nil {
		return err
	}
	defer store.Close()

	jrnl, err := journal.Open(cfg.Paths.JournalPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer jrnl.Close()

	generator, err := gemini.NewClient(runCtx, gemini.Config{
		APIKey:                cfg.Gemini.APIKey,
		Model:                 cfg.Gemini.Model,
		RequestTimeoutSeconds: cfg.Gemini.RequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("init generation client: %w", err)
	}
	defer generator.Close()

	fetcher, err := ytdlp.New(cfg.Fetch.Binary, cfg.Fetch.ResolveTimeout, cfg.Fetch.DownloadTimeout)
	if err != nil {
		return fmt.Errorf("init fetch client: %w", err)
	}

	p, err := pipeline.New(cfg, schema, pipeline.Deps{
		Fetcher:   fetcher,
		Generator: generator,
		Dataset:   store,
		Journal:   jrnl,
		Notifier:  notifications.NewService(cfg),
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	summary, runErr := p.Run(runCtx)
	if summary != nil {
		printRunSummary(cmd.OutOrStdout(), summary)
	}
	return runErr
}

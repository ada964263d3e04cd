package console

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/pdf2ai/internal/config"
	"alfredoptarigan/pdf2ai/internal/logger"
	"alfredoptarigan/pdf2ai/internal/services"
)

const appName = "pdf2ai"

// Actual version can be specified in build command.
var version = "dev"

// config key for every persistent flag
var flagBindings = map[string]string{
	"log.debug":      "debug",
	"log.json":       "json",
	"model.provider": "provider",
	"model.name":     "model",
	"model.endpoint": "endpoint",
}

// NewRootCommand builds the pdf2ai command tree. Without a sub-command it
// starts the interactive menu.
func NewRootCommand() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:          appName,
		Short:        "pdf2ai summarizes PDFs and compares CVs with job adverts using a local language model",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := buildApp(cmd, v)
			if err != nil {
				return err
			}
			defer cleanup()

			return app.RunMenu(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")
	flags.String("provider", config.ProviderOllama, "model provider: ollama or gemini")
	flags.String("model", "", "model name (default gemma3 for ollama)")
	flags.String("endpoint", "", "ollama endpoint (default http://localhost:11434)")

	for key, name := range flagBindings {
		// BindPFlag only fails for a nil flag
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		newSummarizeCommand(v),
		newCompareCommand(v),
		newVersionCommand(),
	)

	return root
}

func newSummarizeCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <file.pdf>",
		Short: "Summarize a PDF document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ValidatePDFPath(args[0])
			if err != nil {
				return err
			}

			app, cleanup, err := buildApp(cmd, v)
			if err != nil {
				return err
			}
			defer cleanup()

			return app.Summarize(cmd.Context(), path)
		},
	}
}

func newCompareCommand(v *viper.Viper) *cobra.Command {
	var jobFile string

	cmd := &cobra.Command{
		Use:   "compare <cv.pdf>",
		Short: "Compare a CV with a job advert",
		Long:  "Compare a CV with a job advert. The advert is read from --job-file, or pasted on stdin when the flag is not set.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ValidatePDFPath(args[0])
			if err != nil {
				return err
			}

			app, cleanup, err := buildApp(cmd, v)
			if err != nil {
				return err
			}
			defer cleanup()

			return app.Compare(cmd.Context(), path, func() (string, error) {
				if jobFile == "" {
					return app.readJobAdvert()
				}
				return readJobFile(jobFile)
			})
		},
	}

	cmd.Flags().StringVarP(&jobFile, "job-file", "f", "", "file containing the job advert text")

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", appName, version)
		},
	}
}

func readJobFile(jobFile string) (string, error) {
	path, err := expandHome(strings.TrimSpace(jobFile))
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading job advert file: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

func buildApp(cmd *cobra.Command, v *viper.Viper) (*App, func(), error) {
	cfg := config.LoadFrom(v)

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}
	cleanup := func() { _ = log.Sync() }

	if cfg.Model.Provider == config.ProviderGemini && cmd.Flags().Changed("model") {
		cfg.Model.GeminiModel = cfg.Model.Name
	}

	log.Debug("starting pdf2ai",
		zap.String("version", version),
		zap.Bool("env_file", cfg.EnvFileLoaded),
		zap.String(logger.FieldProvider, cfg.Model.Provider),
	)

	invoker, err := services.NewModelInvoker(cmd.Context(), cfg.Model, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	pdfParser := services.NewPDFParserService(log)

	app := NewApp(
		services.NewSummarizerService(pdfParser, invoker, log),
		services.NewComparatorService(pdfParser, invoker, log),
		log,
		cmd.InOrStdin(),
		cmd.OutOrStdout(),
	)

	return app, cleanup, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"quotechat/pkg/api"
	"quotechat/pkg/chat"
	"quotechat/pkg/config"
	"quotechat/pkg/export"
	"quotechat/pkg/logging"
	"quotechat/pkg/ui"

	tea "charm.land/bubbletea/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type rootOptions struct {
	configPath string
	baseURL    string
	exportPath string
	plain      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "quotechat",
		Short: "Chat with the window quoting assistant",
		Long: `quotechat is a terminal client for the window quoting assistant.

Messages are sent to POST {base-url}/chat. Replies can carry a formatted
quotation, the detected intent and the assistant's thinking steps.
When stdin is not a terminal, or with --plain, one message is read per line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			initLogging(cfg)

			client, err := api.NewClient(cfg.BaseURL, time.Duration(cfg.APITimeoutSeconds)*time.Second)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			// A second signal gets the default behaviour back.
			context.AfterFunc(ctx, stop)

			var messages []chat.Message
			if opts.plain || !term.IsTerminal(int(os.Stdin.Fd())) {
				slog.Info("quotechat_start", "mode", "plain", "base_url", cfg.BaseURL)
				messages, err = runPlain(ctx, client, cmd.InOrStdin(), cmd.OutOrStdout())
			} else {
				slog.Info("quotechat_start", "mode", "tui", "base_url", cfg.BaseURL)
				messages, err = runTUI(ctx, client, cfg.BaseURL)
			}
			if err != nil {
				return err
			}
			if opts.exportPath == "" {
				return nil
			}
			return writeExport(cmd.OutOrStdout(), opts.exportPath, messages)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", config.GetConfigPath(), "Path to the config file")
	root.Flags().StringVar(&opts.baseURL, "base-url", "", "Assistant base URL (overrides config and "+config.EnvBaseURL+")")
	root.Flags().StringVar(&opts.exportPath, "export", "", "Write the transcript as HTML to this path on exit")
	root.Flags().BoolVar(&opts.plain, "plain", false, "Use line mode even on a terminal")

	root.AddCommand(newMockServerCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

// loadConfig layers the config file, .env, environment and flags.
func loadConfig(opts *rootOptions) (config.Config, error) {
	path, err := homedir.Expand(opts.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid config path: %w", err)
	}
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return config.Config{}, err
	}
	if v := strings.TrimSpace(opts.baseURL); v != "" {
		cfg.BaseURL = v
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

func initLogging(cfg config.Config) {
	if _, err := logging.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}
}

func runTUI(ctx context.Context, client api.Chatter, baseURL string) ([]chat.Message, error) {
	p := tea.NewProgram(ui.NewModel(ctx, client, baseURL))
	stopQuit := context.AfterFunc(ctx, p.Quit)
	defer stopQuit()
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running program: %w", err)
	}
	m, ok := finalModel.(ui.Model)
	if !ok {
		return nil, nil
	}
	return m.Messages(), nil
}

func writeExport(out io.Writer, exportPath string, messages []chat.Message) error {
	path, err := homedir.Expand(exportPath)
	if err != nil {
		return fmt.Errorf("invalid export path: %w", err)
	}
	if err := export.WriteFile(path, "", messages); err != nil {
		return err
	}
	slog.Info("transcript_exported", "path", path)
	fmt.Fprintf(out, "Transcript written to %s\n", path)
	return nil
}

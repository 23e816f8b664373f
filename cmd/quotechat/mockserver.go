package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"quotechat/pkg/config"
	"quotechat/pkg/mockserver"

	"github.com/spf13/cobra"
)

func newMockServerCmd(root *rootOptions) *cobra.Command {
	var addr, rulesFile string
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run a local assistant backend for development",
		Long: `mock-server answers POST /chat with keyword-tagged intents and
rule-priced window quotes. Rules are read from --rules, falling back to the
built-in set.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			initLogging(cfg)

			serverCfg := cfg.MockServer
			if v := strings.TrimSpace(addr); v != "" {
				serverCfg.Addr = v
			}
			if v := strings.TrimSpace(rulesFile); v != "" {
				serverCfg.RulesFile = v
			}

			srv, err := mockserver.New(serverCfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			context.AfterFunc(ctx, stop)

			fmt.Fprintf(cmd.OutOrStdout(), "mock server listening on %s\n", serverCfg.Addr)
			return srv.ListenAndServe(ctx, serverCfg.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config and "+config.EnvMockAddr+")")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "YAML rules file")
	return cmd
}

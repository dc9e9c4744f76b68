package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/confsched/app"
	"github.com/kilianp07/confsched/config"
	"github.com/kilianp07/confsched/infra/logger"
	"github.com/kilianp07/confsched/pkg/export"
)

var (
	cfgPath    string
	format     string
	outputPath string
)

var rootCmd = &cobra.Command{
	Use:           "confsched",
	Short:         "Render a conference schedule as a timetable grid",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRender,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.Flags().StringVarP(&format, "format", "f", "",
		fmt.Sprintf("output format (%s), overrides render.type", strings.Join(export.Formats(), "|")))
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write to file instead of stdout")
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logger.New("main").Errorf("%v", err)
	}
	return err
}

// newService loads the configuration and builds the service. The returned
// context is cancelled on SIGINT or SIGTERM.
func newService() (context.Context, context.CancelFunc, *app.Service, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		stop()
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		stop()
		return nil, nil, nil, err
	}
	return ctx, stop, svc, nil
}

func closeService(svc *app.Service) {
	if err := svc.Close(); err != nil {
		logger.New("main").Errorf("service close: %v", err)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, stop, svc, err := newService()
	if err != nil {
		return err
	}
	defer stop()
	defer closeService(svc)

	// Render fully before writing so a failed run leaves no partial document.
	var buf bytes.Buffer
	if err := svc.Render(ctx, &buf, format); err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), outputPath, buf.Bytes())
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

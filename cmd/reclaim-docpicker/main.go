package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reclaim/docpicker/internal/config"
	"github.com/reclaim/docpicker/internal/handlers"
	"github.com/reclaim/docpicker/internal/logging"
	"github.com/reclaim/docpicker/internal/manifest"
	"github.com/reclaim/docpicker/internal/messaging"
	"github.com/reclaim/docpicker/internal/picker"
	"github.com/reclaim/docpicker/internal/platform"
)

func init() {
	// The picker's UI loop runs on the main goroutine; keep it on the main thread
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reclaim-docpicker",
		Short: "Native messaging host that shows the system document picker",
		// Browsers pass the caller origin and, on Windows, --parent-window
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHost(cmd.Context())
		},
	}
	cmd.AddCommand(newManifestCmd())
	return cmd
}

func newManifestCmd() *cobra.Command {
	var (
		browser      string
		hostPath     string
		extensionIDs []string
	)

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the native messaging host manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if hostPath == "" {
				exe, err := os.Executable()
				if err != nil {
					return fmt.Errorf("failed to resolve executable path: %w", err)
				}
				hostPath = exe
			}

			m, err := manifest.Build(browser, hostPath, extensionIDs)
			if err != nil {
				return err
			}
			data, err := m.Marshal()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVar(&browser, "browser", "chrome", "target browser: chrome, chromium, edge, brave or firefox")
	cmd.Flags().StringVar(&hostPath, "path", "", "absolute path of the host binary (default: this executable)")
	cmd.Flags().StringSliceVar(&extensionIDs, "extension-id", nil, "extension allowed to connect (repeatable)")
	_ = cmd.MarkFlagRequired("extension-id")

	return cmd
}

func runHost(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, closer, err := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		Dir:        cfg.Log.Dir,
		FileName:   config.AppName + ".log",
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		// Keep serving without a log file; stderr is not ours to write
		log, closer = zap.NewNop(), io.NopCloser(nil)
	}
	defer closer.Close()
	defer log.Sync()

	log.Info("Native host started", zap.String("log_dir", cfg.Log.Dir))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	plat := platform.New(platform.Options{
		Prompt:     cfg.Picker.Prompt,
		ZenityPath: cfg.Picker.ZenityPath,
	})

	serve(ctx, cfg, os.Stdin, os.Stdout, plat, log)
	log.Info("Native host stopped")
	return nil
}

// serve runs the host until the input stream ends or ctx is cancelled.
// The UI loop runs on the calling goroutine; messages are read on another.
func serve(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, plat platform.Platform, log *zap.Logger) {
	loopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := picker.NewLoop()
	ch := messaging.NewChannel(out)
	ctrl := picker.NewController(loop, picker.NewNativePresenter(loopCtx, plat), ch, log)

	// Resolve anything still pending before the loop goes away
	shutdown := sync.OnceFunc(func() {
		ctrl.Close()
		cancel()
	})

	go func() {
		readMessages(in, cfg.MaxMessageSize, ctrl, ch, log)
		shutdown()
	}()
	go func() {
		select {
		case <-ctx.Done():
			log.Info("Shutting down", zap.Error(ctx.Err()))
			shutdown()
		case <-loopCtx.Done():
		}
	}()

	loop.Run(loopCtx)
}

func readMessages(in io.Reader, maxSize uint32, ctrl handlers.FilePicker, ch *messaging.Channel, log *zap.Logger) {
	for {
		msg, err := messaging.ReadMessageLimit(in, maxSize)
		if err == io.EOF {
			return
		}
		if err != nil {
			log.Error("Error reading message", zap.Error(err))
			return
		}

		log.Debug("Received message",
			zap.String("action", msg.Action),
			zap.String("callback_id", msg.CallbackID))

		resp := handlers.Handle(msg, ctrl)
		if resp == nil {
			continue
		}
		if err := ch.Send(*resp); err != nil {
			log.Error("Error writing response", zap.Error(err))
			return
		}
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/blackcoderx/pigeon/pkg/app"
	"github.com/blackcoderx/pigeon/pkg/global"
	"github.com/blackcoderx/pigeon/pkg/httpclient"
	"github.com/blackcoderx/pigeon/pkg/logging"
	"github.com/blackcoderx/pigeon/pkg/storage"
	"github.com/blackcoderx/pigeon/pkg/tui"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	requestName string
	rootCmd     = &cobra.Command{
		Use:   "pigeon",
		Short: "pigeon - a terminal client for API collections",
		Long: `pigeon keeps collections of HTTP requests and environments on disk
and lets you browse, edit and send them from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without the TUI nobody sees the debug buffer, so warnings also go to stderr.
			var stderr io.Writer
			if requestName != "" {
				stderr = cmd.ErrOrStderr()
			}
			buf, logger := newLogger(stderr)

			// Load .env file if it exists (optional, warn if malformed)
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				logger.Warn("failed to load .env file", "error", err)
			}

			gdir, err := globalDir()
			if err != nil {
				return err
			}
			state, err := global.Load(gdir)
			if err != nil {
				return err
			}

			// CLI Mode: send one saved request
			if requestName != "" {
				return runCLI(cmd.Context(), cmd.OutOrStdout(), logger, requestName)
			}

			a, err := app.NewBuilder().
				Logs(buf).
				Global(state).
				WorkDir(viper.GetString("work_dir")).
				GlobalDir(gdir).
				Logger(logger).
				Build()
			if err != nil {
				return err
			}
			return tui.Run(a, newHTTPClient())
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .pigeon/config.json)")
	flags.String("dir", "", "collection directory (default is .pigeon)")
	flags.String("global-dir", "", "directory holding global secrets (default is ~/.local/share/.carrier-pigeon)")
	flags.String("log-level", "", "debug, info, warn or error")
	_ = viper.BindPFlag("work_dir", flags.Lookup("dir"))
	_ = viper.BindPFlag("global_dir", flags.Lookup("global-dir"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))

	// CLI Flags
	rootCmd.Flags().StringVarP(&requestName, "request", "r", "", "Send a saved request and print the response")
}

func initConfig() {
	viper.SetDefault("work_dir", ".pigeon")
	viper.SetDefault("log_level", "debug")
	viper.SetDefault("http.timeout", 30*time.Second)
	viper.SetDefault("http.rate_limit", 5.0)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".pigeon")
		viper.SetConfigType("json")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("PIGEON")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// newLogger builds the process logger. Output goes to the in-memory buffer shown
// by the debug view so nothing is written over the terminal UI. When stderr is
// non-nil, warnings and errors are mirrored there as well.
func newLogger(stderr io.Writer) (*logging.RecordBuffer, *slog.Logger) {
	buf := logging.NewRecordBuffer()
	log.SetOutput(buf)
	log.SetFlags(0)

	level := logging.ParseLevel(viper.GetString("log_level"))
	if stderr == nil {
		return buf, logging.New(buf, level)
	}
	handler := logging.Tee(
		logging.NewHandler(buf, level),
		logging.NewWriterHandler(stderr, max(level, slog.LevelWarn)),
	)
	return buf, slog.New(handler)
}

func globalDir() (string, error) {
	if dir := viper.GetString("global_dir"); dir != "" {
		return dir, nil
	}
	return global.DefaultDir()
}

func newHTTPClient() *httpclient.Client {
	return httpclient.New(viper.GetDuration("http.timeout"), viper.GetFloat64("http.rate_limit"))
}

func openStore(logger *slog.Logger) *storage.Store {
	return storage.NewStore(viper.GetString("work_dir"), logger)
}

func runCLI(ctx context.Context, out io.Writer, logger *slog.Logger, name string) error {
	store := openStore(logger)
	if !store.Exists() {
		return fmt.Errorf("no collection at %s", store.Dir)
	}
	coll, err := store.Load()
	if err != nil {
		return err
	}

	req, ok := coll.RequestByName(name)
	if !ok {
		return fmt.Errorf("request '%s' not found", name)
	}

	resp, err := newHTTPClient().Execute(ctx, *req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	fmt.Fprintf(out, "%s (%dms)\n", resp.Status, resp.Duration.Milliseconds())
	for _, h := range resp.Headers {
		fmt.Fprintf(out, "%s: %s\n", h.Name, h.Value)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, tui.HighlightJSON(resp.Body, 100))
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

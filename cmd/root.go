package cmd

import (
	"io"
	"os"

	"github.com/josephlewis42/dmsh/core/config"
	"github.com/josephlewis42/dmsh/core/logger"
	"github.com/josephlewis42/dmsh/core/shell"
	"github.com/josephlewis42/dmsh/core/ttylog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	cfgPath    string
	recordPath string
	logPath    string
	colorMode  string

	// exitCode is the interpreter's exit code once the root command returns.
	exitCode int
)

func loadConfig(fs afero.Fs) (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(fs, cfgPath)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dmsh",
	Short: "A minimal interactive command interpreter",
	Long: `dmsh reads a line, splits it on whitespace and runs it, showing the
exit status of the last command in the prompt. Typing the name of a file or
directory alone opens it with a viewer program.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fs := afero.NewOsFs()
		cfg, err := loadConfig(fs)
		if err != nil {
			return err
		}
		if logPath != "" {
			cfg.AppLog = logPath
		}
		if colorMode != "" {
			cfg.Color = colorMode
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		exitCode, err = runShell(cmd, fs, cfg)
		return err
	},
}

func runShell(cmd *cobra.Command, fs afero.Fs, cfg *config.Configuration) (int, error) {
	var toClose listCloser

	appLog, logCloser, err := logger.New(fs, cfg.AppLog, cfg.LogLevel)
	if err != nil {
		return 1, err
	}
	toClose = append(toClose, logCloser)
	appLog = logger.NewSession(appLog)

	var (
		stdin  io.Reader = cmd.InOrStdin()
		stdout io.Writer = cmd.OutOrStdout()
		stderr io.Writer = cmd.ErrOrStderr()
	)
	interactive := isTerminalReader(stdin)

	if recordPath != "" {
		fd, err := fs.Create(recordPath)
		if err != nil {
			toClose.Close()
			return 1, err
		}
		toClose = append(toClose, fd)

		recorder := ttylog.NewRecorder(ttylog.NewAsciicastLogSink(fd), appLog)
		stdin = recorder.Reader(ttylog.FDStdin, stdin)
		stdout = recorder.Writer(ttylog.FDStdout, stdout)
		stderr = recorder.Writer(ttylog.FDStderr, stderr)
	}

	var reader shell.LineReader
	if interactive {
		reader, err = shell.NewTerminalReader(stdin, stdout, stderr)
		if err != nil {
			toClose.Close()
			return 1, err
		}
	} else {
		reader = shell.NewReader(stdin, stdout)
	}

	signals := shell.NewSignalObserver()
	defer signals.Stop()

	sh := shell.New(cfg, reader, signals, appLog)
	sh.Stdout = stdout
	sh.Stderr = stderr
	// Children share the shell's output so transcripts include what they
	// print. Input stays on the real stdin since the shell owns the reader.
	sh.Launcher = &shell.ExecLauncher{Stdout: stdout, Stderr: stderr}
	sh.Colorize = wantColor(cfg.Color)

	// The shell closes first so the terminal is restored before the log and
	// transcript are flushed.
	toClose = append(listCloser{sh}, toClose...)
	sh.Exit = func(code int) {
		appLog.Info("exit", zap.Int("code", code))
		appLog.Sync()
		toClose.Close()
		os.Exit(code)
	}

	appLog.Info("started", zap.Bool("interactive", interactive))
	code := sh.Run()
	appLog.Info("finished", zap.Int("code", code))
	appLog.Sync()

	return code, toClose.Close()
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && isTerminal(f)
}

func wantColor(mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitCode)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config.yaml or the directory holding it")
	rootCmd.Flags().StringVar(&recordPath, "record", "", "record the session to an asciicast file")
	rootCmd.Flags().StringVar(&logPath, "log", "", "append the JSON application log to this file")
	rootCmd.Flags().StringVar(&colorMode, "color", "", "colorize the prompt status (auto|always|never)")
}

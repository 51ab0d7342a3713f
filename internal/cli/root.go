// Package cli реализует командную строку taskmanager поверх сценариев учетных записей и задач.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"taskmanager/pkg/shutdown"
)

// Переменные окружения с учетными данными для команд task.
const (
	EnvUsername = "TASKS_USERNAME"
	EnvPassword = "TASKS_PASSWORD"
)

type options struct {
	configPath string
	output     string
	username   string
	password   string
}

// NewRootCmd создает корневую команду.
func NewRootCmd() *cobra.Command {
	opts := &options{output: FormatText}

	rootCmd := &cobra.Command{
		Use:   "taskmanager",
		Short: "Personal task manager",
		Long: `taskmanager keeps per-user task lists in PostgreSQL or SQLite.

Register an account once, then create, list, update and delete your tasks.
Storage, password hashing and caching are configured through TASKS_* environment
variables or a YAML file passed with --config.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case FormatText, FormatJSON:
				return nil
			default:
				return fmt.Errorf("unknown output format %q", opts.output)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML or .env configuration file")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", opts.output, "Output format: text, json")

	rootCmd.AddCommand(newMigrateCmd(opts))
	rootCmd.AddCommand(newRegisterCmd(opts))
	rootCmd.AddCommand(newLoginCmd(opts))
	rootCmd.AddCommand(newTaskCmd(opts))

	return rootCmd
}

// Run выполняет команду с аргументами args и возвращает код завершения.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	executed, err := cmd.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	format := FormatText
	if executed != nil {
		if flag := executed.Flag("output"); flag != nil {
			format = flag.Value.String()
		}
	}
	NewOutput(format, stdout, stderr).PrintError(describe(err))
	return 1
}

// Execute запускает корневую команду и завершает процесс с кодом 1 при ошибке.
func Execute() {
	ctx, stop := shutdown.NotifyContext(context.Background())
	code := Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func newOutput(cmd *cobra.Command, opts *options) *Output {
	return NewOutput(opts.output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

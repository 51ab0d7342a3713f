package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"taskmanager/internal/tasks/domain/entities"
	"taskmanager/internal/validate"
)

func newTaskCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Task management commands",
	}

	cmd.PersistentFlags().StringVar(&opts.username, "username", "", "Username (env: "+EnvUsername+")")
	cmd.PersistentFlags().StringVar(&opts.password, "password", "", "Password (env: "+EnvPassword+")")

	cmd.AddCommand(newTaskCreateCmd(opts))
	cmd.AddCommand(newTaskListCmd(opts))
	cmd.AddCommand(newTaskGetCmd(opts))
	cmd.AddCommand(newTaskStatusCmd(opts))
	cmd.AddCommand(newTaskDeleteCmd(opts))

	return cmd
}

// withOwner аутентифицирует пользователя и передает fn идентификатор владельца задач.
func withOwner(cmd *cobra.Command, opts *options, fn func(ctx context.Context, a *application, ownerID string) error) error {
	username, password := opts.username, opts.password
	if username == "" {
		username = os.Getenv(EnvUsername)
	}
	if password == "" {
		password = os.Getenv(EnvPassword)
	}
	if username == "" || password == "" {
		return ErrMissingCredentials
	}

	return withApp(cmd.Context(), opts.configPath, func(ctx context.Context, a *application) error {
		ref, err := authenticate(ctx, a, username, password)
		if err != nil {
			return err
		}
		return fn(ctx, a, ref.ID)
	})
}

func newTaskCreateCmd(opts *options) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.TaskTitle(title); err != nil {
				return err
			}

			return withOwner(cmd, opts, func(ctx context.Context, a *application, ownerID string) error {
				task, err := a.tasks.CreateTask(ctx, ownerID, title, description)
				if err != nil {
					return err
				}
				newOutput(cmd, opts).Print(task)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskListCmd(opts *options) *cobra.Command {
	var status, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var statusArg, searchArg *string
			if cmd.Flags().Changed("status") {
				statusArg = &status
			}
			if cmd.Flags().Changed("search") {
				searchArg = &search
			}

			filter, err := validate.TaskFilter(statusArg, searchArg)
			if err != nil {
				return err
			}

			return withOwner(cmd, opts, func(ctx context.Context, a *application, ownerID string) error {
				tasks, err := entities.CollectTasks(a.tasks.GetTasks(ctx, ownerID, filter))
				if err != nil {
					return err
				}
				newOutput(cmd, opts).Print(tasks)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only tasks in this status: OPEN, IN_PROGRESS, DONE")
	cmd.Flags().StringVar(&search, "search", "", "Only tasks whose title or description contains this text")

	return cmd
}

func newTaskGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOwner(cmd, opts, func(ctx context.Context, a *application, ownerID string) error {
				task, err := a.tasks.GetTaskByID(ctx, ownerID, args[0])
				if err != nil {
					return err
				}
				newOutput(cmd, opts).Print(task)
				return nil
			})
		},
	}
}

func newTaskStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a task to another status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := entities.ParseStatus(args[1])
			if err != nil {
				return err
			}

			return withOwner(cmd, opts, func(ctx context.Context, a *application, ownerID string) error {
				task, err := a.tasks.UpdateTaskStatusByID(ctx, ownerID, args[0], status)
				if err != nil {
					return err
				}
				newOutput(cmd, opts).Print(task)
				return nil
			})
		},
	}
}

func newTaskDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOwner(cmd, opts, func(ctx context.Context, a *application, ownerID string) error {
				if err := a.tasks.DeleteTaskByID(ctx, ownerID, args[0]); err != nil {
					return err
				}
				newOutput(cmd, opts).PrintMessage("Deleted " + args[0])
				return nil
			})
		},
	}
}

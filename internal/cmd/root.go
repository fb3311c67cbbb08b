package cmd

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/infodancer/mailseed"
	"github.com/infodancer/mailseed/errors"
	"github.com/infodancer/mailseed/internal/config"
	"github.com/infodancer/mailseed/maildir"
	_ "github.com/infodancer/mailseed/passwd" // register passwd directory
	"github.com/infodancer/mailseed/pool"
)

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the mailseed command with its own configuration.
func NewRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "mailseed",
		Short: "Populate Maildir mailboxes with synthetic messages",
		Long: `mailseed reads a passwd-style users file and fills each user's
Maildir/new with randomly generated multipart messages, spreading the work
across a pool of workers.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	defaults := config.Default()
	flags := cmd.Flags()
	flags.Int("min-messages", defaults.MinMessages, "minimum messages per user (env MIN_MESSAGES)")
	flags.Int("max-messages", defaults.MaxMessages, "maximum messages per user (env MAX_MESSAGES)")
	flags.IntP("workers", "w", defaults.Workers, "worker count, 0 for one per CPU (env POPULATE_WORKERS)")
	flags.String("users-file", defaults.UsersFile, "passwd-style users file")
	flags.String("directory", defaults.Directory, "user directory type")
	flags.String("maildir-subdir", defaults.MaildirSubdir, "maildir below each home directory")
	flags.String("failure-policy", defaults.FailurePolicy, `"abort" on the first failed user or "continue"`)
	flags.Uint64("seed", defaults.Seed, "random seed for reproducible runs, 0 for random")
	flags.String("log-level", defaults.LogLevel, "log level")

	config.SetDefaults(v)
	for key, flag := range map[string]string{
		"min_messages":   "min-messages",
		"max_messages":   "max-messages",
		"workers":        "workers",
		"users_file":     "users-file",
		"directory":      "directory",
		"maildir_subdir": "maildir-subdir",
		"failure_policy": "failure-policy",
		"seed":           "seed",
		"log_level":      "log-level",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(cfg.Level())

	dir, err := mailseed.OpenDirectory(mailseed.DirectoryConfig{Type: cfg.Directory, Path: cfg.UsersFile})
	if err != nil {
		return fmt.Errorf("open %s directory: %w", cfg.Directory, err)
	}

	recipients, err := dir.Recipients(ctx)
	switch {
	case stderrors.Is(err, errors.ErrDirectoryNotFound):
		fmt.Fprintf(out, "ERROR: %s not found\n", cfg.UsersFile)
		return nil
	case err != nil:
		return err
	case len(recipients) == 0:
		fmt.Fprintln(out, "No users found.")
		return nil
	}

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	identity := maildir.CurrentIdentity()
	dispatcher, err := pool.New(pool.Config{
		Workers: cfg.Workers,
		Policy:  policy,
		Logger:  logger,
		NewWorker: func(worker int) (mailseed.Populator, error) {
			var seed uint64
			if cfg.Seed != 0 {
				seed = cfg.Seed + uint64(worker)
			}
			w, err := maildir.NewWriter(maildir.WriterConfig{
				MinMessages: cfg.MinMessages,
				MaxMessages: cfg.MaxMessages,
				Subdir:      cfg.MaildirSubdir,
				Identity:    identity,
				Seed:        seed,
				Logger:      logger.WithField("worker", worker),
			})
			if err != nil {
				return nil, err
			}
			return w, nil
		},
	})
	if err != nil {
		return err
	}

	printPlan(out, len(recipients), cfg, dispatcher.Workers())

	result, err := dispatcher.PopulateAll(ctx, recipients)
	printSummary(out, result)
	return err
}

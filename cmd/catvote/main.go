package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/catvote/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "catvote: %v\n", err)
		return 1
	}
	return 0
}

// rootFlags are shared by every command.
type rootFlags struct {
	opts   app.Options
	output string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "catvote",
		Short: "Vote on cats, browse breeds and keep favorites from the terminal",
		Long: `catvote is a terminal client for the cat voting backend.

Run without a subcommand to open the interactive UI. The subcommands expose
the same API calls for scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), flags.opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.opts.ConfigPath, "config", "", "config file (default: ~/.config/catvote/config.toml)")
	pf.StringVar(&flags.opts.PrefsPath, "prefs", "", "prefs file (default: ~/.config/catvote/prefs.toml)")
	pf.BoolVar(&flags.opts.Debug, "debug", false, "log at debug level")
	pf.BoolVar(&flags.opts.Pretty, "pretty", false, "human-readable logs on stderr for subcommands")
	pf.BoolVar(&flags.opts.Demo, "demo", false, "serve a built-in demo backend instead of api_base")
	pf.StringVarP(&flags.output, "output", "o", outputTable, "output format for subcommands (table, json)")

	cmd.AddCommand(catsCmd(flags))
	cmd.AddCommand(breedsCmd(flags))
	cmd.AddCommand(breedCmd(flags))
	cmd.AddCommand(voteCmd(flags))
	cmd.AddCommand(favoritesCmd(flags))
	return cmd
}

// withEnv runs fn with a configured environment that logs to stderr as well
// as the log file.
func withEnv(cmd *cobra.Command, flags *rootFlags, fn func(ctx context.Context, env *app.Env, out *printer) error) error {
	out, err := newPrinter(cmd.OutOrStdout(), flags.output)
	if err != nil {
		return err
	}
	env, err := app.Setup(flags.opts, flags.opts.Pretty)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()
	return fn(cmd.Context(), env, out)
}

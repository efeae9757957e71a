package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/swish/internal/client/config"
	"github.com/dmitrijs2005/swish/internal/common"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

const flagNoHistory = "no-history"

// session carries the App built for the running command.
type session struct {
	factory AppFactory
	app     *App
}

func (s *session) init(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	noHistory, err := cmd.Flags().GetBool(flagNoHistory)
	if err != nil {
		return err
	}
	s.app, err = s.factory(cfg, !noHistory, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return err
}

func (s *session) close() {
	if s.app != nil {
		_ = s.app.Close()
	}
}

func addUploadFlags(cmd *cobra.Command, f *UploadFlags) {
	fs := cmd.Flags()
	fs.StringVarP(&f.Password, "password", "p", "", "protect the transfer with a password")
	fs.StringVarP(&f.Message, "message", "m", "", "message shown to recipients")
	fs.IntVarP(&f.Downloads, "number-download", "n", 250, "maximum number of downloads (1-250)")
	fs.IntVarP(&f.Duration, "duration", "d", 30, "days before expiry (1, 7, 15 or 30)")
	fs.StringVar(&f.Email, "email", "", "author email")
	fs.StringSliceVar(&f.Recipients, "recipient", nil, "recipient email, may be repeated")
}

func newRootCommand(s *session) *cobra.Command {
	var (
		flags  UploadFlags
		output string
	)

	root := &cobra.Command{
		Use:   "swish [path|link]",
		Short: "Send and receive files through SwissTransfer",
		Long: `Upload a file or the files of a directory and print the share link,
or download every file behind a share link.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return s.app.Auto(cmd.Context(), args[0], flags, output)
		},
	}

	config.BindFlags(root.PersistentFlags())
	root.PersistentFlags().Bool(flagNoHistory, false, "do not record uploads in the local history")

	addUploadFlags(root, &flags)
	root.Flags().StringVarP(&output, "output", "o", ".", "directory downloaded files are written to")

	root.AddCommand(
		newUploadCommand(s),
		newDownloadCommand(s),
		newInfoCommand(s),
		newHistoryCommand(s),
	)
	return root
}

func newUploadCommand(s *session) *cobra.Command {
	var flags UploadFlags
	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a file or the files of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.app.Upload(cmd.Context(), args[0], flags)
		},
	}
	addUploadFlags(cmd, &flags)
	return cmd
}

func newDownloadCommand(s *session) *cobra.Command {
	var password, output string
	cmd := &cobra.Command{
		Use:   "download <link>",
		Short: "Download every file of a share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.app.Download(cmd.Context(), args[0], password, output)
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "transfer password")
	cmd.Flags().StringVarP(&output, "output", "o", ".", "destination directory")
	return cmd
}

func newInfoCommand(s *session) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "info <link>",
		Short: "Show the files behind a share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.app.Info(cmd.Context(), args[0], password)
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "transfer password")
	return cmd
}

func newHistoryCommand(s *session) *cobra.Command {
	var wipe bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous uploads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.app.History(cmd.Context(), wipe)
		},
	}
	cmd.Flags().BoolVar(&wipe, "clear", false, "delete all recorded uploads")
	return cmd
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return run(ctx, NewApp, args, stdout, stderr)
}

func run(ctx context.Context, factory AppFactory, args []string, stdout, stderr io.Writer) int {
	s := &session{factory: factory}
	defer s.close()

	root := newRootCommand(s)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "%s %s\n", color.Red.Sprint("Error:"), describe(err))
		return 1
	}
	return 0
}

// describe adds a hint to errors the user can act on.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrPasswordRequired):
		return err.Error() + " (use -p)"
	case errors.Is(err, common.ErrInvalidLink):
		return err.Error() + " (expected https://www.swisstransfer.com/d/<uuid>)"
	}
	return err.Error()
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/portfolio/internal/board"
)

func newCommentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Read and manage the comment board",
	}

	cmd.AddCommand(
		newCommentsListCmd(),
		newCommentsDeleteAllCmd(),
		newCommentsAddCmd(),
	)

	return cmd
}

func newCommentsListCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent comments",
		Long:  "List at most --count comments, newest first. The count defaults to default_count from the config file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("count") {
				count = getDefaultCount()
			}
			return runCommentsList(cmd, count)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", defaultCount, "number of comments to show")

	return cmd
}

func runCommentsList(cmd *cobra.Command, count int) error {
	out := cmd.OutOrStdout()

	var view board.View = board.NewTerminalView(out)
	if isJSON() {
		view = board.NewTerminalView(io.Discard)
	}

	b := board.New(newAPIClient(), view)
	if err := b.List(cmd.Context(), count); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(out, b.Comments())
	}
	return nil
}

func newCommentsDeleteAllCmd() *cobra.Command {
	var noWait bool

	cmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every comment",
		Long:  "Delete every comment on the server without confirmation, then reset the board.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommentsDeleteAll(cmd, noWait)
		},
	}

	cmd.Flags().BoolVar(&noWait, "no-wait", false, "reset the board without waiting for the delete to finish")

	return cmd
}

func runCommentsDeleteAll(cmd *cobra.Command, noWait bool) error {
	out := cmd.OutOrStdout()
	api := newAPIClient()

	if isJSON() {
		n, err := api.DeleteComments(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(out, map[string]int64{"deleted": n})
	}

	var opts []board.Option
	if noWait {
		opts = append(opts, board.WithFireAndForgetDelete())
	}
	b := board.New(api, board.NewTerminalView(out), opts...)
	err := b.DeleteAll(cmd.Context())
	// The process must not exit with the delete still in flight.
	b.Wait()
	return err
}

func newCommentsAddCmd() *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   "add <text>...",
		Short: "Post a comment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommentsAdd(cmd, author, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&author, "author", "a", "", "author name (default: Anonymous)")

	return cmd
}

func runCommentsAdd(cmd *cobra.Command, author, text string) error {
	c, err := newAPIClient().AddComment(cmd.Context(), author, text)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), c)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Comment #%d added by %s.\n  %s\n", c.ID, c.AuthorName, c.CommentText)
	return err
}

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(c *cli) *cobra.Command {
	var newSession bool
	cmd := &cobra.Command{
		Use:   "ask <message...>",
		Short: "Send one message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.rt == nil {
				return errNoRuntime
			}
			chat := c.rt.Services.Chat
			if newSession {
				chat.CreateSession("")
			}
			res, err := chat.SendMessageContext(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if res.Reply != nil {
				fmt.Fprintln(cmd.OutOrStdout(), res.Reply.Content)
			}
			if res.Error != "" {
				return errors.New(res.Error)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&newSession, "new", false, "start a new conversation first")
	return cmd
}

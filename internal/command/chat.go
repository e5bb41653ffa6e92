package command

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/adamavenir/murmur/internal/archive"
	"github.com/adamavenir/murmur/internal/chat"
	"github.com/adamavenir/murmur/internal/client"
)

// NewChatCmd creates the chat command.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [room]",
		Short: "Join a room and chat interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, _ := cmd.Flags().GetString("server")
			username, _ := cmd.Flags().GetString("user")
			roomID, _ := cmd.Flags().GetString("room")
			create, _ := cmd.Flags().GetBool("create")
			archiveDir, _ := cmd.Flags().GetString("archive")

			if len(args) > 0 {
				roomID = args[0]
			}
			if server == "" {
				server = os.Getenv("MURMUR_SERVER")
			}
			if username == "" {
				username = os.Getenv("MURMUR_USER")
			}

			if server == "" {
				return fmt.Errorf("no server set: pass --server or set MURMUR_SERVER")
			}
			if username = strings.TrimSpace(username); username == "" {
				return fmt.Errorf("no username set: pass --user or set MURMUR_USER")
			}
			if roomID = strings.TrimSpace(roomID); roomID == "" {
				return fmt.Errorf("no room set: pass --room or a room argument")
			}

			api, err := client.New(server)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			if create {
				if _, err := api.CreateRoom(ctx, roomID); err != nil {
					return fmt.Errorf("create room %s: %w", roomID, err)
				}
			} else if _, err := api.JoinRoom(ctx, roomID); err != nil {
				return fmt.Errorf("join room %s: %w", roomID, err)
			}

			var transcript *archive.Store
			if archiveDir != "" {
				transcript, err = archive.Open(archiveDir)
				if err != nil {
					return fmt.Errorf("open archive: %w", err)
				}
				defer transcript.Close()
			}

			return chat.Run(chat.Options{
				Client:   api,
				RoomID:   roomID,
				Username: username,
				Archive:  transcript,
			})
		},
	}

	cmd.Flags().String("server", "", "server base URL (default $MURMUR_SERVER)")
	cmd.Flags().String("user", "", "username to chat as (default $MURMUR_USER)")
	cmd.Flags().String("room", "", "room to join")
	cmd.Flags().Bool("create", false, "create the room before joining")
	cmd.Flags().String("archive", "", "directory for the local sqlite transcript")

	return cmd
}

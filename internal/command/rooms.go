package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/adamavenir/murmur/internal/archive"
	"github.com/adamavenir/murmur/internal/client"
)

// NewRoomsCmd creates the rooms command group.
func NewRoomsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Manage rooms",
	}
	cmd.AddCommand(newRoomsCreateCmd(), newRoomsLogCmd())
	return cmd
}

func newRoomsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <room>",
		Short: "Create a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, _ := cmd.Flags().GetString("server")
			if server == "" {
				server = os.Getenv("MURMUR_SERVER")
			}
			if server == "" {
				return fmt.Errorf("no server set: pass --server or set MURMUR_SERVER")
			}

			api, err := client.New(server)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			room, err := api.CreateRoom(ctx, args[0])
			if err != nil {
				return err
			}
			cmd.Printf("created room %s\n", room.RoomID)
			return nil
		},
	}
	cmd.Flags().String("server", "", "server base URL (default $MURMUR_SERVER)")
	return cmd
}

func newRoomsLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <room>",
		Short: "Print the archived transcript of a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("archive")
			if dir == "" {
				return fmt.Errorf("no archive directory set: pass --archive")
			}

			transcript, err := archive.Open(dir)
			if err != nil {
				return err
			}
			defer transcript.Close()

			messages, err := transcript.Messages(args[0])
			if err != nil {
				return err
			}
			for _, msg := range messages {
				ts := time.UnixMilli(msg.TimeStamp).Local().Format("2006-01-02 15:04")
				content := msg.Content
				if msg.DeletedForAll {
					content = "[deleted]"
				} else if content == "" && msg.ImageURL != "" {
					content = "📷 " + msg.ImageURL
				}
				cmd.Printf("%s  %-12s %s\n", ts, msg.Sender, content)
			}
			return nil
		},
	}
	cmd.Flags().String("archive", "", "directory for the local sqlite transcript")
	return cmd
}

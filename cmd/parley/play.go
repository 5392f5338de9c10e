package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"parley/internal/tui"
	"parley/pkg/gamemaster"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play an adventure interactively in the terminal",
	Long: `Starts an interactive adventure session on stdin/stdout.

Special commands: 'journal' reads back your journal, 'restart' returns to
the opening scene, 'quit' ends the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		app, err := newApp(cmd, cfg, logger)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		ctx := context.Background()

		sess, err := app.Sessions.Start(ctx, app.GameMaster.World().Start())
		if err != nil {
			return err
		}

		tui.PrintBanner()
		render := tui.NewRenderer()
		fmt.Print(render(app.GameMaster.Start(sess, name)))

		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				break
			}
			input := strings.TrimSpace(line)

			switch strings.ToLower(input) {
			case "":
				continue
			case "quit", "exit":
				fmt.Println("Farewell, traveler.")
				return nil
			case "journal":
				fmt.Print(render(gamemaster.JournalText(sess)))
				continue
			case "restart":
				fmt.Print(render(app.GameMaster.Restart(sess)))
			default:
				out := app.GameMaster.Apply(sess, input)
				fmt.Print(render(out.Text))
			}

			if err := app.Sessions.Save(ctx, sess.ID, sess); err != nil {
				logger.Warn("failed to persist session", "session_id", sess.ID, "err", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().String("name", "", "player name the narrator uses")
}

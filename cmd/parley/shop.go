package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"parley/internal/tui"
	"parley/pkg/catalog"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Run the shopping assistant interactively in the terminal",
	Long: `Starts an interactive shopping session on stdin/stdout.

Commands:
  search <words>       search the catalog (e.g. 'search phones')
  add [n] <reference>  add a product ('add 2 coffee mugs', 'add the first one')
  cart                 read back the cart
  clear                empty the cart
  order                place the order
  last                 read back the most recent order on record
  record               session summary
  quit                 end the session`,
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

		sess, err := app.Sessions.Start(ctx, "")
		if err != nil {
			return err
		}

		tui.PrintBanner()
		render := tui.NewRenderer()
		fmt.Print(render(app.Storefront.Start(sess, name)))

		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				break
			}
			input := strings.TrimSpace(line)
			if input == "" {
				continue
			}

			cmdWord, rest := splitCommand(input)
			var text string
			switch cmdWord {
			case "quit", "exit":
				fmt.Println("Thanks for stopping by.")
				return nil
			case "search":
				text = app.Storefront.Search(catalog.ParseFilters(map[string]any{"q": rest}))
			case "add":
				quantity, ref := leadingQuantity(rest)
				text = app.Storefront.AddToCart(sess, ref, quantity, "").Text
			case "cart":
				text = app.Storefront.CartText(sess)
			case "clear":
				text = app.Storefront.ClearCart(sess)
			case "order":
				text = app.Storefront.PlaceOrder(ctx, sess).Text
			case "last":
				text = app.Storefront.LastOrderText(ctx)
			case "record":
				text = app.Storefront.RecordText(sess)
			default:
				// Anything else reads as a product reference.
				text = app.Storefront.AddToCart(sess, input, 1, "").Text
			}
			fmt.Print(render(text))

			if err := app.Sessions.Save(ctx, sess.ID, sess); err != nil {
				logger.Warn("failed to persist session", "session_id", sess.ID, "err", err)
			}
		}
		return nil
	},
}

func splitCommand(input string) (string, string) {
	parts := strings.SplitN(input, " ", 2)
	cmd := strings.ToLower(parts[0])
	rest := ""
	if len(parts) > 1 {
		rest = strings.TrimSpace(parts[1])
	}
	return cmd, rest
}

// leadingQuantity peels an optional leading count off an add command, so
// 'add 2 coffee mugs' reads as quantity 2 of 'coffee mugs'.
func leadingQuantity(rest string) (int, string) {
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) == 2 {
		if n, err := strconv.Atoi(parts[0]); err == nil && n > 0 {
			return n, strings.TrimSpace(parts[1])
		}
	}
	return 1, rest
}

func init() {
	rootCmd.AddCommand(shopCmd)
	shopCmd.Flags().String("name", "", "customer name used in the greeting")
}

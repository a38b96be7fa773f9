package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rvasani/shopcopilot/internal/chat"
)

var askImage string

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send one message and print the reply",
	Long: `Send a single message to the Shopping Copilot backend and print the
reply together with any matched products.

The message may be omitted when an image is attached; the image alone is
enough to ask for recommendations.

Examples:
  shopcopilot ask "red sneakers under $50"
  shopcopilot ask "something like this" --image shoe.jpg
  shopcopilot ask --image shoe.jpg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askImage, "image", "i", "", "attach an image file")
}

func runAsk(cmd *cobra.Command, args []string) error {
	text := ""
	if len(args) > 0 {
		text = args[0]
	}

	sess := chat.NewSession(backend, logger)
	defer sess.Close()
	if authCtx != nil {
		sess.SetToken(authCtx.Token)
	}

	if askImage != "" {
		data, err := os.ReadFile(askImage)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		sess.Attachments().Select(filepath.Base(askImage), data)
	}

	rec, err := sess.Submit(cmd.Context(), text)
	if errors.Is(err, chat.ErrEmptySubmit) {
		return fmt.Errorf("nothing to send: pass a message or --image")
	}
	if err != nil {
		return err
	}

	fmt.Println(rec.Text)

	if cards := chat.RenderProducts(rec.Products); len(cards) > 0 {
		fmt.Println()
		fmt.Print(renderCards(cards, defaultTheme))
	}

	if snap := sess.Stats().Snapshot(); snap.ChatTurn != nil {
		logger.Debug("turn metrics",
			"count", snap.ChatTurn.Count,
			"failures", snap.ChatTurn.Failures,
			"avg_ms", snap.ChatTurn.AvgTimeMs)
	}
	return nil
}

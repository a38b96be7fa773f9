package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/rvasani/shopcopilot/internal/chat"
	"github.com/rvasani/shopcopilot/internal/config"
)

var chatImage string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with the Shopping Copilot backend.

Type a message and press Enter to send it. Commands:
  /attach <path>   stage an image for the next message (replaces any pending one)
  /detach          drop the staged image
  /open <n>        open the n-th product link of the latest reply in the browser
  /quit            leave the session`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatImage, "image", "i", "", "stage an image before the first message")
}

func runChat(cmd *cobra.Command, args []string) error {
	// The TUI owns the terminal, so diagnostics go to the log file only.
	fileLogger, cleanup := config.SetupFileLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	sess := chat.NewSession(backend, fileLogger)
	defer sess.Close()
	if authCtx != nil {
		sess.SetToken(authCtx.Token)
	}

	if chatImage != "" {
		data, err := os.ReadFile(chatImage)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		sess.Attachments().Select(filepath.Base(chatImage), data)
	}

	model := newChatModel(sess, cfg.Timeout, fileLogger)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI error: %w", err)
	}

	if snap := sess.Stats().Snapshot(); snap.ChatTurn != nil {
		fileLogger.Info("session metrics",
			"turns", snap.ChatTurn.Count,
			"failures", snap.ChatTurn.Failures,
			"avg_ms", snap.ChatTurn.AvgTimeMs,
			"uptime_s", snap.UptimeSeconds)
	}
	return nil
}

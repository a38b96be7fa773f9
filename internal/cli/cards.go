package cli

import (
	"fmt"
	"strings"

	"github.com/rvasani/shopcopilot/internal/chat"
)

// renderCards formats product cards for terminal output. Cards are numbered
// so the chat UI's /open command can refer to them.
func renderCards(cards []chat.Card, t Theme) string {
	if len(cards) == 0 {
		return ""
	}

	var b strings.Builder
	for i, c := range cards {
		header := fmt.Sprintf("%d. %s", i+1, c.Title)
		if c.Price != "" {
			header += "  " + t.priceStyle().Render(c.Price)
		}
		if c.Source != "" {
			header += "  " + t.hintStyle().Render("["+c.Source+"]")
		}
		b.WriteString(header + "\n")
		b.WriteString("   " + t.hintStyle().Render(c.ImageLabel) + "\n")
		if c.Link != "" {
			b.WriteString("   " + c.Link + "\n")
		}
	}
	return b.String()
}

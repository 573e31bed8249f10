package notifier

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"
)

// CommandHandler is called when a user command is received and returns
// the reply text ("" for no reply).
type CommandHandler func(command string) string

type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
	} `json:"message"`
}

type getUpdatesResponse struct {
	OK     bool             `json:"ok"`
	Result []telegramUpdate `json:"result"`
}

// StartPolling begins long-polling for commands. Blocks until ctx is
// cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	offset := 0

	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] Telegram polling stopped")
			return
		default:
		}

		var updates getUpdatesResponse
		resp, err := t.rest.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"timeout": "30",
				"offset":  strconv.Itoa(offset),
			}).
			SetResult(&updates).
			Get("/getUpdates")
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			log.Printf("[WARN] Telegram getUpdates: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}
		if resp.IsError() || !updates.OK {
			log.Printf("[WARN] Telegram getUpdates: status %d", resp.StatusCode())
			time.Sleep(5 * time.Second)
			continue
		}

		for _, upd := range updates.Result {
			offset = upd.UpdateID + 1
			if upd.Message == nil {
				continue
			}
			text := strings.TrimSpace(upd.Message.Text)
			if text == "" {
				continue
			}
			log.Printf("[INFO] Telegram command: %s", text)
			if reply := handler(text); reply != "" {
				if err := t.Send(reply); err != nil {
					log.Printf("[ERROR] Telegram reply: %v", err)
				}
			}
		}
	}
}

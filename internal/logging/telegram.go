package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"shopify-cost-editor/internal/config"
)

// Notifier forwards important log events to a Telegram chat so the
// operator sees failed Shopify updates without tailing server logs.
type Notifier struct {
	creds config.TelegramBotConfig
}

type telegramRequest struct {
	ChatId string `json:"chat_id"`
	Text   string `json:"text"`
}

const (
	iconError   = "❌"
	iconSuccess = "✅"
)

func NewNotifier(creds config.TelegramBotConfig) *Notifier {
	if creds.ChatId == "" || creds.Token == "" {
		return nil
	}
	return &Notifier{creds: creds}
}

func (n *Notifier) Send(icon, level, value string) {
	if n == nil {
		return
	}
	_ = n.sendRequest(formatMessage(icon, level, value))
}

func (n *Notifier) sendRequest(value string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.creds.Token)

	reqBody := telegramRequest{
		ChatId: n.creds.ChatId,
		Text:   value,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram send failed: %s", resp.Status)
	}

	return nil
}

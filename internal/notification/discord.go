package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Jazz4325/ndvi-pipeline/internal/properties"
)

type discordMessage struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

const (
	colorRed    = 16711680
	colorGreen  = 65280
	colorYellow = 16776960
)

func send(webhookUrl, title, description string, color int) error {
	if webhookUrl == "" {
		// No webhook configured; notifications are opt-in.
		return nil
	}

	payload, err := json.Marshal(discordMessage{
		Embeds: []discordEmbed{{Title: title, Description: description, Color: color}},
	})
	if err != nil {
		return err
	}

	resp, err := http.Post(webhookUrl, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send Discord notification, status code: %d", resp.StatusCode)
	}
	return nil
}

func SendDiscordErrorNotification(message string) error {
	return send(properties.DiscordErrorNotificationUrl(), "🚨 NDVI Pipeline Error", message, colorRed)
}

func SendDiscordWarnNotification(message string) error {
	return send(properties.DiscordErrorNotificationUrl(), "⚠️ NDVI Pipeline Warning", message, colorYellow)
}

func SendDiscordSuccessNotification(message string) error {
	return send(properties.DiscordSuccessNotificationUrl(), "✅ NDVI Pipeline", message, colorGreen)
}

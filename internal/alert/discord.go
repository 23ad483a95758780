package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"longshotwatch/internal/detector"
)

const embedColorRed = 15158332

type DiscordNotifier struct {
	WebhookURL string
	HTTP       *http.Client
}

func (n *DiscordNotifier) Name() string { return "discord" }

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

type discordEmbed struct {
	Title  string         `json:"title"`
	URL    string         `json:"url,omitempty"`
	Color  int            `json:"color"`
	Fields []discordField `json:"fields"`
	Footer discordFooter  `json:"footer"`
}

type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

func (n *DiscordNotifier) Send(ctx context.Context, trade detector.DetectedTrade) error {
	if n == nil || n.WebhookURL == "" {
		return errors.New("discord webhook url not configured")
	}

	title := trade.MarketTitle
	if title == "" {
		title = "Unknown"
	}
	if runes := []rune(title); len(runes) > 256 {
		title = string(runes[:256])
	}

	embed := discordEmbed{
		Title: "Large Buy-In Detected",
		URL:   marketURL(trade.Slug),
		Color: embedColorRed,
		Fields: []discordField{
			{Name: "Market", Value: title, Inline: false},
			{Name: "Current Probability", Value: FormatPercent(trade.Probability), Inline: true},
			{Name: "Trade Side", Value: trade.Side, Inline: true},
			{Name: "Outcome", Value: orUnknown(trade.Outcome), Inline: true},
			{Name: "Trade Size", Value: FormatCurrency(trade.DollarValue), Inline: true},
			{Name: "Price", Value: trade.Price.String(), Inline: true},
			{Name: "Trader", Value: TruncateAddress(trade.WalletAddress), Inline: true},
		},
		Footer: discordFooter{Text: "Detected at " + FormatTimestamp(trade.Timestamp)},
	}

	var links []string
	if u := marketURL(trade.Slug); u != "" {
		links = append(links, "[View Market]("+u+")")
	}
	if u := transactionURL(trade.TransactionHash); u != "" {
		links = append(links, "[View TX]("+u+")")
	}
	if len(links) > 0 {
		embed.Fields = append(embed.Fields, discordField{
			Name:  "Links",
			Value: strings.Join(links, " | "),
		})
	}

	body, err := json.Marshal(discordPayload{Embeds: []discordEmbed{embed}})
	if err != nil {
		return err
	}

	client := n.HTTP
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook http %d", resp.StatusCode)
	}
	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

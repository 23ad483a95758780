package alert

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDiscordNotifierSendsEmbed(t *testing.T) {
	var got discordPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("payload decode failed: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := &DiscordNotifier{WebhookURL: srv.URL, HTTP: srv.Client()}
	if err := n.Send(context.Background(), sampleTrade("0xT1")); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(got.Embeds) != 1 {
		t.Fatalf("embeds = %d, want 1", len(got.Embeds))
	}
	embed := got.Embeds[0]
	if embed.Title != "Large Buy-In Detected" {
		t.Fatalf("title = %q", embed.Title)
	}
	if embed.Color != embedColorRed {
		t.Fatalf("color = %d, want %d", embed.Color, embedColorRed)
	}
	if embed.URL != "https://polymarket.com/event/nfl-super-bowl-winner" {
		t.Fatalf("url = %q", embed.URL)
	}
	var sawLinks, sawSize bool
	for _, f := range embed.Fields {
		switch f.Name {
		case "Links":
			sawLinks = true
		case "Trade Size":
			sawSize = true
			if f.Value != "$60,000.00" {
				t.Fatalf("trade size = %q, want $60,000.00", f.Value)
			}
		}
	}
	if !sawLinks || !sawSize {
		t.Fatalf("embed missing expected fields: %+v", embed.Fields)
	}
}

func TestDiscordNotifierTruncatesTitleOnRuneBoundary(t *testing.T) {
	var got discordPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("payload decode failed: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	trade := sampleTrade("0xT9")
	trade.MarketTitle = strings.Repeat("é", 300)

	n := &DiscordNotifier{WebhookURL: srv.URL, HTTP: srv.Client()}
	if err := n.Send(context.Background(), trade); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(got.Embeds) != 1 {
		t.Fatalf("embeds = %d, want 1", len(got.Embeds))
	}
	for _, f := range got.Embeds[0].Fields {
		if f.Name != "Market" {
			continue
		}
		if !utf8.ValidString(f.Value) {
			t.Fatalf("truncated title is not valid utf-8: %q", f.Value)
		}
		if n := utf8.RuneCountInString(f.Value); n != 256 {
			t.Fatalf("truncated title is %d runes, want 256", n)
		}
		return
	}
	t.Fatalf("embed has no Market field: %+v", got.Embeds[0].Fields)
}

func TestDiscordNotifierErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := &DiscordNotifier{WebhookURL: srv.URL, HTTP: srv.Client()}
	if err := n.Send(context.Background(), sampleTrade("0xT2")); err == nil {
		t.Fatalf("expected error on http 500")
	}
}

func TestDiscordNotifierUnconfigured(t *testing.T) {
	n := &DiscordNotifier{}
	if err := n.Send(context.Background(), sampleTrade("0xT3")); err == nil {
		t.Fatalf("unconfigured webhook must fail, not panic or no-op")
	}
}

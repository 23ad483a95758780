package alert

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"

	"longshotwatch/internal/config"
	"longshotwatch/internal/detector"
)

type EmailNotifier struct {
	Config config.EmailConfig
}

func (n *EmailNotifier) Name() string { return "email" }

func (n *EmailNotifier) Send(ctx context.Context, trade detector.DetectedTrade) error {
	if n == nil || !n.Config.Enabled {
		return errors.New("email channel disabled")
	}
	if n.Config.SMTPPass == "" || n.Config.SMTPUser == "" || n.Config.To == "" {
		return errors.New("email channel missing smtp credentials or recipient")
	}

	msg := mail.NewMsg()
	if err := msg.From(n.Config.SMTPUser); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(n.Config.To); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(fmt.Sprintf("Polymarket Alert: %s trade detected", FormatCurrency(trade.DollarValue)))
	msg.SetBodyString(mail.TypeTextPlain, emailBody(trade))

	client, err := mail.NewClient(n.Config.SMTPHost,
		mail.WithPort(n.Config.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.Config.SMTPUser),
		mail.WithPassword(n.Config.SMTPPass),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

func emailBody(trade detector.DetectedTrade) string {
	return fmt.Sprintf(`Large Buy-In Detected on Polymarket

Market: %s
Current Probability: %s
Trade Side: %s
Outcome: %s
Trade Size: %s
Price: %s
Trader: %s
Time: %s

View Market: %s
View Transaction: %s
`,
		orUnknown(trade.MarketTitle),
		FormatPercent(trade.Probability),
		trade.Side,
		orUnknown(trade.Outcome),
		FormatCurrency(trade.DollarValue),
		trade.Price.String(),
		TruncateAddress(trade.WalletAddress),
		FormatTimestamp(trade.Timestamp),
		marketURL(trade.Slug),
		transactionURL(trade.TransactionHash),
	)
}

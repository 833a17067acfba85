package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bottin/internal/ports"
	"bottin/internal/redact"
)

const defaultAPIBase = "https://api.telegram.org"

// Notifier posts rebuild outcomes to a Telegram chat via bot API, so the
// membership team hears about every regeneration of the public CSV without
// watching the terminal.
type Notifier struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  defaultAPIBase,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// PublishRebuild formats the run counts into an operator message and posts
// it to the configured chat.
func (n *Notifier) PublishRebuild(ctx context.Context, runID string, summary redact.Summary) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", formatRebuild(runID, summary))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

// formatRebuild renders the consent counts of one run as the plain-text
// message body.
func formatRebuild(runID string, summary redact.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bottin rebuilt (run %s)\n", runID)
	fmt.Fprintf(&b, "Public: %d\n", summary.Public)
	fmt.Fprintf(&b, "Pending: %d (%d with profile, %d without)\n",
		summary.Pending(), summary.PendingWithProfile, summary.PendingWithoutProfile)
	fmt.Fprintf(&b, "Excluded: %d (regular %d, student %d, partner %d)",
		summary.Excluded.Total, summary.Excluded.Regular, summary.Excluded.Student, summary.Excluded.Partner)
	return b.String()
}

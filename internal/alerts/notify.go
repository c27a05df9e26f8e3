package alerts

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"parimutuel-advisor/internal/decision"
)

// Notifier handles alert notifications
type Notifier struct {
	mu         sync.Mutex
	lastAlerts map[string]time.Time // Dedupe alerts
	cooldown   time.Duration        // Minimum time between same alerts
	now        func() time.Time
}

// NewNotifier creates a new notifier
func NewNotifier(cooldown time.Duration) *Notifier {
	return &Notifier{
		lastAlerts: make(map[string]time.Time),
		cooldown:   cooldown,
		now:        time.Now,
	}
}

// checkCooldown records key and reports whether it fired within the cooldown.
func (n *Notifier) checkCooldown(key string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	if lastTime, ok := n.lastAlerts[key]; ok {
		if now.Sub(lastTime) < n.cooldown {
			return true
		}
	}
	n.lastAlerts[key] = now
	return false
}

// AlertDecision logs a bet recommendation. Repeats of the same option at
// the same odds are suppressed for the cooldown, so re-rendering an
// unchanged board doesn't spam the log. Returns whether an alert was logged.
func (n *Notifier) AlertDecision(res decision.Result) bool {
	if res.Verdict != decision.VerdictBet {
		return false
	}
	best, ok := res.Best()
	if !ok {
		return false
	}

	key := fmt.Sprintf("%d-%s-%.2f", best.Index, best.Option.Name, best.Odds)
	if n.checkCooldown(key) {
		return false
	}

	attrs := []any{
		"option", best.Option.Name,
		"prob", fmt.Sprintf("%.1f%%", best.Option.WinRatePercent),
		"odds", fmt.Sprintf("%.2fx", best.Odds),
		"ev", fmt.Sprintf("%.1f%%", res.EVPercent),
		"kelly", fmt.Sprintf("%.1f%%", res.KellyPercent),
	}
	if res.HasStake {
		attrs = append(attrs, "stake", res.SuggestedStake)
	}
	slog.Info("+EV bet", attrs...)
	return true
}

// LogRateWarning notes that the entered win rates don't sum to 100.
func (n *Notifier) LogRateWarning(totalRate float64) {
	if n.checkCooldown(fmt.Sprintf("rates-%.1f", totalRate)) {
		return
	}
	slog.Warn("Win rates do not sum to 100", "total", fmt.Sprintf("%.1f%%", totalRate))
}

// LogError logs an error
func (n *Notifier) LogError(context string, err error) {
	slog.Error("Command failed", "context", context, "err", err)
}

// LogStartup logs advisor startup
func (n *Notifier) LogStartup(config string) {
	slog.Info("Advisor started", "config", config)
}

// CleanupOldAlerts removes stale alert records
func (n *Notifier) CleanupOldAlerts() {
	n.mu.Lock()
	defer n.mu.Unlock()
	cutoff := n.now().Add(-1 * time.Hour)
	for key, t := range n.lastAlerts {
		if t.Before(cutoff) {
			delete(n.lastAlerts, key)
		}
	}
}

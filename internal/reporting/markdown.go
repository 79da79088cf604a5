package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Anubis Scan Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	if r.ScanID != "" {
		sb.WriteString(fmt.Sprintf("Scan: %s | Days back: %d | Platforms: %s | Status: %s\n\n",
			r.ScanID, r.DaysBack, strings.Join(r.Platforms, ", "), r.Status))
	}
	if r.Error != "" {
		sb.WriteString(fmt.Sprintf("**Run failed:** %s\n\n", r.Error))
	}

	// Counts
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Signatures | %d |\n", r.Counts.Signatures))
	sb.WriteString(fmt.Sprintf("| Launches | %d |\n", r.Counts.Launches))
	sb.WriteString(fmt.Sprintf("| Wallets | %d |\n", r.Counts.Wallets))
	sb.WriteString(fmt.Sprintf("| Profiles | %d |\n", r.Counts.Profiles))
	sb.WriteString(fmt.Sprintf("| Successful tokens | %d |\n", r.Counts.SuccessfulTokens))
	sb.WriteString("\n")

	writeDistribution(&sb, "Developer Tiers", "Tier", r.TierDistribution)
	writeDistribution(&sb, "Risk Ratings", "Risk", r.RiskDistribution)

	sb.WriteString(fmt.Sprintf("## Top %d Wallets\n\n", TopWalletsLimit))
	if len(r.TopWallets) > 0 {
		sb.WriteString("| Wallet | Score | Tier | Risk | Launches | Successful | SuccessRate | BestMcap |\n")
		sb.WriteString("|--------|-------|------|------|----------|------------|-------------|----------|\n")
		for _, w := range r.TopWallets {
			sb.WriteString(fmt.Sprintf("| %s | %.2f | %s | %s | %d | %d | %.2f | %.0f |\n",
				w.Wallet, w.Score, w.DeveloperTier, w.RiskRating,
				w.TotalLaunches, w.SuccessfulLaunches, w.SuccessRate, w.BestMarketCap))
		}
	} else {
		sb.WriteString("No wallets scored.\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Serial Spammers\n\n")
	if len(r.SerialSpammers) > 0 {
		sb.WriteString("| Wallet | Launches/Day | Launches | Risk |\n")
		sb.WriteString("|--------|--------------|----------|------|\n")
		for _, w := range r.SerialSpammers {
			sb.WriteString(fmt.Sprintf("| %s | %.2f | %d | %s |\n",
				w.Wallet, w.AvgDailyLaunches, w.TotalLaunches, w.RiskRating))
		}
	} else {
		sb.WriteString("None.\n")
	}
	sb.WriteString("\n")

	if len(r.Alerts) > 0 {
		sb.WriteString("## Alerts\n\n")
		for _, w := range r.Alerts {
			sb.WriteString(fmt.Sprintf("- P%d %s (%.2f): %s\n",
				w.AlertPriority, w.Wallet, w.Score, strings.Join(w.Reasons, "; ")))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeDistribution(sb *strings.Builder, title, column string, buckets []Bucket) {
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))
	sb.WriteString(fmt.Sprintf("| %s | Wallets |\n", column))
	sb.WriteString("|------|---------|\n")
	for _, b := range buckets {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", b.Label, b.Count))
	}
	sb.WriteString("\n")
}

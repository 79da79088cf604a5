package memory

import "github.com/TraderofBozz/Anubis-Bot/internal/domain"

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneLaunch(e *domain.LaunchEvent) *domain.LaunchEvent {
	c := *e
	c.MarketCap = clonePtr(e.MarketCap)
	c.TokenName = clonePtr(e.TokenName)
	c.TokenSymbol = clonePtr(e.TokenSymbol)
	return &c
}

func cloneProfile(p *domain.WalletProfile) *domain.WalletProfile {
	c := *p
	c.Metrics.AvgIntervalMinutes = clonePtr(p.Metrics.AvgIntervalMinutes)
	c.Metrics.MinIntervalMinutes = clonePtr(p.Metrics.MinIntervalMinutes)
	c.Metrics.HourVariance = clonePtr(p.Metrics.HourVariance)
	if p.AlertReasons != nil {
		c.AlertReasons = append([]string(nil), p.AlertReasons...)
	}
	return &c
}

func cloneToken(t *domain.SuccessfulToken) *domain.SuccessfulToken {
	c := *t
	c.TokenName = clonePtr(t.TokenName)
	c.TokenSymbol = clonePtr(t.TokenSymbol)
	return &c
}

func cloneRun(r *domain.ScanRun) *domain.ScanRun {
	c := *r
	if r.Platforms != nil {
		c.Platforms = append([]string(nil), r.Platforms...)
	}
	return &c
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/collectopedia/internal/config"
	"github.com/donaldgifford/collectopedia/internal/ebay"
	"github.com/donaldgifford/collectopedia/internal/engine"
	"github.com/donaldgifford/collectopedia/internal/notify"
	"github.com/donaldgifford/collectopedia/internal/pricing"
	"github.com/donaldgifford/collectopedia/internal/quota"
	"github.com/donaldgifford/collectopedia/internal/sold"
	"github.com/donaldgifford/collectopedia/internal/store"
	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

// pricingDeps bundles the aggregator with the quota limiters guarding its
// upstreams so the quota endpoint can report on them.
type pricingDeps struct {
	aggregator *pricing.Aggregator
	limiters   []*quota.Limiter
}

func newQuotaLimiter(name string, q *config.QuotaConfig) *quota.Limiter {
	return quota.New(name, q.PerSecond, q.Burst, q.MaxCalls, quota.WithWindow(q.Window))
}

func buildPricing(cfg *config.Config, log *slog.Logger) *pricingDeps {
	browseLimiter := newQuotaLimiter("ebay_browse", &cfg.Ebay.RateLimit)
	soldLimiter := newQuotaLimiter("sold", &cfg.Sold.RateLimit)

	tokens := ebay.NewOAuthTokenProvider(
		cfg.Ebay.AppID,
		cfg.Ebay.CertID,
		ebay.WithTokenURL(cfg.Ebay.TokenURL),
	)
	browse := ebay.NewBrowseClient(
		tokens,
		ebay.WithBrowseURL(cfg.Ebay.BrowseURL),
		ebay.WithRateLimiter(browseLimiter),
	)

	soldClient := sold.NewClient(
		cfg.Sold.APIKey,
		sold.WithURL(cfg.Sold.URL),
		sold.WithHost(cfg.Sold.Host),
		sold.WithRateLimiter(soldLimiter),
	)

	if !browse.Configured() {
		log.Warn("eBay credentials not configured, listed lookups will report missing credentials")
	}
	if !soldClient.Configured() {
		log.Warn("sold listings API key not configured, sold lookups will report missing credentials")
	}

	agg := pricing.NewAggregator(
		browse,
		soldClient,
		pricing.WithRegions(cfg.Pricing.RegionTable()),
		pricing.WithDefaultRegion(domain.Region(cfg.Pricing.DefaultRegion)),
		pricing.WithSoldCategory(cfg.Sold.CategoryID),
		pricing.WithLogger(log),
	)

	return &pricingDeps{
		aggregator: agg,
		limiters:   []*quota.Limiter{browseLimiter, soldLimiter},
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*store.PostgresStore, error) {
	s, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), store.WithMaxConns(cfg.Database.PoolSize))
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return s, nil
}

func newRefresher(
	cfg *config.Config,
	s store.Store,
	p engine.Pricer,
	log *slog.Logger,
) *engine.Refresher {
	return engine.NewRefresher(
		s, p,
		engine.WithLogger(log),
		engine.WithNotifier(newNotifier(cfg, log)),
		engine.WithBatchSize(cfg.Refresh.BatchSize),
		engine.WithItemTimeout(cfg.Refresh.ItemTimeout),
		engine.WithStagger(cfg.Refresh.Stagger),
	)
}

// newNotifier builds the refresh summary fan-out. A Telegram bot that cannot
// be reached at startup is logged and left out.
func newNotifier(cfg *config.Config, log *slog.Logger) notify.Notifier {
	var targets notify.MultiNotifier

	if d := cfg.Notifications.Discord; d.Enabled {
		log.Info("refresh summaries will be posted to discord", "failures_only", d.FailuresOnly)
		targets = append(targets, notify.NewDiscordNotifier(d.WebhookURL, notify.WithFailuresOnly(d.FailuresOnly)))
	}

	if tg := cfg.Notifications.Telegram; tg.Enabled {
		n, err := notify.NewTelegramNotifier(tg.BotToken, tg.ChatID, notify.WithTelegramFailuresOnly(tg.FailuresOnly))
		if err != nil {
			log.Warn("telegram notifications disabled", "error", err)
		} else {
			log.Info("refresh summaries will be sent to telegram", "chat_id", tg.ChatID, "failures_only", tg.FailuresOnly)
			targets = append(targets, n)
		}
	}

	switch len(targets) {
	case 0:
		return notify.NewNoOpNotifier(log)
	case 1:
		return targets[0]
	default:
		return targets
	}
}

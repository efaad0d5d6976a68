package feeds

import (
	"context"
	"errors"
	"time"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/derive"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/cache"
	apphttp "github.com/yildirimberke/berke-terminal-dashboard/pkg/http"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/logger"
)

// technical symbols the gram gold derivation reads from the market feed
const (
	goldSymbol   = "GC=F"
	usdtrySymbol = "TRY=X"
	gramGoldKey  = "gram_gold"
)

// TTLs holds the per-feed cache windows. Zero disables caching for a tier.
type TTLs struct {
	Market      time.Duration
	Macro       time.Duration
	TurkeyMacro time.Duration
	Slow        time.Duration
}

// Service fetches normalized snapshots from the upstream feed collaborators.
// Responses are cached read-through so a burst of lookups between poll ticks
// does not hammer the collaborators.
type Service struct {
	http         *apphttp.Client
	cache        cache.Service
	baseURL      string
	knowledgeURL string
	ttl          TTLs
	logger       *logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache sets the response cache.
func WithCache(c cache.Service) Option {
	return func(s *Service) { s.cache = c }
}

// WithTTLs sets the cache windows.
func WithTTLs(t TTLs) Option {
	return func(s *Service) { s.ttl = t }
}

// WithKnowledgeURL sets the knowledge collaborator base URL.
func WithKnowledgeURL(url string) Option {
	return func(s *Service) { s.knowledgeURL = url }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a feed service over the collaborator base URL.
func NewService(client *apphttp.Client, baseURL string, opts ...Option) *Service {
	s := &Service{
		http:    client,
		baseURL: baseURL,
		logger:  logger.Nop(),
		ttl: TTLs{
			Market:      10 * time.Second,
			Macro:       time.Minute,
			TurkeyMacro: 10 * time.Minute,
			Slow:        10 * time.Minute,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func fetchCached[T any](ctx context.Context, s *Service, feed models.FeedID, path string, ttl time.Duration) (*T, error) {
	cacheKey := "feed:" + string(feed)
	if s.cache != nil && ttl > 0 {
		var cached T
		err := s.cache.Get(ctx, cacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("feed cache read failed",
				logger.String("feed", string(feed)), logger.Error(err))
		}
	}

	var out T
	if err := s.http.GetJSON(ctx, s.baseURL+path, &out); err != nil {
		return nil, apphttp.FetchFailedError(string(feed), err)
	}

	if s.cache != nil && ttl > 0 {
		if err := s.cache.Set(ctx, cacheKey, &out, ttl); err != nil {
			s.logger.Warn("feed cache write failed",
				logger.String("feed", string(feed)), logger.Error(err))
		}
	}
	return &out, nil
}

// Market fetches the market snapshot and injects the derived gram gold
// quote next to its inputs.
func (s *Service) Market(ctx context.Context) (*models.MarketSnapshot, error) {
	snap, err := fetchCached[models.MarketSnapshot](ctx, s, models.FeedMarket, "/market", s.ttl.Market)
	if err != nil {
		return nil, err
	}
	injectGramGold(snap)
	snap.AsOf = time.Now()
	return snap, nil
}

// Macro fetches policy rates, bond yields and the CDS level.
func (s *Service) Macro(ctx context.Context) (*models.MacroSnapshot, error) {
	return fetchCached[models.MacroSnapshot](ctx, s, models.FeedMacro, "/macro", s.ttl.Macro)
}

// TurkeyMacro fetches the domestic indicator list.
func (s *Service) TurkeyMacro(ctx context.Context) (*models.TurkeyMacroSnapshot, error) {
	return fetchCached[models.TurkeyMacroSnapshot](ctx, s, models.FeedTurkeyMacro, "/turkey-macro", s.ttl.TurkeyMacro)
}

// CBRT fetches the central-bank tracker.
func (s *Service) CBRT(ctx context.Context) (*models.CBRTSnapshot, error) {
	return fetchCached[models.CBRTSnapshot](ctx, s, models.FeedCBRT, "/cbrt", s.ttl.Slow)
}

// Calendar fetches the economic calendar.
func (s *Service) Calendar(ctx context.Context) (*models.CalendarSnapshot, error) {
	return fetchCached[models.CalendarSnapshot](ctx, s, models.FeedCalendar, "/calendar", s.ttl.Slow)
}

// EquityRisk fetches the valuation feed and recomputes the derived columns
// so they stay consistent with the delivered P/E.
func (s *Service) EquityRisk(ctx context.Context) (*models.EquityRiskSnapshot, error) {
	snap, err := fetchCached[models.EquityRiskSnapshot](ctx, s, models.FeedEquityRisk, "/equity-risk", s.ttl.Slow)
	if err != nil {
		return nil, err
	}
	snap.EarningsYield = derive.EarningsYield(snap.PE)
	snap.ERP = derive.EquityRiskPremium(snap.EarningsYield, snap.TR10Y)
	return snap, nil
}

// Movers fetches the gainers/losers boards.
func (s *Service) Movers(ctx context.Context) (*models.MoversSnapshot, error) {
	return fetchCached[models.MoversSnapshot](ctx, s, models.FeedMovers, "/movers", s.ttl.Macro)
}

// News fetches the aggregated headlines.
func (s *Service) News(ctx context.Context) (*models.NewsSnapshot, error) {
	return fetchCached[models.NewsSnapshot](ctx, s, models.FeedNews, "/news", s.ttl.Macro)
}

// GoldCorr fetches the gold/FX correlation composite.
func (s *Service) GoldCorr(ctx context.Context) (*models.GoldCorrSnapshot, error) {
	return fetchCached[models.GoldCorrSnapshot](ctx, s, models.FeedGoldCorr, "/gold-correlation", s.ttl.Slow)
}

// Scorecard fetches the upstream-classified scorecard.
func (s *Service) Scorecard(ctx context.Context) (*models.ScorecardSnapshot, error) {
	return fetchCached[models.ScorecardSnapshot](ctx, s, models.FeedScorecard, "/scorecard", s.ttl.Slow)
}

// Knowledge proxies a free-form knowledge document for an entity key.
func (s *Service) Knowledge(ctx context.Context, key string) (map[string]any, error) {
	base := s.knowledgeURL
	if base == "" {
		base = s.baseURL
	}
	var out map[string]any
	if err := s.http.GetJSON(ctx, base+"/knowledge/"+key, &out); err != nil {
		return nil, apphttp.FetchFailedError("knowledge", err)
	}
	return out, nil
}

func injectGramGold(snap *models.MarketSnapshot) {
	if snap.Quotes == nil {
		return
	}
	gold, okGold := snap.Quotes[goldSymbol]
	try, okTry := snap.Quotes[usdtrySymbol]
	if !okGold || !okTry {
		return
	}
	price := derive.GramGold(gold.Price, try.Price)
	prev := derive.GramGold(gold.PrevClose, try.PrevClose)
	q := models.Quote{
		Symbol:    gramGoldKey,
		Name:      "Gram Gold (TRY)",
		Price:     price,
		PrevClose: prev,
		ChangePct: changePct(price, prev),
		Source:    "CALC",
	}
	snap.Quotes[gramGoldKey] = q

	if cat, ok := snap.Categories["commodities"]; ok && !contains(cat, gramGoldKey) {
		snap.Categories["commodities"] = append(cat, gramGoldKey)
	}
}

func changePct(price, prev models.Value) models.Value {
	p, ok := price.Float()
	if !ok {
		return models.NA()
	}
	pr, ok := prev.Float()
	if !ok || pr == 0 {
		return models.NA()
	}
	return models.Num((p - pr) / pr * 100)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

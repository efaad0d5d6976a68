package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/command"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/derive"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/override"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/registry"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/render"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/service/ratelimit"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/store"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/tickets"
	apphttp "github.com/yildirimberke/berke-terminal-dashboard/pkg/http"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/logger"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/util"
)

// Write-endpoint throttle: burst of 20 with 10/s refill per client.
const (
	writeBurst  = 20
	writeRefill = 10
)

// Knowledge proxies free-form entity documents from the knowledge
// collaborator.
type Knowledge interface {
	Knowledge(ctx context.Context, key string) (map[string]any, error)
}

// MoversArchive reads archived intraday snapshots.
type MoversArchive interface {
	TopMoversByDate(date string, limit int) (models.MoverLists, error)
}

// Handler serves the dashboard API.
type Handler struct {
	store      *store.Store
	registry   *registry.Registry
	overrides  *override.Resolver
	dispatcher *command.Dispatcher
	tickets    *tickets.Service
	knowledge  Knowledge
	archive    MoversArchive
	limiter    *ratelimit.Limiter
	logger     *logger.Logger
	now        func() time.Time

	thresholdHigh float64
	thresholdLow  float64
}

// Option configures a Handler.
type Option func(*Handler)

// WithKnowledge wires the knowledge proxy.
func WithKnowledge(k Knowledge) Option {
	return func(h *Handler) { h.knowledge = k }
}

// WithMoversArchive wires the archived-snapshot reader.
func WithMoversArchive(a MoversArchive) Option {
	return func(h *Handler) { h.archive = a }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(h *Handler) { h.logger = l }
}

// WithScorecardThresholds sets the classification cut lines.
func WithScorecardThresholds(high, low float64) Option {
	return func(h *Handler) {
		h.thresholdHigh = high
		h.thresholdLow = low
	}
}

// WithClock injects the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// NewHandler creates the API handler.
func NewHandler(
	st *store.Store,
	reg *registry.Registry,
	overrides *override.Resolver,
	dispatcher *command.Dispatcher,
	ticketSvc *tickets.Service,
	opts ...Option,
) *Handler {
	h := &Handler{
		store:         st,
		registry:      reg,
		overrides:     overrides,
		dispatcher:    dispatcher,
		tickets:       ticketSvc,
		limiter:       ratelimit.New(),
		logger:        logger.Nop(),
		now:           time.Now,
		thresholdHigh: 25,
		thresholdLow:  -25,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes mounts all API endpoints.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")

	g.GET("/market", h.getMarket)
	g.GET("/macro", h.getMacro)
	g.GET("/turkey-macro", h.getTurkeyMacro)
	g.GET("/cbrt", h.getCBRT)
	g.GET("/calendar", h.getCalendar)
	g.GET("/equity-risk", h.getEquityRisk)
	g.GET("/movers", h.getMovers)
	g.GET("/movers/archive", h.getMoversArchive)
	g.GET("/news", h.getNews)
	g.GET("/gold-correlation", h.getGoldCorr)
	g.GET("/scorecard", h.getScorecard)

	g.GET("/registry/search", h.searchRegistry)
	g.GET("/entity/:key", h.getEntity)
	g.POST("/entity/:key/set", h.setEntity)
	g.POST("/entity/:key/clear", h.clearEntity)
	g.GET("/overrides", h.getOverrides)
	g.POST("/command", h.postCommand)
	g.GET("/knowledge/:key", h.getKnowledge)

	g.GET("/tickets", h.getTickets)
	g.POST("/tickets", h.postTicket)
}

type marketResponse struct {
	Data       map[string]models.Quote          `json:"data"`
	Categories map[string][]string              `json:"categories"`
	TickerTape []string                         `json:"ticker_tape"`
	Status     map[string]models.ExchangeStatus `json:"status"`
}

func (h *Handler) getMarket(c echo.Context) error {
	resp := marketResponse{
		Data:       map[string]models.Quote{},
		Categories: map[string][]string{},
		Status:     render.ExchangeStatuses(h.now()),
	}
	if snap := h.store.Market(); snap != nil {
		resp.Data = snap.Quotes
		resp.Categories = snap.Categories
		resp.TickerTape = snap.TapeOrder
	}
	return apphttp.SuccessResponse(c, resp)
}

type macroResponse struct {
	PolicyRates map[string]models.Value `json:"policy_rates"`
	Bonds       map[string]models.Value `json:"bonds"`
	CDS         models.CDSQuote         `json:"cds"`
	Sidebar     []render.SidebarRow     `json:"sidebar"`
}

func (h *Handler) getMacro(c echo.Context) error {
	snap := h.store.Macro()
	resp := macroResponse{
		Sidebar: render.MacroSidebar(snap, h.store.TurkeyMacro(), h.overrides),
	}
	if snap != nil {
		resp.PolicyRates = snap.PolicyRates
		resp.Bonds = snap.Bonds
		resp.CDS = snap.CDS
	}
	return apphttp.SuccessResponse(c, resp)
}

func (h *Handler) getTurkeyMacro(c echo.Context) error {
	snap := h.store.TurkeyMacro()
	if snap == nil {
		snap = &models.TurkeyMacroSnapshot{}
	}
	return apphttp.SuccessResponse(c, snap)
}

func (h *Handler) getCBRT(c echo.Context) error {
	snap := h.store.CBRT()
	if snap == nil {
		snap = &models.CBRTSnapshot{
			CurrentRate:  models.NA(),
			PreviousRate: models.NA(),
		}
	}
	return apphttp.SuccessResponse(c, snap)
}

func (h *Handler) getCalendar(c echo.Context) error {
	snap := h.store.Calendar()
	if snap == nil {
		snap = &models.CalendarSnapshot{}
	}
	return apphttp.SuccessResponse(c, snap)
}

type equityRiskResponse struct {
	*models.EquityRiskSnapshot
	Rows []render.SidebarRow `json:"rows"`
}

func (h *Handler) getEquityRisk(c echo.Context) error {
	snap := h.store.EquityRisk()
	if snap == nil {
		snap = &models.EquityRiskSnapshot{
			PE: models.NA(), EarningsYield: models.NA(),
			TR10Y: models.NA(), ERP: models.NA(),
		}
	}
	return apphttp.SuccessResponse(c, equityRiskResponse{
		EquityRiskSnapshot: snap,
		Rows:               render.EquityRiskRows(snap, h.overrides),
	})
}

func (h *Handler) getMovers(c echo.Context) error {
	snap := h.store.Movers()
	if snap == nil {
		snap = &models.MoversSnapshot{ByIndex: map[string]models.MoverLists{}}
	}
	return apphttp.SuccessResponse(c, snap)
}

func (h *Handler) getMoversArchive(c echo.Context) error {
	if _, ok := util.ParseDay(c.QueryParam("date")); !ok {
		return apphttp.BadRequestResponse(c, "date must be YYYY-MM-DD")
	}
	if h.archive == nil {
		return apphttp.SuccessResponse(c, models.MoverLists{})
	}
	limit := util.ParseIntDefault(c.QueryParam("limit"), 5)
	lists, err := h.archive.TopMoversByDate(c.QueryParam("date"), limit)
	if err != nil {
		return apphttp.AppErrorResponse(c, err)
	}
	return apphttp.SuccessResponse(c, lists)
}

func (h *Handler) getNews(c echo.Context) error {
	snap := h.store.News()
	if snap == nil {
		snap = &models.NewsSnapshot{}
	}
	return apphttp.SuccessResponse(c, snap)
}

func (h *Handler) getGoldCorr(c echo.Context) error {
	snap := h.store.GoldCorr()
	if snap == nil {
		snap = &models.GoldCorrSnapshot{CorrUSD: models.NA()}
	}
	return apphttp.SuccessResponse(c, snap)
}

func (h *Handler) getScorecard(c echo.Context) error {
	vm := render.ScorecardGauge(h.store.Scorecard(), h.thresholdHigh, h.thresholdLow)
	return apphttp.SuccessResponse(c, vm)
}

func (h *Handler) searchRegistry(c echo.Context) error {
	matches := h.registry.Search(c.QueryParam("q"))
	if matches == nil {
		matches = []models.SearchMatch{}
	}
	return apphttp.SuccessResponse(c, matches)
}

type entityResponse struct {
	models.EntityDescriptor
	Value string `json:"value"`
}

func (h *Handler) getEntity(c echo.Context) error {
	desc, err := h.registry.Describe(c.Param("key"))
	if err != nil {
		return apphttp.AppErrorResponse(c, err)
	}
	resolved := h.overrides.Resolve(desc.Key, h.currentLevel(desc.Entity))
	return apphttp.SuccessResponse(c, entityResponse{
		EntityDescriptor: desc,
		Value:            render.FormatValue(resolved.Value),
	})
}

type setOverrideRequest struct {
	Value  string `json:"value" validate:"required"`
	Source string `json:"source" default:"manual"`
}

func (h *Handler) setEntity(c echo.Context) error {
	if !h.limiter.Allow(c.RealIP(), writeBurst, writeRefill) {
		return apphttp.DataResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
	}
	key := c.Param("key")
	if _, err := h.registry.Describe(key); err != nil {
		return apphttp.AppErrorResponse(c, err)
	}

	req := new(setOverrideRequest)
	if errs := apphttp.ReadAndValidateRequest(c, req); errs != nil {
		return apphttp.BadRequestResponse(c, errs)
	}

	rec, err := h.overrides.Set(key, req.Value, req.Source)
	if err != nil {
		return apphttp.AppErrorResponse(c, err)
	}
	return apphttp.SuccessResponse(c, rec)
}

func (h *Handler) clearEntity(c echo.Context) error {
	if !h.limiter.Allow(c.RealIP(), writeBurst, writeRefill) {
		return apphttp.DataResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
	}
	key := c.Param("key")
	if _, err := h.registry.Describe(key); err != nil {
		return apphttp.AppErrorResponse(c, err)
	}
	if err := h.overrides.Clear(key); err != nil {
		return apphttp.AppErrorResponse(c, err)
	}
	return apphttp.SuccessResponse(c, map[string]string{"key": key})
}

func (h *Handler) getOverrides(c echo.Context) error {
	all := h.overrides.All()
	if all == nil {
		all = []models.OverrideRecord{}
	}
	return apphttp.SuccessResponse(c, all)
}

type commandRequest struct {
	Input string `json:"input" validate:"required"`
}

type commandResponse struct {
	command.Result
	Comparison *render.ComparisonVM `json:"comparison,omitempty"`
}

func (h *Handler) postCommand(c echo.Context) error {
	if !h.limiter.Allow(c.RealIP(), writeBurst, writeRefill) {
		return apphttp.DataResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
	}
	req := new(commandRequest)
	if errs := apphttp.ReadAndValidateRequest(c, req); errs != nil {
		return apphttp.BadRequestResponse(c, errs)
	}

	result, err := h.dispatcher.Dispatch(command.Parse(req.Input))
	if err != nil {
		return apphttp.AppErrorResponse(c, err)
	}

	resp := commandResponse{Result: result}
	if result.Kind == command.KindCompare && result.Entity != nil && result.Other != nil {
		vm := render.Comparison(*result.Entity, *result.Other)
		resp.Comparison = &vm
	}
	return apphttp.SuccessResponse(c, resp)
}

func (h *Handler) getKnowledge(c echo.Context) error {
	if h.knowledge == nil {
		return apphttp.NotFoundResponse(c, "knowledge collaborator not configured")
	}
	doc, err := h.knowledge.Knowledge(c.Request().Context(), c.Param("key"))
	if err != nil {
		return apphttp.AppErrorResponse(c, err)
	}
	return apphttp.SuccessResponse(c, doc)
}

func (h *Handler) getTickets(c echo.Context) error {
	recent, err := h.tickets.Recent(util.ParseIntDefault(c.QueryParam("limit"), 10))
	if err != nil {
		return apphttp.AppErrorResponse(c, err)
	}
	if recent == nil {
		recent = []models.Ticket{}
	}
	return apphttp.SuccessResponse(c, recent)
}

type ticketRequest struct {
	Items []tickets.Item `json:"items" validate:"required,min=1,dive"`
	Notes string         `json:"notes"`
}

func (h *Handler) postTicket(c echo.Context) error {
	req := new(ticketRequest)
	if errs := apphttp.ReadAndValidateRequest(c, req); errs != nil {
		return apphttp.BadRequestResponse(c, errs)
	}

	id, err := h.tickets.Create(req.Items, req.Notes)
	if err != nil {
		return apphttp.AppErrorResponse(c, err)
	}
	return apphttp.CreatedResponse(c, map[string]int64{"ticket_id": id})
}

// currentLevel finds an entity's live reading in the relevant feed
// snapshot. Unmapped sources report N/A rather than an error.
func (h *Handler) currentLevel(e models.Entity) models.Value {
	switch e.Source {
	case "market":
		if q, ok := h.store.Quote(e.TechnicalKey); ok {
			return q.Price
		}
	case "macro":
		if snap := h.store.Macro(); snap != nil {
			if v, ok := snap.PolicyRates[e.TechnicalKey]; ok {
				return v
			}
			if v, ok := snap.Bonds[e.TechnicalKey]; ok {
				return v
			}
			switch e.TechnicalKey {
			case "cds":
				return snap.CDS.Val
			case "policy_rate":
				return snap.PolicyRates["aofm"]
			case "deposit_rate":
				return snap.PolicyRates["deposit"]
			case "com_loan":
				return snap.PolicyRates["comm_loan"]
			case "real_rate":
				return derive.RealRate(
					h.overrides.Resolve("policy_rate", snap.PolicyRates["aofm"]).Value,
					h.overrides.Resolve("cpi_yoy", h.store.TurkeyMacro().Find("cpi")).Value)
			case "real_carry":
				return derive.RealCarry(
					h.overrides.Resolve("deposit_rate", snap.PolicyRates["deposit"]).Value,
					h.overrides.Resolve("cpi_yoy", h.store.TurkeyMacro().Find("cpi")).Value,
					snap.Bonds["fed_funds"], snap.Bonds["us_cpi"])
			case "risk_premium":
				return derive.RiskPremiumBps(snap.Bonds["spread"])
			case "tr_curve":
				return derive.YieldCurveBps(
					h.overrides.Resolve("tr_10y", snap.Bonds["tr_10y"]).Value,
					h.overrides.Resolve("tr_2y", snap.Bonds["tr_2y"]).Value)
			}
		}
		return h.store.TurkeyMacro().Find(e.TechnicalKey)
	case "equity_risk":
		if snap := h.store.EquityRisk(); snap != nil {
			switch e.TechnicalKey {
			case "pe":
				return snap.PE
			case "tr_10y":
				return snap.TR10Y
			case "erp":
				return snap.ERP
			}
		}
	case "cbrt":
		if snap := h.store.CBRT(); snap != nil {
			switch e.TechnicalKey {
			case "policy_rate":
				return snap.CurrentRate
			case "next_meeting":
				return models.Parse(snap.NextMeeting)
			}
		}
	case "gold_corr":
		if snap := h.store.GoldCorr(); snap != nil {
			return snap.CorrUSD
		}
	case "scorecard":
		if snap := h.store.Scorecard(); snap != nil {
			return snap.Composite
		}
	}
	return models.NA()
}

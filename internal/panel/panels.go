package panel

import (
	"context"
	"log/slog"
	"time"

	"github.com/Flowearn/Flow-data/internal/binance"
	"github.com/Flowearn/Flow-data/internal/fallback"
	"github.com/Flowearn/Flow-data/internal/model"
)

// Default panel tuning, taken from the dashboard: per-panel refresh
// intervals and the volatility fraction each panel's fallback uses.
const (
	CandlePanelInterval      = 10 * time.Second
	VolumePanelInterval      = 15 * time.Second
	OrderBookPanelInterval   = 1 * time.Second
	TickerPanelInterval      = 5 * time.Second
	TradesPanelInterval      = 3 * time.Second
	FundingPanelInterval     = 60 * time.Second
	LiquidationPanelInterval = 30 * time.Second

	candleVolatility      = 0.02
	volumeVolatility      = 0.02
	orderBookVolatility   = 0.001
	tickerVolatility      = 0.01
	tradesVolatility      = 0.005
	fundingRateBand       = 0.0001
	liquidationVolatility = 0.05

	CandleLimit      = 100
	OrderBookDepth   = 20
	TradesLimit      = 50
	FundingLimit     = 30
	LiquidationLimit = 50
)

// Panel names exposed through the API.
const (
	PanelCandles      = "candles"
	PanelVolume       = "volume"
	PanelOrderBook    = "orderbook"
	PanelTicker       = "ticker"
	PanelTrades       = "trades"
	PanelFunding      = "funding"
	PanelLiquidations = "liquidations"
)

// BuildDefault assembles the dashboard's panel set: every panel fetches
// through the market data client and degrades to the synthesizer when the
// upstream fails.
func BuildDefault(client *binance.Client, synth *fallback.Synthesizer, symbol, interval string, logger *slog.Logger) *Manager {
	m := NewManager(symbol, interval, logger)

	candleID := Identity{Symbol: symbol, Interval: binance.Interval(interval), Limit: CandleLimit}
	m.Register(NewController(candleID, Config[[]model.Candle]{
		Name:            PanelCandles,
		RefreshInterval: CandlePanelInterval,
		IntervalDriven:  true,
		Fetch: func(ctx context.Context, id Identity) ([]model.Candle, error) {
			return client.GetCandles(ctx, id.Symbol, id.Interval, id.Limit)
		},
		Fallback: func(id Identity) []model.Candle {
			return synth.Candles(id.Symbol, intervalDuration(id.Interval), id.Limit, candleVolatility)
		},
		Logger:   logger,
		OnUpdate: m.Publish,
	}))

	volumeID := Identity{Symbol: symbol, Interval: binance.Interval(interval), Limit: CandleLimit}
	m.Register(NewController(volumeID, Config[[]model.Candle]{
		Name:            PanelVolume,
		RefreshInterval: VolumePanelInterval,
		IntervalDriven:  true,
		Fetch: func(ctx context.Context, id Identity) ([]model.Candle, error) {
			return client.GetCandles(ctx, id.Symbol, id.Interval, id.Limit)
		},
		Fallback: func(id Identity) []model.Candle {
			return synth.Candles(id.Symbol, intervalDuration(id.Interval), id.Limit, volumeVolatility)
		},
		Logger:   logger,
		OnUpdate: m.Publish,
	}))

	bookID := Identity{Symbol: symbol, Limit: OrderBookDepth}
	m.Register(NewController(bookID, Config[*model.OrderBookSnapshot]{
		Name:            PanelOrderBook,
		RefreshInterval: OrderBookPanelInterval,
		Fetch: func(ctx context.Context, id Identity) (*model.OrderBookSnapshot, error) {
			return client.GetOrderBook(ctx, id.Symbol, id.Limit)
		},
		Fallback: func(id Identity) *model.OrderBookSnapshot {
			return synth.OrderBook(id.Symbol, id.Limit, orderBookVolatility)
		},
		Logger:   logger,
		OnUpdate: m.Publish,
	}))

	tickerID := Identity{Symbol: symbol}
	m.Register(NewController(tickerID, Config[*model.TickerStats]{
		Name:            PanelTicker,
		RefreshInterval: TickerPanelInterval,
		Fetch: func(ctx context.Context, id Identity) (*model.TickerStats, error) {
			return client.GetTicker(ctx, id.Symbol)
		},
		Fallback: func(id Identity) *model.TickerStats {
			return synth.Ticker(id.Symbol, tickerVolatility)
		},
		Logger:   logger,
		OnUpdate: m.Publish,
	}))

	tradesID := Identity{Symbol: symbol, Limit: TradesLimit}
	m.Register(NewController(tradesID, Config[[]model.Trade]{
		Name:            PanelTrades,
		RefreshInterval: TradesPanelInterval,
		Fetch: func(ctx context.Context, id Identity) ([]model.Trade, error) {
			return client.GetTrades(ctx, id.Symbol, id.Limit)
		},
		Fallback: func(id Identity) []model.Trade {
			return synth.Trades(id.Symbol, id.Limit, tradesVolatility)
		},
		Logger:   logger,
		OnUpdate: m.Publish,
	}))

	fundingID := Identity{Symbol: symbol, Limit: FundingLimit}
	m.Register(NewController(fundingID, Config[[]model.FundingRateSample]{
		Name:            PanelFunding,
		RefreshInterval: FundingPanelInterval,
		Fetch: func(ctx context.Context, id Identity) ([]model.FundingRateSample, error) {
			return client.GetFundingRates(ctx, id.Symbol, id.Limit)
		},
		Fallback: func(id Identity) []model.FundingRateSample {
			return synth.FundingRates(id.Symbol, id.Limit, fundingRateBand)
		},
		Logger:   logger,
		OnUpdate: m.Publish,
	}))

	liqID := Identity{Symbol: symbol, Limit: LiquidationLimit}
	m.Register(NewController(liqID, Config[[]model.LiquidationEvent]{
		Name:            PanelLiquidations,
		RefreshInterval: LiquidationPanelInterval,
		Fetch: func(ctx context.Context, id Identity) ([]model.LiquidationEvent, error) {
			return client.GetLiquidations(ctx, id.Symbol, id.Limit)
		},
		Fallback: func(id Identity) []model.LiquidationEvent {
			return synth.Liquidations(id.Symbol, id.Limit, liquidationVolatility)
		},
		Logger:   logger,
		OnUpdate: m.Publish,
	}))

	return m
}

// intervalDuration maps a kline interval onto the wall-clock width of one
// bar, for spacing synthetic candles.
func intervalDuration(iv binance.Interval) time.Duration {
	switch iv {
	case binance.Interval1m:
		return time.Minute
	case binance.Interval3m:
		return 3 * time.Minute
	case binance.Interval5m:
		return 5 * time.Minute
	case binance.Interval15m:
		return 15 * time.Minute
	case binance.Interval30m:
		return 30 * time.Minute
	case binance.Interval1h:
		return time.Hour
	case binance.Interval2h:
		return 2 * time.Hour
	case binance.Interval4h:
		return 4 * time.Hour
	case binance.Interval6h:
		return 6 * time.Hour
	case binance.Interval8h:
		return 8 * time.Hour
	case binance.Interval12h:
		return 12 * time.Hour
	case binance.Interval1d:
		return 24 * time.Hour
	case binance.Interval3d:
		return 72 * time.Hour
	case binance.Interval1w:
		return 7 * 24 * time.Hour
	case binance.Interval1M:
		return 30 * 24 * time.Hour
	default:
		return time.Hour
	}
}

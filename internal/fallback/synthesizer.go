package fallback

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Flowearn/Flow-data/internal/model"
	"github.com/google/uuid"
)

// SynthesizerConfig holds the shaping table for synthetic market data
type SynthesizerConfig struct {
	BasePrices       map[string]float64
	DefaultBasePrice float64

	// Now supplies timestamps for synthesized records. Defaults to time.Now;
	// tests pin it so a seeded synthesizer reproduces output exactly.
	Now func() time.Time
}

// DefaultSynthesizerConfig returns the base prices used when the upstream
// is unreachable. Unrecognized symbols fall back to DefaultBasePrice.
func DefaultSynthesizerConfig() SynthesizerConfig {
	return SynthesizerConfig{
		BasePrices: map[string]float64{
			"BTCUSDT": 50000.0,
			"ETHUSDT": 3000.0,
			"SOLUSDT": 100.0,
			"BNBUSDT": 300.0,
			"XRPUSDT": 0.5,
		},
		DefaultBasePrice: 100.0,
	}
}

// Synthesizer generates bounded pseudo-random market datasets shaped to look
// plausible for a given symbol. All output is deterministic for a given
// random source, so tests can seed it and assert exact values.
type Synthesizer struct {
	config SynthesizerConfig

	// mu serializes draws from rng, which is not safe for concurrent use.
	// Panels poll independently and can degrade at the same moment.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSynthesizer creates a synthesizer with default config driven by the
// supplied random source.
func NewSynthesizer(rng *rand.Rand) *Synthesizer {
	return NewSynthesizerWithConfig(rng, DefaultSynthesizerConfig())
}

// NewSynthesizerWithConfig creates a synthesizer with a custom shaping table.
func NewSynthesizerWithConfig(rng *rand.Rand, config SynthesizerConfig) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Synthesizer{config: config, rng: rng}
}

// BasePrice resolves the shaping price for a symbol.
func (s *Synthesizer) BasePrice(symbol string) float64 {
	if price, ok := s.config.BasePrices[strings.ToUpper(symbol)]; ok {
		return price
	}
	return s.config.DefaultBasePrice
}

// offset draws a uniform value in [-volatility/2, +volatility/2].
func (s *Synthesizer) offset(volatility float64) float64 {
	return (s.rng.Float64() - 0.5) * volatility
}

// spread draws a uniform value in [0, volatility] for one-sided distributions.
func (s *Synthesizer) spread(volatility float64) float64 {
	return s.rng.Float64() * volatility
}

// snapshotID draws a UUID from the synthesizer's own random source so that
// snapshots are reproducible under a seeded source.
func (s *Synthesizer) snapshotID() string {
	id, err := uuid.NewRandomFromReader(s.rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Candles synthesizes a chained series of bars: each bar opens at the
// previous bar's close so the series reads like a plausible price path.
func (s *Synthesizer) Candles(symbol string, interval time.Duration, limit int, volatilityFraction float64) []model.Candle {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.BasePrice(symbol)
	volatility := base * volatilityFraction

	now := s.config.Now().UTC().Truncate(interval)
	start := now.Add(-time.Duration(limit) * interval)

	candles := make([]model.Candle, 0, limit)
	open := base
	for i := 0; i < limit; i++ {
		closePrice := open + s.offset(volatility)
		high := maxFloat(open, closePrice) + s.spread(volatility/4)
		low := minFloat(open, closePrice) - s.spread(volatility/4)
		if low <= 0 {
			low = minFloat(open, closePrice) * 0.99
		}
		openTime := start.Add(time.Duration(i) * interval)

		candles = append(candles, model.Candle{
			OpenTime:    openTime,
			Open:        open,
			High:        high,
			Low:         low,
			Close:       closePrice,
			Volume:      10 + s.rng.Float64()*90,
			CloseTime:   openTime.Add(interval),
			QuoteVolume: (10 + s.rng.Float64()*90) * base,
			TradeCount:  int64(50 + s.rng.Intn(950)),
			IsRising:    closePrice >= open,
		})
		open = closePrice
	}
	return candles
}

// OrderBook synthesizes a depth snapshot with bids stepping down and asks
// stepping up from the base price, cumulative totals monotone on each side.
func (s *Synthesizer) OrderBook(symbol string, depth int, volatilityFraction float64) *model.OrderBookSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.BasePrice(symbol)
	volatility := base * volatilityFraction
	tick := volatility / float64(depth+1)

	bids := make([]model.OrderBookLevel, 0, depth)
	asks := make([]model.OrderBookLevel, 0, depth)
	var bidTotal, askTotal float64
	for i := 1; i <= depth; i++ {
		bidQty := 0.1 + s.rng.Float64()*5
		bidTotal += bidQty
		bids = append(bids, model.OrderBookLevel{
			Price:    base - tick*float64(i),
			Quantity: bidQty,
			Total:    bidTotal,
		})

		askQty := 0.1 + s.rng.Float64()*5
		askTotal += askQty
		asks = append(asks, model.OrderBookLevel{
			Price:    base + tick*float64(i),
			Quantity: askQty,
			Total:    askTotal,
		})
	}

	now := s.config.Now().UTC()
	return &model.OrderBookSnapshot{
		SnapshotID: s.snapshotID(),
		UpdateID:   now.UnixMilli(),
		Symbol:     symbol,
		Bids:       bids,
		Asks:       asks,
		Time:       now,
	}
}

// Ticker synthesizes 24h rolling stats consistent with each other: percent
// change agrees with change over open within float rounding.
func (s *Synthesizer) Ticker(symbol string, volatilityFraction float64) *model.TickerStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.BasePrice(symbol)
	volatility := base * volatilityFraction

	open := base + s.offset(volatility)
	last := open + s.offset(volatility)
	change := last - open

	return &model.TickerStats{
		Symbol:             symbol,
		LastPrice:          last,
		PriceChange:        change,
		PriceChangePercent: change / open * 100,
		OpenPrice:          open,
		HighPrice:          maxFloat(open, last) + s.spread(volatility/2),
		LowPrice:           minFloat(open, last) - s.spread(volatility/2),
		Volume:             1000 + s.rng.Float64()*9000,
		QuoteVolume:        (1000 + s.rng.Float64()*9000) * base,
	}
}

// Trades synthesizes recent trades with strictly increasing IDs and times.
func (s *Synthesizer) Trades(symbol string, limit int, volatilityFraction float64) []model.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.BasePrice(symbol)
	volatility := base * volatilityFraction

	now := s.config.Now().UTC()
	startID := int64(1_000_000 + s.rng.Intn(1_000_000))

	trades := make([]model.Trade, 0, limit)
	price := base
	for i := 0; i < limit; i++ {
		price += s.offset(volatility)
		qty := 0.01 + s.rng.Float64()*2
		isBuyerMaker := s.rng.Float64() < 0.5
		trades = append(trades, model.Trade{
			ID:            startID + int64(i),
			Price:         price,
			Quantity:      qty,
			QuoteQuantity: price * qty,
			Time:          now.Add(time.Duration(i-limit) * time.Second),
			IsBuyerMaker:  isBuyerMaker,
			IsBuy:         !isBuyerMaker,
		})
	}
	return trades
}

// FundingRates synthesizes funding samples at the standard 8h cadence with
// strictly increasing times. rateBand is an absolute band, not a fraction of
// price: rates live in [-rateBand/2, +rateBand/2].
func (s *Synthesizer) FundingRates(symbol string, limit int, rateBand float64) []model.FundingRateSample {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.BasePrice(symbol)
	now := s.config.Now().UTC().Truncate(8 * time.Hour)

	samples := make([]model.FundingRateSample, 0, limit)
	for i := 0; i < limit; i++ {
		samples = append(samples, model.FundingRateSample{
			Symbol:    symbol,
			Time:      now.Add(time.Duration(i-limit) * 8 * time.Hour),
			Rate:      s.offset(rateBand),
			MarkPrice: base + s.offset(base*0.01),
		})
	}
	return samples
}

// Liquidations synthesizes forced-close orders. The price spread away from
// the base is one-sided per event direction: sells liquidate below the base
// price, buys above it.
func (s *Synthesizer) Liquidations(symbol string, limit int, volatilityFraction float64) []model.LiquidationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.BasePrice(symbol)
	volatility := base * volatilityFraction

	now := s.config.Now().UTC()
	events := make([]model.LiquidationEvent, 0, limit)
	for i := 0; i < limit; i++ {
		side := "SELL"
		price := base - s.spread(volatility)
		if s.rng.Float64() < 0.5 {
			side = "BUY"
			price = base + s.spread(volatility)
		}
		origQty := 0.1 + s.rng.Float64()*10
		executedQty := origQty * s.rng.Float64()
		events = append(events, model.LiquidationEvent{
			Symbol:      symbol,
			Price:       price,
			OrigQty:     origQty,
			ExecutedQty: executedQty,
			AvgPrice:    price,
			Side:        side,
			Status:      "FILLED",
			Time:        now.Add(time.Duration(i-limit) * time.Minute),
		})
	}
	return events
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

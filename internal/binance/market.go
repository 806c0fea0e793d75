package binance

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Flowearn/Flow-data/internal/model"
	"github.com/google/uuid"
)

// GetCandles fetches up to limit klines for a symbol and interval from
// /api/v3/klines and normalizes them into typed bars, oldest first.
func (c *Client) GetCandles(ctx context.Context, symbol string, interval Interval, limit int) ([]model.Candle, error) {
	const endpoint = "/api/v3/klines"
	if !interval.Valid() {
		return nil, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("unsupported interval %q", interval)}
	}

	query := make(url.Values)
	query.Set("symbol", symbol)
	query.Set("interval", string(interval))
	query.Set("limit", clampLimit(limit, 1000))

	var raw []rawKline
	if err := c.get(ctx, c.baseURL, endpoint, query, &raw); err != nil {
		return nil, err
	}

	candles := make([]model.Candle, 0, len(raw))
	for i, k := range raw {
		candle, err := normalizeKline(k)
		if err != nil {
			return nil, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("kline %d: %w", i, err)}
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

// GetOrderBook fetches a depth snapshot from /api/v3/depth with at most
// limit levels per side, bids descending and asks ascending by price.
func (c *Client) GetOrderBook(ctx context.Context, symbol string, limit int) (*model.OrderBookSnapshot, error) {
	const endpoint = "/api/v3/depth"

	query := make(url.Values)
	query.Set("symbol", symbol)
	query.Set("limit", clampLimit(limit, 1000))

	var raw rawDepth
	if err := c.get(ctx, c.baseURL, endpoint, query, &raw); err != nil {
		return nil, err
	}

	bids, err := normalizeLevels(raw.Bids, limit)
	if err != nil {
		return nil, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("bids: %w", err)}
	}
	asks, err := normalizeLevels(raw.Asks, limit)
	if err != nil {
		return nil, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("asks: %w", err)}
	}

	return &model.OrderBookSnapshot{
		SnapshotID: uuid.NewString(),
		UpdateID:   raw.LastUpdateID,
		Symbol:     symbol,
		Bids:       bids,
		Asks:       asks,
		Time:       time.Now().UTC(),
	}, nil
}

// GetTicker fetches the 24h rolling statistics from /api/v3/ticker/24hr.
func (c *Client) GetTicker(ctx context.Context, symbol string) (*model.TickerStats, error) {
	const endpoint = "/api/v3/ticker/24hr"

	query := make(url.Values)
	query.Set("symbol", symbol)

	var raw rawTicker
	if err := c.get(ctx, c.baseURL, endpoint, query, &raw); err != nil {
		return nil, err
	}

	stats := &model.TickerStats{Symbol: raw.Symbol}
	fields := []struct {
		dst *float64
		src string
	}{
		{&stats.LastPrice, raw.LastPrice},
		{&stats.PriceChange, raw.PriceChange},
		{&stats.PriceChangePercent, raw.PriceChangePercent},
		{&stats.OpenPrice, raw.OpenPrice},
		{&stats.HighPrice, raw.HighPrice},
		{&stats.LowPrice, raw.LowPrice},
		{&stats.Volume, raw.Volume},
		{&stats.QuoteVolume, raw.QuoteVolume},
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(f.src, 64)
		if err != nil {
			return nil, &ParseError{Endpoint: endpoint, Err: err}
		}
		*f.dst = v
	}
	return stats, nil
}

// GetTrades fetches up to limit recent trades from /api/v3/trades,
// oldest first as the venue returns them.
func (c *Client) GetTrades(ctx context.Context, symbol string, limit int) ([]model.Trade, error) {
	const endpoint = "/api/v3/trades"

	query := make(url.Values)
	query.Set("symbol", symbol)
	query.Set("limit", clampLimit(limit, 1000))

	var raw []rawTrade
	if err := c.get(ctx, c.baseURL, endpoint, query, &raw); err != nil {
		return nil, err
	}

	trades := make([]model.Trade, 0, len(raw))
	for i, rt := range raw {
		price, err := strconv.ParseFloat(rt.Price, 64)
		if err != nil {
			return nil, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("trade %d price: %w", i, err)}
		}
		qty, err := strconv.ParseFloat(rt.Qty, 64)
		if err != nil {
			return nil, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("trade %d qty: %w", i, err)}
		}
		quoteQty, err := strconv.ParseFloat(rt.QuoteQty, 64)
		if err != nil {
			return nil, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("trade %d quoteQty: %w", i, err)}
		}
		trades = append(trades, model.Trade{
			ID:            rt.ID,
			Price:         price,
			Quantity:      qty,
			QuoteQuantity: quoteQty,
			Time:          time.UnixMilli(rt.Time).UTC(),
			IsBuyerMaker:  rt.IsBuyerMaker,
			IsBuy:         !rt.IsBuyerMaker,
		})
	}
	return trades, nil
}

// GetFundingRates fetches up to limit funding observations from
// /fapi/v1/fundingRate on the derivatives venue.
func (c *Client) GetFundingRates(ctx context.Context, symbol string, limit int) ([]model.FundingRateSample, error) {
	const endpoint = "/fapi/v1/fundingRate"

	query := make(url.Values)
	query.Set("symbol", symbol)
	query.Set("limit", clampLimit(limit, 1000))

	var raw []rawFundingRate
	if err := c.get(ctx, c.futuresBaseURL, endpoint, query, &raw); err != nil {
		return nil, err
	}

	samples := make([]model.FundingRateSample, 0, len(raw))
	for i, rf := range raw {
		rate, err := strconv.ParseFloat(rf.FundingRate, 64)
		if err != nil {
			return nil, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("sample %d rate: %w", i, err)}
		}
		// markPrice is absent on older observations
		var markPrice float64
		if rf.MarkPrice != "" {
			markPrice, err = strconv.ParseFloat(rf.MarkPrice, 64)
			if err != nil {
				return nil, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("sample %d markPrice: %w", i, err)}
			}
		}
		samples = append(samples, model.FundingRateSample{
			Symbol:    rf.Symbol,
			Time:      time.UnixMilli(rf.FundingTime).UTC(),
			Rate:      rate,
			MarkPrice: markPrice,
		})
	}
	return samples, nil
}

// GetLiquidations fetches up to limit forced-close orders from
// /fapi/v1/allForceOrders on the derivatives venue.
func (c *Client) GetLiquidations(ctx context.Context, symbol string, limit int) ([]model.LiquidationEvent, error) {
	const endpoint = "/fapi/v1/allForceOrders"

	query := make(url.Values)
	query.Set("symbol", symbol)
	query.Set("limit", clampLimit(limit, 1000))

	var raw []rawForceOrder
	if err := c.get(ctx, c.futuresBaseURL, endpoint, query, &raw); err != nil {
		return nil, err
	}

	events := make([]model.LiquidationEvent, 0, len(raw))
	for i, ro := range raw {
		price, err := strconv.ParseFloat(ro.Price, 64)
		if err != nil {
			return nil, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("order %d price: %w", i, err)}
		}
		origQty, err := strconv.ParseFloat(ro.OrigQty, 64)
		if err != nil {
			return nil, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("order %d origQty: %w", i, err)}
		}
		executedQty, err := strconv.ParseFloat(ro.ExecutedQty, 64)
		if err != nil {
			return nil, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("order %d executedQty: %w", i, err)}
		}
		var avgPrice float64
		if ro.AveragePrice != "" {
			avgPrice, err = strconv.ParseFloat(ro.AveragePrice, 64)
			if err != nil {
				return nil, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("order %d averagePrice: %w", i, err)}
			}
		}
		events = append(events, model.LiquidationEvent{
			Symbol:      ro.Symbol,
			Price:       price,
			OrigQty:     origQty,
			ExecutedQty: executedQty,
			AvgPrice:    avgPrice,
			Side:        ro.Side,
			Status:      ro.Status,
			Time:        time.UnixMilli(ro.Time).UTC(),
		})
	}
	return events, nil
}

// normalizeKline maps one 12-element kline array onto a typed candle.
func normalizeKline(k rawKline) (model.Candle, error) {
	if len(k) < 9 {
		return model.Candle{}, fmt.Errorf("expected at least 9 elements, got %d", len(k))
	}

	openTime, err := klineMillis(k[0])
	if err != nil {
		return model.Candle{}, fmt.Errorf("open time: %w", err)
	}
	closeTime, err := klineMillis(k[6])
	if err != nil {
		return model.Candle{}, fmt.Errorf("close time: %w", err)
	}

	var open, high, low, closePrice, volume, quoteVolume float64
	decimals := []struct {
		dst  *float64
		src  any
		name string
	}{
		{&open, k[1], "open"},
		{&high, k[2], "high"},
		{&low, k[3], "low"},
		{&closePrice, k[4], "close"},
		{&volume, k[5], "volume"},
		{&quoteVolume, k[7], "quote volume"},
	}
	for _, d := range decimals {
		v, err := klineDecimal(d.src)
		if err != nil {
			return model.Candle{}, fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = v
	}

	tradeCount, err := klineMillis(k[8])
	if err != nil {
		return model.Candle{}, fmt.Errorf("trade count: %w", err)
	}

	return model.Candle{
		OpenTime:    time.UnixMilli(openTime).UTC(),
		Open:        open,
		High:        high,
		Low:         low,
		Close:       closePrice,
		Volume:      volume,
		CloseTime:   time.UnixMilli(closeTime).UTC(),
		QuoteVolume: quoteVolume,
		TradeCount:  tradeCount,
		IsRising:    closePrice >= open,
	}, nil
}

// normalizeLevels parses [price, quantity] string pairs and accumulates the
// running total outward from the best price, truncating to limit levels.
func normalizeLevels(raw [][2]string, limit int) ([]model.OrderBookLevel, error) {
	if limit > 0 && len(raw) > limit {
		raw = raw[:limit]
	}
	levels := make([]model.OrderBookLevel, 0, len(raw))
	var running float64
	for i, pair := range raw {
		price, err := strconv.ParseFloat(pair[0], 64)
		if err != nil {
			return nil, fmt.Errorf("level %d price: %w", i, err)
		}
		qty, err := strconv.ParseFloat(pair[1], 64)
		if err != nil {
			return nil, fmt.Errorf("level %d quantity: %w", i, err)
		}
		running += qty
		levels = append(levels, model.OrderBookLevel{
			Price:    price,
			Quantity: qty,
			Total:    running,
		})
	}
	return levels, nil
}

// klineMillis reads a JSON number element as int64.
func klineMillis(v any) (int64, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("expected number, got %T", v)
	}
	return int64(f), nil
}

// klineDecimal reads a string-encoded decimal element as float64.
func klineDecimal(v any) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("expected string decimal, got %T", v)
	}
	return strconv.ParseFloat(s, 64)
}

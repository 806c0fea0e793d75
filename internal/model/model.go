package model

import "time"

// Candle represents one OHLCV bar for a time interval
type Candle struct {
	OpenTime    time.Time `json:"open_time"`
	Open        float64   `json:"open"`
	High        float64   `json:"high"`
	Low         float64   `json:"low"`
	Close       float64   `json:"close"`
	Volume      float64   `json:"volume"`
	CloseTime   time.Time `json:"close_time"`
	QuoteVolume float64   `json:"quote_volume"`
	TradeCount  int64     `json:"trade_count"`
	IsRising    bool      `json:"is_rising"`
}

// OrderBookLevel is one price level on a side of the book. Total is the
// running cumulative quantity walking outward from the best price.
type OrderBookLevel struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Total    float64 `json:"total"`
}

// OrderBookSnapshot is a point-in-time view of the book.
// Bids are sorted descending by price, asks ascending; both are stored
// nearest-to-farthest from the mid. Visual reordering is a rendering concern.
type OrderBookSnapshot struct {
	SnapshotID string           `json:"snapshot_id"`
	UpdateID   int64            `json:"update_id"`
	Symbol     string           `json:"symbol"`
	Bids       []OrderBookLevel `json:"bids"`
	Asks       []OrderBookLevel `json:"asks"`
	Time       time.Time        `json:"time"`
}

// TickerStats holds the 24h rolling statistics for a symbol
type TickerStats struct {
	Symbol             string  `json:"symbol"`
	LastPrice          float64 `json:"last_price"`
	PriceChange        float64 `json:"price_change"`
	PriceChangePercent float64 `json:"price_change_percent"`
	OpenPrice          float64 `json:"open_price"`
	HighPrice          float64 `json:"high_price"`
	LowPrice           float64 `json:"low_price"`
	Volume             float64 `json:"volume"`
	QuoteVolume        float64 `json:"quote_volume"`
}

// Trade represents a single executed trade
type Trade struct {
	ID            int64     `json:"id"`
	Price         float64   `json:"price"`
	Quantity      float64   `json:"quantity"`
	QuoteQuantity float64   `json:"quote_quantity"`
	Time          time.Time `json:"time"`
	IsBuyerMaker  bool      `json:"is_buyer_maker"`
	IsBuy         bool      `json:"is_buy"`
}

// FundingRateSample is one funding observation for a perpetual contract
type FundingRateSample struct {
	Symbol    string    `json:"symbol"`
	Time      time.Time `json:"time"`
	Rate      float64   `json:"rate"`
	MarkPrice float64   `json:"mark_price"`
}

// LiquidationEvent is one forced-close order on the derivatives venue
type LiquidationEvent struct {
	Symbol      string    `json:"symbol"`
	Price       float64   `json:"price"`
	OrigQty     float64   `json:"orig_qty"`
	ExecutedQty float64   `json:"executed_qty"`
	AvgPrice    float64   `json:"avg_price"`
	Side        string    `json:"side"`
	Status      string    `json:"status"`
	Time        time.Time `json:"time"`
}

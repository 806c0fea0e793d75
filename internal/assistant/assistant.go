package assistant

import (
	"fmt"
	"strings"

	"github.com/Flowearn/Flow-data/internal/model"
	"github.com/Flowearn/Flow-data/internal/panel"
)

// TickerSource supplies the live ticker view so responses can quote the
// current price. The panel manager satisfies it.
type TickerSource interface {
	View(name string) (panel.View, bool)
	Symbol() string
}

// Assistant maps keywords in a user message onto canned template responses.
// It holds no conversation state: same message in, same shape of answer out.
type Assistant struct {
	source TickerSource
}

// New creates an assistant reading prices from the given source.
func New(source TickerSource) *Assistant {
	return &Assistant{source: source}
}

// rules are checked in order; the first keyword contained in the message
// wins. The response may reference the live ticker via the %s / %.2f verbs
// filled in by Reply.
type rule struct {
	keywords []string
	respond  func(a *Assistant) string
}

var rules = []rule{
	{
		keywords: []string{"price", "how much", "worth"},
		respond: func(a *Assistant) string {
			symbol := a.source.Symbol()
			if stats, ok := a.tickerStats(); ok {
				return fmt.Sprintf("%s is trading at %.2f, %+.2f%% over the last 24 hours.",
					symbol, stats.LastPrice, stats.PriceChangePercent)
			}
			return fmt.Sprintf("Live price for %s is unavailable right now; the dashboard is showing placeholder data.", symbol)
		},
	},
	{
		keywords: []string{"funding"},
		respond: func(a *Assistant) string {
			return "The funding panel shows the periodic rate exchanged between long and short holders of the perpetual contract. Positive rates mean longs pay shorts."
		},
	},
	{
		keywords: []string{"liquidation", "liquidated"},
		respond: func(a *Assistant) string {
			return "The liquidation panel lists forced position closes on the derivatives venue. Clusters of liquidations often mark local price extremes."
		},
	},
	{
		keywords: []string{"order book", "orderbook", "depth", "bid", "ask"},
		respond: func(a *Assistant) string {
			return "The order book panel shows outstanding buy and sell levels around the mid price. The cumulative column walks outward from the best price on each side."
		},
	},
	{
		keywords: []string{"candle", "chart", "ohlc"},
		respond: func(a *Assistant) string {
			return "The candlestick chart aggregates trades into open/high/low/close bars. Use the interval selector to change the bar width."
		},
	},
	{
		keywords: []string{"help", "what can you"},
		respond: func(a *Assistant) string {
			return "Ask me about the price, the order book, candles, funding, or liquidations for the active symbol."
		},
	},
	{
		keywords: []string{"hello", "hi ", "hey"},
		respond: func(a *Assistant) string {
			return fmt.Sprintf("Hello! The dashboard is tracking %s. Ask me about any panel.", a.source.Symbol())
		},
	},
}

const defaultReply = "I can answer questions about prices, candles, the order book, funding and liquidations. Try asking about one of the panels."

// Reply produces the canned response for one message.
func (a *Assistant) Reply(message string) string {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.respond(a)
			}
		}
	}
	return defaultReply
}

func (a *Assistant) tickerStats() (*model.TickerStats, bool) {
	view, ok := a.source.View(panel.PanelTicker)
	if !ok || view.Data == nil {
		return nil, false
	}
	stats, ok := view.Data.(*model.TickerStats)
	if !ok {
		return nil, false
	}
	// synthetic data is a placeholder, not a quote
	if view.Synthetic {
		return nil, false
	}
	return stats, true
}

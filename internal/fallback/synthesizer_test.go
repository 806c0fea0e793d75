package fallback

import (
	"math/rand"
	"reflect"
	"testing"
	"time"
)

// fixedClock pins timestamps so seeded output is fully reproducible.
func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newSeededSynthesizer(seed int64) *Synthesizer {
	config := DefaultSynthesizerConfig()
	config.Now = fixedClock
	return NewSynthesizerWithConfig(rand.New(rand.NewSource(seed)), config)
}

func TestDefaultSynthesizerConfig(t *testing.T) {
	config := DefaultSynthesizerConfig()

	expectedPrices := map[string]float64{
		"BTCUSDT": 50000.0,
		"ETHUSDT": 3000.0,
		"SOLUSDT": 100.0,
		"BNBUSDT": 300.0,
		"XRPUSDT": 0.5,
	}
	for symbol, expectedPrice := range expectedPrices {
		if price, exists := config.BasePrices[symbol]; !exists {
			t.Errorf("Expected base price for %s to exist", symbol)
		} else if price != expectedPrice {
			t.Errorf("Expected base price for %s to be %f, got %f", symbol, expectedPrice, price)
		}
	}

	if config.DefaultBasePrice != 100.0 {
		t.Errorf("Expected default base price to be 100, got %f", config.DefaultBasePrice)
	}
}

func TestBasePriceLookup(t *testing.T) {
	synth := newSeededSynthesizer(1)

	if got := synth.BasePrice("BTCUSDT"); got != 50000.0 {
		t.Errorf("Expected BTCUSDT base price 50000, got %f", got)
	}
	if got := synth.BasePrice("btcusdt"); got != 50000.0 {
		t.Errorf("Expected case-insensitive lookup, got %f", got)
	}
	if got := synth.BasePrice("UNKNOWNUSDT"); got != 100.0 {
		t.Errorf("Expected unrecognized symbol to use default price, got %f", got)
	}
}

func TestCandlesChainOpenToClose(t *testing.T) {
	synth := newSeededSynthesizer(42)

	candles := synth.Candles("BTCUSDT", time.Hour, 2, 0.02)
	if len(candles) != 2 {
		t.Fatalf("Expected 2 candles, got %d", len(candles))
	}

	// chaining invariant: each bar opens where the previous one closed
	if candles[1].Open != candles[0].Close {
		t.Errorf("Expected second open %f to equal first close %f", candles[1].Open, candles[0].Close)
	}
}

func TestCandlesInvariants(t *testing.T) {
	synth := newSeededSynthesizer(7)

	candles := synth.Candles("ETHUSDT", time.Hour, 50, 0.02)
	if len(candles) != 50 {
		t.Fatalf("Expected 50 candles, got %d", len(candles))
	}

	for i, candle := range candles {
		if candle.High < candle.Open || candle.High < candle.Close {
			t.Errorf("Candle %d: high %f below open %f or close %f", i, candle.High, candle.Open, candle.Close)
		}
		if candle.Low > candle.Open || candle.Low > candle.Close {
			t.Errorf("Candle %d: low %f above open %f or close %f", i, candle.Low, candle.Open, candle.Close)
		}
		if !candle.CloseTime.After(candle.OpenTime) {
			t.Errorf("Candle %d: close time not after open time", i)
		}
		if candle.IsRising != (candle.Close >= candle.Open) {
			t.Errorf("Candle %d: IsRising inconsistent with open/close", i)
		}
		if i > 0 && candle.Open != candles[i-1].Close {
			t.Errorf("Candle %d: open %f does not chain from previous close %f", i, candle.Open, candles[i-1].Close)
		}
	}
}

func TestSynthesisDeterminism(t *testing.T) {
	first := newSeededSynthesizer(99)
	second := newSeededSynthesizer(99)

	if !reflect.DeepEqual(first.Candles("BTCUSDT", time.Hour, 10, 0.02), second.Candles("BTCUSDT", time.Hour, 10, 0.02)) {
		t.Error("Expected identical candles from identical seeds")
	}
	if !reflect.DeepEqual(first.OrderBook("BTCUSDT", 10, 0.001), second.OrderBook("BTCUSDT", 10, 0.001)) {
		t.Error("Expected identical order books from identical seeds")
	}
	if !reflect.DeepEqual(first.Ticker("BTCUSDT", 0.01), second.Ticker("BTCUSDT", 0.01)) {
		t.Error("Expected identical tickers from identical seeds")
	}
	if !reflect.DeepEqual(first.Trades("BTCUSDT", 20, 0.005), second.Trades("BTCUSDT", 20, 0.005)) {
		t.Error("Expected identical trades from identical seeds")
	}
	if !reflect.DeepEqual(first.FundingRates("BTCUSDT", 10, 0.0001), second.FundingRates("BTCUSDT", 10, 0.0001)) {
		t.Error("Expected identical funding rates from identical seeds")
	}
	if !reflect.DeepEqual(first.Liquidations("BTCUSDT", 10, 0.05), second.Liquidations("BTCUSDT", 10, 0.05)) {
		t.Error("Expected identical liquidations from identical seeds")
	}
}

func TestOrderBookShape(t *testing.T) {
	synth := newSeededSynthesizer(5)

	book := synth.OrderBook("SOLUSDT", 15, 0.001)
	if len(book.Bids) != 15 || len(book.Asks) != 15 {
		t.Fatalf("Expected 15 levels per side, got %d bids and %d asks", len(book.Bids), len(book.Asks))
	}

	base := synth.BasePrice("SOLUSDT")
	for i, level := range book.Bids {
		if level.Price >= base {
			t.Errorf("Bid %d price %f not below base %f", i, level.Price, base)
		}
		if i > 0 {
			if level.Price >= book.Bids[i-1].Price {
				t.Errorf("Bid %d price %f not descending", i, level.Price)
			}
			if level.Total < book.Bids[i-1].Total {
				t.Errorf("Bid %d total %f decreased", i, level.Total)
			}
		}
	}
	for i, level := range book.Asks {
		if level.Price <= base {
			t.Errorf("Ask %d price %f not above base %f", i, level.Price, base)
		}
		if i > 0 {
			if level.Price <= book.Asks[i-1].Price {
				t.Errorf("Ask %d price %f not ascending", i, level.Price)
			}
			if level.Total < book.Asks[i-1].Total {
				t.Errorf("Ask %d total %f decreased", i, level.Total)
			}
		}
	}

	if book.SnapshotID == "" {
		t.Error("Expected snapshot ID to be set")
	}
}

func TestTickerConsistency(t *testing.T) {
	synth := newSeededSynthesizer(11)

	stats := synth.Ticker("BTCUSDT", 0.01)
	if stats.HighPrice < stats.LowPrice {
		t.Errorf("High %f below low %f", stats.HighPrice, stats.LowPrice)
	}

	expectedPercent := stats.PriceChange / stats.OpenPrice * 100
	diff := stats.PriceChangePercent - expectedPercent
	if diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Percent change %f inconsistent with change/open %f", stats.PriceChangePercent, expectedPercent)
	}
}

func TestTradesOrdering(t *testing.T) {
	synth := newSeededSynthesizer(13)

	trades := synth.Trades("ETHUSDT", 25, 0.005)
	if len(trades) != 25 {
		t.Fatalf("Expected 25 trades, got %d", len(trades))
	}

	for i, trade := range trades {
		if trade.IsBuy == trade.IsBuyerMaker {
			t.Errorf("Trade %d: IsBuy must be the negation of IsBuyerMaker", i)
		}
		if i > 0 {
			if trade.ID <= trades[i-1].ID {
				t.Errorf("Trade %d: ID %d not strictly increasing", i, trade.ID)
			}
			if !trade.Time.After(trades[i-1].Time) {
				t.Errorf("Trade %d: time not strictly increasing", i)
			}
		}
	}
}

func TestFundingRatesOrdering(t *testing.T) {
	synth := newSeededSynthesizer(17)

	samples := synth.FundingRates("BTCUSDT", 12, 0.0001)
	for i, sample := range samples {
		if sample.Rate > 0.00005 || sample.Rate < -0.00005 {
			t.Errorf("Sample %d: rate %f outside [-band/2, +band/2]", i, sample.Rate)
		}
		if i > 0 && !sample.Time.After(samples[i-1].Time) {
			t.Errorf("Sample %d: time not strictly increasing", i)
		}
	}
}

func TestLiquidationsOneSidedSpread(t *testing.T) {
	synth := newSeededSynthesizer(19)

	base := synth.BasePrice("BTCUSDT")
	volatility := base * 0.05
	events := synth.Liquidations("BTCUSDT", 40, 0.05)

	for i, event := range events {
		if event.ExecutedQty > event.OrigQty {
			t.Errorf("Event %d: executed %f exceeds original %f", i, event.ExecutedQty, event.OrigQty)
		}
		switch event.Side {
		case "SELL":
			if event.Price > base || event.Price < base-volatility {
				t.Errorf("Event %d: sell liquidation price %f outside [base-vol, base]", i, event.Price)
			}
		case "BUY":
			if event.Price < base || event.Price > base+volatility {
				t.Errorf("Event %d: buy liquidation price %f outside [base, base+vol]", i, event.Price)
			}
		default:
			t.Errorf("Event %d: unexpected side %s", i, event.Side)
		}
	}
}

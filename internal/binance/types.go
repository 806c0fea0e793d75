package binance

// Raw wire shapes as the venue transmits them. All prices and quantities
// arrive as string-encoded decimals; all timestamps as epoch milliseconds.
// Nothing outside this package should ever see these types.

// rawKline is one /api/v3/klines entry. The venue sends a 12-element mixed
// array (numbers for times and trade count, strings for decimals), so it is
// decoded as []any and picked apart field by field.
//
//	[0] open time (ms)   [1] open    [2] high   [3] low   [4] close
//	[5] volume   [6] close time (ms)   [7] quote volume   [8] trade count
//	[9] taker buy base   [10] taker buy quote   [11] ignore
type rawKline = []any

// rawDepth is the /api/v3/depth response. Each level is a [price, quantity]
// string pair, bids best-first descending, asks best-first ascending.
type rawDepth struct {
	LastUpdateID int64       `json:"lastUpdateId"`
	Bids         [][2]string `json:"bids"`
	Asks         [][2]string `json:"asks"`
}

// rawTicker is the /api/v3/ticker/24hr response.
type rawTicker struct {
	Symbol             string `json:"symbol"`
	PriceChange        string `json:"priceChange"`
	PriceChangePercent string `json:"priceChangePercent"`
	LastPrice          string `json:"lastPrice"`
	OpenPrice          string `json:"openPrice"`
	HighPrice          string `json:"highPrice"`
	LowPrice           string `json:"lowPrice"`
	Volume             string `json:"volume"`
	QuoteVolume        string `json:"quoteVolume"`
}

// rawTrade is one /api/v3/trades entry.
type rawTrade struct {
	ID           int64  `json:"id"`
	Price        string `json:"price"`
	Qty          string `json:"qty"`
	QuoteQty     string `json:"quoteQty"`
	Time         int64  `json:"time"`
	IsBuyerMaker bool   `json:"isBuyerMaker"`
}

// rawFundingRate is one /fapi/v1/fundingRate entry.
type rawFundingRate struct {
	Symbol      string `json:"symbol"`
	FundingTime int64  `json:"fundingTime"`
	FundingRate string `json:"fundingRate"`
	MarkPrice   string `json:"markPrice"`
}

// rawForceOrder is one /fapi/v1/allForceOrders entry.
type rawForceOrder struct {
	Symbol       string `json:"symbol"`
	Price        string `json:"price"`
	OrigQty      string `json:"origQty"`
	ExecutedQty  string `json:"executedQty"`
	AveragePrice string `json:"averagePrice"`
	Side         string `json:"side"`
	Status       string `json:"status"`
	Time         int64  `json:"time"`
}

package kite

// Exchange identifiers accepted by the order and quote endpoints.
const (
	ExchangeNSE = "NSE"
	ExchangeBSE = "BSE"
)

// Transaction sides.
const (
	TransactionBuy  = "BUY"
	TransactionSell = "SELL"
)

// Product types: CNC for delivery, MIS for intraday.
const (
	ProductCNC = "CNC"
	ProductMIS = "MIS"
)

// Order types and validity used by this client.
const (
	OrderTypeLimit = "LIMIT"
	ValidityDay    = "DAY"
)

// UserProfile is the authenticated account's identity.
type UserProfile struct {
	UserID    string   `json:"user_id"`
	UserName  string   `json:"user_name"`
	UserType  string   `json:"user_type"`
	Email     string   `json:"email"`
	Broker    string   `json:"broker"`
	Exchanges []string `json:"exchanges"`
	Products  []string `json:"products"`
}

// UserSession is the result of exchanging a request token.
type UserSession struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
	PublicToken string `json:"public_token"`
	LoginTime   string `json:"login_time"`
}

// Holding is a single demat holding.
type Holding struct {
	TradingSymbol string  `json:"tradingsymbol"`
	Exchange      string  `json:"exchange"`
	ISIN          string  `json:"isin"`
	Product       string  `json:"product"`
	Quantity      int     `json:"quantity"`
	T1Quantity    int     `json:"t1_quantity"`
	AveragePrice  float64 `json:"average_price"`
	LastPrice     float64 `json:"last_price"`
	ClosePrice    float64 `json:"close_price"`
	PnL           float64 `json:"pnl"`
	DayChange     float64 `json:"day_change"`
}

// Position is an open intraday or overnight position.
type Position struct {
	TradingSymbol string  `json:"tradingsymbol"`
	Exchange      string  `json:"exchange"`
	Product       string  `json:"product"`
	Quantity      int     `json:"quantity"`
	OvernightQty  int     `json:"overnight_quantity"`
	AveragePrice  float64 `json:"average_price"`
	LastPrice     float64 `json:"last_price"`
	Value         float64 `json:"value"`
	PnL           float64 `json:"pnl"`
	Realised      float64 `json:"realised"`
	Unrealised    float64 `json:"unrealised"`
	BuyQuantity   int     `json:"buy_quantity"`
	SellQuantity  int     `json:"sell_quantity"`
}

// Positions groups the day and net books.
type Positions struct {
	Net []Position `json:"net"`
	Day []Position `json:"day"`
}

// Order is one row of the order book, also used for order history trails.
type Order struct {
	OrderID         string  `json:"order_id"`
	Variety         string  `json:"variety"`
	Exchange        string  `json:"exchange"`
	TradingSymbol   string  `json:"tradingsymbol"`
	TransactionType string  `json:"transaction_type"`
	OrderType       string  `json:"order_type"`
	Product         string  `json:"product"`
	Validity        string  `json:"validity"`
	Status          string  `json:"status"`
	StatusMessage   string  `json:"status_message"`
	Quantity        int     `json:"quantity"`
	FilledQuantity  int     `json:"filled_quantity"`
	PendingQuantity int     `json:"pending_quantity"`
	Price           float64 `json:"price"`
	AveragePrice    float64 `json:"average_price"`
	OrderTimestamp  string  `json:"order_timestamp"`
	Tag             string  `json:"tag"`
}

// Quote is the full market quote for one instrument.
type Quote struct {
	InstrumentToken int     `json:"instrument_token"`
	LastPrice       float64 `json:"last_price"`
	LastQuantity    int     `json:"last_quantity"`
	Volume          int64   `json:"volume"`
	AveragePrice    float64 `json:"average_price"`
	OHLC            OHLC    `json:"ohlc"`
	NetChange       float64 `json:"net_change"`
	LowerCircuit    float64 `json:"lower_circuit_limit"`
	UpperCircuit    float64 `json:"upper_circuit_limit"`
}

// OHLC is the open/high/low/close block inside a quote.
type OHLC struct {
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// LTP is the last-traded-price view of an instrument.
type LTP struct {
	InstrumentToken int     `json:"instrument_token"`
	LastPrice       float64 `json:"last_price"`
}

// Margins holds available funds per segment.
type Margins struct {
	Equity    SegmentMargins `json:"equity"`
	Commodity SegmentMargins `json:"commodity"`
}

// SegmentMargins is one segment's funds breakdown.
type SegmentMargins struct {
	Enabled   bool               `json:"enabled"`
	Net       float64            `json:"net"`
	Available AvailableFunds     `json:"available"`
	Utilised  map[string]float64 `json:"utilised"`
}

// AvailableFunds details the usable balance within a segment.
type AvailableFunds struct {
	Cash          float64 `json:"cash"`
	Collateral    float64 `json:"collateral"`
	IntradayPayin float64 `json:"intraday_payin"`
	LiveBalance   float64 `json:"live_balance"`
}

// OrderParams describes an order to place. Variety is supplied separately
// because it is routing, not intent.
type OrderParams struct {
	Exchange        string
	TradingSymbol   string
	TransactionType string
	Quantity        int
	Product         string
	OrderType       string
	Price           float64
	Validity        string
	Tag             string
}

package tools

import (
	"github.com/jayra/tradebot/pkg/kite"
	"github.com/jayra/tradebot/pkg/market"
)

// Catalog returns the full declarative tool list backed by h. This is the
// single place a tool's name, schema and handler are bound together.
func Catalog(h *Handlers) []Definition {
	return []Definition{
		{
			Name:        "get_login_url",
			Description: "Generate the Zerodha Kite login URL to authenticate",
			Handler:     h.getLoginURL,
		},
		{
			Name:        "generate_access_token",
			Description: "Generate access token using request token from login",
			Params: []Param{
				{Name: "request_token", Type: "string", Description: "Request token from login redirect", Required: true},
			},
			Handler: h.generateAccessToken,
		},
		{
			Name:        "set_access_token",
			Description: "Manually set an existing access token",
			Params: []Param{
				{Name: "token", Type: "string", Description: "Access token to set", Required: true},
			},
			Handler: h.setAccessToken,
		},
		{
			Name:        "get_profile",
			Description: "Get user profile and account information from Zerodha",
			Handler:     h.getProfile,
		},
		{
			Name:        "get_holdings",
			Description: "Get all stock holdings in the portfolio with current values and P&L",
			Handler:     h.getHoldings,
		},
		{
			Name:        "get_positions",
			Description: "Get current day positions (intraday and overnight)",
			Handler:     h.getPositions,
		},
		{
			Name:        "get_orders",
			Description: "Get all orders placed today with their status",
			Handler:     h.getOrders,
		},
		{
			Name:        "get_quote",
			Description: "Get the full market quote for a stock including OHLC and circuit limits",
			Params: []Param{
				{Name: "symbol", Type: "string", Description: "Trading symbol (e.g., HDFCBANK)", Required: true},
				{Name: "exchange", Type: "string", Description: "Exchange to quote on", Enum: []string{kite.ExchangeNSE, kite.ExchangeBSE}, Default: kite.ExchangeNSE},
			},
			Handler: h.getQuote,
		},
		{
			Name:        "get_ltp",
			Description: "Get last traded price for one or more stocks",
			Params: []Param{
				{Name: "symbols", Type: "array", Items: "string", Description: "Array of trading symbols (e.g., ['HDFCBANK', 'RELIANCE'])", Required: true},
			},
			Handler: h.getLTP,
		},
		{
			Name:        "buy_stock",
			Description: "Place a buy order for a stock. Uses regular order during market hours, AMO otherwise.",
			Params:      orderParams("buy"),
			Handler:     h.buyStock,
		},
		{
			Name:        "sell_stock",
			Description: "Place a sell order for a stock. Uses regular order during market hours, AMO otherwise.",
			Params:      orderParams("sell"),
			Handler:     h.sellStock,
		},
		{
			Name:        "cancel_order",
			Description: "Cancel a pending order by order ID",
			Params: []Param{
				{Name: "order_id", Type: "string", Description: "Order ID to cancel", Required: true},
				{Name: "variety", Type: "string", Description: "Order variety", Enum: []string{string(market.VarietyRegular), string(market.VarietyAMO)}, Default: string(market.VarietyRegular)},
			},
			Handler: h.cancelOrder,
		},
		{
			Name:        "get_margins",
			Description: "Get available margins/funds in the trading account",
			Handler:     h.getMargins,
		},
		{
			Name:        "get_market_status",
			Description: "Check if NSE market is currently open or closed",
			Handler:     h.getMarketStatus,
		},
		{
			Name:        "get_order_history",
			Description: "Get the complete history/trail of a specific order",
			Params: []Param{
				{Name: "order_id", Type: "string", Description: "Order ID to get history for", Required: true},
			},
			Handler: h.getOrderHistory,
		},
	}
}

func orderParams(side string) []Param {
	return []Param{
		{Name: "symbol", Type: "string", Description: "Trading symbol (e.g., HDFCBANK)", Required: true},
		{Name: "quantity", Type: "integer", Description: "Number of shares to " + side, Required: true},
		{Name: "price", Type: "number", Description: "Limit price per share", Required: true},
		{Name: "product", Type: "string", Description: "CNC for delivery, MIS for intraday", Enum: []string{kite.ProductCNC, kite.ProductMIS}, Default: kite.ProductCNC},
	}
}

package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jayra/tradebot/pkg/kite"
	"github.com/jayra/tradebot/pkg/market"
	"github.com/jayra/tradebot/pkg/session"
)

// Handlers implements every tool against a broker gateway, the session
// store and the market calendar.
type Handlers struct {
	gateway Gateway
	session *session.Store
	now     func() time.Time
}

// HandlerOption customizes Handlers.
type HandlerOption func(*Handlers)

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handlers) { h.now = now }
}

// NewHandlers wires the handler set to its collaborators.
func NewHandlers(gateway Gateway, store *session.Store, opts ...HandlerOption) *Handlers {
	h := &Handlers{
		gateway: gateway,
		session: store,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handlers) getLoginURL(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return map[string]interface{}{
		"login_url": h.gateway.LoginURL(),
		"instructions": []string{
			"1. Open this URL in your browser",
			"2. Login with your Zerodha credentials",
			"3. After login, copy the 'request_token' from redirect URL",
			"4. Use 'generate_access_token' tool with this token",
		},
	}, nil
}

func (h *Handlers) generateAccessToken(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	userSession, err := h.session.Exchange(ctx, stringArg(args, "request_token"))
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"access_token": userSession.AccessToken,
		"user_id":      userSession.UserID,
		"user_name":    userSession.UserName,
		"message":      "Access token generated and set successfully! You can now use all trading tools.",
		"expires_at":   session.TokenExpiryNote,
	}, nil
}

func (h *Handlers) setAccessToken(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	h.session.SetToken(stringArg(args, "token"))

	// Verify the token immediately so a bad one is reported on this call,
	// not on the next portfolio read.
	profile, err := h.gateway.Profile(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message":   "Access token set successfully!",
		"user_id":   profile.UserID,
		"user_name": profile.UserName,
		"email":     profile.Email,
	}, nil
}

func (h *Handlers) getProfile(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return h.gateway.Profile(ctx)
}

func (h *Handlers) getHoldings(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	holdings, err := h.gateway.Holdings(ctx)
	if err != nil {
		return nil, err
	}

	var totalInvestment, totalCurrent, totalPnL float64
	for _, holding := range holdings {
		totalInvestment += float64(holding.Quantity) * holding.AveragePrice
		totalCurrent += float64(holding.Quantity) * holding.LastPrice
		totalPnL += holding.PnL
	}

	pnlPercentage := "0%"
	if totalInvestment > 0 {
		pnlPercentage = percent(totalPnL / totalInvestment * 100)
	}

	return map[string]interface{}{
		"holdings": holdings,
		"summary": map[string]interface{}{
			"total_stocks":     len(holdings),
			"total_investment": rupees(totalInvestment),
			"current_value":    rupees(totalCurrent),
			"total_pnl":        rupees(totalPnL),
			"pnl_percentage":   pnlPercentage,
		},
	}, nil
}

func (h *Handlers) getPositions(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return h.gateway.Positions(ctx)
}

func (h *Handlers) getOrders(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return h.gateway.Orders(ctx)
}

func (h *Handlers) getQuote(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	instrument := stringArg(args, "exchange") + ":" + stringArg(args, "symbol")
	return h.gateway.Quote(ctx, []string{instrument})
}

func (h *Handlers) getLTP(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	symbols := stringSliceArg(args, "symbols")
	instruments := make([]string, len(symbols))
	for i, symbol := range symbols {
		instruments[i] = kite.ExchangeNSE + ":" + symbol
	}
	return h.gateway.LTP(ctx, instruments)
}

func (h *Handlers) buyStock(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return h.placeOrder(ctx, kite.TransactionBuy, args)
}

func (h *Handlers) sellStock(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return h.placeOrder(ctx, kite.TransactionSell, args)
}

// placeOrder submits a LIMIT, DAY-validity order. The clock is read once:
// the routing variety and the market-status annotation both come from the
// same instant, so they can never disagree across a session boundary.
func (h *Handlers) placeOrder(ctx context.Context, side string, args map[string]interface{}) (interface{}, error) {
	symbol := stringArg(args, "symbol")
	quantity := intArg(args, "quantity")
	price := floatArg(args, "price")

	now := h.now()
	variety := market.OrderVariety(now)

	orderID, err := h.gateway.PlaceOrder(ctx, string(variety), kite.OrderParams{
		Exchange:        kite.ExchangeNSE,
		TradingSymbol:   symbol,
		TransactionType: side,
		Quantity:        quantity,
		Product:         stringArg(args, "product"),
		OrderType:       kite.OrderTypeLimit,
		Price:           price,
		Validity:        kite.ValidityDay,
		Tag:             orderTag(),
	})
	if err != nil {
		return nil, err
	}

	verb := "Buy"
	if side == kite.TransactionSell {
		verb = "Sell"
	}
	marketStatus := "Market is CLOSED (AMO order)"
	if market.IsOpen(now) {
		marketStatus = "Market is OPEN"
	}

	return map[string]interface{}{
		"order_id":      orderID,
		"variety":       string(variety),
		"message":       fmt.Sprintf("%s order placed successfully for %d shares of %s at %s", verb, quantity, symbol, rupees(price)),
		"market_status": marketStatus,
	}, nil
}

func (h *Handlers) cancelOrder(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	orderID := stringArg(args, "order_id")

	// The caller's variety is taken at face value; the order's actual
	// variety is not auto-detected.
	cancelled, err := h.gateway.CancelOrder(ctx, stringArg(args, "variety"), orderID)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"order_id": cancelled,
		"message":  fmt.Sprintf("Order %s cancelled successfully", orderID),
	}, nil
}

func (h *Handlers) getMargins(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return h.gateway.Margins(ctx)
}

func (h *Handlers) getMarketStatus(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return market.StatusAt(h.now()), nil
}

func (h *Handlers) getOrderHistory(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return h.gateway.OrderHistory(ctx, stringArg(args, "order_id"))
}

// orderTag labels orders placed through this server so they are
// recognizable in the Kite order book.
func orderTag() string {
	return "tradebot-" + uuid.NewString()[:8]
}

// Argument accessors. Arguments were schema-validated before dispatch, so a
// missing or mistyped value here can only be an optional parameter without
// a default; the zero value is the correct fallback.

func stringArg(args map[string]interface{}, key string) string {
	value, _ := args[key].(string)
	return value
}

func intArg(args map[string]interface{}, key string) int {
	switch value := args[key].(type) {
	case float64:
		return int(value)
	case int:
		return value
	}
	return 0
}

func floatArg(args map[string]interface{}, key string) float64 {
	switch value := args[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	}
	return 0
}

func stringSliceArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		if already, ok := args[key].([]string); ok {
			return already
		}
		return nil
	}

	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}

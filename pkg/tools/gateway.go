package tools

import (
	"context"

	"github.com/jayra/tradebot/pkg/kite"
)

// Gateway is the slice of the broker client the tool handlers need. Every
// method maps to one upstream call; authentication failures surface as
// *kite.AuthError, everything else as *kite.GatewayError.
type Gateway interface {
	LoginURL() string
	Profile(ctx context.Context) (kite.UserProfile, error)
	Holdings(ctx context.Context) ([]kite.Holding, error)
	Positions(ctx context.Context) (kite.Positions, error)
	Orders(ctx context.Context) ([]kite.Order, error)
	OrderHistory(ctx context.Context, orderID string) ([]kite.Order, error)
	Quote(ctx context.Context, instruments []string) (map[string]kite.Quote, error)
	LTP(ctx context.Context, instruments []string) (map[string]kite.LTP, error)
	Margins(ctx context.Context) (kite.Margins, error)
	PlaceOrder(ctx context.Context, variety string, params kite.OrderParams) (string, error)
	CancelOrder(ctx context.Context, variety, orderID string) (string, error)
}

package api

import "context"

// contract methods reachable through the gateway
var (
	OpClaim                 = Operation{Kind: KindInvoke, Method: "Claim"}
	OpBalanceOf             = Operation{Kind: KindQuery, Method: "BalanceOf"}
	OpTransferFrom          = Operation{Kind: KindInvoke, Method: "TransferFrom"}
	OpTotalSupply           = Operation{Kind: KindQuery, Method: "TotalSupply"}
	OpName                  = Operation{Kind: KindQuery, Method: "Name"}
	OpSymbol                = Operation{Kind: KindQuery, Method: "Symbol"}
	OpGetTransactionHistory = Operation{Kind: KindQuery, Method: "GetTransactionHistory"}
)

// Contract binds each token operation to its endpoint on a Client.
type Contract struct {
	client *Client
}

// NewContract creates the operation facade for the client's configured contract
func NewContract(client *Client) *Contract {
	return &Contract{client: client}
}

// Client returns the underlying request client.
func (c *Contract) Client() *Client {
	return c.client
}

func (c *Contract) call(ctx context.Context, op Operation, args map[string]any) (*Response, error) {
	return c.client.Call(ctx, c.client.Endpoint(op), args)
}

// Claim requests the fixed airdrop amount for address.
func (c *Contract) Claim(ctx context.Context, address string) (*Response, error) {
	return c.call(ctx, OpClaim, map[string]any{
		"amount":  ClaimAmount,
		"address": address,
	})
}

// BalanceOf queries the token balance of account.
func (c *Contract) BalanceOf(ctx context.Context, account string) (*Response, error) {
	return c.call(ctx, OpBalanceOf, map[string]any{
		"account": account,
	})
}

// TransferFrom moves value tokens between two accounts. The gateway is the
// only validator of the arguments.
func (c *Contract) TransferFrom(ctx context.Context, from, to string, value int64) (*Response, error) {
	return c.call(ctx, OpTransferFrom, map[string]any{
		"from":  from,
		"to":    to,
		"value": value,
	})
}

// TotalSupply queries the number of tokens claimed so far.
func (c *Contract) TotalSupply(ctx context.Context) (*Response, error) {
	return c.call(ctx, OpTotalSupply, map[string]any{})
}

// Name queries the token name.
func (c *Contract) Name(ctx context.Context) (*Response, error) {
	return c.call(ctx, OpName, map[string]any{})
}

// Symbol queries the token ticker symbol.
func (c *Contract) Symbol(ctx context.Context) (*Response, error) {
	return c.call(ctx, OpSymbol, map[string]any{})
}

// TransactionHistory queries the transfers and claims recorded for address.
func (c *Contract) TransactionHistory(ctx context.Context, address string) (*Response, error) {
	return c.call(ctx, OpGetTransactionHistory, map[string]any{
		"address": address,
	})
}

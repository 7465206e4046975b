// Package eth is the read-only RPC boundary: native and ERC-20 balance
// queries against whichever network is currently active.
package eth

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"
)

// balanceOf(address) selector
var balanceOfSelector = []byte{0x70, 0xa0, 0x82, 0x31}

const nativeDecimals = 18

// Client wraps an RPC connection to a single network endpoint
type Client struct {
	rpc *ethclient.Client
}

// Dial connects to an RPC endpoint
func Dial(ctx context.Context, rpcURL string) (*Client, error) {
	rpc, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rpcURL, err)
	}
	return &Client{rpc: rpc}, nil
}

// Close releases the underlying connection
func (c *Client) Close() {
	c.rpc.Close()
}

// NativeBalance returns the latest native coin balance of an address,
// scaled to whole units
func (c *Client) NativeBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	wei, err := c.rpc.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch balance: %w", err)
	}
	return FromBaseUnits(wei, nativeDecimals), nil
}

// TokenBalance returns the ERC-20 balance of holder on the given token
// contract, scaled by the token's decimals
func (c *Client) TokenBalance(ctx context.Context, tokenAddress, holder string, decimals uint8) (decimal.Decimal, error) {
	token := common.HexToAddress(tokenAddress)
	data := make([]byte, 0, 4+32)
	data = append(data, balanceOfSelector...)
	data = append(data, common.LeftPadBytes(common.HexToAddress(holder).Bytes(), 32)...)

	out, err := c.rpc.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to call balanceOf: %w", err)
	}
	if len(out) < 32 {
		return decimal.Zero, fmt.Errorf("short balanceOf response (%d bytes)", len(out))
	}
	return FromBaseUnits(new(big.Int).SetBytes(out[:32]), decimals), nil
}

// FromBaseUnits scales an integer amount of base units (wei, token
// atoms) down by the given number of decimals
func FromBaseUnits(amount *big.Int, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(amount, 0).Shift(-int32(decimals))
}

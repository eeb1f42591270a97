package blockchain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/unifiedid/unifiedid-sdk-go/pkg/errs"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/model"
)

// tokenDecimals is the fixed precision of the fee tokens the registries
// accept (wei-style 18 decimals).
const tokenDecimals = 18

// GetRegistrationFee converts a base fee in wei into the token-denominated
// amount the registry requires, via the storage-util contract. The zero
// address selects the chain's native currency. A missing/malformed token or
// a missing/zero fee is rejected before any network call: fees are required.
func (evm *EVMClient) GetRegistrationFee(ctx context.Context, token string, baseFeeWei *big.Int) (*big.Int, error) {
	if token == "" {
		return nil, errs.NewValidation("token", "token address is required (zero address for native currency)")
	}
	if !model.IsValidAddress(token) {
		return nil, errs.NewValidation("token", "not a valid address: "+token)
	}
	if baseFeeWei == nil || baseFeeWei.Sign() <= 0 {
		return nil, errs.NewValidation("baseFee", "a non-zero base fee is required")
	}
	ctx, cancel := evm.readContext(ctx)
	defer cancel()
	amount, err := evm.StorageUtil.GetRequiredTokenAmount(callOpts(ctx), common.HexToAddress(token), baseFeeWei)
	if err != nil {
		return nil, wrapCall("getRequiredTokenAmount", err)
	}
	return amount, nil
}

// FeeToWei converts a human-readable token amount into its smallest unit
// (18 decimals).
//
// Supported input types: string, float64, int64, decimal.Decimal,
// *decimal.Decimal. Any other type results in an error.
func FeeToWei(iamount any) (*big.Int, error) {
	var amount decimal.Decimal
	var err error
	switch v := iamount.(type) {
	case string:
		amount, err = decimal.NewFromString(v)
		if err != nil {
			return nil, errs.NewValidation("amount", err.Error())
		}
	case float64:
		amount = decimal.NewFromFloat(v)
	case int64:
		amount = decimal.NewFromInt(v)
	case decimal.Decimal:
		amount = v
	case *decimal.Decimal:
		amount = *v
	default:
		return nil, errs.NewValidation("amount", "unsupported amount type")
	}

	mul := decimal.New(1, tokenDecimals)
	wei := new(big.Int)
	wei.SetString(amount.Mul(mul).Truncate(0).String(), 10)
	return wei, nil
}

// WeiToFee converts a smallest-unit amount into a human-readable decimal
// with 18 digits of precision.
func WeiToFee(wei *big.Int) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}
	num := decimal.NewFromBigInt(wei, 0)
	return num.DivRound(decimal.New(1, tokenDecimals), tokenDecimals)
}

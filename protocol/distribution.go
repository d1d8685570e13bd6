// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package protocol

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// AdaDistribution is the explicit native-currency split of a referred
// token purchase. It is present only when a referral address was
// supplied; an unreferred purchase carries no distribution at all.
type AdaDistribution struct {
	Total           uint64          `json:"total"`
	ToProtocol      uint64          `json:"to_protocol"`
	ToReferrer      uint64          `json:"to_referrer"`
	ReferralPercent decimal.Decimal `json:"referral_percent"`
}

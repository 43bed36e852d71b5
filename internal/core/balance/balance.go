package balance

import (
	"math/big"
	"sort"

	"github.com/shopspring/decimal"

	"tricount-api/internal/core/domain"
)

// Balance holds the settlement figures for one tricount participant.
type Balance struct {
	UserID  uint            `json:"user"`
	Paid    decimal.Decimal `json:"paid"`
	Due     decimal.Decimal `json:"due"`
	Balance decimal.Decimal `json:"balance"`
}

// Compute calculates, for every participant of the tricount snapshot:
//   - Paid:    sum of the amounts of the operations they initiated
//   - Due:     sum of their weighted shares across all operations
//   - Balance: Paid - Due
//
// Shares are allocated in integer cents. Each repartition first receives
// floor(cents*weight/totalWeight); the remaining cents are then handed
// out one by one to the repartitions with the largest division
// remainder, ties broken by ascending user id. The shares of one
// operation therefore always sum exactly to its amount, which makes the
// balances of the whole tricount sum exactly to zero.
//
// The function is pure: it only reads the supplied snapshot, performs no
// storage access and returns the same result for the same input. Every
// participant gets an entry even with no activity. The result is ordered
// by ascending user id. An operation whose total weight is not positive
// contributes no shares; valid data never has one.
func Compute(t *domain.Tricount) []Balance {
	paidCents := make(map[uint]int64)
	dueCents := make(map[uint]int64)

	for _, op := range t.Operations {
		cents := amountToCents(op.Amount)
		paidCents[op.InitiatorID] += cents

		allocateShares(cents, op.Repartitions, dueCents)
	}

	balances := make([]Balance, 0, len(t.ParticipantIDs))
	for _, userID := range t.ParticipantIDs {
		paid := decimal.New(paidCents[userID], -2)
		due := decimal.New(dueCents[userID], -2)
		balances = append(balances, Balance{
			UserID:  userID,
			Paid:    paid,
			Due:     due,
			Balance: paid.Sub(due),
		})
	}

	sort.Slice(balances, func(i, j int) bool {
		return balances[i].UserID < balances[j].UserID
	})

	return balances
}

// allocateShares distributes cents across the repartitions by weight and
// adds each user's share to dueCents. The cents*weight products and the
// weight sum run through math/big: weights are only validated to be
// positive, so the int64 products can overflow for extreme weights.
// Every share is bounded by cents, so the final figures stay in int64.
func allocateShares(cents int64, reps []domain.Repartition, dueCents map[uint]int64) {
	totalWeight := new(big.Int)
	for _, rep := range reps {
		totalWeight.Add(totalWeight, big.NewInt(int64(rep.Weight)))
	}
	if totalWeight.Sign() <= 0 {
		return
	}

	type pending struct {
		userID    uint
		remainder *big.Int
	}

	allocated := int64(0)
	pendings := make([]pending, 0, len(reps))
	for _, rep := range reps {
		scaled := new(big.Int).Mul(big.NewInt(cents), big.NewInt(int64(rep.Weight)))
		share, remainder := new(big.Int).QuoRem(scaled, totalWeight, new(big.Int))
		dueCents[rep.UserID] += share.Int64()
		allocated += share.Int64()
		pendings = append(pendings, pending{userID: rep.UserID, remainder: remainder})
	}

	// Hand out the leftover cents, largest remainder first.
	sort.Slice(pendings, func(i, j int) bool {
		if c := pendings[i].remainder.Cmp(pendings[j].remainder); c != 0 {
			return c > 0
		}
		return pendings[i].userID < pendings[j].userID
	})

	for i := int64(0); i < cents-allocated; i++ {
		dueCents[pendings[i].userID]++
	}
}

// amountToCents converts a monetary amount to integer cents. Amounts are
// currency-scale decimals; anything below a cent is rounded to the
// nearest cent before allocation.
func amountToCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

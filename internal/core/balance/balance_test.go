package balance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tricount-api/internal/core/domain"
)

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func tricountWith(participants []uint, ops ...domain.Operation) *domain.Tricount {
	return &domain.Tricount{
		ID:             1,
		Title:          "Test tricount",
		CreatorID:      participants[0],
		CreatedAt:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ParticipantIDs: participants,
		Operations:     ops,
	}
}

func assertEqual(t *testing.T, label string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", label, got, want)
	}
}

func TestComputeSinglePayer(t *testing.T) {
	// A pays 100.00 split equally with B.
	tc := tricountWith([]uint{1, 2}, domain.Operation{
		ID:          10,
		Amount:      amount("100.00"),
		InitiatorID: 1,
		Repartitions: []domain.Repartition{
			{UserID: 1, Weight: 1},
			{UserID: 2, Weight: 1},
		},
	})

	balances := Compute(tc)
	if len(balances) != 2 {
		t.Fatalf("expected 2 balances, got %d", len(balances))
	}

	assertEqual(t, "paid(A)", balances[0].Paid, amount("100.00"))
	assertEqual(t, "due(A)", balances[0].Due, amount("50.00"))
	assertEqual(t, "balance(A)", balances[0].Balance, amount("50.00"))

	assertEqual(t, "paid(B)", balances[1].Paid, amount("0"))
	assertEqual(t, "due(B)", balances[1].Due, amount("50.00"))
	assertEqual(t, "balance(B)", balances[1].Balance, amount("-50.00"))
}

func TestComputeWeightedSplit(t *testing.T) {
	// 30.00 split 2:1 between A and B, no rounding residue.
	tc := tricountWith([]uint{1, 2}, domain.Operation{
		ID:          10,
		Amount:      amount("30.00"),
		InitiatorID: 1,
		Repartitions: []domain.Repartition{
			{UserID: 1, Weight: 2},
			{UserID: 2, Weight: 1},
		},
	})

	balances := Compute(tc)
	assertEqual(t, "due(A)", balances[0].Due, amount("20.00"))
	assertEqual(t, "due(B)", balances[1].Due, amount("10.00"))
}

func TestComputeRoundingPreservesTotal(t *testing.T) {
	// 100.00 over three equal weights is not exact per share; the dues
	// must still add up to exactly 100.00 and the balances to zero.
	tc := tricountWith([]uint{1, 2, 3}, domain.Operation{
		ID:          10,
		Amount:      amount("100.00"),
		InitiatorID: 1,
		Repartitions: []domain.Repartition{
			{UserID: 1, Weight: 1},
			{UserID: 2, Weight: 1},
			{UserID: 3, Weight: 1},
		},
	})

	balances := Compute(tc)

	totalDue := decimal.Zero
	totalBalance := decimal.Zero
	for _, b := range balances {
		totalDue = totalDue.Add(b.Due)
		totalBalance = totalBalance.Add(b.Balance)
	}
	assertEqual(t, "sum of dues", totalDue, amount("100.00"))
	assertEqual(t, "sum of balances", totalBalance, amount("0"))

	// The leftover cent goes to the lowest user id among equal remainders.
	assertEqual(t, "due(A)", balances[0].Due, amount("33.34"))
	assertEqual(t, "due(B)", balances[1].Due, amount("33.33"))
	assertEqual(t, "due(C)", balances[2].Due, amount("33.33"))
}

func TestComputeLargestRemainderOrder(t *testing.T) {
	// 1.00 split 1:2 over A and B: B's remainder is larger, so the
	// leftover cent is B's (0.33 / 0.67), not A's.
	tc := tricountWith([]uint{1, 2}, domain.Operation{
		ID:          10,
		Amount:      amount("1.00"),
		InitiatorID: 1,
		Repartitions: []domain.Repartition{
			{UserID: 1, Weight: 1},
			{UserID: 2, Weight: 2},
		},
	})

	balances := Compute(tc)
	assertEqual(t, "due(A)", balances[0].Due, amount("0.33"))
	assertEqual(t, "due(B)", balances[1].Due, amount("0.67"))
}

func TestComputeZeroSumAcrossOperations(t *testing.T) {
	tc := tricountWith([]uint{1, 2, 3, 4},
		domain.Operation{
			ID: 10, Amount: amount("73.57"), InitiatorID: 2,
			Repartitions: []domain.Repartition{
				{UserID: 1, Weight: 3},
				{UserID: 2, Weight: 1},
				{UserID: 4, Weight: 2},
			},
		},
		domain.Operation{
			ID: 11, Amount: amount("19.99"), InitiatorID: 1,
			Repartitions: []domain.Repartition{
				{UserID: 1, Weight: 1},
				{UserID: 3, Weight: 1},
				{UserID: 4, Weight: 1},
			},
		},
		domain.Operation{
			ID: 12, Amount: amount("0.05"), InitiatorID: 4,
			Repartitions: []domain.Repartition{
				{UserID: 1, Weight: 7},
				{UserID: 2, Weight: 11},
			},
		},
	)

	balances := Compute(tc)

	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Balance)
	}
	assertEqual(t, "sum of balances", total, amount("0"))
}

func TestComputeInactiveParticipant(t *testing.T) {
	// C neither paid nor owes anything but still appears with zeros.
	tc := tricountWith([]uint{1, 2, 3}, domain.Operation{
		ID:          10,
		Amount:      amount("40.00"),
		InitiatorID: 1,
		Repartitions: []domain.Repartition{
			{UserID: 1, Weight: 1},
			{UserID: 2, Weight: 1},
		},
	})

	balances := Compute(tc)
	if len(balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(balances))
	}
	assertEqual(t, "paid(C)", balances[2].Paid, amount("0"))
	assertEqual(t, "due(C)", balances[2].Due, amount("0"))
	assertEqual(t, "balance(C)", balances[2].Balance, amount("0"))
}

func TestComputeNoOperations(t *testing.T) {
	balances := Compute(tricountWith([]uint{5, 9}))
	if len(balances) != 2 {
		t.Fatalf("expected 2 balances, got %d", len(balances))
	}
	for _, b := range balances {
		assertEqual(t, "balance", b.Balance, amount("0"))
	}
}

func TestComputeZeroTotalWeight(t *testing.T) {
	// Defensive path: an operation with no positive weight contributes no
	// shares instead of dividing by zero. Validation rejects this input,
	// so hitting it in production data means the rules were bypassed.
	tc := tricountWith([]uint{1, 2}, domain.Operation{
		ID:           10,
		Amount:       amount("50.00"),
		InitiatorID:  1,
		Repartitions: []domain.Repartition{},
	})

	balances := Compute(tc)
	assertEqual(t, "paid(A)", balances[0].Paid, amount("50.00"))
	assertEqual(t, "due(A)", balances[0].Due, amount("0"))
	assertEqual(t, "due(B)", balances[1].Due, amount("0"))
}

func TestComputeExtremeWeights(t *testing.T) {
	// Weights are only required to be positive, so a split like
	// 2^60 : 1 is valid data. The cents*weight product must not wrap
	// around; nearly everything is A's share and the totals still hold.
	tc := tricountWith([]uint{1, 2}, domain.Operation{
		ID:          10,
		Amount:      amount("10.00"),
		InitiatorID: 2,
		Repartitions: []domain.Repartition{
			{UserID: 1, Weight: 1 << 60},
			{UserID: 2, Weight: 1},
		},
	})

	balances := Compute(tc)
	assertEqual(t, "due(A)", balances[0].Due, amount("10.00"))
	assertEqual(t, "due(B)", balances[1].Due, amount("0"))
	assertEqual(t, "balance(A)", balances[0].Balance, amount("-10.00"))
	assertEqual(t, "balance(B)", balances[1].Balance, amount("10.00"))
}

func TestComputeExtremeWeightSum(t *testing.T) {
	// Three weights of 2^62 sum past int64; the equal split must come
	// out the same as with weight 1 each.
	tc := tricountWith([]uint{1, 2, 3}, domain.Operation{
		ID:          10,
		Amount:      amount("100.00"),
		InitiatorID: 1,
		Repartitions: []domain.Repartition{
			{UserID: 1, Weight: 1 << 62},
			{UserID: 2, Weight: 1 << 62},
			{UserID: 3, Weight: 1 << 62},
		},
	})

	balances := Compute(tc)
	assertEqual(t, "due(A)", balances[0].Due, amount("33.34"))
	assertEqual(t, "due(B)", balances[1].Due, amount("33.33"))
	assertEqual(t, "due(C)", balances[2].Due, amount("33.33"))
}

func TestComputeOrderedByUserID(t *testing.T) {
	tc := tricountWith([]uint{9, 3, 7})
	balances := Compute(tc)

	want := []uint{3, 7, 9}
	for i, b := range balances {
		if b.UserID != want[i] {
			t.Errorf("balances[%d].UserID = %d, want %d", i, b.UserID, want[i])
		}
	}
}

func TestComputeIdempotent(t *testing.T) {
	tc := tricountWith([]uint{1, 2, 3}, domain.Operation{
		ID: 10, Amount: amount("100.00"), InitiatorID: 1,
		Repartitions: []domain.Repartition{
			{UserID: 1, Weight: 1},
			{UserID: 2, Weight: 1},
			{UserID: 3, Weight: 1},
		},
	})

	first := Compute(tc)
	second := Compute(tc)

	if len(first) != len(second) {
		t.Fatalf("result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].UserID != second[i].UserID ||
			!first[i].Paid.Equal(second[i].Paid) ||
			!first[i].Due.Equal(second[i].Due) ||
			!first[i].Balance.Equal(second[i].Balance) {
			t.Errorf("results differ at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

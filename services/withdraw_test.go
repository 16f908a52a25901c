package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"playpoin/models"
	"playpoin/services"
)

func newWithdrawGate(t *testing.T) (*services.WithdrawGate, *services.Ledger, *gorm.DB, *models.User) {
	t.Helper()
	db := newTestDB(t)
	ledger := services.NewLedger(db)
	gate := services.NewWithdrawGate(db, testConfig(), ledger)
	user := createUser(t, db, "casher")
	return gate, ledger, db, user
}

func TestRequestLocksExactPointsCost(t *testing.T) {
	gate, ledger, db, user := newWithdrawGate(t)
	seedBalance(t, db, ledger, user, 25000)

	// $2 at 10000 points per dollar locks exactly 20000 points.
	request, err := gate.Request(user.ID, "TQmAddr1", decimal.NewFromInt(2), baseTime)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if request.PointsCost != 20000 {
		t.Errorf("pointsCost = %d, want 20000", request.PointsCost)
	}
	if request.Status != models.WithdrawPending {
		t.Errorf("status = %s, want pending", request.Status)
	}

	balance, err := ledger.BalanceOf(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if balance != 5000 {
		t.Errorf("balance after lock = %d, want 5000", balance)
	}
	if reload[models.User](t, db, user.ID).Points != 5000 {
		t.Error("cached points not updated with the lock")
	}
}

func TestRequestInsufficientBalance(t *testing.T) {
	gate, ledger, db, user := newWithdrawGate(t)
	seedBalance(t, db, ledger, user, 15000)

	// Balance below the 20000-point cost of a $2 withdrawal.
	_, err := gate.Request(user.ID, "TQmAddr1", decimal.NewFromInt(2), baseTime)
	if !errors.Is(err, services.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}

	// The rejected request left no lock and no request row behind.
	balance, _ := ledger.BalanceOf(user.ID)
	if balance != 15000 {
		t.Errorf("balance = %d, want 15000", balance)
	}
	var count int64
	db.Model(&models.WithdrawRequest{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("request rows = %d, want 0", count)
	}
}

func TestRequestBounds(t *testing.T) {
	gate, ledger, db, user := newWithdrawGate(t)
	seedBalance(t, db, ledger, user, 2_000_000)

	if _, err := gate.Request(user.ID, "a", decimal.RequireFromString("0.5"), baseTime); !errors.Is(err, services.ErrBelowMinimum) {
		t.Errorf("below minimum err = %v", err)
	}
	if _, err := gate.Request(user.ID, "a", decimal.NewFromInt(101), baseTime); !errors.Is(err, services.ErrAboveMaximum) {
		t.Errorf("above maximum err = %v", err)
	}
	if _, err := gate.Request(user.ID, "a", decimal.NewFromInt(-3), baseTime); !errors.Is(err, services.ErrInvalidAmount) {
		t.Errorf("negative amount err = %v", err)
	}
}

func TestRequestRequiresMinimumSpendable(t *testing.T) {
	gate, ledger, db, user := newWithdrawGate(t)
	// Below the 10000-point MinWithdraw floor.
	seedBalance(t, db, ledger, user, 9999)

	_, err := gate.Request(user.ID, "a", decimal.NewFromInt(1), baseTime)
	if !errors.Is(err, services.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
}

func TestRequestBlockedUser(t *testing.T) {
	gate, ledger, db, user := newWithdrawGate(t)
	seedBalance(t, db, ledger, user, 25000)
	user.Status = models.UserStatusSuspended
	if err := db.Save(user).Error; err != nil {
		t.Fatal(err)
	}

	if _, err := gate.Request(user.ID, "a", decimal.NewFromInt(2), baseTime); !errors.Is(err, services.ErrUserBlocked) {
		t.Fatalf("err = %v, want ErrUserBlocked", err)
	}
}

func TestRejectRestoresLockedPoints(t *testing.T) {
	gate, ledger, db, user := newWithdrawGate(t)
	seedBalance(t, db, ledger, user, 25000)

	request, err := gate.Request(user.ID, "TQmAddr1", decimal.NewFromInt(2), baseTime)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	resolved, err := gate.Resolve(request.ID, models.WithdrawRejected, "ops", "", "address flagged", baseTime.Add(time.Hour))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != models.WithdrawRejected {
		t.Errorf("status = %s, want rejected", resolved.Status)
	}
	if resolved.ProcessedBy != "ops" || resolved.ProcessedAt == nil {
		t.Error("processor fields not recorded")
	}

	// Lock + unlock round-trips to the pre-lock balance exactly.
	balance, _ := ledger.BalanceOf(user.ID)
	if balance != 25000 {
		t.Errorf("balance = %d, want 25000", balance)
	}
	if reload[models.User](t, db, user.ID).Points != 25000 {
		t.Error("cached points not restored")
	}
}

func TestPaidWorkflow(t *testing.T) {
	gate, ledger, db, user := newWithdrawGate(t)
	seedBalance(t, db, ledger, user, 25000)

	request, err := gate.Request(user.ID, "TQmAddr1", decimal.NewFromInt(2), baseTime)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	// pending cannot jump straight to paid.
	if _, err := gate.Resolve(request.ID, models.WithdrawPaid, "ops", "0xabc", "", baseTime); !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("pending->paid err = %v, want ErrInvalidTransition", err)
	}

	if _, err := gate.Resolve(request.ID, models.WithdrawApproved, "ops", "", "", baseTime); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// paid requires the payout hash.
	if _, err := gate.Resolve(request.ID, models.WithdrawPaid, "ops", "", "", baseTime); !errors.Is(err, services.ErrMissingTxHash) {
		t.Fatalf("paid without hash err = %v, want ErrMissingTxHash", err)
	}

	resolved, err := gate.Resolve(request.ID, models.WithdrawPaid, "ops", "0xabc123", "", baseTime)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if resolved.TxHash != "0xabc123" {
		t.Errorf("txHash = %s", resolved.TxHash)
	}

	// The lock became a permanent debit: no unlock entry, balance stays down.
	balance, _ := ledger.BalanceOf(user.ID)
	if balance != 5000 {
		t.Errorf("balance = %d, want 5000", balance)
	}

	// paid is terminal.
	if _, err := gate.Resolve(request.ID, models.WithdrawCancelled, "ops", "", "", baseTime); !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("paid->cancelled err = %v, want ErrInvalidTransition", err)
	}
}

func TestCancelApprovedReleasesLock(t *testing.T) {
	gate, ledger, db, user := newWithdrawGate(t)
	seedBalance(t, db, ledger, user, 25000)

	request, err := gate.Request(user.ID, "TQmAddr1", decimal.NewFromInt(2), baseTime)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := gate.Resolve(request.ID, models.WithdrawApproved, "ops", "", "", baseTime); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := gate.Resolve(request.ID, models.WithdrawCancelled, "ops", "", "", baseTime); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	balance, _ := ledger.BalanceOf(user.ID)
	if balance != 25000 {
		t.Errorf("balance = %d, want 25000", balance)
	}
}

func TestResolveUnknownRequest(t *testing.T) {
	gate, _, _, _ := newWithdrawGate(t)
	if _, err := gate.Resolve(9999, models.WithdrawApproved, "ops", "", "", baseTime); !errors.Is(err, services.ErrWithdrawNotFound) {
		t.Fatalf("err = %v, want ErrWithdrawNotFound", err)
	}
}

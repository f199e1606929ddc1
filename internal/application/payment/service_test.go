package payment

import (
	"context"
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	walletVO "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/wallet/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/migrations"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/repository"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

const (
	testRate        = "12500"
	testPaymeKey    = "payme-secret"
	testClickSvcID  = "7001"
	testClickSecret = "click-secret"
	testIPNSecret   = "ipn-secret"
)

// paySettings serves the fixed values gateway tests depend on.
type paySettings struct{}

func (paySettings) PlatformFeePercentage(context.Context) decimal.Decimal {
	return decimal.NewFromInt(20)
}
func (paySettings) DefaultBaseCPM(context.Context) decimal.Decimal { return decimal.NewFromInt(2) }
func (paySettings) MinWithdrawUSD(context.Context) decimal.Decimal { return decimal.NewFromInt(10) }
func (paySettings) MaxDailyWithdrawUSD(context.Context) decimal.Decimal {
	return decimal.NewFromInt(500)
}
func (paySettings) WithdrawFeeUSD(context.Context) decimal.Decimal { return decimal.NewFromInt(1) }
func (paySettings) AdFrequencyMinutes(context.Context) int         { return 60 }
func (paySettings) PendingTxTTLMinutes(context.Context) int        { return 30 }
func (paySettings) IsMaintenanceMode(context.Context) bool         { return false }

type gatewayFixture struct {
	gdb       *gorm.DB
	svc       *Service
	payme     *PaymeAdapter
	click     *ClickAdapter
	crypto    *CryptopayAdapter
	walletSvc *appWallet.Service
	userID    uint
}

func setupGateways(t *testing.T) *gatewayFixture {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.MigratePaymentTables(gdb))
	require.NoError(t, migrations.MigrateWalletTables(gdb))
	require.NoError(t, migrations.MigrateUserTables(gdb))

	log := logger.NewLogger()
	txMgr := db.NewTransactionManager(gdb)
	userRepo := repository.NewUserRepository(gdb)
	walletSvc := appWallet.NewService(
		repository.NewWalletRepository(gdb),
		repository.NewLedgerRepository(gdb),
		txMgr,
		log,
	)
	svc := NewService(
		repository.NewTransactionRepository(gdb),
		repository.NewReconciliationRepository(gdb),
		userRepo,
		walletSvc,
		paySettings{},
		txMgr,
		nil,
		log,
	)

	conv, err := NewAmountConverter(testRate)
	require.NoError(t, err)

	u, err := user.NewUser(555001, "Pay", "", "payer", "en")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), u))

	return &gatewayFixture{
		gdb:       gdb,
		svc:       svc,
		payme:     NewPaymeAdapter(svc, conv, testPaymeKey, "", log),
		click:     NewClickAdapter(svc, conv, testClickSvcID, testClickSecret, log),
		crypto:    NewCryptopayAdapter(svc, testIPNSecret, log),
		walletSvc: walletSvc,
		userID:    u.ID(),
	}
}

func paymeAuth(secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte("Paycom:"+secret))
}

func (f *gatewayFixture) paymeCall(t *testing.T, secret, method string, params interface{}) PaymeResponse {
	body, err := json.Marshal(map[string]interface{}{
		"id":     1,
		"method": method,
		"params": params,
	})
	require.NoError(t, err)
	return f.payme.Handle(context.Background(), paymeAuth(secret), body)
}

func (f *gatewayFixture) available(t *testing.T) string {
	w, err := f.walletSvc.GetWallet(context.Background(), f.userID)
	require.NoError(t, err)
	return w.Available().String()
}

func (f *gatewayFixture) pending(t *testing.T) string {
	w, err := f.walletSvc.GetWallet(context.Background(), f.userID)
	require.NoError(t, err)
	return w.Pending().String()
}

func TestAmountConverter(t *testing.T) {
	conv, err := NewAmountConverter(testRate)
	require.NoError(t, err)

	assert.Equal(t, "10", conv.TiyinToUSD(12_500_000).String())
	assert.Equal(t, int64(12_500_000), conv.USDToTiyin(decimal.NewFromInt(10)))
	assert.Equal(t, "10", conv.UZSToUSD(decimal.NewFromInt(125_000)).String())

	_, err = NewAmountConverter("0")
	assert.Error(t, err)
	_, err = NewAmountConverter("not-a-number")
	assert.Error(t, err)
}

func TestPayme_DepositSettlesExactlyOnce(t *testing.T) {
	f := setupGateways(t)
	ctx := context.Background()

	tx, err := f.svc.InitiateDeposit(ctx, f.userID, vo.ProviderPayme, decimal.NewFromInt(10))
	require.NoError(t, err)

	account := map[string]string{"order_id": tx.SID()}

	resp := f.paymeCall(t, testPaymeKey, "CheckPerformTransaction", map[string]interface{}{
		"amount": 12_500_000, "account": account,
	})
	require.Nil(t, resp.Error)
	assert.Equal(t, true, resp.Result.(map[string]interface{})["allow"])

	resp = f.paymeCall(t, testPaymeKey, "CreateTransaction", map[string]interface{}{
		"id": "payme_tx_1", "time": time.Now().UnixMilli(), "amount": 12_500_000, "account": account,
	})
	require.Nil(t, resp.Error)
	assert.Equal(t, paymeStatePending, resp.Result.(map[string]interface{})["state"])

	// repeat create with the same gateway id is idempotent
	resp = f.paymeCall(t, testPaymeKey, "CreateTransaction", map[string]interface{}{
		"id": "payme_tx_1", "time": time.Now().UnixMilli(), "amount": 12_500_000, "account": account,
	})
	require.Nil(t, resp.Error)
	assert.Equal(t, paymeStatePending, resp.Result.(map[string]interface{})["state"])

	resp = f.paymeCall(t, testPaymeKey, "PerformTransaction", map[string]interface{}{"id": "payme_tx_1"})
	require.Nil(t, resp.Error)
	first := resp.Result.(map[string]interface{})
	assert.Equal(t, paymeStatePerformed, first["state"])
	assert.Equal(t, "10", f.available(t))

	// duplicate perform observes SUCCESS and echoes the original time
	resp = f.paymeCall(t, testPaymeKey, "PerformTransaction", map[string]interface{}{"id": "payme_tx_1"})
	require.Nil(t, resp.Error)
	second := resp.Result.(map[string]interface{})
	assert.Equal(t, paymeStatePerformed, second["state"])
	assert.Equal(t, first["perform_time"], second["perform_time"])
	assert.Equal(t, "10", f.available(t))

	resp = f.paymeCall(t, testPaymeKey, "CheckTransaction", map[string]interface{}{"id": "payme_tx_1"})
	require.Nil(t, resp.Error)
	assert.Equal(t, paymeStatePerformed, resp.Result.(map[string]interface{})["state"])

	verify, err := f.walletSvc.VerifyBalance(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, verify.Clean)
}

func TestPayme_RejectsBadCredentials(t *testing.T) {
	f := setupGateways(t)

	resp := f.paymeCall(t, "wrong-secret", "CheckPerformTransaction", map[string]interface{}{
		"amount": 100, "account": map[string]string{"order_id": "TX123"},
	})
	require.NotNil(t, resp.Error)
	assert.Equal(t, paymeErrUnauthorized, resp.Error.Code)

	resp = f.payme.Handle(context.Background(), "", []byte(`{"id":1,"method":"CheckTransaction","params":{}}`))
	require.NotNil(t, resp.Error)
	assert.Equal(t, paymeErrUnauthorized, resp.Error.Code)
}

func TestPayme_AmountMismatch(t *testing.T) {
	f := setupGateways(t)
	ctx := context.Background()

	tx, err := f.svc.InitiateDeposit(ctx, f.userID, vo.ProviderPayme, decimal.NewFromInt(10))
	require.NoError(t, err)
	account := map[string]string{"order_id": tx.SID()}

	resp := f.paymeCall(t, testPaymeKey, "CheckPerformTransaction", map[string]interface{}{
		"amount": 9_999_999, "account": account,
	})
	require.NotNil(t, resp.Error)
	assert.Equal(t, paymeErrAmountMismatch, resp.Error.Code)

	resp = f.paymeCall(t, testPaymeKey, "CreateTransaction", map[string]interface{}{
		"id": "payme_tx_2", "time": time.Now().UnixMilli(), "amount": 9_999_999, "account": account,
	})
	require.NotNil(t, resp.Error)
	assert.Equal(t, paymeErrAmountMismatch, resp.Error.Code)
}

func TestPayme_UnknownOrderStoredForReconciliation(t *testing.T) {
	f := setupGateways(t)
	ctx := context.Background()

	resp := f.paymeCall(t, testPaymeKey, "CreateTransaction", map[string]interface{}{
		"id": "payme_ghost", "time": time.Now().UnixMilli(), "amount": 100,
		"account": map[string]string{"order_id": "TXMISSING"},
	})
	require.NotNil(t, resp.Error)
	assert.Equal(t, paymeErrOrderNotFound, resp.Error.Code)

	entries, err := f.svc.ListUnreconciled(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "payme_ghost", entries[0].ProviderTxID())
	assert.Equal(t, "CreateTransaction", entries[0].Method())

	require.NoError(t, f.svc.ResolveReconciliation(ctx, entries[0].ID(), "refunded manually"))
	entries, err = f.svc.ListUnreconciled(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPayme_CancelRules(t *testing.T) {
	f := setupGateways(t)
	ctx := context.Background()

	// cancel before perform
	tx1, err := f.svc.InitiateDeposit(ctx, f.userID, vo.ProviderPayme, decimal.NewFromInt(10))
	require.NoError(t, err)
	f.paymeCall(t, testPaymeKey, "CreateTransaction", map[string]interface{}{
		"id": "payme_c1", "time": time.Now().UnixMilli(), "amount": 12_500_000,
		"account": map[string]string{"order_id": tx1.SID()},
	})
	resp := f.paymeCall(t, testPaymeKey, "CancelTransaction", map[string]interface{}{"id": "payme_c1", "reason": 3})
	require.Nil(t, resp.Error)
	assert.Equal(t, paymeStateCancelled, resp.Result.(map[string]interface{})["state"])
	assert.Equal(t, "0", f.available(t))

	// performing a cancelled transaction is refused
	resp = f.paymeCall(t, testPaymeKey, "PerformTransaction", map[string]interface{}{"id": "payme_c1"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, paymeErrInternal, resp.Error.Code)

	// cancel after perform is refused
	tx2, err := f.svc.InitiateDeposit(ctx, f.userID, vo.ProviderPayme, decimal.NewFromInt(10))
	require.NoError(t, err)
	f.paymeCall(t, testPaymeKey, "CreateTransaction", map[string]interface{}{
		"id": "payme_c2", "time": time.Now().UnixMilli(), "amount": 12_500_000,
		"account": map[string]string{"order_id": tx2.SID()},
	})
	f.paymeCall(t, testPaymeKey, "PerformTransaction", map[string]interface{}{"id": "payme_c2"})
	resp = f.paymeCall(t, testPaymeKey, "CancelTransaction", map[string]interface{}{"id": "payme_c2", "reason": 5})
	require.NotNil(t, resp.Error)
	assert.Equal(t, paymeErrCannotCancel, resp.Error.Code)
	assert.Equal(t, "10", f.available(t))
}

func clickSign(req ClickRequest) string {
	prepareID := ""
	if req.Action == clickActionComplete {
		prepareID = strconv.FormatInt(req.MerchantPrepareID, 10)
	}
	payload := fmt.Sprintf("%d%s%s%s%s%s%d%s",
		req.ClickTransID, testClickSvcID, testClickSecret, req.MerchantTransID,
		prepareID, req.Amount, req.Action, req.SignTime)
	sum := md5.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}

func TestClick_PrepareCompleteFlow(t *testing.T) {
	f := setupGateways(t)
	ctx := context.Background()

	tx, err := f.svc.InitiateDeposit(ctx, f.userID, vo.ProviderClick, decimal.NewFromInt(10))
	require.NoError(t, err)

	prepare := ClickRequest{
		ClickTransID:    880011,
		ServiceID:       testClickSvcID,
		MerchantTransID: tx.SID(),
		Amount:          "125000.00",
		Action:          clickActionPrepare,
		SignTime:        "2026-08-26 10:00:00",
	}
	prepare.SignString = clickSign(prepare)

	resp := f.click.Prepare(ctx, prepare)
	require.Equal(t, clickOK, resp.Error, resp.ErrorNote)
	require.NotZero(t, resp.MerchantPrepareID)

	complete := ClickRequest{
		ClickTransID:      880011,
		ServiceID:         testClickSvcID,
		MerchantTransID:   tx.SID(),
		MerchantPrepareID: resp.MerchantPrepareID,
		Amount:            "125000.00",
		Action:            clickActionComplete,
		SignTime:          "2026-08-26 10:00:05",
	}
	complete.SignString = clickSign(complete)

	resp = f.click.Complete(ctx, complete)
	require.Equal(t, clickOK, resp.Error, resp.ErrorNote)
	assert.Equal(t, "10", f.available(t))

	// duplicate complete replies success without a second credit
	resp = f.click.Complete(ctx, complete)
	require.Equal(t, clickOK, resp.Error, resp.ErrorNote)
	assert.Equal(t, "10", f.available(t))

	stored, err := f.svc.GetTransaction(ctx, tx.SID(), f.userID, false)
	require.NoError(t, err)
	assert.Equal(t, vo.TransactionStatusSuccess, stored.Status())
	require.NotNil(t, stored.ProviderTxID())
	assert.Equal(t, "880011", *stored.ProviderTxID())
}

func TestClick_RejectsBadCallbacks(t *testing.T) {
	f := setupGateways(t)
	ctx := context.Background()

	tx, err := f.svc.InitiateDeposit(ctx, f.userID, vo.ProviderClick, decimal.NewFromInt(10))
	require.NoError(t, err)

	// tampered signature
	bad := ClickRequest{
		ClickTransID: 880100, ServiceID: testClickSvcID, MerchantTransID: tx.SID(),
		Amount: "125000.00", Action: clickActionPrepare, SignTime: "2026-08-26 10:00:00",
		SignString: "deadbeef",
	}
	resp := f.click.Prepare(ctx, bad)
	assert.Equal(t, clickErrSignature, resp.Error)

	// amount drifted past tolerance
	wrongAmount := ClickRequest{
		ClickTransID: 880100, ServiceID: testClickSvcID, MerchantTransID: tx.SID(),
		Amount: "90000.00", Action: clickActionPrepare, SignTime: "2026-08-26 10:00:00",
	}
	wrongAmount.SignString = clickSign(wrongAmount)
	resp = f.click.Prepare(ctx, wrongAmount)
	assert.Equal(t, clickErrAmount, resp.Error)

	// unknown order lands in the reconciliation queue
	unknown := ClickRequest{
		ClickTransID: 880101, ServiceID: testClickSvcID, MerchantTransID: "TXGHOST",
		Amount: "125000.00", Action: clickActionPrepare, SignTime: "2026-08-26 10:00:00",
	}
	unknown.SignString = clickSign(unknown)
	resp = f.click.Prepare(ctx, unknown)
	assert.Equal(t, clickErrTxNotFound, resp.Error)
	entries, err := f.svc.ListUnreconciled(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "880101", entries[0].ProviderTxID())
}

func TestClick_PrepareOnPaidOrder(t *testing.T) {
	f := setupGateways(t)
	ctx := context.Background()

	tx, err := f.svc.InitiateDeposit(ctx, f.userID, vo.ProviderClick, decimal.NewFromInt(10))
	require.NoError(t, err)

	prepare := ClickRequest{
		ClickTransID: 880200, ServiceID: testClickSvcID, MerchantTransID: tx.SID(),
		Amount: "125000.00", Action: clickActionPrepare, SignTime: "2026-08-26 10:00:00",
	}
	prepare.SignString = clickSign(prepare)
	resp := f.click.Prepare(ctx, prepare)
	require.Equal(t, clickOK, resp.Error)

	complete := ClickRequest{
		ClickTransID: 880200, ServiceID: testClickSvcID, MerchantTransID: tx.SID(),
		MerchantPrepareID: resp.MerchantPrepareID,
		Amount:            "125000.00", Action: clickActionComplete, SignTime: "2026-08-26 10:00:05",
	}
	complete.SignString = clickSign(complete)
	require.Equal(t, clickOK, f.click.Complete(ctx, complete).Error)

	resp = f.click.Prepare(ctx, prepare)
	assert.Equal(t, clickErrAlreadyPaid, resp.Error)
}

func ipnSign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(testIPNSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCryptopay_TwoPhaseSettlement(t *testing.T) {
	f := setupGateways(t)
	ctx := context.Background()

	tx, err := f.svc.InitiateCryptoDeposit(ctx, f.userID, "USDT", "TRC20", decimal.NewFromInt(25))
	require.NoError(t, err)

	pendingBody := []byte(fmt.Sprintf(
		`{"uuid":"cp-uuid-1","order_id":"%s","status":"pending","amount":"25","currency":"USDT","network":"TRC20","txid":"abc123"}`,
		tx.SID()))
	require.NoError(t, f.crypto.HandleIPN(ctx, pendingBody, ipnSign(pendingBody)))
	assert.Equal(t, "25", f.pending(t))
	assert.Equal(t, "0", f.available(t))

	// repeated pending notification does not double the hold
	require.NoError(t, f.crypto.HandleIPN(ctx, pendingBody, ipnSign(pendingBody)))
	assert.Equal(t, "25", f.pending(t))

	confirmedBody := []byte(fmt.Sprintf(
		`{"uuid":"cp-uuid-1","order_id":"%s","status":"confirmed","amount":"25","currency":"USDT","network":"TRC20","txid":"abc123"}`,
		tx.SID()))
	require.NoError(t, f.crypto.HandleIPN(ctx, confirmedBody, ipnSign(confirmedBody)))
	assert.Equal(t, "0", f.pending(t))
	assert.Equal(t, "25", f.available(t))

	// settlement must be recorded as a DEPOSIT credit owned by the transaction
	hasDeposit, err := f.walletSvc.HasEntry(ctx, walletVO.EntryTypeDeposit, appWallet.TransactionRef(tx.SID()))
	require.NoError(t, err)
	assert.True(t, hasDeposit)

	// duplicate confirmation observes the settled state
	require.NoError(t, f.crypto.HandleIPN(ctx, confirmedBody, ipnSign(confirmedBody)))
	assert.Equal(t, "25", f.available(t))

	stored, err := f.svc.GetTransaction(ctx, tx.SID(), f.userID, false)
	require.NoError(t, err)
	assert.Equal(t, vo.TransactionStatusSuccess, stored.Status())

	verify, err := f.walletSvc.VerifyBalance(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, verify.Clean)
}

func TestCryptopay_RejectsBadSignatureAndUnmatched(t *testing.T) {
	f := setupGateways(t)
	ctx := context.Background()

	body := []byte(`{"uuid":"cp-x","order_id":"TX404","status":"confirmed","amount":"5"}`)
	err := f.crypto.HandleIPN(ctx, body, "bogus")
	assert.ErrorIs(t, err, ErrIPNSignature)

	err = f.crypto.HandleIPN(ctx, body, ipnSign(body))
	assert.ErrorIs(t, err, ErrIPNUnmatched)

	entries, err := f.svc.ListUnreconciled(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cp-x", entries[0].ProviderTxID())
}

func TestCryptopay_CancelledReleasesPendingHold(t *testing.T) {
	f := setupGateways(t)
	ctx := context.Background()

	tx, err := f.svc.InitiateCryptoDeposit(ctx, f.userID, "USDT", "BEP20", decimal.NewFromInt(40))
	require.NoError(t, err)

	pendingBody := []byte(fmt.Sprintf(
		`{"uuid":"cp-uuid-9","order_id":"%s","status":"pending","amount":"40","currency":"USDT","network":"BEP20"}`,
		tx.SID()))
	require.NoError(t, f.crypto.HandleIPN(ctx, pendingBody, ipnSign(pendingBody)))
	assert.Equal(t, "40", f.pending(t))

	cancelBody := []byte(fmt.Sprintf(
		`{"uuid":"cp-uuid-9","order_id":"%s","status":"cancelled","amount":"40","currency":"USDT","network":"BEP20"}`,
		tx.SID()))
	require.NoError(t, f.crypto.HandleIPN(ctx, cancelBody, ipnSign(cancelBody)))
	assert.Equal(t, "0", f.pending(t))
	assert.Equal(t, "0", f.available(t))

	stored, err := f.svc.GetTransaction(ctx, tx.SID(), f.userID, false)
	require.NoError(t, err)
	assert.Equal(t, vo.TransactionStatusFailed, stored.Status())
}

func TestExpireStalePending(t *testing.T) {
	f := setupGateways(t)
	ctx := context.Background()

	stale, err := f.svc.InitiateCryptoDeposit(ctx, f.userID, "USDT", "TRC20", decimal.NewFromInt(15))
	require.NoError(t, err)
	pendingBody := []byte(fmt.Sprintf(
		`{"uuid":"cp-stale","order_id":"%s","status":"pending","amount":"15","currency":"USDT","network":"TRC20"}`,
		stale.SID()))
	require.NoError(t, f.crypto.HandleIPN(ctx, pendingBody, ipnSign(pendingBody)))

	fresh, err := f.svc.InitiateDeposit(ctx, f.userID, vo.ProviderPayme, decimal.NewFromInt(10))
	require.NoError(t, err)

	// age the first leg past the TTL
	backdated := time.Now().UTC().Add(-2 * time.Hour)
	require.NoError(t, f.gdb.Exec(
		"UPDATE transactions SET created_at = ? WHERE sid = ?", backdated, stale.SID()).Error)

	expired, err := f.svc.ExpireStalePending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	got, err := f.svc.GetTransaction(ctx, stale.SID(), f.userID, false)
	require.NoError(t, err)
	assert.Equal(t, vo.TransactionStatusFailed, got.Status())
	assert.Equal(t, "0", f.pending(t))

	got, err = f.svc.GetTransaction(ctx, fresh.SID(), f.userID, false)
	require.NoError(t, err)
	assert.Equal(t, vo.TransactionStatusPending, got.Status())
}

func TestGetTransaction_HidesForeignLegs(t *testing.T) {
	f := setupGateways(t)
	ctx := context.Background()

	tx, err := f.svc.InitiateDeposit(ctx, f.userID, vo.ProviderPayme, decimal.NewFromInt(10))
	require.NoError(t, err)

	_, err = f.svc.GetTransaction(ctx, tx.SID(), f.userID+1, false)
	assert.ErrorIs(t, err, payment.ErrTransactionNotFound)

	got, err := f.svc.GetTransaction(ctx, tx.SID(), f.userID+1, true)
	require.NoError(t, err)
	assert.Equal(t, f.userID, got.UserID())
}

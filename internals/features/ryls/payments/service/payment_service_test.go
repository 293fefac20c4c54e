package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"risesocial_backend/internals/features/ryls/payments/dto"
	"risesocial_backend/internals/features/ryls/payments/model"
	regmodel "risesocial_backend/internals/features/ryls/registrations/model"
)

/* =========================================================
   Fake store in-memory + fake gateway untuk orchestrator.
========================================================= */

type fakeStore struct {
	regs map[uint]*regmodel.Registration
	recs map[string]*model.GatewayRecord // by order_id
	pays []*model.RylsPayment

	nextRecID uint
	nextPayID uint

	createGatewayErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		regs: map[uint]*regmodel.Registration{},
		recs: map[string]*model.GatewayRecord{},
	}
}

func (f *fakeStore) addRegistration(id uint, t regmodel.ScholarshipType) *regmodel.Registration {
	reg := &regmodel.Registration{
		RegistrationID:              id,
		RegistrationFullName:        "Test Peserta",
		RegistrationEmail:           fmt.Sprintf("peserta%d@example.org", id),
		RegistrationWhatsapp:        "+6281234567890",
		RegistrationScholarshipType: t,
		RegistrationPaymentStatus:   regmodel.RegistrationPaymentPending,
	}
	f.regs[id] = reg
	return reg
}

func (f *fakeStore) RegistrationByID(ctx context.Context, id uint) (*regmodel.Registration, error) {
	reg, ok := f.regs[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return reg, nil
}

func (f *fakeStore) ActivePendingGateway(ctx context.Context, registrationID uint, now time.Time) (*model.RylsPayment, *model.GatewayRecord, error) {
	for i := len(f.pays) - 1; i >= 0; i-- {
		pay := f.pays[i]
		if pay.RylsPaymentRegistrationID != registrationID ||
			pay.RylsPaymentType != model.PaymentTypeGateway ||
			pay.RylsPaymentStatus != model.PaymentStatusPending ||
			pay.RylsPaymentGatewayRecordID == nil {
			continue
		}
		for _, rec := range f.recs {
			if rec.GatewayRecordID == *pay.RylsPaymentGatewayRecordID && rec.GatewayRecordExpiresAt.After(now) {
				return pay, rec, nil
			}
		}
	}
	return nil, nil, nil
}

func (f *fakeStore) LastPaymentID(ctx context.Context) (uint, error) {
	return f.nextPayID, nil
}

func (f *fakeStore) OrderIDExists(ctx context.Context, orderID string) (bool, error) {
	_, ok := f.recs[orderID]
	return ok, nil
}

func (f *fakeStore) CreateGatewayAttempt(ctx context.Context, rec *model.GatewayRecord, pay *model.RylsPayment) error {
	if f.createGatewayErr != nil {
		return f.createGatewayErr
	}
	if _, ok := f.recs[rec.GatewayRecordOrderID]; ok {
		return ErrDuplicateOrderID
	}
	f.nextRecID++
	f.nextPayID++
	rec.GatewayRecordID = f.nextRecID
	pay.RylsPaymentID = f.nextPayID
	recID := rec.GatewayRecordID
	pay.RylsPaymentGatewayRecordID = &recID
	pay.RylsPaymentCreatedAt = time.Now()

	f.recs[rec.GatewayRecordOrderID] = rec
	f.pays = append(f.pays, pay)
	f.regs[pay.RylsPaymentRegistrationID].RegistrationPaymentStatus = regmodel.RegistrationPaymentPending
	return nil
}

func (f *fakeStore) CreateProofPayment(ctx context.Context, asset *regmodel.FileAsset, pay *model.RylsPayment) error {
	f.nextPayID++
	pay.RylsPaymentID = f.nextPayID
	pay.RylsPaymentCreatedAt = time.Now()
	if asset != nil {
		asset.FileAssetID = pay.RylsPaymentID
		assetID := asset.FileAssetID
		pay.RylsPaymentProofFileID = &assetID
	}
	f.pays = append(f.pays, pay)
	f.regs[pay.RylsPaymentRegistrationID].RegistrationPaymentStatus = regmodel.RegistrationPaymentPaid
	return nil
}

func (f *fakeStore) Reconcile(ctx context.Context, orderID string, fn ReconcileFunc) error {
	rec, ok := f.recs[orderID]
	if !ok {
		return ErrRecordNotFound
	}
	var pay *model.RylsPayment
	for _, p := range f.pays {
		if p.RylsPaymentGatewayRecordID != nil && *p.RylsPaymentGatewayRecordID == rec.GatewayRecordID {
			pay = p
			break
		}
	}
	if pay == nil {
		return ErrRecordNotFound
	}
	reg, ok := f.regs[pay.RylsPaymentRegistrationID]
	if !ok {
		return ErrRecordNotFound
	}

	var latest uint
	for _, p := range f.pays {
		if p.RylsPaymentRegistrationID == reg.RegistrationID && p.RylsPaymentID > latest {
			latest = p.RylsPaymentID
		}
	}

	_, err := fn(&ReconcileView{Rec: rec, Pay: pay, Reg: reg, LatestPaymentID: latest})
	return err
}

func (f *fakeStore) LatestPayment(ctx context.Context, registrationID uint) (*model.RylsPayment, error) {
	var out *model.RylsPayment
	for _, p := range f.pays {
		if p.RylsPaymentRegistrationID != registrationID {
			continue
		}
		if out == nil || p.RylsPaymentID > out.RylsPaymentID {
			out = p
		}
	}
	if out == nil {
		return nil, ErrRecordNotFound
	}
	if out.RylsPaymentGatewayRecordID != nil {
		for _, rec := range f.recs {
			if rec.GatewayRecordID == *out.RylsPaymentGatewayRecordID {
				out.GatewayRecord = rec
			}
		}
	}
	return out, nil
}

type fakeGateway struct {
	createCalls int
	cancelCalls []string
	createErr   error
}

func (g *fakeGateway) CreateTransaction(ctx context.Context, p ChargeParams) (*SnapTransaction, error) {
	g.createCalls++
	if g.createErr != nil {
		return nil, g.createErr
	}
	token := "snap-token-" + p.OrderID
	return &SnapTransaction{
		Token:       token,
		RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/" + token,
	}, nil
}

func (g *fakeGateway) CancelOrder(ctx context.Context, orderID string) error {
	g.cancelCalls = append(g.cancelCalls, orderID)
	return nil
}

func (g *fakeGateway) ServerKey() string { return testServerKey }

func newTestService(store *fakeStore, gateway *fakeGateway) *PaymentService {
	s := NewPaymentService(store, gateway, testRylsConfig())
	fixed := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return fixed }
	return s
}

// signedNotification membangun notifikasi dengan signature yang valid.
func signedNotification(s *PaymentService, orderID, status, gross, paymentType, fraud string) *dto.MidtransNotification {
	n := &dto.MidtransNotification{
		OrderID:           orderID,
		StatusCode:        "200",
		GrossAmount:       gross,
		TransactionStatus: status,
		PaymentType:       paymentType,
		FraudStatus:       fraud,
		TransactionID:     "tx-" + orderID,
	}
	n.SignatureKey = s.Verifier.Signature(n.OrderID, n.StatusCode, n.GrossAmount)
	return n
}

/* =========================================================
   startPayment (GATEWAY)
========================================================= */

func TestStartGatewayPaymentFullyFunded(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(1, regmodel.ScholarshipFullyFunded)
	gw := &fakeGateway{}
	svc := newTestService(store, gw)

	res, err := svc.StartGatewayPayment(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "RYLS0001", res.OrderID)
	assert.Equal(t, int64(225_000), res.AmountIDR)
	assert.Equal(t, "IDR", res.Currency)
	assert.Equal(t, "snap-token-RYLS0001", res.Token)
	assert.NotEmpty(t, res.RedirectURL)

	rec := store.recs["RYLS0001"]
	require.NotNil(t, rec)
	assert.Equal(t, model.TxStatusPending, rec.GatewayRecordTransactionStatus)
	assert.Equal(t, svc.Now().Add(24*time.Hour), rec.GatewayRecordExpiresAt)

	assert.Equal(t, regmodel.RegistrationPaymentPending, store.regs[1].RegistrationPaymentStatus)
}

func TestStartGatewayPaymentSelfFundedAmount(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(7, regmodel.ScholarshipSelfFunded)
	svc := newTestService(store, &fakeGateway{})

	res, err := svc.StartGatewayPayment(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(9_000_000), res.AmountIDR)
}

func TestStartGatewayPaymentUnknownRegistration(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeGateway{})

	_, err := svc.StartGatewayPayment(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestStartGatewayPaymentReusesPendingToken(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(1, regmodel.ScholarshipFullyFunded)
	gw := &fakeGateway{}
	svc := newTestService(store, gw)

	first, err := svc.StartGatewayPayment(context.Background(), 1)
	require.NoError(t, err)

	// Attempt kedua saat masih PENDING: token & order id yang sama,
	// gateway tidak dipanggil lagi.
	second, err := svc.StartGatewayPayment(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, first.Token, second.Token)
	assert.Equal(t, 1, gw.createCalls)
	assert.Len(t, store.pays, 1)
}

func TestStartGatewayPaymentCompensatesOnPersistFailure(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(1, regmodel.ScholarshipFullyFunded)
	store.createGatewayErr = ErrDuplicateOrderID
	gw := &fakeGateway{}
	svc := newTestService(store, gw)

	_, err := svc.StartGatewayPayment(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, KindReconciliation, KindOf(err))

	// Order yatim di gateway dibatalkan, registrasi tidak maju.
	assert.Equal(t, []string{"RYLS0001"}, gw.cancelCalls)
	assert.Empty(t, store.pays)
}

func TestStartGatewayPaymentGatewayFailure(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(1, regmodel.ScholarshipFullyFunded)
	gw := &fakeGateway{createErr: errGateway(errors.New("503"), "snap down")}
	svc := newTestService(store, gw)

	_, err := svc.StartGatewayPayment(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, KindGateway, KindOf(err))
	assert.Empty(t, store.pays)
	assert.Empty(t, store.recs)
}

/* =========================================================
   startPayment (PROOF_OF_TRANSFER)
========================================================= */

func TestStartProofPayment(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(3, regmodel.ScholarshipSelfFunded)
	svc := newTestService(store, &fakeGateway{})

	asset := &regmodel.FileAsset{
		FileAssetUploadType:   regmodel.UploadTypePaymentProof,
		FileAssetOriginalName: "bukti.jpg",
		FileAssetPath:         "uploads/proofs/bukti.jpg",
		FileAssetMime:         "image/jpeg",
		FileAssetSize:         1024,
	}

	res, err := svc.StartProofPayment(context.Background(), 3, asset)
	require.NoError(t, err)
	assert.Equal(t, int64(9_000_000), res.AmountIDR)

	require.Len(t, store.pays, 1)
	pay := store.pays[0]
	assert.Equal(t, model.PaymentStatusPaid, pay.RylsPaymentStatus)
	require.NotNil(t, pay.RylsPaymentPaidAt)
	assert.Equal(t, regmodel.RegistrationPaymentPaid, store.regs[3].RegistrationPaymentStatus)
}

/* =========================================================
   applyNotification
========================================================= */

func startPending(t *testing.T, svc *PaymentService, store *fakeStore, regID uint) string {
	t.Helper()
	res, err := svc.StartGatewayPayment(context.Background(), regID)
	require.NoError(t, err)
	return res.OrderID
}

func TestApplyNotificationSettlement(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(1, regmodel.ScholarshipFullyFunded)
	svc := newTestService(store, &fakeGateway{})
	orderID := startPending(t, svc, store, 1)

	n := signedNotification(svc, orderID, "settlement", "225000.00", "bank_transfer", "")
	raw := []byte(`{"transaction_status":"settlement"}`)

	resp, err := svc.ApplyNotification(context.Background(), n, raw)
	require.NoError(t, err)
	assert.Equal(t, "settlement", resp.TransactionStatus)
	assert.Equal(t, "PAID", resp.RegistrationStatus)

	pay := store.pays[0]
	assert.Equal(t, model.PaymentStatusPaid, pay.RylsPaymentStatus)
	require.NotNil(t, pay.RylsPaymentPaidAt)

	rec := store.recs[orderID]
	assert.Equal(t, "settlement", rec.GatewayRecordTransactionStatus)
	require.NotNil(t, rec.GatewayRecordPaidAt)
	assert.JSONEq(t, string(raw), string(rec.GatewayRecordLastNotification))
	assert.Equal(t, regmodel.RegistrationPaymentPaid, store.regs[1].RegistrationPaymentStatus)
}

func TestApplyNotificationExpire(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(2, regmodel.ScholarshipSelfFunded)
	svc := newTestService(store, &fakeGateway{})
	orderID := startPending(t, svc, store, 2)

	n := signedNotification(svc, orderID, "expire", "9000000.00", "bank_transfer", "")
	_, err := svc.ApplyNotification(context.Background(), n, []byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusExpired, store.pays[0].RylsPaymentStatus)
	assert.Nil(t, store.pays[0].RylsPaymentPaidAt)
	assert.Equal(t, regmodel.RegistrationPaymentExpired, store.regs[2].RegistrationPaymentStatus)
}

func TestApplyNotificationCreditCardFraudChallenge(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(1, regmodel.ScholarshipFullyFunded)
	svc := newTestService(store, &fakeGateway{})
	orderID := startPending(t, svc, store, 1)

	n := signedNotification(svc, orderID, "capture", "225000.00", "credit_card", "challenge")
	_, err := svc.ApplyNotification(context.Background(), n, []byte(`{}`))
	require.NoError(t, err)

	// Capture dengan fraud challenge tetap PENDING, belum PAID.
	assert.Equal(t, model.PaymentStatusPending, store.pays[0].RylsPaymentStatus)
	assert.Nil(t, store.pays[0].RylsPaymentPaidAt)
}

func TestApplyNotificationTerminalReplayFrozen(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(1, regmodel.ScholarshipFullyFunded)
	svc := newTestService(store, &fakeGateway{})
	orderID := startPending(t, svc, store, 1)

	settle := signedNotification(svc, orderID, "settlement", "225000.00", "bank_transfer", "")
	_, err := svc.ApplyNotification(context.Background(), settle, []byte(`{"n":1}`))
	require.NoError(t, err)

	pay := store.pays[0]
	paidAt := *pay.RylsPaymentPaidAt
	lastNotif := string(store.recs[orderID].GatewayRecordLastNotification)

	// Replay settlement + expire susulan: state PAID beku semua.
	for _, status := range []string{"settlement", "expire"} {
		n := signedNotification(svc, orderID, status, "225000.00", "bank_transfer", "")
		resp, err := svc.ApplyNotification(context.Background(), n, []byte(`{"n":2}`))
		require.NoError(t, err)
		assert.Equal(t, "settlement", resp.TransactionStatus)
	}

	assert.Equal(t, model.PaymentStatusPaid, pay.RylsPaymentStatus)
	assert.Equal(t, paidAt, *pay.RylsPaymentPaidAt)
	assert.Equal(t, lastNotif, string(store.recs[orderID].GatewayRecordLastNotification))
	assert.Equal(t, regmodel.RegistrationPaymentPaid, store.regs[1].RegistrationPaymentStatus)
}

func TestApplyNotificationBadSignatureNoMutation(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(1, regmodel.ScholarshipFullyFunded)
	svc := newTestService(store, &fakeGateway{})
	orderID := startPending(t, svc, store, 1)

	n := signedNotification(svc, orderID, "settlement", "225000.00", "bank_transfer", "")
	n.SignatureKey = "deadbeef"

	_, err := svc.ApplyNotification(context.Background(), n, []byte(`{}`))
	require.Error(t, err)
	assert.Equal(t, KindSignature, KindOf(err))

	assert.Equal(t, model.PaymentStatusPending, store.pays[0].RylsPaymentStatus)
	assert.Equal(t, model.TxStatusPending, store.recs[orderID].GatewayRecordTransactionStatus)
}

func TestApplyNotificationAmountMismatch(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(1, regmodel.ScholarshipFullyFunded)
	svc := newTestService(store, &fakeGateway{})
	orderID := startPending(t, svc, store, 1)

	// Signature valid (dihitung dari gross yang dikirim), tapi nominal
	// tidak cocok dengan record → consistency error tanpa mutasi.
	n := signedNotification(svc, orderID, "settlement", "1000.00", "bank_transfer", "")
	_, err := svc.ApplyNotification(context.Background(), n, []byte(`{}`))
	require.Error(t, err)
	assert.Equal(t, KindConsistency, KindOf(err))

	assert.Equal(t, model.PaymentStatusPending, store.pays[0].RylsPaymentStatus)
}

func TestApplyNotificationUnknownStatusNoop(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(1, regmodel.ScholarshipFullyFunded)
	svc := newTestService(store, &fakeGateway{})
	orderID := startPending(t, svc, store, 1)

	n := signedNotification(svc, orderID, "partial_refund", "225000.00", "bank_transfer", "")
	resp, err := svc.ApplyNotification(context.Background(), n, []byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, model.TxStatusPending, resp.TransactionStatus)
	assert.Equal(t, model.PaymentStatusPending, store.pays[0].RylsPaymentStatus)
}

func TestApplyNotificationUnknownOrder(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeGateway{})

	n := signedNotification(svc, "RYLS9999", "settlement", "225000.00", "bank_transfer", "")
	_, err := svc.ApplyNotification(context.Background(), n, []byte(`{}`))
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

/* =========================================================
   getPaymentStatus
========================================================= */

func TestPaymentStatusNoPayments(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(1, regmodel.ScholarshipFullyFunded)
	svc := newTestService(store, &fakeGateway{})

	sum, err := svc.PaymentStatus(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, sum.HasPayment)
	assert.Empty(t, sum.OrderID)
}

func TestPaymentStatusLatestPayment(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(1, regmodel.ScholarshipFullyFunded)
	svc := newTestService(store, &fakeGateway{})
	orderID := startPending(t, svc, store, 1)

	n := signedNotification(svc, orderID, "settlement", "225000.00", "bank_transfer", "")
	_, err := svc.ApplyNotification(context.Background(), n, []byte(`{}`))
	require.NoError(t, err)

	sum, err := svc.PaymentStatus(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, sum.HasPayment)
	assert.Equal(t, model.PaymentStatusPaid, sum.Status)
	assert.Equal(t, orderID, sum.OrderID)
	assert.Equal(t, int64(225_000), sum.AmountIDR)
	require.NotNil(t, sum.PaidAt)
}

func TestPaymentStatusUnknownRegistration(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeGateway{})

	_, err := svc.PaymentStatus(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

/* =========================================================
   cancel
========================================================= */

func TestCancelPendingOrder(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(1, regmodel.ScholarshipFullyFunded)
	gw := &fakeGateway{}
	svc := newTestService(store, gw)
	orderID := startPending(t, svc, store, 1)

	res, err := svc.Cancel(context.Background(), orderID, "admin-1", "peserta mundur")
	require.NoError(t, err)
	assert.Equal(t, model.TxStatusPending, res.PreviousStatus)
	assert.Equal(t, model.TxStatusCancel, res.NewStatus)

	assert.Equal(t, model.PaymentStatusCancelled, store.pays[0].RylsPaymentStatus)
	assert.Equal(t, regmodel.RegistrationPaymentFailed, store.regs[1].RegistrationPaymentStatus)
	assert.Equal(t, []string{orderID}, gw.cancelCalls)

	// Jejak pembatalan tersimpan sebagai notifikasi sintetis.
	assert.Contains(t, string(store.recs[orderID].GatewayRecordLastNotification), "admin-1")
}

func TestCancelNonPendingRejected(t *testing.T) {
	store := newFakeStore()
	store.addRegistration(1, regmodel.ScholarshipFullyFunded)
	gw := &fakeGateway{}
	svc := newTestService(store, gw)
	orderID := startPending(t, svc, store, 1)

	n := signedNotification(svc, orderID, "settlement", "225000.00", "bank_transfer", "")
	_, err := svc.ApplyNotification(context.Background(), n, []byte(`{}`))
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), orderID, "admin-1", "")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	// Order yang sudah settle tidak ikut dibatalkan di gateway.
	assert.Empty(t, gw.cancelCalls)
	assert.Equal(t, model.PaymentStatusPaid, store.pays[0].RylsPaymentStatus)
}

func TestCancelUnknownOrder(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeGateway{})

	_, err := svc.Cancel(context.Background(), "RYLS0404", "admin-1", "")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

/* =========================================================
   mapping status
========================================================= */

func TestMapTransactionStatus(t *testing.T) {
	cases := []struct {
		status, paymentType, fraud string
		want                       model.RylsPaymentStatus
	}{
		{"settlement", "bank_transfer", "", model.PaymentStatusPaid},
		{"capture", "credit_card", "accept", model.PaymentStatusPaid},
		{"capture", "credit_card", "challenge", model.PaymentStatusPending},
		{"capture", "credit_card", "deny", model.PaymentStatusFailed},
		{"pending", "", "", model.PaymentStatusPending},
		{"challenge", "", "", model.PaymentStatusPending},
		{"deny", "", "", model.PaymentStatusFailed},
		{"cancel", "", "", model.PaymentStatusFailed},
		{"chargeback", "", "", model.PaymentStatusFailed},
		{"expire", "", "", model.PaymentStatusExpired},
		{"refund", "", "", model.PaymentStatusPaid},
		{"Settlement", "", "", model.PaymentStatusPaid}, // case-insensitive
		{"somethingelse", "", "", model.PaymentStatusUnknown},
	}
	for _, c := range cases {
		got := mapTransactionStatus(c.status, c.paymentType, c.fraud)
		assert.Equal(t, c.want, got, "%s/%s/%s", c.status, c.paymentType, c.fraud)
	}
}

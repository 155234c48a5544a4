package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

func newPaymentFixture() (*PaymentUsecase, *OrderRepoMock, *PaymentRepoMock, *AuditRepoMock) {
	orders := new(OrderRepoMock)
	payments := new(PaymentRepoMock)
	audit := new(AuditRepoMock)
	txm := &TxManagerMock{Repos: &TxReposMock{orders: orders, payments: payments, auditLogs: audit}}
	txm.On("WithinTx", mock.Anything).Return()

	u := NewPaymentUsecase(txm, nil, PaymentConfig{FeeRate: decimal.RequireFromString("0.029")})
	u.newID = func() string { return "fixed-id" }
	u.now = func() time.Time { return time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC) }
	return u, orders, payments, audit
}

func TestPaymentUsecase_Process_Validation(t *testing.T) {
	u, _, _, _ := newPaymentFixture()

	_, err := u.Process(context.Background(), client, ProcessPaymentInput{Method: "cash"})
	assert.ElementsMatch(t, []string{"orderId", "amount", "method"}, fieldsOf(err))
}

func TestPaymentUsecase_Process_ForeignOrder(t *testing.T) {
	u, orders, payments, _ := newPaymentFixture()
	orders.On("FindOwnedForUpdate", mock.Anything, "o-other", "user-1").Return(nil, repo.ErrNotFound)

	_, err := u.Process(context.Background(), client, ProcessPaymentInput{
		OrderID: "o-other", Amount: decimal.NewFromInt(10), Method: "card",
	})
	assertHTTPError(t, err, http.StatusNotFound, "Order not found")
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentUsecase_Process_Success(t *testing.T) {
	u, orders, payments, _ := newPaymentFixture()
	orders.On("FindOwnedForUpdate", mock.Anything, "o1", "user-1").Return(&model.Order{ID: "o1", UserID: "user-1"}, nil)
	payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	orders.On("MarkPaid", mock.Anything, "o1", "txn_fixed-id").Return(nil)

	p, err := u.Process(context.Background(), client, ProcessPaymentInput{
		OrderID: "o1", Amount: decimal.RequireFromString("199.98"), Method: "card",
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCompleted, p.Status)
	assert.Equal(t, "txn_fixed-id", p.TransactionID)
	assert.Equal(t, map[string]any{
		"gateway":  "mock_payment_gateway",
		"status":   "success",
		"fee":      5.8,
		"currency": "USD",
	}, p.GatewayResponse)
	orders.AssertExpectations(t)
}

func TestPaymentUsecase_Process_OrderUpdateFailureFails(t *testing.T) {
	u, orders, payments, _ := newPaymentFixture()
	orders.On("FindOwnedForUpdate", mock.Anything, "o1", "user-1").Return(&model.Order{ID: "o1"}, nil)
	payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	orders.On("MarkPaid", mock.Anything, "o1", mock.Anything).Return(errors.New("write failed"))

	_, err := u.Process(context.Background(), client, ProcessPaymentInput{
		OrderID: "o1", Amount: decimal.NewFromInt(1), Method: "card",
	})
	assertHTTPError(t, err, http.StatusInternalServerError, "Server Error")
}

func TestPaymentUsecase_Process_AlreadyPaid(t *testing.T) {
	u, orders, _, _ := newPaymentFixture()
	paid := model.PaymentStatusCompleted
	orders.On("FindOwnedForUpdate", mock.Anything, "o1", "user-1").Return(&model.Order{ID: "o1", PaymentStatus: &paid}, nil)

	_, err := u.Process(context.Background(), client, ProcessPaymentInput{
		OrderID: "o1", Amount: decimal.NewFromInt(1), Method: "card",
	})
	assertHTTPError(t, err, http.StatusBadRequest, "Order has already been paid")
}

func TestPaymentUsecase_Refund(t *testing.T) {
	u, _, payments, audit := newPaymentFixture()
	p := &model.Payment{
		ID:              "pay-1",
		OrderID:         "o1",
		Amount:          decimal.NewFromInt(50),
		Status:          model.PaymentStatusCompleted,
		GatewayResponse: map[string]any{"gateway": "mock_payment_gateway", "status": "success"},
	}
	payments.On("FindByIDForUpdate", mock.Anything, "pay-1").Return(p, nil)
	payments.On("Save", mock.Anything, p).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionRefundPayment && l.ResourceID == "pay-1"
	})).Return(nil)

	res, err := u.Refund(context.Background(), admin, "pay-1")
	require.NoError(t, err)
	assert.Equal(t, "rfnd_fixed-id", res.RefundID)
	assert.Equal(t, model.PaymentStatusRefunded, res.Payment.Status)
	assert.Equal(t, "mock_payment_gateway", res.Payment.GatewayResponse["gateway"])
	assert.Equal(t, map[string]any{
		"id":         "rfnd_fixed-id",
		"amount":     50.0,
		"refundedAt": "2026-05-01T10:00:00Z",
	}, res.Payment.GatewayResponse["refund"])
	audit.AssertExpectations(t)
}

func TestPaymentUsecase_Refund_Errors(t *testing.T) {
	u, _, payments, _ := newPaymentFixture()

	_, err := u.Refund(context.Background(), client, "pay-1")
	assertHTTPError(t, err, http.StatusForbidden, "Admin access required")

	payments.On("FindByIDForUpdate", mock.Anything, "missing").Return(nil, repo.ErrNotFound)
	_, err = u.Refund(context.Background(), admin, "missing")
	assertHTTPError(t, err, http.StatusNotFound, "Payment not found")

	payments.On("FindByIDForUpdate", mock.Anything, "done").Return(&model.Payment{ID: "done", Status: model.PaymentStatusRefunded}, nil)
	_, err = u.Refund(context.Background(), admin, "done")
	assertHTTPError(t, err, http.StatusBadRequest, "Payment has already been refunded")
}

// 行ロック待ちの後に別トランザクションが先に支払い済みにしたケース
func TestPaymentUsecase_Process_ConcurrentPaymentLoses(t *testing.T) {
	u, orders, payments, _ := newPaymentFixture()
	orders.On("FindOwnedForUpdate", mock.Anything, "o1", "user-1").Return(&model.Order{ID: "o1", UserID: "user-1"}, nil)
	payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	orders.On("MarkPaid", mock.Anything, "o1", "txn_fixed-id").Return(repo.ErrConflict)

	_, err := u.Process(context.Background(), client, ProcessPaymentInput{
		OrderID: "o1", Amount: decimal.NewFromInt(1), Method: "card",
	})
	assertHTTPError(t, err, http.StatusBadRequest, "Order has already been paid")
}

func TestPaymentUsecase_Refund_AuditSnapshot(t *testing.T) {
	u, _, payments, audit := newPaymentFixture()
	u.newID = func() string { return `id-with-"quote` }
	p := &model.Payment{ID: "pay-1", OrderID: "o1", Amount: decimal.NewFromInt(5), Status: model.PaymentStatusCompleted}
	payments.On("FindByIDForUpdate", mock.Anything, "pay-1").Return(p, nil)
	payments.On("Save", mock.Anything, p).Return(nil)

	var entry model.AuditLog
	audit.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		entry = args.Get(1).(model.AuditLog)
	}).Return(nil)

	_, err := u.Refund(context.Background(), admin, "pay-1")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", entry.ActorUserID)
	assert.Equal(t, model.AuditResourcePayment, entry.ResourceType)
	assert.JSONEq(t, `{"status":"completed"}`, entry.BeforeJSON)
	assert.JSONEq(t, `{"status":"refunded","refundId":"rfnd_id-with-\"quote"}`, entry.AfterJSON)
}

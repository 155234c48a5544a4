package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/domain/access"
	"storefront/internal/domain/model"
	"storefront/internal/infra/events"
	repo "storefront/internal/repository"
)

const mockGateway = "mock_payment_gateway"

type PaymentConfig struct {
	Currency string
	FeeRate  decimal.Decimal
}

// PaymentUsecase simulates a payment gateway. No external call is made.
type PaymentUsecase struct {
	tx     repo.TransactionManager
	events EventPublisher
	cfg    PaymentConfig
	now    func() time.Time
	newID  func() string
}

func NewPaymentUsecase(tx repo.TransactionManager, ev EventPublisher, cfg PaymentConfig) *PaymentUsecase {
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	return &PaymentUsecase{
		tx:     tx,
		events: ev,
		cfg:    cfg,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

type ProcessPaymentInput struct {
	OrderID string
	Amount  decimal.Decimal
	Method  string
}

func (in ProcessPaymentInput) validate() error {
	var fe fieldErrors
	if strings.TrimSpace(in.OrderID) == "" {
		fe.add("orderId", "Order ID is required")
	}
	if !in.Amount.IsPositive() {
		fe.add("amount", "Amount must be a positive number")
	}
	if !model.PaymentMethod(in.Method).IsValid() {
		fe.add("method", "Invalid payment method")
	}
	return fe.err()
}

// Process records a completed payment and marks the order paid. Both writes
// share one transaction.
func (u *PaymentUsecase) Process(ctx context.Context, caller access.Caller, in ProcessPaymentInput) (*model.Payment, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	amount := model.RoundMoney(in.Amount)
	txnID := "txn_" + u.newID()

	var payment *model.Payment
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindOwnedForUpdate(ctx, in.OrderID, caller.ID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return internalError(err)
		}
		if order.IsPaid() {
			return NewHTTPError(http.StatusBadRequest, "Order has already been paid")
		}

		payment = &model.Payment{
			OrderID:         order.ID,
			Amount:          amount,
			Method:          model.PaymentMethod(in.Method),
			Status:          model.PaymentStatusCompleted,
			TransactionID:   txnID,
			GatewayResponse: u.gatewayResponse(amount),
		}
		if err := r.Payments().Create(ctx, payment); err != nil {
			return internalError(err)
		}
		if err := r.Orders().MarkPaid(ctx, order.ID, txnID); err != nil {
			if errors.Is(err, repo.ErrConflict) {
				return NewHTTPError(http.StatusBadRequest, "Order has already been paid")
			}
			return internalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, u.events, events.TopicPaymentCompleted, payment.OrderID, payment)
	return payment, nil
}

func (u *PaymentUsecase) gatewayResponse(amount decimal.Decimal) map[string]any {
	fee := model.RoundMoney(amount.Mul(u.cfg.FeeRate))
	return map[string]any{
		"gateway":  mockGateway,
		"status":   "success",
		"fee":      fee.InexactFloat64(),
		"currency": u.cfg.Currency,
	}
}

type RefundResult struct {
	Payment  *model.Payment
	RefundID string
}

// Refund marks a payment refunded and appends the refund record to the
// gateway response. The order itself is left as is.
func (u *PaymentUsecase) Refund(ctx context.Context, caller access.Caller, paymentID string) (*RefundResult, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	refundID := "rfnd_" + u.newID()
	var payment *model.Payment
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByIDForUpdate(ctx, paymentID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Payment not found")
		}
		if err != nil {
			return internalError(err)
		}
		if p.Status == model.PaymentStatusRefunded {
			return NewHTTPError(http.StatusBadRequest, "Payment has already been refunded")
		}

		before := p.Status
		resp := make(map[string]any, len(p.GatewayResponse)+1)
		for k, v := range p.GatewayResponse {
			resp[k] = v
		}
		resp["refund"] = map[string]any{
			"id":         refundID,
			"amount":     p.Amount.InexactFloat64(),
			"refundedAt": u.now().UTC().Format(time.RFC3339),
		}
		p.GatewayResponse = resp
		p.Status = model.PaymentStatusRefunded

		if err := r.Payments().Save(ctx, p); err != nil {
			return internalError(err)
		}
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  caller.ID,
			Action:       model.AuditActionRefundPayment,
			ResourceType: model.AuditResourcePayment,
			ResourceID:   p.ID,
			BeforeJSON:   auditJSON(map[string]any{"status": before}),
			AfterJSON:    auditJSON(map[string]any{"status": p.Status, "refundId": refundID}),
			CreatedAt:    u.now(),
		}); err != nil {
			return internalError(err)
		}
		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, u.events, events.TopicPaymentRefunded, payment.OrderID, payment)
	return &RefundResult{Payment: payment, RefundID: refundID}, nil
}

package usecase

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"

	"storefront/internal/domain/access"
	"storefront/internal/domain/model"
	"storefront/internal/infra/events"
	repo "storefront/internal/repository"
)

type AdminOrderUsecase struct {
	orders repo.OrderRepository
	tx     repo.TransactionManager
	events EventPublisher
	now    func() time.Time
}

func NewAdminOrderUsecase(orders repo.OrderRepository, tx repo.TransactionManager, ev EventPublisher) *AdminOrderUsecase {
	return &AdminOrderUsecase{orders: orders, tx: tx, events: ev, now: time.Now}
}

// 注文一覧（全ユーザー分、注文者のメール付き）
func (u *AdminOrderUsecase) List(ctx context.Context, caller access.Caller) ([]model.Order, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	orders, err := u.orders.ListAll(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	// 注文者はメールだけ見せる
	for i := range orders {
		if orders[i].User != nil {
			orders[i].User = &model.User{Email: orders[i].User.Email}
		}
	}
	return orders, nil
}

type OrderStatusChanged struct {
	OrderID string            `json:"orderId"`
	From    model.OrderStatus `json:"from"`
	To      model.OrderStatus `json:"to"`
	ActorID string            `json:"actorId"`
}

// UpdateStatus sets any valid status regardless of the current one.
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, caller access.Caller, orderID string, status string) (*model.Order, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	newStatus := model.OrderStatus(trimmed(status))
	if !newStatus.IsValid() {
		var fe fieldErrors
		fe.add("status", "Invalid order status")
		return nil, fe.err()
	}

	var (
		updated *model.Order
		before  model.OrderStatus
	)
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return internalError(err)
		}
		before = o.Status

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "Order not found")
			}
			return internalError(err)
		}

		// 監査ログ（UPDATE_ORDER_STATUS）
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  caller.ID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   statusJSON(before),
			AfterJSON:    statusJSON(newStatus),
			CreatedAt:    u.now(),
		}); err != nil {
			return internalError(err)
		}

		o.Status = newStatus
		o.UpdatedAt = u.now()
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, u.events, events.TopicOrderStatusChanged, orderID, OrderStatusChanged{
		OrderID: orderID,
		From:    before,
		To:      newStatus,
		ActorID: caller.ID,
	})
	return updated, nil
}

func statusJSON(s model.OrderStatus) string {
	return auditJSON(map[string]any{"status": s})
}

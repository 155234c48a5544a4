package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/access"
	"storefront/internal/domain/model"
	"storefront/internal/infra/events"
	repo "storefront/internal/repository"
)

type OrderUsecase struct {
	orders repo.OrderRepository
	tx     repo.TransactionManager
	events EventPublisher
}

func NewOrderUsecase(orders repo.OrderRepository, tx repo.TransactionManager, ev EventPublisher) *OrderUsecase {
	return &OrderUsecase{orders: orders, tx: tx, events: ev}
}

type CreateOrderInput struct {
	Products      []model.OrderItem
	TotalPrice    decimal.Decimal
	PaymentMethod string
}

func (in CreateOrderInput) validate() error {
	var fe fieldErrors
	if len(in.Products) == 0 {
		fe.add("products", "Products array cannot be empty")
	}
	for i, it := range in.Products {
		if it.Quantity < 1 {
			fe.add(fmt.Sprintf("products[%d].quantity", i), "Quantity must be at least 1")
		}
		if it.Price.IsNegative() {
			fe.add(fmt.Sprintf("products[%d].price", i), "Price must not be negative")
		}
	}
	if !in.TotalPrice.IsPositive() {
		fe.add("totalPrice", "Total price must be a positive number")
	}
	if !model.PaymentMethod(in.PaymentMethod).IsValid() {
		fe.add("paymentMethod", "Invalid payment method")
	}
	return fe.err()
}

// CreateOrder stores the submitted line items as an immutable snapshot.
// totalPrice is taken as submitted since a coupon may have lowered it.
func (u *OrderUsecase) CreateOrder(ctx context.Context, caller access.Caller, in CreateOrderInput) (*model.Order, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	order := &model.Order{
		UserID:        caller.ID,
		Products:      in.Products,
		TotalPrice:    model.RoundMoney(in.TotalPrice),
		PaymentMethod: model.PaymentMethod(in.PaymentMethod),
		Status:        model.OrderStatusPendingPayment,
	}
	if err := u.orders.Create(ctx, order); err != nil {
		return nil, internalError(err)
	}

	publish(ctx, u.events, events.TopicOrderCreated, order.ID, order)
	return order, nil
}

// Checkout turns the caller's cart into an order and empties the cart in
// the same transaction.
func (u *OrderUsecase) Checkout(ctx context.Context, caller access.Caller, paymentMethod string) (*model.Order, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if !model.PaymentMethod(paymentMethod).IsValid() {
		var fe fieldErrors
		fe.add("paymentMethod", "Invalid payment method")
		return nil, fe.err()
	}

	var order *model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.CartItems().ListByUserIDForUpdate(ctx, caller.ID)
		if err != nil {
			return internalError(err)
		}
		if len(cart) == 0 {
			var fe fieldErrors
			fe.add("products", "Cart is empty")
			return fe.err()
		}

		items := make([]model.OrderItem, 0, len(cart))
		for _, ci := range cart {
			items = append(items, model.OrderItem{
				ProductID: ci.ProductID,
				Name:      ci.ProductName,
				Quantity:  ci.Quantity,
				Price:     ci.Price,
			})
		}

		order = &model.Order{
			UserID:        caller.ID,
			Products:      items,
			TotalPrice:    model.RoundMoney(model.SumItems(items)),
			PaymentMethod: model.PaymentMethod(paymentMethod),
			Status:        model.OrderStatusPendingPayment,
		}
		if err := r.Orders().Create(ctx, order); err != nil {
			return internalError(err)
		}
		if err := r.CartItems().DeleteByUserID(ctx, caller.ID); err != nil {
			return internalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, u.events, events.TopicOrderCreated, order.ID, order)
	return order, nil
}

// ListOrders は自分の注文だけ、新しい順。
func (u *OrderUsecase) ListOrders(ctx context.Context, caller access.Caller) ([]model.Order, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	orders, err := u.orders.ListByUserID(ctx, caller.ID)
	if err != nil {
		return nil, internalError(err)
	}
	return orders, nil
}

func trimmed(s string) string { return strings.TrimSpace(s) }

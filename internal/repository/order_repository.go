package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order with its items, payment and delivery in one
// transaction. Stock is decremented conditionally inside the same
// transaction: `stock >= quantity` in the UPDATE is the guard against two
// checkouts over-subscribing the same unit, so a failed decrement aborts
// the whole order.
func (r *OrderRepository) Create(order *domain.Order) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("transaction begin error: %w", err)
	}
	defer tx.Rollback()

	for _, item := range order.Items {
		res, err := tx.Exec(
			`UPDATE products SET stock = stock - $2, updated_at = NOW() WHERE id = $1 AND stock >= $2`,
			item.ProductID, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("stock decrement error: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("stock decrement error: %w", err)
		}
		if affected == 0 {
			return domain.ErrInsufficientStock
		}
	}

	_, err = tx.Exec(
		`INSERT INTO orders (id, user_id, address_id, status, subtotal_cents, shipping_cents, discount_cents, total_cents, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		order.ID, order.UserID, order.AddressID, order.Status,
		order.SubtotalCents, order.ShippingCents, order.DiscountCents, order.TotalCents,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("order insert error: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.Exec(
			`INSERT INTO order_items (id, order_id, product_id, name_snapshot, unit_price_cents, quantity, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, item.OrderID, item.ProductID, item.NameSnapshot, item.UnitPriceCents, item.Quantity, item.Position,
		)
		if err != nil {
			return fmt.Errorf("order item insert error: %w", err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO payments (id, order_id, provider, status, paid_at) VALUES ($1, $2, $3, $4, $5)`,
		order.Payment.ID, order.ID, order.Payment.Provider, order.Payment.Status, order.Payment.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("payment insert error: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO deliveries (id, order_id, method, status, tracking, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		order.Delivery.ID, order.ID, order.Delivery.Method, order.Delivery.Status, order.Delivery.Tracking, order.Delivery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("delivery insert error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit error: %w", err)
	}
	return nil
}

const orderColumns = `o.id, o.user_id, o.address_id, o.status, o.subtotal_cents, o.shipping_cents, o.discount_cents, o.total_cents, o.created_at, o.updated_at`

func scanOrder(s interface{ Scan(...interface{}) error }) (*domain.Order, error) {
	var o domain.Order
	err := s.Scan(
		&o.ID, &o.UserID, &o.AddressID, &o.Status,
		&o.SubtotalCents, &o.ShippingCents, &o.DiscountCents, &o.TotalCents,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Items = []domain.OrderItem{}
	return &o, nil
}

// GetByID loads the full aggregate. Returns (nil, nil) when absent.
func (r *OrderRepository) GetByID(orderID uuid.UUID) (*domain.Order, error) {
	return r.getWhere(`o.id = $1`, orderID)
}

// GetForUser loads the aggregate only when owned by userID, so callers can
// surface a plain not-found for other users' orders.
func (r *OrderRepository) GetForUser(orderID, userID uuid.UUID) (*domain.Order, error) {
	return r.getWhere(`o.id = $1 AND o.user_id = $2`, orderID, userID)
}

func (r *OrderRepository) getWhere(where string, args ...interface{}) (*domain.Order, error) {
	row := r.db.QueryRow(`SELECT `+orderColumns+` FROM orders o WHERE `+where, args...)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("order query error: %w", err)
	}
	if err := r.populate([]*domain.Order{order}, true); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) ListByUser(userID uuid.UUID) ([]*domain.Order, error) {
	return r.listWhere(`o.user_id = $1`, userID)
}

func (r *OrderRepository) ListAll() ([]*domain.Order, error) {
	return r.listWhere(``)
}

func (r *OrderRepository) listWhere(where string, args ...interface{}) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY o.created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("orders query error: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("order scan error: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders iteration error: %w", err)
	}

	if err := r.populate(orders, true); err != nil {
		return nil, err
	}
	return orders, nil
}

// populate attaches items, payments, deliveries, addresses and user refs to
// the given orders with one query per relation.
func (r *OrderRepository) populate(orders []*domain.Order, withUser bool) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Order, len(orders))
	orderIDs := make([]string, 0, len(orders))
	addressIDs := make([]string, 0, len(orders))
	userIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		orderIDs = append(orderIDs, o.ID.String())
		addressIDs = append(addressIDs, o.AddressID.String())
		userIDs = append(userIDs, o.UserID.String())
	}

	rows, err := r.db.Query(
		`SELECT id, order_id, product_id, name_snapshot, unit_price_cents, quantity, position
		 FROM order_items WHERE order_id = ANY($1::uuid[]) ORDER BY order_id, position`,
		pq.Array(orderIDs),
	)
	if err != nil {
		return fmt.Errorf("order items query error: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.NameSnapshot, &item.UnitPriceCents, &item.Quantity, &item.Position); err != nil {
			return fmt.Errorf("order item scan error: %w", err)
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("order items iteration error: %w", err)
	}

	payRows, err := r.db.Query(
		`SELECT id, order_id, provider, status, paid_at FROM payments WHERE order_id = ANY($1::uuid[])`,
		pq.Array(orderIDs),
	)
	if err != nil {
		return fmt.Errorf("payments query error: %w", err)
	}
	defer payRows.Close()
	for payRows.Next() {
		var p domain.Payment
		if err := payRows.Scan(&p.ID, &p.OrderID, &p.Provider, &p.Status, &p.PaidAt); err != nil {
			return fmt.Errorf("payment scan error: %w", err)
		}
		if o, ok := byID[p.OrderID]; ok {
			payment := p
			o.Payment = &payment
		}
	}

	delRows, err := r.db.Query(
		`SELECT id, order_id, method, status, tracking, updated_at FROM deliveries WHERE order_id = ANY($1::uuid[])`,
		pq.Array(orderIDs),
	)
	if err != nil {
		return fmt.Errorf("deliveries query error: %w", err)
	}
	defer delRows.Close()
	for delRows.Next() {
		var d domain.Delivery
		if err := delRows.Scan(&d.ID, &d.OrderID, &d.Method, &d.Status, &d.Tracking, &d.UpdatedAt); err != nil {
			return fmt.Errorf("delivery scan error: %w", err)
		}
		if o, ok := byID[d.OrderID]; ok {
			delivery := d
			o.Delivery = &delivery
		}
	}

	addrRows, err := r.db.Query(
		`SELECT id, user_id, label, postal_code, street, number, complement, city, state, created_at
		 FROM addresses WHERE id = ANY($1::uuid[])`,
		pq.Array(addressIDs),
	)
	if err != nil {
		return fmt.Errorf("addresses query error: %w", err)
	}
	defer addrRows.Close()
	addrByID := make(map[uuid.UUID]*domain.Address)
	for addrRows.Next() {
		var a domain.Address
		if err := addrRows.Scan(&a.ID, &a.UserID, &a.Label, &a.PostalCode, &a.Street, &a.Number, &a.Complement, &a.City, &a.State, &a.CreatedAt); err != nil {
			return fmt.Errorf("address scan error: %w", err)
		}
		addr := a
		addrByID[a.ID] = &addr
	}
	for _, o := range orders {
		o.Address = addrByID[o.AddressID]
	}

	if withUser {
		userRows, err := r.db.Query(
			`SELECT id, name, email FROM users WHERE id = ANY($1::uuid[])`,
			pq.Array(userIDs),
		)
		if err != nil {
			return fmt.Errorf("users query error: %w", err)
		}
		defer userRows.Close()
		usersByID := make(map[uuid.UUID]*domain.UserRef)
		for userRows.Next() {
			var u domain.UserRef
			if err := userRows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
				return fmt.Errorf("user scan error: %w", err)
			}
			ref := u
			usersByID[u.ID] = &ref
		}
		for _, o := range orders {
			o.User = usersByID[o.UserID]
		}
	}

	return nil
}

// SetStatus writes the status directly without flow validation. Returns
// false when the order does not exist.
func (r *OrderRepository) SetStatus(orderID uuid.UUID, status domain.OrderStatus) (bool, error) {
	res, err := r.db.Exec(
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`,
		orderID, status,
	)
	if err != nil {
		return false, fmt.Errorf("order status update error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// MarkPaid transitions the order to paid and confirms its payment in one
// transaction.
func (r *OrderRepository) MarkPaid(orderID uuid.UUID, paidAt time.Time) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("transaction begin error: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`,
		orderID, domain.OrderStatusPaid,
	)
	if err != nil {
		return fmt.Errorf("order status update error: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE payments SET status = $2, paid_at = $3 WHERE order_id = $1`,
		orderID, domain.PaymentStatusConfirmed, paidAt,
	)
	if err != nil {
		return fmt.Errorf("payment update error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit error: %w", err)
	}
	return nil
}

// UpsertDelivery updates only the provided fields, creating the delivery row
// when an order predates one.
func (r *OrderRepository) UpsertDelivery(orderID uuid.UUID, req domain.UpdateDeliveryRequest) (*domain.Delivery, error) {
	var d domain.Delivery
	err := r.db.QueryRow(
		`SELECT id, order_id, method, status, tracking, updated_at FROM deliveries WHERE order_id = $1`,
		orderID,
	).Scan(&d.ID, &d.OrderID, &d.Method, &d.Status, &d.Tracking, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		d = domain.Delivery{
			ID:      uuid.New(),
			OrderID: orderID,
			Method:  domain.DeliveryMethodDelivery,
			Status:  domain.DeliveryStatusAwaiting,
		}
		applyDeliveryUpdate(&d, req)
		d.UpdatedAt = time.Now()
		_, err = r.db.Exec(
			`INSERT INTO deliveries (id, order_id, method, status, tracking, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, d.OrderID, d.Method, d.Status, d.Tracking, d.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("delivery insert error: %w", err)
		}
		return &d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delivery query error: %w", err)
	}

	applyDeliveryUpdate(&d, req)
	d.UpdatedAt = time.Now()
	_, err = r.db.Exec(
		`UPDATE deliveries SET method = $2, status = $3, tracking = $4, updated_at = $5 WHERE order_id = $1`,
		orderID, d.Method, d.Status, d.Tracking, d.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("delivery update error: %w", err)
	}
	return &d, nil
}

func applyDeliveryUpdate(d *domain.Delivery, req domain.UpdateDeliveryRequest) {
	if req.Method != nil {
		d.Method = *req.Method
	}
	if req.Status != nil {
		d.Status = *req.Status
	}
	if req.Tracking != nil {
		d.Tracking = req.Tracking
	}
}

// SetPaymentStatus writes the payment status directly. paidAt is stamped for
// confirmations and cleared otherwise. Returns (nil, nil) when the order has
// no payment row.
func (r *OrderRepository) SetPaymentStatus(orderID uuid.UUID, status domain.PaymentStatus) (*domain.Payment, error) {
	var paidAt *time.Time
	if status == domain.PaymentStatusConfirmed {
		now := time.Now()
		paidAt = &now
	}

	var p domain.Payment
	err := r.db.QueryRow(
		`UPDATE payments SET status = $2, paid_at = $3 WHERE order_id = $1
		 RETURNING id, order_id, provider, status, paid_at`,
		orderID, status, paidAt,
	).Scan(&p.ID, &p.OrderID, &p.Provider, &p.Status, &p.PaidAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("payment update error: %w", err)
	}
	return &p, nil
}

func (r *OrderRepository) CountByStatus() (map[domain.OrderStatus]int64, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("order counts query error: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.OrderStatus]int64)
	for rows.Next() {
		var status domain.OrderStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("order counts scan error: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *OrderRepository) RevenueCents() (int64, error) {
	var revenue sql.NullInt64
	if err := r.db.QueryRow(`SELECT SUM(total_cents) FROM orders`).Scan(&revenue); err != nil {
		return 0, fmt.Errorf("revenue query error: %w", err)
	}
	return revenue.Int64, nil
}

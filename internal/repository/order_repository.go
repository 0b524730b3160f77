package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abheydecbs/webshop-eksamen/internal/domain"
)

// CreateOrder inserts the customer snapshot, the order header and every
// order line inside one transaction. A failure anywhere rolls the whole
// order back, so a partial order can never be observed.
func (r *Repository) CreateOrder(ctx context.Context, customer *domain.Customer, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO kunder (navn, email, telefon, adresse, postnr, by)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.PostalCode,
		customer.City,
	)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}

	customerID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read customer id: %w", err)
	}
	customer.ID = customerID
	order.CustomerID = customerID

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ordre (ordre_id, kunde_id, total_pris, status)
		 VALUES (?, ?, ?, ?)`,
		order.OrderID,
		customerID,
		order.TotalPrice,
		order.Status,
	); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, line := range order.Lines {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ordre_linjer (ordre_id, produkt_id, produkt_navn, produkt_pris, antal)
			 VALUES (?, ?, ?, ?, ?)`,
			order.OrderID,
			line.ProductID,
			line.ProductName,
			line.Price,
			line.Quantity,
		); err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

func (r *Repository) ListOrders(ctx context.Context) ([]*domain.OrderSummary, error) {
	query := `
		SELECT o.ordre_id, o.total_pris, o.status, o.oprettet_dato,
		       k.navn, k.email, k.telefon, k.adresse, k.postnr, k.by
		FROM ordre o
		JOIN kunder k ON o.kunde_id = k.id
		ORDER BY o.oprettet_dato DESC, o.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.OrderSummary
	for rows.Next() {
		s := &domain.OrderSummary{}
		if err := rows.Scan(
			&s.OrderID,
			&s.TotalPrice,
			&s.Status,
			&s.CreatedAt,
			&s.CustomerName,
			&s.CustomerEmail,
			&s.CustomerPhone,
			&s.CustomerAddress,
			&s.CustomerPostalCode,
			&s.CustomerCity,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return orders, nil
}

func (r *Repository) GetOrder(ctx context.Context, orderID string) (*domain.OrderSummary, []*domain.OrderLine, error) {
	query := `
		SELECT o.ordre_id, o.total_pris, o.status, o.oprettet_dato,
		       k.navn, k.email, k.telefon, k.adresse, k.postnr, k.by
		FROM ordre o
		JOIN kunder k ON o.kunde_id = k.id
		WHERE o.ordre_id = ?
	`

	s := &domain.OrderSummary{}
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&s.OrderID,
		&s.TotalPrice,
		&s.Status,
		&s.CreatedAt,
		&s.CustomerName,
		&s.CustomerEmail,
		&s.CustomerPhone,
		&s.CustomerAddress,
		&s.CustomerPostalCode,
		&s.CustomerCity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, produkt_id, produkt_navn, produkt_pris, antal
		 FROM ordre_linjer
		 WHERE ordre_id = ?
		 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	var lines []*domain.OrderLine
	for rows.Next() {
		l := &domain.OrderLine{}
		if err := rows.Scan(&l.ID, &l.ProductID, &l.ProductName, &l.Price, &l.Quantity); err != nil {
			return nil, nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("row iteration error: %w", err)
	}

	return s, lines, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"barliman/internal/domain"
)

type MySQLProductRepository struct {
	db *sql.DB
}

func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

// FindAll loads every product row for catalog seeding at startup.
func (r *MySQLProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT code, name, price, stock
		FROM Product
		ORDER BY code`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var price string
		if err := rows.Scan(&p.Code, &p.Name, &price, &p.Stock); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}

		p.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parsing price for %s: %w", p.Code, err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

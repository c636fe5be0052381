package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agriscience/journal-api/internal/apperr"
	"github.com/agriscience/journal-api/internal/domain"
)

const productColumns = "id, title, description, category, price, image_url, features, display_order"

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var featuresJSON []byte
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.ImageURL,
		&featuresJSON,
		&p.DisplayOrder,
	)
	if err != nil {
		return nil, err
	}
	if len(featuresJSON) > 0 {
		if err := json.Unmarshal(featuresJSON, &p.Features); err != nil {
			return nil, fmt.Errorf("failed to unmarshal features: %w", err)
		}
	}
	return &p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM products
		ORDER BY display_order ASC
	`, productColumns)

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, apperr.NewBackend("list products", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewBackend("list products", err)
	}

	return products, nil
}

func (s *Store) SaveProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if product.Features == nil {
		product.Features = []string{}
	}
	featuresJSON, err := json.Marshal(product.Features)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal features: %w", err)
	}

	if product.ID == uuid.Nil {
		query := fmt.Sprintf(`
			INSERT INTO products (title, description, category, price, image_url, features, display_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING %s
		`, productColumns)
		saved, err := scanProduct(s.db.QueryRow(ctx, query,
			product.Title, product.Description, product.Category, product.Price,
			product.ImageURL, featuresJSON, product.DisplayOrder))
		if err != nil {
			return nil, apperr.NewBackend("insert product", err)
		}
		return saved, nil
	}

	query := fmt.Sprintf(`
		UPDATE products
		SET title = $2, description = $3, category = $4, price = $5, image_url = $6, features = $7, display_order = $8
		WHERE id = $1
		RETURNING %s
	`, productColumns)
	saved, err := scanProduct(s.db.QueryRow(ctx, query,
		product.ID, product.Title, product.Description, product.Category, product.Price,
		product.ImageURL, featuresJSON, product.DisplayOrder))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NewNotFound("product", product.ID.String())
		}
		return nil, apperr.NewBackend("update product", err)
	}
	return saved, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return apperr.NewBackend("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("product", id.String())
	}
	return nil
}

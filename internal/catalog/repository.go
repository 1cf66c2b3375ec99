package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyReviewed = errors.New("product already reviewed")
)

// likeEscaper neutralizes LIKE metacharacters so a keyword such as "%"
// matches literally instead of everything.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// DBPool matches the methods from *pgxpool.Pool that we use, so the database
// can be mocked in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository interface {
	List(ctx context.Context, keyword string, page, pageSize int) ([]Product, int, error)
	Top(ctx context.Context, limit int) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	AddReview(ctx context.Context, productID, userID, name string, rating int, comment string) error
	DecrementStock(ctx context.Context, productID string, qty int) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const productColumns = `id, name, image, brand, category, description, price, count_in_stock, rating, num_reviews, created_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Image, &p.Brand, &p.Category, &p.Description,
		&p.Price, &p.CountInStock, &p.Rating, &p.NumReviews, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns one page of products matching keyword (case-insensitive
// substring on the name; empty keyword matches everything) plus the total
// match count for pagination.
func (r *PostgresRepository) List(ctx context.Context, keyword string, page, pageSize int) ([]Product, int, error) {
	if page < 1 {
		page = 1
	}
	pattern := "%" + likeEscaper.Replace(keyword) + "%"

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE name ILIKE $1`, pattern,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE name ILIKE $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		pattern, pageSize, pageSize*(page-1),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *PostgresRepository) Top(ctx context.Context, limit int) ([]Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY rating DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("select top products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return products, nil
}

// Get loads a product with its reviews.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select product: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name, rating, comment, created_at
		 FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("select reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.Name, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		p.Reviews = append(p.Reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (id, name, image, brand, category, description, price, count_in_stock, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		 RETURNING created_at`,
		p.ID, p.Name, p.Image, p.Brand, p.Category, p.Description, p.Price, p.CountInStock,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *Product) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products
		 SET name=$2, image=$3, brand=$4, category=$5, description=$6, price=$7, count_in_stock=$8
		 WHERE id=$1`,
		p.ID, p.Name, p.Image, p.Brand, p.Category, p.Description, p.Price, p.CountInStock,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddReview inserts a review and recomputes the product's rating and review
// count in one transaction. A user can review a product at most once.
func (r *PostgresRepository) AddReview(ctx context.Context, productID, userID, name string, rating int, comment string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`, productID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	var reviewed bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE product_id=$1 AND user_id=$2)`,
		productID, userID,
	).Scan(&reviewed)
	if err != nil {
		return fmt.Errorf("check existing review: %w", err)
	}
	if reviewed {
		return ErrAlreadyReviewed
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO reviews (id, product_id, user_id, name, rating, comment, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())`,
		uuid.NewString(), productID, userID, name, rating, comment,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE products p
		 SET num_reviews = s.cnt, rating = s.avg
		 FROM (SELECT count(*) AS cnt, avg(rating) AS avg FROM reviews WHERE product_id=$1) s
		 WHERE p.id=$1`,
		productID,
	)
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// DecrementStock lowers count_in_stock after an order is placed. The floor at
// zero mirrors the original's trust in the caller-supplied quantity bound.
func (r *PostgresRepository) DecrementStock(ctx context.Context, productID string, qty int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET count_in_stock = GREATEST(count_in_stock - $2, 0) WHERE id=$1`,
		productID, qty,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

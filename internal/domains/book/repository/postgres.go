package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/shared/utils"
	"bookcatalog-backend/pkg/database"
)

// postgresRepository - Raw SQL with pgx
type postgresRepository struct {
	db database.Querier
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{db: pool}
}

func (r *postgresRepository) WithTx(tx pgx.Tx) Repository {
	return &postgresRepository{db: tx}
}

const selectBookColumns = `
	SELECT b.id, b.title, b.description, b.content, b.user_id, b.category_id,
	       b.cover_url, b.created_at, b.updated_at,
	       u.name AS user_name, c.name AS category_name
	FROM books b
	JOIN users u ON u.id = b.user_id
	JOIN categories c ON c.id = b.category_id`

// ========================= LIST / SEARCH =====================

func (r *postgresRepository) FindPage(ctx context.Context, offset, limit int) ([]model.Book, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}
	if total == 0 {
		return []model.Book{}, 0, nil
	}

	books, err := r.queryBooks(ctx,
		selectBookColumns+` ORDER BY b.id DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	return books, total, err
}

// SearchByTitle - substring, không phân biệt hoa thường
func (r *postgresRepository) SearchByTitle(ctx context.Context, title string, offset, limit int) ([]model.Book, int64, error) {
	pattern := utils.ContainsPattern(title)

	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM books WHERE title ILIKE $1`, pattern,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books by title: %w", err)
	}
	if total == 0 {
		return []model.Book{}, 0, nil
	}

	books, err := r.queryBooks(ctx,
		selectBookColumns+` WHERE b.title ILIKE $1 ORDER BY b.id DESC LIMIT $2 OFFSET $3`,
		pattern, limit, offset,
	)
	return books, total, err
}

func (r *postgresRepository) queryBooks(ctx context.Context, query string, args ...any) ([]model.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func scanBook(row pgx.Row, b *model.Book) error {
	return row.Scan(
		&b.ID, &b.Title, &b.Description, &b.Content, &b.UserID, &b.CategoryID,
		&b.CoverURL, &b.CreatedAt, &b.UpdatedAt,
		&b.UserName, &b.CategoryName,
	)
}

// ========================= DETAIL =====================

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	var b model.Book
	err := scanBook(r.db.QueryRow(ctx, selectBookColumns+` WHERE b.id = $1`, id), &b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find book %d: %w", id, err)
	}
	return &b, nil
}

// ========================= WRITE =====================

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (title, description, content, user_id, category_id, cover_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		book.Title, book.Description, book.Content, book.UserID, book.CategoryID, book.CoverURL,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *postgresRepository) AttachCover(ctx context.Context, id int64, coverURL string) error {
	tag, err := r.db.Exec(ctx, `UPDATE books SET cover_url = $2 WHERE id = $1`, id, coverURL)
	if err != nil {
		return fmt.Errorf("attach cover to book %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

// Update - user_id không nằm trong SET, owner không đổi sau khi tạo
func (r *postgresRepository) Update(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books
		SET title = $2, description = $3, content = $4, category_id = $5,
		    cover_url = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		book.ID, book.Title, book.Description, book.Content, book.CategoryID,
		book.CoverURL, book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update book %d: %w", book.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

// ========================= LOOKUPS =====================

func (r *postgresRepository) FindOwner(ctx context.Context, userID string) (*model.Owner, error) {
	var o model.Owner
	err := r.db.QueryRow(ctx, `SELECT id, name FROM users WHERE id = $1`, userID).Scan(&o.ID, &o.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}
	return &o, nil
}

func (r *postgresRepository) FindCategory(ctx context.Context, categoryID int64) (*model.Category, error) {
	var c model.Category
	err := r.db.QueryRow(ctx, `SELECT id, name FROM categories WHERE id = $1`, categoryID).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category %d: %w", categoryID, err)
	}
	return &c, nil
}

func (r *postgresRepository) CoveredIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	found := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id FROM books WHERE id = ANY($1) AND cover_url IS NOT NULL`, ids)
	if err != nil {
		return nil, fmt.Errorf("query covered ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = true
	}
	return found, rows.Err()
}

package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bkaraca/career-advisor/internal/types"
)

// PostgresSource reads the course catalog from the university's Postgres
// feed. It is a read-side alternative to a snapshot file; the advisor itself
// never writes to the database.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool to the catalog database.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping catalog database: %w", err)
	}

	return &PostgresSource{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresSource) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Courses loads all course records ordered by insertion id so that repeated
// loads produce the same positional ordering.
func (s *PostgresSource) Courses(ctx context.Context) ([]types.Course, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT code, name, COALESCE(department, ''), COALESCE(description, ''),
		        COALESCE(taught_in_english, FALSE), COALESCE(credits, 0), COALESCE(level, 0)
		 FROM courses
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []types.Course
	for rows.Next() {
		var c types.Course
		if err := rows.Scan(&c.Code, &c.Name, &c.Department, &c.Description,
			&c.TaughtInEnglish, &c.Credits, &c.Level); err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		c.ApplyDefaults()
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read course rows: %w", err)
	}

	return courses, nil
}

package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/metrics"
	"github.com/qlpapp/qlp-server/internal/store"
)

const targetsTable = "area_targets"

var targetColumns = []string{"area", "headcount", "protected_class", "young_apprentice", "updated_at"}

func scanTarget(scanner interface{ Scan(dest ...any) error }) (*domain.AreaTarget, error) {
	var (
		t               domain.AreaTarget
		headcount       sql.NullInt64
		protectedClass  sql.NullInt64
		youngApprentice sql.NullInt64
		updatedAt       string
	)

	if err := scanner.Scan(&t.Area, &headcount, &protectedClass, &youngApprentice, &updatedAt); err != nil {
		return nil, err
	}

	t.Headcount = intPtr(headcount)
	t.ProtectedClass = intPtr(protectedClass)
	t.YoungApprentice = intPtr(youngApprentice)

	var err error
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTargets returns every stored area target ordered by area.
func (s *Store) ListTargets(ctx context.Context) (_ []domain.AreaTarget, err error) {
	defer func(start time.Time) { metrics.ObserveStore("list_targets", start, err) }(time.Now())

	query, args, err := s.sb.Select(targetColumns...).
		From(targetsTable).
		OrderBy("area").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying targets: %w", err)
	}
	defer rows.Close()

	targets := []domain.AreaTarget{}
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning target: %w", err)
		}
		targets = append(targets, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating targets: %w", err)
	}
	return targets, nil
}

// UpsertTarget stores the target for its area, replacing every goal of an
// existing row. Goals left nil are stored as NULL.
func (s *Store) UpsertTarget(ctx context.Context, target domain.AreaTarget) (err error) {
	defer func(start time.Time) { metrics.ObserveStore("upsert_target", start, err) }(time.Now())

	if target.Area == "" {
		return store.ErrInvalidInput.WithMessage("target area is required")
	}

	query, args, err := s.sb.Insert(targetsTable).
		Columns(targetColumns...).
		Values(
			target.Area,
			nullInt(target.Headcount),
			nullInt(target.ProtectedClass),
			nullInt(target.YoungApprentice),
			formatTime(time.Now()),
		).
		Suffix(`ON CONFLICT (area) DO UPDATE SET
			headcount = excluded.headcount,
			protected_class = excluded.protected_class,
			young_apprentice = excluded.young_apprentice,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("building upsert query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting target %s: %w", target.Area, err)
	}
	return nil
}

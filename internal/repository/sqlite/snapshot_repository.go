package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/openingroi/internal/logger"
	"github.com/vytor/openingroi/internal/models"
	"github.com/vytor/openingroi/internal/repository"
)

type snapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository implementation
func NewSnapshotRepository(db *sql.DB) repository.SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Save(ctx context.Context, label string, gameCount int, rows []models.OpeningMetrics) (*models.MetricSnapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")
	log.Debug("saving snapshot label=%q rows=%d games=%d", label, len(rows), gameCount)

	var snapshot models.MetricSnapshot
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO metric_snapshots (label, game_count) VALUES (?, ?)`, label, gameCount)
		if err != nil {
			log.Error("failed to insert snapshot: %v", err)
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO metric_snapshot_rows (
	snapshot_id, position, opening_code, opening_name, rating_bucket,
	total_games, wins, draws, losses, win_rate, draw_rate, loss_rate,
	expected_return, volatility, sharpe_ratio, roi, information_ratio
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			log.Error("failed to prepare snapshot row insert: %v", err)
			return err
		}
		defer stmt.Close()

		for i, m := range rows {
			if _, err := stmt.ExecContext(ctx, id, i, m.OpeningCode, m.OpeningName, string(m.RatingBucket),
				m.TotalGames, m.Wins, m.Draws, m.Losses, m.WinRate, m.DrawRate, m.LossRate,
				m.ExpectedReturn, m.Volatility, m.SharpeRatio, m.ROI, m.InformationRatio); err != nil {
				log.Error("failed to insert snapshot row %d: %v", i, err)
				return err
			}
		}

		return tx.QueryRowContext(ctx, `SELECT id, label, game_count, created_at FROM metric_snapshots WHERE id = ?`, id).
			Scan(&snapshot.ID, &snapshot.Label, &snapshot.GameCount, &snapshot.CreatedAt)
	})
	if err != nil {
		return nil, err
	}

	snapshot.Rows = rows
	log.Info("snapshot saved: id=%d, rows=%d", snapshot.ID, len(rows))
	return &snapshot, nil
}

// Latest returns the most recent snapshot with its rows, or nil when none exist.
func (r *snapshotRepository) Latest(ctx context.Context) (*models.MetricSnapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")

	var snapshot models.MetricSnapshot
	err := r.db.QueryRowContext(ctx, `
SELECT id, label, game_count, created_at
FROM metric_snapshots
ORDER BY id DESC
LIMIT 1
`).Scan(&snapshot.ID, &snapshot.Label, &snapshot.GameCount, &snapshot.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no snapshots stored")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to fetch latest snapshot: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT opening_code, opening_name, rating_bucket, total_games, wins, draws, losses,
	win_rate, draw_rate, loss_rate, expected_return, volatility, sharpe_ratio, roi, information_ratio
FROM metric_snapshot_rows
WHERE snapshot_id = ?
ORDER BY position ASC
`, snapshot.ID)
	if err != nil {
		log.Error("failed to query snapshot rows: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m      models.OpeningMetrics
			bucket string
		)
		if err := rows.Scan(&m.OpeningCode, &m.OpeningName, &bucket, &m.TotalGames, &m.Wins, &m.Draws, &m.Losses,
			&m.WinRate, &m.DrawRate, &m.LossRate, &m.ExpectedReturn, &m.Volatility, &m.SharpeRatio, &m.ROI, &m.InformationRatio); err != nil {
			log.Error("failed to scan snapshot row: %v", err)
			return nil, err
		}
		m.RatingBucket = models.RatingBucket(bucket)
		snapshot.Rows = append(snapshot.Rows, m)
	}
	return &snapshot, rows.Err()
}

// List returns snapshot headers, newest first, without their rows.
func (r *snapshotRepository) List(ctx context.Context, limit int) ([]models.MetricSnapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")
	if limit <= 0 {
		limit = 20
	}

	query, args, err := sqlBuilder.
		Select("id", "label", "game_count", "created_at").
		From("metric_snapshots").
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list snapshots: %v", err)
		return nil, err
	}
	defer rows.Close()

	var snapshots []models.MetricSnapshot
	for rows.Next() {
		var s models.MetricSnapshot
		if err := rows.Scan(&s.ID, &s.Label, &s.GameCount, &s.CreatedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	log.Debug("found %d snapshots", len(snapshots))
	return snapshots, rows.Err()
}

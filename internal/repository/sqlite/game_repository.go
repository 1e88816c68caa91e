package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/openingroi/internal/logger"
	"github.com/vytor/openingroi/internal/models"
	"github.com/vytor/openingroi/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var gameColumns = []string{
	"id", "source", "external_id", "opening_eco", "opening_name",
	"white_rating", "black_rating", "result", "played_at", "created_at",
}

type gameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new GameRepository implementation
func NewGameRepository(db *sql.DB) repository.GameRepository {
	return &gameRepository{db: db}
}

func applyGameFilter(query squirrel.SelectBuilder, filter models.GameFilter) squirrel.SelectBuilder {
	if filter.OpeningCode != "" {
		query = query.Where(squirrel.Eq{"opening_eco": filter.OpeningCode})
	}
	if filter.Result != "" {
		query = query.Where(squirrel.Eq{"result": string(filter.Result)})
	}
	if filter.Source != "" {
		query = query.Where(squirrel.Eq{"source": filter.Source})
	}
	if filter.MinRating > 0 {
		query = query.Where(squirrel.Expr("(white_rating + black_rating) / 2.0 >= ?", filter.MinRating))
	}
	if filter.MaxRating > 0 {
		query = query.Where(squirrel.Expr("(white_rating + black_rating) / 2.0 < ?", filter.MaxRating))
	}
	return query
}

func scanGame(rows *sql.Rows) (models.GameRecord, error) {
	var (
		g          models.GameRecord
		externalID sql.NullString
		result     string
	)
	err := rows.Scan(&g.ID, &g.Source, &externalID, &g.OpeningCode, &g.OpeningName,
		&g.WhiteRating, &g.BlackRating, &result, &g.PlayedAt, &g.CreatedAt)
	g.ExternalID = externalID.String
	g.Result = models.Result(result)
	return g, err
}

func (r *gameRepository) queryGames(ctx context.Context, query squirrel.SelectBuilder) ([]models.GameRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, err
	}
	defer rows.Close()

	var games []models.GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			log.Error("failed to scan game row: %v", err)
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (r *gameRepository) List(ctx context.Context, filter models.GameFilter) ([]models.GameRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("listing games with filter: opening=%s, result=%s, source=%s, min_rating=%d, max_rating=%d",
		filter.OpeningCode, filter.Result, filter.Source, filter.MinRating, filter.MaxRating)

	query := applyGameFilter(sqlBuilder.Select(gameColumns...).From("games"), filter)

	orderDir := "ASC"
	if filter.OrderDir == "DESC" {
		orderDir = "DESC"
	}
	query = query.OrderBy("id " + orderDir)

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	games, err := r.queryGames(ctx, query)
	if err != nil {
		return nil, err
	}
	log.Debug("found %d games", len(games))
	return games, nil
}

func (r *gameRepository) Count(ctx context.Context, filter models.GameFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	query := applyGameFilter(sqlBuilder.Select("COUNT(*)").From("games"), filter)
	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sql, args...).Scan(&count); err != nil {
		log.Error("failed to count games: %v", err)
		return 0, err
	}
	return count, nil
}

// All returns the whole log in insertion order.
func (r *gameRepository) All(ctx context.Context) ([]models.GameRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	games, err := r.queryGames(ctx, sqlBuilder.Select(gameColumns...).From("games").OrderBy("id ASC"))
	if err != nil {
		return nil, err
	}
	log.Debug("loaded %d games", len(games))
	return games, nil
}

func (r *gameRepository) InsertBatch(ctx context.Context, games []models.GameRecord) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("batch inserting %d games", len(games))

	if len(games) == 0 {
		return nil, nil
	}

	var insertedIDs []int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO games (source, external_id, opening_eco, opening_name, white_rating, black_rating, result, played_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(source, external_id) DO NOTHING
`)
		if err != nil {
			log.Error("failed to prepare batch insert: %v", err)
			return err
		}
		defer stmt.Close()

		for _, g := range games {
			source := g.Source
			if source == "" {
				source = models.SourceCSV
			}
			var externalID any
			if g.ExternalID != "" {
				externalID = g.ExternalID
			}
			res, err := stmt.ExecContext(ctx, source, externalID, g.OpeningCode, g.OpeningName,
				g.WhiteRating, g.BlackRating, string(g.Result), g.PlayedAt)
			if err != nil {
				log.Error("failed to insert game external_id=%s: %v", g.ExternalID, err)
				return err
			}
			if n, err := res.RowsAffected(); err == nil && n == 0 {
				continue
			}
			if id, err := res.LastInsertId(); err == nil && id != 0 {
				insertedIDs = append(insertedIDs, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("batch insert completed, %d new games inserted", len(insertedIDs))
	return insertedIDs, nil
}

func (r *gameRepository) ExistingExternalIDs(ctx context.Context, source string) (map[string]bool, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT external_id FROM games WHERE source = ? AND external_id IS NOT NULL`, source)
	if err != nil {
		log.Error("failed to query external ids: %v", err)
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	log.Debug("found %d existing %s ids", len(ids), source)
	return ids, rows.Err()
}

func (r *gameRepository) DeleteAll(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	if _, err := r.db.ExecContext(ctx, `DELETE FROM games`); err != nil {
		log.Error("failed to delete games: %v", err)
		return err
	}
	log.Info("game log cleared")
	return nil
}

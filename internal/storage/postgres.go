package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Znerf/headacheFront/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- UserRepository ---

func (p *PostgresStorage) CreateUser(ctx context.Context, user *internal.StoredUser) error {
	location, err := json.Marshal(user.Location)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `INSERT INTO users (id, email, name, password_hash, location, refresh_token, created_at, updated_at) VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Email, user.Name, user.PasswordHash, location, user.RefreshToken, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		p.logger.Errorf("failed to insert user: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) scanUser(row pgx.Row) (*internal.StoredUser, error) {
	var u internal.StoredUser
	var location []byte
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &location, &u.RefreshToken, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to scan user: %v", err)
		return nil, err
	}
	if len(location) > 0 {
		if err := json.Unmarshal(location, &u.Location); err != nil {
			return nil, err
		}
	}
	return &u, nil
}

func (p *PostgresStorage) GetUserByID(ctx context.Context, id string) (*internal.StoredUser, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, email, name, password_hash, location, refresh_token, created_at, updated_at FROM users WHERE id = $1`, id)
	return p.scanUser(row)
}

func (p *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*internal.StoredUser, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, email, name, password_hash, location, refresh_token, created_at, updated_at FROM users WHERE email = lower($1)`, email)
	return p.scanUser(row)
}

func (p *PostgresStorage) UpdateUser(ctx context.Context, user *internal.StoredUser) error {
	location, err := json.Marshal(user.Location)
	if err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx, `UPDATE users SET email = lower($2), name = $3, password_hash = $4, location = $5, refresh_token = $6, updated_at = $7 WHERE id = $1`,
		user.ID, user.Email, user.Name, user.PasswordHash, location, user.RefreshToken, user.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to update user: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- RecordRepository ---

func (p *PostgresStorage) SaveRecord(ctx context.Context, rec *internal.OwnedRecord) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO headache_records (id, user_id, date, had_headache, headache_start_time, headache_end_time, went_outside_yesterday, drank_water_yesterday, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET had_headache = $4, headache_start_time = $5, headache_end_time = $6, went_outside_yesterday = $7, drank_water_yesterday = $8, notes = $9, updated_at = $11`,
		rec.ID, rec.UserID, rec.Date, rec.HadHeadache, rec.HeadacheStartTime, rec.HeadacheEndTime, rec.WentOutsideYesterday, rec.DrankWaterYesterday, rec.Notes, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to save headache record: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) scanRecord(row pgx.Row) (*internal.OwnedRecord, error) {
	var r internal.OwnedRecord
	err := row.Scan(&r.ID, &r.UserID, &r.Date, &r.HadHeadache, &r.HeadacheStartTime, &r.HeadacheEndTime, &r.WentOutsideYesterday, &r.DrankWaterYesterday, &r.Notes, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to scan headache record: %v", err)
		return nil, err
	}
	return &r, nil
}

func (p *PostgresStorage) GetRecord(ctx context.Context, id string) (*internal.OwnedRecord, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, user_id, date, had_headache, headache_start_time, headache_end_time, went_outside_yesterday, drank_water_yesterday, notes, created_at, updated_at FROM headache_records WHERE id = $1`, id)
	return p.scanRecord(row)
}

func (p *PostgresStorage) GetRecordByDate(ctx context.Context, userID, date string) (*internal.OwnedRecord, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, user_id, date, had_headache, headache_start_time, headache_end_time, went_outside_yesterday, drank_water_yesterday, notes, created_at, updated_at FROM headache_records WHERE user_id = $1 AND date = $2`, userID, date)
	return p.scanRecord(row)
}

func (p *PostgresStorage) ListRecords(ctx context.Context, userID string, limit, page int) ([]internal.HeadacheRecord, int, error) {
	var total int
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM headache_records WHERE user_id = $1`, userID).Scan(&total); err != nil {
		p.logger.Errorf("failed to count headache records: %v", err)
		return nil, 0, err
	}

	rows, err := p.pool.Query(ctx, `SELECT id, user_id, date, had_headache, headache_start_time, headache_end_time, went_outside_yesterday, drank_water_yesterday, notes, created_at, updated_at FROM headache_records WHERE user_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`,
		userID, limit, (page-1)*limit)
	if err != nil {
		p.logger.Errorf("failed to query headache records: %v", err)
		return nil, 0, err
	}
	defer rows.Close()

	records := []internal.HeadacheRecord{}
	for rows.Next() {
		var r internal.OwnedRecord
		err := rows.Scan(&r.ID, &r.UserID, &r.Date, &r.HadHeadache, &r.HeadacheStartTime, &r.HeadacheEndTime, &r.WentOutsideYesterday, &r.DrankWaterYesterday, &r.Notes, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			p.logger.Errorf("failed to scan headache record: %v", err)
			return nil, 0, err
		}
		records = append(records, r.HeadacheRecord)
	}
	return records, total, rows.Err()
}

func (p *PostgresStorage) DeleteRecord(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM headache_records WHERE id = $1`, id)
	if err != nil {
		p.logger.Errorf("failed to delete headache record: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- WeatherRepository ---

func (p *PostgresStorage) SaveSnapshot(ctx context.Context, userID string, snap *internal.WeatherSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `INSERT INTO weather_snapshots (user_id, snapshot, recorded_at) VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET snapshot = $2, recorded_at = now()`, userID, payload)
	if err != nil {
		p.logger.Errorf("failed to save weather snapshot: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetLatest(ctx context.Context, userID string) (*internal.WeatherSnapshot, error) {
	var payload []byte
	err := p.pool.QueryRow(ctx, `SELECT snapshot FROM weather_snapshots WHERE user_id = $1`, userID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		p.logger.Errorf("failed to query weather snapshot: %v", err)
		return nil, err
	}
	var snap internal.WeatherSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- Compile-time assertions ---
var _ UserRepository = (*PostgresStorage)(nil)
var _ RecordRepository = (*PostgresStorage)(nil)
var _ WeatherRepository = (*PostgresStorage)(nil)

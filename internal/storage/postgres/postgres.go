package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmkabwe/zubasolar/internal/types/job"
	"github.com/dmkabwe/zubasolar/internal/types/order"
	"github.com/dmkabwe/zubasolar/internal/types/profile"
	"github.com/dmkabwe/zubasolar/internal/types/rating"
	"github.com/dmkabwe/zubasolar/internal/types/user"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &PostgresStorage{db: db}

	if err := s.db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStorage) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS profiles (
            id UUID PRIMARY KEY,
            user_id UUID UNIQUE NOT NULL REFERENCES users(id),
            full_name TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL DEFAULT 'installer',
            certification_level TEXT NOT NULL DEFAULT '',
            skills JSONB NOT NULL DEFAULT '[]',
            location TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            customer_name TEXT NOT NULL,
            customer_email TEXT NOT NULL,
            customer_phone TEXT NOT NULL DEFAULT '',
            customer_address TEXT NOT NULL,
            product_name TEXT NOT NULL,
            product_price BIGINT NOT NULL,
            order_status TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            estimated_delivery DATE NOT NULL,
            estimated_install_date DATE NOT NULL,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS jobs (
            id UUID PRIMARY KEY,
            installer_id UUID NOT NULL REFERENCES users(id),
            customer_name TEXT NOT NULL,
            customer_email TEXT NOT NULL,
            customer_phone TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL,
            system_type TEXT NOT NULL,
            system_size TEXT NOT NULL,
            scheduled_date DATE NOT NULL,
            scheduled_time TEXT NOT NULL,
            status TEXT NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            estimated_duration_hours INT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS ratings (
            id UUID PRIMARY KEY,
            job_id UUID UNIQUE NOT NULL REFERENCES jobs(id),
            installer_id UUID NOT NULL REFERENCES users(id),
            customer_email TEXT NOT NULL,
            rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
            review_text TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL
        )`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *PostgresStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

// CreateUserWithProfile inserts the account and its profile in one
// transaction: a failed profile insert rolls the account back too.
func (s *PostgresStorage) CreateUserWithProfile(ctx context.Context, u *user.User, p *profile.Profile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	uq := `INSERT INTO users (id,email,password_hash,created_at) VALUES($1,$2,$3,$4)`
	if _, err := tx.ExecContext(ctx, uq, u.ID, u.Email, u.PasswordHash, u.CreatedAt); err != nil {
		return err
	}

	skills, err := encodeSkills(p.Skills)
	if err != nil {
		return err
	}
	pq := `
        INSERT INTO profiles (id,user_id,full_name,phone,role,certification_level,skills,location,created_at,updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	if _, err := tx.ExecContext(ctx, pq,
		p.ID, p.UserID, p.FullName, p.Phone, p.Role, p.CertificationLevel,
		skills, p.Location, p.CreatedAt, p.UpdatedAt,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *PostgresStorage) FindUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u := &user.User{}
	q := `SELECT id,email,password_hash,created_at FROM users WHERE email=$1`
	if err := s.db.QueryRowContext(ctx, q, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *PostgresStorage) FindProfileByUser(ctx context.Context, userID string) (*profile.Profile, error) {
	p := &profile.Profile{}
	var skills []byte
	q := `
        SELECT id,user_id,full_name,phone,role,certification_level,skills,location,created_at,updated_at
        FROM profiles WHERE user_id=$1`
	if err := s.db.QueryRowContext(ctx, q, userID).
		Scan(&p.ID, &p.UserID, &p.FullName, &p.Phone, &p.Role, &p.CertificationLevel,
			&skills, &p.Location, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	decoded, err := decodeSkills(skills)
	if err != nil {
		return nil, err
	}
	p.Skills = decoded
	return p, nil
}

func (s *PostgresStorage) UpdateProfile(ctx context.Context, p *profile.Profile) error {
	skills, err := encodeSkills(p.Skills)
	if err != nil {
		return err
	}
	q := `
        UPDATE profiles
        SET full_name=$1, phone=$2, certification_level=$3, skills=$4, location=$5, updated_at=$6
        WHERE user_id=$7`
	res, err := s.db.ExecContext(ctx, q,
		p.FullName, p.Phone, p.CertificationLevel, skills,
		p.Location, p.UpdatedAt, p.UserID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// skills are stored as a JSONB array so individual skills may contain any
// characters.
func encodeSkills(skills []string) ([]byte, error) {
	if len(skills) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(skills)
}

func decodeSkills(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func (s *PostgresStorage) CreateOrder(ctx context.Context, o *order.Order) error {
	q := `
        INSERT INTO orders (id,customer_name,customer_email,customer_phone,customer_address,
            product_name,product_price,order_status,payment_status,
            estimated_delivery,estimated_install_date,created_at,updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`
	_, err := s.db.ExecContext(ctx, q,
		o.ID, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.CustomerAddress,
		o.ProductName, o.ProductPrice, o.OrderStatus, o.PaymentStatus,
		o.EstimatedDelivery, o.EstimatedInstallDate, o.CreatedAt, o.UpdatedAt,
	)
	return err
}

const orderColumns = `id,customer_name,customer_email,customer_phone,customer_address,
    product_name,product_price,order_status,payment_status,
    estimated_delivery,estimated_install_date,created_at,updated_at`

func scanOrder(row *sql.Row) (*order.Order, error) {
	var o order.Order
	err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.CustomerAddress,
		&o.ProductName, &o.ProductPrice, &o.OrderStatus, &o.PaymentStatus,
		&o.EstimatedDelivery, &o.EstimatedInstallDate, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *PostgresStorage) FindOrderByID(ctx context.Context, id string) (*order.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(s.db.QueryRowContext(ctx, q, id))
}

func (s *PostgresStorage) FindLatestOrderByEmail(ctx context.Context, email string) (*order.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE customer_email=$1 ORDER BY created_at DESC LIMIT 1`
	return scanOrder(s.db.QueryRowContext(ctx, q, email))
}

// MarkOrderPaid flips payment_status and order_status in one statement so a
// fault can never leave the pair half-applied. The pending guard keeps a
// replayed payment from rewinding a shipped order to confirmed.
func (s *PostgresStorage) MarkOrderPaid(ctx context.Context, id string) error {
	q := `
        UPDATE orders
        SET payment_status=$1, order_status=$2, updated_at=$3
        WHERE id=$4 AND payment_status=$5`
	res, err := s.db.ExecContext(ctx, q,
		order.PaymentPaid, order.StatusConfirmed, time.Now().UTC(), id, order.PaymentPending,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *PostgresStorage) ListOrdersForFulfillment(ctx context.Context) ([]order.Order, error) {
	q := `SELECT ` + orderColumns + `
        FROM orders
        WHERE payment_status = 'paid' AND order_status IN ('confirmed','shipped','delivered')
        ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.CustomerAddress,
			&o.ProductName, &o.ProductPrice, &o.OrderStatus, &o.PaymentStatus,
			&o.EstimatedDelivery, &o.EstimatedInstallDate, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) UpdateOrderStatus(ctx context.Context, id string, status order.OrderStatus) error {
	q := `UPDATE orders SET order_status=$1, updated_at=$2 WHERE id=$3`
	_, err := s.db.ExecContext(ctx, q, status, time.Now().UTC(), id)
	return err
}

func (s *PostgresStorage) CreateJob(ctx context.Context, j *job.Job) error {
	q := `
        INSERT INTO jobs (id,installer_id,customer_name,customer_email,customer_phone,address,
            system_type,system_size,scheduled_date,scheduled_time,status,notes,
            estimated_duration_hours,created_at,updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`
	_, err := s.db.ExecContext(ctx, q,
		j.ID, j.InstallerID, j.CustomerName, j.CustomerEmail, j.CustomerPhone, j.Address,
		j.SystemType, j.SystemSize, j.ScheduledDate, j.ScheduledTime, j.Status, j.Notes,
		j.EstimatedDurationHours, j.CreatedAt, j.UpdatedAt,
	)
	return err
}

const jobColumns = `id,installer_id,customer_name,customer_email,customer_phone,address,
    system_type,system_size,scheduled_date,scheduled_time,status,notes,
    estimated_duration_hours,created_at,updated_at`

func (s *PostgresStorage) FindJobByID(ctx context.Context, id string) (*job.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE id=$1`
	var j job.Job
	err := s.db.QueryRowContext(ctx, q, id).
		Scan(&j.ID, &j.InstallerID, &j.CustomerName, &j.CustomerEmail, &j.CustomerPhone, &j.Address,
			&j.SystemType, &j.SystemSize, &j.ScheduledDate, &j.ScheduledTime, &j.Status, &j.Notes,
			&j.EstimatedDurationHours, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (s *PostgresStorage) ListJobsByInstaller(ctx context.Context, installerID string) ([]job.Job, error) {
	q := `SELECT ` + jobColumns + `
        FROM jobs
        WHERE installer_id = $1
        ORDER BY scheduled_date, scheduled_time`
	rows, err := s.db.QueryContext(ctx, q, installerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []job.Job
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(&j.ID, &j.InstallerID, &j.CustomerName, &j.CustomerEmail, &j.CustomerPhone, &j.Address,
			&j.SystemType, &j.SystemSize, &j.ScheduledDate, &j.ScheduledTime, &j.Status, &j.Notes,
			&j.EstimatedDurationHours, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// UpdateJobStatus refreshes status and updated_at together.
func (s *PostgresStorage) UpdateJobStatus(ctx context.Context, id string, status job.JobStatus) error {
	q := `UPDATE jobs SET status=$1, updated_at=$2 WHERE id=$3`
	res, err := s.db.ExecContext(ctx, q, status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *PostgresStorage) CreateRating(ctx context.Context, r *rating.Rating) error {
	q := `
        INSERT INTO ratings (id,job_id,installer_id,customer_email,rating,review_text,created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := s.db.ExecContext(ctx, q,
		r.ID, r.JobID, r.InstallerID, r.CustomerEmail, r.Rating, r.ReviewText, r.CreatedAt,
	)
	return err
}

func (s *PostgresStorage) FindRatingByJob(ctx context.Context, jobID string) (*rating.Rating, error) {
	q := `
        SELECT id,job_id,installer_id,customer_email,rating,review_text,created_at
        FROM ratings WHERE job_id=$1`
	var r rating.Rating
	err := s.db.QueryRowContext(ctx, q, jobID).
		Scan(&r.ID, &r.JobID, &r.InstallerID, &r.CustomerEmail, &r.Rating, &r.ReviewText, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PostgresStorage) ListRatingsByInstaller(ctx context.Context, installerID string) ([]rating.Rating, error) {
	q := `
        SELECT r.id, r.job_id, r.installer_id, r.customer_email, r.rating, r.review_text, r.created_at,
               j.customer_name, j.system_type
        FROM ratings r
        JOIN jobs j ON j.id = r.job_id
        WHERE r.installer_id = $1
        ORDER BY r.created_at DESC`
	rows, err := s.db.QueryContext(ctx, q, installerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rating.Rating
	for rows.Next() {
		var r rating.Rating
		if err := rows.Scan(&r.ID, &r.JobID, &r.InstallerID, &r.CustomerEmail, &r.Rating, &r.ReviewText,
			&r.CreatedAt, &r.CustomerName, &r.SystemType); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// InstallerAverageRating mirrors the get_installer_average_rating database
// function: half-up rounding to one decimal, 0 when the installer has no
// ratings.
func (s *PostgresStorage) InstallerAverageRating(ctx context.Context, installerID string) (float64, int, error) {
	const q = `
        SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0), COUNT(*)
        FROM ratings
        WHERE installer_id=$1`
	var avg float64
	var count int
	if err := s.db.QueryRowContext(ctx, q, installerID).Scan(&avg, &count); err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}

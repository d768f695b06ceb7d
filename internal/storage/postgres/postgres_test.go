package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmkabwe/zubasolar/internal/types/order"
	"github.com/dmkabwe/zubasolar/internal/types/profile"
	"github.com/dmkabwe/zubasolar/internal/types/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStorage(t *testing.T) (*PostgresStorage, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return &PostgresStorage{db: mockDB}, mock
}

func TestMarkOrderPaid(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec("^\\s*UPDATE orders").
		WithArgs(order.PaymentPaid, order.StatusConfirmed, sqlmock.AnyArg(), "order-1", order.PaymentPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.MarkOrderPaid(context.Background(), "order-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkOrderPaidUnknownOrder(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec("^\\s*UPDATE orders").
		WithArgs(order.PaymentPaid, order.StatusConfirmed, sqlmock.AnyArg(), "missing", order.PaymentPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.MarkOrderPaid(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkOrderPaidAlreadyPaid(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec("^\\s*UPDATE orders").
		WithArgs(order.PaymentPaid, order.StatusConfirmed, sqlmock.AnyArg(), "order-1", order.PaymentPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.MarkOrderPaid(context.Background(), "order-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder(t *testing.T) {
	s, mock := newMockStorage(t)

	now := time.Now().UTC()
	o := &order.Order{
		ID:                   "order-1",
		CustomerName:         "Chifundo Banda",
		CustomerEmail:        "chifundo@example.com",
		CustomerAddress:      "Area 47, Lilongwe",
		ProductName:          "Family Home System",
		ProductPrice:         2950000,
		OrderStatus:          order.StatusPending,
		PaymentStatus:        order.PaymentPending,
		EstimatedDelivery:    now.AddDate(0, 0, 14),
		EstimatedInstallDate: now.AddDate(0, 0, 21),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	mock.ExpectExec("^\\s*INSERT INTO orders").
		WithArgs(o.ID, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.CustomerAddress,
			o.ProductName, o.ProductPrice, o.OrderStatus, o.PaymentStatus,
			o.EstimatedDelivery, o.EstimatedInstallDate, o.CreatedAt, o.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.CreateOrder(context.Background(), o)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrderByID(t *testing.T) {
	s, mock := newMockStorage(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "customer_name", "customer_email", "customer_phone", "customer_address",
		"product_name", "product_price", "order_status", "payment_status",
		"estimated_delivery", "estimated_install_date", "created_at", "updated_at",
	}).AddRow("order-1", "Chifundo Banda", "chifundo@example.com", "", "Area 47, Lilongwe",
		"Family Home System", int64(2950000), "shipped", "paid",
		now.AddDate(0, 0, 14), now.AddDate(0, 0, 21), now, now)

	mock.ExpectQuery("^SELECT (.+) FROM orders WHERE id=").
		WithArgs("order-1").
		WillReturnRows(rows)

	o, err := s.FindOrderByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", o.ID)
	assert.Equal(t, order.StatusShipped, o.OrderStatus)
	assert.Equal(t, order.PaymentPaid, o.PaymentStatus)
	assert.Equal(t, int64(2950000), o.ProductPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrdersForFulfillment(t *testing.T) {
	s, mock := newMockStorage(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "customer_name", "customer_email", "customer_phone", "customer_address",
		"product_name", "product_price", "order_status", "payment_status",
		"estimated_delivery", "estimated_install_date", "created_at", "updated_at",
	}).
		AddRow("order-1", "A", "a@example.com", "", "addr", "Basic", int64(1950000), "confirmed", "paid", now, now, now, now).
		AddRow("order-2", "B", "b@example.com", "", "addr", "Premium", int64(4250000), "delivered", "paid", now, now, now, now)

	mock.ExpectQuery("^SELECT (.+) FROM orders").
		WillReturnRows(rows)

	out, err := s.ListOrdersForFulfillment(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, order.StatusConfirmed, out[0].OrderStatus)
	assert.Equal(t, order.StatusDelivered, out[1].OrderStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstallerAverageRating(t *testing.T) {
	s, mock := newMockStorage(t)

	rows := sqlmock.NewRows([]string{"coalesce", "count"}).AddRow(4.3, 4)
	mock.ExpectQuery("^\\s*SELECT (.+) FROM ratings").
		WithArgs("installer-1").
		WillReturnRows(rows)

	avg, count, err := s.InstallerAverageRating(context.Background(), "installer-1")
	require.NoError(t, err)
	assert.Equal(t, 4.3, avg)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstallerAverageRatingNoRatings(t *testing.T) {
	s, mock := newMockStorage(t)

	rows := sqlmock.NewRows([]string{"coalesce", "count"}).AddRow(0.0, 0)
	mock.ExpectQuery("^\\s*SELECT (.+) FROM ratings").
		WithArgs("installer-1").
		WillReturnRows(rows)

	avg, count, err := s.InstallerAverageRating(context.Background(), "installer-1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
	assert.Equal(t, 0, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserWithProfile(t *testing.T) {
	s, mock := newMockStorage(t)

	now := time.Now().UTC()
	u := &user.User{ID: "user-1", Email: "james@example.com", PasswordHash: "hash", CreatedAt: now}
	p := &profile.Profile{
		ID:        "profile-1",
		UserID:    "user-1",
		FullName:  "James Mwale",
		Role:      "installer",
		Skills:    []string{"Solar PV", "Battery Storage"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectBegin()
	mock.ExpectExec("^\\s*INSERT INTO users").
		WithArgs(u.ID, u.Email, u.PasswordHash, u.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("^\\s*INSERT INTO profiles").
		WithArgs(p.ID, p.UserID, p.FullName, p.Phone, p.Role, p.CertificationLevel,
			[]byte(`["Solar PV","Battery Storage"]`), p.Location, p.CreatedAt, p.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.CreateUserWithProfile(context.Background(), u, p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserWithProfileRollsBackOnProfileError(t *testing.T) {
	s, mock := newMockStorage(t)

	now := time.Now().UTC()
	u := &user.User{ID: "user-1", Email: "jane@example.com", PasswordHash: "hash", CreatedAt: now}
	p := &profile.Profile{ID: "profile-1", UserID: "user-1", FullName: "Jane Phiri", Role: "installer", CreatedAt: now, UpdatedAt: now}

	mock.ExpectBegin()
	mock.ExpectExec("^\\s*INSERT INTO users").
		WithArgs(u.ID, u.Email, u.PasswordHash, u.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("^\\s*INSERT INTO profiles").
		WithArgs(p.ID, p.UserID, p.FullName, p.Phone, p.Role, p.CertificationLevel,
			[]byte(`[]`), p.Location, p.CreatedAt, p.UpdatedAt).
		WillReturnError(errors.New("profile insert failed"))
	mock.ExpectRollback()

	err := s.CreateUserWithProfile(context.Background(), u, p)
	assert.EqualError(t, err, "profile insert failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileSkillsRoundTrip(t *testing.T) {
	s, mock := newMockStorage(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "full_name", "phone", "role", "certification_level",
		"skills", "location", "created_at", "updated_at",
	}).AddRow("profile-1", "user-1", "James Mwale", "", "installer", "",
		[]byte(`["Solar PV","Wiring, earthing and bonding"]`), "", now, now)

	mock.ExpectQuery("^\\s*SELECT (.+) FROM profiles WHERE user_id=").
		WithArgs("user-1").
		WillReturnRows(rows)

	got, err := s.FindProfileByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Solar PV", "Wiring, earthing and bonding"}, got.Skills)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfileSkillsWithComma(t *testing.T) {
	s, mock := newMockStorage(t)

	p := &profile.Profile{
		UserID:    "user-1",
		FullName:  "James Mwale",
		Skills:    []string{"Wiring, earthing and bonding"},
		UpdatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("^\\s*UPDATE profiles").
		WithArgs(p.FullName, p.Phone, p.CertificationLevel,
			[]byte(`["Wiring, earthing and bonding"]`), p.Location, p.UpdatedAt, p.UserID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.UpdateProfile(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	s, mock := newMockStorage(t)

	p := &profile.Profile{UserID: "missing", FullName: "James Mwale", UpdatedAt: time.Now().UTC()}

	mock.ExpectExec("^\\s*UPDATE profiles").
		WithArgs(p.FullName, p.Phone, p.CertificationLevel, []byte(`[]`), p.Location, p.UpdatedAt, p.UserID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateProfile(context.Background(), p)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

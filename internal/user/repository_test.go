package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func userColumns() []string {
	return []string{"id", "name", "email", "password_hash", "role", "covid_passport", "created_at"}
}

func TestCreateAndFindUser(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (name, email, password_hash, role, covid_passport)")).
		WithArgs("Alex", "alex@example.com", "hashed", RoleClient, true).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "Alex", "alex@example.com", "hashed", RoleClient, true, now))

	created, err := repo.Create(context.Background(), "Alex", "alex@example.com", "hashed", RoleClient, true)
	require.NoError(t, err)
	require.Equal(t, 1, created.ID)
	require.True(t, created.CovidPassport)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs("alex@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "Alex", "alex@example.com", "hashed", RoleClient, true, now))

	byEmail, err := repo.FindByEmail(context.Background(), "alex@example.com")
	require.NoError(t, err)
	require.Equal(t, 1, byEmail.ID)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "Alex", "alex@example.com", "hashed", RoleClient, true, now))

	byID, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "alex@example.com", byID.Email)
}

func TestEmailExists(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("taken@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "taken@example.com")
	require.NoError(t, err)
	require.True(t, exists)
}

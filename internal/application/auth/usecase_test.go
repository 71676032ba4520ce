package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/domain"
	"github.com/jhoicas/venue-api/internal/domain/entity"
	"github.com/jhoicas/venue-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

type memUsers struct {
	byEmail map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.byEmail[email], nil
}

func newTestUseCase() (*AuthUseCase, *memUsers) {
	repo := &memUsers{byEmail: map[string]*entity.User{}}
	uc := NewAuthUseCase(repo, JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "venue-test"})
	uc.cost = bcrypt.MinCost
	return uc, repo
}

var admin = dto.Actor{UserID: "admin-1", VenueID: "venue-1", Role: entity.RoleAdmin}

func TestCreateUser_AndLogin(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.CreateUser(ctx, admin, dto.CreateUserRequest{
		Email: "Maria@Venue.com", Password: "s3cret-pass", Role: entity.RoleSupervisor,
	})
	require.NoError(t, err)
	assert.Equal(t, "venue-1", created.VenueID)
	assert.Equal(t, "maria@venue.com", created.Email)
	assert.Equal(t, "maria@venue.com", created.Name)
	assert.Equal(t, "active", created.Status)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "maria@venue.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, res.User.ID)

	id, err := jwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, id.UserID)
	assert.Equal(t, "venue-1", id.VenueID)
	assert.Equal(t, entity.RoleSupervisor, id.Role)
}

func TestCreateUser_DefaultRoleAndDuplicate(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()
	in := dto.CreateUserRequest{Email: "staff@venue.com", Password: "password1"}

	created, err := uc.CreateUser(ctx, admin, in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, created.Role)

	_, err = uc.CreateUser(ctx, admin, in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestCreateUser_Invalid(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.CreateUser(context.Background(), admin, dto.CreateUserRequest{Email: "x", Password: "short", Role: "owner"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin_Rejections(t *testing.T) {
	uc, repo := newTestUseCase()
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, admin, dto.CreateUserRequest{Email: "ana@venue.com", Password: "password1"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@venue.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@venue.com", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	repo.byEmail["ana@venue.com"].Status = "suspended"
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@venue.com", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BUTnghiemtuc/MobiTechPro/internal/auth"
	"github.com/BUTnghiemtuc/MobiTechPro/internal/domain"
	apperrors "github.com/BUTnghiemtuc/MobiTechPro/pkg/errors"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/pagination"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *mockUserRepository) List(ctx context.Context, params pagination.Params) ([]domain.User, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestUserService(repo *mockUserRepository) *UserService {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewUserService(repo, jwtManager, newTestLogger())
}

func TestRegister_Success(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	user, token, err := svc.Register(ctx, RegisterInput{
		Username:  "linh.nguyen",
		Email:     "linh@example.com",
		Password:  "Sup3rSecret",
		FirstName: "Linh",
		LastName:  "Nguyen",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.NotEqual(t, "Sup3rSecret", user.PasswordHash, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Sup3rSecret")))

	repo.AssertExpectations(t)
}

func TestRegister_WeakPassword(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "linh.nguyen",
		Email:    "linh@example.com",
		Password: "alllowercase1",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Return(apperrors.AlreadyExists("user", "username or email", "linh.nguyen"))

	_, _, err := svc.Register(ctx, RegisterInput{
		Username: "linh.nguyen",
		Email:    "linh@example.com",
		Password: "Sup3rSecret",
	})

	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	repo.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3rSecret"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &domain.User{
		ID:           "user-001",
		Username:     "linh.nguyen",
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	}
	repo.On("GetByUsername", ctx, "linh.nguyen").Return(stored, nil)

	user, token, err := svc.Login(ctx, LoginInput{Username: "linh.nguyen", Password: "Sup3rSecret"})

	require.NoError(t, err)
	assert.Equal(t, "user-001", user.ID)
	assert.NotEmpty(t, token)

	repo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3rSecret"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &domain.User{
		ID:           "user-001",
		Username:     "linh.nguyen",
		PasswordHash: string(hash),
	}
	repo.On("GetByUsername", ctx, "linh.nguyen").Return(stored, nil)

	user, token, err := svc.Login(ctx, LoginInput{Username: "linh.nguyen", Password: "wrong"})

	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	repo.AssertExpectations(t)
}

func TestLogin_UnknownUser(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	repo.On("GetByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound)

	user, token, err := svc.Login(ctx, LoginInput{Username: "ghost", Password: "whatever"})

	assert.Nil(t, user)
	assert.Empty(t, token)
	// Unknown user reads the same as a bad password.
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	repo.AssertExpectations(t)
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	stored := &domain.User{
		ID:        "user-001",
		Username:  "linh.nguyen",
		FirstName: "Linh",
		LastName:  "Nguyen",
		Phone:     "0901000000",
	}
	repo.On("GetByID", ctx, "user-001").Return(stored, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	newPhone := "0987654321"
	user, err := svc.UpdateProfile(ctx, "user-001", UpdateProfileInput{Phone: &newPhone})

	require.NoError(t, err)
	assert.Equal(t, "0987654321", user.Phone)
	// Omitted fields keep their stored values.
	assert.Equal(t, "Linh", user.FirstName)
	assert.Equal(t, "Nguyen", user.LastName)

	repo.AssertExpectations(t)
}

func TestChangePassword_Success(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("Old3rSecret"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &domain.User{ID: "user-001", PasswordHash: string(hash)}
	repo.On("GetByID", ctx, "user-001").Return(stored, nil)
	repo.On("UpdatePassword", ctx, "user-001", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			newHash := args.String(2)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("N3werSecret")))
		}).
		Return(nil)

	err = svc.ChangePassword(ctx, "user-001", "Old3rSecret", "N3werSecret")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("Old3rSecret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("GetByID", ctx, "user-001").
		Return(&domain.User{ID: "user-001", PasswordHash: string(hash)}, nil)

	err = svc.ChangePassword(ctx, "user-001", "NotTheOldOne1", "N3werSecret")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePassword_WeakNewPassword(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("Old3rSecret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("GetByID", ctx, "user-001").
		Return(&domain.User{ID: "user-001", PasswordHash: string(hash)}, nil)

	err = svc.ChangePassword(ctx, "user-001", "Old3rSecret", "allweak")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Sup3rSecret", false},
		{"too short", "Ab1", true},
		{"no uppercase", "alllower123", true},
		{"no digit", "NoDigitsHere", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePassword(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

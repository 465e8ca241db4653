package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/datasec-api/internal/domain/entity"
	"github.com/yourusername/datasec-api/internal/domain/repository"
	apperrors "github.com/yourusername/datasec-api/internal/pkg/errors"
	"github.com/yourusername/datasec-api/internal/service/email"
	"github.com/yourusername/datasec-api/pkg/auth"
)

// ============================================================================
// Mocks for AuthService tests
// ============================================================================

// MockUserRepository implements repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) List() ([]entity.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountStaff() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountSuperusers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) GetLatest() (*entity.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockPendingRepository implements repository.PendingVerificationRepository
type MockPendingRepository struct {
	mock.Mock
}

func (m *MockPendingRepository) Save(token string, pending *entity.PendingVerification, ttl time.Duration) error {
	args := m.Called(token, pending, ttl)
	return args.Error(0)
}

func (m *MockPendingRepository) Get(token string) (*entity.PendingVerification, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PendingVerification), args.Error(1)
}

func (m *MockPendingRepository) Delete(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockPendingRepository) DeleteByUserID(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// memoryPendingRepo is a stateful in-memory store for flow tests that need
// real record lifecycle across multiple calls, mirroring the Redis layout
// (record per token plus a per-user pointer at the current token).
type memoryPendingRepo struct {
	records map[string]*entity.PendingVerification
	byUser  map[uint]string
}

func newMemoryPendingRepo() *memoryPendingRepo {
	return &memoryPendingRepo{
		records: make(map[string]*entity.PendingVerification),
		byUser:  make(map[uint]string),
	}
}

func (m *memoryPendingRepo) Save(token string, pending *entity.PendingVerification, ttl time.Duration) error {
	if prev, ok := m.byUser[pending.UserID]; ok && prev != token {
		delete(m.records, prev)
	}
	m.records[token] = pending
	m.byUser[pending.UserID] = token
	return nil
}

func (m *memoryPendingRepo) Get(token string) (*entity.PendingVerification, error) {
	pending, ok := m.records[token]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return pending, nil
}

func (m *memoryPendingRepo) Delete(token string) error {
	delete(m.records, token)
	return nil
}

func (m *memoryPendingRepo) DeleteByUserID(userID uint) error {
	if token, ok := m.byUser[userID]; ok {
		delete(m.records, token)
		delete(m.byUser, userID)
	}
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

func createTestAuthService(
	userRepo *MockUserRepository,
	pendingRepo repository.PendingVerificationRepository,
	otp *OTPService,
) *AuthService {
	jwtService, _ := auth.NewJWTService("test-secret-for-unit-tests", 24)
	return &AuthService{
		userRepo:    userRepo,
		pendingRepo: pendingRepo,
		otp:         otp,
		pipeline:    email.NewPipeline(email.NewConsoleChannel()),
		jwtService:  jwtService,
	}
}

func hashTestPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

// ============================================================================
// Registration
// ============================================================================

func TestAuthService_Register_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "new@example.com").Return(nil, apperrors.ErrNotFound)
	mockUserRepo.On("GetByUsername", "newuser").Return(nil, apperrors.ErrNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	authService := createTestAuthService(mockUserRepo, new(MockPendingRepository), NewOTPService(0))

	// Act
	user, token, err := authService.Register("newuser", "new@example.com", "password123")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "newuser", user.Username)
	assert.Equal(t, "new@example.com", user.Email)
	assert.NotEmpty(t, token, "registration should come back with a usable access token")
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "taken@example.com").Return(&entity.User{ID: 1, Email: "taken@example.com"}, nil)

	authService := createTestAuthService(mockUserRepo, new(MockPendingRepository), NewOTPService(0))

	// Act
	user, _, err := authService.Register("newuser", "taken@example.com", "password123")

	// Assert
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Nil(t, user)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "new@example.com").Return(nil, apperrors.ErrNotFound)
	mockUserRepo.On("GetByUsername", "taken").Return(&entity.User{ID: 2, Username: "taken"}, nil)

	authService := createTestAuthService(mockUserRepo, new(MockPendingRepository), NewOTPService(0))

	// Act
	user, _, err := authService.Register("taken", "new@example.com", "password123")

	// Assert
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Nil(t, user)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockUserRepo.AssertExpectations(t)
}

// ============================================================================
// Login: credential check + code issuance
// ============================================================================

func TestAuthService_Login_IssuesCodeAndStoresPending(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockPendingRepo := new(MockPendingRepository)
	user := &entity.User{
		ID:       7,
		Username: "dave",
		Email:    "dave@example.com",
		Password: hashTestPassword(t, "password123"),
	}
	mockUserRepo.On("GetByEmail", "dave@example.com").Return(user, nil)
	mockPendingRepo.On("DeleteByUserID", uint(7)).Return(nil)

	var stored *entity.PendingVerification
	mockPendingRepo.On("Save", mock.AnythingOfType("string"), mock.AnythingOfType("*entity.PendingVerification"), 10*time.Minute+pendingGrace).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*entity.PendingVerification)
		}).
		Return(nil)

	authService := createTestAuthService(mockUserRepo, mockPendingRepo, NewOTPService(10*time.Minute))

	// Act
	loginToken, err := authService.Login(context.Background(), "dave@example.com", "password123")

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
	require.NotNil(t, stored)
	assert.Equal(t, uint(7), stored.UserID)
	assert.Equal(t, "dave", stored.Username)
	assert.Len(t, stored.Code, 6)
	mockPendingRepo.AssertCalled(t, "DeleteByUserID", uint(7))
	mockUserRepo.AssertExpectations(t)
	mockPendingRepo.AssertExpectations(t)
}

func TestAuthService_Login_SecondLoginInvalidatesFirstCode(t *testing.T) {
	// Arrange: a stateful store so both issuances live through the flow
	mockUserRepo := new(MockUserRepository)
	pendingRepo := newMemoryPendingRepo()
	user := &entity.User{
		ID:       7,
		Username: "dave",
		Email:    "dave@example.com",
		Password: hashTestPassword(t, "password123"),
	}
	mockUserRepo.On("GetByEmail", "dave@example.com").Return(user, nil)
	mockUserRepo.On("GetByID", uint(7)).Return(user, nil)

	authService := createTestAuthService(mockUserRepo, pendingRepo, NewOTPService(10*time.Minute))

	// Act: log in twice, keeping the first issuance's token and code
	firstToken, err := authService.Login(context.Background(), "dave@example.com", "password123")
	require.NoError(t, err)
	firstCode := pendingRepo.records[firstToken].Code

	secondToken, err := authService.Login(context.Background(), "dave@example.com", "password123")
	require.NoError(t, err)
	require.NotEqual(t, firstToken, secondToken)
	secondCode := pendingRepo.records[secondToken].Code

	// Assert: the first code is dead, only the latest one validates
	_, _, err = authService.VerifyCode(context.Background(), firstToken, firstCode)
	assert.ErrorIs(t, err, ErrNoActiveVerification)

	got, jwt, err := authService.VerifyCode(context.Background(), secondToken, secondCode)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.ID)
	assert.NotEmpty(t, jwt)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockPendingRepo := new(MockPendingRepository)
	user := &entity.User{
		ID:       7,
		Email:    "dave@example.com",
		Password: hashTestPassword(t, "password123"),
	}
	mockUserRepo.On("GetByEmail", "dave@example.com").Return(user, nil)

	authService := createTestAuthService(mockUserRepo, mockPendingRepo, NewOTPService(0))

	// Act
	loginToken, err := authService.Login(context.Background(), "dave@example.com", "wrong")

	// Assert
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, loginToken)
	mockPendingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	authService := createTestAuthService(mockUserRepo, new(MockPendingRepository), NewOTPService(0))

	// Act
	_, err := authService.Login(context.Background(), "ghost@example.com", "whatever")

	// Assert
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email and bad password must be indistinguishable")
}

func TestAuthService_TokenExpiresIn(t *testing.T) {
	authService := createTestAuthService(new(MockUserRepository), new(MockPendingRepository), NewOTPService(0))

	// createTestAuthService configures 24h tokens
	assert.Equal(t, 24*60*60, authService.TokenExpiresIn())
}

// ============================================================================
// Code verification
// ============================================================================

func livePending(now time.Time) *entity.PendingVerification {
	return &entity.PendingVerification{
		UserID:    7,
		Username:  "dave",
		Email:     "dave@example.com",
		Code:      "007123",
		IssuedAt:  float64(now.Unix()),
		ExpiresAt: float64(now.Add(10 * time.Minute).Unix()),
	}
}

func TestAuthService_VerifyCode_Success(t *testing.T) {
	// Arrange
	now := time.Now()
	mockUserRepo := new(MockUserRepository)
	mockPendingRepo := new(MockPendingRepository)
	user := &entity.User{ID: 7, Username: "dave", Email: "dave@example.com"}

	mockPendingRepo.On("Get", "login-token-1").Return(livePending(now), nil)
	mockPendingRepo.On("Delete", "login-token-1").Return(nil)
	mockUserRepo.On("GetByID", uint(7)).Return(user, nil)

	authService := createTestAuthService(mockUserRepo, mockPendingRepo, NewOTPService(10*time.Minute))

	// Act
	got, token, err := authService.VerifyCode(context.Background(), "login-token-1", "007123")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(7), got.ID)
	assert.NotEmpty(t, token)
	mockPendingRepo.AssertCalled(t, "Delete", "login-token-1")
	mockUserRepo.AssertExpectations(t)
	mockPendingRepo.AssertExpectations(t)
}

func TestAuthService_VerifyCode_WrongCodeKeepsPending(t *testing.T) {
	// Arrange
	now := time.Now()
	mockPendingRepo := new(MockPendingRepository)
	mockPendingRepo.On("Get", "login-token-1").Return(livePending(now), nil)

	authService := createTestAuthService(new(MockUserRepository), mockPendingRepo, NewOTPService(10*time.Minute))

	// Act
	_, _, err := authService.VerifyCode(context.Background(), "login-token-1", "000000")

	// Assert
	assert.ErrorIs(t, err, ErrInvalidVerificationCode)
	mockPendingRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestAuthService_VerifyCode_ExpiredClearsPending(t *testing.T) {
	// Arrange
	issued := time.Now().Add(-15 * time.Minute)
	mockPendingRepo := new(MockPendingRepository)
	mockPendingRepo.On("Get", "login-token-1").Return(livePending(issued), nil)
	mockPendingRepo.On("Delete", "login-token-1").Return(nil)

	authService := createTestAuthService(new(MockUserRepository), mockPendingRepo, NewOTPService(10*time.Minute))

	// Act: the right code, submitted after the window closed
	_, _, err := authService.VerifyCode(context.Background(), "login-token-1", "007123")

	// Assert
	assert.ErrorIs(t, err, ErrVerificationExpired)
	mockPendingRepo.AssertExpectations(t)
}

func TestAuthService_VerifyCode_NoActiveVerification(t *testing.T) {
	// Arrange
	mockPendingRepo := new(MockPendingRepository)
	mockPendingRepo.On("Get", "stale-token").Return(nil, apperrors.ErrNotFound)

	authService := createTestAuthService(new(MockUserRepository), mockPendingRepo, NewOTPService(10*time.Minute))

	// Act
	_, _, err := authService.VerifyCode(context.Background(), "stale-token", "007123")

	// Assert
	assert.ErrorIs(t, err, ErrNoActiveVerification)
	mockPendingRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestAuthService_VerifyCode_EmptyToken(t *testing.T) {
	// Arrange: no pending lookup at all when no token is presented
	mockPendingRepo := new(MockPendingRepository)

	authService := createTestAuthService(new(MockUserRepository), mockPendingRepo, NewOTPService(10*time.Minute))

	// Act
	_, _, err := authService.VerifyCode(context.Background(), "", "007123")

	// Assert
	assert.ErrorIs(t, err, ErrNoActiveVerification)
	mockPendingRepo.AssertNotCalled(t, "Get", mock.Anything)
}

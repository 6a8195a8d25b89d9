package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/forum-backend/internal/auth"
	"github.com/heartmarshall/forum-backend/internal/domain"
)

var (
	_ userRepo    = &userRepoMock{}
	_ auditLogger = &auditLoggerMock{}
	_ txManager   = &txManagerMock{}
	_ jwtManager  = &jwtManagerMock{}
)

type userRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc     func(ctx context.Context, user *domain.User) (*domain.User, error)

	mu          sync.RWMutex
	createCalls []*domain.User
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc == nil {
		panic("userRepoMock.GetByEmailFunc: method is nil but userRepo.GetByEmail was just called")
	}
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	m.mu.Lock()
	m.createCalls = append(m.createCalls, user)
	m.mu.Unlock()
	return m.CreateFunc(ctx, user)
}

func (m *userRepoMock) CreateCalls() []*domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.createCalls
}

type auditLoggerMock struct {
	LogFunc func(ctx context.Context, record domain.AuditRecord) error

	mu    sync.RWMutex
	calls []domain.AuditRecord
}

func (m *auditLoggerMock) Log(ctx context.Context, record domain.AuditRecord) error {
	if m.LogFunc == nil {
		panic("auditLoggerMock.LogFunc: method is nil but auditLogger.Log was just called")
	}
	m.mu.Lock()
	m.calls = append(m.calls, record)
	m.mu.Unlock()
	return m.LogFunc(ctx, record)
}

func (m *auditLoggerMock) LogCalls() []domain.AuditRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	return m.RunInTxFunc(ctx, fn)
}

type jwtManagerMock struct {
	IssueFunc  func(userID uuid.UUID, role domain.UserRole) (string, time.Time, error)
	VerifyFunc func(token string) (auth.Claims, error)

	mu         sync.RWMutex
	issueCalls []struct {
		UserID uuid.UUID
		Role   domain.UserRole
	}
}

func (m *jwtManagerMock) Issue(userID uuid.UUID, role domain.UserRole) (string, time.Time, error) {
	if m.IssueFunc == nil {
		panic("jwtManagerMock.IssueFunc: method is nil but jwtManager.Issue was just called")
	}
	m.mu.Lock()
	m.issueCalls = append(m.issueCalls, struct {
		UserID uuid.UUID
		Role   domain.UserRole
	}{userID, role})
	m.mu.Unlock()
	return m.IssueFunc(userID, role)
}

func (m *jwtManagerMock) IssueCalls() []struct {
	UserID uuid.UUID
	Role   domain.UserRole
} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.issueCalls
}

func (m *jwtManagerMock) Verify(token string) (auth.Claims, error) {
	if m.VerifyFunc == nil {
		panic("jwtManagerMock.VerifyFunc: method is nil but jwtManager.Verify was just called")
	}
	return m.VerifyFunc(token)
}

package user

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/forum-backend/internal/domain"
)

type userRepoMock struct {
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	UpdateRoleFunc       func(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error)
	UpdateTrustLevelFunc func(ctx context.Context, id uuid.UUID, level domain.TrustLevel) (*domain.User, error)

	mu           sync.RWMutex
	getByIDCalls []uuid.UUID
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	m.mu.Lock()
	m.getByIDCalls = append(m.getByIDCalls, id)
	m.mu.Unlock()
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByIDCalls() []uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getByIDCalls
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc == nil {
		panic("userRepoMock.GetByEmailFunc: method is nil but userRepo.GetByEmail was just called")
	}
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	if m.UpdateRoleFunc == nil {
		panic("userRepoMock.UpdateRoleFunc: method is nil but userRepo.UpdateRole was just called")
	}
	return m.UpdateRoleFunc(ctx, id, role)
}

func (m *userRepoMock) UpdateTrustLevel(ctx context.Context, id uuid.UUID, level domain.TrustLevel) (*domain.User, error) {
	if m.UpdateTrustLevelFunc == nil {
		panic("userRepoMock.UpdateTrustLevelFunc: method is nil but userRepo.UpdateTrustLevel was just called")
	}
	return m.UpdateTrustLevelFunc(ctx, id, level)
}

type auditLoggerMock struct {
	mu    sync.RWMutex
	calls []domain.AuditRecord
}

func (m *auditLoggerMock) Log(_ context.Context, record domain.AuditRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, record)
	return nil
}

func (m *auditLoggerMock) LogCalls() []domain.AuditRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

type txManagerMock struct{}

func (txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

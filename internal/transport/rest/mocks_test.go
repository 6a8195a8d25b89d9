package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/forum-backend/internal/domain"
	"github.com/heartmarshall/forum-backend/internal/service/auth"
	"github.com/heartmarshall/forum-backend/internal/service/category"
	"github.com/heartmarshall/forum-backend/internal/service/sitesetting"
	"github.com/heartmarshall/forum-backend/internal/service/topic"
)

type topicServiceMock struct {
	mu              sync.Mutex
	CreateTopicFunc func(ctx context.Context, input topic.CreateTopicInput) (*domain.Topic, error)
	GetTopicFunc    func(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error)
	createCalls     []topic.CreateTopicInput
}

func (m *topicServiceMock) CreateTopic(ctx context.Context, input topic.CreateTopicInput) (*domain.Topic, error) {
	if m.CreateTopicFunc == nil {
		panic("topicServiceMock.CreateTopicFunc: method is nil but topicService.CreateTopic was just called")
	}
	m.mu.Lock()
	m.createCalls = append(m.createCalls, input)
	m.mu.Unlock()
	return m.CreateTopicFunc(ctx, input)
}

func (m *topicServiceMock) CreateTopicCalls() []topic.CreateTopicInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]topic.CreateTopicInput(nil), m.createCalls...)
}

func (m *topicServiceMock) GetTopic(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error) {
	if m.GetTopicFunc == nil {
		panic("topicServiceMock.GetTopicFunc: method is nil but topicService.GetTopic was just called")
	}
	return m.GetTopicFunc(ctx, topicID)
}

type authServiceMock struct {
	RegisterFunc          func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	LoginWithPasswordFunc func(ctx context.Context, input auth.LoginPasswordInput) (*auth.AuthResult, error)
}

func (m *authServiceMock) Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
	if m.RegisterFunc == nil {
		panic("authServiceMock.RegisterFunc: method is nil but authService.Register was just called")
	}
	return m.RegisterFunc(ctx, input)
}

func (m *authServiceMock) LoginWithPassword(ctx context.Context, input auth.LoginPasswordInput) (*auth.AuthResult, error) {
	if m.LoginWithPasswordFunc == nil {
		panic("authServiceMock.LoginWithPasswordFunc: method is nil but authService.LoginWithPassword was just called")
	}
	return m.LoginWithPasswordFunc(ctx, input)
}

type userServiceMock struct {
	MeFunc func(ctx context.Context) (*domain.User, error)
}

func (m *userServiceMock) Me(ctx context.Context) (*domain.User, error) {
	if m.MeFunc == nil {
		panic("userServiceMock.MeFunc: method is nil but userService.Me was just called")
	}
	return m.MeFunc(ctx)
}

type categoryServiceMock struct {
	CreateFunc func(ctx context.Context, input category.CreateCategoryInput) (*domain.Category, error)
	ListFunc   func(ctx context.Context) ([]domain.Category, error)
}

func (m *categoryServiceMock) Create(ctx context.Context, input category.CreateCategoryInput) (*domain.Category, error) {
	if m.CreateFunc == nil {
		panic("categoryServiceMock.CreateFunc: method is nil but categoryService.Create was just called")
	}
	return m.CreateFunc(ctx, input)
}

func (m *categoryServiceMock) List(ctx context.Context) ([]domain.Category, error) {
	if m.ListFunc == nil {
		panic("categoryServiceMock.ListFunc: method is nil but categoryService.List was just called")
	}
	return m.ListFunc(ctx)
}

type siteSettingServiceMock struct {
	GetFunc    func(ctx context.Context) (domain.SiteSettings, error)
	UpdateFunc func(ctx context.Context, input sitesetting.UpdateInput) (domain.SiteSettings, error)
}

func (m *siteSettingServiceMock) Get(ctx context.Context) (domain.SiteSettings, error) {
	if m.GetFunc == nil {
		panic("siteSettingServiceMock.GetFunc: method is nil but siteSettingService.Get was just called")
	}
	return m.GetFunc(ctx)
}

func (m *siteSettingServiceMock) Update(ctx context.Context, input sitesetting.UpdateInput) (domain.SiteSettings, error) {
	if m.UpdateFunc == nil {
		panic("siteSettingServiceMock.UpdateFunc: method is nil but siteSettingService.Update was just called")
	}
	return m.UpdateFunc(ctx, input)
}

package directory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/raulfrk/tappy/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByExternalIDFunc func(ctx context.Context, externalID int64) (*domain.User, error)
	GetWithGroupsFunc   func(ctx context.Context, externalID int64) (*domain.UserWithGroups, error)
	CreateFunc          func(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateUsernameFunc  func(ctx context.Context, id uuid.UUID, username *string) (*domain.User, error)

	calls struct {
		GetByExternalID []struct {
			Ctx        context.Context
			ExternalID int64
		}
		GetWithGroups []struct {
			Ctx        context.Context
			ExternalID int64
		}
		Create []struct {
			Ctx context.Context
			U   *domain.User
		}
		UpdateUsername []struct {
			Ctx      context.Context
			ID       uuid.UUID
			Username *string
		}
	}
	lockGetByExternalID sync.RWMutex
	lockGetWithGroups   sync.RWMutex
	lockCreate          sync.RWMutex
	lockUpdateUsername  sync.RWMutex
}

func (mock *userRepoMock) GetByExternalID(ctx context.Context, externalID int64) (*domain.User, error) {
	if mock.GetByExternalIDFunc == nil {
		panic("userRepoMock.GetByExternalIDFunc: method is nil but userRepo.GetByExternalID was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ExternalID int64
	}{Ctx: ctx, ExternalID: externalID}
	mock.lockGetByExternalID.Lock()
	mock.calls.GetByExternalID = append(mock.calls.GetByExternalID, callInfo)
	mock.lockGetByExternalID.Unlock()
	return mock.GetByExternalIDFunc(ctx, externalID)
}

func (mock *userRepoMock) GetByExternalIDCalls() []struct {
	Ctx        context.Context
	ExternalID int64
} {
	mock.lockGetByExternalID.RLock()
	calls := mock.calls.GetByExternalID
	mock.lockGetByExternalID.RUnlock()
	return calls
}

func (mock *userRepoMock) GetWithGroups(ctx context.Context, externalID int64) (*domain.UserWithGroups, error) {
	if mock.GetWithGroupsFunc == nil {
		panic("userRepoMock.GetWithGroupsFunc: method is nil but userRepo.GetWithGroups was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ExternalID int64
	}{Ctx: ctx, ExternalID: externalID}
	mock.lockGetWithGroups.Lock()
	mock.calls.GetWithGroups = append(mock.calls.GetWithGroups, callInfo)
	mock.lockGetWithGroups.Unlock()
	return mock.GetWithGroupsFunc(ctx, externalID)
}

func (mock *userRepoMock) GetWithGroupsCalls() []struct {
	Ctx        context.Context
	ExternalID int64
} {
	mock.lockGetWithGroups.RLock()
	calls := mock.calls.GetWithGroups
	mock.lockGetWithGroups.RUnlock()
	return calls
}

func (mock *userRepoMock) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if mock.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   *domain.User
	}{Ctx: ctx, U: u}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, u)
}

func (mock *userRepoMock) CreateCalls() []struct {
	Ctx context.Context
	U   *domain.User
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *userRepoMock) UpdateUsername(ctx context.Context, id uuid.UUID, username *string) (*domain.User, error) {
	if mock.UpdateUsernameFunc == nil {
		panic("userRepoMock.UpdateUsernameFunc: method is nil but userRepo.UpdateUsername was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       uuid.UUID
		Username *string
	}{Ctx: ctx, ID: id, Username: username}
	mock.lockUpdateUsername.Lock()
	mock.calls.UpdateUsername = append(mock.calls.UpdateUsername, callInfo)
	mock.lockUpdateUsername.Unlock()
	return mock.UpdateUsernameFunc(ctx, id, username)
}

func (mock *userRepoMock) UpdateUsernameCalls() []struct {
	Ctx      context.Context
	ID       uuid.UUID
	Username *string
} {
	mock.lockUpdateUsername.RLock()
	calls := mock.calls.UpdateUsername
	mock.lockUpdateUsername.RUnlock()
	return calls
}

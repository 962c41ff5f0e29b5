package membership

import (
	"context"
	"sync"

	"github.com/raulfrk/tappy/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByExternalIDFunc func(ctx context.Context, externalID int64) (*domain.User, error)
	GetWithGroupsFunc   func(ctx context.Context, externalID int64) (*domain.UserWithGroups, error)

	calls struct {
		GetByExternalID []struct {
			Ctx        context.Context
			ExternalID int64
		}
		GetWithGroups []struct {
			Ctx        context.Context
			ExternalID int64
		}
	}
	lockGetByExternalID sync.RWMutex
	lockGetWithGroups   sync.RWMutex
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

package tap

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raulfrk/tappy/internal/domain"
)

var _ tapRepo = &tapRepoMock{}

type tapRepoMock struct {
	CreateFunc             func(ctx context.Context, t *domain.Tap) (*domain.Tap, error)
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Tap, error)
	AcknowledgeFunc        func(ctx context.Context, id uuid.UUID, ackedBy uuid.UUID, until time.Time) (*domain.Tap, error)
	DeactivateFunc         func(ctx context.Context, id uuid.UUID) error
	SoftDeleteFunc         func(ctx context.Context, id uuid.UUID) error
	ListForDestinationFunc func(ctx context.Context, filter domain.TapFilter) ([]*domain.Tap, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			T   *domain.Tap
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Acknowledge []struct {
			Ctx     context.Context
			ID      uuid.UUID
			AckedBy uuid.UUID
			Until   time.Time
		}
		Deactivate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		SoftDelete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListForDestination []struct {
			Ctx    context.Context
			Filter domain.TapFilter
		}
	}
	lockCreate             sync.RWMutex
	lockGetByID            sync.RWMutex
	lockAcknowledge        sync.RWMutex
	lockDeactivate         sync.RWMutex
	lockSoftDelete         sync.RWMutex
	lockListForDestination sync.RWMutex
}

func (mock *tapRepoMock) Create(ctx context.Context, t *domain.Tap) (*domain.Tap, error) {
	if mock.CreateFunc == nil {
		panic("tapRepoMock.CreateFunc: method is nil but tapRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		T   *domain.Tap
	}{Ctx: ctx, T: t}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, t)
}

func (mock *tapRepoMock) CreateCalls() []struct {
	Ctx context.Context
	T   *domain.Tap
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *tapRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tap, error) {
	if mock.GetByIDFunc == nil {
		panic("tapRepoMock.GetByIDFunc: method is nil but tapRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *tapRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *tapRepoMock) Acknowledge(ctx context.Context, id uuid.UUID, ackedBy uuid.UUID, until time.Time) (*domain.Tap, error) {
	if mock.AcknowledgeFunc == nil {
		panic("tapRepoMock.AcknowledgeFunc: method is nil but tapRepo.Acknowledge was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ID      uuid.UUID
		AckedBy uuid.UUID
		Until   time.Time
	}{Ctx: ctx, ID: id, AckedBy: ackedBy, Until: until}
	mock.lockAcknowledge.Lock()
	mock.calls.Acknowledge = append(mock.calls.Acknowledge, callInfo)
	mock.lockAcknowledge.Unlock()
	return mock.AcknowledgeFunc(ctx, id, ackedBy, until)
}

func (mock *tapRepoMock) AcknowledgeCalls() []struct {
	Ctx     context.Context
	ID      uuid.UUID
	AckedBy uuid.UUID
	Until   time.Time
} {
	mock.lockAcknowledge.RLock()
	calls := mock.calls.Acknowledge
	mock.lockAcknowledge.RUnlock()
	return calls
}

func (mock *tapRepoMock) Deactivate(ctx context.Context, id uuid.UUID) error {
	if mock.DeactivateFunc == nil {
		panic("tapRepoMock.DeactivateFunc: method is nil but tapRepo.Deactivate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDeactivate.Lock()
	mock.calls.Deactivate = append(mock.calls.Deactivate, callInfo)
	mock.lockDeactivate.Unlock()
	return mock.DeactivateFunc(ctx, id)
}

func (mock *tapRepoMock) DeactivateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDeactivate.RLock()
	calls := mock.calls.Deactivate
	mock.lockDeactivate.RUnlock()
	return calls
}

func (mock *tapRepoMock) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if mock.SoftDeleteFunc == nil {
		panic("tapRepoMock.SoftDeleteFunc: method is nil but tapRepo.SoftDelete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockSoftDelete.Lock()
	mock.calls.SoftDelete = append(mock.calls.SoftDelete, callInfo)
	mock.lockSoftDelete.Unlock()
	return mock.SoftDeleteFunc(ctx, id)
}

func (mock *tapRepoMock) SoftDeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockSoftDelete.RLock()
	calls := mock.calls.SoftDelete
	mock.lockSoftDelete.RUnlock()
	return calls
}

func (mock *tapRepoMock) ListForDestination(ctx context.Context, filter domain.TapFilter) ([]*domain.Tap, error) {
	if mock.ListForDestinationFunc == nil {
		panic("tapRepoMock.ListForDestinationFunc: method is nil but tapRepo.ListForDestination was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.TapFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockListForDestination.Lock()
	mock.calls.ListForDestination = append(mock.calls.ListForDestination, callInfo)
	mock.lockListForDestination.Unlock()
	return mock.ListForDestinationFunc(ctx, filter)
}

func (mock *tapRepoMock) ListForDestinationCalls() []struct {
	Ctx    context.Context
	Filter domain.TapFilter
} {
	mock.lockListForDestination.RLock()
	calls := mock.calls.ListForDestination
	mock.lockListForDestination.RUnlock()
	return calls
}

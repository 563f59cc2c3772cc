package admin

import (
	"context"
	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/google/uuid"
	"sync"
)

var _ operations = &operationsMock{}

type operationsMock struct {
	CreateUserFunc  func(ctx context.Context, input CreateUserInput) (*domain.Identity, error)
	DecideFunc      func(ctx context.Context, id uuid.UUID, approved bool) (*domain.Registration, error)
	DeleteUserFunc  func(ctx context.Context, id uuid.UUID) error
	ListPendingFunc func(ctx context.Context) ([]domain.Registration, error)
	ListUsersFunc   func(ctx context.Context) ([]domain.ManagedUser, error)

	calls struct {
		CreateUser []struct {
			Ctx   context.Context
			Input CreateUserInput
		}
		Decide []struct {
			Ctx      context.Context
			Id       uuid.UUID
			Approved bool
		}
		DeleteUser []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListPending []struct {
			Ctx context.Context
		}
		ListUsers []struct {
			Ctx context.Context
		}
	}
	lockCreateUser  sync.RWMutex
	lockDecide      sync.RWMutex
	lockDeleteUser  sync.RWMutex
	lockListPending sync.RWMutex
	lockListUsers   sync.RWMutex
}

func (mock *operationsMock) CreateUser(ctx context.Context, input CreateUserInput) (*domain.Identity, error) {
	if mock.CreateUserFunc == nil {
		panic("operationsMock.CreateUserFunc: method is nil but operations.CreateUser was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input CreateUserInput
	}{Ctx: ctx, Input: input}
	mock.lockCreateUser.Lock()
	mock.calls.CreateUser = append(mock.calls.CreateUser, callInfo)
	mock.lockCreateUser.Unlock()
	return mock.CreateUserFunc(ctx, input)
}

func (mock *operationsMock) CreateUserCalls() []struct {
	Ctx   context.Context
	Input CreateUserInput
} {
	mock.lockCreateUser.RLock()
	calls := mock.calls.CreateUser
	mock.lockCreateUser.RUnlock()
	return calls
}

func (mock *operationsMock) Decide(ctx context.Context, id uuid.UUID, approved bool) (*domain.Registration, error) {
	if mock.DecideFunc == nil {
		panic("operationsMock.DecideFunc: method is nil but operations.Decide was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Id       uuid.UUID
		Approved bool
	}{Ctx: ctx, Id: id, Approved: approved}
	mock.lockDecide.Lock()
	mock.calls.Decide = append(mock.calls.Decide, callInfo)
	mock.lockDecide.Unlock()
	return mock.DecideFunc(ctx, id, approved)
}

func (mock *operationsMock) DecideCalls() []struct {
	Ctx      context.Context
	Id       uuid.UUID
	Approved bool
} {
	mock.lockDecide.RLock()
	calls := mock.calls.Decide
	mock.lockDecide.RUnlock()
	return calls
}

func (mock *operationsMock) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteUserFunc == nil {
		panic("operationsMock.DeleteUserFunc: method is nil but operations.DeleteUser was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockDeleteUser.Lock()
	mock.calls.DeleteUser = append(mock.calls.DeleteUser, callInfo)
	mock.lockDeleteUser.Unlock()
	return mock.DeleteUserFunc(ctx, id)
}

func (mock *operationsMock) DeleteUserCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDeleteUser.RLock()
	calls := mock.calls.DeleteUser
	mock.lockDeleteUser.RUnlock()
	return calls
}

func (mock *operationsMock) ListPending(ctx context.Context) ([]domain.Registration, error) {
	if mock.ListPendingFunc == nil {
		panic("operationsMock.ListPendingFunc: method is nil but operations.ListPending was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListPending.Lock()
	mock.calls.ListPending = append(mock.calls.ListPending, callInfo)
	mock.lockListPending.Unlock()
	return mock.ListPendingFunc(ctx)
}

func (mock *operationsMock) ListPendingCalls() []struct {
	Ctx context.Context
} {
	mock.lockListPending.RLock()
	calls := mock.calls.ListPending
	mock.lockListPending.RUnlock()
	return calls
}

func (mock *operationsMock) ListUsers(ctx context.Context) ([]domain.ManagedUser, error) {
	if mock.ListUsersFunc == nil {
		panic("operationsMock.ListUsersFunc: method is nil but operations.ListUsers was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListUsers.Lock()
	mock.calls.ListUsers = append(mock.calls.ListUsers, callInfo)
	mock.lockListUsers.Unlock()
	return mock.ListUsersFunc(ctx)
}

func (mock *operationsMock) ListUsersCalls() []struct {
	Ctx context.Context
} {
	mock.lockListUsers.RLock()
	calls := mock.calls.ListUsers
	mock.lockListUsers.RUnlock()
	return calls
}

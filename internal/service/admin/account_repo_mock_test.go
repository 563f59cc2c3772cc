package admin

import (
	"context"
	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/google/uuid"
	"sync"
)

var _ accountRepo = &accountRepoMock{}

type accountRepoMock struct {
	DeleteUserFunc func(ctx context.Context, id uuid.UUID) error
	ListUsersFunc  func(ctx context.Context) ([]domain.ManagedUser, error)

	calls struct {
		DeleteUser []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListUsers []struct {
			Ctx context.Context
		}
	}
	lockDeleteUser sync.RWMutex
	lockListUsers  sync.RWMutex
}

func (mock *accountRepoMock) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteUserFunc == nil {
		panic("accountRepoMock.DeleteUserFunc: method is nil but accountRepo.DeleteUser was just called")
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

func (mock *accountRepoMock) DeleteUserCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDeleteUser.RLock()
	calls := mock.calls.DeleteUser
	mock.lockDeleteUser.RUnlock()
	return calls
}

func (mock *accountRepoMock) ListUsers(ctx context.Context) ([]domain.ManagedUser, error) {
	if mock.ListUsersFunc == nil {
		panic("accountRepoMock.ListUsersFunc: method is nil but accountRepo.ListUsers was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListUsers.Lock()
	mock.calls.ListUsers = append(mock.calls.ListUsers, callInfo)
	mock.lockListUsers.Unlock()
	return mock.ListUsersFunc(ctx)
}

func (mock *accountRepoMock) ListUsersCalls() []struct {
	Ctx context.Context
} {
	mock.lockListUsers.RLock()
	calls := mock.calls.ListUsers
	mock.lockListUsers.RUnlock()
	return calls
}

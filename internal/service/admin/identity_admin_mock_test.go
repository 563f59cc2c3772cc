package admin

import (
	"context"
	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/google/uuid"
	"sync"
)

var _ identityAdmin = &identityAdminMock{}

type identityAdminMock struct {
	AdminCreateUserFunc        func(ctx context.Context, input domain.CreateIdentityInput) (*domain.Identity, error)
	AdminUpdateAppMetadataFunc func(ctx context.Context, userID uuid.UUID, patch map[string]any) (*domain.Identity, error)

	calls struct {
		AdminCreateUser []struct {
			Ctx   context.Context
			Input domain.CreateIdentityInput
		}
		AdminUpdateAppMetadata []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Patch  map[string]any
		}
	}
	lockAdminCreateUser        sync.RWMutex
	lockAdminUpdateAppMetadata sync.RWMutex
}

func (mock *identityAdminMock) AdminCreateUser(ctx context.Context, input domain.CreateIdentityInput) (*domain.Identity, error) {
	if mock.AdminCreateUserFunc == nil {
		panic("identityAdminMock.AdminCreateUserFunc: method is nil but identityAdmin.AdminCreateUser was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input domain.CreateIdentityInput
	}{Ctx: ctx, Input: input}
	mock.lockAdminCreateUser.Lock()
	mock.calls.AdminCreateUser = append(mock.calls.AdminCreateUser, callInfo)
	mock.lockAdminCreateUser.Unlock()
	return mock.AdminCreateUserFunc(ctx, input)
}

func (mock *identityAdminMock) AdminCreateUserCalls() []struct {
	Ctx   context.Context
	Input domain.CreateIdentityInput
} {
	mock.lockAdminCreateUser.RLock()
	calls := mock.calls.AdminCreateUser
	mock.lockAdminCreateUser.RUnlock()
	return calls
}

func (mock *identityAdminMock) AdminUpdateAppMetadata(ctx context.Context, userID uuid.UUID, patch map[string]any) (*domain.Identity, error) {
	if mock.AdminUpdateAppMetadataFunc == nil {
		panic("identityAdminMock.AdminUpdateAppMetadataFunc: method is nil but identityAdmin.AdminUpdateAppMetadata was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Patch  map[string]any
	}{Ctx: ctx, UserID: userID, Patch: patch}
	mock.lockAdminUpdateAppMetadata.Lock()
	mock.calls.AdminUpdateAppMetadata = append(mock.calls.AdminUpdateAppMetadata, callInfo)
	mock.lockAdminUpdateAppMetadata.Unlock()
	return mock.AdminUpdateAppMetadataFunc(ctx, userID, patch)
}

func (mock *identityAdminMock) AdminUpdateAppMetadataCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Patch  map[string]any
} {
	mock.lockAdminUpdateAppMetadata.RLock()
	calls := mock.calls.AdminUpdateAppMetadata
	mock.lockAdminUpdateAppMetadata.RUnlock()
	return calls
}

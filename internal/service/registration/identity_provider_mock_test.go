package registration

import (
	"context"
	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/google/uuid"
	"sync"
)

var _ identityProvider = &identityProviderMock{}

type identityProviderMock struct {
	AdminDeleteUserFunc        func(ctx context.Context, userID uuid.UUID) error
	AdminUpdateAppMetadataFunc func(ctx context.Context, userID uuid.UUID, patch map[string]any) (*domain.Identity, error)
	SignUpFunc                 func(ctx context.Context, email string, password string, userMeta map[string]any) (*domain.Identity, error)

	calls struct {
		AdminDeleteUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		AdminUpdateAppMetadata []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Patch  map[string]any
		}
		SignUp []struct {
			Ctx      context.Context
			Email    string
			Password string
			UserMeta map[string]any
		}
	}
	lockAdminDeleteUser        sync.RWMutex
	lockAdminUpdateAppMetadata sync.RWMutex
	lockSignUp                 sync.RWMutex
}

func (mock *identityProviderMock) AdminDeleteUser(ctx context.Context, userID uuid.UUID) error {
	if mock.AdminDeleteUserFunc == nil {
		panic("identityProviderMock.AdminDeleteUserFunc: method is nil but identityProvider.AdminDeleteUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockAdminDeleteUser.Lock()
	mock.calls.AdminDeleteUser = append(mock.calls.AdminDeleteUser, callInfo)
	mock.lockAdminDeleteUser.Unlock()
	return mock.AdminDeleteUserFunc(ctx, userID)
}

func (mock *identityProviderMock) AdminDeleteUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockAdminDeleteUser.RLock()
	calls := mock.calls.AdminDeleteUser
	mock.lockAdminDeleteUser.RUnlock()
	return calls
}

func (mock *identityProviderMock) AdminUpdateAppMetadata(ctx context.Context, userID uuid.UUID, patch map[string]any) (*domain.Identity, error) {
	if mock.AdminUpdateAppMetadataFunc == nil {
		panic("identityProviderMock.AdminUpdateAppMetadataFunc: method is nil but identityProvider.AdminUpdateAppMetadata was just called")
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

func (mock *identityProviderMock) AdminUpdateAppMetadataCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Patch  map[string]any
} {
	mock.lockAdminUpdateAppMetadata.RLock()
	calls := mock.calls.AdminUpdateAppMetadata
	mock.lockAdminUpdateAppMetadata.RUnlock()
	return calls
}

func (mock *identityProviderMock) SignUp(ctx context.Context, email string, password string, userMeta map[string]any) (*domain.Identity, error) {
	if mock.SignUpFunc == nil {
		panic("identityProviderMock.SignUpFunc: method is nil but identityProvider.SignUp was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Email    string
		Password string
		UserMeta map[string]any
	}{Ctx: ctx, Email: email, Password: password, UserMeta: userMeta}
	mock.lockSignUp.Lock()
	mock.calls.SignUp = append(mock.calls.SignUp, callInfo)
	mock.lockSignUp.Unlock()
	return mock.SignUpFunc(ctx, email, password, userMeta)
}

func (mock *identityProviderMock) SignUpCalls() []struct {
	Ctx      context.Context
	Email    string
	Password string
	UserMeta map[string]any
} {
	mock.lockSignUp.RLock()
	calls := mock.calls.SignUp
	mock.lockSignUp.RUnlock()
	return calls
}

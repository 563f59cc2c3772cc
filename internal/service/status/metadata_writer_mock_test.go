package status

import (
	"context"
	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/google/uuid"
	"sync"
)

var _ metadataWriter = &metadataWriterMock{}

type metadataWriterMock struct {
	AdminUpdateAppMetadataFunc func(ctx context.Context, userID uuid.UUID, patch map[string]any) (*domain.Identity, error)

	calls struct {
		AdminUpdateAppMetadata []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Patch  map[string]any
		}
	}
	lockAdminUpdateAppMetadata sync.RWMutex
}

func (mock *metadataWriterMock) AdminUpdateAppMetadata(ctx context.Context, userID uuid.UUID, patch map[string]any) (*domain.Identity, error) {
	if mock.AdminUpdateAppMetadataFunc == nil {
		panic("metadataWriterMock.AdminUpdateAppMetadataFunc: method is nil but metadataWriter.AdminUpdateAppMetadata was just called")
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

func (mock *metadataWriterMock) AdminUpdateAppMetadataCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Patch  map[string]any
} {
	mock.lockAdminUpdateAppMetadata.RLock()
	calls := mock.calls.AdminUpdateAppMetadata
	mock.lockAdminUpdateAppMetadata.RUnlock()
	return calls
}

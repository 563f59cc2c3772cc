package seeder

import (
	"context"
	"github.com/endocyclic/investor-portal/internal/domain"
	"sync"
)

var _ ContentRepo = &ContentRepoMock{}

type ContentRepoMock struct {
	UpsertDocumentFunc    func(ctx context.Context, doc domain.Document) error
	UpsertNewsFunc        func(ctx context.Context, n domain.NewsUpdate) error
	UpsertProductFunc     func(ctx context.Context, p domain.Product) error
	UpsertPublicationFunc func(ctx context.Context, p domain.Publication) error
	UpsertTeamMemberFunc  func(ctx context.Context, m domain.TeamMember) error

	calls struct {
		UpsertDocument []struct {
			Ctx context.Context
			Doc domain.Document
		}
		UpsertNews []struct {
			Ctx context.Context
			N   domain.NewsUpdate
		}
		UpsertProduct []struct {
			Ctx context.Context
			P   domain.Product
		}
		UpsertPublication []struct {
			Ctx context.Context
			P   domain.Publication
		}
		UpsertTeamMember []struct {
			Ctx context.Context
			M   domain.TeamMember
		}
	}
	lockUpsertDocument    sync.RWMutex
	lockUpsertNews        sync.RWMutex
	lockUpsertProduct     sync.RWMutex
	lockUpsertPublication sync.RWMutex
	lockUpsertTeamMember  sync.RWMutex
}

func (mock *ContentRepoMock) UpsertDocument(ctx context.Context, doc domain.Document) error {
	if mock.UpsertDocumentFunc == nil {
		panic("ContentRepoMock.UpsertDocumentFunc: method is nil but ContentRepo.UpsertDocument was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Doc domain.Document
	}{Ctx: ctx, Doc: doc}
	mock.lockUpsertDocument.Lock()
	mock.calls.UpsertDocument = append(mock.calls.UpsertDocument, callInfo)
	mock.lockUpsertDocument.Unlock()
	return mock.UpsertDocumentFunc(ctx, doc)
}

func (mock *ContentRepoMock) UpsertDocumentCalls() []struct {
	Ctx context.Context
	Doc domain.Document
} {
	mock.lockUpsertDocument.RLock()
	calls := mock.calls.UpsertDocument
	mock.lockUpsertDocument.RUnlock()
	return calls
}

func (mock *ContentRepoMock) UpsertNews(ctx context.Context, n domain.NewsUpdate) error {
	if mock.UpsertNewsFunc == nil {
		panic("ContentRepoMock.UpsertNewsFunc: method is nil but ContentRepo.UpsertNews was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   domain.NewsUpdate
	}{Ctx: ctx, N: n}
	mock.lockUpsertNews.Lock()
	mock.calls.UpsertNews = append(mock.calls.UpsertNews, callInfo)
	mock.lockUpsertNews.Unlock()
	return mock.UpsertNewsFunc(ctx, n)
}

func (mock *ContentRepoMock) UpsertNewsCalls() []struct {
	Ctx context.Context
	N   domain.NewsUpdate
} {
	mock.lockUpsertNews.RLock()
	calls := mock.calls.UpsertNews
	mock.lockUpsertNews.RUnlock()
	return calls
}

func (mock *ContentRepoMock) UpsertProduct(ctx context.Context, p domain.Product) error {
	if mock.UpsertProductFunc == nil {
		panic("ContentRepoMock.UpsertProductFunc: method is nil but ContentRepo.UpsertProduct was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Product
	}{Ctx: ctx, P: p}
	mock.lockUpsertProduct.Lock()
	mock.calls.UpsertProduct = append(mock.calls.UpsertProduct, callInfo)
	mock.lockUpsertProduct.Unlock()
	return mock.UpsertProductFunc(ctx, p)
}

func (mock *ContentRepoMock) UpsertProductCalls() []struct {
	Ctx context.Context
	P   domain.Product
} {
	mock.lockUpsertProduct.RLock()
	calls := mock.calls.UpsertProduct
	mock.lockUpsertProduct.RUnlock()
	return calls
}

func (mock *ContentRepoMock) UpsertPublication(ctx context.Context, p domain.Publication) error {
	if mock.UpsertPublicationFunc == nil {
		panic("ContentRepoMock.UpsertPublicationFunc: method is nil but ContentRepo.UpsertPublication was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Publication
	}{Ctx: ctx, P: p}
	mock.lockUpsertPublication.Lock()
	mock.calls.UpsertPublication = append(mock.calls.UpsertPublication, callInfo)
	mock.lockUpsertPublication.Unlock()
	return mock.UpsertPublicationFunc(ctx, p)
}

func (mock *ContentRepoMock) UpsertPublicationCalls() []struct {
	Ctx context.Context
	P   domain.Publication
} {
	mock.lockUpsertPublication.RLock()
	calls := mock.calls.UpsertPublication
	mock.lockUpsertPublication.RUnlock()
	return calls
}

func (mock *ContentRepoMock) UpsertTeamMember(ctx context.Context, m domain.TeamMember) error {
	if mock.UpsertTeamMemberFunc == nil {
		panic("ContentRepoMock.UpsertTeamMemberFunc: method is nil but ContentRepo.UpsertTeamMember was just called")
	}
	callInfo := struct {
		Ctx context.Context
		M   domain.TeamMember
	}{Ctx: ctx, M: m}
	mock.lockUpsertTeamMember.Lock()
	mock.calls.UpsertTeamMember = append(mock.calls.UpsertTeamMember, callInfo)
	mock.lockUpsertTeamMember.Unlock()
	return mock.UpsertTeamMemberFunc(ctx, m)
}

func (mock *ContentRepoMock) UpsertTeamMemberCalls() []struct {
	Ctx context.Context
	M   domain.TeamMember
} {
	mock.lockUpsertTeamMember.RLock()
	calls := mock.calls.UpsertTeamMember
	mock.lockUpsertTeamMember.RUnlock()
	return calls
}

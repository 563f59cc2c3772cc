package content

import (
	"context"
	"github.com/endocyclic/investor-portal/internal/domain"
	"sync"
)

var _ contentRepo = &contentRepoMock{}

type contentRepoMock struct {
	LatestNewsFunc            func(ctx context.Context, limit int) ([]domain.NewsUpdate, error)
	ProductsFunc              func(ctx context.Context) ([]domain.Product, error)
	PublicationCategoriesFunc func(ctx context.Context) ([]string, error)
	PublicationsFunc          func(ctx context.Context, category string) ([]domain.Publication, error)
	TeamMembersFunc           func(ctx context.Context) ([]domain.TeamMember, error)

	calls struct {
		LatestNews []struct {
			Ctx   context.Context
			Limit int
		}
		Products []struct {
			Ctx context.Context
		}
		PublicationCategories []struct {
			Ctx context.Context
		}
		Publications []struct {
			Ctx      context.Context
			Category string
		}
		TeamMembers []struct {
			Ctx context.Context
		}
	}
	lockLatestNews            sync.RWMutex
	lockProducts              sync.RWMutex
	lockPublicationCategories sync.RWMutex
	lockPublications          sync.RWMutex
	lockTeamMembers           sync.RWMutex
}

func (mock *contentRepoMock) LatestNews(ctx context.Context, limit int) ([]domain.NewsUpdate, error) {
	if mock.LatestNewsFunc == nil {
		panic("contentRepoMock.LatestNewsFunc: method is nil but contentRepo.LatestNews was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{Ctx: ctx, Limit: limit}
	mock.lockLatestNews.Lock()
	mock.calls.LatestNews = append(mock.calls.LatestNews, callInfo)
	mock.lockLatestNews.Unlock()
	return mock.LatestNewsFunc(ctx, limit)
}

func (mock *contentRepoMock) LatestNewsCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	mock.lockLatestNews.RLock()
	calls := mock.calls.LatestNews
	mock.lockLatestNews.RUnlock()
	return calls
}

func (mock *contentRepoMock) Products(ctx context.Context) ([]domain.Product, error) {
	if mock.ProductsFunc == nil {
		panic("contentRepoMock.ProductsFunc: method is nil but contentRepo.Products was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockProducts.Lock()
	mock.calls.Products = append(mock.calls.Products, callInfo)
	mock.lockProducts.Unlock()
	return mock.ProductsFunc(ctx)
}

func (mock *contentRepoMock) ProductsCalls() []struct {
	Ctx context.Context
} {
	mock.lockProducts.RLock()
	calls := mock.calls.Products
	mock.lockProducts.RUnlock()
	return calls
}

func (mock *contentRepoMock) PublicationCategories(ctx context.Context) ([]string, error) {
	if mock.PublicationCategoriesFunc == nil {
		panic("contentRepoMock.PublicationCategoriesFunc: method is nil but contentRepo.PublicationCategories was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockPublicationCategories.Lock()
	mock.calls.PublicationCategories = append(mock.calls.PublicationCategories, callInfo)
	mock.lockPublicationCategories.Unlock()
	return mock.PublicationCategoriesFunc(ctx)
}

func (mock *contentRepoMock) PublicationCategoriesCalls() []struct {
	Ctx context.Context
} {
	mock.lockPublicationCategories.RLock()
	calls := mock.calls.PublicationCategories
	mock.lockPublicationCategories.RUnlock()
	return calls
}

func (mock *contentRepoMock) Publications(ctx context.Context, category string) ([]domain.Publication, error) {
	if mock.PublicationsFunc == nil {
		panic("contentRepoMock.PublicationsFunc: method is nil but contentRepo.Publications was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Category string
	}{Ctx: ctx, Category: category}
	mock.lockPublications.Lock()
	mock.calls.Publications = append(mock.calls.Publications, callInfo)
	mock.lockPublications.Unlock()
	return mock.PublicationsFunc(ctx, category)
}

func (mock *contentRepoMock) PublicationsCalls() []struct {
	Ctx      context.Context
	Category string
} {
	mock.lockPublications.RLock()
	calls := mock.calls.Publications
	mock.lockPublications.RUnlock()
	return calls
}

func (mock *contentRepoMock) TeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	if mock.TeamMembersFunc == nil {
		panic("contentRepoMock.TeamMembersFunc: method is nil but contentRepo.TeamMembers was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockTeamMembers.Lock()
	mock.calls.TeamMembers = append(mock.calls.TeamMembers, callInfo)
	mock.lockTeamMembers.Unlock()
	return mock.TeamMembersFunc(ctx)
}

func (mock *contentRepoMock) TeamMembersCalls() []struct {
	Ctx context.Context
} {
	mock.lockTeamMembers.RLock()
	calls := mock.calls.TeamMembers
	mock.lockTeamMembers.RUnlock()
	return calls
}

package rest

import (
	"context"
	"time"

	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/internal/portal"
	"github.com/endocyclic/investor-portal/internal/service/admin"
	"github.com/endocyclic/investor-portal/internal/service/gate"
	"github.com/endocyclic/investor-portal/internal/transport/dataloader"
)

type identityResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastSignInAt *time.Time `json:"lastSignInAt,omitempty"`
}

type gateResponse struct {
	State         string `json:"state"`
	PortalOpen    bool   `json:"portalOpen"`
	AuthModalOpen bool   `json:"authModalOpen"`
	AdminPageOpen bool   `json:"adminPageOpen"`
}

type sessionResponse struct {
	Loading       bool              `json:"loading"`
	User          *identityResponse `json:"user"`
	Status        string            `json:"status"`
	StatusLoading bool              `json:"statusLoading"`
	StatusError   string            `json:"statusError,omitempty"`
	Gate          gateResponse      `json:"gate"`
}

func toIdentityResponse(i *domain.Identity) *identityResponse {
	if i == nil {
		return nil
	}
	return &identityResponse{
		ID:           i.ID.String(),
		Email:        i.Email,
		Name:         i.DisplayName(),
		Role:         i.Role().String(),
		CreatedAt:    i.CreatedAt,
		LastSignInAt: i.LastSignInAt,
	}
}

func toGateResponse(s gate.Snapshot) gateResponse {
	return gateResponse{
		State:         string(s.State),
		PortalOpen:    s.PortalOpen,
		AuthModalOpen: s.AuthModalOpen,
		AdminPageOpen: s.AdminPageOpen,
	}
}

func toSessionResponse(s portal.Snapshot) sessionResponse {
	return sessionResponse{
		Loading:       s.Loading,
		User:          toIdentityResponse(s.Identity),
		Status:        statusLabel(s.Status),
		StatusLoading: s.StatusLoading,
		StatusError:   domain.UserMessage(s.StatusErr),
		Gate:          toGateResponse(s.Gate),
	}
}

// statusLabel renders the absence of a registration as "none".
func statusLabel(s domain.InvestorStatus) string {
	if s == domain.StatusNone {
		return "none"
	}
	return string(s)
}

type documentResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	FileType    string    `json:"fileType"`
	FileSize    int64     `json:"fileSize"`
	SizeLabel   string    `json:"sizeLabel"`
	URL         string    `json:"url"`
	PreviewURL  *string   `json:"previewUrl,omitempty"`
	PublishDate time.Time `json:"publishDate"`
	Tags        []string  `json:"tags"`
}

type documentsResponse struct {
	Documents  []documentResponse `json:"documents"`
	Total      int                `json:"total"`
	Categories []string           `json:"categories"`
	Tags       []string           `json:"tags"`
	Loading    bool               `json:"loading"`
	Error      string             `json:"error,omitempty"`
}

func toDocumentsResponse(v portal.DocumentsView) documentsResponse {
	docs := make([]documentResponse, 0, len(v.Documents))
	for i := range v.Documents {
		d := &v.Documents[i]
		tags := d.Tags
		if tags == nil {
			tags = []string{}
		}
		docs = append(docs, documentResponse{
			ID:          d.ID.String(),
			Title:       d.Title,
			Description: d.Description,
			Category:    d.Category,
			FileType:    string(d.FileType),
			FileSize:    d.FileSize,
			SizeLabel:   d.SizeLabel(),
			URL:         d.URL,
			PreviewURL:  d.PreviewURL,
			PublishDate: d.PublishDate,
			Tags:        tags,
		})
	}
	return documentsResponse{
		Documents:  docs,
		Total:      v.Total,
		Categories: nonNil(v.Facets.Categories),
		Tags:       nonNil(v.Facets.Tags),
		Loading:    v.Loading,
		Error:      domain.UserMessage(v.Err),
	}
}

type registrationResponse struct {
	ID                    string     `json:"id"`
	UserID                *string    `json:"userId,omitempty"`
	Email                 string     `json:"email"`
	FirstName             string     `json:"firstName"`
	LastName              string     `json:"lastName"`
	Company               string     `json:"company"`
	Role                  string     `json:"role"`
	Phone                 string     `json:"phone,omitempty"`
	InvestmentPreferences []string   `json:"investmentPreferences"`
	AccreditationStatus   string     `json:"accreditationStatus"`
	CapacityRange         string     `json:"investmentCapacityRange,omitempty"`
	Status                string     `json:"status"`
	LatestStatus          string     `json:"latestStatus,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	DecidedAt             *time.Time `json:"decidedAt,omitempty"`
}

func toRegistrationResponse(r *domain.Registration) registrationResponse {
	resp := registrationResponse{
		ID:                    r.ID.String(),
		Email:                 r.Email,
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		Company:               r.Company,
		Role:                  r.Role,
		Phone:                 r.Phone,
		InvestmentPreferences: nonNil(r.InvestmentPreferences),
		AccreditationStatus:   string(r.AccreditationStatus),
		CapacityRange:         string(r.CapacityRange),
		Status:                statusLabel(r.Status),
		CreatedAt:             r.CreatedAt,
		DecidedAt:             r.DecidedAt,
	}
	if r.UserID != nil {
		id := r.UserID.String()
		resp.UserID = &id
	}
	return resp
}

func toRegistrationList(regs []domain.Registration) []registrationResponse {
	out := make([]registrationResponse, 0, len(regs))
	for i := range regs {
		out = append(out, toRegistrationResponse(&regs[i]))
	}
	return out
}

type managedUserResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	InvestorStatus string     `json:"investorStatus"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastSignInAt   *time.Time `json:"lastSignInAt,omitempty"`
}

type statusThunk = func() (domain.InvestorStatus, error)

// queueUserStatuses queues one status lookup per user. Nothing is fetched
// until the first thunk is called.
func queueUserStatuses(ctx context.Context, users []domain.ManagedUser) []statusThunk {
	thunks := make([]statusThunk, len(users))
	for i := range users {
		thunks[i] = dataloader.StatusOf(ctx, users[i].ID)
	}
	return thunks
}

func toManagedUserList(users []domain.ManagedUser, statuses []statusThunk) ([]managedUserResponse, error) {
	out := make([]managedUserResponse, 0, len(users))
	for i, u := range users {
		status, err := statuses[i]()
		if err != nil {
			return nil, err
		}
		out = append(out, managedUserResponse{
			ID:             u.ID.String(),
			Email:          u.Email,
			Role:           u.Role.String(),
			InvestorStatus: statusLabel(status),
			CreatedAt:      u.CreatedAt,
			LastSignInAt:   u.LastSignInAt,
		})
	}
	return out, nil
}

type listStateResponse[T any] struct {
	Loading bool   `json:"loading"`
	Loaded  bool   `json:"loaded"`
	Count   int    `json:"count"`
	Error   string `json:"error,omitempty"`
	Items   []T    `json:"items"`
}

type dashboardResponse struct {
	Pending       listStateResponse[registrationResponse] `json:"pending"`
	Users         listStateResponse[managedUserResponse]  `json:"users"`
	Mutating      bool                                    `json:"mutating"`
	MutationError string                                  `json:"mutationError,omitempty"`
}

func toListState[T, V any](s admin.ListState[T], items []V) listStateResponse[V] {
	return listStateResponse[V]{
		Loading: s.Loading,
		Loaded:  s.Loaded,
		Count:   len(s.Items),
		Error:   domain.UserMessage(s.Err),
		Items:   nonNil(items),
	}
}

// toDashboardResponse shows each pending applicant's latest status next to
// the user list's statuses. Both lists go through the request's loader, so
// an applicant who also appears in the user list is fetched once.
func toDashboardResponse(ctx context.Context, s admin.DashboardSnapshot) (dashboardResponse, error) {
	applicants := make([]statusThunk, len(s.Pending.Items))
	for i, reg := range s.Pending.Items {
		if reg.UserID != nil {
			applicants[i] = dataloader.StatusOf(ctx, *reg.UserID)
		}
	}
	userStatuses := queueUserStatuses(ctx, s.Users.Items)

	pending := toRegistrationList(s.Pending.Items)
	for i, thunk := range applicants {
		if thunk == nil {
			continue
		}
		status, err := thunk()
		if err != nil {
			return dashboardResponse{}, err
		}
		pending[i].LatestStatus = statusLabel(status)
	}

	users, err := toManagedUserList(s.Users.Items, userStatuses)
	if err != nil {
		return dashboardResponse{}, err
	}

	return dashboardResponse{
		Pending:       toListState(s.Pending, pending),
		Users:         toListState(s.Users, users),
		Mutating:      s.Mutating,
		MutationError: domain.UserMessage(s.MutationErr),
	}, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"estate_portal_backend/internal/admin/repository"
	"estate_portal_backend/internal/admin/transport"
	propsvc "estate_portal_backend/internal/properties/service"
	"estate_portal_backend/platform/logger"
)

const recentEntryCount = 5

// Service implements the admin read endpoints.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates the admin service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ListUsers runs the paginated user search.
func (s *Service) ListUsers(ctx context.Context, q transport.ListUsersQuery) (transport.UsersResponse, error) {
	page, limit := propsvc.NormalizePage(q.Page, q.Limit)

	users, total, err := s.repo.SearchUsers(ctx, repository.UserSearch{
		Search: strings.TrimSpace(q.Search),
		Role:   q.Role,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return transport.UsersResponse{}, err
	}

	return transport.UsersResponse{
		Users:       toUserResponses(users),
		TotalPages:  propsvc.TotalPages(total, limit),
		CurrentPage: page,
		Total:       total,
	}, nil
}

// Dashboard gathers the overview counts. The aggregates are independent
// reads, so they run concurrently.
func (s *Service) Dashboard(ctx context.Context) (transport.DashboardResponse, error) {
	var resp transport.DashboardResponse
	var recentUsers []repository.User
	var recentProps []repository.PropertySummary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resp.TotalUsers, err = s.repo.CountUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		resp.TotalProperties, err = s.repo.CountProperties(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		resp.ApprovedProperties, err = s.repo.CountPropertiesByApproval(gctx, true)
		return err
	})
	g.Go(func() error {
		var err error
		resp.PendingProperties, err = s.repo.CountPropertiesByApproval(gctx, false)
		return err
	})
	g.Go(func() error {
		var err error
		resp.TotalLikes, err = s.repo.CountLikes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		recentUsers, err = s.repo.RecentUsers(gctx, recentEntryCount)
		return err
	})
	g.Go(func() error {
		var err error
		recentProps, err = s.repo.RecentProperties(gctx, recentEntryCount)
		return err
	})

	if err := g.Wait(); err != nil {
		return transport.DashboardResponse{}, err
	}

	resp.RecentUsers = toUserResponses(recentUsers)
	resp.RecentProperties = toPropertySummaries(recentProps)
	return resp, nil
}

func toPropertySummaries(props []repository.PropertySummary) []transport.PropertySummaryResponse {
	out := make([]transport.PropertySummaryResponse, 0, len(props))
	for _, p := range props {
		out = append(out, transport.PropertySummaryResponse{
			ID:        p.ID.String(),
			Title:     p.Title,
			City:      p.City,
			Price:     p.Price,
			Approved:  p.Approved,
			Status:    p.Status,
			OwnerName: p.OwnerName,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

func toUserResponses(users []repository.User) []transport.UserResponse {
	out := make([]transport.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, transport.UserResponse{
			ID:           u.ID.String(),
			Name:         u.Name,
			Email:        u.Email,
			Role:         u.Role,
			Phone:        u.Phone,
			Address:      u.Address,
			ProfileImage: u.ProfileImage,
			CreatedAt:    u.CreatedAt.Format(time.RFC3339),
			UpdatedAt:    u.UpdatedAt.Format(time.RFC3339),
		})
	}
	return out
}

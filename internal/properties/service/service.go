package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"estate_portal_backend/internal/adapters/storage"
	"estate_portal_backend/internal/properties/cache"
	"estate_portal_backend/internal/properties/repository"
	"estate_portal_backend/internal/properties/transport"
	"estate_portal_backend/platform/apperr"
	"estate_portal_backend/platform/logger"
	"estate_portal_backend/platform/sanitize"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// Service implements property listing, liking and moderation.
type Service struct {
	repo    repository.Repository
	storage storage.StorageService
	bucket  string
	likes   *cache.LikesCache
	log     *logger.Logger
}

// New creates the properties service. storageSvc and likes may be nil when
// the corresponding backend is not configured.
func New(repo repository.Repository, storageSvc storage.StorageService, bucket string, likes *cache.LikesCache, log *logger.Logger) *Service {
	return &Service{repo: repo, storage: storageSvc, bucket: bucket, likes: likes, log: log}
}

// parseFilters validates the raw browse filters. Absent parameters
// contribute nothing; malformed numeric parameters are rejected rather than
// coerced to zero.
func parseFilters(q transport.ListPropertiesQuery) (repository.ListFilters, error) {
	filters := repository.ListFilters{
		City: strings.TrimSpace(q.City),
		Type: strings.TrimSpace(q.Type),
	}

	if q.MinPrice != "" {
		v, err := strconv.ParseInt(q.MinPrice, 10, 64)
		if err != nil {
			return repository.ListFilters{}, apperr.Validation("minPrice must be a number")
		}
		filters.MinPrice = &v
	}
	if q.MaxPrice != "" {
		v, err := strconv.ParseInt(q.MaxPrice, 10, 64)
		if err != nil {
			return repository.ListFilters{}, apperr.Validation("maxPrice must be a number")
		}
		filters.MaxPrice = &v
	}
	if q.Bedrooms != "" {
		v, err := strconv.Atoi(q.Bedrooms)
		if err != nil {
			return repository.ListFilters{}, apperr.Validation("bedrooms must be a number")
		}
		filters.Bedrooms = &v
	}

	return filters, nil
}

// List returns the shaped properties visible to the scope.
func (s *Service) List(ctx context.Context, q transport.ListPropertiesQuery, scope repository.Scope) ([]transport.PropertyResponse, error) {
	filters, err := parseFilters(q)
	if err != nil {
		return nil, err
	}

	props, err := s.repo.List(ctx, filters, scope)
	if err != nil {
		return nil, err
	}
	return s.shapeAll(props), nil
}

// Get returns one shaped property visible to the scope.
func (s *Service) Get(ctx context.Context, id uuid.UUID, scope repository.Scope) (transport.PropertyResponse, error) {
	prop, err := s.repo.GetByID(ctx, id, scope)
	if err != nil {
		return transport.PropertyResponse{}, err
	}
	return s.shape(prop), nil
}

// Create lists a new property for the owner. New listings start unapproved
// and wait for moderation.
func (s *Service) Create(ctx context.Context, req transport.CreatePropertyRequest, ownerID uuid.UUID) (transport.PropertyResponse, error) {
	params := repository.CreatePropertyParams{
		Title:        sanitize.Text(req.Title),
		Description:  sanitize.Text(req.Description),
		Price:        req.Price,
		Type:         req.Type,
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Area:         req.Area,
		Furnished:    req.Furnished,
		City:         sanitize.Text(req.City),
		District:     sanitize.Text(req.District),
		Address:      sanitize.Text(req.Address),
		Lat:          req.Lat,
		Lng:          req.Lng,
		Images:       req.Images,
		Amenities:    req.Amenities,
		Status:       "pending",
		OwnerID:      ownerID,
	}
	if params.Images == nil {
		params.Images = []string{}
	}
	if params.Amenities == nil {
		params.Amenities = []string{}
	}

	prop, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.PropertyResponse{}, err
	}

	s.log.Info("property created",
		"property_id", prop.ID.String(),
		"owner_id", ownerID.String(),
		"city", prop.City,
	)
	return s.shape(prop), nil
}

// GenerateUploadURL validates the file and returns a presigned upload slot.
// Images are keyed under the uploading owner's ID.
func (s *Service) GenerateUploadURL(ctx context.Context, req transport.UploadURLRequest, ownerID uuid.UUID) (transport.UploadURLResponse, error) {
	if s.storage == nil {
		return transport.UploadURLResponse{}, apperr.BadRequest("image uploads are not enabled")
	}
	if err := s.storage.ValidateContentType(req.ContentType); err != nil {
		return transport.UploadURLResponse{}, apperr.Validation(err.Error())
	}
	if err := s.storage.ValidateFileSize(req.FileSize); err != nil {
		return transport.UploadURLResponse{}, apperr.Validation(err.Error())
	}

	presigned, err := s.storage.GenerateUploadURL(ctx, s.bucket, ownerID.String(), req.FileName, req.ContentType, req.FileSize)
	if err != nil {
		return transport.UploadURLResponse{}, fmt.Errorf("generate upload url: %w", err)
	}

	return transport.UploadURLResponse{
		UploadURL: presigned.URL,
		FileKey:   presigned.FileKey,
		ExpiresAt: presigned.ExpiresAt.Format(time.RFC3339),
	}, nil
}

// ToggleLike flips the viewer's like on a property and reports the new
// state.
func (s *Service) ToggleLike(ctx context.Context, userID, propertyID uuid.UUID) (transport.ToggleLikeResponse, error) {
	exists, err := s.repo.Exists(ctx, propertyID)
	if err != nil {
		return transport.ToggleLikeResponse{}, err
	}
	if !exists {
		return transport.ToggleLikeResponse{}, apperr.NotFound("Property not found")
	}

	liked, err := s.repo.ToggleLike(ctx, userID, propertyID)
	if err != nil {
		return transport.ToggleLikeResponse{}, err
	}

	if err := s.likes.Invalidate(ctx, propertyID); err != nil {
		s.log.Warn("likes cache invalidation failed", "property_id", propertyID.String(), "error", err)
	}

	msg := "Property unliked"
	if liked {
		msg = "Property liked"
	}
	return transport.ToggleLikeResponse{Message: msg, Liked: liked}, nil
}

// ListLikes returns who liked a property. The payload is viewer-independent
// and therefore cacheable.
func (s *Service) ListLikes(ctx context.Context, propertyID uuid.UUID) (transport.LikesResponse, error) {
	var cached transport.LikesResponse
	if s.likes.Get(ctx, propertyID, &cached) {
		return cached, nil
	}

	exists, err := s.repo.Exists(ctx, propertyID)
	if err != nil {
		return transport.LikesResponse{}, err
	}
	if !exists {
		return transport.LikesResponse{}, apperr.NotFound("Property not found")
	}

	likers, err := s.repo.ListLikers(ctx, propertyID)
	if err != nil {
		return transport.LikesResponse{}, err
	}

	resp := transport.LikesResponse{Count: len(likers), Users: make([]transport.OwnerResponse, 0, len(likers))}
	for _, l := range likers {
		resp.Users = append(resp.Users, transport.OwnerResponse{Name: l.Name, Email: l.Email})
	}

	if err := s.likes.Set(ctx, propertyID, resp); err != nil {
		s.log.Warn("likes cache write failed", "property_id", propertyID.String(), "error", err)
	}
	return resp, nil
}

// ListLiked returns the properties the user has liked, newest like first.
func (s *Service) ListLiked(ctx context.Context, userID uuid.UUID) ([]transport.PropertyResponse, error) {
	props, err := s.repo.ListLikedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.shapeAll(props), nil
}

// AdminList runs the paginated moderation listing.
func (s *Service) AdminList(ctx context.Context, q transport.AdminListQuery) (transport.AdminPropertiesResponse, error) {
	page, limit := NormalizePage(q.Page, q.Limit)

	props, total, err := s.repo.SearchPage(ctx, repository.AdminSearch{
		Search: strings.TrimSpace(q.Search),
		Status: q.Status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}, repository.Scope{Admin: true})
	if err != nil {
		return transport.AdminPropertiesResponse{}, err
	}

	return transport.AdminPropertiesResponse{
		Properties:  s.shapeAll(props),
		TotalPages:  TotalPages(total, limit),
		CurrentPage: page,
		Total:       total,
	}, nil
}

// Approve marks a property approved and returns the shaped result.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (transport.PropertyResponse, error) {
	prop, err := s.repo.Approve(ctx, id)
	if err != nil {
		return transport.PropertyResponse{}, err
	}
	s.log.Info("property approved", "property_id", id.String())
	return s.shape(prop), nil
}

// Reject deletes a property. Its likes go with it via the foreign keys.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.likes.Invalidate(ctx, id); err != nil {
		s.log.Warn("likes cache invalidation failed", "property_id", id.String(), "error", err)
	}
	s.log.Info("property rejected", "property_id", id.String())
	return nil
}

// NormalizePage clamps page and limit to sane bounds.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// TotalPages computes ceil(total / limit).
func TotalPages(total, limit int) int {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func (s *Service) shapeAll(props []repository.Property) []transport.PropertyResponse {
	out := make([]transport.PropertyResponse, 0, len(props))
	for _, p := range props {
		out = append(out, s.shape(p))
	}
	return out
}

// shape builds the wire representation of a property. The stored record is
// never mutated; relative image keys are rewritten to absolute URLs and the
// viewer's like flag rides along from the query scope.
func (s *Service) shape(p repository.Property) transport.PropertyResponse {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, s.imageURL(img))
	}

	amenities := p.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return transport.PropertyResponse{
		ID:           p.ID.String(),
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		Type:         p.Type,
		PropertyType: p.PropertyType,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Area:         p.Area,
		Furnished:    p.Furnished,
		City:         p.City,
		District:     p.District,
		Address:      p.Address,
		Lat:          p.Lat,
		Lng:          p.Lng,
		Images:       images,
		Amenities:    amenities,
		Approved:     p.Approved,
		Status:       p.Status,
		Featured:     p.Featured,
		Owner:        transport.OwnerResponse{Name: p.OwnerName, Email: p.OwnerEmail},
		IsLiked:      p.LikedByViewer,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *Service) imageURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if s.storage == nil {
		return path
	}
	return s.storage.PublicURL(s.bucket, path)
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"estate_portal_backend/internal/adapters/storage"
	"estate_portal_backend/internal/properties/repository"
	"estate_portal_backend/internal/properties/transport"
	"estate_portal_backend/platform/apperr"
	"estate_portal_backend/platform/logger"
)

type likeKey struct {
	user     uuid.UUID
	property uuid.UUID
}

// fakeRepo backs the like relation with a single in-memory set, the same
// shape the relation table has in the real schema.
type fakeRepo struct {
	properties map[uuid.UUID]repository.Property
	likes      map[likeKey]bool
	lastScope  repository.Scope
	lastSearch repository.AdminSearch
	total      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		properties: make(map[uuid.UUID]repository.Property),
		likes:      make(map[likeKey]bool),
	}
}

func (f *fakeRepo) List(_ context.Context, _ repository.ListFilters, scope repository.Scope) ([]repository.Property, error) {
	f.lastScope = scope
	out := []repository.Property{}
	for _, p := range f.properties {
		if !scope.Admin && !p.Approved {
			if scope.ViewerID == nil || p.OwnerID != *scope.ViewerID {
				continue
			}
		}
		if scope.ViewerID != nil {
			p.LikedByViewer = f.likes[likeKey{*scope.ViewerID, p.ID}]
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID, scope repository.Scope) (repository.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return repository.Property{}, apperr.NotFound("Property not found")
	}
	if !scope.Admin && !p.Approved {
		if scope.ViewerID == nil || p.OwnerID != *scope.ViewerID {
			return repository.Property{}, apperr.NotFound("Property not found")
		}
	}
	if scope.ViewerID != nil {
		p.LikedByViewer = f.likes[likeKey{*scope.ViewerID, p.ID}]
	}
	return p, nil
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreatePropertyParams) (repository.Property, error) {
	p := repository.Property{
		ID:      uuid.New(),
		Title:   params.Title,
		Price:   params.Price,
		City:    params.City,
		Images:  params.Images,
		Status:  params.Status,
		OwnerID: params.OwnerID,
	}
	f.properties[p.ID] = p
	return p, nil
}

func (f *fakeRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.properties[id]
	return ok, nil
}

func (f *fakeRepo) SearchPage(_ context.Context, params repository.AdminSearch, scope repository.Scope) ([]repository.Property, int, error) {
	f.lastSearch = params
	f.lastScope = scope
	remaining := f.total - params.Offset
	if remaining < 0 {
		remaining = 0
	}
	if remaining > params.Limit {
		remaining = params.Limit
	}
	page := make([]repository.Property, remaining)
	return page, f.total, nil
}

func (f *fakeRepo) Approve(_ context.Context, id uuid.UUID) (repository.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return repository.Property{}, apperr.NotFound("Property not found")
	}
	p.Approved = true
	p.Status = "approved"
	f.properties[id] = p
	return p, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.properties[id]; !ok {
		return apperr.NotFound("Property not found")
	}
	delete(f.properties, id)
	for k := range f.likes {
		if k.property == id {
			delete(f.likes, k)
		}
	}
	return nil
}

func (f *fakeRepo) ToggleLike(_ context.Context, userID, propertyID uuid.UUID) (bool, error) {
	k := likeKey{userID, propertyID}
	if f.likes[k] {
		delete(f.likes, k)
		return false, nil
	}
	f.likes[k] = true
	return true, nil
}

func (f *fakeRepo) ListLikers(_ context.Context, propertyID uuid.UUID) ([]repository.Liker, error) {
	out := []repository.Liker{}
	for k := range f.likes {
		if k.property == propertyID {
			out = append(out, repository.Liker{Name: "user-" + k.user.String()[:8], Email: k.user.String()[:8] + "@example.com"})
		}
	}
	return out, nil
}

func (f *fakeRepo) ListLikedByUser(_ context.Context, userID uuid.UUID) ([]repository.Property, error) {
	out := []repository.Property{}
	for k := range f.likes {
		if k.user == userID {
			p := f.properties[k.property]
			p.LikedByViewer = true
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) IsLiked(_ context.Context, userID, propertyID uuid.UUID) (bool, error) {
	return f.likes[likeKey{userID, propertyID}], nil
}

var _ repository.Repository = (*fakeRepo)(nil)

type fakeStorage struct{}

func (fakeStorage) GenerateUploadURL(_ context.Context, bucket, folder, fileName, _ string, _ int64) (*storage.PresignedURL, error) {
	return &storage.PresignedURL{URL: "https://minio.test/" + bucket + "/" + folder + "/" + fileName, FileKey: folder + "/" + fileName}, nil
}

func (fakeStorage) PublicURL(bucket, fileKey string) string {
	return "https://cdn.test/" + bucket + "/" + fileKey
}

func (fakeStorage) DeleteObject(context.Context, string, string) error     { return nil }
func (fakeStorage) EnsureBucketExists(context.Context, string) error      { return nil }
func (fakeStorage) ValidateContentType(string) error                      { return nil }
func (fakeStorage) ValidateFileSize(int64) error                          { return nil }

func newTestService(repo *fakeRepo) *Service {
	return New(repo, fakeStorage{}, "property-images", nil, logger.New("development"))
}

func TestToggleLike_DoubleToggleRestoresOriginalState(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	owner := uuid.New()
	viewer := uuid.New()
	prop, err := svc.Create(ctx, transport.CreatePropertyRequest{Title: "Flat", Price: 1000, City: "Austin"}, owner)
	if err != nil {
		t.Fatalf("create property: %v", err)
	}
	propID := uuid.MustParse(prop.ID)

	first, err := svc.ToggleLike(ctx, viewer, propID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !first.Liked {
		t.Fatalf("expected first toggle to like, got liked=%v", first.Liked)
	}

	liked, err := repo.IsLiked(ctx, viewer, propID)
	if err != nil || !liked {
		t.Fatalf("expected relation present after like, got liked=%v err=%v", liked, err)
	}

	second, err := svc.ToggleLike(ctx, viewer, propID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.Liked {
		t.Fatalf("expected second toggle to unlike, got liked=%v", second.Liked)
	}

	liked, err = repo.IsLiked(ctx, viewer, propID)
	if err != nil || liked {
		t.Fatalf("expected relation absent after unlike, got liked=%v err=%v", liked, err)
	}
}

func TestToggleLike_BothViewsStayConsistent(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	owner := uuid.New()
	viewer := uuid.New()
	prop, err := svc.Create(ctx, transport.CreatePropertyRequest{Title: "House", Price: 2000, City: "Dallas"}, owner)
	if err != nil {
		t.Fatalf("create property: %v", err)
	}
	propID := uuid.MustParse(prop.ID)

	if _, err := svc.ToggleLike(ctx, viewer, propID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	likes, err := svc.ListLikes(ctx, propID)
	if err != nil {
		t.Fatalf("list likes: %v", err)
	}
	if likes.Count != 1 || len(likes.Users) != 1 {
		t.Fatalf("expected one liker, got count=%d users=%d", likes.Count, len(likes.Users))
	}

	likedProps, err := svc.ListLiked(ctx, viewer)
	if err != nil {
		t.Fatalf("list liked: %v", err)
	}
	if len(likedProps) != 1 {
		t.Fatalf("expected one liked property, got %d", len(likedProps))
	}
	if !likedProps[0].IsLiked {
		t.Fatalf("expected isLiked=true on liked listing")
	}

	if _, err := svc.ToggleLike(ctx, viewer, propID); err != nil {
		t.Fatalf("untoggle: %v", err)
	}
	likes, err = svc.ListLikes(ctx, propID)
	if err != nil {
		t.Fatalf("list likes after unlike: %v", err)
	}
	if likes.Count != 0 {
		t.Fatalf("expected zero likers after unlike, got %d", likes.Count)
	}
}

func TestToggleLike_MissingPropertyIsNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.ToggleLike(context.Background(), uuid.New(), uuid.New())
	if err == nil {
		t.Fatalf("expected error for missing property")
	}
	var domainErr *apperr.Error
	if !errors.As(err, &domainErr) || domainErr.Kind != apperr.KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestList_RejectsNonNumericFilters(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	for _, q := range []transport.ListPropertiesQuery{
		{MinPrice: "cheap"},
		{MaxPrice: "12x"},
		{Bedrooms: "many"},
	} {
		_, err := svc.List(ctx, q, repository.Scope{})
		if err == nil {
			t.Fatalf("expected validation error for %+v", q)
		}
		var domainErr *apperr.Error
		if !errors.As(err, &domainErr) || domainErr.Kind != apperr.KindValidation {
			t.Fatalf("expected Validation error for %+v, got %v", q, err)
		}
	}
}

func TestList_AbsentFiltersContributeNothing(t *testing.T) {
	filters, err := parseFilters(transport.ListPropertiesQuery{City: "  Austin "})
	if err != nil {
		t.Fatalf("parse filters: %v", err)
	}
	if filters.City != "Austin" {
		t.Fatalf("expected trimmed city, got %q", filters.City)
	}
	if filters.MinPrice != nil || filters.MaxPrice != nil || filters.Bedrooms != nil {
		t.Fatalf("expected absent numeric filters to stay nil: %+v", filters)
	}
}

func TestShape_RewritesRelativeImagePaths(t *testing.T) {
	svc := newTestService(newFakeRepo())

	shaped := svc.shape(repository.Property{
		ID:     uuid.New(),
		Images: []string{"abc/photo.jpg", "https://elsewhere.test/pic.png"},
	})

	if shaped.Images[0] != "https://cdn.test/property-images/abc/photo.jpg" {
		t.Fatalf("expected relative key rewritten, got %q", shaped.Images[0])
	}
	if shaped.Images[1] != "https://elsewhere.test/pic.png" {
		t.Fatalf("expected absolute URL untouched, got %q", shaped.Images[1])
	}
}

func TestAdminList_PaginationArithmetic(t *testing.T) {
	repo := newFakeRepo()
	repo.total = 23
	svc := newTestService(repo)

	resp, err := svc.AdminList(context.Background(), transport.AdminListQuery{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if resp.TotalPages != 3 {
		t.Fatalf("expected 3 total pages for 23/10, got %d", resp.TotalPages)
	}
	if resp.CurrentPage != 3 {
		t.Fatalf("expected current page 3, got %d", resp.CurrentPage)
	}
	if resp.Total != 23 {
		t.Fatalf("expected total 23, got %d", resp.Total)
	}
	if len(resp.Properties) != 3 {
		t.Fatalf("expected 3 records on page 3, got %d", len(resp.Properties))
	}
	if repo.lastSearch.Offset != 20 {
		t.Fatalf("expected offset 20 for page 3, got %d", repo.lastSearch.Offset)
	}
	if !repo.lastScope.Admin {
		t.Fatalf("expected admin scope on moderation listing")
	}
}

func TestNormalizePage_ClampsBounds(t *testing.T) {
	page, limit := NormalizePage(0, 0)
	if page != 1 || limit != 10 {
		t.Fatalf("expected defaults (1,10), got (%d,%d)", page, limit)
	}
	page, limit = NormalizePage(-2, 1000)
	if page != 1 || limit != 100 {
		t.Fatalf("expected clamped (1,100), got (%d,%d)", page, limit)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{23, 10, 3},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Fatalf("TotalPages(%d,%d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

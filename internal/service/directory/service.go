package directory

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/healthline/voice-agent/internal/model"
	"github.com/healthline/voice-agent/internal/repository"
	"github.com/healthline/voice-agent/pkg/errors"
)

const cacheKey = "doctor_directory"

// Service answers doctor lookups. Reads go through a short-TTL cache since
// get_doctors_list is the hot path during a live call; booking invalidates
// the cache after every directory rewrite.
type Service struct {
	repo  repository.DirectoryRepository
	cache *gocache.Cache
}

func NewService(repo repository.DirectoryRepository, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Second
	}
	return &Service{
		repo:  repo,
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// NormalizeSpecialist converts a spoken specialist label into its directory
// key: lowercase with each space replaced by an underscore. Runs of spaces
// are kept as-is, so "General  Physician" becomes "general__physician" and
// misses the key; a miss is the signal that the label was dictated badly.
func NormalizeSpecialist(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// ListDoctors returns every doctor under the given specialist label. The
// listing echoes the caller's original label, not the normalized key.
func (s *Service) ListDoctors(ctx context.Context, specialist string) (*model.DoctorListing, error) {
	dir, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	doctors, ok := dir[NormalizeSpecialist(specialist)]
	if !ok {
		return nil, errors.NotFoundf("No doctors found for specialization '%s'.", specialist)
	}

	return &model.DoctorListing{
		Specialization: specialist,
		Doctors:        doctors,
	}, nil
}

// Invalidate drops the cached directory so the next lookup reloads it.
func (s *Service) Invalidate() {
	s.cache.Delete(cacheKey)
}

func (s *Service) load(ctx context.Context) (model.Directory, error) {
	if v, ok := s.cache.Get(cacheKey); ok {
		return v.(model.Directory), nil
	}

	dir, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cacheKey, dir, gocache.DefaultExpiration)
	return dir, nil
}

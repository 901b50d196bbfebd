package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gobudget/internal/domain"
)

const sharedCatalogCacheKey = "catalog:shared:v1"

// CatalogResolver builds the per-request two-tier catalog. The shared
// defaults are read through the cache; owner entities always come from
// storage.
type CatalogResolver struct {
	typeRepo     TransactionTypeRepository
	categoryRepo CategoryRepository
	cache        Cache
	ttl          time.Duration
	logger       zerolog.Logger
}

// NewCatalogResolver creates a new CatalogResolver. cache may be nil.
func NewCatalogResolver(
	typeRepo TransactionTypeRepository,
	categoryRepo CategoryRepository,
	cache Cache,
	ttl time.Duration,
	logger zerolog.Logger,
) *CatalogResolver {
	if ttl <= 0 {
		ttl = DefaultCatalogCacheTTL
	}

	return &CatalogResolver{
		typeRepo:     typeRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		ttl:          ttl,
		logger:       logger,
	}
}

// Resolve returns the catalog visible to ownerID.
func (r *CatalogResolver) Resolve(ctx context.Context, ownerID string) (*domain.Catalog, error) {
	shared, err := r.shared(ctx)
	if err != nil {
		return nil, err
	}

	ownTypes, err := r.typeRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ownCategories, err := r.categoryRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	types := append(shared.types(), ownTypes...)
	categories := append(shared.categories(), ownCategories...)

	return domain.NewCatalog(ownerID, types, categories), nil
}

func (r *CatalogResolver) shared(ctx context.Context) (*sharedCatalog, error) {
	if r.cache != nil {
		if data, err := r.cache.Get(ctx, sharedCatalogCacheKey); err == nil && len(data) > 0 {
			var snap sharedCatalog
			if err := json.Unmarshal(data, &snap); err == nil {
				return &snap, nil
			}
			r.logger.Warn().Msg("discarding undecodable shared catalog cache entry")
		}
	}

	types, err := r.typeRepo.ListShared(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := r.categoryRepo.ListShared(ctx)
	if err != nil {
		return nil, err
	}

	snap := newSharedCatalog(types, categories)

	if r.cache != nil {
		data, err := json.Marshal(snap)
		if err == nil {
			err = r.cache.Set(ctx, sharedCatalogCacheKey, data, r.ttl)
		}
		if err != nil {
			r.logger.Warn().Err(err).Msg("failed to cache shared catalog")
		}
	}

	return snap, nil
}

// sharedCatalog is the cached form of the shared default types and categories.
type sharedCatalog struct {
	Types      []sharedType     `json:"types"`
	Categories []sharedCategory `json:"categories"`
}

type sharedType struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Kind domain.TypeKind `json:"kind"`
}

type sharedCategory struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	TypeID string `json:"type_id"`
}

func newSharedCatalog(types []*domain.TransactionType, categories []*domain.Category) *sharedCatalog {
	snap := &sharedCatalog{
		Types:      make([]sharedType, 0, len(types)),
		Categories: make([]sharedCategory, 0, len(categories)),
	}

	for _, t := range types {
		snap.Types = append(snap.Types, sharedType{ID: t.ID, Name: t.Name, Kind: t.Kind})
	}
	for _, c := range categories {
		snap.Categories = append(snap.Categories, sharedCategory{ID: c.ID, Name: c.Name, TypeID: c.TypeID})
	}

	return snap
}

func (s *sharedCatalog) types() []*domain.TransactionType {
	out := make([]*domain.TransactionType, 0, len(s.Types))
	for _, t := range s.Types {
		out = append(out, &domain.TransactionType{ID: t.ID, Name: t.Name, Kind: t.Kind})
	}
	return out
}

func (s *sharedCatalog) categories() []*domain.Category {
	out := make([]*domain.Category, 0, len(s.Categories))
	for _, c := range s.Categories {
		out = append(out, &domain.Category{ID: c.ID, Name: c.Name, TypeID: c.TypeID})
	}
	return out
}

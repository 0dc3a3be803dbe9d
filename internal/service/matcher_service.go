package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"profile-match-be/internal/config"
	"profile-match-be/internal/dto"
	"profile-match-be/internal/entity"
	"profile-match-be/internal/pkg/logger"
	"profile-match-be/internal/pkg/serverutils"
	"profile-match-be/internal/repository/contract"
	"profile-match-be/internal/repository/memory"
	"profile-match-be/pkg/embedding"
	"profile-match-be/pkg/enrich"
	"profile-match-be/pkg/events"
	enginenats "profile-match-be/pkg/nats"
	"profile-match-be/pkg/profiletext"
	"profile-match-be/pkg/scoring"
	"profile-match-be/pkg/vectorindex"

	gocache "github.com/patrickmn/go-cache"
)

const (
	ScopeUsers    = "users"
	ScopeNetworks = "networks"

	// searchOverfetch widens each nearest-neighbor query so that the self
	// profile and stale index entries can be dropped without starving the
	// result list.
	searchOverfetch = 5

	logModule = "MatcherService"
)

type IMatcherService interface {
	Health(ctx context.Context) *dto.HealthResponse
	AddUser(ctx context.Context, request *dto.AddUserRequest) (*dto.AddUserResponse, error)
	AddNetwork(ctx context.Context, request *dto.AddNetworkRequest) (*dto.AddNetworkResponse, error)
	PopulateUsers(ctx context.Context) (*dto.PopulateUsersResponse, error)
	Recommend(ctx context.Context, request *dto.RecommendRequest) (*dto.RecommendResponse, error)
	RecommendForUser(ctx context.Context, userId int64, topN int, networkFilter string) (*dto.RecommendResponse, error)
	ListUsers(ctx context.Context) map[string]*entity.Profile
	DeleteUser(ctx context.Context, userId int64) error
	SaveIndices(ctx context.Context) error
}

type matcherService struct {
	cfg              *config.Config
	userStore        *memory.MappingStore
	networkStore     *memory.MappingStore
	index            vectorindex.Client
	embedder         *embedding.Generator
	enricher         enrich.Enricher
	scorer           *scoring.Scorer
	memberRepo       contract.MemberRepository
	publisherService IPublisherService
	eventPublisher   *enginenats.Publisher
	queryCache       *gocache.Cache
	logger           logger.ILogger
}

func NewMatcherService(
	cfg *config.Config,
	userStore *memory.MappingStore,
	networkStore *memory.MappingStore,
	index vectorindex.Client,
	embedder *embedding.Generator,
	enricher enrich.Enricher,
	scorer *scoring.Scorer,
	memberRepo contract.MemberRepository,
	publisherService IPublisherService,
	eventPublisher *enginenats.Publisher,
	log logger.ILogger,
) IMatcherService {
	return &matcherService{
		cfg:              cfg,
		userStore:        userStore,
		networkStore:     networkStore,
		index:            index,
		embedder:         embedder,
		enricher:         enricher,
		scorer:           scorer,
		memberRepo:       memberRepo,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		queryCache:       gocache.New(time.Hour, 10*time.Minute),
		logger:           log,
	}
}

func (ms *matcherService) Health(_ context.Context) *dto.HealthResponse {
	return &dto.HealthResponse{
		Status:       "ok",
		UserCount:    ms.userStore.Count(),
		NetworkCount: ms.networkStore.Count(),
	}
}

func (ms *matcherService) AddUser(ctx context.Context, request *dto.AddUserRequest) (*dto.AddUserResponse, error) {
	profile := &entity.Profile{
		SourceId:    request.SourceId,
		Name:        request.Name,
		Email:       request.Email,
		Description: request.Description,
		Interests:   request.Interests,
		Skills:      request.Skills,
		Profession:  request.Profession,
		Location:    request.Location,
	}

	id := ms.ingest(ctx, ScopeUsers, ms.userStore, ms.cfg.Index.UserCollection, profile)

	return &dto.AddUserResponse{
		UserId:     id,
		Skills:     profile.Skills,
		Profession: profile.Profession,
	}, nil
}

func (ms *matcherService) AddNetwork(ctx context.Context, request *dto.AddNetworkRequest) (*dto.AddNetworkResponse, error) {
	profile := &entity.Profile{
		NetworkId:   request.NetworkId,
		Name:        request.Name,
		Description: request.Description,
		Interests:   request.Interests,
		Location:    request.Location,
	}

	id := ms.ingest(ctx, ScopeNetworks, ms.networkStore, ms.cfg.Index.NetworkCollection, profile)

	return &dto.AddNetworkResponse{
		Id:         id,
		Skills:     profile.Skills,
		Profession: profile.Profession,
	}, nil
}

func (ms *matcherService) PopulateUsers(ctx context.Context) (*dto.PopulateUsersResponse, error) {
	if ms.memberRepo == nil {
		return nil, serverutils.NewServiceUnavailableError("member database is not configured")
	}

	members, err := ms.memberRepo.FindActive(ctx, ms.cfg.Matching.PopulateMax)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	// Members already ingested (matched by source id) are skipped so the
	// endpoint can be re-run after new signups without duplicating profiles.
	existing := make(map[string]bool)
	for _, profile := range ms.userStore.All() {
		if profile.SourceId != "" {
			existing[profile.SourceId] = true
		}
	}

	added := 0
	for _, member := range members {
		sourceId := member.Id.String()
		if existing[sourceId] {
			continue
		}

		profile := &entity.Profile{
			SourceId:    sourceId,
			Name:        member.Name,
			Email:       member.Email,
			Description: member.Bio,
			Interests:   member.Interests,
			Location:    member.Location,
		}
		ms.ingest(ctx, ScopeUsers, ms.userStore, ms.cfg.Index.UserCollection, profile)
		added++
	}

	return &dto.PopulateUsersResponse{
		AddedCount: added,
		UserCount:  ms.userStore.Count(),
	}, nil
}

func (ms *matcherService) Recommend(ctx context.Context, request *dto.RecommendRequest) (*dto.RecommendResponse, error) {
	query := strings.TrimSpace(request.Query)

	enriched := ms.enrichQuery(ctx, query)
	queryProfile := &entity.Profile{
		Description: query,
		Skills:      enriched.Skills,
		Profession:  enriched.Profession,
	}
	queryProfile.ProfileText = profiletext.Synthesize(queryProfile)

	vector, err := ms.embedder.Embed(queryProfile.ProfileText)
	if err != nil {
		return nil, serverutils.NewServiceUnavailableError("embedding provider is unavailable")
	}

	var filter vectorindex.Filter
	if request.NetworkFilter != "" {
		filter = vectorindex.Filter{"network_id": request.NetworkFilter}
	}

	recommendations, err := ms.rank(ctx, queryProfile, vector, ms.normalizeTopN(request.TopN), filter, 0)
	if err != nil {
		return nil, err
	}

	return &dto.RecommendResponse{
		QuerySkills:     enriched.Skills,
		QueryProfession: enriched.Profession,
		Recommendations: recommendations,
	}, nil
}

func (ms *matcherService) RecommendForUser(ctx context.Context, userId int64, topN int, networkFilter string) (*dto.RecommendResponse, error) {
	stored, ok := ms.userStore.Get(userId)
	if !ok {
		return nil, serverutils.NewNotFoundError(fmt.Sprintf("user %d not found", userId))
	}

	// Re-derive attributes from the current description so a profile edited
	// since ingestion is matched on what it says now, not what it said then.
	queryProfile := &entity.Profile{
		InternalId:  stored.InternalId,
		Name:        stored.Name,
		Description: stored.Description,
		Interests:   stored.Interests,
		Skills:      stored.Skills,
		Profession:  stored.Profession,
		Location:    stored.Location,
	}
	if enriched, err := ms.enricher.Enrich(ctx, stored.Description, stored.Interests); err == nil && enriched != nil {
		if len(enriched.Skills) > 0 {
			queryProfile.Skills = enriched.Skills
		}
		if enriched.Profession != "" {
			queryProfile.Profession = enriched.Profession
		}
	}
	queryProfile.ProfileText = profiletext.Synthesize(queryProfile)

	vector, err := ms.embedder.Embed(queryProfile.ProfileText)
	if err != nil {
		return nil, serverutils.NewServiceUnavailableError("embedding provider is unavailable")
	}

	var filter vectorindex.Filter
	if networkFilter != "" {
		filter = vectorindex.Filter{"network_id": networkFilter}
	}

	recommendations, err := ms.rank(ctx, queryProfile, vector, ms.normalizeTopN(topN), filter, userId)
	if err != nil {
		return nil, err
	}

	return &dto.RecommendResponse{
		QuerySkills:     queryProfile.Skills,
		QueryProfession: queryProfile.Profession,
		Recommendations: recommendations,
	}, nil
}

func (ms *matcherService) ListUsers(_ context.Context) map[string]*entity.Profile {
	return ms.userStore.All()
}

func (ms *matcherService) DeleteUser(ctx context.Context, userId int64) error {
	if !ms.userStore.Remove(userId) {
		return serverutils.NewNotFoundError(fmt.Sprintf("user %d not found", userId))
	}

	// The mapping removal above is what makes the profile invisible: rank
	// drops hits with no mapping entry. The index delete may lag behind.
	if err := ms.index.Delete(ctx, ms.cfg.Index.UserCollection, []int64{userId - 1}); err != nil {
		ms.logger.Warn(logModule, "Failed to delete vector point", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}

	ms.publishChange(ctx, ScopeUsers, userId)
	ms.publishEvent(ctx, events.TypeProfileDeleted, map[string]interface{}{
		"scope":       ScopeUsers,
		"internal_id": userId,
	})

	return nil
}

func (ms *matcherService) SaveIndices(_ context.Context) error {
	if err := ms.userStore.Save(); err != nil {
		return fmt.Errorf("failed to save user snapshot: %w", err)
	}
	if err := ms.networkStore.Save(); err != nil {
		return fmt.Errorf("failed to save network snapshot: %w", err)
	}
	return nil
}

// ingest runs the full pipeline for one profile: enrich, synthesize, embed,
// allocate an id, write the vector, then commit the mapping entry. Embedding
// or index failure only costs searchability; the mapping entry is always
// written so the id stays stable.
func (ms *matcherService) ingest(ctx context.Context, scope string, store *memory.MappingStore, collection string, profile *entity.Profile) int64 {
	if len(profile.Skills) == 0 || profile.Profession == "" {
		if enriched, err := ms.enricher.Enrich(ctx, profile.Description, profile.Interests); err == nil && enriched != nil {
			if len(profile.Skills) == 0 {
				profile.Skills = enriched.Skills
			}
			if profile.Profession == "" {
				profile.Profession = enriched.Profession
			}
		}
	}

	profile.ProfileText = profiletext.Synthesize(profile)
	profile.AddedAt = time.Now()

	vector, embedErr := ms.embedder.Embed(profile.ProfileText)

	id := store.Allocate()
	profile.InternalId = id

	if embedErr != nil {
		ms.logger.Warn(logModule, "Embedding unavailable, profile will not be searchable", map[string]interface{}{
			"scope":       scope,
			"internal_id": id,
			"name":        profile.Name,
		})
	} else {
		point := vectorindex.Point{
			Id:      id - 1,
			Vector:  vector,
			Payload: indexPayload(profile),
		}
		if err := ms.index.Upsert(ctx, collection, []vectorindex.Point{point}); err != nil {
			ms.logger.Warn(logModule, "Failed to index profile vector", map[string]interface{}{
				"scope":       scope,
				"internal_id": id,
				"error":       err.Error(),
			})
		}
	}

	store.Put(id, profile)

	ms.publishChange(ctx, scope, id)
	ms.publishEvent(ctx, events.TypeProfileIngested, map[string]interface{}{
		"scope":       scope,
		"internal_id": id,
		"name":        profile.Name,
	})

	return id
}

// rank turns raw nearest-neighbor hits into the final recommendation list.
// Hits for the querying user and hits whose mapping entry is gone are
// dropped, which is why the search overfetches.
func (ms *matcherService) rank(ctx context.Context, queryProfile *entity.Profile, vector []float32, topN int, filter vectorindex.Filter, selfId int64) ([]*dto.RecommendationSummary, error) {
	hits, err := ms.index.Search(ctx, ms.cfg.Index.UserCollection, vector, topN+searchOverfetch, filter)
	if err != nil {
		return nil, serverutils.NewServiceUnavailableError("vector index is unavailable")
	}

	recommendations := make([]*dto.RecommendationSummary, 0, len(hits))
	for _, hit := range hits {
		candidateId := hit.Id + 1
		if candidateId == selfId {
			continue
		}
		candidate, ok := ms.userStore.Get(candidateId)
		if !ok {
			continue
		}

		score, explanation := ms.scorer.Enhance(hit.Score, queryProfile, candidate)
		recommendations = append(recommendations, &dto.RecommendationSummary{
			UserId:      candidateId,
			Name:        candidate.Name,
			Profession:  candidate.Profession,
			Skills:      candidate.Skills,
			Interests:   candidate.Interests,
			Location:    candidate.Location,
			Similarity:  hit.Score,
			Score:       score,
			Explanation: explanation,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})
	if len(recommendations) > topN {
		recommendations = recommendations[:topN]
	}
	return recommendations, nil
}

// enrichQuery caches ad hoc query enrichment; the same free-text query
// hitting the LLM twice within an hour is wasted budget.
func (ms *matcherService) enrichQuery(ctx context.Context, query string) *enrich.Result {
	if cached, found := ms.queryCache.Get(query); found {
		if result, ok := cached.(*enrich.Result); ok {
			return result
		}
	}

	result, err := ms.enricher.Enrich(ctx, query, nil)
	if err != nil || result == nil {
		result = &enrich.Result{Profession: enrich.DefaultProfession}
	}
	ms.queryCache.Set(query, result, gocache.DefaultExpiration)
	return result
}

func (ms *matcherService) normalizeTopN(topN int) int {
	if topN <= 0 {
		return ms.cfg.Matching.DefaultTopN
	}
	return topN
}

func (ms *matcherService) publishChange(ctx context.Context, scope string, internalId int64) {
	if ms.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.ProfileChangedMessage{Scope: scope, InternalId: internalId})
	if err != nil {
		return
	}
	if err := ms.publisherService.Publish(ctx, payload); err != nil {
		ms.logger.Warn(logModule, "Failed to publish profile change", map[string]interface{}{
			"scope": scope,
			"error": err.Error(),
		})
	}
}

func (ms *matcherService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if ms.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := ms.eventPublisher.Publish(ctx, event); err != nil {
		ms.logger.Warn(logModule, "Failed to publish platform event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}

// indexPayload mirrors the filterable profile fields onto the vector point.
func indexPayload(profile *entity.Profile) map[string]interface{} {
	payload := map[string]interface{}{
		"user_id":    profile.InternalId,
		"name":       profile.Name,
		"profession": profile.Profession,
		"skills":     profile.Skills,
		"interests":  profile.Interests,
		"location":   profile.Location,
	}
	if profile.SourceId != "" {
		payload["source_id"] = profile.SourceId
	}
	if profile.NetworkId != "" {
		payload["network_id"] = profile.NetworkId
	}
	return payload
}

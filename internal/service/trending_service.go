package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/talkwave/talkwave-backend/internal/domain"
	"github.com/talkwave/talkwave-backend/internal/repository"
	"github.com/talkwave/talkwave-backend/pkg/cache"
	"github.com/talkwave/talkwave-backend/pkg/logger"
)

// Base weights per qualifying activity event
var activityWeights = map[domain.ActivityKind]float64{
	domain.ActivityPost:    10.0,
	domain.ActivityComment: 5.0,
	domain.ActivityJoin:    3.0,
	domain.ActivityVote:    2.0,
}

// Trending listing bounds
const (
	TrendingDefaultLimit = 20
	TrendingMaxLimit     = 100
)

// TrendingService maintains time-decayed popularity scores for topics and
// posts from the rolling activity window. Scores are recomputed at read
// time from stored event timestamps, so results are deterministic for a
// fixed history and a fixed now.
type TrendingService struct {
	activityRepo repository.ActivityRepository
	topicRepo    repository.TopicRepository
	postRepo     repository.PostRepository
	cache        cache.Service

	halfLife time.Duration
	window   time.Duration

	// now is swappable for deterministic tests
	now func() time.Time
}

// NewTrendingService creates a new TrendingService
func NewTrendingService(
	activityRepo repository.ActivityRepository,
	topicRepo repository.TopicRepository,
	postRepo repository.PostRepository,
	cacheService cache.Service,
	halfLifeHours float64,
	windowDays int,
) *TrendingService {
	if halfLifeHours <= 0 {
		halfLifeHours = 24
	}
	if windowDays <= 0 {
		windowDays = 7
	}
	return &TrendingService{
		activityRepo: activityRepo,
		topicRepo:    topicRepo,
		postRepo:     postRepo,
		cache:        cacheService,
		halfLife:     time.Duration(halfLifeHours * float64(time.Hour)),
		window:       time.Duration(windowDays) * 24 * time.Hour,
		now:          time.Now,
	}
}

// decayFactor is monotonically decreasing in age and approaches zero:
// an event loses half its contribution every half-life.
func (s *TrendingService) decayFactor(age time.Duration) float64 {
	if age < 0 {
		age = 0
	}
	return math.Exp2(-age.Hours() / s.halfLife.Hours())
}

// ClampLimit normalizes a requested listing size. Non-positive values
// fall back to the default; oversized requests are capped.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return TrendingDefaultLimit
	}
	if limit > TrendingMaxLimit {
		return TrendingMaxLimit
	}
	return limit
}

// RecordActivity stores one qualifying event with its base weight and
// bumps the topic's last activity time. Failures are best-effort for the
// submission path: callers log and continue.
func (s *TrendingService) RecordActivity(ctx context.Context, kind domain.ActivityKind, topicID uint64, postID *uint64) error {
	weight, ok := activityWeights[kind]
	if !ok {
		return fmt.Errorf("unknown activity kind %q", kind)
	}

	at := s.now()
	event := &domain.ActivityEvent{
		TopicID:   topicID,
		PostID:    postID,
		Kind:      kind,
		Weight:    weight,
		CreatedAt: at,
	}
	if err := s.activityRepo.Record(ctx, event); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	if err := s.topicRepo.TouchActivity(topicID, at); err != nil {
		return fmt.Errorf("touch topic activity: %w", err)
	}
	return nil
}

// TrendingTopics returns topics ranked by decayed score, highest first,
// ties broken by more recent last activity.
func (s *TrendingService) TrendingTopics(ctx context.Context, limit int) ([]domain.TrendingTopicEntry, error) {
	limit = ClampLimit(limit)

	cacheKey := fmt.Sprintf("%s%d", cache.PrefixTrendingTopics, limit)
	if s.cache != nil && s.cache.IsAvailable() {
		var cached []domain.TrendingTopicEntry
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.computeTrendingTopics(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.Set(ctx, cacheKey, entries, cache.TTLTrending); err != nil {
			logger.Warn("trending cache set failed: %v", err)
		}
	}
	return entries, nil
}

func (s *TrendingService) computeTrendingTopics(ctx context.Context, limit int) ([]domain.TrendingTopicEntry, error) {
	now := s.now()
	events, err := s.activityRepo.FindSince(ctx, now.Add(-s.window))
	if err != nil {
		return nil, fmt.Errorf("load activity window: %w", err)
	}

	scores := make(map[uint64]float64)
	for _, e := range events {
		scores[e.TopicID] += e.Weight * s.decayFactor(now.Sub(e.CreatedAt))
	}

	ids := make([]uint64, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	topics, err := s.topicRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("load trending topics: %w", err)
	}

	sort.SliceStable(topics, func(i, j int) bool {
		si, sj := scores[topics[i].ID], scores[topics[j].ID]
		if si != sj {
			return si > sj
		}
		return topics[i].LastActivityAt.After(topics[j].LastActivityAt)
	})
	if len(topics) > limit {
		topics = topics[:limit]
	}

	entries := make([]domain.TrendingTopicEntry, len(topics))
	for i, t := range topics {
		entries[i] = domain.TrendingTopicEntry{
			TopicID:        t.ID,
			Name:           t.Name,
			Score:          round3(scores[t.ID]),
			LastActivityAt: t.LastActivityAt.Format(time.RFC3339),
		}
	}
	return entries, nil
}

// TrendingPosts returns posts ranked by the decayed score of their own
// events, ties broken by more recent creation. Removed and filtered posts
// never appear.
func (s *TrendingService) TrendingPosts(ctx context.Context, limit int) ([]domain.TrendingPostEntry, error) {
	limit = ClampLimit(limit)

	cacheKey := fmt.Sprintf("%s%d", cache.PrefixTrendingPosts, limit)
	if s.cache != nil && s.cache.IsAvailable() {
		var cached []domain.TrendingPostEntry
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	now := s.now()
	events, err := s.activityRepo.FindPostEventsSince(ctx, now.Add(-s.window))
	if err != nil {
		return nil, fmt.Errorf("load post activity window: %w", err)
	}

	scores := make(map[uint64]float64)
	for _, e := range events {
		scores[*e.PostID] += e.Weight * s.decayFactor(now.Sub(e.CreatedAt))
	}

	ids := make([]uint64, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	posts, err := s.postRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("load trending posts: %w", err)
	}

	visible := posts[:0]
	for _, p := range posts {
		if p.Status == domain.StatusActive {
			visible = append(visible, p)
		}
	}
	posts = visible

	sort.SliceStable(posts, func(i, j int) bool {
		si, sj := scores[posts[i].ID], scores[posts[j].ID]
		if si != sj {
			return si > sj
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	if len(posts) > limit {
		posts = posts[:limit]
	}

	entries := make([]domain.TrendingPostEntry, len(posts))
	for i, p := range posts {
		entries[i] = domain.TrendingPostEntry{
			PostID:    p.ID,
			TopicID:   p.TopicID,
			Title:     p.Title,
			Score:     round3(scores[p.ID]),
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		}
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.Set(ctx, cacheKey, entries, cache.TTLTrending); err != nil {
			logger.Warn("trending cache set failed: %v", err)
		}
	}
	return entries, nil
}

// ForceRefresh recomputes all topic scores, persists them, prunes events
// that left the window, and drops cached listings. It is safe to run
// concurrently with submissions.
func (s *TrendingService) ForceRefresh(ctx context.Context) error {
	now := s.now()
	events, err := s.activityRepo.FindSince(ctx, now.Add(-s.window))
	if err != nil {
		return fmt.Errorf("load activity window: %w", err)
	}

	scores := make(map[uint64]float64)
	for _, e := range events {
		scores[e.TopicID] += e.Weight * s.decayFactor(now.Sub(e.CreatedAt))
	}

	for topicID, score := range scores {
		if err := s.topicRepo.UpdateTrendingScore(topicID, round3(score)); err != nil {
			logger.Warn("persist trending score for topic %d failed: %v", topicID, err)
		}
	}

	if err := s.activityRepo.DeleteBefore(ctx, now.Add(-s.window)); err != nil {
		logger.Warn("prune activity events failed: %v", err)
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.DeleteByPrefix(ctx, cache.PrefixTrendingTopics); err != nil {
			logger.Warn("invalidate trending topics cache failed: %v", err)
		}
		if err := s.cache.DeleteByPrefix(ctx, cache.PrefixTrendingPosts); err != nil {
			logger.Warn("invalidate trending posts cache failed: %v", err)
		}
	}
	return nil
}

// round3 keeps scores stable across float formatting boundaries
func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

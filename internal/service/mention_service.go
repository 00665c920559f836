package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/talkwave/talkwave-backend/internal/domain"
	"github.com/talkwave/talkwave-backend/internal/metrics"
	"github.com/talkwave/talkwave-backend/internal/repository"
	"github.com/talkwave/talkwave-backend/pkg/logger"
)

// MaxMentionsPerContent caps how many distinct users one post or comment
// can mention. Extra mentions are dropped, never rejected.
const MaxMentionsPerContent = 5

// mentionPattern matches @handle only at a word boundary, so addresses
// like user@example.com never count as mentions. The leading group
// consumes the boundary character; handles are runs of username-legal
// characters and stop before trailing punctuation.
var mentionPattern = regexp.MustCompile(`(?:^|[^0-9A-Za-z_.])@([A-Za-z0-9_-]+)`)

// ExtractHandles scans a body for candidate mention handles, in order of
// first occurrence, without resolving or deduplicating them.
func ExtractHandles(body string) []string {
	matches := mentionPattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	handles := make([]string, 0, len(matches))
	for _, m := range matches {
		handles = append(handles, m[1])
	}
	return handles
}

// ContentRef points a mention at either a post or a comment
type ContentRef struct {
	PostID    *uint64
	CommentID *uint64
}

// MentionService detects @mentions and fans out mention rows and
// notifications.
type MentionService struct {
	userRepo         repository.UserRepository
	mentionRepo      repository.MentionRepository
	notificationRepo repository.NotificationRepository
}

// NewMentionService creates a new MentionService
func NewMentionService(
	userRepo repository.UserRepository,
	mentionRepo repository.MentionRepository,
	notificationRepo repository.NotificationRepository,
) *MentionService {
	return &MentionService{
		userRepo:         userRepo,
		mentionRepo:      mentionRepo,
		notificationRepo: notificationRepo,
	}
}

// FanOut resolves mentions in a body and writes mention rows plus
// notifications. Unresolvable handles and self-mentions are dropped
// silently; results are deduplicated by user in first-occurrence order
// and capped at MaxMentionsPerContent.
//
// skipNotify lists users who already received a notification for this
// same logical event (e.g. the topic owner's new_post notification), so
// one event never produces two notifications for one user.
func (s *MentionService) FanOut(ref ContentRef, authorID uint64, authorName, body string, skipNotify map[uint64]bool) ([]domain.Mention, error) {
	handles := ExtractHandles(body)
	if len(handles) == 0 {
		return nil, nil
	}

	users, err := s.userRepo.FindByUsernamesFold(handles)
	if err != nil {
		return nil, fmt.Errorf("resolve mention handles: %w", err)
	}
	byName := make(map[string]*domain.User, len(users))
	for i := range users {
		byName[strings.ToLower(users[i].Username)] = &users[i]
	}

	seen := make(map[uint64]bool)
	var mentions []domain.Mention
	for _, handle := range handles {
		user, ok := byName[strings.ToLower(handle)]
		if !ok {
			continue // unknown handle, no error, no side effect
		}
		if user.ID == authorID {
			continue // self-mentions are never stored
		}
		if seen[user.ID] {
			continue
		}
		seen[user.ID] = true
		if len(mentions) >= MaxMentionsPerContent {
			break
		}

		mention := domain.Mention{
			MentionerID: authorID,
			MentionedID: user.ID,
			PostID:      ref.PostID,
			CommentID:   ref.CommentID,
		}
		if err := s.mentionRepo.Create(&mention); err != nil {
			return mentions, fmt.Errorf("create mention: %w", err)
		}
		mentions = append(mentions, mention)
		metrics.MentionsCreated.Inc()

		if skipNotify[user.ID] {
			continue
		}
		relatedID := mention.ID
		notification := &domain.Notification{
			UserID:    user.ID,
			Type:      domain.NotifyMention,
			RelatedID: relatedID,
			Message:   fmt.Sprintf("@%s mentioned you", authorName),
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			// The mention row exists; a missing notification is not
			// worth failing the submission over.
			logger.GetLogger().Warn().Err(err).
				Uint64("mentioned_id", user.ID).
				Msg("mention notification failed")
		}
	}

	return mentions, nil
}

// ListMentions returns the paginated mentions of a user, newest first
func (s *MentionService) ListMentions(userID uint64, page, limit int) ([]domain.MentionItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit
	mentions, total, err := s.mentionRepo.FindByMentioned(userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	items := make([]domain.MentionItem, len(mentions))
	for i, m := range mentions {
		items[i] = domain.MentionItem{
			ID:          m.ID,
			MentionerID: m.MentionerID,
			PostID:      m.PostID,
			CommentID:   m.CommentID,
			CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		}
		if mentioner, err := s.userRepo.FindByID(m.MentionerID); err == nil && mentioner != nil {
			items[i].Mentioner = mentioner.Username
		}
	}
	return items, total, nil
}

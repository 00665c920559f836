package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/domain"
	"github.com/talkwave/talkwave-backend/internal/metrics"
	"github.com/talkwave/talkwave-backend/internal/repository"
	"github.com/talkwave/talkwave-backend/pkg/logger"
)

// Content length limits
const (
	MaxTitleLength = 255
	MaxBodyLength  = 65535
)

// SubmissionService runs the full content pipeline: gate check, persist,
// then the side pipeline of owner notification, mention fanout, automod
// evaluation and activity recording. The persist is the commit point;
// side steps after it are best-effort and never fail the request.
type SubmissionService struct {
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	automodRepo      repository.AutomodRepository
	topicRepo        repository.TopicRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	gate             *Gate
	mentions         *MentionService
	moderation       *ModerationService
	trending         *TrendingService

	now func() time.Time
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	automodRepo repository.AutomodRepository,
	topicRepo repository.TopicRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	gate *Gate,
	mentions *MentionService,
	moderation *ModerationService,
	trending *TrendingService,
) *SubmissionService {
	return &SubmissionService{
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		automodRepo:      automodRepo,
		topicRepo:        topicRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		gate:             gate,
		mentions:         mentions,
		moderation:       moderation,
		trending:         trending,
		now:              time.Now,
	}
}

// SubmitPost creates a post in a topic and runs the side pipeline. The
// returned post carries its final moderation status, which a matched rule
// may already have changed.
func (s *SubmissionService) SubmitPost(ctx context.Context, authorID, topicID uint64, title, body string) (*domain.Post, error) {
	access, err := s.gate.CheckSubmission(authorID, topicID)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("post", "rejected").Inc()
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" || len(title) > MaxTitleLength {
		return nil, fmt.Errorf("%w: title must be 1-%d characters", common.ErrInvalidInput, MaxTitleLength)
	}
	if strings.TrimSpace(body) == "" || len(body) > MaxBodyLength {
		return nil, fmt.Errorf("%w: body must be 1-%d characters", common.ErrInvalidInput, MaxBodyLength)
	}

	post := &domain.Post{
		TopicID:  topicID,
		AuthorID: authorID,
		Title:    title,
		Body:     body,
		Status:   domain.StatusActive,
	}
	if err := s.postRepo.Create(post); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("post", "error").Inc()
		return nil, fmt.Errorf("create post: %w", err)
	}
	metrics.SubmissionsTotal.WithLabelValues("post", "accepted").Inc()

	skipNotify := s.notifyTopicOwner(topicID, access, post)

	ref := ContentRef{PostID: &post.ID}
	if _, err := s.mentions.FanOut(ref, authorID, access.Username, body, skipNotify); err != nil {
		logger.Warn("mention fanout for post %d failed: %v", post.ID, err)
	}

	target := ModTarget{
		Type:     domain.TargetPost,
		ID:       post.ID,
		TopicID:  topicID,
		AuthorID: authorID,
		Status:   post.Status,
	}
	s.runAutomod(access, body, &target)
	post.Status = target.Status
	post.IsLocked = target.Locked

	if err := s.trending.RecordActivity(ctx, domain.ActivityPost, topicID, &post.ID); err != nil {
		logger.Warn("record post activity failed: %v", err)
	}

	return post, nil
}

// SubmitComment creates a comment under a post. Removed and filtered
// posts do not accept comments; locked posts reject everyone, moderators
// included.
func (s *SubmissionService) SubmitComment(ctx context.Context, authorID, postID uint64, body string) (*domain.Comment, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.Status != domain.StatusActive {
		return nil, common.ErrPostNotFound
	}
	if post.IsLocked {
		return nil, common.ErrPostLocked
	}

	access, err := s.gate.CheckSubmission(authorID, post.TopicID)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("comment", "rejected").Inc()
		return nil, err
	}

	if strings.TrimSpace(body) == "" || len(body) > MaxBodyLength {
		return nil, fmt.Errorf("%w: body must be 1-%d characters", common.ErrInvalidInput, MaxBodyLength)
	}

	comment := &domain.Comment{
		PostID:   postID,
		TopicID:  post.TopicID,
		AuthorID: authorID,
		Body:     body,
		Status:   domain.StatusActive,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("comment", "error").Inc()
		return nil, fmt.Errorf("create comment: %w", err)
	}
	metrics.SubmissionsTotal.WithLabelValues("comment", "accepted").Inc()

	if err := s.postRepo.IncrementCommentCount(postID); err != nil {
		logger.Warn("increment comment count for post %d failed: %v", postID, err)
	}

	ref := ContentRef{CommentID: &comment.ID}
	if _, err := s.mentions.FanOut(ref, authorID, access.Username, body, nil); err != nil {
		logger.Warn("mention fanout for comment %d failed: %v", comment.ID, err)
	}

	target := ModTarget{
		Type:     domain.TargetComment,
		ID:       comment.ID,
		TopicID:  post.TopicID,
		AuthorID: authorID,
		Status:   comment.Status,
	}
	s.runAutomod(access, body, &target)
	comment.Status = target.Status

	if err := s.trending.RecordActivity(ctx, domain.ActivityComment, post.TopicID, &postID); err != nil {
		logger.Warn("record comment activity failed: %v", err)
	}

	return comment, nil
}

// RecordVote settles a vote on a post: the author's credit moves by the
// vote value and the post gains trending weight. Voters must be members
// in good standing of the post's topic.
func (s *SubmissionService) RecordVote(ctx context.Context, voterID, postID uint64, value int) error {
	if value != 1 && value != -1 {
		return fmt.Errorf("%w: vote value must be 1 or -1", common.ErrInvalidInput)
	}

	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return err
	}
	if post == nil || post.Status != domain.StatusActive {
		return common.ErrPostNotFound
	}
	if post.AuthorID == voterID {
		return fmt.Errorf("%w: cannot vote on own post", common.ErrInvalidInput)
	}

	if _, err := s.gate.CheckSubmission(voterID, post.TopicID); err != nil {
		return err
	}

	if err := s.userRepo.AdjustCred(post.AuthorID, value, 0); err != nil {
		return fmt.Errorf("adjust author cred: %w", err)
	}

	if value > 0 {
		if err := s.trending.RecordActivity(ctx, domain.ActivityVote, post.TopicID, &postID); err != nil {
			logger.Warn("record vote activity failed: %v", err)
		}
	}
	return nil
}

// notifyTopicOwner tells the topic owner about a new post in their topic.
// Returns a skip set so a mention of the owner in the same post does not
// notify them twice for one event.
func (s *SubmissionService) notifyTopicOwner(topicID uint64, access *AccessSnapshot, post *domain.Post) map[uint64]bool {
	topic, err := s.topicRepo.FindByID(topicID)
	if err != nil || topic == nil {
		return nil
	}
	if topic.OwnerID == access.UserID {
		return nil
	}

	notification := &domain.Notification{
		UserID:    topic.OwnerID,
		Type:      domain.NotifyNewPost,
		RelatedID: post.ID,
		Message:   fmt.Sprintf("@%s posted %q in %s", access.Username, post.Title, topic.Name),
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.Warn("new post notification for topic owner failed: %v", err)
		return nil
	}
	return map[uint64]bool{topic.OwnerID: true}
}

// runAutomod evaluates the topic's enabled rules against the body and
// applies every matching rule in evaluation order. Rule failures are
// logged and skipped; the submission already succeeded.
func (s *SubmissionService) runAutomod(access *AccessSnapshot, body string, target *ModTarget) {
	rules, err := s.automodRepo.FindEnabledByTopic(target.TopicID)
	if err != nil {
		logger.Error("load automod rules for topic %d failed: %v", target.TopicID, err)
		return
	}
	if len(rules) == 0 {
		return
	}

	author := AuthorContext{
		Karma:          access.Karma,
		AccountAgeDays: access.AccountAgeDays(s.now()),
	}
	matched := MatchRules(rules, author, body)

	for i := range matched {
		rule := &matched[i]
		if err := s.moderation.ApplyAutomated(rule, *target); err != nil {
			logger.Error("automod rule %d apply failed: %v", rule.ID, err)
			continue
		}
		// Track the state the next rule in line will observe
		if spec, ok := transitions[rule.Action]; ok {
			for _, from := range spec.from {
				if target.Status == from {
					target.Status = spec.to
					break
				}
			}
		}
		if rule.Action == domain.ActionLock && target.Type == domain.TargetPost {
			target.Locked = true
		}
	}
}

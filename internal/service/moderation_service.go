package service

import (
	"fmt"

	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/domain"
	"github.com/talkwave/talkwave-backend/internal/metrics"
	"github.com/talkwave/talkwave-backend/internal/repository"
	"github.com/talkwave/talkwave-backend/pkg/logger"
)

// ActionSource identifies who (or what) requested a moderation action.
// Automated actions carry the triggering rule; the audit entry is
// attributed to the rule's creator with the rule reference in Details.
type ActionSource struct {
	Automated bool
	Rule      *domain.AutomodRule
	ActorID   uint64 // human actor for manual actions
}

// actorID returns the user the audit entry is attributed to
func (s ActionSource) actorID() uint64 {
	if s.Automated {
		return s.Rule.CreatedBy
	}
	return s.ActorID
}

// ModTarget is the content unit an action applies to
type ModTarget struct {
	Type     domain.TargetType
	ID       uint64
	TopicID  uint64
	AuthorID uint64
	Status   domain.ModerationStatus
	Locked   bool
}

// transitions maps each state-changing action to its allowed source
// states and resulting state. Actions absent here (report, message, lock)
// do not change the moderation status.
var transitions = map[domain.RuleAction]struct {
	from []domain.ModerationStatus
	to   domain.ModerationStatus
}{
	domain.ActionRemove:  {from: []domain.ModerationStatus{domain.StatusActive, domain.StatusFiltered}, to: domain.StatusRemoved},
	domain.ActionFilter:  {from: []domain.ModerationStatus{domain.StatusActive}, to: domain.StatusFiltered},
	domain.ActionApprove: {from: []domain.ModerationStatus{domain.StatusFiltered}, to: domain.StatusActive},
}

// ModerationService applies rule or moderator actions to content units
// and appends the audit trail.
type ModerationService struct {
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	modLogRepo       repository.ModLogRepository
	reportRepo       repository.ReportRepository
	notificationRepo repository.NotificationRepository
	gate             *Gate
}

// NewModerationService creates a new ModerationService
func NewModerationService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	modLogRepo repository.ModLogRepository,
	reportRepo repository.ReportRepository,
	notificationRepo repository.NotificationRepository,
	gate *Gate,
) *ModerationService {
	return &ModerationService{
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		modLogRepo:       modLogRepo,
		reportRepo:       reportRepo,
		notificationRepo: notificationRepo,
		gate:             gate,
	}
}

// ApplyAutomated executes a matched rule's action against content the
// pipeline just persisted. Authorization was settled when the rule was
// created, so no gate check runs here. Invalid transitions are silent
// no-ops: automatic re-evaluation must not error a submission.
func (s *ModerationService) ApplyAutomated(rule *domain.AutomodRule, target ModTarget) error {
	source := ActionSource{Automated: true, Rule: rule}
	err := s.apply(target, rule.Action, source, nil)
	if err == nil {
		metrics.AutomodRulesFired.WithLabelValues(string(rule.Action)).Inc()
	}
	return err
}

// ApplyManual executes an explicit moderator action. The actor must be a
// moderator or owner of the content's topic, or a global superuser.
func (s *ModerationService) ApplyManual(actorID uint64, targetType domain.TargetType, targetID uint64, action domain.RuleAction, reason *string) error {
	if !domain.ValidRuleAction(action) {
		return fmt.Errorf("%w: unknown action %q", common.ErrInvalidInput, action)
	}

	target, err := s.loadTarget(targetType, targetID)
	if err != nil {
		return err
	}

	access, err := s.gate.Check(actorID, target.TopicID)
	if err != nil {
		return err
	}
	if !access.CanModerate() {
		return common.ErrForbidden
	}

	return s.apply(*target, action, ActionSource{ActorID: actorID}, reason)
}

// ListReports returns a topic's open reports for its moderators
func (s *ModerationService) ListReports(actorID, topicID uint64, page, limit int) ([]domain.Report, int64, error) {
	access, err := s.gate.Check(actorID, topicID)
	if err != nil {
		return nil, 0, err
	}
	if !access.CanModerate() {
		return nil, 0, common.ErrForbidden
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.reportRepo.FindByTopic(topicID, (page-1)*limit, limit)
}

func (s *ModerationService) loadTarget(targetType domain.TargetType, targetID uint64) (*ModTarget, error) {
	switch targetType {
	case domain.TargetPost:
		post, err := s.postRepo.FindByID(targetID)
		if err != nil {
			return nil, err
		}
		if post == nil {
			return nil, common.ErrPostNotFound
		}
		return &ModTarget{
			Type:     domain.TargetPost,
			ID:       post.ID,
			TopicID:  post.TopicID,
			AuthorID: post.AuthorID,
			Status:   post.Status,
			Locked:   post.IsLocked,
		}, nil
	case domain.TargetComment:
		comment, err := s.commentRepo.FindByID(targetID)
		if err != nil {
			return nil, err
		}
		if comment == nil {
			return nil, common.ErrCommentNotFound
		}
		return &ModTarget{
			Type:     domain.TargetComment,
			ID:       comment.ID,
			TopicID:  comment.TopicID,
			AuthorID: comment.AuthorID,
			Status:   comment.Status,
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown target type %q", common.ErrInvalidInput, targetType)
}

// apply dispatches one action. State transitions use an optimistic
// conditional update (WHERE status = current) so two concurrent actions
// can never both assume the pre-transition state.
func (s *ModerationService) apply(target ModTarget, action domain.RuleAction, source ActionSource, reason *string) error {
	stateChanged := false

	switch action {
	case domain.ActionRemove, domain.ActionFilter, domain.ActionApprove:
		changed, err := s.transition(target, action, source)
		if err != nil {
			return err
		}
		stateChanged = changed
	case domain.ActionLock:
		if target.Type != domain.TargetPost {
			if source.Automated {
				return nil // lock only applies to posts; inert for comments
			}
			return fmt.Errorf("%w: lock applies to posts only", common.ErrInvalidInput)
		}
		changed, err := s.postRepo.SetLocked(target.ID, true)
		if err != nil {
			return fmt.Errorf("lock post: %w", err)
		}
		stateChanged = changed
	case domain.ActionReport:
		if err := s.createReport(target, source, reason); err != nil {
			return err
		}
	case domain.ActionMessage:
		s.messageAuthor(target, source, reason)
	}

	// Every state change is audited; manual actions are audited even as
	// no-ops so explicit operator re-runs stay visible. Automated actions
	// that changed nothing (including report/message side effects) do not
	// produce audit entries.
	if stateChanged || !source.Automated {
		s.record(target, action, source, reason)
	}
	return nil
}

func (s *ModerationService) transition(target ModTarget, action domain.RuleAction, source ActionSource) (bool, error) {
	spec := transitions[action]
	if target.Status == spec.to {
		return false, nil // already there: idempotent no-op
	}

	allowed := false
	for _, from := range spec.from {
		if target.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		if source.Automated {
			return false, nil // bad transition from a rule is inert
		}
		return false, fmt.Errorf("%w: cannot %s content in state %s", common.ErrConflict, action, target.Status)
	}

	var changed bool
	var err error
	if target.Type == domain.TargetPost {
		changed, err = s.postRepo.TransitionStatus(target.ID, target.Status, spec.to)
	} else {
		changed, err = s.commentRepo.TransitionStatus(target.ID, target.Status, spec.to)
	}
	if err != nil {
		return false, fmt.Errorf("transition %s: %w", action, err)
	}
	if !changed && !source.Automated {
		// Lost the race against a concurrent action
		return false, fmt.Errorf("%w: content state changed concurrently", common.ErrConflict)
	}
	return changed, nil
}

func (s *ModerationService) createReport(target ModTarget, source ActionSource, reason *string) error {
	report := &domain.Report{
		TopicID:    target.TopicID,
		ReporterID: source.actorID(),
		TargetType: target.Type,
		TargetID:   target.ID,
	}
	if reason != nil {
		report.Reason = *reason
	}
	if source.Automated {
		ruleID := source.Rule.ID
		report.RuleID = &ruleID
		if report.Reason == "" {
			report.Reason = fmt.Sprintf("matched automod rule %q", source.Rule.Name)
		}
	}
	if err := s.reportRepo.Create(report); err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

func (s *ModerationService) messageAuthor(target ModTarget, source ActionSource, reason *string) {
	message := "A moderator sent you a notice about your content"
	if source.Automated {
		message = fmt.Sprintf("Your content matched the rule %q", source.Rule.Name)
	}
	if reason != nil && *reason != "" {
		message = *reason
	}
	notification := &domain.Notification{
		UserID:    target.AuthorID,
		Type:      domain.NotifyModMessage,
		RelatedID: target.ID,
		Message:   message,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.GetLogger().Warn().Err(err).
			Uint64("author_id", target.AuthorID).
			Msg("moderation message notification failed")
	}
}

// record appends the audit entry. A failed append breaks the audit
// guarantee, so it is surfaced loudly to operators, but it never fails
// the user-facing request.
func (s *ModerationService) record(target ModTarget, action domain.RuleAction, source ActionSource, reason *string) {
	entry := &domain.ModLogEntry{
		TopicID:     target.TopicID,
		ModeratorID: source.actorID(),
		Action:      action,
		TargetType:  target.Type,
		TargetID:    target.ID,
		Reason:      reason,
	}
	if source.Automated {
		entry.Details = domain.JSONMap{
			"automated": true,
			"rule_id":   source.Rule.ID,
			"rule_name": source.Rule.Name,
		}
	}

	if err := s.modLogRepo.Record(entry); err != nil {
		metrics.ModLogAppendFailures.Inc()
		logger.GetLogger().Error().Err(err).
			Uint64("topic_id", target.TopicID).
			Str("action", string(action)).
			Uint64("target_id", target.ID).
			Msg("mod log append failed: audit trail incomplete")
	}
}

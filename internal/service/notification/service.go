package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/internhub/internship-backend-go/internal/domain/notification"
	"github.com/internhub/internship-backend-go/internal/domain/user"
	"github.com/internhub/internship-backend-go/internal/pkg/email"
	"github.com/internhub/internship-backend-go/internal/pkg/sse"
)

const emailQueueSize = 256

type emailJob struct {
	notificationID string
	recipientID    string
	title          string
	message        string
	actionURL      string
}

type ServiceImpl struct {
	repo     notification.Repository
	users    user.UserRepository
	emails   email.EmailService
	hub      *sse.Hub
	logger   *slog.Logger
	jobs     chan emailJob
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewNotificationService starts the background email workers. Call Stop to
// drain the queue on shutdown.
func NewNotificationService(
	repo notification.Repository,
	users user.UserRepository,
	emails email.EmailService,
	hub *sse.Hub,
	logger *slog.Logger,
	workers int,
) notification.Service {
	if workers <= 0 {
		workers = 2
	}
	s := &ServiceImpl{
		repo:   repo,
		users:  users,
		emails: emails,
		hub:    hub,
		logger: logger,
		jobs:   make(chan emailJob, emailQueueSize),
	}
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.emailWorker()
	}
	return s
}

// Notify implements notification.Service.
func (s *ServiceImpl) Notify(ctx context.Context, req notification.CreateNotificationRequest) (*notification.Notification, error) {
	n := &notification.Notification{
		RecipientID: req.RecipientID,
		Title:       req.Title,
		Message:     req.Message,
		Type:        req.Type,
		Category:    req.Category,
		ActionURL:   req.ActionURL,
		EntityKind:  req.EntityKind,
		EntityID:    req.EntityID,
	}

	// The in-app record is the source of truth and is written synchronously.
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.hub.Publish(req.RecipientID, sse.Event{
		UserID: req.RecipientID,
		Event:  "notification",
		Data:   toResponse(n),
	})

	if req.SendEmail && s.allowsEmail(ctx, req.RecipientID, req.Category) {
		job := emailJob{
			notificationID: n.ID,
			recipientID:    req.RecipientID,
			title:          req.Title,
			message:        req.Message,
			actionURL:      req.ActionURL,
		}
		select {
		case s.jobs <- job:
		default:
			s.logger.Warn("email queue full, dropping email",
				slog.String("notification_id", n.ID),
				slog.String("recipient_id", req.RecipientID))
		}
	}

	return n, nil
}

// allowsEmail resolves the recipient's preference, falling back to defaults
// when none was ever saved.
func (s *ServiceImpl) allowsEmail(ctx context.Context, userID string, category notification.Category) bool {
	pref, err := s.repo.GetPreference(ctx, userID)
	if err != nil {
		if !errors.Is(err, notification.ErrPreferenceNotFound) {
			s.logger.Error("failed to load notification preference",
				slog.String("user_id", userID),
				slog.String("error", err.Error()))
			return false
		}
		def := notification.DefaultPreference(userID)
		pref = &def
	}
	return pref.AllowsEmail(category)
}

func (s *ServiceImpl) emailWorker() {
	defer s.wg.Done()
	for job := range s.jobs {
		s.deliverEmail(job)
	}
}

func (s *ServiceImpl) deliverEmail(job emailJob) {
	// Workers outlive request contexts; each delivery gets its own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	recipient, err := s.users.GetByID(ctx, job.recipientID)
	if err != nil {
		s.logger.Error("failed to resolve email recipient",
			slog.String("notification_id", job.notificationID),
			slog.String("error", err.Error()))
		return
	}

	if err := s.emails.SendNotification(recipient.Email, recipient.FullName(), job.title, job.message, job.actionURL); err != nil {
		// The in-app record stays with email_sent=false; delivery failure
		// never propagates to the caller.
		s.logger.Error("failed to send notification email",
			slog.String("notification_id", job.notificationID),
			slog.String("error", err.Error()))
		return
	}

	if err := s.repo.MarkEmailSent(ctx, job.notificationID, time.Now()); err != nil {
		s.logger.Error("failed to mark notification email sent",
			slog.String("notification_id", job.notificationID),
			slog.String("error", err.Error()))
	}
}

// GetNotifications implements notification.Service.
func (s *ServiceImpl) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	notifications, total, err := s.repo.GetByRecipient(ctx, userID, page, pageSize, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	unread, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unread count: %w", err)
	}

	responses := make([]notification.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, toResponse(n))
	}

	return &notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unread,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// GetUnreadCount implements notification.Service.
func (s *ServiceImpl) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead implements notification.Service.
func (s *ServiceImpl) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	if len(req.NotificationIDs) == 0 {
		return nil
	}
	return s.repo.MarkAsRead(ctx, req.NotificationIDs, userID)
}

// MarkAllAsRead implements notification.Service.
func (s *ServiceImpl) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// Delete implements notification.Service.
func (s *ServiceImpl) Delete(ctx context.Context, userID string, notificationID string) error {
	return s.repo.Delete(ctx, notificationID, userID)
}

// GetPreferences implements notification.Service.
func (s *ServiceImpl) GetPreferences(ctx context.Context, userID string) (notification.PreferenceResponse, error) {
	pref, err := s.repo.GetPreference(ctx, userID)
	if err != nil {
		if errors.Is(err, notification.ErrPreferenceNotFound) {
			def := notification.DefaultPreference(userID)
			return preferenceResponse(&def), nil
		}
		return notification.PreferenceResponse{}, fmt.Errorf("failed to get notification preference: %w", err)
	}
	return preferenceResponse(pref), nil
}

// UpdatePreferences implements notification.Service.
func (s *ServiceImpl) UpdatePreferences(ctx context.Context, userID string, req notification.UpdatePreferenceRequest) error {
	pref := &notification.Preference{
		UserID:                    userID,
		EmailOnAttendanceApproval: req.EmailOnAttendanceApproval,
		EmailOnAssessmentCreated:  req.EmailOnAssessmentCreated,
		EmailOnAssessmentReviewed: req.EmailOnAssessmentReviewed,
		EmailOnAbsenceStatus:      req.EmailOnAbsenceStatus,
		EmailOnOnboarding:         req.EmailOnOnboarding,
		InAppNotifications:        req.InAppNotifications,
		DailyDigest:               req.DailyDigest,
		WeeklyDigest:              req.WeeklyDigest,
	}
	if err := s.repo.UpsertPreference(ctx, pref); err != nil {
		return fmt.Errorf("failed to update notification preference: %w", err)
	}
	return nil
}

// Subscribe implements notification.Service.
func (s *ServiceImpl) Subscribe(ctx context.Context, userID string) (<-chan notification.SSEEvent, func()) {
	events, cleanup := s.hub.Subscribe(userID)

	out := make(chan notification.SSEEvent, 8)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				resp, ok := ev.Data.(notification.NotificationResponse)
				if !ok {
					continue
				}
				select {
				case out <- notification.SSEEvent{Event: ev.Event, Data: resp}:
				default:
				}
			}
		}
	}()

	return out, cleanup
}

// Stop implements notification.Service. It closes the email queue and waits
// for in-flight deliveries to finish.
func (s *ServiceImpl) Stop() {
	s.stopOnce.Do(func() {
		close(s.jobs)
	})
	s.wg.Wait()
}

func toResponse(n *notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:         n.ID,
		Title:      n.Title,
		Message:    n.Message,
		Type:       n.Type,
		Category:   n.Category,
		ActionURL:  n.ActionURL,
		EntityKind: n.EntityKind,
		EntityID:   n.EntityID,
		IsRead:     n.IsRead,
		ReadAt:     n.ReadAt,
		EmailSent:  n.EmailSent,
		CreatedAt:  n.CreatedAt,
	}
}

func preferenceResponse(p *notification.Preference) notification.PreferenceResponse {
	return notification.PreferenceResponse{
		EmailOnAttendanceApproval: p.EmailOnAttendanceApproval,
		EmailOnAssessmentCreated:  p.EmailOnAssessmentCreated,
		EmailOnAssessmentReviewed: p.EmailOnAssessmentReviewed,
		EmailOnAbsenceStatus:      p.EmailOnAbsenceStatus,
		EmailOnOnboarding:         p.EmailOnOnboarding,
		InAppNotifications:        p.InAppNotifications,
		DailyDigest:               p.DailyDigest,
		WeeklyDigest:              p.WeeklyDigest,
	}
}

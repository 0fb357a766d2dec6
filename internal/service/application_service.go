package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"ansxtra/internal/catalog"
	"ansxtra/internal/model"
	"ansxtra/internal/pkg"
	"ansxtra/internal/repository"
)

var (
	ErrClubNotFound         = errors.New("club not found")
	ErrClubClosed           = errors.New("club is not accepting applications")
	ErrMotivationRequired   = errors.New("motivation required")
	ErrAvailabilityRequired = errors.New("availability required")
	ErrInvalidStatus        = errors.New("invalid status")
)

type SubmitPayload struct {
	ClubID       string
	Motivation   string
	Experience   string
	Availability string
}

// ApplicationService 申请相关的业务编排
// producer / notifier 为 nil 表示对应开关关闭
type ApplicationService struct {
	repo     *repository.ApplicationRepository
	catalog  *catalog.Catalog
	producer *pkg.KafkaProducer
	notifier *NotifyService
}

func NewApplicationService(repo *repository.ApplicationRepository, cat *catalog.Catalog, producer *pkg.KafkaProducer, notifier *NotifyService) *ApplicationService {
	return &ApplicationService{
		repo:     repo,
		catalog:  cat,
		producer: producer,
		notifier: notifier,
	}
}

// List 返回该学生的全部申请，社团名以目录当前值为准（社团改名后跟着变）
func (s *ApplicationService) List(ctx context.Context, email string) ([]model.Application, error) {
	apps, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		if club, ok := s.catalog.ClubByID(apps[i].ClubID); ok {
			apps[i].ClubName = club.Name
		}
	}
	return apps, nil
}

// Submit 需要已登录会话和开放中的社团；同 (club, email) 重复提交按业务键覆盖
func (s *ApplicationService) Submit(ctx context.Context, sess *model.Session, p SubmitPayload) (*model.Application, error) {
	if p.Motivation == "" {
		return nil, ErrMotivationRequired
	}
	if p.Availability == "" {
		return nil, ErrAvailabilityRequired
	}

	club, ok := s.catalog.ClubByID(p.ClubID)
	if !ok {
		return nil, ErrClubNotFound
	}
	if !club.IsOpen {
		return nil, ErrClubClosed
	}

	ref, err := pkg.RandDigits(6)
	if err != nil {
		return nil, err
	}

	// 学生信息在提交时快照，后续不随名册联动
	app := model.Application{
		ID:           uuid.NewString(),
		Reference:    ref,
		ClubID:       club.ID,
		ClubName:     club.Name,
		StudentID:    sess.StudentID,
		FullName:     sess.FullName,
		Email:        sess.Email,
		Grade:        sess.Grade,
		Motivation:   p.Motivation,
		Experience:   p.Experience,
		Availability: p.Availability,
		Status:       model.StatusSubmitted,
		SubmittedAt:  time.Now(),
	}

	if err := s.repo.Upsert(ctx, app); err != nil {
		return nil, err
	}

	s.publish(ctx, "submitted", &app)
	return &app, nil
}

// Advance 演示操作：沿闭环推进一格
func (s *ApplicationService) Advance(ctx context.Context, id string) (*model.Application, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, app.Status.Next())
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "status_changed", updated)
	s.notify(updated)
	return updated, nil
}

// SetStatus 外部评审动作，状态必须在枚举内
func (s *ApplicationService) SetStatus(ctx context.Context, id string, status model.Status) (*model.Application, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "status_changed", updated)
	s.notify(updated)
	return updated, nil
}

// Withdraw 幂等：返回是否真的删掉了一条
func (s *ApplicationService) Withdraw(ctx context.Context, id string) (bool, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrApplicationNotFound) {
		return false, err
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if removed && app != nil {
		s.publish(ctx, "withdrawn", app)
	}
	return removed, nil
}

// FindExisting 申请页用来短路重复提交
func (s *ApplicationService) FindExisting(ctx context.Context, clubID, email string) (*model.Application, error) {
	app, err := s.repo.FindByKey(ctx, clubID, email)
	if err != nil || app == nil {
		return nil, err
	}
	if club, ok := s.catalog.ClubByID(app.ClubID); ok {
		app.ClubName = club.Name
	}
	return app, nil
}

// ListByClubSlug 干部/顾问的只读视图
func (s *ApplicationService) ListByClubSlug(ctx context.Context, slug string) ([]model.Application, error) {
	club, ok := s.catalog.ClubBySlug(slug)
	if !ok {
		return nil, ErrClubNotFound
	}
	return s.repo.ListByClub(ctx, club.ID)
}

type applicationEvent struct {
	Type          string       `json:"type"`
	ApplicationID string       `json:"applicationId"`
	ClubID        string       `json:"clubId"`
	Email         string       `json:"email"`
	Status        model.Status `json:"status"`
	At            time.Time    `json:"at"`
}

// publish 事件投递失败只记日志，不影响主流程
func (s *ApplicationService) publish(ctx context.Context, eventType string, app *model.Application) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(applicationEvent{
		Type:          eventType,
		ApplicationID: app.ID,
		ClubID:        app.ClubID,
		Email:         app.Email,
		Status:        app.Status,
		At:            time.Now(),
	})
	if err != nil {
		log.Printf("event marshal err: %v", err)
		return
	}
	if err := s.producer.Send(ctx, app.ID, payload); err != nil {
		log.Printf("event send err: %v", err)
	}
}

func (s *ApplicationService) notify(app *model.Application) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendStatusUpdate(app); err != nil {
		log.Printf("status mail err: %v", err)
	}
}

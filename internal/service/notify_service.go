package service

import (
	"ansxtra/internal/model"
	"ansxtra/internal/pkg"
)

// NotifyService 状态变更邮件通知，默认关闭
type NotifyService struct {
	emailCfg pkg.SMTPConfig
}

func NewNotifyService(cfg pkg.SMTPConfig) *NotifyService {
	return &NotifyService{emailCfg: cfg}
}

func (s *NotifyService) SendStatusUpdate(app *model.Application) error {
	html := pkg.StatusUpdateHTML(app.FullName, app.ClubName, string(app.Status), app.Reference)
	return pkg.SendEmail(s.emailCfg, app.Email, "Application update: "+app.ClubName, html)
}

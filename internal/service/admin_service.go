package service

import (
	"context"
	"errors"

	"leveragebrief/config"
	"leveragebrief/internal/model"
	"leveragebrief/internal/repository"
	"leveragebrief/pkg/util"
)

var ErrAuditDisabled = errors.New("invocation auditing is not configured")

// AdminService authenticates the single configured operator and serves
// invocation statistics from the audit repository.
type AdminService struct {
	admin          config.AdminConfig
	jwtSecret      string
	invocationRepo *repository.InvocationRepository
}

func NewAdminService(admin config.AdminConfig, jwtSecret string, invocationRepo *repository.InvocationRepository) *AdminService {
	return &AdminService{
		admin:          admin,
		jwtSecret:      jwtSecret,
		invocationRepo: invocationRepo,
	}
}

// Login checks the operator credential and returns a JWT.
func (s *AdminService) Login(username, password string) (string, error) {
	if username != s.admin.Username || !util.CheckPassword(password, s.admin.PasswordHash) {
		return "", errors.New("invalid username or password")
	}

	token, err := util.GenerateJWT(username, s.jwtSecret)
	if err != nil {
		return "", err
	}

	return token, nil
}

// Stats is the payload for GET /admin/stats.
type Stats struct {
	Counts []model.ToolCount      `json:"counts"`
	Recent []model.ToolInvocation `json:"recent"`
}

// Stats returns per-tool totals and the most recent invocations.
func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	if s.invocationRepo == nil {
		return nil, ErrAuditDisabled
	}

	counts, err := s.invocationRepo.CountByTool(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.invocationRepo.ListRecent(ctx, 20)
	if err != nil {
		return nil, err
	}

	return &Stats{Counts: counts, Recent: recent}, nil
}

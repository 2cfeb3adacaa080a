package leads

import (
	"context"
)

// Notifier dispatches the staff notification for a freshly stored lead.
// Failures are the caller's to log; they never affect the stored row.
type Notifier interface {
	SendStudyLeadNotification(ctx context.Context, lead StudyLead) (string, error)
	SendWorkLeadNotification(ctx context.Context, lead WorkLead) (string, error)
	SendInvestLeadNotification(ctx context.Context, lead InvestLead) (string, error)
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *Service) CreateStudy(ctx context.Context, req StudyRequest) (StudyLead, error) {
	lead := StudyLead{
		Country:        req.SelectedCountry,
		Qualification:  req.SelectedQualification,
		Age:            req.SelectedAge,
		EducationTopic: req.SelectedEducationTopic,
		CGPA:           req.CurrentCGPA,
		Budget:         req.SelectedBudget,
		NeedsLoan:      req.NeedsLoan,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
	}
	return s.repo.InsertStudy(ctx, lead)
}

func (s *Service) CreateWork(ctx context.Context, req WorkRequest) (WorkLead, error) {
	lead := WorkLead{
		Occupation: req.Occupation,
		Education:  req.Education,
		Experience: req.Experience,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
	}
	return s.repo.InsertWork(ctx, lead)
}

func (s *Service) CreateInvest(ctx context.Context, req InvestRequest) (InvestLead, error) {
	lead := InvestLead{
		Name:    req.Name,
		Email:   req.Email,
		Country: req.Country,
	}
	return s.repo.InsertInvest(ctx, lead)
}

func (s *Service) ListStudy(ctx context.Context) ([]StudyLead, error) {
	return s.repo.ListStudy(ctx)
}

func (s *Service) ListWork(ctx context.Context) ([]WorkLead, error) {
	return s.repo.ListWork(ctx)
}

func (s *Service) ListInvest(ctx context.Context) ([]InvestLead, error) {
	return s.repo.ListInvest(ctx)
}

func (s *Service) NotifyStudy(ctx context.Context, lead StudyLead) error {
	if s.notifier == nil {
		return nil
	}
	_, err := s.notifier.SendStudyLeadNotification(ctx, lead)
	return err
}

func (s *Service) NotifyWork(ctx context.Context, lead WorkLead) error {
	if s.notifier == nil {
		return nil
	}
	_, err := s.notifier.SendWorkLeadNotification(ctx, lead)
	return err
}

func (s *Service) NotifyInvest(ctx context.Context, lead InvestLead) error {
	if s.notifier == nil {
		return nil
	}
	_, err := s.notifier.SendInvestLeadNotification(ctx, lead)
	return err
}

package services

import (
	"context"
	"errors"
	"strings"

	"luax.health/configs/configslog"
	"luax.health/models"
	"luax.health/repositories"
)

// IPatientService is the admin view over patient accounts.
type IPatientService interface {
	Search(ctx context.Context, query string) ([]models.Patient, error)
	Get(ctx context.Context, nrc string) (*models.Patient, error)
	Delete(ctx context.Context, nrc string) error
}

type PatientService struct {
	repo repositories.IPatientRepository
}

func NewPatientService(repo repositories.IPatientRepository) *PatientService {
	return &PatientService{repo: repo}
}

func (s *PatientService) Search(ctx context.Context, query string) ([]models.Patient, error) {
	return s.repo.Search(ctx, strings.TrimSpace(query))
}

func (s *PatientService) Get(ctx context.Context, nrc string) (*models.Patient, error) {
	patient, err := s.repo.FindByNRC(ctx, strings.TrimSpace(nrc))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return patient, nil
}

// Delete removes the patient and every appointment linked to it.
func (s *PatientService) Delete(ctx context.Context, nrc string) error {
	nrc = strings.TrimSpace(nrc)
	if err := s.repo.DeleteWithAppointments(ctx, nrc); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPatientNotFound
		}
		return err
	}
	configslog.SLog.Infof("Patient %s and their appointments deleted", nrc)
	return nil
}

var _ IPatientService = (*PatientService)(nil)

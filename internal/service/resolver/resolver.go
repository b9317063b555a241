// Package resolver turns foreign-key style references into display values.
// A reference to a missing entity is resolved to the "unknown" sentinel,
// never an error: deleting a doctor leaves its appointments listable.
//
// Lookups are linear scans. At single-clinic scale (tens to low hundreds
// of records) this is fine; all call sites go through this package, so an
// index could be introduced later without touching them.
package resolver

import (
	"context"
	"fmt"

	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/internal/repository"
	apperrors "github.com/omermarcel/renaltrack/pkg/errors"
)

// UnknownName is the sentinel display value for unresolved references.
const UnknownName = "Unknown"

// Ref is a resolved reference. Known is false when the target entity does
// not exist, in which case Name carries the sentinel.
type Ref struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Known bool   `json:"known"`
}

func unknown(id string) Ref {
	return Ref{ID: id, Name: UnknownName}
}

type Service struct {
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
}

func NewService(patients repository.PatientRepository, doctors repository.DoctorRepository) *Service {
	return &Service{patients: patients, doctors: doctors}
}

// Resolve looks up id in the named collection. Storage failures propagate;
// a missing target does not.
func (s *Service) Resolve(ctx context.Context, collection, id string) (Ref, error) {
	switch collection {
	case model.CollectionPatients:
		return s.Patient(ctx, id)
	case model.CollectionDoctors:
		return s.Doctor(ctx, id)
	default:
		return Ref{}, fmt.Errorf("collection %q is not resolvable", collection)
	}
}

func (s *Service) Patient(ctx context.Context, id string) (Ref, error) {
	patient, err := s.patients.Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return unknown(id), nil
		}
		return Ref{}, err
	}
	return Ref{ID: patient.ID, Name: patient.Name, Known: true}, nil
}

func (s *Service) Doctor(ctx context.Context, id string) (Ref, error) {
	doctor, err := s.doctors.Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return unknown(id), nil
		}
		return Ref{}, err
	}
	return Ref{ID: doctor.ID, Name: doctor.Name, Known: true}, nil
}

// PatientByRef resolves an exam-style reference that may hold either a
// patient id or a patient name.
func (s *Service) PatientByRef(ctx context.Context, ref string) (Ref, error) {
	byID, err := s.Patient(ctx, ref)
	if err != nil {
		return Ref{}, err
	}
	if byID.Known {
		return byID, nil
	}

	patients, err := s.patients.List(ctx, nil)
	if err != nil {
		return Ref{}, err
	}
	for _, p := range patients {
		if p.Name == ref {
			return Ref{ID: p.ID, Name: p.Name, Known: true}, nil
		}
	}
	return unknown(ref), nil
}

// DoctorPatients expands a doctor's patient reference list. Unresolved
// references appear as unknown refs in place.
func (s *Service) DoctorPatients(ctx context.Context, doctor *model.Doctor) ([]Ref, error) {
	refs := make([]Ref, 0, len(doctor.PatientIDs))
	for _, id := range doctor.PatientIDs {
		ref, err := s.Patient(ctx, id)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

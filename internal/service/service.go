package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexivanou/padel-spots-api/internal/repository"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrInvalidInput is returned when a request fails validation
var ErrInvalidInput = errors.New("invalid input")

// Service provides business logic for the API
type Service struct {
	spotRepo repository.SpotRepository
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new service instance
func NewService(spotRepo repository.SpotRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		spotRepo: spotRepo,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) validateStruct(v interface{}) error {
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: field %s failed on '%s'", ErrInvalidInput, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

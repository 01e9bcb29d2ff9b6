package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/app/repositories"
)

type ProfileUpdate struct {
	Address *string `json:"address" validate:"omitempty,min=1"`
	Dob     *string `json:"dob"     validate:"omitempty,datetime=2006-01-02"`
}

type ProfileService struct {
	db       *gorm.DB
	profiles *repositories.ProfileRepository
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db, profiles: repositories.NewProfileRepository(db)}
}

func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.profiles.All(ctx)
	return nonNil(profiles), err
}

func (s *ProfileService) Get(ctx context.Context, id uint) (models.Profile, error) {
	profile, err := s.profiles.Find(ctx, id)
	return profile, notFound(err, "Profile not found")
}

func (s *ProfileService) Update(ctx context.Context, id uint, in ProfileUpdate) (models.Profile, error) {
	if err := check(in, nil); err != nil {
		return models.Profile{}, err
	}

	profile, err := s.Get(ctx, id)
	if err != nil {
		return models.Profile{}, err
	}

	if in.Address != nil {
		profile.Address = strings.TrimSpace(*in.Address)
	}
	if in.Dob != nil {
		dob, err := parseDate(*in.Dob)
		if err != nil {
			return models.Profile{}, invalidField("dob", "must be a date in the format "+dateLayout)
		}
		profile.Dob = dob
	}

	if err := s.profiles.Save(ctx, &profile); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// Delete removes the profile and clears the owner's reference to it.
func (s *ProfileService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profiles := repositories.NewProfileRepository(tx)
		profile, err := profiles.Find(ctx, id)
		if err != nil {
			return err
		}
		if err := profiles.Delete(ctx, id); err != nil {
			return err
		}
		if profile.UserID == 0 {
			return nil
		}
		return repositories.NewUserRepository(tx).Link(ctx, profile.UserID, "profile_id", nil)
	})
	return notFound(err, "Profile not found")
}

package guests

import (
	"context"
	"regexp"
	"time"

	"guestlist/internal/domain"
	"guestlist/internal/models"
	"guestlist/internal/pagination"
)

// Basic local@domain.tld shape; anything stricter belongs to a mail provider.
var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

type GuestDBLayer interface {
	CreateGuest(ctx context.Context, guest *models.Guest) error
	GetOwnedGuest(ctx context.Context, userID, guestID int64) (*models.Guest, error)
	ListOwnedGuests(ctx context.Context, userID int64, q string, offset, limit int) ([]models.Guest, int, error)
	UpdateGuest(ctx context.Context, guest *models.Guest) error
	DeleteGuest(ctx context.Context, guestID int64) error
}

type Service struct {
	DB    GuestDBLayer
	Pager *pagination.Pager
}

func NewService(db GuestDBLayer, pager *pagination.Pager) *Service {
	return &Service{DB: db, Pager: pager}
}

func (s *Service) Create(ctx context.Context, userID int64, firstName, lastName, organization, email string) (*models.Guest, error) {
	if !emailPattern.MatchString(email) {
		return nil, domain.Validationf("wrong email format")
	}
	if firstName == "" || lastName == "" || organization == "" {
		return nil, domain.Validationf("missing some guest data")
	}
	now := time.Now().UTC()
	guest := &models.Guest{
		UserID:       userID,
		FirstName:    firstName,
		LastName:     lastName,
		Organization: organization,
		Email:        email,
		CreatedOn:    now,
		UpdatedOn:    now,
	}
	if err := s.DB.CreateGuest(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

func (s *Service) Get(ctx context.Context, userID int64, rawGuestID string) (*models.Guest, error) {
	guestID, err := domain.ParseID(rawGuestID)
	if err != nil {
		return nil, err
	}
	return s.DB.GetOwnedGuest(ctx, userID, guestID)
}

func (s *Service) List(ctx context.Context, userID int64, page int, q string) ([]models.Guest, pagination.Info, error) {
	q = pagination.NormalizeQuery(q)
	offset, limit := s.Pager.Window(page)
	guests, total, err := s.DB.ListOwnedGuests(ctx, userID, q, offset, limit)
	if err != nil {
		return nil, pagination.Info{}, err
	}
	return guests, s.Pager.Describe(page, total), nil
}

func (s *Service) Update(ctx context.Context, userID int64, rawGuestID string, patch models.GuestPatch) (*models.Guest, error) {
	if patch.Empty() {
		return nil, domain.ErrNoChange
	}
	if patch.Email != "" && !emailPattern.MatchString(patch.Email) {
		return nil, domain.Validationf("wrong email format")
	}
	guest, err := s.Get(ctx, userID, rawGuestID)
	if err != nil {
		return nil, err
	}
	if patch.FirstName != "" {
		guest.FirstName = patch.FirstName
	}
	if patch.LastName != "" {
		guest.LastName = patch.LastName
	}
	if patch.Organization != "" {
		guest.Organization = patch.Organization
	}
	if patch.Email != "" {
		guest.Email = patch.Email
	}
	guest.UpdatedOn = time.Now().UTC()
	if err := s.DB.UpdateGuest(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, rawGuestID string) error {
	guest, err := s.Get(ctx, userID, rawGuestID)
	if err != nil {
		return err
	}
	return s.DB.DeleteGuest(ctx, guest.ID)
}

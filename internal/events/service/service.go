package events

import (
	"context"
	"time"

	"guestlist/internal/domain"
	"guestlist/internal/models"
	"guestlist/internal/pagination"
)

type EventDBLayer interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetOwnedEvent(ctx context.Context, userID, eventID int64) (*models.Event, error)
	ListOwnedEvents(ctx context.Context, userID int64, q string, offset, limit int) ([]models.Event, int, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, eventID int64) error
}

type Service struct {
	DB    EventDBLayer
	Pager *pagination.Pager
}

func NewService(db EventDBLayer, pager *pagination.Pager) *Service {
	return &Service{DB: db, Pager: pager}
}

func (s *Service) Create(ctx context.Context, userID int64, name, location string, start time.Time, evalLink string) (*models.Event, error) {
	if name == "" || location == "" || start.IsZero() {
		return nil, domain.Validationf("missing some event data, nothing was changed")
	}
	now := time.Now().UTC()
	event := &models.Event{
		Name:      name,
		Location:  location,
		EvalLink:  evalLink,
		StartTime: start,
		UserID:    userID,
		CreatedOn: now,
		UpdatedOn: now,
	}
	if err := s.DB.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Service) Get(ctx context.Context, userID int64, rawEventID string) (*models.Event, error) {
	eventID, err := domain.ParseID(rawEventID)
	if err != nil {
		return nil, err
	}
	return s.DB.GetOwnedEvent(ctx, userID, eventID)
}

func (s *Service) List(ctx context.Context, userID int64, page int, q string) ([]models.Event, pagination.Info, error) {
	q = pagination.NormalizeQuery(q)
	offset, limit := s.Pager.Window(page)
	events, total, err := s.DB.ListOwnedEvents(ctx, userID, q, offset, limit)
	if err != nil {
		return nil, pagination.Info{}, err
	}
	return events, s.Pager.Describe(page, total), nil
}

// Update applies a partial update: only the patch fields that carry a value
// change; everything else keeps its stored value.
func (s *Service) Update(ctx context.Context, userID int64, rawEventID string, patch models.EventPatch) (*models.Event, error) {
	if patch.Empty() {
		return nil, domain.ErrNoChange
	}
	event, err := s.Get(ctx, userID, rawEventID)
	if err != nil {
		return nil, err
	}
	if patch.Name != "" {
		event.Name = patch.Name
	}
	if patch.Location != "" {
		event.Location = patch.Location
	}
	if !patch.Time.IsZero() {
		event.StartTime = patch.Time
	}
	if patch.EvalLink != "" {
		event.EvalLink = patch.EvalLink
	}
	event.UpdatedOn = time.Now().UTC()
	if err := s.DB.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, rawEventID string) error {
	event, err := s.Get(ctx, userID, rawEventID)
	if err != nil {
		return err
	}
	return s.DB.DeleteEvent(ctx, event.ID)
}

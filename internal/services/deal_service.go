package services

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"hungerscrm/internal/models"
	"hungerscrm/internal/repositories"
)

var (
	ErrDealNotFound  = errors.New("deal not found")
	ErrDuplicateDeal = errors.New("deal id already exists")
)

// DealService owns the deal collection. Every mutation rewrites the
// whole collection to the local store before returning; a crash loses
// at most the mutation in flight.
type DealService struct {
	Repo     *repositories.DealRepository
	Email    EmailService     // optional
	Telegram *TelegramService // optional
	mu       sync.Mutex
}

func NewDealService(repo *repositories.DealRepository, email EmailService, telegram *TelegramService) *DealService {
	return &DealService{Repo: repo, Email: email, Telegram: telegram}
}

func (s *DealService) List() ([]models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Repo.Load()
}

func (s *DealService) GetByID(id string) (*models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deals, err := s.Repo.Load()
	if err != nil {
		return nil, err
	}
	for i := range deals {
		if deals[i].ID == id {
			return &deals[i], nil
		}
	}
	return nil, nil
}

func validateDeal(d *models.Deal) error {
	if !models.IsValidStatus(d.Status) {
		return fmt.Errorf("invalid status %q", d.Status)
	}
	if !models.IsValidPriority(d.Priority) {
		return fmt.Errorf("invalid priority %q", d.Priority)
	}
	if !models.IsValidCountry(d.Country) {
		return fmt.Errorf("invalid country %q", d.Country)
	}
	if d.Value < 0 {
		return errors.New("value must be non-negative")
	}
	return nil
}

// Create inserts a new deal. Client-supplied ids are kept; a missing
// id gets a generated one. Blank enum fields fall back to the board
// defaults before validation.
func (s *DealService) Create(deal *models.Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if deal.ID == "" {
		deal.ID = "deal-" + uuid.NewString()
	}
	if deal.Status == "" {
		deal.Status = models.StatusLeadIn
	}
	if deal.Priority == "" {
		deal.Priority = models.PriorityMedium
	}
	if deal.Country == "" {
		deal.Country = models.CountryColombia
	}
	if deal.CreatedAt == "" {
		deal.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if deal.Activities == nil {
		deal.Activities = []models.Activity{}
	}
	if err := validateDeal(deal); err != nil {
		return err
	}

	deals, err := s.Repo.Load()
	if err != nil {
		return err
	}
	for i := range deals {
		if deals[i].ID == deal.ID {
			return ErrDuplicateDeal
		}
	}
	deals = append(deals, *deal)
	if err := s.Repo.Save(deals); err != nil {
		return err
	}

	if s.Telegram != nil {
		if err := s.Telegram.NotifyNewDeal(deal); err != nil {
			log.Printf("[deals][create] telegram notify failed: %v", err)
		}
	}
	return nil
}

// Update replaces a deal's fields wholesale. ID and CreatedAt are
// immutable and always taken from the stored record.
func (s *DealService) Update(id string, deal models.Deal) (*models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateDeal(&deal); err != nil {
		return nil, err
	}
	deals, err := s.Repo.Load()
	if err != nil {
		return nil, err
	}
	for i := range deals {
		if deals[i].ID == id {
			deal.ID = deals[i].ID
			deal.CreatedAt = deals[i].CreatedAt
			if deal.Activities == nil {
				deal.Activities = deals[i].Activities
			}
			deals[i] = deal
			if err := s.Repo.Save(deals); err != nil {
				return nil, err
			}
			return &deals[i], nil
		}
	}
	return nil, ErrDealNotFound
}

func (s *DealService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deals, err := s.Repo.Load()
	if err != nil {
		return err
	}
	for i := range deals {
		if deals[i].ID == id {
			deals = append(deals[:i], deals[i+1:]...)
			return s.Repo.Save(deals)
		}
	}
	return ErrDealNotFound
}

// UpdateStatus moves a deal to another stage. The board allows any of
// the seven statuses, including the terminal pair.
func (s *DealService) UpdateStatus(id string, to models.DealStatus) (*models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !models.IsValidStatus(to) {
		return nil, fmt.Errorf("invalid status %q", to)
	}
	deals, err := s.Repo.Load()
	if err != nil {
		return nil, err
	}
	for i := range deals {
		if deals[i].ID == id {
			deals[i].Status = to
			if err := s.Repo.Save(deals); err != nil {
				return nil, err
			}
			return &deals[i], nil
		}
	}
	return nil, ErrDealNotFound
}

// ScheduleActivity appends an activity to the deal and mirrors its
// content into nextSteps. Prior activities are never touched.
func (s *DealService) ScheduleActivity(dealID string, typ models.ActivityType, content, date string) (*models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if content == "" {
		return nil, errors.New("content is required")
	}
	if typ == "" {
		typ = models.ActivityNote
	}
	if !models.IsValidActivityType(typ) {
		return nil, fmt.Errorf("invalid activity type %q", typ)
	}
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	deals, err := s.Repo.Load()
	if err != nil {
		return nil, err
	}
	for i := range deals {
		if deals[i].ID != dealID {
			continue
		}
		act := models.Activity{
			ID:        "act-" + uuid.NewString(),
			Type:      typ,
			Content:   content,
			Date:      date,
			Completed: false,
		}
		deals[i].Activities = append(deals[i].Activities, act)
		deals[i].NextSteps = content
		if err := s.Repo.Save(deals); err != nil {
			return nil, err
		}
		if s.Email != nil {
			if err := s.Email.SendActivityScheduled(&deals[i], &act); err != nil {
				log.Printf("[deals][activity] email notify failed: %v", err)
			}
		}
		return &deals[i], nil
	}
	return nil, ErrDealNotFound
}

// Replace swaps in a whole new collection. Used by the backup pull
// once the user has confirmed the destructive restore.
func (s *DealService) Replace(deals []models.Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Repo.Save(deals)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/onemeal-app/onemeal-backend/internal/donations/domain"
)

var (
	ErrMissingField = errors.New("missing required field")
	// ErrCheckFailed means the food check itself failed, not that the photo
	// was rejected. The submission can be retried as-is.
	ErrCheckFailed = errors.New("food verification unavailable")
)

// Store is the donation persistence surface the lifecycle manager needs.
// Transitions are conditional: the store must reject them when the record is
// no longer in the expected state at write time.
type Store interface {
	Create(ctx context.Context, d *domain.Donation) error
	GetByID(ctx context.Context, id string) (*domain.Donation, error)
	Claim(ctx context.Context, id, claimerID, claimerName, otp string) (*domain.Donation, error)
	VerifyPickup(ctx context.Context, id, donorID, code string) (*domain.Donation, error)
	Report(ctx context.Context, id, reporterID string) (*domain.Donation, error)
	ListByDonor(ctx context.Context, donorID string) ([]*domain.Donation, error)
}

// FoodChecker classifies a submitted photo as donatable food or not.
type FoodChecker interface {
	VerifyFoodImage(ctx context.Context, mimeType string, image []byte) (bool, string, error)
}

// PhotoStore archives the verified photo and returns a public URL.
type PhotoStore interface {
	Upload(ctx context.Context, mimeType string, image []byte) (string, error)
}

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID     string
	Name   string
	Banned bool
}

// CreateRequest carries a donor's submission.
type CreateRequest struct {
	FoodItem  string
	Quantity  string
	Address   string
	Phone     string
	Location  *domain.Coordinate
	ImageMIME string
	Image     []byte
}

func (r *CreateRequest) validate() error {
	for field, v := range map[string]string{
		"food_item": r.FoodItem,
		"quantity":  r.Quantity,
		"address":   r.Address,
		"phone":     r.Phone,
	} {
		if v == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}
	if len(r.Image) == 0 {
		return fmt.Errorf("%w: image", ErrMissingField)
	}
	return nil
}

// LifecycleService owns the valid state transitions of a donation record and
// their side effects: the AI content gate on creation, pickup-code minting on
// claim, and banned-user enforcement on every write.
type LifecycleService struct {
	store  Store
	vision FoodChecker
	photos PhotoStore
}

func NewLifecycleService(store Store, vision FoodChecker, photos PhotoStore) *LifecycleService {
	return &LifecycleService{
		store:  store,
		vision: vision,
		photos: photos,
	}
}

// Create lists a new donation. The photo must pass the AI food check before
// anything is written; a rejection leaves no trace in the store.
func (s *LifecycleService) Create(ctx context.Context, actor Actor, req CreateRequest) (*domain.Donation, error) {
	if actor.Banned {
		return nil, domain.ErrUserBanned
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	ok, verdict, err := s.vision.VerifyFoodImage(ctx, req.ImageMIME, req.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckFailed, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotVerified, verdict)
	}

	d := &domain.Donation{
		FoodItem:  req.FoodItem,
		Quantity:  req.Quantity,
		Address:   req.Address,
		Location:  req.Location,
		Phone:     req.Phone,
		DonorID:   actor.ID,
		DonorName: actor.Name,
		Status:    domain.StatusAvailable,
		Verified:  true,
	}

	if s.photos != nil {
		url, err := s.photos.Upload(ctx, req.ImageMIME, req.Image)
		if err != nil {
			// The photo already passed verification; losing the archive
			// copy should not block the listing.
			log.Printf("[donations] photo upload failed: %v", err)
		} else {
			d.PhotoURL = url
		}
	}

	if err := s.store.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Claim reserves an available donation and returns it along with the pickup
// code. The code is disclosed to the claimer exactly once, here.
func (s *LifecycleService) Claim(ctx context.Context, actor Actor, id string) (*domain.Donation, string, error) {
	if actor.Banned {
		return nil, "", domain.ErrUserBanned
	}
	if id == "" {
		return nil, "", fmt.Errorf("%w: donation id", ErrMissingField)
	}

	otp := mintOTP()
	d, err := s.store.Claim(ctx, id, actor.ID, actor.Name, otp)
	if err != nil {
		return nil, "", err
	}
	return d, otp, nil
}

// VerifyPickup completes a claimed donation when the donor enters the code
// presented by the recipient. There is no retry limit.
func (s *LifecycleService) VerifyPickup(ctx context.Context, actor Actor, id, code string) (*domain.Donation, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: donation id", ErrMissingField)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: code", ErrMissingField)
	}
	return s.store.VerifyPickup(ctx, id, actor.ID, code)
}

// Report flags a claimed donation as fake/missing. The confirm flag is the
// explicit gesture guarding against accidental reports.
func (s *LifecycleService) Report(ctx context.Context, actor Actor, id string, confirm bool) (*domain.Donation, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: donation id", ErrMissingField)
	}
	if !confirm {
		return nil, fmt.Errorf("%w: confirm", ErrMissingField)
	}
	return s.store.Report(ctx, id, actor.ID)
}

// History returns the donor's own donations, any status.
func (s *LifecycleService) History(ctx context.Context, actor Actor) ([]*domain.Donation, error) {
	return s.store.ListByDonor(ctx, actor.ID)
}

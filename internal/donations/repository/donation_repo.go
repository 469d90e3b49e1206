package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onemeal-app/onemeal-backend/internal/donations/domain"
)

const donationsCollection = "donations"

// DonationRepository persists donation records in the donations/{id}
// collection. Every state transition runs inside a Firestore transaction that
// re-checks the current status, so two recipients racing for the same record
// cannot both claim it.
type DonationRepository struct {
	client *firestore.Client
}

func NewDonationRepository(client *firestore.Client) *DonationRepository {
	return &DonationRepository{client: client}
}

func (r *DonationRepository) doc(id string) *firestore.DocumentRef {
	return r.client.Collection(donationsCollection).Doc(id)
}

// Create inserts a new donation with status available.
func (r *DonationRepository) Create(ctx context.Context, d *domain.Donation) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if d.Status == "" {
		d.Status = domain.StatusAvailable
	}

	if _, err := r.doc(d.ID).Create(ctx, d); err != nil {
		return fmt.Errorf("create donation: %w", err)
	}
	return nil
}

// GetByID retrieves a donation. Records carrying a status outside the known
// lifecycle are quarantined here rather than handed to callers.
func (r *DonationRepository) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	snap, err := r.doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get donation: %w", err)
	}

	d, err := decode(snap)
	if err != nil {
		return nil, err
	}
	if !domain.ValidStatus(d.Status) {
		return nil, domain.ErrInvalidStatus
	}
	return d, nil
}

// Claim reserves an available donation for a recipient. The transaction
// re-reads the record, so a claim against an already-claimed donation fails
// with ErrNotAvailable instead of silently overwriting the first claim.
func (r *DonationRepository) Claim(ctx context.Context, id, claimerID, claimerName, otp string) (*domain.Donation, error) {
	return r.transition(ctx, id, func(d *domain.Donation) error {
		return d.Claim(claimerID, claimerName, otp, time.Now().UTC())
	})
}

// VerifyPickup completes a claimed donation when the owning donor confirms
// the pickup code. A wrong code leaves the record untouched.
func (r *DonationRepository) VerifyPickup(ctx context.Context, id, donorID, code string) (*domain.Donation, error) {
	return r.transition(ctx, id, func(d *domain.Donation) error {
		if d.DonorID != donorID {
			return domain.ErrNotOwner
		}
		return d.VerifyPickup(code)
	})
}

// Report marks a claimed donation as fake/missing. Only the claiming
// recipient may report.
func (r *DonationRepository) Report(ctx context.Context, id, reporterID string) (*domain.Donation, error) {
	return r.transition(ctx, id, func(d *domain.Donation) error {
		if d.ClaimedBy != reporterID {
			return domain.ErrNotClaimer
		}
		return d.Report(reporterID, time.Now().UTC())
	})
}

func (r *DonationRepository) transition(ctx context.Context, id string, apply func(*domain.Donation) error) (*domain.Donation, error) {
	var out *domain.Donation

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(r.doc(id))
		if status.Code(err) == codes.NotFound {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("read donation: %w", err)
		}

		d, err := decode(snap)
		if err != nil {
			return err
		}
		if err := apply(d); err != nil {
			return err
		}

		out = d
		return tx.Set(snap.Ref, d)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByStatus returns every donation in the given state. No pagination: the
// open-listing set is small and recipients always see all of it.
func (r *DonationRepository) ListByStatus(ctx context.Context, st string) ([]*domain.Donation, error) {
	q := r.client.Collection(donationsCollection).Where("status", "==", st)
	return collect(q.Documents(ctx))
}

// ListByDonor returns the donor's full history, any status.
func (r *DonationRepository) ListByDonor(ctx context.Context, donorID string) ([]*domain.Donation, error) {
	q := r.client.Collection(donationsCollection).Where("donorId", "==", donorID)
	return collect(q.Documents(ctx))
}

// ListAll returns every donation record, including ones with malformed
// status values; the admin audit view renders those as UNKNOWN.
func (r *DonationRepository) ListAll(ctx context.Context) ([]*domain.Donation, error) {
	return collect(r.client.Collection(donationsCollection).Documents(ctx))
}

func collect(it *firestore.DocumentIterator) ([]*domain.Donation, error) {
	defer it.Stop()

	var out []*domain.Donation
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("iterate donations: %w", err)
		}

		d, err := decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
}

func decode(snap *firestore.DocumentSnapshot) (*domain.Donation, error) {
	var d domain.Donation
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("decode donation %s: %w", snap.Ref.ID, err)
	}
	d.ID = snap.Ref.ID
	return &d, nil
}

package domain

import "time"

// Donation statuses. A record moves available -> claimed -> completed on the
// happy path, or claimed -> reported when the recipient flags it as fake.
// Completed and reported are terminal.
const (
	StatusAvailable = "available"
	StatusClaimed   = "claimed"
	StatusCompleted = "completed"
	StatusReported  = "reported"
)

// Coordinate is a GPS position attached to a donation or a query.
type Coordinate struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}

// Donation is a single listed instance of surplus food.
type Donation struct {
	ID        string      `json:"id" firestore:"-"`
	FoodItem  string      `json:"food_item" firestore:"foodItem"`
	Quantity  string      `json:"quantity" firestore:"quantity"`
	Address   string      `json:"address" firestore:"address"`
	Location  *Coordinate `json:"location,omitempty" firestore:"location,omitempty"`
	Phone     string      `json:"phone" firestore:"phone"`
	DonorID   string      `json:"donor_id" firestore:"donorId"`
	DonorName string      `json:"donor_name" firestore:"donorName"`
	PhotoURL  string      `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	Status    string      `json:"status" firestore:"status"`
	Verified  bool        `json:"verified" firestore:"verified"`

	// OTP is set while the donation is claimed and never rotated for the
	// lifetime of that claim. It is only disclosed to the claimer.
	OTP string `json:"-" firestore:"otp,omitempty"`

	ClaimedBy   string     `json:"claimed_by,omitempty" firestore:"claimedBy,omitempty"`
	ClaimerName string     `json:"claimer_name,omitempty" firestore:"claimerName,omitempty"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty" firestore:"claimedAt,omitempty"`

	ReportedBy string     `json:"reported_by,omitempty" firestore:"reportedBy,omitempty"`
	ReportedAt *time.Time `json:"reported_at,omitempty" firestore:"reportedAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// ValidStatus reports whether s is one of the four lifecycle states.
func ValidStatus(s string) bool {
	return s == StatusAvailable || s == StatusClaimed || s == StatusCompleted || s == StatusReported
}

// StatusLabel renders a status for display. Malformed values coming back from
// the store show up as UNKNOWN in administrative views instead of failing.
func StatusLabel(s string) string {
	switch s {
	case StatusAvailable:
		return "OPEN"
	case StatusClaimed:
		return "CLAIMED"
	case StatusCompleted:
		return "DONE"
	case StatusReported:
		return "FAKE"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the donation can no longer transition.
func (d *Donation) Terminal() bool {
	return d.Status == StatusCompleted || d.Status == StatusReported
}

// Claim reserves an available donation for a recipient. The pickup code is
// minted by the caller and fixed for the lifetime of the claim.
func (d *Donation) Claim(claimerID, claimerName, otp string, at time.Time) error {
	if d.Status != StatusAvailable {
		return ErrNotAvailable
	}
	d.Status = StatusClaimed
	d.OTP = otp
	d.ClaimedBy = claimerID
	d.ClaimerName = claimerName
	d.ClaimedAt = &at
	return nil
}

// VerifyPickup finalizes a claimed donation when the donor confirms the code
// the recipient presents. A mismatch leaves the record untouched; the donor
// simply retries.
func (d *Donation) VerifyPickup(code string) error {
	if d.Status != StatusClaimed {
		return ErrNotClaimed
	}
	if code == "" || code != d.OTP {
		return ErrWrongCode
	}
	d.Status = StatusCompleted
	return nil
}

// Report marks a claimed donation as fake or missing. There is no reversal.
func (d *Donation) Report(reporterID string, at time.Time) error {
	if d.Status != StatusClaimed {
		return ErrNotClaimed
	}
	d.Status = StatusReported
	d.ReportedBy = reporterID
	d.ReportedAt = &at
	return nil
}

package receipt

import (
	"time"

	"redemption-ledger/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyImage       = errs.New("receipt image is empty")
	ErrImageTooLarge    = errs.New("receipt image is too large")
	ErrMissingSubmitter = errs.New("submitter id is required")
)

type Receipt struct {
	id          uuid.UUID
	submitterID uuid.UUID
	imageDigest string
	fingerprint string
	status      Status
	message     string
	extraction  *Extraction
	submittedAt time.Time
	processedAt *time.Time
}

func New(submitterID uuid.UUID, image []byte, maxBytes int64, now time.Time) (*Receipt, error) {
	if submitterID == uuid.Nil {
		return nil, errs.Mark(ErrMissingSubmitter, errs.ErrValidation)
	}
	if len(image) == 0 {
		return nil, errs.Mark(ErrEmptyImage, errs.ErrValidation)
	}
	if maxBytes > 0 && int64(len(image)) > maxBytes {
		return nil, errs.Mark(ErrImageTooLarge, errs.ErrValidation)
	}
	return &Receipt{
		id:          uuid.New(),
		submitterID: submitterID,
		imageDigest: ImageDigest(image),
		status:      StatusAccepted,
		submittedAt: now,
	}, nil
}

type ReconstructParams struct {
	ID          uuid.UUID
	SubmitterID uuid.UUID
	ImageDigest string
	Fingerprint string
	Status      Status
	Message     string
	Extraction  *Extraction
	SubmittedAt time.Time
	ProcessedAt *time.Time
}

func Reconstruct(p ReconstructParams) *Receipt {
	return &Receipt{
		id:          p.ID,
		submitterID: p.SubmitterID,
		imageDigest: p.ImageDigest,
		fingerprint: p.Fingerprint,
		status:      p.Status,
		message:     p.Message,
		extraction:  p.Extraction,
		submittedAt: p.SubmittedAt,
		processedAt: p.ProcessedAt,
	}
}

func (r *Receipt) ID() uuid.UUID           { return r.id }
func (r *Receipt) SubmitterID() uuid.UUID  { return r.submitterID }
func (r *Receipt) ImageDigest() string     { return r.imageDigest }
func (r *Receipt) Fingerprint() string     { return r.fingerprint }
func (r *Receipt) Status() Status          { return r.status }
func (r *Receipt) Message() string         { return r.message }
func (r *Receipt) Extraction() *Extraction { return r.extraction }
func (r *Receipt) SubmittedAt() time.Time  { return r.submittedAt }
func (r *Receipt) ProcessedAt() *time.Time { return r.processedAt }

// AttachExtraction records OCR output and the derived fingerprint. The
// receipt stays accepted until matching finishes.
func (r *Receipt) AttachExtraction(e Extraction) {
	r.extraction = &e
	r.fingerprint = Fingerprint(e)
}

func (r *Receipt) Finish(status Status, message string, now time.Time) {
	r.status = status
	r.message = message
	r.processedAt = &now
	if status == StatusDuplicate {
		r.fingerprint = ""
	}
}

package types

import (
	"github.com/wize-house/api-go/clock"
	"github.com/wize-house/api-go/errorx"
	"github.com/wize-house/api-go/models"
)

const (
	CheckinOnsite = "onsite"
	CheckinOnline = "online"
)

// ActivityInput is the payload a member submits when recording an activity.
// The required fields depend on Type; Validate enforces the per-type set
// before anything touches storage.
type ActivityInput struct {
	Type    string `json:"type" binding:"required"`
	DateKey string `json:"dateKey"`

	CheckinType string   `json:"checkinType"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	BookTitle   string   `json:"bookTitle"`
	ClipLink    string   `json:"clipLink"`
	Summary     string   `json:"summary"`
	Coachee     string   `json:"coachee"`
	Notes       string   `json:"notes"`
	Amount      *float64 `json:"amount"`

	// Evidence can arrive inline (base64 image data, uploaded server-side) or
	// as a URL the client already pushed through the presigned-upload flow.
	EvidenceData        string `json:"evidenceData"`
	EvidenceContentType string `json:"evidenceContentType"`
	EvidenceURL         string `json:"evidenceUrl"`
}

func (in *ActivityInput) HasEvidence() bool {
	return in.EvidenceData != "" || in.EvidenceURL != ""
}

func (in *ActivityInput) Validate() error {
	if !models.IsValidActivityType(in.Type) {
		return errorx.New(errorx.BadRequest, "unknown activity type %q", in.Type)
	}
	if in.DateKey != "" && !clock.IsValidKey(in.DateKey) {
		return errorx.New(errorx.BadRequest, "dateKey must be YYYY-MM-DD, got %q", in.DateKey)
	}

	switch in.Type {
	case models.ActivityCheckin:
		switch in.CheckinType {
		case CheckinOnsite:
			if in.Latitude == nil || in.Longitude == nil {
				return errorx.New(errorx.BadRequest, "onsite check-in requires latitude and longitude")
			}
		case CheckinOnline:
			if !in.HasEvidence() {
				return errorx.New(errorx.BadRequest, "online check-in requires a screen capture")
			}
		default:
			return errorx.New(errorx.BadRequest, "checkinType must be onsite or online")
		}
	case models.ActivityBook:
		if in.BookTitle == "" || in.Summary == "" {
			return errorx.New(errorx.BadRequest, "book summary requires bookTitle and summary")
		}
	case models.ActivityClip:
		if in.ClipLink == "" || in.Summary == "" {
			return errorx.New(errorx.BadRequest, "clip summary requires clipLink and summary")
		}
	case models.ActivityCoaching:
		if in.Coachee == "" || in.Notes == "" {
			return errorx.New(errorx.BadRequest, "coaching requires coachee and notes")
		}
	case models.ActivitySale:
		if !in.HasEvidence() {
			return errorx.New(errorx.BadRequest, "sale requires a slip image")
		}
	}
	return nil
}

// ToActivity builds the ledger record. dateKey is the resolved civil day and
// evidenceURL the stored blob reference, both decided by the caller.
func (in *ActivityInput) ToActivity(userID uint, dateKey, evidenceURL string) models.Activity {
	return models.Activity{
		UserID:      userID,
		Type:        in.Type,
		DateKey:     dateKey,
		CheckinType: in.CheckinType,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		BookTitle:   in.BookTitle,
		ClipLink:    in.ClipLink,
		Summary:     in.Summary,
		Coachee:     in.Coachee,
		Notes:       in.Notes,
		Amount:      in.Amount,
		EvidenceURL: evidenceURL,
	}
}

package dto

import (
	"mime/multipart"
	"path/filepath"
	"sitterhub/infras/s3"
	"sitterhub/internal/domains/waiver/model"
	gDto "sitterhub/shared/dto"
	gModel "sitterhub/shared/model"
	"sitterhub/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

const pdfContentType = "application/pdf"

type UploadWaiverRequest struct {
	SignerName   string                `json:"signer_name" validate:"required,max=100"`
	Document     *multipart.FileHeader `json:"document"    swaggerignore:"true"     validate:"required,mimetypes=application/pdf"`
	DocumentFile multipart.File        `json:"-"`
}

// ToModel places the object under <directory>/<booking id>/<waiver id>.pdf.
func (r *UploadWaiverRequest) ToModel(directory, bookingID, user string) model.Waiver {
	now := timezone.Now()
	id := uuid.NewString()

	return model.Waiver{
		ID:          id,
		BookingID:   bookingID,
		SignerName:  strings.TrimSpace(r.SignerName),
		ObjectKey:   s3.ObjectKey(directory, bookingID, id+".pdf"),
		FileName:    filepath.Base(r.Document.Filename),
		ContentType: pdfContentType,
		SizeBytes:   r.Document.Size,
		SignedAt:    now,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type WaiverResponse struct {
	ID         string `json:"id"`
	BookingID  string `json:"booking_id"`
	SignerName string `json:"signer_name"`
	FileName   string `json:"file_name"`
	SizeBytes  int64  `json:"size_bytes"`
	SignedAt   string `json:"signed_at"`
	// URL is presigned and expires.
	URL string `json:"url,omitempty"`
	gDto.Metadata
}

func (r *WaiverResponse) FromModel(mod model.Waiver) {
	r.ID = mod.ID
	r.BookingID = mod.BookingID
	r.SignerName = mod.SignerName
	r.FileName = mod.FileName
	r.SizeBytes = mod.SizeBytes
	r.SignedAt = timezone.Format(mod.SignedAt, time.RFC3339)
	r.Metadata.FromModel(mod.Metadata)
}

type GetWaiversResponse struct {
	Waivers []WaiverResponse `json:"waivers"`
}

func (r *GetWaiversResponse) FromModels(models []model.Waiver) {
	r.Waivers = make([]WaiverResponse, len(models))
	for i, mod := range models {
		r.Waivers[i].FromModel(mod)
	}
}

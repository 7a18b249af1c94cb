package waiver_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sitterhub/infras/otel/mocks"
	"sitterhub/internal/domains/waiver/model/dto"
	serviceMocks "sitterhub/internal/domains/waiver/service/mocks"
	"sitterhub/internal/handlers/waiver"
	"sitterhub/shared/constant"
	"sitterhub/shared/failure"
)

func newRouter(t *testing.T) (*serviceMocks.MockWaiver, http.Handler) {
	ctrl := gomock.NewController(t)
	svc := serviceMocks.NewMockWaiver(ctrl)

	handler := waiver.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func multipartBody(t *testing.T, signer, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if signer != "" {
		require.NoError(t, writer.WriteField(constant.FormSignerName, signer))
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="waiver.pdf"`)
	header.Set(constant.RequestHeaderContentType, contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadWaiver(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Upload(gomock.Any(), "bk-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, req dto.UploadWaiverRequest) (dto.WaiverResponse, error) {
			assert.Equal(t, "Dana", req.SignerName)
			assert.Equal(t, "waiver.pdf", req.Document.Filename)

			content, err := io.ReadAll(req.DocumentFile)
			require.NoError(t, err)
			assert.Equal(t, "%PDF-1.7", string(content))

			return dto.WaiverResponse{ID: "wv-1", BookingID: "bk-1"}, nil
		})

	body, contentType := multipartBody(t, "Dana", constant.ContentTypePDF, []byte("%PDF-1.7"))
	req := httptest.NewRequest(http.MethodPost, "/bookings/bk-1/waivers", body)
	req.Header.Set(constant.RequestHeaderContentType, contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"wv-1"`)
}

func TestUploadWaiver_Rejected(t *testing.T) {
	tests := []struct {
		name        string
		signer      string
		contentType string
	}{
		{name: "not a pdf", signer: "Dana", contentType: "image/png"},
		{name: "missing signer", contentType: constant.ContentTypePDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, router := newRouter(t)

			body, contentType := multipartBody(t, tt.signer, tt.contentType, []byte("data"))
			req := httptest.NewRequest(http.MethodPost, "/bookings/bk-1/waivers", body)
			req.Header.Set(constant.RequestHeaderContentType, contentType)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	t.Run("not multipart", func(t *testing.T) {
		_, router := newRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/bookings/bk-1/waivers", bytes.NewBufferString(`{}`))
		req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetWaivers(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), "bk-1").Return(dto.GetWaiversResponse{}, failure.NotFound("booking not found"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/bk-1/waivers", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

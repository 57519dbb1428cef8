package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"staffhub/internal/dto/req"
	"staffhub/internal/media"
	"staffhub/internal/model"
	"staffhub/internal/repository"

	"github.com/gin-gonic/gin"
)

type fakeEmployeeProvider struct {
	createErr error
	updateErr error
	getErr    error
	deleteErr error
	employee  *model.Employee
}

func (f *fakeEmployeeProvider) Create(_ context.Context, body req.CreateEmployeeRequest, image []byte) (*model.Employee, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &model.Employee{ID: 1, Name: body.Name, Email: body.Email, Mobile: body.Mobile, Gender: body.Gender}, nil
}

func (f *fakeEmployeeProvider) Get(_ context.Context, id uint64) (*model.Employee, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.employee, nil
}

func (f *fakeEmployeeProvider) List(_ context.Context, _ string) ([]model.Employee, error) {
	if f.employee == nil {
		return []model.Employee{}, nil
	}
	return []model.Employee{*f.employee}, nil
}

func (f *fakeEmployeeProvider) Update(_ context.Context, id uint64, _ req.UpdateEmployeeRequest, _ []byte) (*model.Employee, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.employee, nil
}

func (f *fakeEmployeeProvider) Delete(_ context.Context, id uint64) (*model.Employee, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return f.employee, nil
}

func (f *fakeEmployeeProvider) Health(_ context.Context) error { return nil }

func newEmployeeRouter(provider EmployeeProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewEmployeeHandler(provider, false)

	r := gin.New()
	r.POST("/employees", h.Create)
	r.GET("/employees", h.List)
	r.GET("/employees/:id", h.Get)
	r.PUT("/employees/:id", h.Update)
	r.DELETE("/employees/:id", h.Delete)
	return r
}

var testJPEG = append([]byte{0xff, 0xd8, 0xff, 0xe0}, bytes.Repeat([]byte{0x01}, 32)...)

func multipartBody(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			t.Fatalf("WriteField(%s): %v", key, err)
		}
	}
	if image != nil {
		part, err := w.CreateFormFile(ImageFormField, "avatar.jpg")
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write(image); err != nil {
			t.Fatalf("writing image part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"name":   "Ada Lovelace",
		"email":  "ada@example.com",
		"mobile": "5550100",
		"gender": "Female",
	}
}

func TestCreateEmployeeHandler(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]string
		image    []byte
		provider *fakeEmployeeProvider
		wantCode int
	}{
		{
			name:     "created",
			fields:   validFields(),
			image:    testJPEG,
			provider: &fakeEmployeeProvider{},
			wantCode: http.StatusCreated,
		},
		{
			name:     "missing image",
			fields:   validFields(),
			image:    nil,
			provider: &fakeEmployeeProvider{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid gender",
			fields:   map[string]string{"name": "A", "email": "a@b.c", "mobile": "1", "gender": "Unknown"},
			image:    testJPEG,
			provider: &fakeEmployeeProvider{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing required fields",
			fields:   map[string]string{"name": "A"},
			image:    testJPEG,
			provider: &fakeEmployeeProvider{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "duplicate email or mobile",
			fields:   validFields(),
			image:    testJPEG,
			provider: &fakeEmployeeProvider{createErr: repository.ErrDuplicate},
			wantCode: http.StatusConflict,
		},
		{
			name:     "unsupported image type",
			fields:   validFields(),
			image:    testJPEG,
			provider: &fakeEmployeeProvider{createErr: media.ErrUnsupportedImageType},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "media host down",
			fields:   validFields(),
			image:    testJPEG,
			provider: &fakeEmployeeProvider{createErr: media.ErrUpstream},
			wantCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEmployeeRouter(tt.provider)

			body, contentType := multipartBody(t, tt.fields, tt.image)
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/employees", body)
			req.Header.Set("Content-Type", contentType)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.wantCode, w.Body.String())
			}
		})
	}
}

func TestCreateEmployeeHandler_OversizeRejectedBeforeService(t *testing.T) {
	// The size cap is enforced from the multipart header, before the
	// provider (and thus any upload) is reached.
	provider := &fakeEmployeeProvider{createErr: repository.ErrDuplicate}
	r := newEmployeeRouter(provider)

	oversize := append([]byte{0xff, 0xd8, 0xff, 0xe0}, make([]byte, media.MaxImageBytes)...)
	body, contentType := multipartBody(t, validFields(), oversize)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/employees", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 (body: %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "5MB") {
		t.Errorf("expected size-limit message, got: %s", w.Body.String())
	}
}

func TestGetEmployeeHandler(t *testing.T) {
	emp := &model.Employee{ID: 7, Name: "Ada"}

	tests := []struct {
		name     string
		path     string
		provider *fakeEmployeeProvider
		wantCode int
	}{
		{"found", "/employees/7", &fakeEmployeeProvider{employee: emp}, http.StatusOK},
		{"not found", "/employees/8", &fakeEmployeeProvider{getErr: repository.ErrNotFound}, http.StatusNotFound},
		{"invalid id", "/employees/abc", &fakeEmployeeProvider{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEmployeeRouter(tt.provider)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", tt.path, nil)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}

func TestUpdateEmployeeHandler_NotFound(t *testing.T) {
	r := newEmployeeRouter(&fakeEmployeeProvider{updateErr: repository.ErrNotFound})

	body, contentType := multipartBody(t, map[string]string{"designation": "Sales"}, nil)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/employees/42", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteEmployeeHandler(t *testing.T) {
	emp := &model.Employee{ID: 7, Name: "Ada", Email: "ada@example.com"}
	r := newEmployeeRouter(&fakeEmployeeProvider{employee: emp})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/employees/7", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var deleted model.Employee
	if err := json.Unmarshal(w.Body.Bytes(), &deleted); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if deleted.ID != 7 {
		t.Errorf("deleted id = %d, want 7", deleted.ID)
	}
}

package client

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	v1 "staffhub/pkg/api/v1"
)

var (
	ErrImageTooLarge    = errors.New("image exceeds the 5MB limit")
	ErrUnsupportedImage = errors.New("only JPEG or PNG images are allowed")
)

// EmployeeForm is the field set for creating an employee.
type EmployeeForm struct {
	Name        string
	Email       string
	Mobile      string
	Designation string
	Gender      string
	Course      string
}

// EmployeeUpdate is a partial edit; nil fields keep their stored values.
type EmployeeUpdate struct {
	Name        *string
	Email       *string
	Mobile      *string
	Designation *string
	Gender      *string
	Course      *string
}

// checkImage mirrors the server's policy so a doomed upload never leaves
// the client.
func checkImage(image []byte) error {
	if len(image) > maxImageBytes {
		return ErrImageTooLarge
	}
	switch http.DetectContentType(image) {
	case "image/jpeg", "image/png":
		return nil
	}
	return ErrUnsupportedImage
}

func writeImagePart(w *multipart.Writer, image []byte, imageName string) error {
	part, err := w.CreateFormFile("image", imageName)
	if err != nil {
		return err
	}
	_, err = part.Write(image)
	return err
}

func (c *StaffClient) CreateEmployee(ctx context.Context, form EmployeeForm, image []byte, imageName string) (*v1.Employee, error) {
	if err := checkImage(image); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"name":        form.Name,
		"email":       form.Email,
		"mobile":      form.Mobile,
		"designation": form.Designation,
		"gender":      form.Gender,
		"course":      form.Course,
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(key, value); err != nil {
			return nil, err
		}
	}
	if err := writeImagePart(w, image, imageName); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var emp v1.Employee
	if err := c.do(ctx, http.MethodPost, "/employees", &buf, w.FormDataContentType(), &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (c *StaffClient) ListEmployees(ctx context.Context, search string) ([]v1.Employee, error) {
	path := "/employees"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var employees []v1.Employee
	if err := c.do(ctx, http.MethodGet, path, nil, "", &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *StaffClient) GetEmployee(ctx context.Context, id uint64) (*v1.Employee, error) {
	var emp v1.Employee
	if err := c.do(ctx, http.MethodGet, "/employees/"+strconv.FormatUint(id, 10), nil, "", &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (c *StaffClient) UpdateEmployee(ctx context.Context, id uint64, update EmployeeUpdate, image []byte, imageName string) (*v1.Employee, error) {
	if len(image) > 0 {
		if err := checkImage(image); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]*string{
		"name":        update.Name,
		"email":       update.Email,
		"mobile":      update.Mobile,
		"designation": update.Designation,
		"gender":      update.Gender,
		"course":      update.Course,
	}
	for key, value := range fields {
		if value == nil {
			continue
		}
		if err := w.WriteField(key, *value); err != nil {
			return nil, err
		}
	}
	if len(image) > 0 {
		if err := writeImagePart(w, image, imageName); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var emp v1.Employee
	if err := c.do(ctx, http.MethodPut, "/employees/"+strconv.FormatUint(id, 10), &buf, w.FormDataContentType(), &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

// DeleteEmployee removes the record and returns the deleted row.
func (c *StaffClient) DeleteEmployee(ctx context.Context, id uint64) (*v1.Employee, error) {
	var emp v1.Employee
	if err := c.do(ctx, http.MethodDelete, "/employees/"+strconv.FormatUint(id, 10), nil, "", &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

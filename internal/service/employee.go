package service

import (
	"context"

	"staffhub/internal/dto/req"
	"staffhub/internal/media"
	"staffhub/internal/model"
	"staffhub/internal/repository"
)

// EmployeeService orchestrates validation, avatar upload and persistence.
// Image policy runs before any upload attempt, and uploads run before any
// store mutation, so a failure at either stage leaves the store untouched.
type EmployeeService struct {
	repo     repository.EmployeeInterface
	uploader media.Uploader
}

func NewEmployeeService(repo repository.EmployeeInterface, uploader media.Uploader) *EmployeeService {
	return &EmployeeService{repo: repo, uploader: uploader}
}

func (s *EmployeeService) Create(ctx context.Context, body req.CreateEmployeeRequest, image []byte) (*model.Employee, error) {
	exists, err := s.repo.ExistsByEmailOrMobile(ctx, body.Email, body.Mobile, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrDuplicate
	}

	contentType, err := media.ValidateImage(image)
	if err != nil {
		return nil, err
	}
	imageURL, err := s.uploader.Upload(ctx, media.ObjectKey(contentType), contentType, image)
	if err != nil {
		return nil, err
	}

	emp := &model.Employee{
		ImageURL:    imageURL,
		Name:        body.Name,
		Email:       body.Email,
		Mobile:      body.Mobile,
		Designation: body.Designation,
		Gender:      body.Gender,
		Course:      body.Course,
	}
	// The pre-check races with concurrent creates; the unique index is the
	// real guarantee and also maps to ErrDuplicate.
	if err := s.repo.Create(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *EmployeeService) Get(ctx context.Context, id uint64) (*model.Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EmployeeService) List(ctx context.Context, search string) ([]model.Employee, error) {
	return s.repo.List(ctx, search)
}

// Update applies a partial edit. Only submitted fields change; a new image
// replaces the stored URL only after a successful upload.
func (s *EmployeeService) Update(ctx context.Context, id uint64, body req.UpdateEmployeeRequest, image []byte) (*model.Employee, error) {
	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := emp.Email
	if body.Email != nil {
		email = *body.Email
	}
	mobile := emp.Mobile
	if body.Mobile != nil {
		mobile = *body.Mobile
	}
	if body.Email != nil || body.Mobile != nil {
		exists, err := s.repo.ExistsByEmailOrMobile(ctx, email, mobile, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, repository.ErrDuplicate
		}
	}

	if len(image) > 0 {
		contentType, err := media.ValidateImage(image)
		if err != nil {
			return nil, err
		}
		imageURL, err := s.uploader.Upload(ctx, media.ObjectKey(contentType), contentType, image)
		if err != nil {
			return nil, err
		}
		emp.ImageURL = imageURL
	}

	if body.Name != nil {
		emp.Name = *body.Name
	}
	emp.Email = email
	emp.Mobile = mobile
	if body.Designation != nil {
		emp.Designation = *body.Designation
	}
	if body.Gender != nil {
		emp.Gender = *body.Gender
	}
	if body.Course != nil {
		emp.Course = *body.Course
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id uint64) (*model.Employee, error) {
	return s.repo.Delete(ctx, id)
}

func (s *EmployeeService) Health(ctx context.Context) error {
	return s.repo.PingContext(ctx)
}

// Package testimonial manages the quotes shown on the public site.
package testimonial

import (
	"context"

	"report-backend/orm"
)

const defaultRating = 5

type Store interface {
	ListTestimonials(ctx context.Context, status *orm.Status) ([]orm.Testimonial, error)
	GetTestimonialByID(ctx context.Context, id uint64) (*orm.Testimonial, error)
	CreateTestimonial(ctx context.Context, testimonial *orm.Testimonial) error
	SaveTestimonial(ctx context.Context, testimonial *orm.Testimonial) error
	DeleteTestimonial(ctx context.Context, id uint64) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns testimonials ordered by display order. status may be a
// status name, empty or "all" for everything.
func (s *Service) List(ctx context.Context, status string) ([]orm.Testimonial, error) {
	if status == "" || status == "all" {
		return s.store.ListTestimonials(ctx, nil)
	}

	parsed, ok := orm.ParseStatus(status)
	if !ok {
		return nil, &orm.ValidationError{Reason: "unknown status " + status}
	}

	return s.store.ListTestimonials(ctx, &parsed)
}

func (s *Service) Get(ctx context.Context, id uint64) (*orm.Testimonial, error) {
	return s.store.GetTestimonialByID(ctx, id)
}

type CreateRequest struct {
	Quote     string
	Author    string
	Title     string
	Company   string
	Rating    *int
	Status    string
	Order     *int
	AvatarURL string
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*orm.Testimonial, error) {
	if req.Quote == "" || req.Author == "" || req.Title == "" {
		return nil, &orm.ValidationError{Reason: "quote, author and title are required"}
	}

	rating := defaultRating
	if req.Rating != nil {
		rating = *req.Rating
	}
	order := 0
	if req.Order != nil {
		order = *req.Order
	}

	status, ok := orm.ParseStatus(req.Status)
	if !ok {
		status = orm.StatusDraft
	}

	testimonial := &orm.Testimonial{
		Quote:        req.Quote,
		Author:       req.Author,
		Title:        req.Title,
		Company:      req.Company,
		Rating:       rating,
		Status:       status,
		DisplayOrder: order,
		AvatarURL:    req.AvatarURL,
	}
	if err := s.store.CreateTestimonial(ctx, testimonial); err != nil {
		return nil, err
	}

	return testimonial, nil
}

// UpdateRequest is a partial update; nil fields keep the current value.
type UpdateRequest struct {
	Quote     *string
	Author    *string
	Title     *string
	Company   *string
	Rating    *int
	Status    *string
	Order     *int
	AvatarURL *string
}

func (s *Service) Update(
	ctx context.Context,
	id uint64,
	req UpdateRequest,
) (*orm.Testimonial, error) {
	testimonial, err := s.store.GetTestimonialByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Quote != nil {
		testimonial.Quote = *req.Quote
	}
	if req.Author != nil {
		testimonial.Author = *req.Author
	}
	if req.Title != nil {
		testimonial.Title = *req.Title
	}
	if req.Company != nil {
		testimonial.Company = *req.Company
	}
	if req.Rating != nil {
		testimonial.Rating = *req.Rating
	}
	if req.Status != nil {
		status, ok := orm.ParseStatus(*req.Status)
		if !ok {
			status = orm.StatusDraft
		}
		testimonial.Status = status
	}
	if req.Order != nil {
		testimonial.DisplayOrder = *req.Order
	}
	if req.AvatarURL != nil {
		testimonial.AvatarURL = *req.AvatarURL
	}

	if err := s.store.SaveTestimonial(ctx, testimonial); err != nil {
		return nil, err
	}

	return testimonial, nil
}

func (s *Service) Delete(ctx context.Context, id uint64) error {
	return s.store.DeleteTestimonial(ctx, id)
}

package orm

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ListTestimonials returns testimonials ordered by display order, filtered
// by status when one is given.
func (db *DB) ListTestimonials(ctx context.Context, status *Status) ([]Testimonial, error) {
	query := gorm.G[Testimonial](db.dbGorm).Order("display_order ASC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	testimonials, err := query.Find(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(err, "list testimonials", "")
	}

	return testimonials, nil
}

func (db *DB) GetTestimonialByID(ctx context.Context, id uint64) (*Testimonial, error) {
	testimonial, err := gorm.G[Testimonial](db.dbGorm).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get testimonial",
			fmt.Sprintf("id=%d", id),
		)
	}

	return &testimonial, nil
}

func (db *DB) CreateTestimonial(ctx context.Context, testimonial *Testimonial) error {
	if testimonial == nil {
		return &ValidationError{Reason: "nil testimonial"}
	}

	return wrapErrorWithDetails(
		gorm.G[Testimonial](db.dbGorm).Create(ctx, testimonial),
		"create testimonial",
		fmt.Sprintf("author=%q", testimonial.Author),
	)
}

func (db *DB) SaveTestimonial(ctx context.Context, testimonial *Testimonial) error {
	if testimonial == nil {
		return &ValidationError{Reason: "nil testimonial"}
	}

	return wrapErrorWithDetails(
		db.dbGorm.WithContext(ctx).Save(testimonial).Error,
		"save testimonial",
		fmt.Sprintf("id=%d", testimonial.ID),
	)
}

func (db *DB) DeleteTestimonial(ctx context.Context, id uint64) error {
	result := db.dbGorm.WithContext(ctx).Delete(&Testimonial{ID: id})
	if result.Error != nil {
		return wrapErrorWithDetails(
			result.Error,
			"delete testimonial",
			fmt.Sprintf("id=%d", id),
		)
	}

	if result.RowsAffected == 0 {
		return &NotFoundError{Search: fmt.Sprintf("delete testimonial (id=%d)", id)}
	}

	return nil
}

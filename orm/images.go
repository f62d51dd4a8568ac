package orm

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

func (db *DB) CreateImage(ctx context.Context, image *ReportImage) error {
	if image == nil {
		return &ValidationError{Reason: "nil image"}
	}

	return wrapErrorWithDetails(
		gorm.G[ReportImage](db.dbGorm).Create(ctx, image),
		"create report image",
		fmt.Sprintf("reportId=%d, url=%q", image.ReportID, image.URL),
	)
}

func (db *DB) GetImageByID(ctx context.Context, id uint64) (*ReportImage, error) {
	image, err := gorm.G[ReportImage](db.dbGorm).
		Where("id = ?", id).
		First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get report image",
			fmt.Sprintf("id=%d", id),
		)
	}

	return &image, nil
}

func (db *DB) CountImagesByReport(ctx context.Context, reportID uint64) (int, error) {
	count, err := gorm.G[ReportImage](db.dbGorm).
		Where("report_id = ?", reportID).
		Count(ctx, "*")
	if err != nil {
		return 0, wrapErrorWithDetails(
			err,
			"count report images",
			fmt.Sprintf("reportId=%d", reportID),
		)
	}

	return int(count), nil
}

func (db *DB) SaveImage(ctx context.Context, image *ReportImage) error {
	if image == nil {
		return &ValidationError{Reason: "nil image"}
	}

	return wrapErrorWithDetails(
		db.dbGorm.WithContext(ctx).Save(image).Error,
		"save report image",
		fmt.Sprintf("id=%d, reportId=%d", image.ID, image.ReportID),
	)
}

func (db *DB) DeleteImage(ctx context.Context, id uint64) error {
	result := db.dbGorm.WithContext(ctx).Delete(&ReportImage{ID: id})
	if result.Error != nil {
		return wrapErrorWithDetails(
			result.Error,
			"delete report image",
			fmt.Sprintf("id=%d", id),
		)
	}

	if result.RowsAffected == 0 {
		return &NotFoundError{Search: fmt.Sprintf("delete report image (id=%d)", id)}
	}

	return nil
}

package orm

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

func (db *DB) GetUserByID(ctx context.Context, id uint64) (*User, error) {
	user, err := gorm.G[User](db.dbGorm).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(err, "get user", fmt.Sprintf("id=%d", id))
	}

	return &user, nil
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	user, err := gorm.G[User](db.dbGorm).Where("email = ?", email).First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get user by email",
			fmt.Sprintf("email=%q", email),
		)
	}

	return &user, nil
}

func (db *DB) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := gorm.G[User](db.dbGorm).Where("email = ?", email).Count(ctx, "*")
	if err != nil {
		return false, wrapErrorWithDetails(
			err,
			"check user email exists",
			fmt.Sprintf("email=%q", email),
		)
	}

	return count > 0, nil
}

var userSortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"email":     "email",
	"role":      "role",
	"createdAt": "created_at",
}

func (db *DB) ListUsers(
	ctx context.Context,
	offset, limit int,
	sortBy string,
	sortDesc bool,
) ([]User, int64, error) {
	var total int64
	if err := db.dbGorm.WithContext(ctx).Model(&User{}).Count(&total).Error; err != nil {
		return nil, 0, wrapErrorWithDetails(err, "count users", "")
	}

	column, ok := userSortColumns[sortBy]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if sortDesc {
		direction = "DESC"
	}

	var users []User
	err := db.dbGorm.WithContext(ctx).
		Model(&User{}).
		Order(fmt.Sprintf("%s %s", column, direction)).
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, wrapErrorWithDetails(err, "list users", "")
	}

	return users, total, nil
}

func (db *DB) CreateUser(ctx context.Context, user *User) error {
	if user == nil {
		return &ValidationError{Reason: "nil user"}
	}

	return wrapErrorWithDetails(
		gorm.G[User](db.dbGorm).Create(ctx, user),
		"create user",
		fmt.Sprintf("email=%q", user.Email),
	)
}

func (db *DB) SaveUser(ctx context.Context, user *User) error {
	if user == nil {
		return &ValidationError{Reason: "nil user"}
	}

	return wrapErrorWithDetails(
		db.dbGorm.WithContext(ctx).Save(user).Error,
		"save user",
		fmt.Sprintf("id=%d", user.ID),
	)
}

func (db *DB) DeleteUser(ctx context.Context, id uint64) error {
	result := db.dbGorm.WithContext(ctx).Delete(&User{ID: id})
	if result.Error != nil {
		return wrapErrorWithDetails(
			result.Error,
			"delete user",
			fmt.Sprintf("id=%d", id),
		)
	}

	if result.RowsAffected == 0 {
		return &NotFoundError{Search: fmt.Sprintf("delete user (id=%d)", id)}
	}

	return nil
}

// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"
	"strings"

	"vidtube/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// translate maps store errors onto the application taxonomy. AppErrors pass
// through untouched.
func translate(err error, resource string, id any) error {
	if err == nil {
		return nil
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	if isUniqueViolation(err) {
		return models.NewConflictError(resource+" already exists", err)
	}
	return models.NewInternalError(err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// affected turns a write that touched no rows into NotFound.
func affected(res *gorm.DB, resource string, id any) error {
	if res.Error != nil {
		return translate(res.Error, resource, id)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError(resource, id)
	}
	return nil
}

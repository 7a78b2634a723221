package service

import (
	"errors"

	"gorm.io/gorm"
)

// 业务错误的分类，handler 通过 errors.Is 将其映射为 HTTP 状态码。
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	// ErrInvalidCredentials 表示邮箱或密码错误，或账号已停用。
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Error 携带错误分类和可以直接返回给调用方的描述信息。
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func validationError(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }

func conflictError(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }

func notFoundError(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// 以下为对外返回的固定提示信息。
const (
	msgInvalidInput        = "Invalid input."
	msgAccountNotFound     = "Account not found."
	msgCategoryNotFound    = "Category not found."
	msgTagNotFound         = "Tag not found."
	msgNewsNotFound        = "News article not found."
	msgEmailTaken          = "An account with this email already exists."
	msgAccountHasArticles  = "Cannot delete account that has created news articles."
	msgInvalidRole         = "Account role must be 1 (Staff), 2 (Lecturer) or 3 (Admin)."
	msgTagNameTaken        = "A tag with this name already exists."
	msgTagInUse            = "Cannot delete tag because it is being used by one or more news articles."
	msgCategoryHasArticles = "Cannot delete category that contains news articles."
	msgParentNotFound      = "Parent category not found."
	msgParentIsSelf        = "A category cannot be its own parent."
	msgCategoryCycle       = "A category cannot be moved under one of its descendants."
	msgCategoryTooDeep     = "Category hierarchy is too deep."
	msgAuthorNotFound      = "The acting account does not exist."
	msgDateRange           = "Start date must be before end date."
	msgNotAnImage          = "Only image files can be uploaded."
	msgImageNotFound       = "Image not found."
)

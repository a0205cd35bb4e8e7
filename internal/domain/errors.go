package domain

import "errors"

// Пользовательские ошибки доменного уровня
var (
	ErrWorkspaceNotFound   = errors.New("workspace not found")
	ErrEmptySelection      = errors.New("no files selected")
	ErrInvalidRenameConfig = errors.New("invalid rename configuration")
	ErrInvalidSort         = errors.New("invalid view settings")
	ErrArchiveFailed       = errors.New("archive generation failed")
	ErrContentNotFound     = errors.New("content not found")
	ErrFileTooLarge        = errors.New("file size exceeds maximum allowed size")
)

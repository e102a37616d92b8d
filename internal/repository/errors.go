// Package repository provides raw-SQL data access for the request board.
// This file defines sentinel errors shared across repositories so that
// handlers and the access gate can distinguish failure scenarios with
// errors.Is instead of inspecting driver errors. For example,
// ErrRequestNotFound maps to an HTTP 404 for single-target operations,
// while list operations never return it and yield empty slices instead.
package repository

import "errors"

// ErrRequestNotFound is returned when an operation targets a request id
// that does not exist.
var ErrRequestNotFound = errors.New("request not found")

// ErrSongNotFound is returned when a catalog song id does not exist.
var ErrSongNotFound = errors.New("song not found")

// ErrBanNotFound is returned when no ban row matches the lookup. A user
// with no ban row is simply not banned; callers decide how to surface it.
var ErrBanNotFound = errors.New("ban not found")

// ErrTermsNotFound is returned when a user has no terms acceptance row.
var ErrTermsNotFound = errors.New("terms acceptance not found")

// ErrSettingNotFound is returned when a system setting key has never
// been written. Callers apply the documented defaults.
var ErrSettingNotFound = errors.New("setting not found")

// ErrUserNotFound is returned when no DJ account matches the lookup.
var ErrUserNotFound = errors.New("dj user not found")

// ErrUsernameExists is returned when creating a DJ account with a
// username that is already taken.
var ErrUsernameExists = errors.New("username already exists")

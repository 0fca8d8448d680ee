// Package repository holds the MySQL data access layer for the
// account and purchase records: users, refresh tokens, food orders and
// payments.  Seat reservation state is not here; holds live in the
// in-memory ledger and booked seats go through the store package.
//
// Sentinel errors let handlers map failure scenarios to HTTP statuses
// without inspecting driver errors.
package repository

import "errors"

// ErrUserNotFound is returned when a user lookup yields no row.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned when registration collides with an
// existing email address.
var ErrEmailTaken = errors.New("email already registered")

// ErrTokenNotFound is returned when a refresh token is unknown,
// expired or revoked.
var ErrTokenNotFound = errors.New("refresh token not found")

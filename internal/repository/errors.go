package repository

import "errors"

var (
	// ErrNotFound signals an update or delete whose affected-row count came
	// back 0; the entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrNoIdentity signals a header insert whose result carried no
	// generated key; the aggregate write is aborted and rolled back.
	ErrNoIdentity = errors.New("header insert did not yield an identity")
)

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered identifiers and identifier checks for the platform.

It wraps the google/uuid library to generate Version 7 values, which keep
B-tree indexes on primary keys append-friendly in PostgreSQL.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// # Checks

// IsValid reports whether s parses as a UUID of any version.
//
// Lookups that fall back from a slug to an id use this guard so that an
// arbitrary string is never cast to the uuid column type in SQL.
func IsValid(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

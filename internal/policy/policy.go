// Package policy holds the ownership rules for short URL records.
// These are pure decision functions; translating a false result into a
// 401 or 404 is the HTTP layer's job, and callers must check that the
// record exists before checking ownership to pick the right status.
package policy

import "github.com/tinyapp/tinyapp/internal/model"

// CanView reports whether the given user may view a record's details.
// Only the owner may; there is no sharing or collaborator concept.
func CanView(record *model.ShortURLRecord, userID string) bool {
	if record == nil || userID == "" {
		return false
	}
	return record.OwnerID == userID
}

// CanModify reports whether the given user may edit or delete a record.
// Identical to CanView: ownership grants full control.
func CanModify(record *model.ShortURLRecord, userID string) bool {
	return CanView(record, userID)
}

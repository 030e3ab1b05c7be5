// Package bugid derives the deduplication identifier shared by every report
// of the same exception within a project.
package bugid

import "github.com/google/uuid"

// Namespace returns the per-project UUIDv5 namespace, derived from the
// project id under the X.500 namespace.
func Namespace(projectID string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceX500, []byte(projectID))
}

// New returns the deduplication identifier for an exception text reported
// under projectID. Equal inputs always yield the same identifier.
func New(projectID, exceptionText string) uuid.UUID {
	return uuid.NewSHA1(Namespace(projectID), []byte(exceptionText))
}

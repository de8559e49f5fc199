// Package service holds the application services that sit between a caller
// and the cached repositories.
//
// Each mutation is validated, attributed to an actor, persisted through the
// repository's unit of work and, only after that commits, recorded in the
// audit log. Audit failures are logged by the recorder and never turned into
// a failed mutation.
package service

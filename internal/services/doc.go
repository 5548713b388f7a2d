// Package services implements the savelinks record service on top of the
// repositories and the cryptox engine.
//
// AuthService registers users and authenticates them into a session key.
// LinkService stores, searches and deletes encrypted links for a session.
// Both are stateless: the session (user id and key) lives with the caller.
//
// Every error returned from a service is a *common.Error that unwraps to one
// of common.ErrorValidation, common.ErrorSecurity or common.ErrorDomain. Its
// message is safe to show to the user; the underlying cause is logged.
package services

// Package provision implements the lifecycle engine behind a stack-scoped
// user provisioning custom resource.
//
// # Overview
//
// The engine is invoked once per stack lifecycle event. On Create and Update
// it ensures a set of named users exists, assigns each to its access group,
// generates a login password, and stores the password in the secret store.
// On Delete it reverses every one of those effects. The outcome of every
// invocation is reported back to the orchestrator through a single callback.
//
// # Core Concepts
//
// ## Stores
//
// The engine talks to two external systems through injected interfaces:
//
//   - IdentityStore: create/delete users, manage login passwords and
//     group membership.
//   - SecretStore: create/delete named secrets holding the generated
//     credentials.
//
// The stores are the sole source of truth. The engine keeps no state across
// invocations; a Delete recomputes the same group membership from the same
// caller input instead of reading anything back.
//
// ## Idempotency
//
// Creating a user that already exists is not an error. The user is treated as
// already provisioned: its password is never rotated and its secret is never
// rewritten, only its group membership is reasserted. Deleting artifacts that
// were never created is likewise tolerated so that cleanup works after a
// partially failed create.
//
// ## Partial failure
//
// Any unexpected store error aborts the remaining work immediately. Users
// fully provisioned before the error stay provisioned; there is no rollback.
// The invocation as a whole reports FAILED with the triggering error as the
// reason.
//
// # Usage
//
//	engine := provision.NewEngine(identity, secrets,
//	    provision.WithSecretNamespace("myapp"),
//	)
//	handler := provision.NewHandler(engine, provision.NewHTTPReporter(), groups, logger)
//	lambda.Start(handler.Handle)
package provision

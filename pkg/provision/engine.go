package provision

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Engine drives one invocation through the store adapters: it dispatches on
// the request type, walks the normalized membership and produces exactly one
// Result. An Engine is stateless across invocations and safe to reuse.
type Engine struct {
	identity  IdentityStore
	secrets   SecretStore
	namespace string
	pwLength  int
	generate  func(int) (string, error)
	log       zerolog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithSecretNamespace sets the prefix under which user secrets are stored.
func WithSecretNamespace(ns string) Option {
	return func(e *Engine) {
		e.namespace = ns
	}
}

// WithPasswordLength sets the generated password length.
func WithPasswordLength(n int) Option {
	return func(e *Engine) {
		e.pwLength = n
	}
}

// WithPasswordSource replaces the password generator. Used by tests.
func WithPasswordSource(gen func(int) (string, error)) Option {
	return func(e *Engine) {
		e.generate = gen
	}
}

// WithLogger sets the engine logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// NewEngine creates an Engine with explicit store dependencies. The stores
// are never looked up implicitly, so tests can substitute in-memory fakes.
func NewEngine(identity IdentityStore, secrets SecretStore, opts ...Option) *Engine {
	e := &Engine{
		identity:  identity,
		secrets:   secrets,
		namespace: "stackusers",
		pwLength:  DefaultPasswordLength,
		generate:  GeneratePassword,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes one invocation. It always returns a Result, never panics its
// own errors outward: every failure is folded into a FAILED outcome carrying
// the triggering error's description.
func (e *Engine) Run(ctx context.Context, req Request) Result {
	switch req.Type {
	case RequestCreate, RequestUpdate:
		created, err := e.provision(ctx, req.Membership)
		if err != nil {
			e.log.Error().Err(err).Strs("created", created).Msg("provisioning aborted")
			return FailureResult(err)
		}
		e.log.Info().Strs("created", created).Msg("provisioning complete")
		return SuccessResult(created)
	case RequestDelete:
		if err := e.deprovision(ctx, req.Membership); err != nil {
			e.log.Error().Err(err).Msg("deprovisioning aborted")
			return FailureResult(err)
		}
		e.log.Info().Msg("deprovisioning complete")
		return SuccessResult(nil)
	default:
		return FailureResult(ErrProtocol(fmt.Sprintf("unrecognized request type %q", req.Type)))
	}
}

// provision is the idempotent ensure-present walk. Users already provisioned
// before an unexpected error stay provisioned; there is no rollback, and no
// user after the failing one is attempted.
func (e *Engine) provision(ctx context.Context, membership GroupMembership) ([]string, error) {
	created := []string{}
	for _, binding := range membership {
		for _, user := range binding.Users {
			password, err := e.generate(e.pwLength)
			if err != nil {
				return created, err
			}

			outcome, err := e.identity.CreateUser(ctx, user)
			if err != nil {
				return created, err
			}
			if outcome == OutcomeAlreadyExists {
				// Already provisioned: never rotate its password or
				// rewrite its secret, only reassert membership.
				e.log.Info().Str("user", user).Str("group", binding.Group).
					Msg("user already exists, skipping credential setup")
				if err := e.identity.AddToGroup(ctx, binding.Group, user); err != nil {
					return created, err
				}
				continue
			}

			if err := e.identity.SetLoginPassword(ctx, user, password, true); err != nil {
				return created, err
			}
			if err := e.identity.AddToGroup(ctx, binding.Group, user); err != nil {
				return created, err
			}
			payload := SecretPayload{Username: user, Password: password}
			if err := e.secrets.PutSecret(ctx, e.secretID(user), payload); err != nil {
				return created, err
			}

			e.log.Info().Str("user", user).Str("group", binding.Group).Msg("user provisioned")
			created = append(created, user)
		}
	}
	return created, nil
}

// deprovision tears down every user in the same iteration order the create
// path uses. The password must go before the group membership and the user,
// because the identity store refuses to delete a user that still has either.
// A not_found on any step is swallowed: the user may never have reached that
// stage of creation.
func (e *Engine) deprovision(ctx context.Context, membership GroupMembership) error {
	for _, binding := range membership {
		for _, user := range binding.Users {
			steps := []struct {
				name string
				run  func() error
			}{
				{"delete login password", func() error { return e.identity.DeleteLoginPassword(ctx, user) }},
				{"remove from group", func() error { return e.identity.RemoveFromGroup(ctx, binding.Group, user) }},
				{"delete user", func() error { return e.identity.DeleteUser(ctx, user) }},
				{"delete secret", func() error { return e.secrets.DeleteSecret(ctx, e.secretID(user)) }},
			}
			for _, step := range steps {
				if err := step.run(); err != nil {
					if IsCategory(err, ErrCategoryNotFound) {
						e.log.Debug().Str("user", user).Str("step", step.name).
							Msg("artifact absent, continuing")
						continue
					}
					return err
				}
			}
			e.log.Info().Str("user", user).Str("group", binding.Group).Msg("user deprovisioned")
		}
	}
	return nil
}

func (e *Engine) secretID(user string) string {
	return e.namespace + "/" + user
}

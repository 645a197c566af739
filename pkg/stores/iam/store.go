// Package iam adapts AWS IAM to the engine's identity store interface.
package iam

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"

	"github.com/openfactor/stackusers/pkg/provision"
)

// API abstracts the IAM operations the store needs, for testing. The real
// *iam.Client satisfies it.
type API interface {
	CreateUser(ctx context.Context, params *iam.CreateUserInput, optFns ...func(*iam.Options)) (*iam.CreateUserOutput, error)
	CreateLoginProfile(ctx context.Context, params *iam.CreateLoginProfileInput, optFns ...func(*iam.Options)) (*iam.CreateLoginProfileOutput, error)
	AddUserToGroup(ctx context.Context, params *iam.AddUserToGroupInput, optFns ...func(*iam.Options)) (*iam.AddUserToGroupOutput, error)
	RemoveUserFromGroup(ctx context.Context, params *iam.RemoveUserFromGroupInput, optFns ...func(*iam.Options)) (*iam.RemoveUserFromGroupOutput, error)
	DeleteLoginProfile(ctx context.Context, params *iam.DeleteLoginProfileInput, optFns ...func(*iam.Options)) (*iam.DeleteLoginProfileOutput, error)
	DeleteUser(ctx context.Context, params *iam.DeleteUserInput, optFns ...func(*iam.Options)) (*iam.DeleteUserOutput, error)
}

// Store implements provision.IdentityStore on AWS IAM. It is a pure
// pass-through: no retries, no caching, only error translation into the
// engine's taxonomy.
type Store struct {
	api API
}

var _ provision.IdentityStore = (*Store)(nil)

// New creates a Store over the given IAM API.
func New(api API) *Store {
	return &Store{api: api}
}

// CreateUser implements provision.IdentityStore. An EntityAlreadyExists
// rejection is not an error; it is surfaced as a tagged outcome.
func (s *Store) CreateUser(ctx context.Context, name string) (provision.CreateOutcome, error) {
	_, err := s.api.CreateUser(ctx, &iam.CreateUserInput{UserName: aws.String(name)})
	if err != nil {
		var exists *iamtypes.EntityAlreadyExistsException
		if errors.As(err, &exists) {
			return provision.OutcomeAlreadyExists, nil
		}
		return "", translate(err, "CreateUser", "user", name)
	}
	return provision.OutcomeCreated, nil
}

// SetLoginPassword implements provision.IdentityStore.
func (s *Store) SetLoginPassword(ctx context.Context, name, password string, resetRequired bool) error {
	_, err := s.api.CreateLoginProfile(ctx, &iam.CreateLoginProfileInput{
		UserName:              aws.String(name),
		Password:              aws.String(password),
		PasswordResetRequired: resetRequired,
	})
	if err != nil {
		return translate(err, "CreateLoginProfile", "login profile", name)
	}
	return nil
}

// AddToGroup implements provision.IdentityStore.
func (s *Store) AddToGroup(ctx context.Context, group, name string) error {
	_, err := s.api.AddUserToGroup(ctx, &iam.AddUserToGroupInput{
		GroupName: aws.String(group),
		UserName:  aws.String(name),
	})
	if err != nil {
		return translate(err, "AddUserToGroup", "group membership", name)
	}
	return nil
}

// RemoveFromGroup implements provision.IdentityStore.
func (s *Store) RemoveFromGroup(ctx context.Context, group, name string) error {
	_, err := s.api.RemoveUserFromGroup(ctx, &iam.RemoveUserFromGroupInput{
		GroupName: aws.String(group),
		UserName:  aws.String(name),
	})
	if err != nil {
		return translate(err, "RemoveUserFromGroup", "group membership", name)
	}
	return nil
}

// DeleteLoginPassword implements provision.IdentityStore.
func (s *Store) DeleteLoginPassword(ctx context.Context, name string) error {
	_, err := s.api.DeleteLoginProfile(ctx, &iam.DeleteLoginProfileInput{UserName: aws.String(name)})
	if err != nil {
		return translate(err, "DeleteLoginProfile", "login profile", name)
	}
	return nil
}

// DeleteUser implements provision.IdentityStore.
func (s *Store) DeleteUser(ctx context.Context, name string) error {
	_, err := s.api.DeleteUser(ctx, &iam.DeleteUserInput{UserName: aws.String(name)})
	if err != nil {
		return translate(err, "DeleteUser", "user", name)
	}
	return nil
}

// translate maps IAM API errors onto the engine's error categories.
func translate(err error, op, resourceType, resourceID string) error {
	var notFound *iamtypes.NoSuchEntityException
	if errors.As(err, &notFound) {
		return provision.ErrNotFound(resourceType, resourceID).WithOperation(op).WithCause(err)
	}
	var exists *iamtypes.EntityAlreadyExistsException
	if errors.As(err, &exists) {
		return provision.ErrConflict(resourceType, resourceID).WithOperation(op).WithCause(err)
	}
	return provision.ErrTransient("identity store call failed").
		WithOperation(op).
		WithResource(resourceType, resourceID).
		WithCause(err)
}

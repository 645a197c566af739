// Package secretsmanager adapts AWS Secrets Manager to the engine's secret
// store interface.
package secretsmanager

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/google/uuid"

	"github.com/openfactor/stackusers/pkg/provision"
)

// API abstracts the Secrets Manager operations the store needs, for
// testing. The real *secretsmanager.Client satisfies it.
type API interface {
	CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error)
	DeleteSecret(ctx context.Context, params *secretsmanager.DeleteSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DeleteSecretOutput, error)
}

// Store implements provision.SecretStore on AWS Secrets Manager.
type Store struct {
	api API
}

var _ provision.SecretStore = (*Store)(nil)

// New creates a Store over the given Secrets Manager API.
func New(api API) *Store {
	return &Store{api: api}
}

// PutSecret implements provision.SecretStore. The payload is stored as a
// JSON document under the given identifier.
func (s *Store) PutSecret(ctx context.Context, id string, payload provision.SecretPayload) error {
	doc, err := json.Marshal(payload)
	if err != nil {
		return provision.ErrInternal("failed to marshal secret payload").WithCause(err)
	}
	_, err = s.api.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:               aws.String(id),
		SecretString:       aws.String(string(doc)),
		ClientRequestToken: aws.String(uuid.NewString()),
	})
	if err != nil {
		return translate(err, "CreateSecret", id)
	}
	return nil
}

// DeleteSecret implements provision.SecretStore. Deletion is forced, with no
// recovery window, so a later stack with the same user names cannot collide
// with a soft-deleted entry.
func (s *Store) DeleteSecret(ctx context.Context, id string) error {
	_, err := s.api.DeleteSecret(ctx, &secretsmanager.DeleteSecretInput{
		SecretId:                   aws.String(id),
		ForceDeleteWithoutRecovery: aws.Bool(true),
	})
	if err != nil {
		return translate(err, "DeleteSecret", id)
	}
	return nil
}

// translate maps Secrets Manager API errors onto the engine's error
// categories.
func translate(err error, op, id string) error {
	var notFound *smtypes.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return provision.ErrNotFound("secret", id).WithOperation(op).WithCause(err)
	}
	var exists *smtypes.ResourceExistsException
	if errors.As(err, &exists) {
		return provision.ErrConflict("secret", id).WithOperation(op).WithCause(err)
	}
	return provision.ErrTransient("secret store call failed").
		WithOperation(op).
		WithResource("secret", id).
		WithCause(err)
}

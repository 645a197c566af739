// Package main is the Lambda entry point for the stack user provisioner.
//
// The binary is invoked by the orchestrator on stack lifecycle events. It
// wires configuration, logging and the AWS store clients into the
// provisioning engine and reports every invocation's outcome through the
// callback protocol.
package main

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openfactor/stackusers/pkg/config"
	"github.com/openfactor/stackusers/pkg/provision"
	iamstore "github.com/openfactor/stackusers/pkg/stores/iam"
	secretstore "github.com/openfactor/stackusers/pkg/stores/secretsmanager"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load AWS configuration")
	}

	identity := iamstore.New(iam.NewFromConfig(awsCfg))
	secrets := secretstore.New(secretsmanager.NewFromConfig(awsCfg))

	engine := provision.NewEngine(identity, secrets,
		provision.WithSecretNamespace(cfg.SecretNamespace),
		provision.WithPasswordLength(cfg.PasswordLength),
		provision.WithLogger(log.Logger),
	)
	handler := provision.NewHandler(engine, provision.NewHTTPReporter(), cfg.Groups, log.Logger)

	log.Info().Strs("groups", cfg.Groups).Str("namespace", cfg.SecretNamespace).
		Msg("stackusers provisioner starting")
	lambda.Start(handler.Handle)
}

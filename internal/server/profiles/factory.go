package profiles

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/dmitrijs2005/cooksocial/internal/common"
	"github.com/dmitrijs2005/cooksocial/internal/logging"
	"github.com/dmitrijs2005/cooksocial/internal/server/config"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig
	newDynamoClient      = func(cfg aws.Config, optFns ...func(*dynamodb.Options)) putItemAPI {
		return dynamodb.NewFromConfig(cfg, optFns...)
	}
	openPostgres = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
)

// NewRepository builds the profile store selected by cfg.ProfileStore. The
// returned close func releases whatever the store holds open.
func NewRepository(ctx context.Context, cfg *config.Config, log logging.Logger) (Repository, func() error, error) {
	log = log.With("module", "profiles", "store", cfg.ProfileStore)

	switch cfg.ProfileStore {
	case config.StoreDynamoDB:
		opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
		if cfg.DynamoDBEndpoint != "" {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider("local", "local", ""),
			))
		}

		awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("aws config error: %w", err)
		}

		client := newDynamoClient(awsCfg, func(o *dynamodb.Options) {
			if cfg.DynamoDBEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
			}
		})

		log.Debug(ctx, "profile store ready", "table", cfg.TableName)
		return NewDynamoRepository(client, cfg.TableName), func() error { return nil }, nil

	case config.StorePostgres:
		db, err := openPostgres(cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open database error: %w", err)
		}

		if err := RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		log.Debug(ctx, "profile store ready")
		return NewPostgresRepository(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", common.ErrorUnknownBackend, cfg.ProfileStore)
	}
}

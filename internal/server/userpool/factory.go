package userpool

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/dmitrijs2005/cooksocial/internal/logging"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig
	newCognitoClient     = func(cfg aws.Config) cognitoAdminAPI {
		return cip.NewFromConfig(cfg)
	}
)

// New builds a Provisioner using the default AWS credential chain.
func New(ctx context.Context, region string, log logging.Logger) (*Provisioner, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}
	return NewProvisioner(newCognitoClient(awsCfg), log), nil
}

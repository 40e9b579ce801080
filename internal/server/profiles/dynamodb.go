package profiles

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type putItemAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoRepository writes profiles as items of a single DynamoDB table,
// keyed by userId.
type DynamoRepository struct {
	api   putItemAPI
	table string
}

func NewDynamoRepository(api putItemAPI, table string) *DynamoRepository {
	return &DynamoRepository{api: api, table: table}
}

func (r *DynamoRepository) Put(ctx context.Context, p Profile) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal profile error: %w", err)
	}

	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item error: %w", err)
	}
	return nil
}

package dynamo

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"notevault/internal/domain/repositories"
)

// maxTransactItems is DynamoDB's TransactWriteItems limit
const maxTransactItems = 100

// API is the subset of the DynamoDB client the store uses
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// entry is one stored key. The table's partition key is "pk" (string).
type entry struct {
	Key       string `dynamodbav:"pk"`
	Value     []byte `dynamodbav:"value"`
	UpdatedAt int64  `dynamodbav:"updated_at"`
}

// Store implements repositories.KeyValueStore over a DynamoDB table
type Store struct {
	client    API
	tableName string
	logger    *slog.Logger
}

// Options configures NewClient
type Options struct {
	Region   string
	Endpoint string // optional override, e.g. DynamoDB Local
}

// NewClient builds a DynamoDB client from the default AWS config chain
func NewClient(ctx context.Context, opts Options) (*dynamodb.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}

// NewStore creates a store bound to tableName
func NewStore(client API, tableName string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{client: client, tableName: tableName, logger: logger}
}

var _ repositories.KeyValueStore = (*Store)(nil)

// Get returns the value stored under key
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            itemKey(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, false, fmt.Errorf("get item %s: %w", key, err)
	}
	if out.Item == nil {
		return nil, false, nil
	}

	var e entry
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, false, fmt.Errorf("unmarshal item %s: %w", key, err)
	}
	return e.Value, true, nil
}

// Set overwrites the value stored under key
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	item, err := marshalEntry(key, value)
	if err != nil {
		return err
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item %s: %w", key, err)
	}
	return nil
}

// SetMany writes every key in one TransactWriteItems call
func (s *Store) SetMany(ctx context.Context, values map[string][]byte) error {
	if len(values) == 0 {
		return nil
	}
	if len(values) > maxTransactItems {
		return fmt.Errorf("set %d items: exceeds transaction limit of %d", len(values), maxTransactItems)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	items := make([]types.TransactWriteItem, 0, len(keys))
	for _, key := range keys {
		item, err := marshalEntry(key, values[key])
		if err != nil {
			return err
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(s.tableName),
				Item:      item,
			},
		})
	}

	if _, err := s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	}); err != nil {
		return fmt.Errorf("transact write %v: %w", keys, err)
	}

	s.logger.Debug("dynamodb transaction committed", "table", s.tableName, "keys", keys)
	return nil
}

// Delete removes key
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       itemKey(key),
	})
	if err != nil {
		return fmt.Errorf("delete item %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; the SDK client holds no resources that need releasing
func (s *Store) Close() error { return nil }

func itemKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: key},
	}
}

func marshalEntry(key string, value []byte) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(entry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal item %s: %w", key, err)
	}
	return item, nil
}

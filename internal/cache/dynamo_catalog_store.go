package cache

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/bbernstein/storelocator/internal/config"
	"github.com/bbernstein/storelocator/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	// Records per item keeps each item well under the 400KB DynamoDB limit
	snapshotRecordsPerItem = 100
	maxConcurrentBatches   = 4
)

// catalogSnapshotItem is one chunk of a parsed catalog. A snapshot is complete when all
// ChunkCount items sharing a LoadedAt are present.
type catalogSnapshotItem struct {
	Source     string               `dynamodbav:"catalogSource"`
	Chunk      int                  `dynamodbav:"chunk"`
	ChunkCount int                  `dynamodbav:"chunkCount"`
	Skipped    int                  `dynamodbav:"skipped"`
	LoadedAt   int64                `dynamodbav:"loadedAt"`
	Records    []models.StoreRecord `dynamodbav:"records"`
	TTL        int64                `dynamodbav:"ttl"`
}

// DynamoCatalogStore persists parsed catalogs so cold starts can skip the fetch
type DynamoCatalogStore struct {
	client     DynamoDBClient
	tableName  string
	config     *config.CacheConfig
	clock      clock
	retryDelay time.Duration
}

func NewDynamoCatalogStore(client DynamoDBClient, tableName string, cacheConfig *config.CacheConfig) *DynamoCatalogStore {
	if cacheConfig == nil {
		cacheConfig = config.GetCacheConfig()
	}
	return &DynamoCatalogStore{
		client:     client,
		tableName:  tableName,
		config:     cacheConfig,
		clock:      systemClock{},
		retryDelay: 100 * time.Millisecond,
	}
}

// GetCatalog returns the newest complete, unexpired snapshot for source, or nil
func (s *DynamoCatalogStore) GetCatalog(ctx context.Context, source string) (*models.Catalog, error) {
	var items []catalogSnapshotItem
	var startKey map[string]types.AttributeValue

	for {
		out, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.tableName),
			KeyConditionExpression: aws.String("catalogSource = :s"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":s": &types.AttributeValueMemberS{Value: source},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("querying catalog snapshot: %w", err)
		}

		var page []catalogSnapshotItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshaling catalog snapshot: %w", err)
		}
		items = append(items, page...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	if len(items) == 0 {
		return nil, nil
	}

	var latest int64
	for _, item := range items {
		if item.LoadedAt > latest {
			latest = item.LoadedAt
		}
	}

	var chunks []catalogSnapshotItem
	for _, item := range items {
		if item.LoadedAt == latest {
			chunks = append(chunks, item)
		}
	}

	if s.clock.Now().Unix() >= chunks[0].TTL {
		log.Debug().Str("source", source).Msg("Catalog snapshot expired")
		return nil, nil
	}
	if len(chunks) != chunks[0].ChunkCount {
		log.Warn().
			Str("source", source).
			Int("chunks", len(chunks)).
			Int("chunk_count", chunks[0].ChunkCount).
			Msg("Catalog snapshot incomplete")
		return nil, nil
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Chunk < chunks[j].Chunk
	})

	catalog := &models.Catalog{
		Source:   source,
		Records:  []models.StoreRecord{},
		Skipped:  chunks[0].Skipped,
		LoadedAt: time.Unix(0, latest).UTC(),
	}
	for _, chunk := range chunks {
		catalog.Records = append(catalog.Records, chunk.Records...)
	}

	return catalog, nil
}

// SaveCatalog writes catalog as a new snapshot in batches
func (s *DynamoCatalogStore) SaveCatalog(ctx context.Context, catalog *models.Catalog) error {
	items := s.snapshotItems(catalog)

	var writeRequests []types.WriteRequest
	for _, item := range items {
		av, err := attributevalue.MarshalMap(item)
		if err != nil {
			return fmt.Errorf("marshaling catalog snapshot: %w", err)
		}
		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: av},
		})
	}

	batchSize := s.config.BatchSize
	if batchSize <= 0 {
		batchSize = 25
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentBatches)
	for i := 0; i < len(writeRequests); i += batchSize {
		end := min(i+batchSize, len(writeRequests))
		batch := writeRequests[i:end]
		g.Go(func() error {
			return s.writeBatch(gctx, batch)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Debug().
		Str("source", catalog.Source).
		Int("record_count", len(catalog.Records)).
		Int("chunk_count", len(items)).
		Msg("Saved catalog snapshot")

	return nil
}

// writeBatch retries failed and unprocessed writes with exponential backoff
func (s *DynamoCatalogStore) writeBatch(ctx context.Context, pending []types.WriteRequest) error {
	attempts := max(s.config.MaxBatchRetries, 1)

	var lastErr error
	for retry := 0; retry < attempts; retry++ {
		if retry > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("batch writing catalog snapshot: %w", ctx.Err())
			case <-time.After(time.Duration(1<<(retry-1)) * s.retryDelay):
			}
		}

		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				s.tableName: pending,
			},
		})
		if err != nil {
			lastErr = err
			continue
		}

		pending = out.UnprocessedItems[s.tableName]
		if len(pending) == 0 {
			return nil
		}
		lastErr = fmt.Errorf("%d unprocessed items", len(pending))
	}

	return fmt.Errorf("batch writing catalog snapshot after %d attempts: %w", attempts, lastErr)
}

func (s *DynamoCatalogStore) snapshotItems(catalog *models.Catalog) []catalogSnapshotItem {
	loadedAt := catalog.LoadedAt.UnixNano()
	ttl := s.clock.Now().Add(s.config.GetCatalogTTL()).Unix()

	chunkCount := (len(catalog.Records) + snapshotRecordsPerItem - 1) / snapshotRecordsPerItem
	if chunkCount == 0 {
		chunkCount = 1
	}

	items := make([]catalogSnapshotItem, 0, chunkCount)
	for chunk := 0; chunk < chunkCount; chunk++ {
		start := chunk * snapshotRecordsPerItem
		end := start + snapshotRecordsPerItem
		if end > len(catalog.Records) {
			end = len(catalog.Records)
		}
		items = append(items, catalogSnapshotItem{
			Source:     catalog.Source,
			Chunk:      chunk,
			ChunkCount: chunkCount,
			Skipped:    catalog.Skipped,
			LoadedAt:   loadedAt,
			Records:    catalog.Records[start:end],
			TTL:        ttl,
		})
	}
	return items
}

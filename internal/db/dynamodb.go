package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/feedsight/feedsight/internal/clients"
	"github.com/feedsight/feedsight/internal/models"
)

const (
	FEEDBACK_TABLE_NAME = "Feedback"
	REPORTS_TABLE_NAME  = "Reports"
)

var dbClient *dynamodb.Client

func InitDynamoDB() {
	dbClient = clients.GetDynamoDBClient()
}

// StoreFeedbackBatch writes accepted feedback in DynamoDB batch chunks,
// retrying unprocessed items with exponential backoff.
func StoreFeedbackBatch(ctx context.Context, feedback []models.Feedback) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	const maxBatchSize = 25
	for i := 0; i < len(feedback); i += maxBatchSize {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
			end := i + maxBatchSize
			if end > len(feedback) {
				end = len(feedback)
			}

			writeRequests := make([]types.WriteRequest, 0, maxBatchSize)
			for _, fb := range feedback[i:end] {
				item, err := attributevalue.MarshalMap(fb)
				if err != nil {
					return fmt.Errorf("[DynamoDB] Failed to marshal feedback %s: %w", fb.ID, err)
				}
				writeRequests = append(writeRequests, types.WriteRequest{
					PutRequest: &types.PutRequest{Item: item},
				})
			}

			out, err := dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					FEEDBACK_TABLE_NAME: writeRequests,
				},
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed to batch write feedback: %w", err)
			}

			retryCount := 0
			backoffDuration := time.Millisecond * 500
			for len(out.UnprocessedItems) > 0 && retryCount < 3 {
				time.Sleep(backoffDuration)
				backoffDuration *= 2
				slog.Warn("[DynamoDB] Retrying unprocessed items...",
					slog.Int("retry_attempt", retryCount+1),
					slog.Int("remaining_items", len(out.UnprocessedItems[FEEDBACK_TABLE_NAME])),
				)

				out, err = dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
					RequestItems: out.UnprocessedItems,
				})
				if err != nil {
					slog.Error("[DynamoDB] Error retrying batch write",
						slog.String("error", err.Error()))
					return fmt.Errorf("[DynamoDB] Failed to retry batch write: %w", err)
				}
				retryCount++
			}

			if len(out.UnprocessedItems) > 0 {
				slog.Error("[DynamoDB] Some items were not written even after retries",
					slog.Int("remaining_items", len(out.UnprocessedItems[FEEDBACK_TABLE_NAME])))
			}
		}
	}
	slog.Info("[DynamoDB] Successfully stored feedback batch",
		slog.Int("count", len(feedback)))
	return nil
}

// Store adapts the package-level queries for constructor injection, keeping
// workers testable with fakes.
type Store struct{}

func (Store) GetEventFeedback(ctx context.Context, eventID string) ([]models.Feedback, error) {
	return GetEventFeedback(ctx, eventID)
}

// GetEventFeedback loads every stored feedback item for one event.
func GetEventFeedback(ctx context.Context, eventID string) ([]models.Feedback, error) {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	var feedback []models.Feedback
	input := &dynamodb.QueryInput{
		TableName:              aws.String(FEEDBACK_TABLE_NAME),
		KeyConditionExpression: aws.String("event_id = :event_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":event_id": &types.AttributeValueMemberS{Value: eventID},
		},
	}

	paginator := dynamodb.NewQueryPaginator(dbClient, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Query for feedback failed: %w", err)
		}
		var page []models.Feedback
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("[DynamoDB] Failed to unmarshal feedback: %w", err)
		}
		feedback = append(feedback, page...)
	}

	return feedback, nil
}

// StoreReport persists one finished (or failed) report run.
func StoreReport(ctx context.Context, report models.Report) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	item, err := attributevalue.MarshalMap(report)
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to marshal report %s: %w", report.RunID, err)
	}

	_, err = dbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(REPORTS_TABLE_NAME),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to store report: %w", err)
	}

	slog.Info("[DynamoDB] Stored report",
		slog.String("run_id", report.RunID),
		slog.String("event_id", report.EventID),
		slog.String("status", string(report.Status)))
	return nil
}

// GetReport fetches one report run by id.
func GetReport(ctx context.Context, runID string) (*models.Report, error) {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	out, err := dbClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(REPORTS_TABLE_NAME),
		Key: map[string]types.AttributeValue{
			"run_id": &types.AttributeValueMemberS{Value: runID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("[DynamoDB] Failed to get report: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var report models.Report
	if err := attributevalue.UnmarshalMap(out.Item, &report); err != nil {
		return nil, fmt.Errorf("[DynamoDB] Failed to unmarshal report: %w", err)
	}
	return &report, nil
}

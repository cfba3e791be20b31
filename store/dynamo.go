package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tabeth/reelreviews/models"
)

// reviewerIndex is the GSI used to list reviews by author across movies.
const reviewerIndex = "reviewerId-index"

// batchWriteMax is the DynamoDB limit on items per BatchWriteItem call.
const batchWriteMax = 25

// DynamoAPI is the slice of the DynamoDB client used by DynamoStore.
// *dynamodb.Client satisfies it; tests substitute a fake.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoStore is a DynamoDB implementation of the Store interface. Reviews
// live in a single table with partition key movieId (N) and sort key
// reviewId (N), plus the reviewerId-index GSI for author listings.
type DynamoStore struct {
	client DynamoAPI
	table  string
}

// NewDynamoStore connects to DynamoDB using the default AWS credential
// chain. A non-empty endpoint overrides the service URL, which is how the
// store is pointed at a local DynamoDB in development.
func NewDynamoStore(ctx context.Context, table, region, endpoint string) (*DynamoStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &DynamoStore{client: client, table: table}, nil
}

// NewDynamoStoreWithClient wraps an existing client. Used by tests.
func NewDynamoStoreWithClient(client DynamoAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

// reviewKey builds the primary key of a review item.
func reviewKey(movieID, reviewID int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"movieId":  &types.AttributeValueMemberN{Value: strconv.Itoa(movieID)},
		"reviewId": &types.AttributeValueMemberN{Value: strconv.Itoa(reviewID)},
	}
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// PutReview creates a review. The (movieId, reviewId) key must be free.
func (s *DynamoStore) PutReview(ctx context.Context, review *models.Review) error {
	// PutTranslation sets nested map members, and DynamoDB rejects a SET on
	// a document path whose parent does not exist. Every item therefore
	// carries a translations map from birth.
	r := *review
	if r.Translations == nil {
		r.Translations = map[string]models.TranslationEntry{}
	}

	item, err := attributevalue.MarshalMap(r)
	if err != nil {
		return fmt.Errorf("marshalling review: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(movieId)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrReviewAlreadyExists
		}
		return fmt.Errorf("putting review: %w", err)
	}
	return nil
}

// GetReview fetches one review by key.
func (s *DynamoStore) GetReview(ctx context.Context, movieID, reviewID int) (*models.Review, error) {
	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       reviewKey(movieID, reviewID),
	})
	if err != nil {
		return nil, fmt.Errorf("getting review: %w", err)
	}
	if len(resp.Item) == 0 {
		return nil, ErrReviewNotFound
	}

	review := &models.Review{}
	if err := attributevalue.UnmarshalMap(resp.Item, review); err != nil {
		return nil, fmt.Errorf("unmarshalling review: %w", err)
	}
	return review, nil
}

// UpdateReviewContent overwrites content and reviewDate on an existing
// review. Authorship, identifiers, and cached translations are untouched.
func (s *DynamoStore) UpdateReviewContent(ctx context.Context, movieID, reviewID int, content, reviewDate string) error {
	names := map[string]string{
		"#content": "content",
		"#date":    "reviewDate",
	}
	values := map[string]types.AttributeValue{
		":content": &types.AttributeValueMemberS{Value: content},
	}

	update := "SET #content = :content"
	if reviewDate != "" {
		update += ", #date = :date"
		values[":date"] = &types.AttributeValueMemberS{Value: reviewDate}
	} else {
		update += " REMOVE #date"
	}

	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       reviewKey(movieID, reviewID),
		UpdateExpression:          aws.String(update),
		ConditionExpression:       aws.String("attribute_exists(movieId)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("updating review: %w", err)
	}
	return nil
}

// DeleteReview removes one review by key.
func (s *DynamoStore) DeleteReview(ctx context.Context, movieID, reviewID int) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.table),
		Key:                 reviewKey(movieID, reviewID),
		ConditionExpression: aws.String("attribute_exists(movieId)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("deleting review: %w", err)
	}
	return nil
}

// ListReviews returns every review, optionally filtered to one author.
// The filtered form queries the reviewer GSI; the unfiltered form scans.
func (s *DynamoStore) ListReviews(ctx context.Context, reviewerID string) ([]models.Review, error) {
	var reviews []models.Review

	if reviewerID != "" {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(s.table),
			IndexName:              aws.String(reviewerIndex),
			KeyConditionExpression: aws.String("#reviewer = :reviewer"),
			ExpressionAttributeNames: map[string]string{
				"#reviewer": "reviewerId",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":reviewer": &types.AttributeValueMemberS{Value: reviewerID},
			},
		}
		for {
			resp, err := s.client.Query(ctx, input)
			if err != nil {
				return nil, fmt.Errorf("querying reviews by reviewer: %w", err)
			}
			page, err := unmarshalReviews(resp.Items)
			if err != nil {
				return nil, err
			}
			reviews = append(reviews, page...)
			if resp.LastEvaluatedKey == nil {
				break
			}
			input.ExclusiveStartKey = resp.LastEvaluatedKey
		}
	} else {
		input := &dynamodb.ScanInput{TableName: aws.String(s.table)}
		for {
			resp, err := s.client.Scan(ctx, input)
			if err != nil {
				return nil, fmt.Errorf("scanning reviews: %w", err)
			}
			page, err := unmarshalReviews(resp.Items)
			if err != nil {
				return nil, err
			}
			reviews = append(reviews, page...)
			if resp.LastEvaluatedKey == nil {
				break
			}
			input.ExclusiveStartKey = resp.LastEvaluatedKey
		}
	}

	sortReviews(reviews)
	return reviews, nil
}

// ListMovieReviews returns the reviews of one movie in reviewId order,
// optionally filtered to one author.
func (s *DynamoStore) ListMovieReviews(ctx context.Context, movieID int, reviewerID string) ([]models.Review, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("#movie = :movie"),
		ExpressionAttributeNames: map[string]string{
			"#movie": "movieId",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":movie": &types.AttributeValueMemberN{Value: strconv.Itoa(movieID)},
		},
	}
	if reviewerID != "" {
		input.FilterExpression = aws.String("#reviewer = :reviewer")
		input.ExpressionAttributeNames["#reviewer"] = "reviewerId"
		input.ExpressionAttributeValues[":reviewer"] = &types.AttributeValueMemberS{Value: reviewerID}
	}

	var reviews []models.Review
	for {
		resp, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("querying movie reviews: %w", err)
		}
		page, err := unmarshalReviews(resp.Items)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, page...)
		if resp.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = resp.LastEvaluatedKey
	}
	return reviews, nil
}

// MaxReviewID returns the highest assigned reviewId within a movie, or 0
// when the movie has no reviews yet.
func (s *DynamoStore) MaxReviewID(ctx context.Context, movieID int) (int, error) {
	resp, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("#movie = :movie"),
		ExpressionAttributeNames: map[string]string{
			"#movie": "movieId",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":movie": &types.AttributeValueMemberN{Value: strconv.Itoa(movieID)},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, fmt.Errorf("querying max review id: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, nil
	}

	review := &models.Review{}
	if err := attributevalue.UnmarshalMap(resp.Items[0], review); err != nil {
		return 0, fmt.Errorf("unmarshalling review: %w", err)
	}
	return review.ReviewID, nil
}

// PutTranslation writes one language's cache entry on an existing review.
// The nested SET leaves sibling languages and all other attributes alone.
func (s *DynamoStore) PutTranslation(ctx context.Context, movieID, reviewID int, language string, entry models.TranslationEntry) error {
	value, err := attributevalue.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshalling translation entry: %w", err)
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.table),
		Key:                 reviewKey(movieID, reviewID),
		UpdateExpression:    aws.String("SET #translations.#lang = :entry"),
		ConditionExpression: aws.String("attribute_exists(movieId)"),
		ExpressionAttributeNames: map[string]string{
			"#translations": "translations",
			"#lang":         language,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":entry": value,
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("putting translation: %w", err)
	}
	return nil
}

// BatchPutReviews bulk-loads reviews in chunks of 25, resubmitting any
// items DynamoDB reports as unprocessed.
func (s *DynamoStore) BatchPutReviews(ctx context.Context, reviews []models.Review) error {
	for start := 0; start < len(reviews); start += batchWriteMax {
		end := start + batchWriteMax
		if end > len(reviews) {
			end = len(reviews)
		}

		writeReqs := make([]types.WriteRequest, 0, end-start)
		for _, review := range reviews[start:end] {
			r := review
			if r.Translations == nil {
				r.Translations = map[string]models.TranslationEntry{}
			}
			item, err := attributevalue.MarshalMap(r)
			if err != nil {
				return fmt.Errorf("marshalling review %d/%d: %w", r.MovieID, r.ReviewID, err)
			}
			writeReqs = append(writeReqs, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
		}

		pending := map[string][]types.WriteRequest{s.table: writeReqs}
		for attempt := 0; len(pending[s.table]) > 0; attempt++ {
			if attempt >= 3 {
				return fmt.Errorf("%d reviews left unprocessed after %d attempts", len(pending[s.table]), attempt)
			}
			resp, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
			if err != nil {
				return fmt.Errorf("batch writing reviews: %w", err)
			}
			pending = resp.UnprocessedItems
		}
	}
	return nil
}

// Ping verifies the table is reachable.
func (s *DynamoStore) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)})
	if err != nil {
		return fmt.Errorf("describing table: %w", err)
	}
	return nil
}

func unmarshalReviews(items []map[string]types.AttributeValue) ([]models.Review, error) {
	reviews := make([]models.Review, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &reviews); err != nil {
		return nil, fmt.Errorf("unmarshalling reviews: %w", err)
	}
	return reviews, nil
}

// sortReviews orders by (movieId, reviewId). Scan and GSI results come back
// in storage order, which is not the order the API promises.
func sortReviews(reviews []models.Review) {
	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].MovieID != reviews[j].MovieID {
			return reviews[i].MovieID < reviews[j].MovieID
		}
		return reviews[i].ReviewID < reviews[j].ReviewID
	})
}

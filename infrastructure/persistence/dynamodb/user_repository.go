package dynamodb

import (
	"context"
	"fmt"
	"time"

	"wayfarer-backend/application/ports"
	"wayfarer-backend/domain/core/entities"
	"wayfarer-backend/domain/core/valueobjects"
	appErrors "wayfarer-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// UserRepository implements ports.UserRepository using DynamoDB.
// Users live under PK=USER#<id> SK=PROFILE, with GSI1 keyed by email for
// login and uniqueness lookups.
type UserRepository struct {
	client     *dynamodb.Client
	tableName  string
	emailIndex string
	logger     *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *dynamodb.Client, tableName, emailIndex string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:     client,
		tableName:  tableName,
		emailIndex: emailIndex,
		logger:     logger,
	}
}

// userItem represents the DynamoDB item structure for a user
type userItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	GSI1PK       string `dynamodbav:"GSI1PK"`
	GSI1SK       string `dynamodbav:"GSI1SK"`
	EntityType   string `dynamodbav:"EntityType"`
	UserID       string `dynamodbav:"UserID"`
	Email        string `dynamodbav:"Email"`
	Name         string `dynamodbav:"Name"`
	PasswordHash string `dynamodbav:"PasswordHash"`
	CreatedAt    string `dynamodbav:"CreatedAt"`
	UpdatedAt    string `dynamodbav:"UpdatedAt"`
	Version      int    `dynamodbav:"Version"`
}

// Save persists a user to DynamoDB
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	item := userItem{
		PK:           fmt.Sprintf("USER#%s", user.ID().String()),
		SK:           "PROFILE",
		GSI1PK:       fmt.Sprintf("EMAIL#%s", user.Email()),
		GSI1SK:       "PROFILE",
		EntityType:   "USER",
		UserID:       user.ID().String(),
		Email:        user.Email(),
		Name:         user.Name(),
		PasswordHash: user.PasswordHash(),
		CreatedAt:    user.CreatedAt().Format(time.RFC3339),
		UpdatedAt:    user.UpdatedAt().Format(time.RFC3339),
		Version:      user.Version(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save user to DynamoDB",
			zap.Error(err),
			zap.String("userID", user.ID().String()),
		)
		return appErrors.NewDatabaseError("save user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id valueobjects.UserID) (*entities.User, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", id.String())},
			"SK": &types.AttributeValueMemberS{Value: "PROFILE"},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, appErrors.NewDatabaseError("get user", err)
	}
	if result.Item == nil {
		return nil, appErrors.NewNotFoundError("user")
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return r.reconstruct(item)
}

// GetByEmail retrieves a user by email via the email index
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	if email == "" {
		return nil, appErrors.NewValidationError("email cannot be empty")
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.emailIndex),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("EMAIL#%s", email)},
			":sk": &types.AttributeValueMemberS{Value: "PROFILE"},
		},
		Limit: aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, appErrors.NewDatabaseError("get user by email", err)
	}
	if len(result.Items) == 0 {
		return nil, appErrors.NewNotFoundError("user")
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return r.reconstruct(item)
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id valueobjects.UserID) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", id.String())},
			"SK": &types.AttributeValueMemberS{Value: "PROFILE"},
		},
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		return appErrors.NewDatabaseError("delete user", err)
	}
	return nil
}

func (r *UserRepository) reconstruct(item userItem) (*entities.User, error) {
	id, err := valueobjects.NewUserIDFromString(item.UserID)
	if err != nil {
		return nil, fmt.Errorf("stored user has invalid ID %q: %w", item.UserID, err)
	}
	createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}
	updatedAt, err := time.Parse(time.RFC3339, item.UpdatedAt)
	if err != nil {
		updatedAt = createdAt
	}

	return entities.ReconstructUser(id, item.Email, item.Name, item.PasswordHash, createdAt, updatedAt, item.Version), nil
}

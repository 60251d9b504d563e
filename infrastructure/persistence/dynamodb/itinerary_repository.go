package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"wayfarer-backend/application/ports"
	"wayfarer-backend/domain/core/entities"
	"wayfarer-backend/domain/core/valueobjects"
	appErrors "wayfarer-backend/pkg/errors"
	"wayfarer-backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const publicPartition = "VIS#public"

// ItineraryRepository implements ports.ItineraryRepository using DynamoDB.
// Itineraries live under PK=USER#<userID> SK=ITIN#<id>, with GSI1 keyed by
// itinerary ID for direct lookups and GSI2 holding only public itineraries
// under a shared partition ordered by creation time.
type ItineraryRepository struct {
	client      *dynamodb.Client
	tableName   string
	idIndex     string
	publicIndex string
	logger      *zap.Logger
}

// NewItineraryRepository creates a new ItineraryRepository
func NewItineraryRepository(client *dynamodb.Client, tableName, idIndex, publicIndex string, logger *zap.Logger) ports.ItineraryRepository {
	return &ItineraryRepository{
		client:      client,
		tableName:   tableName,
		idIndex:     idIndex,
		publicIndex: publicIndex,
		logger:      logger,
	}
}

// activityItem is the nested DynamoDB shape for a single activity
type activityItem struct {
	ID        string  `dynamodbav:"ID"`
	Name      string  `dynamodbav:"Name"`
	Location  string  `dynamodbav:"Location,omitempty"`
	Day       int     `dynamodbav:"Day"`
	StartTime string  `dynamodbav:"StartTime,omitempty"`
	EndTime   string  `dynamodbav:"EndTime,omitempty"`
	Notes     string  `dynamodbav:"Notes,omitempty"`
	Cost      float64 `dynamodbav:"Cost,omitempty"`
}

// itineraryItem represents the DynamoDB item structure for an itinerary
type itineraryItem struct {
	PK          string         `dynamodbav:"PK"`
	SK          string         `dynamodbav:"SK"`
	GSI1PK      string         `dynamodbav:"GSI1PK"`
	GSI1SK      string         `dynamodbav:"GSI1SK"`
	GSI2PK      string         `dynamodbav:"GSI2PK,omitempty"` // Set only for public itineraries
	GSI2SK      string         `dynamodbav:"GSI2SK,omitempty"`
	EntityType  string         `dynamodbav:"EntityType"`
	ItineraryID string         `dynamodbav:"ItineraryID"`
	UserID      string         `dynamodbav:"UserID"`
	Title       string         `dynamodbav:"Title"`
	Description string         `dynamodbav:"Description,omitempty"`
	Destination string         `dynamodbav:"Destination"`
	StartDate   string         `dynamodbav:"StartDate"`
	EndDate     string         `dynamodbav:"EndDate"`
	Status      string         `dynamodbav:"Status"`
	Visibility  string         `dynamodbav:"Visibility"`
	Activities  []activityItem `dynamodbav:"Activities"`
	CreatedAt   string         `dynamodbav:"CreatedAt"`
	UpdatedAt   string         `dynamodbav:"UpdatedAt"`
	Version     int            `dynamodbav:"Version"`
}

// Save persists an itinerary, including its nested activities, as one item
func (r *ItineraryRepository) Save(ctx context.Context, itinerary *entities.Itinerary) error {
	item := r.toItem(itinerary)

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal itinerary: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save itinerary to DynamoDB",
			zap.Error(err),
			zap.String("itineraryID", itinerary.ID().String()),
		)
		return appErrors.NewDatabaseError("save itinerary", err)
	}

	return nil
}

// GetByID retrieves an itinerary by its ID via the ID index
func (r *ItineraryRepository) GetByID(ctx context.Context, id valueobjects.ItineraryID) (*entities.Itinerary, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.idIndex),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("ITIN#%s", id.String())},
			":sk": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		Limit: aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, appErrors.NewDatabaseError("get itinerary", err)
	}
	if len(result.Items) == 0 {
		return nil, appErrors.NewNotFoundError("itinerary")
	}

	var item itineraryItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal itinerary: %w", err)
	}

	return r.reconstruct(item)
}

// ListByUser retrieves a page of a user's itineraries matching the filter
func (r *ItineraryRepository) ListByUser(ctx context.Context, userID string, filter ports.ListFilter) ([]*entities.Itinerary, int, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(fmt.Sprintf("USER#%s", userID))).
		And(expression.Key("SK").BeginsWith("ITIN#"))

	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if cond, ok := buildFilterCondition(filter); ok {
		builder = builder.WithFilter(cond)
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list expression: %w", err)
	}

	items, err := r.queryAll(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError("list itineraries", err)
	}

	return r.page(items, filter)
}

// ListPublic retrieves a page of publicly visible itineraries
func (r *ItineraryRepository) ListPublic(ctx context.Context, filter ports.ListFilter) ([]*entities.Itinerary, int, error) {
	keyCond := expression.Key("GSI2PK").Equal(expression.Value(publicPartition))

	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if cond, ok := buildFilterCondition(filter); ok {
		builder = builder.WithFilter(cond)
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build public list expression: %w", err)
	}

	items, err := r.queryAll(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.publicIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError("list public itineraries", err)
	}

	return r.page(items, filter)
}

// Delete removes an itinerary. The ID index supplies the table key.
func (r *ItineraryRepository) Delete(ctx context.Context, id valueobjects.ItineraryID) error {
	itinerary, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", itinerary.UserID())},
			"SK": &types.AttributeValueMemberS{Value: fmt.Sprintf("ITIN#%s", id.String())},
		},
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		return appErrors.NewDatabaseError("delete itinerary", err)
	}
	return nil
}

// queryAll drains every page of a query so the caller can paginate with an
// exact total match count
func (r *ItineraryRepository) queryAll(ctx context.Context, input *dynamodb.QueryInput) ([]itineraryItem, error) {
	var items []itineraryItem
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var item itineraryItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("Failed to unmarshal itinerary item", zap.Error(err))
				continue
			}
			items = append(items, item)
		}
	}
	return items, nil
}

// page sorts the matched items, slices out the requested page and returns
// the total match count alongside it
func (r *ItineraryRepository) page(items []itineraryItem, filter ports.ListFilter) ([]*entities.Itinerary, int, error) {
	sortItems(items, filter.Sort)
	total := len(items)

	offset := (filter.Page - 1) * filter.Limit
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []*entities.Itinerary{}, total, nil
	}
	end := offset + filter.Limit
	if end > total {
		end = total
	}

	result := make([]*entities.Itinerary, 0, end-offset)
	for _, item := range items[offset:end] {
		itinerary, err := r.reconstruct(item)
		if err != nil {
			r.logger.Warn("Skipping itinerary that failed reconstruction",
				zap.String("itineraryID", item.ItineraryID),
				zap.Error(err),
			)
			continue
		}
		result = append(result, itinerary)
	}
	return result, total, nil
}

// buildFilterCondition translates the list filter into a DynamoDB filter
// expression. Search matches title, description and destination.
func buildFilterCondition(filter ports.ListFilter) (expression.ConditionBuilder, bool) {
	var conds []expression.ConditionBuilder

	if filter.Status != "" {
		conds = append(conds, expression.Name("Status").Equal(expression.Value(filter.Status)))
	}
	if filter.Visibility != "" {
		conds = append(conds, expression.Name("Visibility").Equal(expression.Value(filter.Visibility)))
	}
	if filter.Destination != "" {
		conds = append(conds, expression.Name("Destination").Equal(expression.Value(filter.Destination)))
	}
	if filter.Search != "" {
		conds = append(conds, expression.Name("Title").Contains(filter.Search).
			Or(expression.Name("Description").Contains(filter.Search)).
			Or(expression.Name("Destination").Contains(filter.Search)))
	}

	if len(conds) == 0 {
		return expression.ConditionBuilder{}, false
	}
	cond := conds[0]
	for _, c := range conds[1:] {
		cond = cond.And(c)
	}
	return cond, true
}

// sortItems orders items by the requested field; a leading '-' means
// descending. Unknown fields fall back to creation time.
func sortItems(items []itineraryItem, sortKey string) {
	desc := strings.HasPrefix(sortKey, "-")
	field := strings.TrimPrefix(sortKey, "-")

	less := func(a, b itineraryItem) bool {
		switch field {
		case "title":
			return a.Title < b.Title
		case "startDate":
			return a.StartDate < b.StartDate
		case "updatedAt":
			return a.UpdatedAt < b.UpdatedAt
		default:
			return a.CreatedAt < b.CreatedAt
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func (r *ItineraryRepository) toItem(itinerary *entities.Itinerary) itineraryItem {
	activities := itinerary.Activities()
	nested := make([]activityItem, 0, len(activities))
	for _, a := range activities {
		nested = append(nested, activityItem{
			ID:        a.ID,
			Name:      a.Name,
			Location:  a.Location,
			Day:       a.Day,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			Notes:     a.Notes,
			Cost:      a.Cost,
		})
	}

	item := itineraryItem{
		PK:          fmt.Sprintf("USER#%s", itinerary.UserID()),
		SK:          fmt.Sprintf("ITIN#%s", itinerary.ID().String()),
		GSI1PK:      fmt.Sprintf("ITIN#%s", itinerary.ID().String()),
		GSI1SK:      "METADATA",
		EntityType:  "ITINERARY",
		ItineraryID: itinerary.ID().String(),
		UserID:      itinerary.UserID(),
		Title:       itinerary.Title(),
		Description: itinerary.Description(),
		Destination: itinerary.Destination(),
		StartDate:   utils.FormatDate(itinerary.Dates().Start()),
		EndDate:     utils.FormatDate(itinerary.Dates().End()),
		Status:      string(itinerary.Status()),
		Visibility:  string(itinerary.Visibility()),
		Activities:  nested,
		CreatedAt:   itinerary.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   itinerary.UpdatedAt().Format(time.RFC3339),
		Version:     itinerary.Version(),
	}

	// Public itineraries are projected into the shared listing partition;
	// private ones keep the sparse index attributes empty so they drop out
	if itinerary.IsPublic() {
		item.GSI2PK = publicPartition
		item.GSI2SK = item.CreatedAt
	}

	return item
}

func (r *ItineraryRepository) reconstruct(item itineraryItem) (*entities.Itinerary, error) {
	id, err := valueobjects.NewItineraryIDFromString(item.ItineraryID)
	if err != nil {
		return nil, fmt.Errorf("stored itinerary has invalid ID %q: %w", item.ItineraryID, err)
	}

	start, err := utils.ParseDate(item.StartDate)
	if err != nil {
		return nil, fmt.Errorf("stored itinerary has invalid start date %q: %w", item.StartDate, err)
	}
	end, err := utils.ParseDate(item.EndDate)
	if err != nil {
		return nil, fmt.Errorf("stored itinerary has invalid end date %q: %w", item.EndDate, err)
	}
	dates, err := valueobjects.NewDateRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("stored itinerary has invalid date range: %w", err)
	}

	activities := make([]entities.Activity, 0, len(item.Activities))
	for _, a := range item.Activities {
		activities = append(activities, entities.Activity{
			ID:        a.ID,
			Name:      a.Name,
			Location:  a.Location,
			Day:       a.Day,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			Notes:     a.Notes,
			Cost:      a.Cost,
		})
	}

	createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}
	updatedAt, err := time.Parse(time.RFC3339, item.UpdatedAt)
	if err != nil {
		updatedAt = createdAt
	}

	return entities.ReconstructItinerary(
		id,
		item.UserID,
		item.Title,
		item.Description,
		item.Destination,
		dates,
		entities.ItineraryStatus(item.Status),
		entities.Visibility(item.Visibility),
		activities,
		createdAt,
		updatedAt,
		item.Version,
	), nil
}

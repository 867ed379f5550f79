package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

// customerNameIndex is the GSI that keys orders by the customer name they
// were placed under.
const customerNameIndex = "name-index"

type OrderRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewOrderRepository(client *dynamodb.Client, tableName string) *OrderRepository {
	return &OrderRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *OrderRepository) PutOrder(ctx context.Context, order *domain.Order) error {
	av, err := attributevalue.MarshalMap(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})

	if err != nil {
		return fmt.Errorf("failed to put order: %w", err)
	}

	return nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if result.Item == nil {
		return nil, ErrOrderNotFound
	}

	var order domain.Order
	if err := attributevalue.UnmarshalMap(result.Item, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order: %w", err)
	}

	return &order, nil
}

// ListOrders returns the orders placed under a customer name, newest first.
// Payment is filtered server-side; month/year filtering happens on the
// fetched page since DynamoDB cannot match date components.
func (r *OrderRepository) ListOrders(ctx context.Context, name string, filter domain.HistoryFilter) ([]domain.Order, error) {
	keyCond := expression.Key("name").Equal(expression.Value(name))

	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if filter.Payment != "" {
		builder = builder.WithFilter(
			expression.Equal(expression.Name("payment"), expression.Value(filter.Payment)),
		)
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, err
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(customerNameIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if expr.Filter() != nil {
		input.FilterExpression = expr.Filter()
	}

	var orders []domain.Order

	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query orders: %w", err)
		}

		var batch []domain.Order
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal orders: %w", err)
		}
		orders = append(orders, batch...)
	}

	orders = FilterOrdersByDate(orders, filter)

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})

	return orders, nil
}

// FilterOrdersByDate applies the month/year parts of a history filter.
func FilterOrdersByDate(orders []domain.Order, filter domain.HistoryFilter) []domain.Order {
	if filter.Month == 0 && filter.Year == 0 {
		return orders
	}

	filtered := orders[:0]
	for _, o := range orders {
		if filter.Month != 0 && int(o.OrderDate.Month()) != filter.Month {
			continue
		}
		if filter.Year != 0 && o.OrderDate.Year() != filter.Year {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered
}

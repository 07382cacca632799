/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeTable is an in-memory table honouring the two key-existence
// conditions the handler uses.
type fakeTable struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
	calls []string
	err   error
}

func newFakeTable() *fakeTable {
	return &fakeTable{items: make(map[string]map[string]types.AttributeValue)}
}

func keyString(key map[string]types.AttributeValue) string {
	pk, _ := key["PK"].(*types.AttributeValueMemberS)
	sk, _ := key["SK"].(*types.AttributeValueMemberS)
	if pk == nil || sk == nil {
		return ""
	}
	return pk.Value + "|" + sk.Value
}

func (f *fakeTable) check(condition *string, exists bool) error {
	if condition == nil {
		return nil
	}
	switch aws.ToString(condition) {
	case conditionAbsent:
		if exists {
			return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
		}
	case conditionPresent:
		if !exists {
			return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
		}
	default:
		return fmt.Errorf("unsupported condition %q", aws.ToString(condition))
	}
	return nil
}

func (f *fakeTable) GetItem(_ context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "GetItem")
	if f.err != nil {
		return nil, f.err
	}
	return &sdk.GetItemOutput{Item: f.items[keyString(in.Key)]}, nil
}

func (f *fakeTable) PutItem(_ context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "PutItem")
	if f.err != nil {
		return nil, f.err
	}
	k := keyString(in.Item)
	if k == "" {
		return nil, fmt.Errorf("item without key")
	}
	_, exists := f.items[k]
	if err := f.check(in.ConditionExpression, exists); err != nil {
		return nil, err
	}
	f.items[k] = in.Item
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeTable) UpdateItem(_ context.Context, in *sdk.UpdateItemInput, _ ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "UpdateItem")
	if f.err != nil {
		return nil, f.err
	}
	k := keyString(in.Key)
	item, exists := f.items[k]
	if err := f.check(in.ConditionExpression, exists); err != nil {
		return nil, err
	}

	expr := strings.TrimPrefix(aws.ToString(in.UpdateExpression), "SET ")
	for _, clause := range strings.Split(expr, ", ") {
		name, value, ok := strings.Cut(clause, " = ")
		if !ok {
			return nil, fmt.Errorf("bad clause %q", clause)
		}
		item[in.ExpressionAttributeNames[name]] = in.ExpressionAttributeValues[value]
	}
	return &sdk.UpdateItemOutput{}, nil
}

func (f *fakeTable) DeleteItem(_ context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "DeleteItem")
	if f.err != nil {
		return nil, f.err
	}
	k := keyString(in.Key)
	_, exists := f.items[k]
	if err := f.check(in.ConditionExpression, exists); err != nil {
		return nil, err
	}
	delete(f.items, k)
	return &sdk.DeleteItemOutput{}, nil
}

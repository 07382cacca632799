/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	log "github.com/sirupsen/logrus"

	"github.com/suparena/handlestore/config"
	"github.com/suparena/handlestore/errors"
	"github.com/suparena/handlestore/handlemodels"
	"github.com/suparena/handlestore/handler"
	"github.com/suparena/handlestore/registry"
)

// BackendName is the registry key of this backend.
const BackendName = "dynamodb"

// EntityType marks handle items in a shared table.
const EntityType = "Handle"

const (
	conditionAbsent  = "attribute_not_exists(PK)"
	conditionPresent = "attribute_exists(PK)"
)

func init() {
	registry.RegisterIndexMap[Item](map[string]string{
		"PK": "HANDLE#{Handle}",
		"SK": "HANDLE#{Handle}",
	})
	registry.RegisterBackend(BackendName, func(cfg *config.Config, obj handlemodels.Object, opts ...handler.Option) (handler.Handler, error) {
		return New(context.Background(), cfg, obj, opts...)
	})
}

// Item is the stored form of a handle registration.
type Item struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	Handle     string `dynamodbav:"Handle"`
	Target     string `dynamodbav:"Target"`
	PID        string `dynamodbav:"PID,omitempty"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
}

// Record converts the item to its model form.
func (i Item) Record() (handlemodels.HandleRecord, error) {
	created, err := strfmt.ParseDateTime(i.CreatedAt)
	if err != nil {
		return handlemodels.HandleRecord{}, fmt.Errorf("invalid CreatedAt on %s: %w", i.Handle, err)
	}
	updated, err := strfmt.ParseDateTime(i.UpdatedAt)
	if err != nil {
		return handlemodels.HandleRecord{}, fmt.Errorf("invalid UpdatedAt on %s: %w", i.Handle, err)
	}
	return handlemodels.HandleRecord{
		Handle:    i.Handle,
		Target:    i.Target,
		PID:       i.PID,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

// Handler keeps handle registrations in a DynamoDB table instead of a
// handle server. Useful as a local registry or a staging area.
type Handler struct {
	*handler.Base

	client    API
	tableName string
	now       func() time.Time
	logger    *log.Entry
}

// New connects to the table named in cfg.DynamoDB.
func New(ctx context.Context, cfg *config.Config, obj handlemodels.Object, opts ...handler.Option) (*Handler, error) {
	if cfg.DynamoDB.Table == "" {
		return nil, errors.NewValidationError("dynamodb.table", "must not be empty")
	}
	client, err := NewDynamoDBClient(ctx, cfg.DynamoDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return NewWithClient(cfg, obj, client, opts...), nil
}

// NewWithClient builds a Handler on an existing client.
func NewWithClient(cfg *config.Config, obj handlemodels.Object, client API, opts ...handler.Option) *Handler {
	base := handler.NewBase(cfg, obj, opts...)
	return &Handler{
		Base:      base,
		client:    client,
		tableName: cfg.DynamoDB.Table,
		now:       time.Now,
		logger:    base.Logger().WithFields(log.Fields{"backend": BackendName, "table": cfg.DynamoDB.Table}),
	}
}

// WithClock replaces the timestamp source.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

func (h *Handler) timestamp() string {
	return strfmt.DateTime(h.now().UTC()).String()
}

func (h *Handler) key(hdl string) (map[string]types.AttributeValue, map[string]string, error) {
	expanded, err := expandMacros(registry.MustIndexMap[Item](), Item{Handle: hdl})
	if err != nil {
		return nil, nil, err
	}
	key, err := buildKey(expanded)
	if err != nil {
		return nil, nil, err
	}
	return key, expanded, nil
}

// CreateHandle stores the object's handle unless it already exists.
func (h *Handler) CreateHandle(ctx context.Context, obj handlemodels.Object) error {
	hdl, err := h.ResolveHandle(handlemodels.FromObject(obj))
	if err != nil {
		return err
	}
	_, expanded, err := h.key(hdl)
	if err != nil {
		return err
	}

	target, err := h.TargetFor(obj)
	if err != nil {
		return err
	}

	ts := h.timestamp()
	item := Item{
		PK:         expanded["PK"],
		SK:         expanded["SK"],
		EntityType: EntityType,
		Handle:     hdl,
		Target:     target,
		PID:        obj.ID(),
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal handle item: %w", err)
	}

	_, err = h.client.PutItem(ctx, &sdk.PutItemInput{
		TableName:           aws.String(h.tableName),
		Item:                av,
		ConditionExpression: aws.String(conditionAbsent),
	})
	if err != nil {
		if isConditionFailure(err) {
			return errors.NewAlreadyExistsError(hdl)
		}
		return fmt.Errorf("PutItem failed for %s: %w", hdl, err)
	}
	h.logger.WithFields(log.Fields{"handle": hdl, "target": item.Target}).Info("minted handle")
	return nil
}

// ReadHandle returns the target stored for ref.
func (h *Handler) ReadHandle(ctx context.Context, ref handlemodels.HandleRef) (string, error) {
	item, err := h.get(ctx, ref)
	if err != nil {
		return "", err
	}
	return item.Target, nil
}

// Record returns the full registration stored for ref.
func (h *Handler) Record(ctx context.Context, ref handlemodels.HandleRef) (handlemodels.HandleRecord, error) {
	item, err := h.get(ctx, ref)
	if err != nil {
		return handlemodels.HandleRecord{}, err
	}
	return item.Record()
}

func (h *Handler) get(ctx context.Context, ref handlemodels.HandleRef) (*Item, error) {
	hdl, err := h.ResolveHandle(ref)
	if err != nil {
		return nil, err
	}
	key, _, err := h.key(hdl)
	if err != nil {
		return nil, err
	}

	out, err := h.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:      aws.String(h.tableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem failed for %s: %w", hdl, err)
	}
	if out.Item == nil {
		return nil, errors.NewNotFoundError(hdl)
	}

	item := &Item{}
	if err := attributevalue.UnmarshalMap(out.Item, item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal handle item: %w", err)
	}
	return item, nil
}

// UpdateHandle repoints an existing handle.
func (h *Handler) UpdateHandle(ctx context.Context, ref handlemodels.HandleRef, target string) error {
	hdl, err := h.ResolveHandle(ref)
	if err != nil {
		return err
	}
	if err := handler.ValidateTarget(target); err != nil {
		return err
	}
	key, _, err := h.key(hdl)
	if err != nil {
		return err
	}

	expr, names, values, err := buildUpdateExpression(map[string]string{
		"Target":    target,
		"UpdatedAt": h.timestamp(),
	})
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	_, err = h.client.UpdateItem(ctx, &sdk.UpdateItemInput{
		TableName:                 aws.String(h.tableName),
		Key:                       key,
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       aws.String(conditionPresent),
		ReturnValues:              types.ReturnValueNone,
	})
	if err != nil {
		if isConditionFailure(err) {
			return errors.NewNotFoundError(hdl)
		}
		return fmt.Errorf("UpdateItem failed for %s: %w", hdl, err)
	}
	h.logger.WithFields(log.Fields{"handle": hdl, "target": target}).Info("updated handle")
	return nil
}

// DeleteHandle removes the registration.
func (h *Handler) DeleteHandle(ctx context.Context, ref handlemodels.HandleRef) error {
	hdl, err := h.ResolveHandle(ref)
	if err != nil {
		return err
	}
	key, _, err := h.key(hdl)
	if err != nil {
		return err
	}

	_, err = h.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:           aws.String(h.tableName),
		Key:                 key,
		ConditionExpression: aws.String(conditionPresent),
	})
	if err != nil {
		if isConditionFailure(err) {
			return errors.NewNotFoundError(hdl)
		}
		return fmt.Errorf("DeleteItem failed for %s: %w", hdl, err)
	}
	h.logger.WithField("handle", hdl).Info("deleted handle")
	return nil
}

func isConditionFailure(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return stderrors.As(err, &cfe)
}

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/thenoetrevino/pipeboard/internal/database"
	"github.com/thenoetrevino/pipeboard/internal/events"
	"github.com/thenoetrevino/pipeboard/internal/models"
)

// Service defines all pipeline board business operations
type Service interface {
	Stages(ctx context.Context) ([]models.Column, error)
	Snapshot(ctx context.Context) ([]models.Item, error)
	GetItem(ctx context.Context, itemID string) (*models.Item, error)
	CreateItem(ctx context.Context, req CreateItemRequest) (*models.Item, error)
	MoveItem(ctx context.Context, itemID, stageID string) (*models.Item, error)
	ReorderStage(ctx context.Context, stageID string, orderedIDs []string) error
	DeleteItem(ctx context.Context, itemID string) error
}

// CreateItemRequest contains the data needed to create a new item
type CreateItemRequest struct {
	StageID string
	Title   string
	Notes   string
	Fields  map[string]string
}

// service implements Service on top of the store
type service struct {
	repo        database.DataStore
	eventClient events.EventPublisher
}

// NewService creates a new pipeline service. eventClient may be nil, in
// which case no live updates are published.
func NewService(repo database.DataStore, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

func (s *service) Stages(ctx context.Context) ([]models.Column, error) {
	stages, err := s.repo.ListStages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	return stages, nil
}

func (s *service) Snapshot(ctx context.Context) ([]models.Item, error) {
	items, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return items, nil
}

func (s *service) GetItem(ctx context.Context, itemID string) (*models.Item, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, ErrInvalidItemID
	}
	return s.repo.GetItem(ctx, itemID)
}

// CreateItem validates and stores a new item at the end of its stage
func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*models.Item, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}
	if strings.TrimSpace(req.StageID) == "" {
		return nil, ErrInvalidStageID
	}

	item, err := s.repo.CreateItem(ctx, req.StageID, title, req.Notes, req.Fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.publish(item.ID, item.StageID)

	return item, nil
}

// MoveItem moves an item to the end of another stage
func (s *service) MoveItem(ctx context.Context, itemID, stageID string) (*models.Item, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, ErrInvalidItemID
	}
	if strings.TrimSpace(stageID) == "" {
		return nil, ErrInvalidStageID
	}

	item, err := s.repo.MoveItem(ctx, itemID, stageID)
	if err != nil {
		return nil, fmt.Errorf("failed to move item: %w", err)
	}

	s.publish(itemID, stageID)

	return item, nil
}

// ReorderStage stores a new order for the items of one stage
func (s *service) ReorderStage(ctx context.Context, stageID string, orderedIDs []string) error {
	if strings.TrimSpace(stageID) == "" {
		return ErrInvalidStageID
	}
	for _, id := range orderedIDs {
		if strings.TrimSpace(id) == "" {
			return ErrInvalidItemID
		}
	}

	if err := s.repo.ReorderStage(ctx, stageID, orderedIDs); err != nil {
		return fmt.Errorf("failed to reorder stage: %w", err)
	}

	s.publish("", stageID)

	return nil
}

func (s *service) DeleteItem(ctx context.Context, itemID string) error {
	if strings.TrimSpace(itemID) == "" {
		return ErrInvalidItemID
	}

	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.publish(itemID, "")

	return nil
}

// publish notifies other boards that the store changed. Failures are
// logged by PublishWithRetry and never fail the write.
func (s *service) publish(itemID, stageID string) {
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:    events.EventBoardChanged,
		ItemID:  itemID,
		StageID: stageID,
	}, events.DefaultPublishRetries)
}

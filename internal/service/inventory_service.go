package service

import (
	"context"
	"errors"

	"github.com/claudioasousa/Espetaria-PRO/internal/dto"
	"github.com/claudioasousa/Espetaria-PRO/internal/model"
	"github.com/claudioasousa/Espetaria-PRO/internal/notify"
	"github.com/claudioasousa/Espetaria-PRO/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInventoryItemNotFound = errors.New("item de estoque não encontrado")

// InventoryService tracks raw supplies (charcoal, skewers, beer crates).
// Quantities are decimal because units like kg are fractional. Supplies are
// NOT consumed by sales — restocks are manual, deductions out of scope.
type InventoryService interface {
	List(ctx context.Context) ([]dto.InventoryItemResponse, error)
	Restock(ctx context.Context, id uuid.UUID, req dto.RestockRequest) (*dto.InventoryItemResponse, error)
	Alerts(ctx context.Context) ([]dto.InventoryItemResponse, error)
}

type inventoryService struct {
	repo     repository.InventoryRepository
	notifier *notify.Notifier
}

func NewInventoryService(repo repository.InventoryRepository, notifier *notify.Notifier) InventoryService {
	return &inventoryService{repo: repo, notifier: notifier}
}

func (s *inventoryService) List(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return inventoryToResponses(items), nil
}

// Restock applies an additive delta and returns the updated item.
func (s *inventoryService) Restock(ctx context.Context, id uuid.UUID, req dto.RestockRequest) (*dto.InventoryItemResponse, error) {
	if !req.Quantity.GreaterThan(decimal.Zero) {
		return nil, errors.New("quantidade de reposição deve ser positiva")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, ErrInventoryItemNotFound
	}
	if err := s.repo.AdjustQuantity(ctx, id, req.Quantity); err != nil {
		return nil, err
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, notify.TopicInventory)
	resp := inventoryToResponse(item)
	return &resp, nil
}

// Alerts returns items at or below their minimum stock level.
func (s *inventoryService) Alerts(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	items, err := s.repo.ListBelowMin(ctx)
	if err != nil {
		return nil, err
	}
	return inventoryToResponses(items), nil
}

func inventoryToResponse(item *model.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:       item.ID.String(),
		Name:     item.Name,
		Quantity: item.Quantity,
		Unit:     item.Unit,
		MinStock: item.MinStock,
	}
}

func inventoryToResponses(items []model.InventoryItem) []dto.InventoryItemResponse {
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for i := range items {
		out = append(out, inventoryToResponse(&items[i]))
	}
	return out
}

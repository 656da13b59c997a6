package handler

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/inventory-index/internal/core/domain"
	"github.com/rl1809/inventory-index/internal/core/service"
)

type GRPCHandler struct {
	inventoryService *service.InventoryService
	logger           *slog.Logger
}

func NewGRPCHandler(inventoryService *service.InventoryService, logger *slog.Logger) *GRPCHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GRPCHandler{inventoryService: inventoryService, logger: logger}
}

func (h *GRPCHandler) Save(ctx context.Context, req *SaveRequest) (*SaveResponse, error) {
	_, err := h.inventoryService.Register(ctx, req.Id, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFormat) {
			return &SaveResponse{
				Success: false,
				Message: err.Error(),
			}, nil
		}
		h.logger.ErrorContext(ctx, "grpc save failed", "id", req.Id, "error", err)
		return &SaveResponse{
			Success: false,
			Message: "internal error",
		}, nil
	}

	return &SaveResponse{
		Success: true,
		Message: "inventory saved",
	}, nil
}

func (h *GRPCHandler) Lookup(ctx context.Context, req *LookupRequest) (*LookupResponse, error) {
	inv, err := h.inventoryService.Find(ctx, req.Id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &LookupResponse{Found: false}, nil
		}
		h.logger.ErrorContext(ctx, "grpc lookup failed", "id", req.Id, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &LookupResponse{
		Found: true,
		Id:    inv.ID.String(),
		Name:  inv.Name,
	}, nil
}

package handlers

import "github.com/yungbote/storefront-backend/internal/domain/aggregates"

func badRequest(op string, err error) error {
	return aggregates.NewError(aggregates.CodeValidation, op, "invalid request body", err)
}

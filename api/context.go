package api

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-cms-backend/models"
)

type keyType string

const adminKey keyType = "admin"

// ctxWithAdmin adds the authenticated admin to the context
func ctxWithAdmin(ctx context.Context, admin *models.AdminUser) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

// ctxGetAdmin retrieves the authenticated admin from the context
func ctxGetAdmin(ctx context.Context) (*models.AdminUser, error) {
	if ctxValue := ctx.Value(adminKey); ctxValue == nil {
		return nil, errors.New("admin not found in context")
	} else if admin, ok := ctxValue.(*models.AdminUser); !ok {
		return nil, errors.New("value is not of type `*models.AdminUser`")
	} else {
		return admin, nil
	}
}

package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gymflow/gymflow/internal/types"
)

// RequestIDMiddleware tags every request with an ID for log correlation
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}

// IdentityMiddleware copies the caller identity headers into the context so
// downstream code can stamp created_by/updated_by and scope queries. The
// gateway in front of this service authenticates the caller and sets these
// headers.
func IdentityMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	if orgID := c.GetHeader(types.HeaderOrganizationID); orgID != "" {
		ctx = types.SetOrganizationID(ctx, orgID)
	}
	if branchID := c.GetHeader(types.HeaderBranchID); branchID != "" {
		ctx = types.SetBranchID(ctx, branchID)
	}
	if userID := c.GetHeader(types.HeaderUserID); userID != "" {
		ctx = types.SetUserID(ctx, userID)
	}

	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

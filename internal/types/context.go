package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID      ContextKey = "ctx_request_id"
	CtxOrganizationID ContextKey = "ctx_organization_id"
	CtxBranchID       ContextKey = "ctx_branch_id"
	CtxUserID         ContextKey = "ctx_user_id"
	CtxDBTransaction  ContextKey = "ctx_db_transaction"

	// Default values
	DefaultOrganizationID = "00000000-0000-0000-0000-000000000000"
	DefaultUserID         = "00000000-0000-0000-0000-000000000000"
)

// Request headers mapped into the context by the request middleware
const (
	HeaderRequestID      = "X-Request-ID"
	HeaderOrganizationID = "X-Organization-ID"
	HeaderBranchID       = "X-Branch-ID"
	HeaderUserID         = "X-User-ID"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetOrganizationID(ctx context.Context) string {
	if organizationID, ok := ctx.Value(CtxOrganizationID).(string); ok {
		return organizationID
	}
	return ""
}

func GetBranchID(ctx context.Context) string {
	if branchID, ok := ctx.Value(CtxBranchID).(string); ok {
		return branchID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// SetOrganizationID sets the organization ID in the context
func SetOrganizationID(ctx context.Context, organizationID string) context.Context {
	return context.WithValue(ctx, CtxOrganizationID, organizationID)
}

// SetBranchID sets the branch ID in the context
func SetBranchID(ctx context.Context, branchID string) context.Context {
	return context.WithValue(ctx, CtxBranchID, branchID)
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// SetRequestID sets the request ID in the context
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

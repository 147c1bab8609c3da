// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jcodagnone/chantier/search"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderUserID    = "X-User-ID"
	HeaderCompanyID = "X-Company-ID"
	HeaderRole      = "X-Role"

	requestIDKey = "request_id"
	tenantKey    = "tenant"
)

// requestID reuses the caller's X-Request-ID or mints one.
func requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := strings.TrimSpace(ctx.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}

		ctx.Set(requestIDKey, id)
		ctx.Header(HeaderRequestID, id)
		ctx.Next()
	}
}

// tenantContext reads the tenant established by the upstream session layer.
// Requests without a user and a company are rejected.
func tenantContext() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		t := search.Tenant{
			UserID:    strings.TrimSpace(ctx.GetHeader(HeaderUserID)),
			CompanyID: strings.TrimSpace(ctx.GetHeader(HeaderCompanyID)),
			Role:      strings.TrimSpace(ctx.GetHeader(HeaderRole)),
		}

		if t.UserID == "" || t.CompanyID == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing tenant context"})

			return
		}

		ctx.Set(tenantKey, t)
		ctx.Next()
	}
}

func tenantFrom(ctx *gin.Context) search.Tenant {
	t, _ := ctx.Get(tenantKey)
	tenant, _ := t.(search.Tenant)

	return tenant
}

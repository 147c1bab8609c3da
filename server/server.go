// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes product search and branch lookup over HTTP.
package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/chantier/catalog"
	"github.com/jcodagnone/chantier/search"
	"github.com/jcodagnone/chantier/supplier"
)

// Searcher is the use case layer behind the handlers.
type Searcher interface {
	Search(ctx context.Context, t search.Tenant, req search.Request) ([]catalog.Product, error)
	NearestBranch(ctx context.Context, t search.Tenant, supplierID, jobSiteID string) *supplier.NearestBranch
}

// Branches lists the configured branches of a supplier.
type Branches interface {
	Branches(s supplier.Supplier) ([]supplier.Branch, bool)
}

// Options tunes the HTTP layer.
type Options struct {
	Addr         string
	DefaultLimit int
	MaxLimit     int
}

type Server struct {
	searcher Searcher
	branches Branches
	opts     Options
}

func NewServer(searcher Searcher, branches Branches, opts Options) *Server {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = catalog.DefaultLimit
	}

	if opts.MaxLimit <= 0 {
		opts.MaxLimit = catalog.MaxLimit
	}

	if opts.Addr == "" {
		opts.Addr = "localhost:8080"
	}

	return &Server{searcher: searcher, branches: branches, opts: opts}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), requestID())

	r.GET("/api/health", s.health)

	api := r.Group("/api", tenantContext())
	api.GET("/products/search", s.searchProducts)
	api.GET("/suppliers", s.listSuppliers)
	api.GET("/suppliers/:supplier/nearest-branch", s.nearestBranch)

	return r
}

func (s *Server) Run() error {
	log.Printf("🚀 Listening on http://%s", s.opts.Addr)

	return s.Router().Run(s.opts.Addr)
}

func (s *Server) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) searchProducts(ctx *gin.Context) {
	req := search.Request{
		Query:     ctx.Query("q"),
		JobSiteID: ctx.Query("job_site_id"),
		Limit:     catalog.ParseLimit(ctx.Query("limit"), s.opts.DefaultLimit, s.opts.MaxLimit),
	}

	products, err := s.searcher.Search(ctx.Request.Context(), tenantFrom(ctx), req)
	if err != nil {
		log.Printf("[%s] product search %q failed: %v", ctx.GetString(requestIDKey), req.Query, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})

		return
	}

	ctx.JSON(http.StatusOK, products)
}

type SupplierInfo struct {
	ID       supplier.Supplier `json:"id"`
	Branches int               `json:"branches"`
}

func (s *Server) listSuppliers(ctx *gin.Context) {
	all := supplier.All()
	infos := make([]SupplierInfo, 0, len(all))

	for _, sup := range all {
		branches, _ := s.branches.Branches(sup)
		infos = append(infos, SupplierInfo{ID: sup, Branches: len(branches)})
	}

	ctx.JSON(http.StatusOK, infos)
}

func (s *Server) nearestBranch(ctx *gin.Context) {
	branch := s.searcher.NearestBranch(ctx.Request.Context(), tenantFrom(ctx), ctx.Param("supplier"), ctx.Query("job_site_id"))

	// unknown suppliers answer null
	ctx.JSON(http.StatusOK, branch)
}

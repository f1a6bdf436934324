package main

import (
	"github.com/hibiken/asynq"

	bookJob "bookcatalog-backend/internal/domains/book/job"
	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	deleteCover *bookJob.DeleteCoverHandler
	sweepCovers *bookJob.SweepOrphanCoversHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		deleteCover: bookJob.NewDeleteCoverHandler(c.CoverStore, c.BookRepo),
		sweepCovers: bookJob.NewSweepOrphanCoversHandler(c.CoverStore, c.BookRepo, c.Config.Worker.SweepMinAge),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeDeleteBookCover, h.deleteCover.ProcessTask)
	mux.HandleFunc(shared.TypeSweepOrphanCovers, h.sweepCovers.ProcessTask)
}

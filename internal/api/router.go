package api

import (
	"github.com/St1cky1/taskflow/internal/api/handlers"
	"github.com/St1cky1/taskflow/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(board usecase.TaskBoard) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	taskHandler := handlers.NewTaskHandler(board)

	r.Get("/", taskHandler.Index)
	r.Get("/health", taskHandler.Health)
	r.Post("/refresh", taskHandler.Refresh)
	r.Post("/notices/{id}/dismiss", taskHandler.DismissNotice)

	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", taskHandler.CreateTask)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/", taskHandler.UpdateTask)
			r.Post("/toggle", taskHandler.ToggleTask)
			r.Post("/delete", taskHandler.DeleteTask)
		})
	})

	return r
}

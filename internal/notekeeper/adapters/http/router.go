// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"notekeeper/internal/notekeeper/adapters/http/middleware"
	"notekeeper/internal/notekeeper/adapters/http/notes"
	"notekeeper/internal/notekeeper/adapters/http/session"
	"notekeeper/internal/notekeeper/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(
	app *fiber.App,
	sessionService services.SessionService,
	notesService services.NotesService,
	storageMode notes.StorageModeFunc,
) {
	sessionHandler := session.NewHandler(sessionService)
	notesHandler := notes.NewHandler(notesService, storageMode)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Вход публичный, остальное за охранником сессии.
	sessionRoutes := apiV1.Group("/session")
	sessionRoutes.Post("/login", sessionHandler.Login)

	protectedSession := apiV1.Group("/session")
	protectedSession.Use(middleware.NewAuthMiddleware(sessionService))
	protectedSession.Post("/logout", sessionHandler.Logout)
	protectedSession.Put("/credential", sessionHandler.ChangeCredential)

	statusRoutes := apiV1.Group("/status")
	statusRoutes.Use(middleware.NewAuthMiddleware(sessionService))
	statusRoutes.Get("/", notesHandler.Status)

	notesRoutes := apiV1.Group("/notes")
	notesRoutes.Use(middleware.NewAuthMiddleware(sessionService))
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/export", notesHandler.ExportAll)
	notesRoutes.Post("/import", notesHandler.ImportNotes)
	notesRoutes.Get("/:note_id", notesHandler.GetNote)
	notesRoutes.Put("/:note_id", notesHandler.UpdateNote)
	notesRoutes.Delete("/:note_id", notesHandler.DeleteNote)
	notesRoutes.Post("/:note_id/select", notesHandler.SelectNote)
	notesRoutes.Post("/:note_id/table", notesHandler.InsertTable)
	notesRoutes.Post("/:note_id/image", notesHandler.InsertImage)
	notesRoutes.Post("/:note_id/resize", notesHandler.ResizeImage)
	notesRoutes.Get("/:note_id/export", notesHandler.ExportNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}

package router

import (
	"github.com/gin-gonic/gin"

	"wordwise.app/server/internal/http/handler"
)

func SuggestionRouter(router *gin.RouterGroup, handler *handler.SuggestionHandler) {
	suggestions := router.Group("/suggestions")
	{
		suggestions.POST("/check", handler.Check)
		suggestions.POST("/ai", handler.GenerateAI)
		suggestions.PATCH("/:id", handler.Update)
	}

	documents := router.Group("/documents")
	{
		documents.GET("/:documentId/suggestions", handler.ListByDocument)
		documents.DELETE("/:documentId/suggestions", handler.DeleteByDocument)
	}
}

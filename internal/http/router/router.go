package router

import (
	"github.com/gin-gonic/gin"

	"wordwise.app/server/internal/http/handler"
	"wordwise.app/server/internal/service"
)

type RouterConfig struct {
	IsProduction bool
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", handler.Health)

	v1 := router.Group("/api/v1")
	{
		suggestionHandler := handler.NewSuggestionHandler(services.Suggestions())
		SuggestionRouter(v1, suggestionHandler)
	}
}

package main

import (
	"context"
	"net/http"

	"cep-loader/internal/config"
	"cep-loader/internal/handler"
	"cep-loader/internal/lookup"
	"cep-loader/internal/repository"
	"cep-loader/internal/service"

	_ "cep-loader/docs"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			CEP Loader API
//	@version		1.0
//	@description	Fetches a configured Brazilian postal code from ViaCEP and persists it.

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn, config.AddressTable)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("cannot ensure schema")
	}

	client := lookup.NewClient(config.LookupBaseURL, config.HTTPTimeout)
	loadService := service.NewLoadService(client, repo, config.PostalCode)
	loadHandler := handler.NewLoadHandler(loadService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.POST("/load", loadHandler.Load)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.Run(config.ServerAddress)
}

package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/autolot/car-inventory-service/internal/config"
)

type Router struct {
	router *gin.Engine
}

func NewRouter(
	cfg *config.HTTP,
	imagesDir string,
	carHandler *CarHandler,
	userHandler *UserHandler,
	eventHandler *EventHandler,
) (*Router, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Uploaded images
	router.Static("/images", imagesDir)

	// Listing and filter routes
	router.GET("/cars", carHandler.ListCars)
	router.GET("/getCars", carHandler.ListCars)
	router.GET("/brand/:brand", carHandler.FilterByBrand)
	router.GET("/model/:model", carHandler.FilterByModel)
	router.GET("/year/:year", carHandler.FilterByYear)
	router.GET("/price/:price", carHandler.FilterByPrice)
	router.GET("/mileage/:mileage", carHandler.FilterByMileage)
	router.GET("/fuel/:fuel_type", carHandler.FilterByFuelType)
	router.GET("/cars/:transmission", carHandler.FilterByTransmission)
	router.GET("/all", carHandler.RecommendedCars)

	// Mutations
	router.POST("/addCar", carHandler.AddCar)
	router.PUT("/updateCar/:id", carHandler.UpdateCar)
	router.DELETE("/deleteCar/:id", carHandler.DeleteCar)

	// Signup collaborators
	router.POST("/check-email-existence", userHandler.CheckEmailExistence)
	router.POST("/submit-form", userHandler.SubmitForm)

	// Realtime change stream
	router.GET("/events", eventHandler.Stream)

	return &Router{router: router}, nil
}

func (r *Router) Handler() http.Handler {
	return r.router
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}

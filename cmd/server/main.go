package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Hack4Impact-Boston-University/Ocean-Blue-Backend/internal/auth"
	"github.com/Hack4Impact-Boston-University/Ocean-Blue-Backend/internal/database"
	"github.com/Hack4Impact-Boston-University/Ocean-Blue-Backend/internal/events"
	"github.com/Hack4Impact-Boston-University/Ocean-Blue-Backend/internal/geocode"
	"github.com/Hack4Impact-Boston-University/Ocean-Blue-Backend/internal/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, continuing with environment variables")
	}

	if m := os.Getenv("GIN_MODE"); m != "" {
		gin.SetMode(m)
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db, &users.User{}, &events.Event{}, &events.Volunteer{}); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	tokens := auth.NewTokenService(os.Getenv("JWT_SECRET"), tokenTTL())

	authHandler := &auth.Handler{DB: db, Tokens: tokens}
	userHandler := &users.Handler{DB: db}
	eventHandler := &events.Handler{DB: db, Geocoder: geocode.NewClient(geocode.NewConfig())}

	r := gin.Default()
	r.Use(cors.Default()) // all origins

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Hello wordl!")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes
	r.POST("/register", authHandler.Register)
	r.POST("/signin", authHandler.SignIn)

	// Protected routes
	protected := r.Group("/", auth.RequireAuth(tokens))
	protected.GET("/getUser", userHandler.GetUser)
	protected.GET("/getUsers", userHandler.GetUsers)
	protected.PUT("/updateUser", userHandler.UpdateUser)
	protected.POST("/createEvent", eventHandler.CreateEvent)
	protected.GET("/getEvent", eventHandler.GetEvent)
	protected.GET("/getEvents", eventHandler.GetEvents)
	protected.PUT("/addToEvent", eventHandler.AddToEvent)
	protected.DELETE("/deleteEvent", eventHandler.DeleteEvent)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	r.Run(":" + port)
}

func tokenTTL() time.Duration {
	hours := 24
	if v := os.Getenv("JWT_EXPIRES_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h > 0 {
			hours = h
		}
	}
	return time.Duration(hours) * time.Hour
}

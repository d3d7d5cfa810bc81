package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"nutriplan/config"
	"nutriplan/controllers"
	"nutriplan/middlewares"
	"nutriplan/models"
	"nutriplan/repository"
	"nutriplan/services"
)

// Controllers groups every HTTP handler the router mounts.
type Controllers struct {
	Macros       *controllers.CatalogController[models.Macro, services.MacroInput]
	Equipments   *controllers.CatalogController[models.Equipment, services.EquipmentInput]
	Preparations *controllers.CatalogController[models.Preparation, services.PreparationInput]
	Aliments     *controllers.AlimentController
	Meals        *controllers.MealController
	MealPlans    *controllers.MealPlanController
	Users        *controllers.UserController
	Auth         *controllers.AuthController
	Realtime     *controllers.RealtimeController
}

// NewRouter wires repositories, services and controllers on db.
func NewRouter(db *gorm.DB, cfg *config.Config, hub *services.RealtimeHub) *gin.Engine {
	macroRepo := repository.NewMacroRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	preparationRepo := repository.NewPreparationRepository(db)
	alimentRepo := repository.NewAlimentRepository(db)
	mealRepo := repository.NewMealRepository(db)
	userRepo := repository.NewUserRepository(db)
	keyRepo := repository.NewAPIKeyRepository(db)

	keys := services.NewAPIKeyService(keyRepo, cfg.Auth.StaticAPIKey, cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenDuration)*time.Hour)

	ctrl := Controllers{
		Macros:       controllers.NewCatalogController[models.Macro, services.MacroInput](services.NewCatalogService[models.Macro](macroRepo)),
		Equipments:   controllers.NewCatalogController[models.Equipment, services.EquipmentInput](services.NewCatalogService[models.Equipment](equipmentRepo)),
		Preparations: controllers.NewCatalogController[models.Preparation, services.PreparationInput](services.NewCatalogService[models.Preparation](preparationRepo)),
		Aliments:     controllers.NewAlimentController(services.NewAlimentService(alimentRepo, macroRepo)),
		Meals:        controllers.NewMealController(services.NewMealCatalogService(mealRepo, alimentRepo, preparationRepo, equipmentRepo)),
		MealPlans: controllers.NewMealPlanController(
			services.NewMealPlanService(mealRepo, userRepo),
			services.NewMealSuggestionService(mealRepo, userRepo),
		),
		Users:    controllers.NewUserController(services.NewUserProfileService(userRepo, mealRepo, hub)),
		Auth:     controllers.NewAuthController(keys),
		Realtime: controllers.NewRealtimeController(hub),
	}

	limiter := middlewares.NewIPRateLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window)
	return SetupRouter(cfg.Server, ctrl, keys, limiter)
}

func SetupRouter(server config.ServerConfig, ctrl Controllers, keys middlewares.KeyValidator, limiter *middlewares.IPRateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.CORS(server.CORSOrigin))
	r.Use(middlewares.RateLimit(limiter))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})

	// Public: exchanges an api key for a bearer token
	r.POST("/auth/token", ctrl.Auth.IssueToken)

	api := r.Group("")
	api.Use(middlewares.AuthMiddleware(keys))
	{
		api.POST("/api-keys", ctrl.Auth.CreateAPIKey)

		catalog(api.Group("/macros"), ctrl.Macros.List, ctrl.Macros.Get, ctrl.Macros.Create, ctrl.Macros.Update, ctrl.Macros.Delete)
		catalog(api.Group("/equipments"), ctrl.Equipments.List, ctrl.Equipments.Get, ctrl.Equipments.Create, ctrl.Equipments.Update, ctrl.Equipments.Delete)
		catalog(api.Group("/preparations"), ctrl.Preparations.List, ctrl.Preparations.Get, ctrl.Preparations.Create, ctrl.Preparations.Update, ctrl.Preparations.Delete)
		catalog(api.Group("/aliments"), ctrl.Aliments.List, ctrl.Aliments.Get, ctrl.Aliments.Create, ctrl.Aliments.Update, ctrl.Aliments.Delete)

		meals := api.Group("/meals")
		catalog(meals, ctrl.Meals.List, ctrl.Meals.Get, ctrl.Meals.Create, ctrl.Meals.Update, ctrl.Meals.Delete)
		meals.GET("/:id/nutrition", ctrl.Meals.Nutrition)

		api.POST("/meal-plans/generate", ctrl.MealPlans.Generate)
		api.GET("/meal-suggestions", ctrl.MealPlans.Suggestions)

		api.POST("/users", ctrl.Users.CreateUser)
		users := api.Group("/users/:userId")
		{
			users.GET("", ctrl.Users.GetUser)
			users.PUT("", ctrl.Users.UpdateUser)
			users.DELETE("", ctrl.Users.DeleteUser)

			users.GET("/profile", ctrl.Users.GetProfile)
			users.POST("/profile", ctrl.Users.SaveProfile)
			users.PUT("/profile", ctrl.Users.UpdateProfile)
			users.DELETE("/profile", ctrl.Users.DeleteProfile)
			users.GET("/profile/calculated-needs", ctrl.Users.CalculatedNeeds)
			users.POST("/profile/recalculate", ctrl.Users.Recalculate)

			users.POST("/history/weight", ctrl.Users.AddWeight)
			users.GET("/history/weight", ctrl.Users.WeightHistory)
			users.POST("/history/meals", ctrl.Users.AddMealConsumption)
			users.GET("/history/meals", ctrl.Users.MealHistory)
			users.POST("/preferences/meals/:mealId", ctrl.Users.SetMealPreference)

			users.GET("/meal-suggestions", ctrl.MealPlans.PersonalizedSuggestions)
			users.GET("/ws", ctrl.Realtime.NeedsWS)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
	})
	return r
}

func catalog(g *gin.RouterGroup, list, get, create, update, remove gin.HandlerFunc) {
	g.GET("", list)
	g.GET("/:id", get)
	g.POST("", create)
	g.PUT("/:id", update)
	g.DELETE("/:id", remove)
}

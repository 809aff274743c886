package routes

import (
    "backend/config"
    "backend/controllers"
    "backend/middlewares"
    "backend/services"

    "github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
    r := gin.Default()

    rt := services.NewRealtimeHub()
    notes := controllers.NewNoteController(services.NewNoteService(), rt)
    analytics := controllers.NewAnalyticsController(services.NewAnalyticsService(config.DB))
    realtime := controllers.NewRealtimeController(rt)

    // Public auth routes
    auth := r.Group("/auth")
    {
        auth.POST("/register", controllers.Register)
        auth.POST("/login", controllers.Login)
        auth.POST("/forgot-password", controllers.ForgotPassword)
        auth.POST("/reset-password", controllers.ResetPassword)
    }

    // Protected user routes
    user := r.Group("/user")
    user.Use(middlewares.AuthMiddleware())
    {
        user.GET("/profile", controllers.GetProfile)
        user.PUT("/profile", controllers.UpdateProfile)

        user.POST("/meals", notes.LogMeal)
        user.GET("/meals", notes.ListMeals)
        user.GET("/meals/:id", notes.GetMeal)
        user.PUT("/meals/:id", notes.UpdateMeal)
        user.DELETE("/meals/:id", notes.DeleteMeal)

        user.POST("/symptoms", notes.LogSymptom)
        user.GET("/symptoms", notes.ListSymptoms)
        user.GET("/symptoms/:id", notes.GetSymptom)
        user.PUT("/symptoms/:id", notes.UpdateSymptom)
        user.DELETE("/symptoms/:id", notes.DeleteSymptom)

        user.GET("/analytics/ingredients", analytics.GetIngredientProfiles)
        user.GET("/analytics/ingredients/top", analytics.GetTopProblematic)
        user.GET("/analytics/ingredients/safe", analytics.GetPotentiallySafe)
        user.GET("/analytics/symptoms/:id/window", analytics.GetSymptomWindow)

        user.GET("/notes/ws", realtime.NotesWS)
    }

    return r
}

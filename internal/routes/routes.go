package routes

import (
    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/config"
    "github.com/Metatavu/muisti-api/internal/controllers"
    "github.com/Metatavu/muisti-api/internal/middleware"
    "github.com/Metatavu/muisti-api/internal/realtime"
    "github.com/Metatavu/muisti-api/internal/service"
    "github.com/Metatavu/muisti-api/internal/ws"
)

func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config, notifier *realtime.Notifier, hub *ws.EventHub) {
    // Services
    sessionSvc := &service.VisitorSessionService{DB: db}
    contentVersionSvc := &service.ContentVersionService{DB: db}
    deviceGroupSvc := &service.DeviceGroupService{DB: db}

    // Controllers
    authCtrl := &controllers.AuthController{DB: db, JWTSecret: cfg.JWTSecret, JWTExpiresIn: cfg.JWTExpiresIn}
    exhibitionCtrl := &controllers.ExhibitionController{DB: db}
    floorCtrl := &controllers.FloorController{DB: db}
    roomCtrl := &controllers.RoomController{DB: db}
    deviceGroupCtrl := &controllers.DeviceGroupController{DB: db, Groups: deviceGroupSvc}
    deviceModelCtrl := &controllers.DeviceModelController{DB: db}
    deviceCtrl := &controllers.DeviceController{DB: db}
    antennaCtrl := &controllers.RfidAntennaController{DB: db}
    contentVersionCtrl := &controllers.ContentVersionController{DB: db, ContentVersions: contentVersionSvc}
    groupContentVersionCtrl := &controllers.GroupContentVersionController{DB: db}
    pageLayoutCtrl := &controllers.PageLayoutController{DB: db}
    subLayoutCtrl := &controllers.SubLayoutController{DB: db}
    pageCtrl := &controllers.PageController{DB: db, Notifier: notifier}
    visitorCtrl := &controllers.VisitorController{DB: db, Notifier: notifier}
    sessionCtrl := &controllers.VisitorSessionController{DB: db, Sessions: sessionSvc, Notifier: notifier}

    // Public
    r.POST("/v1/auth/login", authCtrl.Login)

    // Protected
    authMW := middleware.AuthMiddleware(db, middleware.AuthConfig{JWTSecret: cfg.JWTSecret})
    api := r.Group("/v1", authMW)
    {
        api.GET("/auth/me", authCtrl.Me)

        // Layout libraries (global)
        api.GET("/pageLayouts", pageLayoutCtrl.List)
        api.POST("/pageLayouts", pageLayoutCtrl.Create)
        api.GET("/pageLayouts/:pageLayoutId", pageLayoutCtrl.Find)
        api.PUT("/pageLayouts/:pageLayoutId", pageLayoutCtrl.Update)
        api.DELETE("/pageLayouts/:pageLayoutId", pageLayoutCtrl.Delete)

        api.GET("/subLayouts", subLayoutCtrl.List)
        api.POST("/subLayouts", subLayoutCtrl.Create)
        api.GET("/subLayouts/:subLayoutId", subLayoutCtrl.Find)
        api.PUT("/subLayouts/:subLayoutId", subLayoutCtrl.Update)
        api.DELETE("/subLayouts/:subLayoutId", subLayoutCtrl.Delete)

        // Exhibitions
        api.GET("/exhibitions", exhibitionCtrl.List)
        api.POST("/exhibitions", exhibitionCtrl.Create)

        exhibition := api.Group("/exhibitions/:exhibitionId")
        {
            exhibition.GET("", exhibitionCtrl.Find)
            exhibition.PUT("", exhibitionCtrl.Update)
            exhibition.DELETE("", exhibitionCtrl.Delete)

            exhibition.GET("/events", ws.ServeEvents(hub))

            exhibition.GET("/floors", floorCtrl.List)
            exhibition.POST("/floors", floorCtrl.Create)
            exhibition.GET("/floors/:floorId", floorCtrl.Find)
            exhibition.PUT("/floors/:floorId", floorCtrl.Update)
            exhibition.DELETE("/floors/:floorId", floorCtrl.Delete)

            exhibition.GET("/rooms", roomCtrl.List)
            exhibition.POST("/rooms", roomCtrl.Create)
            exhibition.GET("/rooms/:roomId", roomCtrl.Find)
            exhibition.PUT("/rooms/:roomId", roomCtrl.Update)
            exhibition.DELETE("/rooms/:roomId", roomCtrl.Delete)

            exhibition.GET("/deviceGroups", deviceGroupCtrl.List)
            exhibition.POST("/deviceGroups", deviceGroupCtrl.Create)
            exhibition.GET("/deviceGroups/:deviceGroupId", deviceGroupCtrl.Find)
            exhibition.PUT("/deviceGroups/:deviceGroupId", deviceGroupCtrl.Update)
            exhibition.DELETE("/deviceGroups/:deviceGroupId", deviceGroupCtrl.Delete)

            exhibition.GET("/deviceModels", deviceModelCtrl.List)
            exhibition.POST("/deviceModels", deviceModelCtrl.Create)
            exhibition.GET("/deviceModels/:deviceModelId", deviceModelCtrl.Find)
            exhibition.PUT("/deviceModels/:deviceModelId", deviceModelCtrl.Update)
            exhibition.DELETE("/deviceModels/:deviceModelId", deviceModelCtrl.Delete)

            exhibition.GET("/devices", deviceCtrl.List)
            exhibition.POST("/devices", deviceCtrl.Create)
            exhibition.GET("/devices/:deviceId", deviceCtrl.Find)
            exhibition.PUT("/devices/:deviceId", deviceCtrl.Update)
            exhibition.DELETE("/devices/:deviceId", deviceCtrl.Delete)

            exhibition.GET("/rfidAntennas", antennaCtrl.List)
            exhibition.POST("/rfidAntennas", antennaCtrl.Create)
            exhibition.GET("/rfidAntennas/:rfidAntennaId", antennaCtrl.Find)
            exhibition.PUT("/rfidAntennas/:rfidAntennaId", antennaCtrl.Update)
            exhibition.DELETE("/rfidAntennas/:rfidAntennaId", antennaCtrl.Delete)

            exhibition.GET("/contentVersions", contentVersionCtrl.List)
            exhibition.POST("/contentVersions", contentVersionCtrl.Create)
            exhibition.GET("/contentVersions/:contentVersionId", contentVersionCtrl.Find)
            exhibition.PUT("/contentVersions/:contentVersionId", contentVersionCtrl.Update)
            exhibition.DELETE("/contentVersions/:contentVersionId", contentVersionCtrl.Delete)

            exhibition.GET("/groupContentVersions", groupContentVersionCtrl.List)
            exhibition.POST("/groupContentVersions", groupContentVersionCtrl.Create)
            exhibition.GET("/groupContentVersions/:groupContentVersionId", groupContentVersionCtrl.Find)
            exhibition.PUT("/groupContentVersions/:groupContentVersionId", groupContentVersionCtrl.Update)
            exhibition.DELETE("/groupContentVersions/:groupContentVersionId", groupContentVersionCtrl.Delete)

            exhibition.GET("/pages", pageCtrl.List)
            exhibition.POST("/pages", pageCtrl.Create)
            exhibition.GET("/pages/:pageId", pageCtrl.Find)
            exhibition.PUT("/pages/:pageId", pageCtrl.Update)
            exhibition.DELETE("/pages/:pageId", pageCtrl.Delete)

            exhibition.GET("/visitors", visitorCtrl.List)
            exhibition.POST("/visitors", visitorCtrl.Create)
            exhibition.GET("/visitors/tags/:tagId", visitorCtrl.FindTag)
            exhibition.GET("/visitors/:visitorId", visitorCtrl.Find)
            exhibition.PUT("/visitors/:visitorId", visitorCtrl.Update)
            exhibition.DELETE("/visitors/:visitorId", visitorCtrl.Delete)

            exhibition.GET("/visitorSessions", sessionCtrl.List)
            exhibition.POST("/visitorSessions", sessionCtrl.Create)
            exhibition.GET("/visitorSessions/:visitorSessionId", sessionCtrl.Find)
            exhibition.PUT("/visitorSessions/:visitorSessionId", sessionCtrl.Update)
            exhibition.DELETE("/visitorSessions/:visitorSessionId", sessionCtrl.Delete)
        }
    }
}

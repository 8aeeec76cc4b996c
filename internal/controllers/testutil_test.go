package controllers

import (
    "bytes"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/gin-gonic/gin"
    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
    "gorm.io/gorm/logger"

    "github.com/Metatavu/muisti-api/internal/models"
    "github.com/Metatavu/muisti-api/internal/service"
)

func openTestDB(t *testing.T) *gorm.DB {
    t.Helper()
    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
        Logger: logger.Default.LogMode(logger.Silent),
    })
    require.NoError(t, err)
    sqlDB, err := db.DB()
    require.NoError(t, err)
    sqlDB.SetMaxOpenConns(1)

    require.NoError(t, db.AutoMigrate(
        &models.User{},
        &models.Exhibition{},
        &models.ExhibitionFloor{},
        &models.ExhibitionRoom{},
        &models.DeviceGroup{},
        &models.DeviceModel{},
        &models.ExhibitionDevice{},
        &models.RfidAntenna{},
        &models.ContentVersion{},
        &models.ContentVersionRoom{},
        &models.GroupContentVersion{},
        &models.PageLayout{},
        &models.SubLayout{},
        &models.ExhibitionPage{},
        &models.Visitor{},
        &models.VisitorSession{},
        &models.VisitorSessionVisitor{},
        &models.VisitorSessionVariable{},
        &models.VisitorSessionVisitedDeviceGroup{},
    ))
    return db
}

// newTestRouter wires the controllers behind a stub auth middleware
// that injects a fixed actor, so handlers run exactly as they do
// behind the real JWT middleware.
func newTestRouter(t *testing.T, db *gorm.DB) (*gin.Engine, models.User) {
    t.Helper()
    gin.SetMode(gin.TestMode)

    user := models.User{Email: "editor@example.com", FullName: "Editor", Role: "admin", Active: true}
    require.NoError(t, db.Create(&user).Error)

    r := gin.New()
    r.Use(func(c *gin.Context) {
        c.Set("user", user)
        c.Next()
    })

    exhibitionCtrl := &ExhibitionController{DB: db}
    floorCtrl := &FloorController{DB: db}
    roomCtrl := &RoomController{DB: db}
    deviceGroupCtrl := &DeviceGroupController{DB: db, Groups: &service.DeviceGroupService{DB: db}}
    deviceModelCtrl := &DeviceModelController{DB: db}
    deviceCtrl := &DeviceController{DB: db}
    visitorCtrl := &VisitorController{DB: db}
    sessionCtrl := &VisitorSessionController{DB: db, Sessions: &service.VisitorSessionService{DB: db}}

    r.GET("/v1/exhibitions", exhibitionCtrl.List)
    r.POST("/v1/exhibitions", exhibitionCtrl.Create)
    ex := r.Group("/v1/exhibitions/:exhibitionId")
    {
        ex.GET("", exhibitionCtrl.Find)
        ex.PUT("", exhibitionCtrl.Update)
        ex.DELETE("", exhibitionCtrl.Delete)

        ex.POST("/floors", floorCtrl.Create)
        ex.GET("/floors/:floorId", floorCtrl.Find)

        ex.POST("/rooms", roomCtrl.Create)
        ex.GET("/rooms/:roomId", roomCtrl.Find)
        ex.DELETE("/rooms/:roomId", roomCtrl.Delete)

        ex.POST("/deviceGroups", deviceGroupCtrl.Create)
        ex.GET("/deviceGroups/:deviceGroupId", deviceGroupCtrl.Find)

        ex.POST("/deviceModels", deviceModelCtrl.Create)

        ex.POST("/devices", deviceCtrl.Create)

        ex.POST("/visitors", visitorCtrl.Create)
        ex.GET("/visitors", visitorCtrl.List)
        ex.GET("/visitors/tags/:tagId", visitorCtrl.FindTag)

        ex.POST("/visitorSessions", sessionCtrl.Create)
        ex.PUT("/visitorSessions/:visitorSessionId", sessionCtrl.Update)
    }
    return r, user
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
    t.Helper()
    var reader *bytes.Reader
    if body != nil {
        raw, err := json.Marshal(body)
        require.NoError(t, err)
        reader = bytes.NewReader(raw)
    } else {
        reader = bytes.NewReader(nil)
    }
    req := httptest.NewRequest(method, path, reader)
    req.Header.Set("Content-Type", "application/json")
    w := httptest.NewRecorder()
    r.ServeHTTP(w, req)
    return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
    t.Helper()
    require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func createExhibitionHTTP(t *testing.T, r *gin.Engine, name string) models.Exhibition {
    t.Helper()
    w := doJSON(t, r, http.MethodPost, "/v1/exhibitions", gin.H{"name": name})
    require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
    var exhibition models.Exhibition
    decode(t, w, &exhibition)
    return exhibition
}

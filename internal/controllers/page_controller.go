package controllers

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "gorm.io/datatypes"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
    "github.com/Metatavu/muisti-api/internal/realtime"
)

type PageController struct {
    DB       *gorm.DB
    Notifier *realtime.Notifier
}

type pageRequest struct {
    Name             string         `json:"name"`
    LayoutID         string         `json:"layoutId"`
    DeviceID         string         `json:"deviceId"`
    ContentVersionID string         `json:"contentVersionId"`
    Resources        datatypes.JSON `json:"resources"`
    EventTriggers    datatypes.JSON `json:"eventTriggers"`
    EnterTransitions datatypes.JSON `json:"enterTransitions"`
    ExitTransitions  datatypes.JSON `json:"exitTransitions"`
    OrderNumber      int            `json:"orderNumber"`
}

func (pc *PageController) find(c *gin.Context, exhibitionID string) (*models.ExhibitionPage, bool) {
    pageID := c.Param("pageId")
    var page models.ExhibitionPage
    if err := pc.DB.Where("id = ?", pageID).First(&page).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "page " + pageID + " not found"})
        return nil, false
    }
    if !belongsToExhibition(page.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusNotFound, gin.H{"error": "page " + pageID + " not found"})
        return nil, false
    }
    return &page, true
}

// resolveRefs validates the payload references in payload order:
// layout, device, content version. The layout library is global, so
// only existence is checked for it.
func (pc *PageController) resolveRefs(c *gin.Context, exhibitionID string, req *pageRequest) bool {
    var layout models.PageLayout
    if err := pc.DB.Where("id = ?", req.LayoutID).First(&layout).Error; err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid layout id " + req.LayoutID})
        return false
    }
    var device models.ExhibitionDevice
    if err := pc.DB.Where("id = ?", req.DeviceID).First(&device).Error; err != nil || !belongsToExhibition(device.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device id " + req.DeviceID})
        return false
    }
    var contentVersion models.ContentVersion
    if err := pc.DB.Where("id = ?", req.ContentVersionID).First(&contentVersion).Error; err != nil || !belongsToExhibition(contentVersion.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content version id " + req.ContentVersionID})
        return false
    }
    return true
}

func (pc *PageController) Create(c *gin.Context) {
    var req pageRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing page name"})
        return
    }
    exhibition, ok := requireExhibition(c, pc.DB)
    if !ok {
        return
    }
    if !pc.resolveRefs(c, exhibition.ID, &req) {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    page := models.ExhibitionPage{
        ExhibitionID:     exhibition.ID,
        DeviceID:         req.DeviceID,
        ContentVersionID: req.ContentVersionID,
        LayoutID:         req.LayoutID,
        Name:             req.Name,
        Resources:        req.Resources,
        EventTriggers:    req.EventTriggers,
        EnterTransitions: req.EnterTransitions,
        ExitTransitions:  req.ExitTransitions,
        OrderNumber:      req.OrderNumber,
        CreatorID:        user.ID,
        LastModifierID:   user.ID,
    }
    if err := pc.DB.Create(&page).Error; err != nil {
        writeError(c, err)
        return
    }
    pc.Notifier.PageCreated(exhibition.ID, page.ID)
    c.JSON(http.StatusCreated, page)
}

func (pc *PageController) Find(c *gin.Context) {
    exhibition, ok := requireExhibition(c, pc.DB)
    if !ok {
        return
    }
    page, ok := pc.find(c, exhibition.ID)
    if !ok {
        return
    }
    c.JSON(http.StatusOK, page)
}

func (pc *PageController) List(c *gin.Context) {
    exhibition, ok := requireExhibition(c, pc.DB)
    if !ok {
        return
    }
    q := pc.DB.Where("exhibition_id = ?", exhibition.ID)
    if deviceID := c.Query("deviceId"); deviceID != "" {
        q = q.Where("device_id = ?", deviceID)
    }
    if contentVersionID := c.Query("contentVersionId"); contentVersionID != "" {
        q = q.Where("content_version_id = ?", contentVersionID)
    }
    if layoutID := c.Query("pageLayoutId"); layoutID != "" {
        q = q.Where("layout_id = ?", layoutID)
    }
    pages := []models.ExhibitionPage{}
    if err := q.Order("order_number").Find(&pages).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, pages)
}

func (pc *PageController) Update(c *gin.Context) {
    var req pageRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing page name"})
        return
    }
    exhibition, ok := requireExhibition(c, pc.DB)
    if !ok {
        return
    }
    if !pc.resolveRefs(c, exhibition.ID, &req) {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    page, ok := pc.find(c, exhibition.ID)
    if !ok {
        return
    }

    page.Name = req.Name
    page.DeviceID = req.DeviceID
    page.ContentVersionID = req.ContentVersionID
    page.LayoutID = req.LayoutID
    page.Resources = req.Resources
    page.EventTriggers = req.EventTriggers
    page.EnterTransitions = req.EnterTransitions
    page.ExitTransitions = req.ExitTransitions
    page.OrderNumber = req.OrderNumber
    page.LastModifierID = user.ID
    if err := pc.DB.Save(page).Error; err != nil {
        writeError(c, err)
        return
    }
    pc.Notifier.PageUpdated(exhibition.ID, page.ID)
    c.JSON(http.StatusOK, page)
}

func (pc *PageController) Delete(c *gin.Context) {
    exhibition, ok := requireExhibition(c, pc.DB)
    if !ok {
        return
    }
    page, ok := pc.find(c, exhibition.ID)
    if !ok {
        return
    }
    if err := pc.DB.Delete(&models.ExhibitionPage{}, "id = ?", page.ID).Error; err != nil {
        writeError(c, err)
        return
    }
    pc.Notifier.PageDeleted(exhibition.ID, page.ID)
    c.Status(http.StatusNoContent)
}

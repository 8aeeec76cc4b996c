package controllers

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
)

type DeviceController struct {
    DB *gorm.DB
}

type deviceRequest struct {
    Name              string   `json:"name"`
    GroupID           string   `json:"groupId"`
    ModelID           string   `json:"modelId"`
    LocationX         *float64 `json:"locationX"`
    LocationY         *float64 `json:"locationY"`
    ScreenOrientation string   `json:"screenOrientation"`
    IndexPageID       *string  `json:"indexPageId"`
}

func validScreenOrientation(orientation string) bool {
    return orientation == models.ScreenOrientationPortrait || orientation == models.ScreenOrientationLandscape
}

func (dc *DeviceController) find(c *gin.Context, exhibitionID string) (*models.ExhibitionDevice, bool) {
    deviceID := c.Param("deviceId")
    var device models.ExhibitionDevice
    if err := dc.DB.Where("id = ?", deviceID).First(&device).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "device " + deviceID + " not found"})
        return nil, false
    }
    if !belongsToExhibition(device.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusNotFound, gin.H{"error": "device " + deviceID + " not found"})
        return nil, false
    }
    return &device, true
}

// resolveRefs validates the payload references in payload order:
// group, model, then the optional index page.
func (dc *DeviceController) resolveRefs(c *gin.Context, exhibitionID string, req *deviceRequest) bool {
    var group models.DeviceGroup
    if err := dc.DB.Where("id = ?", req.GroupID).First(&group).Error; err != nil || !belongsToExhibition(group.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device group id " + req.GroupID})
        return false
    }
    var model models.DeviceModel
    if err := dc.DB.Where("id = ?", req.ModelID).First(&model).Error; err != nil || !belongsToExhibition(model.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device model id " + req.ModelID})
        return false
    }
    if req.IndexPageID != nil && *req.IndexPageID != "" {
        var page models.ExhibitionPage
        if err := dc.DB.Where("id = ?", *req.IndexPageID).First(&page).Error; err != nil || !belongsToExhibition(page.ExhibitionID, exhibitionID) {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index page id " + *req.IndexPageID})
            return false
        }
    }
    return true
}

func (dc *DeviceController) Create(c *gin.Context) {
    var req deviceRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing device name"})
        return
    }
    if !validScreenOrientation(req.ScreenOrientation) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid screen orientation " + req.ScreenOrientation})
        return
    }
    exhibition, ok := requireExhibition(c, dc.DB)
    if !ok {
        return
    }
    if !dc.resolveRefs(c, exhibition.ID, &req) {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    device := models.ExhibitionDevice{
        ExhibitionID:      exhibition.ID,
        GroupID:           req.GroupID,
        ModelID:           req.ModelID,
        Name:              req.Name,
        LocationX:         req.LocationX,
        LocationY:         req.LocationY,
        ScreenOrientation: req.ScreenOrientation,
        IndexPageID:       req.IndexPageID,
        CreatorID:         user.ID,
        LastModifierID:    user.ID,
    }
    if err := dc.DB.Create(&device).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusCreated, device)
}

func (dc *DeviceController) Find(c *gin.Context) {
    exhibition, ok := requireExhibition(c, dc.DB)
    if !ok {
        return
    }
    device, ok := dc.find(c, exhibition.ID)
    if !ok {
        return
    }
    c.JSON(http.StatusOK, device)
}

func (dc *DeviceController) List(c *gin.Context) {
    exhibition, ok := requireExhibition(c, dc.DB)
    if !ok {
        return
    }
    q := dc.DB.Where("exhibition_id = ?", exhibition.ID)
    if groupID := c.Query("deviceGroupId"); groupID != "" {
        q = q.Where("group_id = ?", groupID)
    }
    devices := []models.ExhibitionDevice{}
    if err := q.Find(&devices).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, devices)
}

func (dc *DeviceController) Update(c *gin.Context) {
    var req deviceRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing device name"})
        return
    }
    if !validScreenOrientation(req.ScreenOrientation) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid screen orientation " + req.ScreenOrientation})
        return
    }
    exhibition, ok := requireExhibition(c, dc.DB)
    if !ok {
        return
    }
    if !dc.resolveRefs(c, exhibition.ID, &req) {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    device, ok := dc.find(c, exhibition.ID)
    if !ok {
        return
    }

    device.Name = req.Name
    device.GroupID = req.GroupID
    device.ModelID = req.ModelID
    device.LocationX = req.LocationX
    device.LocationY = req.LocationY
    device.ScreenOrientation = req.ScreenOrientation
    device.IndexPageID = req.IndexPageID
    device.LastModifierID = user.ID
    if err := dc.DB.Save(device).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, device)
}

func (dc *DeviceController) Delete(c *gin.Context) {
    exhibition, ok := requireExhibition(c, dc.DB)
    if !ok {
        return
    }
    device, ok := dc.find(c, exhibition.ID)
    if !ok {
        return
    }
    if err := dc.DB.Delete(&models.ExhibitionDevice{}, "id = ?", device.ID).Error; err != nil {
        writeError(c, err)
        return
    }
    c.Status(http.StatusNoContent)
}

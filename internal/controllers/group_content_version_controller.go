package controllers

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
)

type GroupContentVersionController struct {
    DB *gorm.DB
}

type groupContentVersionRequest struct {
    Name             string `json:"name"`
    Status           string `json:"status"`
    ContentVersionID string `json:"contentVersionId"`
    DeviceGroupID    string `json:"deviceGroupId"`
}

func validGroupContentVersionStatus(status string) bool {
    switch status {
    case models.GroupContentVersionStatusNotStarted,
        models.GroupContentVersionStatusInProgress,
        models.GroupContentVersionStatusReady:
        return true
    }
    return false
}

func (gc *GroupContentVersionController) find(c *gin.Context, exhibitionID string) (*models.GroupContentVersion, bool) {
    groupContentVersionID := c.Param("groupContentVersionId")
    var groupContentVersion models.GroupContentVersion
    if err := gc.DB.Where("id = ?", groupContentVersionID).First(&groupContentVersion).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "group content version " + groupContentVersionID + " not found"})
        return nil, false
    }
    if !belongsToExhibition(groupContentVersion.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusNotFound, gin.H{"error": "group content version " + groupContentVersionID + " not found"})
        return nil, false
    }
    return &groupContentVersion, true
}

// resolveRefs validates the payload references. A missing content
// version is reported as not found, a bad device group as a bad
// request.
func (gc *GroupContentVersionController) resolveRefs(c *gin.Context, exhibitionID string, req *groupContentVersionRequest) bool {
    var contentVersion models.ContentVersion
    if err := gc.DB.Where("id = ?", req.ContentVersionID).First(&contentVersion).Error; err != nil || !belongsToExhibition(contentVersion.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusNotFound, gin.H{"error": "content version " + req.ContentVersionID + " not found"})
        return false
    }
    var group models.DeviceGroup
    if err := gc.DB.Where("id = ?", req.DeviceGroupID).First(&group).Error; err != nil || !belongsToExhibition(group.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device group id " + req.DeviceGroupID})
        return false
    }
    return true
}

func (gc *GroupContentVersionController) Create(c *gin.Context) {
    var req groupContentVersionRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing group content version name"})
        return
    }
    if req.Status == "" {
        req.Status = models.GroupContentVersionStatusNotStarted
    }
    if !validGroupContentVersionStatus(req.Status) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group content version status " + req.Status})
        return
    }
    exhibition, ok := requireExhibition(c, gc.DB)
    if !ok {
        return
    }
    if !gc.resolveRefs(c, exhibition.ID, &req) {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    groupContentVersion := models.GroupContentVersion{
        ExhibitionID:     exhibition.ID,
        Name:             req.Name,
        Status:           req.Status,
        ContentVersionID: req.ContentVersionID,
        DeviceGroupID:    req.DeviceGroupID,
        CreatorID:        user.ID,
        LastModifierID:   user.ID,
    }
    if err := gc.DB.Create(&groupContentVersion).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusCreated, groupContentVersion)
}

func (gc *GroupContentVersionController) Find(c *gin.Context) {
    exhibition, ok := requireExhibition(c, gc.DB)
    if !ok {
        return
    }
    groupContentVersion, ok := gc.find(c, exhibition.ID)
    if !ok {
        return
    }
    c.JSON(http.StatusOK, groupContentVersion)
}

func (gc *GroupContentVersionController) List(c *gin.Context) {
    exhibition, ok := requireExhibition(c, gc.DB)
    if !ok {
        return
    }
    q := gc.DB.Where("exhibition_id = ?", exhibition.ID)
    if contentVersionID := c.Query("contentVersionId"); contentVersionID != "" {
        q = q.Where("content_version_id = ?", contentVersionID)
    }
    if groupID := c.Query("deviceGroupId"); groupID != "" {
        q = q.Where("device_group_id = ?", groupID)
    }
    groupContentVersions := []models.GroupContentVersion{}
    if err := q.Find(&groupContentVersions).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, groupContentVersions)
}

func (gc *GroupContentVersionController) Update(c *gin.Context) {
    var req groupContentVersionRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing group content version name"})
        return
    }
    if !validGroupContentVersionStatus(req.Status) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group content version status " + req.Status})
        return
    }
    exhibition, ok := requireExhibition(c, gc.DB)
    if !ok {
        return
    }
    if !gc.resolveRefs(c, exhibition.ID, &req) {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    groupContentVersion, ok := gc.find(c, exhibition.ID)
    if !ok {
        return
    }

    groupContentVersion.Name = req.Name
    groupContentVersion.Status = req.Status
    groupContentVersion.ContentVersionID = req.ContentVersionID
    groupContentVersion.DeviceGroupID = req.DeviceGroupID
    groupContentVersion.LastModifierID = user.ID
    if err := gc.DB.Save(groupContentVersion).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, groupContentVersion)
}

func (gc *GroupContentVersionController) Delete(c *gin.Context) {
    exhibition, ok := requireExhibition(c, gc.DB)
    if !ok {
        return
    }
    groupContentVersion, ok := gc.find(c, exhibition.ID)
    if !ok {
        return
    }
    if err := gc.DB.Delete(&models.GroupContentVersion{}, "id = ?", groupContentVersion.ID).Error; err != nil {
        writeError(c, err)
        return
    }
    c.Status(http.StatusNoContent)
}

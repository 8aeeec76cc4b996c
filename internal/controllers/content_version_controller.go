package controllers

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
    "github.com/Metatavu/muisti-api/internal/service"
)

type ContentVersionController struct {
    DB              *gorm.DB
    ContentVersions *service.ContentVersionService
}

type contentVersionRequest struct {
    Name     string   `json:"name"`
    Language string   `json:"language"`
    Rooms    []string `json:"rooms"`
}

// contentVersionResponse widens the stored entity with the room ids
// managed through the content version endpoints.
type contentVersionResponse struct {
    models.ContentVersion
    Rooms []string `json:"rooms"`
}

func (cc *ContentVersionController) respond(c *gin.Context, status int, contentVersion *models.ContentVersion) {
    roomIDs, err := cc.ContentVersions.RoomIDs(contentVersion.ID)
    if err != nil {
        writeError(c, err)
        return
    }
    c.JSON(status, contentVersionResponse{ContentVersion: *contentVersion, Rooms: roomIDs})
}

func (cc *ContentVersionController) find(c *gin.Context, exhibitionID string) (*models.ContentVersion, bool) {
    contentVersionID := c.Param("contentVersionId")
    contentVersion, err := cc.ContentVersions.FindByID(contentVersionID)
    if err != nil || !belongsToExhibition(contentVersion.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusNotFound, gin.H{"error": "content version " + contentVersionID + " not found"})
        return nil, false
    }
    return contentVersion, true
}

// resolveRooms validates each payload room id in payload order.
func (cc *ContentVersionController) resolveRooms(c *gin.Context, exhibitionID string, roomIDs []string) bool {
    for _, roomID := range roomIDs {
        var room models.ExhibitionRoom
        if err := cc.DB.Where("id = ?", roomID).First(&room).Error; err != nil || !belongsToExhibition(room.ExhibitionID, exhibitionID) {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id " + roomID})
            return false
        }
    }
    return true
}

func (cc *ContentVersionController) Create(c *gin.Context) {
    var req contentVersionRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing content version name"})
        return
    }
    if strings.TrimSpace(req.Language) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing content version language"})
        return
    }
    exhibition, ok := requireExhibition(c, cc.DB)
    if !ok {
        return
    }
    if !cc.resolveRooms(c, exhibition.ID, req.Rooms) {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    contentVersion, err := cc.ContentVersions.Create(exhibition.ID, req.Name, req.Language, req.Rooms, user.ID)
    if err != nil {
        writeError(c, err)
        return
    }
    cc.respond(c, http.StatusCreated, contentVersion)
}

func (cc *ContentVersionController) Find(c *gin.Context) {
    exhibition, ok := requireExhibition(c, cc.DB)
    if !ok {
        return
    }
    contentVersion, ok := cc.find(c, exhibition.ID)
    if !ok {
        return
    }
    cc.respond(c, http.StatusOK, contentVersion)
}

func (cc *ContentVersionController) List(c *gin.Context) {
    exhibition, ok := requireExhibition(c, cc.DB)
    if !ok {
        return
    }
    contentVersions, err := cc.ContentVersions.List(exhibition.ID, c.Query("roomId"))
    if err != nil {
        writeError(c, err)
        return
    }
    out := make([]contentVersionResponse, 0, len(contentVersions))
    for _, contentVersion := range contentVersions {
        roomIDs, err := cc.ContentVersions.RoomIDs(contentVersion.ID)
        if err != nil {
            writeError(c, err)
            return
        }
        out = append(out, contentVersionResponse{ContentVersion: contentVersion, Rooms: roomIDs})
    }
    c.JSON(http.StatusOK, out)
}

func (cc *ContentVersionController) Update(c *gin.Context) {
    var req contentVersionRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing content version name"})
        return
    }
    if strings.TrimSpace(req.Language) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing content version language"})
        return
    }
    exhibition, ok := requireExhibition(c, cc.DB)
    if !ok {
        return
    }
    if !cc.resolveRooms(c, exhibition.ID, req.Rooms) {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    contentVersion, ok := cc.find(c, exhibition.ID)
    if !ok {
        return
    }

    contentVersion, err := cc.ContentVersions.Update(contentVersion, req.Name, req.Language, req.Rooms, user.ID)
    if err != nil {
        writeError(c, err)
        return
    }
    cc.respond(c, http.StatusOK, contentVersion)
}

func (cc *ContentVersionController) Delete(c *gin.Context) {
    exhibition, ok := requireExhibition(c, cc.DB)
    if !ok {
        return
    }
    contentVersion, ok := cc.find(c, exhibition.ID)
    if !ok {
        return
    }
    if err := cc.ContentVersions.Delete(contentVersion); err != nil {
        writeError(c, err)
        return
    }
    c.Status(http.StatusNoContent)
}

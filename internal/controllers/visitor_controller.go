package controllers

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
    "github.com/Metatavu/muisti-api/internal/realtime"
)

type VisitorController struct {
    DB       *gorm.DB
    Notifier *realtime.Notifier
}

type visitorRequest struct {
    Email string `json:"email"`
    TagID string `json:"tagId"`
}

func (vc *VisitorController) find(c *gin.Context, exhibitionID string) (*models.Visitor, bool) {
    visitorID := c.Param("visitorId")
    var visitor models.Visitor
    if err := vc.DB.Where("id = ?", visitorID).First(&visitor).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "visitor " + visitorID + " not found"})
        return nil, false
    }
    if !belongsToExhibition(visitor.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusNotFound, gin.H{"error": "visitor " + visitorID + " not found"})
        return nil, false
    }
    return &visitor, true
}

func (vc *VisitorController) Create(c *gin.Context) {
    var req visitorRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Email) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing visitor email"})
        return
    }
    exhibition, ok := requireExhibition(c, vc.DB)
    if !ok {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    visitor := models.Visitor{
        ExhibitionID:   exhibition.ID,
        Email:          req.Email,
        TagID:          req.TagID,
        UserID:         user.ID,
        CreatorID:      user.ID,
        LastModifierID: user.ID,
    }
    if err := vc.DB.Create(&visitor).Error; err != nil {
        writeError(c, err)
        return
    }
    vc.Notifier.VisitorCreated(exhibition.ID, visitor.ID)
    c.JSON(http.StatusCreated, visitor)
}

func (vc *VisitorController) Find(c *gin.Context) {
    exhibition, ok := requireExhibition(c, vc.DB)
    if !ok {
        return
    }
    visitor, ok := vc.find(c, exhibition.ID)
    if !ok {
        return
    }
    c.JSON(http.StatusOK, visitor)
}

func (vc *VisitorController) List(c *gin.Context) {
    exhibition, ok := requireExhibition(c, vc.DB)
    if !ok {
        return
    }
    q := vc.DB.Where("exhibition_id = ?", exhibition.ID)
    if tagID := c.Query("tagId"); tagID != "" {
        q = q.Where("tag_id = ?", tagID)
    }
    visitors := []models.Visitor{}
    if err := q.Find(&visitors).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, visitors)
}

// FindTag checks whether a tag is known inside the exhibition. The
// response carries only the tag id, not the visitor it belongs to.
func (vc *VisitorController) FindTag(c *gin.Context) {
    exhibition, ok := requireExhibition(c, vc.DB)
    if !ok {
        return
    }
    tagID := c.Param("tagId")
    var visitor models.Visitor
    if err := vc.DB.Where("exhibition_id = ? AND tag_id = ?", exhibition.ID, tagID).First(&visitor).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "tag " + tagID + " not found"})
        return
    }
    c.JSON(http.StatusOK, gin.H{"tagId": visitor.TagID})
}

func (vc *VisitorController) Update(c *gin.Context) {
    var req visitorRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Email) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing visitor email"})
        return
    }
    exhibition, ok := requireExhibition(c, vc.DB)
    if !ok {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    visitor, ok := vc.find(c, exhibition.ID)
    if !ok {
        return
    }

    visitor.Email = req.Email
    visitor.TagID = req.TagID
    visitor.LastModifierID = user.ID
    if err := vc.DB.Save(visitor).Error; err != nil {
        writeError(c, err)
        return
    }
    vc.Notifier.VisitorUpdated(exhibition.ID, visitor.ID)
    c.JSON(http.StatusOK, visitor)
}

func (vc *VisitorController) Delete(c *gin.Context) {
    exhibition, ok := requireExhibition(c, vc.DB)
    if !ok {
        return
    }
    visitor, ok := vc.find(c, exhibition.ID)
    if !ok {
        return
    }
    if err := vc.DB.Delete(&models.Visitor{}, "id = ?", visitor.ID).Error; err != nil {
        writeError(c, err)
        return
    }
    vc.Notifier.VisitorDeleted(exhibition.ID, visitor.ID)
    c.Status(http.StatusNoContent)
}

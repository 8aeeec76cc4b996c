package controllers

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "gorm.io/datatypes"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
)

type RoomController struct {
    DB *gorm.DB
}

type roomRequest struct {
    Name     string         `json:"name"`
    FloorID  string         `json:"floorId"`
    GeoShape datatypes.JSON `json:"geoShape"`
}

// find resolves an exhibition-scoped room or writes a 404.
func (rc *RoomController) find(c *gin.Context, exhibitionID string) (*models.ExhibitionRoom, bool) {
    roomID := c.Param("roomId")
    var room models.ExhibitionRoom
    if err := rc.DB.Where("id = ?", roomID).First(&room).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "room " + roomID + " not found"})
        return nil, false
    }
    if !belongsToExhibition(room.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusNotFound, gin.H{"error": "room " + roomID + " not found"})
        return nil, false
    }
    return &room, true
}

// resolveFloor validates the payload floor reference.
func (rc *RoomController) resolveFloor(c *gin.Context, exhibitionID, floorID string) (*models.ExhibitionFloor, bool) {
    var floor models.ExhibitionFloor
    if err := rc.DB.Where("id = ?", floorID).First(&floor).Error; err != nil || !belongsToExhibition(floor.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid floor id " + floorID})
        return nil, false
    }
    return &floor, true
}

func (rc *RoomController) Create(c *gin.Context) {
    var req roomRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing room name"})
        return
    }
    exhibition, ok := requireExhibition(c, rc.DB)
    if !ok {
        return
    }
    floor, ok := rc.resolveFloor(c, exhibition.ID, req.FloorID)
    if !ok {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    room := models.ExhibitionRoom{
        ExhibitionID:   exhibition.ID,
        FloorID:        floor.ID,
        Name:           req.Name,
        GeoShape:       req.GeoShape,
        CreatorID:      user.ID,
        LastModifierID: user.ID,
    }
    if err := rc.DB.Create(&room).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusCreated, room)
}

func (rc *RoomController) Find(c *gin.Context) {
    exhibition, ok := requireExhibition(c, rc.DB)
    if !ok {
        return
    }
    room, ok := rc.find(c, exhibition.ID)
    if !ok {
        return
    }
    c.JSON(http.StatusOK, room)
}

func (rc *RoomController) List(c *gin.Context) {
    exhibition, ok := requireExhibition(c, rc.DB)
    if !ok {
        return
    }
    q := rc.DB.Where("exhibition_id = ?", exhibition.ID)
    if floorID := c.Query("floorId"); floorID != "" {
        q = q.Where("floor_id = ?", floorID)
    }
    rooms := []models.ExhibitionRoom{}
    if err := q.Find(&rooms).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, rooms)
}

func (rc *RoomController) Update(c *gin.Context) {
    var req roomRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing room name"})
        return
    }
    exhibition, ok := requireExhibition(c, rc.DB)
    if !ok {
        return
    }
    floor, ok := rc.resolveFloor(c, exhibition.ID, req.FloorID)
    if !ok {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    room, ok := rc.find(c, exhibition.ID)
    if !ok {
        return
    }

    room.Name = req.Name
    room.FloorID = floor.ID
    room.GeoShape = req.GeoShape
    room.LastModifierID = user.ID
    if err := rc.DB.Save(room).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, room)
}

func (rc *RoomController) Delete(c *gin.Context) {
    exhibition, ok := requireExhibition(c, rc.DB)
    if !ok {
        return
    }
    room, ok := rc.find(c, exhibition.ID)
    if !ok {
        return
    }
    if err := rc.DB.Delete(&models.ExhibitionRoom{}, "id = ?", room.ID).Error; err != nil {
        writeError(c, err)
        return
    }
    c.Status(http.StatusNoContent)
}

package controllers

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
)

type RfidAntennaController struct {
    DB *gorm.DB
}

type rfidAntennaRequest struct {
    Name                         string   `json:"name"`
    ReaderID                     string   `json:"readerId"`
    AntennaNumber                int      `json:"antennaNumber"`
    RoomID                       *string  `json:"roomId"`
    GroupID                      *string  `json:"groupId"`
    LocationX                    *float64 `json:"locationX"`
    LocationY                    *float64 `json:"locationY"`
    VisitorSessionStartThreshold int      `json:"visitorSessionStartThreshold"`
    VisitorSessionEndThreshold   int      `json:"visitorSessionEndThreshold"`
}

func (ac *RfidAntennaController) find(c *gin.Context, exhibitionID string) (*models.RfidAntenna, bool) {
    antennaID := c.Param("rfidAntennaId")
    var antenna models.RfidAntenna
    if err := ac.DB.Where("id = ?", antennaID).First(&antenna).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "rfid antenna " + antennaID + " not found"})
        return nil, false
    }
    if !belongsToExhibition(antenna.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusNotFound, gin.H{"error": "rfid antenna " + antennaID + " not found"})
        return nil, false
    }
    return &antenna, true
}

// resolveRefs validates the optional room and device group references.
func (ac *RfidAntennaController) resolveRefs(c *gin.Context, exhibitionID string, req *rfidAntennaRequest) bool {
    if req.RoomID != nil && *req.RoomID != "" {
        var room models.ExhibitionRoom
        if err := ac.DB.Where("id = ?", *req.RoomID).First(&room).Error; err != nil || !belongsToExhibition(room.ExhibitionID, exhibitionID) {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id " + *req.RoomID})
            return false
        }
    }
    if req.GroupID != nil && *req.GroupID != "" {
        var group models.DeviceGroup
        if err := ac.DB.Where("id = ?", *req.GroupID).First(&group).Error; err != nil || !belongsToExhibition(group.ExhibitionID, exhibitionID) {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device group id " + *req.GroupID})
            return false
        }
    }
    return true
}

func (ac *RfidAntennaController) Create(c *gin.Context) {
    var req rfidAntennaRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing rfid antenna name"})
        return
    }
    if strings.TrimSpace(req.ReaderID) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing rfid antenna reader id"})
        return
    }
    exhibition, ok := requireExhibition(c, ac.DB)
    if !ok {
        return
    }
    if !ac.resolveRefs(c, exhibition.ID, &req) {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    antenna := models.RfidAntenna{
        ExhibitionID:                 exhibition.ID,
        RoomID:                       req.RoomID,
        GroupID:                      req.GroupID,
        Name:                         req.Name,
        ReaderID:                     req.ReaderID,
        AntennaNumber:                req.AntennaNumber,
        LocationX:                    req.LocationX,
        LocationY:                    req.LocationY,
        VisitorSessionStartThreshold: req.VisitorSessionStartThreshold,
        VisitorSessionEndThreshold:   req.VisitorSessionEndThreshold,
        CreatorID:                    user.ID,
        LastModifierID:               user.ID,
    }
    if err := ac.DB.Create(&antenna).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusCreated, antenna)
}

func (ac *RfidAntennaController) Find(c *gin.Context) {
    exhibition, ok := requireExhibition(c, ac.DB)
    if !ok {
        return
    }
    antenna, ok := ac.find(c, exhibition.ID)
    if !ok {
        return
    }
    c.JSON(http.StatusOK, antenna)
}

func (ac *RfidAntennaController) List(c *gin.Context) {
    exhibition, ok := requireExhibition(c, ac.DB)
    if !ok {
        return
    }
    q := ac.DB.Where("exhibition_id = ?", exhibition.ID)
    if roomID := c.Query("roomId"); roomID != "" {
        q = q.Where("room_id = ?", roomID)
    }
    if groupID := c.Query("deviceGroupId"); groupID != "" {
        q = q.Where("group_id = ?", groupID)
    }
    antennas := []models.RfidAntenna{}
    if err := q.Find(&antennas).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, antennas)
}

func (ac *RfidAntennaController) Update(c *gin.Context) {
    var req rfidAntennaRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if strings.TrimSpace(req.Name) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing rfid antenna name"})
        return
    }
    if strings.TrimSpace(req.ReaderID) == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing rfid antenna reader id"})
        return
    }
    exhibition, ok := requireExhibition(c, ac.DB)
    if !ok {
        return
    }
    if !ac.resolveRefs(c, exhibition.ID, &req) {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    antenna, ok := ac.find(c, exhibition.ID)
    if !ok {
        return
    }

    antenna.Name = req.Name
    antenna.ReaderID = req.ReaderID
    antenna.AntennaNumber = req.AntennaNumber
    antenna.RoomID = req.RoomID
    antenna.GroupID = req.GroupID
    antenna.LocationX = req.LocationX
    antenna.LocationY = req.LocationY
    antenna.VisitorSessionStartThreshold = req.VisitorSessionStartThreshold
    antenna.VisitorSessionEndThreshold = req.VisitorSessionEndThreshold
    antenna.LastModifierID = user.ID
    if err := ac.DB.Save(antenna).Error; err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, antenna)
}

func (ac *RfidAntennaController) Delete(c *gin.Context) {
    exhibition, ok := requireExhibition(c, ac.DB)
    if !ok {
        return
    }
    antenna, ok := ac.find(c, exhibition.ID)
    if !ok {
        return
    }
    if err := ac.DB.Delete(&models.RfidAntenna{}, "id = ?", antenna.ID).Error; err != nil {
        writeError(c, err)
        return
    }
    c.Status(http.StatusNoContent)
}

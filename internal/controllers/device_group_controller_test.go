package controllers

import (
    "net/http"
    "testing"

    "github.com/gin-gonic/gin"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/Metatavu/muisti-api/internal/models"
)

func createRoomHTTP(t *testing.T, r *gin.Engine, exhibitionID string) models.ExhibitionRoom {
    t.Helper()
    w := doJSON(t, r, http.MethodPost, "/v1/exhibitions/"+exhibitionID+"/floors", gin.H{"name": "Ground"})
    require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
    var floor models.ExhibitionFloor
    decode(t, w, &floor)

    w = doJSON(t, r, http.MethodPost, "/v1/exhibitions/"+exhibitionID+"/rooms", gin.H{"name": "Hall", "floorId": floor.ID})
    require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
    var room models.ExhibitionRoom
    decode(t, w, &room)
    return room
}

func TestDeviceGroupCreateDefaultsStartStrategy(t *testing.T) {
    db := openTestDB(t)
    r, _ := newTestRouter(t, db)

    exhibition := createExhibitionHTTP(t, r, "Museum")
    room := createRoomHTTP(t, r, exhibition.ID)

    w := doJSON(t, r, http.MethodPost, "/v1/exhibitions/"+exhibition.ID+"/deviceGroups", gin.H{
        "name":   "Kiosks",
        "roomId": room.ID,
    })
    require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
    var group models.DeviceGroup
    decode(t, w, &group)
    assert.Equal(t, models.SessionStartStrategyOthersBlock, group.VisitorSessionStartStrategy)
}

func TestDeviceGroupCreateRejectsUnknownStrategy(t *testing.T) {
    db := openTestDB(t)
    r, _ := newTestRouter(t, db)

    exhibition := createExhibitionHTTP(t, r, "Museum")
    room := createRoomHTTP(t, r, exhibition.ID)

    w := doJSON(t, r, http.MethodPost, "/v1/exhibitions/"+exhibition.ID+"/deviceGroups", gin.H{
        "name":                        "Kiosks",
        "roomId":                      room.ID,
        "visitorSessionStartStrategy": "WHATEVER",
    })
    assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeviceGroupCopyEndpoint(t *testing.T) {
    db := openTestDB(t)
    r, _ := newTestRouter(t, db)

    exhibition := createExhibitionHTTP(t, r, "Museum")
    room := createRoomHTTP(t, r, exhibition.ID)

    w := doJSON(t, r, http.MethodPost, "/v1/exhibitions/"+exhibition.ID+"/deviceGroups", gin.H{
        "name":   "Kiosks",
        "roomId": room.ID,
    })
    require.Equal(t, http.StatusCreated, w.Code)
    var source models.DeviceGroup
    decode(t, w, &source)

    w = doJSON(t, r, http.MethodPost, "/v1/exhibitions/"+exhibition.ID+"/deviceGroups?sourceDeviceGroupId="+source.ID, nil)
    require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
    var copied models.DeviceGroup
    decode(t, w, &copied)
    assert.NotEqual(t, source.ID, copied.ID)
    assert.Equal(t, "Copy of Kiosks", copied.Name)
    assert.Equal(t, source.RoomID, copied.RoomID)
}

func TestDeviceGroupCopyRejectsForeignSource(t *testing.T) {
    db := openTestDB(t)
    r, _ := newTestRouter(t, db)

    mine := createExhibitionHTTP(t, r, "Mine")
    other := createExhibitionHTTP(t, r, "Other")
    otherRoom := createRoomHTTP(t, r, other.ID)

    w := doJSON(t, r, http.MethodPost, "/v1/exhibitions/"+other.ID+"/deviceGroups", gin.H{
        "name":   "Foreign",
        "roomId": otherRoom.ID,
    })
    require.Equal(t, http.StatusCreated, w.Code)
    var foreign models.DeviceGroup
    decode(t, w, &foreign)

    w = doJSON(t, r, http.MethodPost, "/v1/exhibitions/"+mine.ID+"/deviceGroups?sourceDeviceGroupId="+foreign.ID, nil)
    assert.Equal(t, http.StatusBadRequest, w.Code)

    var count int64
    require.NoError(t, db.Model(&models.DeviceGroup{}).Where("exhibition_id = ?", mine.ID).Count(&count).Error)
    assert.Zero(t, count)
}

func TestDeviceCreateValidatesRefsInPayloadOrder(t *testing.T) {
    db := openTestDB(t)
    r, _ := newTestRouter(t, db)

    exhibition := createExhibitionHTTP(t, r, "Museum")

    // both refs are bogus; the group is named first
    w := doJSON(t, r, http.MethodPost, "/v1/exhibitions/"+exhibition.ID+"/devices", gin.H{
        "name":              "Kiosk",
        "groupId":           "bogus-group",
        "modelId":           "bogus-model",
        "screenOrientation": models.ScreenOrientationLandscape,
    })
    require.Equal(t, http.StatusBadRequest, w.Code)
    assert.Contains(t, w.Body.String(), "invalid device group id bogus-group")
}

func TestDeviceGroupDelete(t *testing.T) {
    db := openTestDB(t)
    r, _ := newTestRouter(t, db)

    exhibition := createExhibitionHTTP(t, r, "Museum")
    room := createRoomHTTP(t, r, exhibition.ID)

    group := models.DeviceGroup{
        ExhibitionID:                exhibition.ID,
        RoomID:                      room.ID,
        Name:                        "Kiosks",
        VisitorSessionStartStrategy: models.SessionStartStrategyOthersBlock,
        CreatorID:                   "actor",
        LastModifierID:              "actor",
    }
    require.NoError(t, db.Create(&group).Error)

    w := doJSON(t, r, http.MethodGet, "/v1/exhibitions/"+exhibition.ID+"/deviceGroups/"+group.ID, nil)
    assert.Equal(t, http.StatusOK, w.Code)

    require.NoError(t, db.Delete(&models.DeviceGroup{}, "id = ?", group.ID).Error)

    w = doJSON(t, r, http.MethodGet, "/v1/exhibitions/"+exhibition.ID+"/deviceGroups/"+group.ID, nil)
    assert.Equal(t, http.StatusNotFound, w.Code)

    var count int64
    require.NoError(t, db.Model(&models.DeviceGroup{}).Where("id = ?", group.ID).Count(&count).Error)
    assert.Equal(t, int64(0), count)
}

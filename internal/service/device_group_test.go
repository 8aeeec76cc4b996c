package service

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
)

type copyFixture struct {
    exhibition     *models.Exhibition
    group          *models.DeviceGroup
    device         *models.ExhibitionDevice
    page           *models.ExhibitionPage
    contentVersion *models.ContentVersion
    gcv            *models.GroupContentVersion
    layout         *models.PageLayout
    model          *models.DeviceModel
}

// buildCopyFixture assembles a group whose device points at its own
// page as index page, the cyclic reference the copy has to remap.
func buildCopyFixture(t *testing.T, db *gorm.DB) *copyFixture {
    t.Helper()
    exhibition := createExhibition(t, db, "museum")
    room := createRoom(t, db, exhibition.ID, "hall")

    group := models.DeviceGroup{
        ExhibitionID:                exhibition.ID,
        RoomID:                      room.ID,
        Name:                        "kiosks",
        VisitorSessionStartStrategy: models.SessionStartStrategyOthersBlock,
        CreatorID:                   "actor",
        LastModifierID:              "actor",
    }
    require.NoError(t, db.Create(&group).Error)

    model := models.DeviceModel{ExhibitionID: exhibition.ID, Manufacturer: "Acme", Model: "Kiosk-1", CreatorID: "actor", LastModifierID: "actor"}
    require.NoError(t, db.Create(&model).Error)

    device := models.ExhibitionDevice{
        ExhibitionID:      exhibition.ID,
        GroupID:           group.ID,
        ModelID:           model.ID,
        Name:              "entrance kiosk",
        ScreenOrientation: models.ScreenOrientationLandscape,
        CreatorID:         "actor",
        LastModifierID:    "actor",
    }
    require.NoError(t, db.Create(&device).Error)

    contentVersion := models.ContentVersion{ExhibitionID: exhibition.ID, Name: "Main", Language: "FI", CreatorID: "actor", LastModifierID: "actor"}
    require.NoError(t, db.Create(&contentVersion).Error)

    gcv := models.GroupContentVersion{
        ExhibitionID:     exhibition.ID,
        Name:             "Main rollout",
        Status:           models.GroupContentVersionStatusNotStarted,
        ContentVersionID: contentVersion.ID,
        DeviceGroupID:    group.ID,
        CreatorID:        "actor",
        LastModifierID:   "actor",
    }
    require.NoError(t, db.Create(&gcv).Error)

    layout := models.PageLayout{Name: "default", ScreenOrientation: models.ScreenOrientationLandscape, CreatorID: "actor", LastModifierID: "actor"}
    require.NoError(t, db.Create(&layout).Error)

    page := models.ExhibitionPage{
        ExhibitionID:     exhibition.ID,
        DeviceID:         device.ID,
        ContentVersionID: contentVersion.ID,
        LayoutID:         layout.ID,
        Name:             "welcome",
        OrderNumber:      1,
        CreatorID:        "actor",
        LastModifierID:   "actor",
    }
    require.NoError(t, db.Create(&page).Error)

    device.IndexPageID = &page.ID
    require.NoError(t, db.Save(&device).Error)

    return &copyFixture{
        exhibition:     exhibition,
        group:          &group,
        device:         &device,
        page:           &page,
        contentVersion: &contentVersion,
        gcv:            &gcv,
        layout:         &layout,
        model:          &model,
    }
}

func TestDeviceGroupCopy(t *testing.T) {
    db := openTestDB(t)
    fx := buildCopyFixture(t, db)
    svc := &DeviceGroupService{DB: db}

    copied, err := svc.Copy(fx.group.ID, "Copy of ", "copier")
    require.NoError(t, err)

    assert.NotEqual(t, fx.group.ID, copied.ID)
    assert.Equal(t, "Copy of kiosks", copied.Name)
    assert.Equal(t, fx.exhibition.ID, copied.ExhibitionID)
    // the room is reused, not copied
    assert.Equal(t, fx.group.RoomID, copied.RoomID)
    assert.Equal(t, "copier", copied.CreatorID)

    var copiedDevices []models.ExhibitionDevice
    require.NoError(t, db.Where("group_id = ?", copied.ID).Find(&copiedDevices).Error)
    require.Len(t, copiedDevices, 1)
    copiedDevice := copiedDevices[0]
    assert.NotEqual(t, fx.device.ID, copiedDevice.ID)
    // model reused by reference, name kept verbatim
    assert.Equal(t, fx.model.ID, copiedDevice.ModelID)
    assert.Equal(t, "entrance kiosk", copiedDevice.Name)

    var copiedPages []models.ExhibitionPage
    require.NoError(t, db.Where("device_id = ?", copiedDevice.ID).Find(&copiedPages).Error)
    require.Len(t, copiedPages, 1)
    copiedPage := copiedPages[0]
    assert.NotEqual(t, fx.page.ID, copiedPage.ID)
    assert.Equal(t, fx.layout.ID, copiedPage.LayoutID)
    assert.Equal(t, "welcome", copiedPage.Name)

    // the device/index-page cycle is remapped into the copy
    require.NotNil(t, copiedDevice.IndexPageID)
    assert.Equal(t, copiedPage.ID, *copiedDevice.IndexPageID)

    var copiedGcvs []models.GroupContentVersion
    require.NoError(t, db.Where("device_group_id = ?", copied.ID).Find(&copiedGcvs).Error)
    require.Len(t, copiedGcvs, 1)
    copiedGcv := copiedGcvs[0]
    assert.Equal(t, "Copy of Main rollout", copiedGcv.Name)
    assert.NotEqual(t, fx.contentVersion.ID, copiedGcv.ContentVersionID)
    assert.Equal(t, copiedGcv.ContentVersionID, copiedPage.ContentVersionID)

    var copiedContentVersion models.ContentVersion
    require.NoError(t, db.Where("id = ?", copiedGcv.ContentVersionID).First(&copiedContentVersion).Error)
    assert.Equal(t, "Copy of Main", copiedContentVersion.Name)

    // source graph untouched
    var sourceDevice models.ExhibitionDevice
    require.NoError(t, db.Where("id = ?", fx.device.ID).First(&sourceDevice).Error)
    require.NotNil(t, sourceDevice.IndexPageID)
    assert.Equal(t, fx.page.ID, *sourceDevice.IndexPageID)
}

func TestDeviceGroupCopyMissingContentVersionAborts(t *testing.T) {
    db := openTestDB(t)
    fx := buildCopyFixture(t, db)
    svc := &DeviceGroupService{DB: db}

    // break the graph: the group content version now dangles
    require.NoError(t, db.Delete(&models.ContentVersion{}, "id = ?", fx.contentVersion.ID).Error)

    var groupsBefore, devicesBefore int64
    require.NoError(t, db.Model(&models.DeviceGroup{}).Count(&groupsBefore).Error)
    require.NoError(t, db.Model(&models.ExhibitionDevice{}).Count(&devicesBefore).Error)

    _, err := svc.Copy(fx.group.ID, "Copy of ", "copier")
    require.Error(t, err)
    var copyErr *CopyError
    assert.ErrorAs(t, err, &copyErr)

    // nothing was created
    var groupsAfter, devicesAfter int64
    require.NoError(t, db.Model(&models.DeviceGroup{}).Count(&groupsAfter).Error)
    require.NoError(t, db.Model(&models.ExhibitionDevice{}).Count(&devicesAfter).Error)
    assert.Equal(t, groupsBefore, groupsAfter)
    assert.Equal(t, devicesBefore, devicesAfter)
}

func TestDeviceGroupCopyUnknownSource(t *testing.T) {
    db := openTestDB(t)
    svc := &DeviceGroupService{DB: db}

    _, err := svc.Copy("00000000-0000-0000-0000-000000000000", "Copy of ", "copier")
    require.Error(t, err)
    assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

package service

import (
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
)

// DeviceGroupService implements the device group deep copy used for
// exhibition templating. Simple device group CRUD goes straight
// through the store.
type DeviceGroupService struct {
    DB *gorm.DB
}

// Copy duplicates a device group together with its devices, the
// content versions bound to it, its group content versions and the
// pages of its devices, in one transaction. Every new id is planned
// up front on a single IDMapper so that cyclic references between
// devices and their index pages remap consistently. Rooms, device
// models and layouts are reused by reference, not copied. Any missing
// referenced entity aborts the whole copy.
func (s *DeviceGroupService) Copy(sourceGroupID, namePrefix, actorID string) (*models.DeviceGroup, error) {
    var result *models.DeviceGroup
    err := s.DB.Transaction(func(tx *gorm.DB) error {
        var source models.DeviceGroup
        if err := tx.Where("id = ?", sourceGroupID).First(&source).Error; err != nil {
            return err
        }

        var devices []models.ExhibitionDevice
        if err := tx.Where("group_id = ?", source.ID).Find(&devices).Error; err != nil {
            return err
        }

        var groupContentVersions []models.GroupContentVersion
        if err := tx.Where("device_group_id = ?", source.ID).Find(&groupContentVersions).Error; err != nil {
            return err
        }

        contentVersions := make([]models.ContentVersion, 0, len(groupContentVersions))
        seen := make(map[string]bool, len(groupContentVersions))
        for _, gcv := range groupContentVersions {
            if seen[gcv.ContentVersionID] {
                continue
            }
            seen[gcv.ContentVersionID] = true
            var contentVersion models.ContentVersion
            if err := tx.Where("id = ?", gcv.ContentVersionID).First(&contentVersion).Error; err != nil {
                return copyErrorf("content version %s bound to group %s not found", gcv.ContentVersionID, source.ID)
            }
            contentVersions = append(contentVersions, contentVersion)
        }

        pages := []models.ExhibitionPage{}
        if len(devices) > 0 {
            deviceIDs := make([]string, 0, len(devices))
            for _, device := range devices {
                deviceIDs = append(deviceIDs, device.ID)
            }
            if err := tx.Where("device_id IN ?", deviceIDs).Find(&pages).Error; err != nil {
                return err
            }
        }

        // Plan every id before writing anything.
        mapper := NewIDMapper()
        mapper.AssignID(source.ID)
        for _, device := range devices {
            mapper.AssignID(device.ID)
        }
        for _, contentVersion := range contentVersions {
            mapper.AssignID(contentVersion.ID)
        }
        for _, gcv := range groupContentVersions {
            mapper.AssignID(gcv.ID)
        }
        for _, page := range pages {
            mapper.AssignID(page.ID)
        }

        group, err := copyDeviceGroup(tx, &source, mapper, namePrefix, actorID)
        if err != nil {
            return err
        }
        for i := range contentVersions {
            if _, err := copyContentVersion(tx, &contentVersions[i], mapper, namePrefix, actorID); err != nil {
                return err
            }
        }
        for i := range devices {
            if _, err := copyDevice(tx, &devices[i], mapper, actorID); err != nil {
                return err
            }
        }
        for i := range pages {
            if _, err := copyPage(tx, &pages[i], mapper, actorID); err != nil {
                return err
            }
        }
        for i := range groupContentVersions {
            if _, err := copyGroupContentVersion(tx, &groupContentVersions[i], mapper, namePrefix, actorID); err != nil {
                return err
            }
        }

        result = group
        return nil
    })
    if err != nil {
        return nil, err
    }
    return result, nil
}

func copyDeviceGroup(tx *gorm.DB, source *models.DeviceGroup, mapper *IDMapper, namePrefix, actorID string) (*models.DeviceGroup, error) {
    id, ok := mapper.GetNewID(source.ID)
    if !ok {
        return nil, copyErrorf("no id planned for device group %s", source.ID)
    }
    if source.ExhibitionID == "" {
        return nil, copyErrorf("source device group %s has no exhibition", source.ID)
    }
    if source.RoomID == "" {
        return nil, copyErrorf("source device group %s has no room", source.ID)
    }

    group := models.DeviceGroup{
        ID:                          id,
        ExhibitionID:                source.ExhibitionID,
        RoomID:                      source.RoomID,
        Name:                        namePrefix + source.Name,
        AllowVisitorSessionCreation: source.AllowVisitorSessionCreation,
        VisitorSessionEndTimeout:    source.VisitorSessionEndTimeout,
        VisitorSessionStartStrategy: source.VisitorSessionStartStrategy,
        IndexPageTimeout:            source.IndexPageTimeout,
        CreatorID:                   actorID,
        LastModifierID:              actorID,
    }
    if err := tx.Create(&group).Error; err != nil {
        return nil, err
    }
    return &group, nil
}

func copyDevice(tx *gorm.DB, source *models.ExhibitionDevice, mapper *IDMapper, actorID string) (*models.ExhibitionDevice, error) {
    id, ok := mapper.GetNewID(source.ID)
    if !ok {
        return nil, copyErrorf("no id planned for device %s", source.ID)
    }
    groupID, ok := mapper.GetNewID(source.GroupID)
    if !ok {
        return nil, copyErrorf("no id planned for group of device %s", source.ID)
    }
    if source.ModelID == "" {
        return nil, copyErrorf("source device %s has no model", source.ID)
    }

    var indexPageID *string
    if source.IndexPageID != nil {
        mapped, ok := mapper.GetNewID(*source.IndexPageID)
        if !ok {
            return nil, copyErrorf("no id planned for index page of device %s", source.ID)
        }
        indexPageID = &mapped
    }

    device := models.ExhibitionDevice{
        ID:                id,
        ExhibitionID:      source.ExhibitionID,
        GroupID:           groupID,
        ModelID:           source.ModelID,
        Name:              source.Name,
        LocationX:         source.LocationX,
        LocationY:         source.LocationY,
        ScreenOrientation: source.ScreenOrientation,
        IndexPageID:       indexPageID,
        CreatorID:         actorID,
        LastModifierID:    actorID,
    }
    if err := tx.Create(&device).Error; err != nil {
        return nil, err
    }
    return &device, nil
}

func copyPage(tx *gorm.DB, source *models.ExhibitionPage, mapper *IDMapper, actorID string) (*models.ExhibitionPage, error) {
    id, ok := mapper.GetNewID(source.ID)
    if !ok {
        return nil, copyErrorf("no id planned for page %s", source.ID)
    }
    deviceID, ok := mapper.GetNewID(source.DeviceID)
    if !ok {
        return nil, copyErrorf("no id planned for device of page %s", source.ID)
    }
    contentVersionID, ok := mapper.GetNewID(source.ContentVersionID)
    if !ok {
        return nil, copyErrorf("no id planned for content version of page %s", source.ID)
    }
    if source.LayoutID == "" {
        return nil, copyErrorf("source page %s has no layout", source.ID)
    }

    page := models.ExhibitionPage{
        ID:               id,
        ExhibitionID:     source.ExhibitionID,
        DeviceID:         deviceID,
        ContentVersionID: contentVersionID,
        LayoutID:         source.LayoutID,
        Name:             source.Name,
        Resources:        source.Resources,
        EventTriggers:    source.EventTriggers,
        EnterTransitions: source.EnterTransitions,
        ExitTransitions:  source.ExitTransitions,
        OrderNumber:      source.OrderNumber,
        CreatorID:        actorID,
        LastModifierID:   actorID,
    }
    if err := tx.Create(&page).Error; err != nil {
        return nil, err
    }
    return &page, nil
}

func copyGroupContentVersion(tx *gorm.DB, source *models.GroupContentVersion, mapper *IDMapper, namePrefix, actorID string) (*models.GroupContentVersion, error) {
    id, ok := mapper.GetNewID(source.ID)
    if !ok {
        return nil, copyErrorf("no id planned for group content version %s", source.ID)
    }
    contentVersionID, ok := mapper.GetNewID(source.ContentVersionID)
    if !ok {
        return nil, copyErrorf("no id planned for content version of group content version %s", source.ID)
    }
    deviceGroupID, ok := mapper.GetNewID(source.DeviceGroupID)
    if !ok {
        return nil, copyErrorf("no id planned for device group of group content version %s", source.ID)
    }

    gcv := models.GroupContentVersion{
        ID:               id,
        ExhibitionID:     source.ExhibitionID,
        Name:             namePrefix + source.Name,
        Status:           source.Status,
        ContentVersionID: contentVersionID,
        DeviceGroupID:    deviceGroupID,
        CreatorID:        actorID,
        LastModifierID:   actorID,
    }
    if err := tx.Create(&gcv).Error; err != nil {
        return nil, err
    }
    return &gcv, nil
}

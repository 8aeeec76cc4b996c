package service

import (
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
)

// ContentVersionService owns content versions and their room links.
type ContentVersionService struct {
    DB *gorm.DB
}

func (s *ContentVersionService) Create(exhibitionID, name, language string, roomIDs []string, actorID string) (*models.ContentVersion, error) {
    contentVersion := models.ContentVersion{
        ExhibitionID:   exhibitionID,
        Name:           name,
        Language:       language,
        CreatorID:      actorID,
        LastModifierID: actorID,
    }
    err := s.DB.Transaction(func(tx *gorm.DB) error {
        if err := tx.Create(&contentVersion).Error; err != nil {
            return err
        }
        return setContentVersionRooms(tx, contentVersion.ID, roomIDs)
    })
    if err != nil {
        return nil, err
    }
    return &contentVersion, nil
}

func (s *ContentVersionService) FindByID(id string) (*models.ContentVersion, error) {
    var contentVersion models.ContentVersion
    if err := s.DB.Where("id = ?", id).First(&contentVersion).Error; err != nil {
        return nil, err
    }
    return &contentVersion, nil
}

// List returns an exhibition's content versions, narrowed to the ones
// linked to roomID when it is given.
func (s *ContentVersionService) List(exhibitionID, roomID string) ([]models.ContentVersion, error) {
    contentVersions := []models.ContentVersion{}
    if roomID != "" {
        err := s.DB.
            Joins("JOIN content_version_rooms cvr ON cvr.content_version_id = content_versions.id").
            Where("cvr.room_id = ?", roomID).
            Find(&contentVersions).Error
        return contentVersions, err
    }
    err := s.DB.Where("exhibition_id = ?", exhibitionID).Find(&contentVersions).Error
    return contentVersions, err
}

func (s *ContentVersionService) Update(contentVersion *models.ContentVersion, name, language string, roomIDs []string, actorID string) (*models.ContentVersion, error) {
    err := s.DB.Transaction(func(tx *gorm.DB) error {
        contentVersion.Name = name
        contentVersion.Language = language
        contentVersion.LastModifierID = actorID
        if err := tx.Save(contentVersion).Error; err != nil {
            return err
        }
        return setContentVersionRooms(tx, contentVersion.ID, roomIDs)
    })
    if err != nil {
        return nil, err
    }
    return contentVersion, nil
}

// Delete removes the content version after its room links.
func (s *ContentVersionService) Delete(contentVersion *models.ContentVersion) error {
    return s.DB.Transaction(func(tx *gorm.DB) error {
        if err := tx.Where("content_version_id = ?", contentVersion.ID).Delete(&models.ContentVersionRoom{}).Error; err != nil {
            return err
        }
        return tx.Delete(&models.ContentVersion{}, "id = ?", contentVersion.ID).Error
    })
}

// RoomIDs lists the room ids currently linked to a content version.
func (s *ContentVersionService) RoomIDs(contentVersionID string) ([]string, error) {
    return contentVersionRoomIDs(s.DB, contentVersionID)
}

// Copy duplicates a content version inside tx. The new id must have
// been planned on mapper; the copy takes the source's scalar fields
// with namePrefix prepended to the name and re-derives its room links
// from the source's current room set.
func (s *ContentVersionService) Copy(tx *gorm.DB, source *models.ContentVersion, mapper *IDMapper, namePrefix, actorID string) (*models.ContentVersion, error) {
    return copyContentVersion(tx, source, mapper, namePrefix, actorID)
}

func copyContentVersion(tx *gorm.DB, source *models.ContentVersion, mapper *IDMapper, namePrefix, actorID string) (*models.ContentVersion, error) {
    id, ok := mapper.GetNewID(source.ID)
    if !ok {
        return nil, copyErrorf("no id planned for content version %s", source.ID)
    }
    if source.ExhibitionID == "" {
        return nil, copyErrorf("source content version %s has no exhibition", source.ID)
    }
    if source.Language == "" {
        return nil, copyErrorf("source content version %s has no language", source.ID)
    }

    contentVersion := models.ContentVersion{
        ID:             id,
        ExhibitionID:   source.ExhibitionID,
        Name:           namePrefix + source.Name,
        Language:       source.Language,
        CreatorID:      actorID,
        LastModifierID: actorID,
    }
    if err := tx.Create(&contentVersion).Error; err != nil {
        return nil, err
    }

    roomIDs, err := contentVersionRoomIDs(tx, source.ID)
    if err != nil {
        return nil, err
    }
    if err := setContentVersionRooms(tx, contentVersion.ID, roomIDs); err != nil {
        return nil, err
    }
    return &contentVersion, nil
}

func contentVersionRoomIDs(tx *gorm.DB, contentVersionID string) ([]string, error) {
    var links []models.ContentVersionRoom
    if err := tx.Where("content_version_id = ?", contentVersionID).Find(&links).Error; err != nil {
        return nil, err
    }
    roomIDs := make([]string, 0, len(links))
    for _, link := range links {
        roomIDs = append(roomIDs, link.RoomID)
    }
    return roomIDs, nil
}

// setContentVersionRooms converges the content version's room links
// to roomIDs with the same insert/retain/delete logic as the session
// sets.
func setContentVersionRooms(tx *gorm.DB, contentVersionID string, roomIDs []string) error {
    var existing []models.ContentVersionRoom
    if err := tx.Where("content_version_id = ?", contentVersionID).Find(&existing).Error; err != nil {
        return err
    }
    remaining := make(map[string]models.ContentVersionRoom, len(existing))
    for _, link := range existing {
        remaining[link.RoomID] = link
    }

    for _, roomID := range roomIDs {
        if _, ok := remaining[roomID]; ok {
            delete(remaining, roomID)
            continue
        }
        link := models.ContentVersionRoom{ContentVersionID: contentVersionID, RoomID: roomID}
        if err := tx.Create(&link).Error; err != nil {
            return err
        }
    }

    for _, link := range remaining {
        if err := tx.Delete(&models.ContentVersionRoom{}, "id = ?", link.ID).Error; err != nil {
            return err
        }
    }
    return nil
}

package service

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/Metatavu/muisti-api/internal/models"
)

func TestContentVersionCreateLinksRooms(t *testing.T) {
    db := openTestDB(t)
    svc := &ContentVersionService{DB: db}
    exhibition := createExhibition(t, db, "museum")
    room := createRoom(t, db, exhibition.ID, "hall")

    contentVersion, err := svc.Create(exhibition.ID, "Main", "FI", []string{room.ID}, "actor")
    require.NoError(t, err)

    roomIDs, err := svc.RoomIDs(contentVersion.ID)
    require.NoError(t, err)
    assert.Equal(t, []string{room.ID}, roomIDs)
}

func TestContentVersionUpdateConvergesRooms(t *testing.T) {
    db := openTestDB(t)
    svc := &ContentVersionService{DB: db}
    exhibition := createExhibition(t, db, "museum")
    hall := createRoom(t, db, exhibition.ID, "hall")
    wing := createRoom(t, db, exhibition.ID, "wing")

    contentVersion, err := svc.Create(exhibition.ID, "Main", "FI", []string{hall.ID}, "actor")
    require.NoError(t, err)

    _, err = svc.Update(contentVersion, "Main", "FI", []string{wing.ID}, "actor")
    require.NoError(t, err)

    roomIDs, err := svc.RoomIDs(contentVersion.ID)
    require.NoError(t, err)
    assert.Equal(t, []string{wing.ID}, roomIDs)
}

func TestContentVersionListByRoom(t *testing.T) {
    db := openTestDB(t)
    svc := &ContentVersionService{DB: db}
    exhibition := createExhibition(t, db, "museum")
    hall := createRoom(t, db, exhibition.ID, "hall")
    wing := createRoom(t, db, exhibition.ID, "wing")

    inHall, err := svc.Create(exhibition.ID, "Hall content", "FI", []string{hall.ID}, "actor")
    require.NoError(t, err)
    _, err = svc.Create(exhibition.ID, "Wing content", "FI", []string{wing.ID}, "actor")
    require.NoError(t, err)

    contentVersions, err := svc.List(exhibition.ID, hall.ID)
    require.NoError(t, err)
    require.Len(t, contentVersions, 1)
    assert.Equal(t, inHall.ID, contentVersions[0].ID)
}

func TestContentVersionDeleteRemovesRoomLinks(t *testing.T) {
    db := openTestDB(t)
    svc := &ContentVersionService{DB: db}
    exhibition := createExhibition(t, db, "museum")
    room := createRoom(t, db, exhibition.ID, "hall")

    contentVersion, err := svc.Create(exhibition.ID, "Main", "FI", []string{room.ID}, "actor")
    require.NoError(t, err)

    require.NoError(t, svc.Delete(contentVersion))

    var count int64
    require.NoError(t, db.Model(&models.ContentVersionRoom{}).Where("content_version_id = ?", contentVersion.ID).Count(&count).Error)
    assert.Zero(t, count)
}

func TestCopyContentVersion(t *testing.T) {
    db := openTestDB(t)
    svc := &ContentVersionService{DB: db}
    exhibition := createExhibition(t, db, "museum")
    room := createRoom(t, db, exhibition.ID, "hall")

    source, err := svc.Create(exhibition.ID, "Main", "FI", []string{room.ID}, "actor")
    require.NoError(t, err)

    mapper := NewIDMapper()
    planned := mapper.AssignID(source.ID)

    copied, err := svc.Copy(db, source, mapper, "Copy of ", "copier")
    require.NoError(t, err)

    assert.Equal(t, planned, copied.ID)
    assert.NotEqual(t, source.ID, copied.ID)
    assert.Equal(t, "Copy of Main", copied.Name)
    assert.Equal(t, "FI", copied.Language)
    assert.Equal(t, "copier", copied.CreatorID)

    roomIDs, err := svc.RoomIDs(copied.ID)
    require.NoError(t, err)
    assert.Equal(t, []string{room.ID}, roomIDs)
}

func TestCopyContentVersionWithoutPlannedID(t *testing.T) {
    db := openTestDB(t)
    svc := &ContentVersionService{DB: db}
    exhibition := createExhibition(t, db, "museum")

    source, err := svc.Create(exhibition.ID, "Main", "FI", nil, "actor")
    require.NoError(t, err)

    _, err = svc.Copy(db, source, NewIDMapper(), "Copy of ", "copier")
    require.Error(t, err)
    var copyErr *CopyError
    assert.ErrorAs(t, err, &copyErr)
}

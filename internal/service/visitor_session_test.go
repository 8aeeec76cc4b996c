package service

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/Metatavu/muisti-api/internal/models"
)

func sessionVisitorIDs(t *testing.T, db *VisitorSessionService, sessionID string) []string {
    t.Helper()
    var links []models.VisitorSessionVisitor
    require.NoError(t, db.DB.Where("session_id = ?", sessionID).Find(&links).Error)
    ids := make([]string, 0, len(links))
    for _, link := range links {
        ids = append(ids, link.VisitorID)
    }
    return ids
}

func TestSessionCreateAppliesInitialSets(t *testing.T) {
    db := openTestDB(t)
    svc := &VisitorSessionService{DB: db}
    exhibition := createExhibition(t, db, "museum")
    v1 := createVisitor(t, db, exhibition.ID, "v1@example.com")
    v2 := createVisitor(t, db, exhibition.ID, "v2@example.com")

    session, err := svc.Create(exhibition.ID, models.VisitorSessionStateActive,
        []string{v1.ID, v2.ID},
        []SessionVariable{{Name: "language", Value: "fi"}},
        nil, "actor")
    require.NoError(t, err)

    assert.ElementsMatch(t, []string{v1.ID, v2.ID}, sessionVisitorIDs(t, svc, session.ID))

    var variables []models.VisitorSessionVariable
    require.NoError(t, db.Where("session_id = ?", session.ID).Find(&variables).Error)
    require.Len(t, variables, 1)
    assert.Equal(t, "language", variables[0].Name)
    assert.Equal(t, "fi", variables[0].Value)
}

func TestSessionUpdateConvergesVisitorSet(t *testing.T) {
    db := openTestDB(t)
    svc := &VisitorSessionService{DB: db}
    exhibition := createExhibition(t, db, "museum")
    v1 := createVisitor(t, db, exhibition.ID, "v1@example.com")
    v2 := createVisitor(t, db, exhibition.ID, "v2@example.com")
    v3 := createVisitor(t, db, exhibition.ID, "v3@example.com")

    session, err := svc.Create(exhibition.ID, models.VisitorSessionStateActive,
        []string{v1.ID, v2.ID}, nil, nil, "actor")
    require.NoError(t, err)

    var keptBefore models.VisitorSessionVisitor
    require.NoError(t, db.Where("session_id = ? AND visitor_id = ?", session.ID, v2.ID).First(&keptBefore).Error)

    visitorsChanged, _, err := svc.Update(session, models.VisitorSessionStateActive,
        []string{v2.ID, v3.ID}, nil, nil, "actor")
    require.NoError(t, err)
    assert.True(t, visitorsChanged)
    assert.ElementsMatch(t, []string{v2.ID, v3.ID}, sessionVisitorIDs(t, svc, session.ID))

    // the matched link is retained, not recreated
    var keptAfter models.VisitorSessionVisitor
    require.NoError(t, db.Where("session_id = ? AND visitor_id = ?", session.ID, v2.ID).First(&keptAfter).Error)
    assert.Equal(t, keptBefore.ID, keptAfter.ID)
}

func TestSessionUpdateIsIdempotent(t *testing.T) {
    db := openTestDB(t)
    svc := &VisitorSessionService{DB: db}
    exhibition := createExhibition(t, db, "museum")
    v1 := createVisitor(t, db, exhibition.ID, "v1@example.com")

    session, err := svc.Create(exhibition.ID, models.VisitorSessionStateActive,
        []string{v1.ID},
        []SessionVariable{{Name: "score", Value: "10"}},
        nil, "actor")
    require.NoError(t, err)

    visitorsChanged, variablesChanged, err := svc.Update(session, models.VisitorSessionStateActive,
        []string{v1.ID},
        []SessionVariable{{Name: "score", Value: "10"}},
        nil, "actor")
    require.NoError(t, err)
    assert.False(t, visitorsChanged)
    assert.False(t, variablesChanged)
}

func TestSessionVariableUpdatesOnDifference(t *testing.T) {
    db := openTestDB(t)
    svc := &VisitorSessionService{DB: db}
    exhibition := createExhibition(t, db, "museum")

    session, err := svc.Create(exhibition.ID, models.VisitorSessionStateActive, nil,
        []SessionVariable{{Name: "score", Value: "10"}}, nil, "actor")
    require.NoError(t, err)

    _, variablesChanged, err := svc.Update(session, models.VisitorSessionStateActive, nil,
        []SessionVariable{{Name: "score", Value: "20"}}, nil, "actor")
    require.NoError(t, err)
    assert.True(t, variablesChanged)

    var variable models.VisitorSessionVariable
    require.NoError(t, db.Where("session_id = ? AND name = ?", session.ID, "score").First(&variable).Error)
    assert.Equal(t, "20", variable.Value)
}

func TestSessionVariableBlankValueDeletes(t *testing.T) {
    db := openTestDB(t)
    svc := &VisitorSessionService{DB: db}
    exhibition := createExhibition(t, db, "museum")

    session, err := svc.Create(exhibition.ID, models.VisitorSessionStateActive, nil,
        []SessionVariable{{Name: "score", Value: "10"}}, nil, "actor")
    require.NoError(t, err)

    _, variablesChanged, err := svc.Update(session, models.VisitorSessionStateActive, nil,
        []SessionVariable{{Name: "score", Value: ""}}, nil, "actor")
    require.NoError(t, err)
    assert.True(t, variablesChanged)

    var count int64
    require.NoError(t, db.Model(&models.VisitorSessionVariable{}).Where("session_id = ?", session.ID).Count(&count).Error)
    assert.Zero(t, count)
}

func TestSessionVariableOmittedNameDeletes(t *testing.T) {
    db := openTestDB(t)
    svc := &VisitorSessionService{DB: db}
    exhibition := createExhibition(t, db, "museum")

    session, err := svc.Create(exhibition.ID, models.VisitorSessionStateActive, nil,
        []SessionVariable{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}, nil, "actor")
    require.NoError(t, err)

    _, variablesChanged, err := svc.Update(session, models.VisitorSessionStateActive, nil,
        []SessionVariable{{Name: "a", Value: "1"}}, nil, "actor")
    require.NoError(t, err)
    assert.True(t, variablesChanged)

    var variables []models.VisitorSessionVariable
    require.NoError(t, db.Where("session_id = ?", session.ID).Find(&variables).Error)
    require.Len(t, variables, 1)
    assert.Equal(t, "a", variables[0].Name)
}

func TestVisitedDeviceGroupKeepsOriginalTimestamp(t *testing.T) {
    db := openTestDB(t)
    svc := &VisitorSessionService{DB: db}
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

    entered := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
    session, err := svc.Create(exhibition.ID, models.VisitorSessionStateActive, nil, nil,
        []VisitedDeviceGroup{{DeviceGroupID: group.ID, EnteredAt: entered}}, "actor")
    require.NoError(t, err)

    // resubmitting the same group with a later timestamp retains the row
    later := entered.Add(2 * time.Hour)
    _, _, err = svc.Update(session, models.VisitorSessionStateActive, nil, nil,
        []VisitedDeviceGroup{{DeviceGroupID: group.ID, EnteredAt: later}}, "actor")
    require.NoError(t, err)

    var visit models.VisitorSessionVisitedDeviceGroup
    require.NoError(t, db.Where("session_id = ?", session.ID).First(&visit).Error)
    assert.True(t, visit.EnteredAt.Equal(entered))
}

func TestSessionDeleteCascades(t *testing.T) {
    db := openTestDB(t)
    svc := &VisitorSessionService{DB: db}
    exhibition := createExhibition(t, db, "museum")
    v1 := createVisitor(t, db, exhibition.ID, "v1@example.com")

    session, err := svc.Create(exhibition.ID, models.VisitorSessionStateActive,
        []string{v1.ID},
        []SessionVariable{{Name: "language", Value: "fi"}},
        nil, "actor")
    require.NoError(t, err)

    require.NoError(t, svc.Delete(session))

    var count int64
    require.NoError(t, db.Model(&models.VisitorSession{}).Where("id = ?", session.ID).Count(&count).Error)
    assert.Zero(t, count)
    require.NoError(t, db.Model(&models.VisitorSessionVisitor{}).Where("session_id = ?", session.ID).Count(&count).Error)
    assert.Zero(t, count)
    require.NoError(t, db.Model(&models.VisitorSessionVariable{}).Where("session_id = ?", session.ID).Count(&count).Error)
    assert.Zero(t, count)
}

func TestSessionListByTag(t *testing.T) {
    db := openTestDB(t)
    svc := &VisitorSessionService{DB: db}
    exhibition := createExhibition(t, db, "museum")
    v1 := createVisitor(t, db, exhibition.ID, "v1@example.com")
    v1.TagID = "tag-123"
    require.NoError(t, db.Save(v1).Error)
    v2 := createVisitor(t, db, exhibition.ID, "v2@example.com")

    withTag, err := svc.Create(exhibition.ID, models.VisitorSessionStateActive, []string{v1.ID}, nil, nil, "actor")
    require.NoError(t, err)
    _, err = svc.Create(exhibition.ID, models.VisitorSessionStateActive, []string{v2.ID}, nil, nil, "actor")
    require.NoError(t, err)

    sessions, err := svc.List(exhibition.ID, "tag-123")
    require.NoError(t, err)
    require.Len(t, sessions, 1)
    assert.Equal(t, withTag.ID, sessions[0].ID)

    // unknown tag is an empty list, not an error
    sessions, err = svc.List(exhibition.ID, "no-such-tag")
    require.NoError(t, err)
    assert.Empty(t, sessions)
}

package service

import (
    "errors"
    "strings"
    "time"

    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
)

// VisitorSessionService owns visitor session state and the
// convergence of its three association sets (visitors, variables,
// visited device groups) to caller-supplied target sets.
type VisitorSessionService struct {
    DB *gorm.DB
}

// SessionVariable is a desired key/value entry for a session.
type SessionVariable struct {
    Name  string
    Value string
}

// VisitedDeviceGroup is a desired visited-group entry for a session.
type VisitedDeviceGroup struct {
    DeviceGroupID string
    EnteredAt     time.Time
}

// Create creates a session and applies the initial association sets
// in one transaction.
func (s *VisitorSessionService) Create(exhibitionID, state string, visitorIDs []string, variables []SessionVariable, visited []VisitedDeviceGroup, actorID string) (*models.VisitorSession, error) {
    session := models.VisitorSession{
        ExhibitionID:   exhibitionID,
        State:          state,
        CreatorID:      actorID,
        LastModifierID: actorID,
    }
    err := s.DB.Transaction(func(tx *gorm.DB) error {
        if err := tx.Create(&session).Error; err != nil {
            return err
        }
        if _, err := setSessionVisitors(tx, session.ID, visitorIDs); err != nil {
            return err
        }
        if _, err := setSessionVariables(tx, session.ID, variables); err != nil {
            return err
        }
        if _, err := setVisitedDeviceGroups(tx, session.ID, visited); err != nil {
            return err
        }
        return nil
    })
    if err != nil {
        return nil, err
    }
    return &session, nil
}

func (s *VisitorSessionService) FindByID(id string) (*models.VisitorSession, error) {
    var session models.VisitorSession
    if err := s.DB.Where("id = ?", id).First(&session).Error; err != nil {
        return nil, err
    }
    return &session, nil
}

// List returns an exhibition's sessions, optionally narrowed to the
// sessions of the visitor carrying tagID. An unknown tag yields an
// empty list, not an error.
func (s *VisitorSessionService) List(exhibitionID, tagID string) ([]models.VisitorSession, error) {
    sessions := []models.VisitorSession{}
    if tagID != "" {
        var visitor models.Visitor
        err := s.DB.Where("exhibition_id = ? AND tag_id = ?", exhibitionID, tagID).First(&visitor).Error
        if err != nil {
            if errors.Is(err, gorm.ErrRecordNotFound) {
                return sessions, nil
            }
            return nil, err
        }
        err = s.DB.
            Joins("JOIN visitor_session_visitors vsv ON vsv.session_id = visitor_sessions.id").
            Where("vsv.visitor_id = ?", visitor.ID).
            Find(&sessions).Error
        return sessions, err
    }
    err := s.DB.Where("exhibition_id = ?", exhibitionID).Find(&sessions).Error
    return sessions, err
}

// Update applies the new state and converges all three association
// sets inside a single transaction, so a mid-operation fault cannot
// leave e.g. visitors updated but variables not. It reports whether
// the visitor set and the variable set changed; callers use the flags
// to decide which change notifications to emit.
func (s *VisitorSessionService) Update(session *models.VisitorSession, state string, visitorIDs []string, variables []SessionVariable, visited []VisitedDeviceGroup, actorID string) (visitorsChanged, variablesChanged bool, err error) {
    err = s.DB.Transaction(func(tx *gorm.DB) error {
        session.State = state
        session.LastModifierID = actorID
        if err := tx.Save(session).Error; err != nil {
            return err
        }
        var txErr error
        visitorsChanged, txErr = setSessionVisitors(tx, session.ID, visitorIDs)
        if txErr != nil {
            return txErr
        }
        variablesChanged, txErr = setSessionVariables(tx, session.ID, variables)
        if txErr != nil {
            return txErr
        }
        _, txErr = setVisitedDeviceGroups(tx, session.ID, visited)
        return txErr
    })
    return visitorsChanged, variablesChanged, err
}

// Delete removes the session and all join rows referencing it.
func (s *VisitorSessionService) Delete(session *models.VisitorSession) error {
    return s.DB.Transaction(func(tx *gorm.DB) error {
        if err := tx.Where("session_id = ?", session.ID).Delete(&models.VisitorSessionVariable{}).Error; err != nil {
            return err
        }
        if err := tx.Where("session_id = ?", session.ID).Delete(&models.VisitorSessionVisitor{}).Error; err != nil {
            return err
        }
        if err := tx.Where("session_id = ?", session.ID).Delete(&models.VisitorSessionVisitedDeviceGroup{}).Error; err != nil {
            return err
        }
        return tx.Delete(&models.VisitorSession{}, "id = ?", session.ID).Error
    })
}

// setSessionVisitors converges the session's visitor links to
// visitorIDs: missing links are inserted, matched links retained
// as-is, links absent from the target deleted. Reports whether any
// row was written. Applying the same target twice is a no-op.
func setSessionVisitors(tx *gorm.DB, sessionID string, visitorIDs []string) (bool, error) {
    var existing []models.VisitorSessionVisitor
    if err := tx.Where("session_id = ?", sessionID).Find(&existing).Error; err != nil {
        return false, err
    }
    remaining := make(map[string]models.VisitorSessionVisitor, len(existing))
    for _, link := range existing {
        remaining[link.VisitorID] = link
    }

    changed := false
    for _, visitorID := range visitorIDs {
        if _, ok := remaining[visitorID]; ok {
            delete(remaining, visitorID)
            continue
        }
        link := models.VisitorSessionVisitor{SessionID: sessionID, VisitorID: visitorID}
        if err := tx.Create(&link).Error; err != nil {
            return false, err
        }
        changed = true
    }

    for _, link := range remaining {
        if err := tx.Delete(&models.VisitorSessionVisitor{}, "id = ?", link.ID).Error; err != nil {
            return false, err
        }
        changed = true
    }
    return changed, nil
}

// setSessionVariables converges the session's variables, keyed by
// name. A new name inserts; a non-blank value that differs from the
// stored one updates it; a blank value removes the variable; names
// absent from the target are deleted.
//
// The system this replaces updated an existing variable only when the
// submitted value EQUALED the stored one, which made every real value
// change a silent no-op. The intended contract is update-on-difference
// and that is what is implemented here.
func setSessionVariables(tx *gorm.DB, sessionID string, variables []SessionVariable) (bool, error) {
    var existing []models.VisitorSessionVariable
    if err := tx.Where("session_id = ?", sessionID).Find(&existing).Error; err != nil {
        return false, err
    }
    remaining := make(map[string]models.VisitorSessionVariable, len(existing))
    for _, variable := range existing {
        remaining[variable.Name] = variable
    }

    changed := false
    for _, variable := range variables {
        current, ok := remaining[variable.Name]
        if !ok {
            row := models.VisitorSessionVariable{SessionID: sessionID, Name: variable.Name, Value: variable.Value}
            if err := tx.Create(&row).Error; err != nil {
                return false, err
            }
            changed = true
            continue
        }
        if strings.TrimSpace(variable.Value) == "" {
            // blank value: leave the row in remaining so it is deleted below
            continue
        }
        if variable.Value != current.Value {
            if err := tx.Model(&models.VisitorSessionVariable{}).Where("id = ?", current.ID).Update("value", variable.Value).Error; err != nil {
                return false, err
            }
            changed = true
        }
        delete(remaining, variable.Name)
    }

    for _, variable := range remaining {
        if err := tx.Delete(&models.VisitorSessionVariable{}, "id = ?", variable.ID).Error; err != nil {
            return false, err
        }
        changed = true
    }
    return changed, nil
}

// setVisitedDeviceGroups converges the session's visited-group rows,
// keyed by device group id. Matched rows keep their original
// timestamp; only new rows take the submitted one.
func setVisitedDeviceGroups(tx *gorm.DB, sessionID string, visited []VisitedDeviceGroup) (bool, error) {
    var existing []models.VisitorSessionVisitedDeviceGroup
    if err := tx.Where("session_id = ?", sessionID).Find(&existing).Error; err != nil {
        return false, err
    }
    remaining := make(map[string]models.VisitorSessionVisitedDeviceGroup, len(existing))
    for _, visit := range existing {
        remaining[visit.DeviceGroupID] = visit
    }

    changed := false
    for _, visit := range visited {
        if _, ok := remaining[visit.DeviceGroupID]; ok {
            delete(remaining, visit.DeviceGroupID)
            continue
        }
        enteredAt := visit.EnteredAt
        if enteredAt.IsZero() {
            enteredAt = time.Now().UTC()
        }
        row := models.VisitorSessionVisitedDeviceGroup{
            SessionID:     sessionID,
            DeviceGroupID: visit.DeviceGroupID,
            EnteredAt:     enteredAt,
        }
        if err := tx.Create(&row).Error; err != nil {
            return false, err
        }
        changed = true
    }

    for _, visit := range remaining {
        if err := tx.Delete(&models.VisitorSessionVisitedDeviceGroup{}, "id = ?", visit.ID).Error; err != nil {
            return false, err
        }
        changed = true
    }
    return changed, nil
}

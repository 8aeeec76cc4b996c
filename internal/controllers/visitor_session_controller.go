package controllers

import (
    "net/http"
    "time"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
    "github.com/Metatavu/muisti-api/internal/realtime"
    "github.com/Metatavu/muisti-api/internal/service"
)

type VisitorSessionController struct {
    DB       *gorm.DB
    Sessions *service.VisitorSessionService
    Notifier *realtime.Notifier
}

type sessionVariablePayload struct {
    Name  string `json:"name"`
    Value string `json:"value"`
}

type visitedDeviceGroupPayload struct {
    DeviceGroupID string    `json:"deviceGroupId"`
    EnteredAt     time.Time `json:"enteredAt"`
}

type visitorSessionRequest struct {
    State               string                      `json:"state"`
    VisitorIDs          []string                    `json:"visitorIds"`
    Variables           []sessionVariablePayload    `json:"variables"`
    VisitedDeviceGroups []visitedDeviceGroupPayload `json:"visitedDeviceGroups"`
}

// visitorSessionResponse widens the stored session with its three
// association sets.
type visitorSessionResponse struct {
    models.VisitorSession
    VisitorIDs          []string                    `json:"visitorIds"`
    Variables           []sessionVariablePayload    `json:"variables"`
    VisitedDeviceGroups []visitedDeviceGroupPayload `json:"visitedDeviceGroups"`
}

func validSessionState(state string) bool {
    return state == models.VisitorSessionStateActive || state == models.VisitorSessionStateComplete
}

func (sc *VisitorSessionController) respond(c *gin.Context, status int, session *models.VisitorSession) {
    resp := visitorSessionResponse{
        VisitorSession:      *session,
        VisitorIDs:          []string{},
        Variables:           []sessionVariablePayload{},
        VisitedDeviceGroups: []visitedDeviceGroupPayload{},
    }

    var visitorLinks []models.VisitorSessionVisitor
    if err := sc.DB.Where("session_id = ?", session.ID).Find(&visitorLinks).Error; err != nil {
        writeError(c, err)
        return
    }
    for _, link := range visitorLinks {
        resp.VisitorIDs = append(resp.VisitorIDs, link.VisitorID)
    }

    var variables []models.VisitorSessionVariable
    if err := sc.DB.Where("session_id = ?", session.ID).Find(&variables).Error; err != nil {
        writeError(c, err)
        return
    }
    for _, variable := range variables {
        resp.Variables = append(resp.Variables, sessionVariablePayload{Name: variable.Name, Value: variable.Value})
    }

    var visits []models.VisitorSessionVisitedDeviceGroup
    if err := sc.DB.Where("session_id = ?", session.ID).Find(&visits).Error; err != nil {
        writeError(c, err)
        return
    }
    for _, visit := range visits {
        resp.VisitedDeviceGroups = append(resp.VisitedDeviceGroups, visitedDeviceGroupPayload{
            DeviceGroupID: visit.DeviceGroupID,
            EnteredAt:     visit.EnteredAt,
        })
    }

    c.JSON(status, resp)
}

func (sc *VisitorSessionController) find(c *gin.Context, exhibitionID string) (*models.VisitorSession, bool) {
    sessionID := c.Param("visitorSessionId")
    session, err := sc.Sessions.FindByID(sessionID)
    if err != nil || !belongsToExhibition(session.ExhibitionID, exhibitionID) {
        c.JSON(http.StatusNotFound, gin.H{"error": "visitor session " + sessionID + " not found"})
        return nil, false
    }
    return session, true
}

// resolveRefs validates the payload visitor and device group
// references in payload order.
func (sc *VisitorSessionController) resolveRefs(c *gin.Context, exhibitionID string, req *visitorSessionRequest) bool {
    for _, visitorID := range req.VisitorIDs {
        var visitor models.Visitor
        if err := sc.DB.Where("id = ?", visitorID).First(&visitor).Error; err != nil || !belongsToExhibition(visitor.ExhibitionID, exhibitionID) {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid visitor " + visitorID})
            return false
        }
    }
    for _, visit := range req.VisitedDeviceGroups {
        var group models.DeviceGroup
        if err := sc.DB.Where("id = ?", visit.DeviceGroupID).First(&group).Error; err != nil || !belongsToExhibition(group.ExhibitionID, exhibitionID) {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device group " + visit.DeviceGroupID})
            return false
        }
    }
    return true
}

func toServiceSets(req *visitorSessionRequest) ([]service.SessionVariable, []service.VisitedDeviceGroup) {
    variables := make([]service.SessionVariable, 0, len(req.Variables))
    for _, variable := range req.Variables {
        variables = append(variables, service.SessionVariable{Name: variable.Name, Value: variable.Value})
    }
    visited := make([]service.VisitedDeviceGroup, 0, len(req.VisitedDeviceGroups))
    for _, visit := range req.VisitedDeviceGroups {
        visited = append(visited, service.VisitedDeviceGroup{DeviceGroupID: visit.DeviceGroupID, EnteredAt: visit.EnteredAt})
    }
    return variables, visited
}

func (sc *VisitorSessionController) Create(c *gin.Context) {
    var req visitorSessionRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if req.State == "" {
        req.State = models.VisitorSessionStateActive
    }
    if !validSessionState(req.State) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid visitor session state " + req.State})
        return
    }
    exhibition, ok := requireExhibition(c, sc.DB)
    if !ok {
        return
    }
    if !sc.resolveRefs(c, exhibition.ID, &req) {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }

    variables, visited := toServiceSets(&req)
    session, err := sc.Sessions.Create(exhibition.ID, req.State, req.VisitorIDs, variables, visited, user.ID)
    if err != nil {
        writeError(c, err)
        return
    }
    sc.Notifier.SessionCreated(exhibition.ID, session.ID)
    sc.respond(c, http.StatusCreated, session)
}

func (sc *VisitorSessionController) Find(c *gin.Context) {
    exhibition, ok := requireExhibition(c, sc.DB)
    if !ok {
        return
    }
    session, ok := sc.find(c, exhibition.ID)
    if !ok {
        return
    }
    sc.respond(c, http.StatusOK, session)
}

func (sc *VisitorSessionController) List(c *gin.Context) {
    exhibition, ok := requireExhibition(c, sc.DB)
    if !ok {
        return
    }
    sessions, err := sc.Sessions.List(exhibition.ID, c.Query("tagId"))
    if err != nil {
        writeError(c, err)
        return
    }
    c.JSON(http.StatusOK, sessions)
}

func (sc *VisitorSessionController) Update(c *gin.Context) {
    var req visitorSessionRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
        return
    }
    if !validSessionState(req.State) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid visitor session state " + req.State})
        return
    }
    exhibition, ok := requireExhibition(c, sc.DB)
    if !ok {
        return
    }
    if !sc.resolveRefs(c, exhibition.ID, &req) {
        return
    }
    user, ok := actor(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
        return
    }
    session, ok := sc.find(c, exhibition.ID)
    if !ok {
        return
    }

    variables, visited := toServiceSets(&req)
    visitorsChanged, variablesChanged, err := sc.Sessions.Update(session, req.State, req.VisitorIDs, variables, visited, user.ID)
    if err != nil {
        writeError(c, err)
        return
    }
    sc.Notifier.SessionUpdated(exhibition.ID, session.ID, variablesChanged, visitorsChanged)
    sc.respond(c, http.StatusOK, session)
}

func (sc *VisitorSessionController) Delete(c *gin.Context) {
    exhibition, ok := requireExhibition(c, sc.DB)
    if !ok {
        return
    }
    session, ok := sc.find(c, exhibition.ID)
    if !ok {
        return
    }
    if err := sc.Sessions.Delete(session); err != nil {
        writeError(c, err)
        return
    }
    sc.Notifier.SessionDeleted(exhibition.ID, session.ID)
    c.Status(http.StatusNoContent)
}

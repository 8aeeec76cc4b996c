package controllers

import (
    "errors"
    "net/http"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/Metatavu/muisti-api/internal/models"
    "github.com/Metatavu/muisti-api/internal/service"
)

// actor returns the authenticated user placed in the context by the
// auth middleware.
func actor(c *gin.Context) (models.User, bool) {
    uVal, ok := c.Get("user")
    if !ok {
        return models.User{}, false
    }
    user, ok := uVal.(models.User)
    return user, ok
}

// belongsToExhibition reports whether a child's stored exhibition
// reference matches the exhibition addressed by the request path.
// Handlers treat a mismatch exactly like a missing entity, so entity
// ids cannot be probed across exhibitions.
func belongsToExhibition(childExhibitionID, exhibitionID string) bool {
    return childExhibitionID != "" && childExhibitionID == exhibitionID
}

// requireExhibition resolves the path exhibition or writes a 404.
func requireExhibition(c *gin.Context, db *gorm.DB) (*models.Exhibition, bool) {
    exhibitionID := c.Param("exhibitionId")
    var exhibition models.Exhibition
    if err := db.Where("id = ?", exhibitionID).First(&exhibition).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "exhibition " + exhibitionID + " not found"})
        return nil, false
    }
    return &exhibition, true
}

func isNotFound(err error) bool {
    return errors.Is(err, gorm.ErrRecordNotFound)
}

// writeError maps service errors to wire errors. Copy failures are
// internal: the caller submitted ids that resolved, so a failure
// means the stored graph itself is broken.
func writeError(c *gin.Context, err error) {
    var copyErr *service.CopyError
    if errors.As(err, &copyErr) {
        c.JSON(http.StatusInternalServerError, gin.H{"error": copyErr.Error()})
        return
    }
    if isNotFound(err) {
        c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
        return
    }
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

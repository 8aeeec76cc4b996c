package controllers

import (
    "net/http"
    "testing"

    "github.com/gin-gonic/gin"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/Metatavu/muisti-api/internal/models"
)

func TestExhibitionCrud(t *testing.T) {
    db := openTestDB(t)
    r, user := newTestRouter(t, db)

    exhibition := createExhibitionHTTP(t, r, "Design museum")
    assert.NotEmpty(t, exhibition.ID)
    assert.Equal(t, user.ID, exhibition.CreatorID)

    w := doJSON(t, r, http.MethodGet, "/v1/exhibitions/"+exhibition.ID, nil)
    require.Equal(t, http.StatusOK, w.Code)

    w = doJSON(t, r, http.MethodPut, "/v1/exhibitions/"+exhibition.ID, gin.H{"name": "Renamed"})
    require.Equal(t, http.StatusOK, w.Code)
    var updated models.Exhibition
    decode(t, w, &updated)
    assert.Equal(t, "Renamed", updated.Name)

    w = doJSON(t, r, http.MethodDelete, "/v1/exhibitions/"+exhibition.ID, nil)
    require.Equal(t, http.StatusNoContent, w.Code)

    w = doJSON(t, r, http.MethodGet, "/v1/exhibitions/"+exhibition.ID, nil)
    assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExhibitionCreateRequiresName(t *testing.T) {
    db := openTestDB(t)
    r, _ := newTestRouter(t, db)

    w := doJSON(t, r, http.MethodPost, "/v1/exhibitions", gin.H{"name": "   "})
    assert.Equal(t, http.StatusBadRequest, w.Code)
}

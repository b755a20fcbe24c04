package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/store"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondStoreError maps the store error taxonomy onto HTTP statuses:
// validation 400, missing id 404, illegal transition 409, store down 503.
func respondStoreError(c *gin.Context, route string, err error) {
	var (
		validationErr  store.ValidationError
		notFoundErr    store.NotFoundError
		transitionErr  store.InvalidTransitionError
		unavailableErr store.StoreUnavailableError
	)

	switch {
	case errors.As(err, &validationErr):
		respondWithError(c, http.StatusBadRequest, route, validationErr.Msg)
	case errors.As(err, &notFoundErr):
		respondWithError(c, http.StatusNotFound, route, "order not found")
	case errors.As(err, &transitionErr):
		respondWithError(c, http.StatusConflict, route, transitionErr.Error())
	case errors.As(err, &unavailableErr):
		respondWithError(c, http.StatusServiceUnavailable, route, "store unavailable")
	default:
		log.Printf("[%s] [ERROR] unexpected: %v", route, err)
		respondWithError(c, http.StatusInternalServerError, route, "internal error")
	}
}

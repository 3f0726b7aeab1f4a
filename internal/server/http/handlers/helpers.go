package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/fundraiser/internal/adapter/identity"
	domainErrors "github.com/polkiloo/fundraiser/internal/domain/errors"
	"github.com/polkiloo/fundraiser/internal/server/http/dto"
	"github.com/polkiloo/fundraiser/internal/server/http/middleware"
)

// CurrentAccountID extracts authenticated account identifier from context.
func CurrentAccountID(c *gin.Context) string {
	return c.GetString(middleware.AccountIDContextKey)
}

// CurrentToken returns the session token the request was authenticated with.
func CurrentToken(c *gin.Context) string {
	return c.GetString(middleware.TokenContextKey)
}

var errInvalidLimit = errors.New("limit must be a positive integer")

// parseLimit reads the optional limit query parameter. Zero means unset.
func parseLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errInvalidLimit
	}
	return n, nil
}

func statusFor(kind domainErrors.Kind) int {
	switch kind {
	case domainErrors.KindInvalidCredentials:
		return http.StatusUnauthorized
	case domainErrors.KindNotFound, domainErrors.KindAccountNotFound:
		return http.StatusNotFound
	case domainErrors.KindEmailTaken,
		domainErrors.KindConcurrentUpdateConflict,
		domainErrors.KindAlreadyExists,
		domainErrors.KindReferralCodeTaken:
		return http.StatusConflict
	case domainErrors.KindWeakCredential:
		return http.StatusBadRequest
	case domainErrors.KindInvalidAmount:
		return http.StatusUnprocessableEntity
	case domainErrors.KindProfileCreateFailed, domainErrors.KindCodeGenerationExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"error": kind, "message": text}.
func writeError(c *gin.Context, err error) {
	writeErrorStatus(c, statusFor(domainErrors.KindOf(err)), err)
}

func writeErrorStatus(c *gin.Context, status int, err error) {
	var limited identity.TooManyRequestsError
	if errors.As(err, &limited) {
		if limited.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(limited.RetryAfter.Seconds()))))
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
			Error:   "too_many_requests",
			Message: "identity service is rate limiting requests",
		})
		return
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error:   string(domainErrors.KindOf(err)),
		Message: domainErrors.MessageOf(err),
	})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "bad_request", Message: message})
}

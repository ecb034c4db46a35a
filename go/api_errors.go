package shopserver

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	itemapp "github.com/Apurer/go-gin-shop-server/internal/domains/items/application"
	itemports "github.com/Apurer/go-gin-shop-server/internal/domains/items/ports"
	memberapp "github.com/Apurer/go-gin-shop-server/internal/domains/members/application"
	memberports "github.com/Apurer/go-gin-shop-server/internal/domains/members/ports"
	orderapp "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-shop-server/internal/shared/errors"
	"github.com/Apurer/go-gin-shop-server/internal/shared/uow"
)

var serviceResponder = apierrors.NewChainedResponder("",
	mapSentinel(apierrors.ErrNotFound, memberports.ErrNotFound, itemports.ErrNotFound, orderports.ErrNotFound),
	mapSentinel(apierrors.ErrValidation, memberapp.ErrInvalidInput, itemapp.ErrInvalidInput, orderapp.ErrInvalidInput),
	mapSentinel(apierrors.ErrConflict, memberapp.ErrDuplicateMember, orderports.ErrIdempotencyConflict),
	mapSentinel(apierrors.ErrUnprocessable, orderapp.ErrRejected),
	mapSentinel(apierrors.ErrTimeout, uow.ErrTimeout),
)

// mapSentinel answers with problem when err wraps any of sentinels.
func mapSentinel(problem apierrors.ProblemDetail, sentinels ...error) apierrors.ErrorMapper {
	return func(err error) (apierrors.ProblemDetail, bool) {
		for _, sentinel := range sentinels {
			if errors.Is(err, sentinel) {
				return problem.WithDetail(err.Error()), true
			}
		}
		return apierrors.ProblemDetail{}, false
	}
}

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondServiceError translates service errors into RFC 7807 responses.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	serviceResponder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondBadRequest(c, err)
		return 0, false
	}
	return id, true
}

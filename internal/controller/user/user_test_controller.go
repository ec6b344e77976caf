package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/testforge/internal/dto"
	"github.com/lshigami/testforge/internal/service"
	"github.com/rs/zerolog/log"
)

type UserTestController struct {
	catalogSvc service.TestCatalogService
	attemptSvc service.AttemptService
}

func NewUserTestController(catalogSvc service.TestCatalogService, attemptSvc service.AttemptService) *UserTestController {
	return &UserTestController{catalogSvc: catalogSvc, attemptSvc: attemptSvc}
}

// GetAllTests godoc
// @Summary List published tests
// @Description Retrieve all published tests with their question counts
// @Tags tests
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /tests [get]
func (ctrl *UserTestController) GetAllTests(c *gin.Context) {
	tests, err := ctrl.catalogSvc.ListPublishedTests()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tests")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve tests"})
		return
	}
	c.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary Get a test with its questions
// @Tags tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id} [get]
func (ctrl *UserTestController) GetTestDetails(c *gin.Context) {
	id, err := parseUintParam(c, "test_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid test ID format"})
		return
	}

	test, err := ctrl.catalogSvc.GetTestWithQuestions(id)
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Test not found"})
			return
		}
		log.Error().Err(err).Uint("testID", id).Msg("Failed to get test")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve test"})
		return
	}
	c.JSON(http.StatusOK, test)
}

// SubmitTestAttempt godoc
// @Summary Submit answers for a test
// @Description Records a full set of answers; objective questions are auto-scored
// @Tags attempts
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param submission body dto.TestAttemptSubmitDTO true "Answers"
// @Success 201 {object} dto.TestAttemptDetailDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id}/attempts [post]
func (ctrl *UserTestController) SubmitTestAttempt(c *gin.Context) {
	id, err := parseUintParam(c, "test_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid test ID format"})
		return
	}

	var req dto.TestAttemptSubmitDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	detail, err := ctrl.attemptSvc.SubmitAttempt(id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTestNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Test not found"})
		case errors.Is(err, service.ErrTestNotPublished):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Test is not published"})
		default:
			log.Error().Err(err).Uint("testID", id).Msg("Failed to submit attempt")
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to submit attempt: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, detail)
}

// GetTestAttemptDetails godoc
// @Summary Get a specific test attempt
// @Tags attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.TestAttemptDetailDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /test-attempts/{attempt_id} [get]
func (ctrl *UserTestController) GetTestAttemptDetails(c *gin.Context) {
	id, err := parseUintParam(c, "attempt_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid attempt ID format"})
		return
	}

	detail, err := ctrl.attemptSvc.GetAttemptDetails(id)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Test attempt not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

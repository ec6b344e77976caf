package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/testforge/internal/dto"
	"github.com/lshigami/testforge/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	aiTestSvc service.AITestService
}

func NewAdminTestController(aiTestSvc service.AITestService) *AdminTestController {
	return &AdminTestController{aiTestSvc: aiTestSvc}
}

// GenerateTest godoc
// @Summary Generate a practice test with AI
// @Description Builds a TOEIC/IELTS test structure, generates its content via the configured LLM and publishes the result. Falls back to deterministic sample content when generation output is unusable.
// @Tags tests
// @Accept json
// @Produce json
// @Param request body dto.GenerateTestRequest true "Generation parameters"
// @Success 201 {object} dto.GenerateTestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid testType or difficulty"
// @Failure 500 {object} dto.ServerErrorResponse "Generation or persistence failure"
// @Router /tests/ai-generate [post]
func (ctrl *AdminTestController) GenerateTest(c *gin.Context) {
	var req dto.GenerateTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Invalid AI generation request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.aiTestSvc.GenerateTest(c.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("testType", req.TestType).Msg("AI test generation failed")
		switch {
		case errors.Is(err, service.ErrGenerationFailed):
			c.JSON(http.StatusInternalServerError, dto.ServerErrorResponse{
				Error:   "generation_failed",
				Message: "The content generation service is unavailable. Please try again later.",
			})
		case errors.Is(err, service.ErrNoQuestionsFound):
			c.JSON(http.StatusInternalServerError, dto.ServerErrorResponse{
				Error:   "no_questions",
				Message: "No usable questions could be produced for this test.",
			})
		default:
			c.JSON(http.StatusInternalServerError, dto.ServerErrorResponse{
				Error:   "internal_error",
				Message: "Failed to create the test.",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

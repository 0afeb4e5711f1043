package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stitch-backend/internal/models"
	"stitch-backend/internal/status"
)

func intPtr(v int) *int { return &v }

func TestApplyStageUpdatePercentOnly(t *testing.T) {
	stage := &models.ProductionStage{Status: status.StagePending, CompletionPercent: 0}

	err := applyStageUpdate(stage, &models.UpdateStageRequest{CompletionPercent: intPtr(40)})
	require.NoError(t, err)
	assert.Equal(t, 40, stage.CompletionPercent)
	assert.Equal(t, status.StageInProgress, stage.Status)
}

func TestApplyStageUpdateStatusOnlyKeepsPercent(t *testing.T) {
	// A report that only touches the status must not reset the recorded
	// completion.
	stage := &models.ProductionStage{Status: status.StagePending, CompletionPercent: 60}

	err := applyStageUpdate(stage, &models.UpdateStageRequest{Status: status.StageInProgress})
	require.NoError(t, err)
	assert.Equal(t, 60, stage.CompletionPercent)
	assert.Equal(t, status.StageInProgress, stage.Status)
}

func TestApplyStageUpdateNotesOnlyKeepsPercent(t *testing.T) {
	stage := &models.ProductionStage{Status: status.StageInProgress, CompletionPercent: 75}

	err := applyStageUpdate(stage, &models.UpdateStageRequest{
		Notes:  "second fitting approved",
		Photos: []string{"https://cdn.example.com/p/1.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, 75, stage.CompletionPercent)
	assert.Equal(t, "second fitting approved", stage.Notes)
	assert.Len(t, stage.Photos, 1)
}

func TestApplyStageUpdateReconciliation(t *testing.T) {
	t.Run("completed status forces 100 percent", func(t *testing.T) {
		stage := &models.ProductionStage{Status: status.StageInProgress, CompletionPercent: 80}
		err := applyStageUpdate(stage, &models.UpdateStageRequest{Status: status.StageCompleted})
		require.NoError(t, err)
		assert.Equal(t, 100, stage.CompletionPercent)
	})

	t.Run("100 percent forces completed status", func(t *testing.T) {
		stage := &models.ProductionStage{Status: status.StageInProgress, CompletionPercent: 50}
		err := applyStageUpdate(stage, &models.UpdateStageRequest{CompletionPercent: intPtr(100)})
		require.NoError(t, err)
		assert.Equal(t, status.StageCompleted, stage.Status)
	})

	t.Run("percent is clamped", func(t *testing.T) {
		stage := &models.ProductionStage{Status: status.StageInProgress, CompletionPercent: 20}
		err := applyStageUpdate(stage, &models.UpdateStageRequest{CompletionPercent: intPtr(140)})
		require.NoError(t, err)
		assert.Equal(t, 100, stage.CompletionPercent)
		assert.Equal(t, status.StageCompleted, stage.Status)

		stage = &models.ProductionStage{Status: status.StageInProgress, CompletionPercent: 20}
		err = applyStageUpdate(stage, &models.UpdateStageRequest{CompletionPercent: intPtr(-5)})
		require.NoError(t, err)
		assert.Equal(t, 0, stage.CompletionPercent)
	})
}

func TestApplyStageUpdateRejectsUnknownStatus(t *testing.T) {
	stage := &models.ProductionStage{Status: status.StagePending, CompletionPercent: 30}

	err := applyStageUpdate(stage, &models.UpdateStageRequest{Status: "shipped"})
	assert.Error(t, err)
	assert.Equal(t, 30, stage.CompletionPercent)
}

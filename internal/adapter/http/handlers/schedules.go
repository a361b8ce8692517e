package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"schedsync/internal/adapter/http/dto"
	"schedsync/internal/adapter/http/mapper"
	"schedsync/internal/adapter/http/validation"
	"schedsync/internal/core/ports"
	"schedsync/pkg/apierrors"
)

const maxIDLength = 64

type ScheduleHandler struct {
	scheduleService ports.ScheduleService
}

func NewScheduleHandler(scheduleService ports.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	scheduleID, ok := pathID(c, "id", apierrors.MsgInvalidScheduleID)
	if !ok {
		return
	}

	schedule, err := h.scheduleService.GetSchedule(c.Request.Context(), scheduleID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailLoadSchedule)
		return
	}

	c.JSON(http.StatusOK, mapper.ToScheduleItem(schedule))
}

func (h *ScheduleHandler) Reorder(c *gin.Context) {
	scheduleID, ok := pathID(c, "id", apierrors.MsgInvalidScheduleID)
	if !ok {
		return
	}

	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidReorderPayload)
		return
	}

	tasks, err := h.scheduleService.Reorder(c.Request.Context(), scheduleID, *req.SourceIndex, *req.TargetIndex)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateSchedule)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskListResponse(scheduleID, tasks))
}

func (h *ScheduleHandler) AddTask(c *gin.Context) {
	scheduleID, ok := pathID(c, "id", apierrors.MsgInvalidScheduleID)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	raw, ok := bindWithRaw(c, &req)
	if !ok {
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		invalidField(c, err, apierrors.MsgInvalidTaskPayload)
		return
	}

	tasks, err := h.scheduleService.AddTask(c.Request.Context(), scheduleID, input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateSchedule)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskListResponse(scheduleID, tasks))
}

func (h *ScheduleHandler) EditTask(c *gin.Context) {
	scheduleID, ok := pathID(c, "id", apierrors.MsgInvalidScheduleID)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "taskId", apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	raw, ok := bindWithRaw(c, &req)
	if !ok {
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		invalidField(c, err, apierrors.MsgInvalidTaskPayload)
		return
	}

	tasks, err := h.scheduleService.EditTask(c.Request.Context(), scheduleID, taskID, input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateSchedule)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskListResponse(scheduleID, tasks))
}

func (h *ScheduleHandler) DeleteTask(c *gin.Context) {
	scheduleID, ok := pathID(c, "id", apierrors.MsgInvalidScheduleID)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "taskId", apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	tasks, err := h.scheduleService.DeleteTask(c.Request.Context(), scheduleID, taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateSchedule)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskListResponse(scheduleID, tasks))
}

func (h *ScheduleHandler) ListAdjustments(c *gin.Context) {
	scheduleID, ok := pathID(c, "id", apierrors.MsgInvalidScheduleID)
	if !ok {
		return
	}

	adjustments, err := h.scheduleService.ListAdjustments(c.Request.Context(), scheduleID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListAdjustments)
		return
	}

	c.JSON(http.StatusOK, mapper.ToAdjustmentItems(adjustments))
}

func pathID(c *gin.Context, name, msgKey string) (string, bool) {
	id := strings.TrimSpace(c.Param(name))
	if id == "" || len(id) > maxIDLength {
		badRequest(c, msgKey)
		return "", false
	}
	return id, true
}

// bindWithRaw binds the body into req and also returns the raw top-level
// fields, so validation can tell an absent field from an explicit null.
func bindWithRaw(c *gin.Context, req any) (map[string]json.RawMessage, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return nil, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return nil, false
	}

	if err := binding.JSON.BindBody(body, req); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return nil, false
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	return raw, true
}

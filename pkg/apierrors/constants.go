package apierrors

const (
	MsgInvalidScheduleID      = "invalidScheduleID"
	MsgScheduleNotFound       = "scheduleNotFound"
	MsgTaskNotFound           = "taskNotFound"
	MsgInvalidTaskID          = "invalidTaskID"
	MsgInvalidTaskPayload     = "invalidTaskPayload"
	MsgInvalidReorderPayload  = "invalidReorderPayload"
	MsgInvalidTaskIndex       = "invalidTaskIndex"
	MsgScheduleOverflow       = "scheduleOverflow"
	MsgFailLoadSchedule       = "failLoadSchedule"
	MsgFailUpdateSchedule     = "failUpdateSchedule"
	MsgFailListAdjustments    = "failListAdjustments"
	MsgInvalidUserID          = "invalidUserID"
	MsgInvalidGeneratePayload = "invalidGeneratePayload"
	MsgGenerationInProgress   = "generationInProgress"
	MsgGenerationFailed       = "generationFailed"
	MsgFailGenerateSchedule   = "failGenerateSchedule"
	MsgFailGenerationStatus   = "failGenerationStatus"
)

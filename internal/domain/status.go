package domain

// statusTransitions is the processing state machine: pending is initial,
// processing is the only transient state, and the three right-hand states are
// stable rest states that nothing leaves automatically. Re-asserting the
// current state is always allowed so duplicate webhook deliveries stay safe.
var statusTransitions = map[ProcessingStatus]map[ProcessingStatus]bool{
	ProcessingStatusPending: {
		ProcessingStatusProcessing: true,
	},
	ProcessingStatusProcessing: {
		ProcessingStatusCompleted:   true,
		ProcessingStatusNeedsReview: true,
		ProcessingStatusFailed:      true,
	},
	ProcessingStatusCompleted:   {},
	ProcessingStatusNeedsReview: {},
	ProcessingStatusFailed:      {},
}

// CanTransition reports whether a document may move from one processing
// status to another. Same-state transitions are permitted.
func CanTransition(from, to ProcessingStatus) bool {
	if from == to {
		return true
	}
	allowed, ok := statusTransitions[from]
	if !ok {
		return false
	}
	return allowed[to]
}

// IsTerminalStatus reports whether a processing status is a stable rest state.
func IsTerminalStatus(s ProcessingStatus) bool {
	switch s {
	case ProcessingStatusCompleted, ProcessingStatusNeedsReview, ProcessingStatusFailed:
		return true
	}
	return false
}

// StatusForValidation maps an extraction worker's validation verdict onto the
// document's next processing status: valid completes the document,
// needs_review parks it for manual review, and anything else (including a
// missing verdict) fails it.
func StatusForValidation(v ValidationStatus) ProcessingStatus {
	switch v {
	case ValidationStatusValid:
		return ProcessingStatusCompleted
	case ValidationStatusNeedsReview:
		return ProcessingStatusNeedsReview
	default:
		return ProcessingStatusFailed
	}
}

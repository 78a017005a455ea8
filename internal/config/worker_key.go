package config

type WorkerKeyStruct struct {
	// AttemptStatusQueue receives {"exam_id","student_id","status"} events
	// pushed by the exam platform after every attempt transition.
	AttemptStatusQueue string
}

var WorkerKey = &WorkerKeyStruct{
	AttemptStatusQueue: "attempt_status_events_queue",
}

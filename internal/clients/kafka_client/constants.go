package kafka_client

import "time"

const (
	KAFKA_TOPIC_FEEDBACK_INTAKE  = "feedback-intake"  // raw attendee feedback submissions
	KAFKA_TOPIC_REPORT_REQUESTS  = "report-requests"  // organizer-triggered report generation
	KAFKA_TOPIC_REPORT_COMPLETED = "report-completed" // finished report notifications
)

const (
	MAX_RETRIES = 5
	RETRY_DELAY = 2 * time.Second
)

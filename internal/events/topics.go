package events

// Topic constants for domain events emitted by the machine.
const (
	TopicPaymentAccepted = "payment.accepted"
	TopicPaymentRejected = "payment.rejected"
	TopicOutOfService    = "register.out_of_service"
)
